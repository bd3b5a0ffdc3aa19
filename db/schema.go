package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// InitOrdersSchema creates the grafica table if it does not exist yet.
// The API itself never creates the table; it reports its absence through
// ErrOrdersTableMissing so operators notice a skipped migration.
func InitOrdersSchema(db *sqlx.DB, schema string) error {
	statements := []string{
		fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.grafica (
				id BIGSERIAL PRIMARY KEY,
				quantidade INTEGER NOT NULL,
				produto TEXT NOT NULL,
				material TEXT NOT NULL,
				impressao TEXT NOT NULL,
				largura NUMERIC(10, 2),
				altura NUMERIC(10, 2),
				tipo_de_corte TEXT,
				acabamento TEXT,
				extra TEXT,
				valor_final NUMERIC(12, 2) NOT NULL
			)`, schema),
	}

	for _, statement := range statements {
		if _, err := db.Exec(statement); err != nil {
			return fmt.Errorf("failed to initialize orders schema: %w", err)
		}
	}

	return nil
}
