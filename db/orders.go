package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/mo"

	dbtx "grafibot/db/tx"
	"grafibot/models"
)

// ErrOrdersTableMissing reports that the grafica table has not been
// created yet (Postgres undefined_table, SQLSTATE 42P01). Callers use it
// to tell schema absence apart from other store failures.
var ErrOrdersTableMissing = errors.New("orders table does not exist")

// pqUndefinedTable is the SQLSTATE code Postgres returns when a query
// references a table that does not exist.
const pqUndefinedTable = "42P01"

type PostgresOrdersRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for grafica table
var orderColumns = []string{
	"id",
	"quantidade",
	"produto",
	"material",
	"impressao",
	"largura",
	"altura",
	"tipo_de_corte",
	"acabamento",
	"extra",
	"valor_final",
}

// Columns the chatbot context is allowed to see
var contextColumns = []string{
	"id",
	"quantidade",
	"produto",
	"material",
	"impressao",
	"largura",
	"altura",
	"valor_final",
}

func NewPostgresOrdersRepository(db *sqlx.DB, schema string) *PostgresOrdersRepository {
	return &PostgresOrdersRepository{db: db, schema: schema}
}

// classifyStoreError converts the undefined_table error into the
// ErrOrdersTableMissing sentinel and leaves everything else untouched.
func classifyStoreError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pqUndefinedTable {
		return fmt.Errorf("%w: %v", ErrOrdersTableMissing, err)
	}
	return err
}

func (r *PostgresOrdersRepository) InsertOrder(ctx context.Context, order *models.Order) error {
	db := dbtx.GetTransactional(ctx, r.db)

	returningStr := strings.Join(orderColumns, ", ")
	query := fmt.Sprintf(`
		INSERT INTO %s.grafica (quantidade, produto, material, impressao, largura, altura, tipo_de_corte, acabamento, extra, valor_final)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s`, r.schema, returningStr)

	err := db.QueryRowxContext(ctx, query,
		order.Quantidade, order.Produto, order.Material, order.Impressao,
		order.Largura, order.Altura, order.TipoCorte, order.Acabamento,
		order.Extra, order.ValorFinal).StructScan(order)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", classifyStoreError(err))
	}

	return nil
}

func (r *PostgresOrdersRepository) GetOrderByID(ctx context.Context, id int64) (mo.Option[*models.Order], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(orderColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.grafica
		WHERE id = $1`, columnsStr, r.schema)

	order := &models.Order{}
	err := db.QueryRowxContext(ctx, query, id).StructScan(order)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.Order](), nil
		}
		return mo.None[*models.Order](), fmt.Errorf("failed to get order by ID: %w", classifyStoreError(err))
	}

	return mo.Some(order), nil
}

// ListRecentOrders returns up to limit full order rows, newest first.
func (r *PostgresOrdersRepository) ListRecentOrders(ctx context.Context, limit int) ([]*models.Order, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(orderColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.grafica
		ORDER BY id DESC
		LIMIT $1`, columnsStr, r.schema)

	var orders []*models.Order
	if err := db.SelectContext(ctx, &orders, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent orders: %w", classifyStoreError(err))
	}

	return orders, nil
}

// ListRecentContext returns up to limit rows restricted to the columns
// the chatbot context embeds, newest first.
func (r *PostgresOrdersRepository) ListRecentContext(ctx context.Context, limit int) ([]models.ContextOrder, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(contextColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.grafica
		ORDER BY id DESC
		LIMIT $1`, columnsStr, r.schema)

	var orders []models.ContextOrder
	if err := db.SelectContext(ctx, &orders, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent context orders: %w", classifyStoreError(err))
	}

	return orders, nil
}
