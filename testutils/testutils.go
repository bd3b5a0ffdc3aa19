package testutils

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"grafibot/config"
	"grafibot/models"
)

// LoadTestConfig loads store configuration for integration tests from
// environment variables. Callers skip the test when it returns an error,
// so the suite still passes on machines without a Postgres instance.
func LoadTestConfig() (*config.StoreConfig, error) {
	// Try to load environment variables from various possible locations
	_ = godotenv.Load("../.env.test")    // From services/<pkg>/ directories
	_ = godotenv.Load("../../.env.test") // From nested packages
	_ = godotenv.Load(".env.test")       // From root directory
	_ = godotenv.Load()                  // Default .env file

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	schema := os.Getenv("DB_SCHEMA")
	if schema == "" {
		schema = "public"
	}

	return &config.StoreConfig{
		DatabaseURL:    databaseURL,
		DatabaseSchema: schema,
	}, nil
}

// StringPtr returns a pointer to the given string.
func StringPtr(s string) *string {
	return &s
}

// NewTestOrder builds a complete order with typical print-shop values.
func NewTestOrder() *models.Order {
	largura := models.MustDecimalText("9.00")
	altura := models.MustDecimalText("5.00")

	return &models.Order{
		Quantidade: 1000,
		Produto:    "Cartão de visita",
		Material:   StringPtr("Couchê 300g"),
		Impressao:  StringPtr("4x4"),
		Largura:    &largura,
		Altura:     &altura,
		TipoCorte:  StringPtr("reto"),
		Acabamento: StringPtr("laminação fosca"),
		Extra:      StringPtr("verniz localizado"),
		ValorFinal: models.MustDecimalText("1234.50"),
	}
}

// NewMinimalTestOrder builds an order with only the columns the store
// requires, leaving optional columns NULL.
func NewMinimalTestOrder() *models.Order {
	return &models.Order{
		Quantidade: 100,
		Produto:    "Flyer A5",
		Material:   StringPtr("Sulfite 90g"),
		Impressao:  StringPtr("4x0"),
		ValorFinal: models.MustDecimalText("89.90"),
	}
}
