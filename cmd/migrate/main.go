package main

import (
	"fmt"
	"log"
	"os"

	"grafibot/config"
	"grafibot/db"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Migration failed: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if !cfg.StoreConfig.IsConfigured() {
		return fmt.Errorf("DATABASE_URL must be set to run migrations")
	}

	dbConn, err := db.NewConnection(cfg.StoreConfig.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	log.Printf("🔄 Ensuring %s.grafica exists...", cfg.StoreConfig.DatabaseSchema)
	if err := db.InitOrdersSchema(dbConn, cfg.StoreConfig.DatabaseSchema); err != nil {
		return err
	}

	log.Printf("✅ Orders schema is ready")
	return nil
}
