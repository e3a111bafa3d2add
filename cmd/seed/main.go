package main

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/wichananm65/voice-shop-backend/internal/config"
	"github.com/wichananm65/voice-shop-backend/internal/logger"
	"github.com/wichananm65/voice-shop-backend/internal/product"
)

// Seeds the Postgres products table from the JSON catalog file, replacing
// whatever is there. Run once after provisioning the database.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required for seeding")
	}

	jsonRepo := product.NewJSONRepository(cfg.CatalogPath)
	if err := jsonRepo.Reload(); err != nil {
		log.Fatal("load catalog", zap.String("path", cfg.CatalogPath), zap.Error(err))
	}
	products := jsonRepo.List()
	if len(products) == 0 {
		log.Fatal("catalog is empty, nothing to seed", zap.String("path", cfg.CatalogPath))
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal("ping database", zap.Error(err))
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		price NUMERIC NOT NULL DEFAULT 0,
		category TEXT,
		image TEXT,
		ord INT NOT NULL DEFAULT 0
	)`); err != nil {
		log.Fatal("ensure products table", zap.Error(err))
	}

	pgRepo := product.NewPostgresRepository(db)
	if err := pgRepo.Reset(products); err != nil {
		log.Fatal("seed products", zap.Error(err))
	}
	log.Info("seeded products", zap.Int("count", len(products)))
}
