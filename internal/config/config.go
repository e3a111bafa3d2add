package config

import (
	"os"
	"time"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	CatalogPath string
	CartTimeout time.Duration
	LogLevel    string
	LogFormat   string
}

// Load reads configuration from environment variables.
func Load() Config {
	addr := os.Getenv("VOICE_SHOP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	catalogPath := os.Getenv("CATALOG_PATH")
	if catalogPath == "" {
		catalogPath = "./data/products.json"
	}

	cartTimeout := 5 * time.Second
	if raw := os.Getenv("CART_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cartTimeout = d
		}
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return Config{
		Addr:        addr,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CatalogPath: catalogPath,
		CartTimeout: cartTimeout,
		LogLevel:    logLevel,
		LogFormat:   os.Getenv("LOG_FORMAT"),
	}
}
