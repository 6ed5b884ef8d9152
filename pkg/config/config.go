package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	// DataPath is the SQLite file backing the local key-value store.
	DataPath string
	// CatalogPath is the YAML seed the product catalog is loaded from.
	CatalogPath string
}

func Load() Config {
	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()

	return Config{
		AppEnv:      getEnv("APP_ENV", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		DataPath:    getEnv("DATA_PATH", "storefront.db"),
		CatalogPath: getEnv("CATALOG_PATH", "catalog.yaml"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
