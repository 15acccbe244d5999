package config

import (
	"os"
	"strings"

	"parking-app/internal/infra/logging"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_DRIVER  string
	DB_URL     string
	JWT_SECRET string

	OIDC_ISSUER    string
	OIDC_CLIENT_ID string

	CORS_ORIGIN string
	LOG_LEVEL   string

	EXPIRY_SWEEP_SCHEDULE string
)

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logging.Logger.Info("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_DRIVER = strings.ToLower(getEnv("DB_DRIVER", "postgres"))
	DB_URL = mustEnv("DB_URL")

	OIDC_ISSUER = getEnv("OIDC_ISSUER", "")
	OIDC_CLIENT_ID = getEnv("OIDC_CLIENT_ID", "")
	if OIDC_ISSUER == "" {
		// without an identity provider we verify our own HMAC tokens
		JWT_SECRET = mustEnv("JWT_SECRET")
	} else {
		JWT_SECRET = getEnv("JWT_SECRET", "")
	}

	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:5173")
	LOG_LEVEL = getEnv("LOG_LEVEL", "info")
	EXPIRY_SWEEP_SCHEDULE = getEnv("EXPIRY_SWEEP_SCHEDULE", "@every 15m")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		logging.Logger.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
