package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}
}

// Config returns the value of the environment variable key.
func Config(key string) string {
	return os.Getenv(key)
}

// ConfigOr returns the value of key, or fallback when key is unset.
func ConfigOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// IsProduction reports whether the server runs in production mode.
func IsProduction() bool {
	return os.Getenv("APP_ENV") == "production"
}
