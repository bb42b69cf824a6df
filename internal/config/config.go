package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	PostgresConn  string
	ServerAddress string
	LogLevel      string
	Environment   string
}

// Load reads configuration from the environment, with .env as a fallback
// for local development.
func Load() *Config {
	godotenv.Load()

	return &Config{
		PostgresConn:  getEnv("POSTGRES_CONN", ""),
		ServerAddress: getEnv("SERVER_ADDRESS", "0.0.0.0:8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Environment:   getEnv("ENVIRONMENT", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
