package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	StorageDriver string
	DBUrl         string
	RedisURL      string
	AppEnv        string
	AdminEmail    string
	AdminPassword string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", "postgres")),
		DBUrl:         getEnv("DB_URL", ""),
		RedisURL:      getEnv("REDIS_URL", ""),
		AppEnv:        normalizeEnv(getEnv("APP_ENV", "production")),
		AdminEmail:    strings.ToLower(getEnv("ADMIN_EMAIL", "system@example.com")),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}

	switch cfg.StorageDriver {
	case "postgres":
		if cfg.DBUrl == "" {
			return nil, fmt.Errorf("DB_URL is required for the postgres storage driver")
		}
	case "redis":
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required for the redis storage driver")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
