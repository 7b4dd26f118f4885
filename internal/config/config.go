// Package config reads process configuration from the environment, after
// loading a .env file when one is present.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr      string
	LogLevel  string
	LogFormat string
	// Seed for the puzzle generator; 0 picks a time based seed.
	Seed  int64
	Store Store
}

// Store selects and configures the settings backend.
type Store struct {
	Backend       string // memory, sqlite or redis
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads the configuration. A missing .env file is not an error.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Addr:      getEnv("BINOXXO_ADDR", ":8080"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
		Seed:      int64(getInt("BINOXXO_SEED", 0)),
		Store: Store{
			Backend:       getEnv("BINOXXO_STORE", "sqlite"),
			SQLitePath:    getEnv("BINOXXO_SQLITE_PATH", "./data/binoxxo.db"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       getInt("REDIS_DB", 0),
		},
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return n
}
