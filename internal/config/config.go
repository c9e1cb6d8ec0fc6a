package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends supported for session state.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName         string
	AppEnv          string
	AppPort         string
	StoreBackend    string
	RedisURL        string
	DatabaseURL     string
	SQLitePath      string
	PostingSeedFile string
	MetricsEnabled  bool
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TAAPPLY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "TA Apply API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("store.backend", StoreMemory)
	v.SetDefault("store.sqlite_path", "ta-apply.db")
	v.SetDefault("metrics.enabled", true)

	cfg := Config{
		AppName:         v.GetString("app.name"),
		AppEnv:          v.GetString("app.env"),
		AppPort:         v.GetString("app.port"),
		StoreBackend:    strings.ToLower(v.GetString("store.backend")),
		RedisURL:        v.GetString("redis.url"),
		DatabaseURL:     v.GetString("database.url"),
		SQLitePath:      v.GetString("store.sqlite_path"),
		PostingSeedFile: v.GetString("postings.seed_file"),
		MetricsEnabled:  v.GetBool("metrics.enabled"),
	}

	switch cfg.StoreBackend {
	case StoreMemory, StoreSQLite:
	case StoreRedis:
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("redis url must be provided for the redis store backend")
		}
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("database url must be provided for the postgres store backend")
		}
	default:
		return Config{}, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
	}

	return cfg, nil
}
