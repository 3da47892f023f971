/*
Package config loads server configuration.

PURPOSE:
  Merges configuration from three sources with a fixed precedence:
  command-line flags > environment variables > optional TOML file >
  built-in defaults. A .env file in the working directory, if present,
  is folded into the environment before resolution.

ENVIRONMENT VARIABLES:
  WORKLOAD_PORT          HTTP server port
  WORKLOAD_DB            SQLite database path (":memory:" for in-memory)
  WORKLOAD_LOG_LEVEL     logrus level: debug, info, warn, error
  WORKLOAD_CORS_ORIGINS  comma-separated allowed origins

TOML FILE:
  [server]
  port = 8080
  cors_origins = ["http://localhost:5173"]

  [store]
  db = "workload.db"

  [logging]
  level = "info"
*/
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all server configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Store   StoreConfig   `toml:"store"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// StoreConfig controls persistence.
type StoreConfig struct {
	DB string `toml:"db"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:        8080,
			CORSOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		},
		Store:   StoreConfig{DB: "workload.db"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load resolves configuration from defaults, an optional TOML file, and
// the environment. Flags are applied by the caller on top of the result.
func Load(path string) (Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("WORKLOAD_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("WORKLOAD_DB"); v != "" {
		cfg.Store.DB = v
	}
	if v := os.Getenv("WORKLOAD_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("WORKLOAD_CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.Server.CORSOrigins = origins
		}
	}
}
