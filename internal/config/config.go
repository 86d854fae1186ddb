package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Snapshot source and cache backend identifiers
const (
	GraphSourceFile     = "file"
	GraphSourcePostgres = "postgres"

	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Graph struct {
		// Source selects where the persisted snapshot is loaded from:
		// "file" (JSON snapshot on disk) or "postgres" (tables written by
		// the graph builder).
		Source       string `yaml:"source" env:"GRAPH_SOURCE"`
		SnapshotPath string `yaml:"snapshot_path" env:"GRAPH_SNAPSHOT_PATH"`

		Postgres struct {
			Host            string `yaml:"host" env:"GRAPH_DB_HOST"`
			Port            string `yaml:"port" env:"GRAPH_DB_PORT"`
			User            string `yaml:"user" env:"GRAPH_DB_USER"`
			Password        string `yaml:"password" env:"GRAPH_DB_PASSWORD"`
			DBName          string `yaml:"dbname" env:"GRAPH_DB_NAME"`
			SSLMode         string `yaml:"sslmode" env:"GRAPH_DB_SSLMODE"`
			MaxIdleConns    int    `yaml:"max_idle_conns" env:"GRAPH_DB_MAX_IDLE_CONNS"`
			MaxOpenConns    int    `yaml:"max_open_conns" env:"GRAPH_DB_MAX_OPEN_CONNS"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"GRAPH_DB_CONN_MAX_LIFETIME"`
		} `yaml:"postgres"`
	} `yaml:"graph"`

	Cache struct {
		Backend    string `yaml:"backend" env:"CACHE_BACKEND"`
		MaxEntries int    `yaml:"max_entries" env:"CACHE_MAX_ENTRIES"`

		Redis struct {
			Addr     string `yaml:"addr" env:"CACHE_REDIS_ADDR"`
			Password string `yaml:"password" env:"CACHE_REDIS_PASSWORD"`
			DB       int    `yaml:"db" env:"CACHE_REDIS_DB"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	Pagination struct {
		PageSize int `yaml:"page_size" env:"PAGINATION_PAGE_SIZE"`
	} `yaml:"pagination"`

	Auth struct {
		// AdminSecret signs tokens for the admin endpoints (snapshot
		// reload). Leaving it empty disables those endpoints entirely.
		AdminSecret     string `yaml:"admin_secret" env:"AUTH_ADMIN_SECRET"`
		TokenExpiration string `yaml:"token_expiration" env:"AUTH_TOKEN_EXPIRATION"`
		Issuer          string `yaml:"issuer" env:"AUTH_ISSUER"`
	} `yaml:"auth"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The config file is optional; env vars can carry everything.
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Graph.Source = GraphSourceFile
	config.Graph.SnapshotPath = "data/graph_snapshot.json"
	config.Graph.Postgres.Host = "localhost"
	config.Graph.Postgres.Port = "5432"
	config.Graph.Postgres.User = "postgres"
	config.Graph.Postgres.Password = "postgres"
	config.Graph.Postgres.DBName = "coursegraph"
	config.Graph.Postgres.SSLMode = "disable"
	config.Graph.Postgres.MaxIdleConns = 2
	config.Graph.Postgres.MaxOpenConns = 5
	config.Graph.Postgres.ConnMaxLifetime = "1h"

	config.Cache.Backend = CacheBackendMemory
	config.Cache.MaxEntries = 512
	config.Cache.Redis.Addr = "localhost:6379"

	config.Pagination.PageSize = 3

	config.Auth.TokenExpiration = "1h"
	config.Auth.Issuer = "syllabot"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Graph.Source {
	case GraphSourceFile:
		if config.Graph.SnapshotPath == "" {
			return fmt.Errorf("graph snapshot path is required for the file source")
		}
	case GraphSourcePostgres:
		if config.Graph.Postgres.Host == "" {
			return fmt.Errorf("graph database host is required for the postgres source")
		}
		if _, err := time.ParseDuration(config.Graph.Postgres.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid connection max lifetime format: %w", err)
		}
	default:
		return fmt.Errorf("unknown graph source %q", config.Graph.Source)
	}

	switch config.Cache.Backend {
	case CacheBackendMemory:
		if config.Cache.MaxEntries <= 0 {
			return fmt.Errorf("cache max entries must be positive")
		}
	case CacheBackendRedis:
		if config.Cache.Redis.Addr == "" {
			return fmt.Errorf("redis address is required for the redis cache backend")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", config.Cache.Backend)
	}

	if config.Pagination.PageSize <= 0 {
		return fmt.Errorf("pagination page size must be positive")
	}

	if config.Auth.AdminSecret != "" {
		if _, err := time.ParseDuration(config.Auth.TokenExpiration); err != nil {
			return fmt.Errorf("invalid token expiration format: %w", err)
		}
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Graph.Postgres.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Graph.Postgres.User,
		c.Graph.Postgres.Password,
		c.Graph.Postgres.Host,
		c.Graph.Postgres.Port,
		c.Graph.Postgres.DBName,
		sslMode,
	)
}
