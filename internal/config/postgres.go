package config

import (
	"errors"
	"fmt"
)

// ErrPostgresNotConfigured is returned when none of the POSTGRES_* variables are set.
// The storefront then falls back to its in-memory store.
var ErrPostgresNotConfigured = errors.New("postgres is not configured")

// PostgresConfig holds configuration for the storefront's PostgreSQL store
type PostgresConfig struct {
	User     string
	Password string
	Database string
	Host     string
	Schema   string
}

// LoadPostgresConfig loads PostgreSQL configuration from environment variables
func LoadPostgresConfig(getenv func(string) string) (*PostgresConfig, error) {
	config := &PostgresConfig{
		User:     getenv("POSTGRES_USER"),
		Password: getenv("POSTGRES_PASSWORD"),
		Database: getenv("POSTGRES_DB"),
		Host:     getenv("POSTGRES_HOSTNAME"),
		Schema:   getenv("POSTGRES_SCHEMA"),
	}

	if config.User == "" && config.Password == "" && config.Database == "" && config.Host == "" {
		return nil, ErrPostgresNotConfigured
	}

	// A partial configuration is a mistake, not a request for the memory store
	if config.User == "" {
		return nil, fmt.Errorf("POSTGRES_USER is required")
	}
	if config.Password == "" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if config.Database == "" {
		return nil, fmt.Errorf("POSTGRES_DB is required")
	}
	if config.Host == "" {
		return nil, fmt.Errorf("POSTGRES_HOSTNAME is required")
	}

	return config, nil
}

// ConnectionString returns a lib/pq connection string
func (c *PostgresConfig) ConnectionString() string {
	connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.User, c.Password, c.Database)
	if c.Schema != "" {
		connStr += " search_path=" + c.Schema
	}
	return connStr
}
