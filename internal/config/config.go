package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/phillipyBr/Meu-Bolso/internal/database"
)

const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Meu Bolso"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Storage struct {
		Backend string `envconfig:"STORAGE_BACKEND" default:"sqlite"`
		Path    string `envconfig:"STORAGE_PATH" default:"meu-bolso.db"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"meubolso"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}

	Advisor struct {
		Provider string `envconfig:"ADVISOR_PROVIDER" default:"gemini"`
		APIKey   string `envconfig:"API_KEY"`
		Model    string `envconfig:"ADVISOR_MODEL" default:"gemini-2.5-flash"`
		BaseURL  string `envconfig:"ADVISOR_BASE_URL"`
	}

	Report struct {
		Locale    string `envconfig:"REPORT_LOCALE" default:"pt-BR"`
		CacheSize int    `envconfig:"REPORT_CACHE_SIZE" default:"64"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// DataSource returns the driver and DSN of the configured SQL backend.
// The memory backend has no data source.
func (c *Config) DataSource() (database.Driver, string, error) {
	switch c.Storage.Backend {
	case BackendSQLite:
		return database.DriverSQLite, c.Storage.Path, nil
	case BackendPostgres:
		return database.DriverPostgres, c.ConnectionString(), nil
	}

	return "", "", fmt.Errorf("storage backend %q has no data source", c.Storage.Backend)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
