package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config contains runtime settings for the MCP server
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Host     string `env:"MCP_HOST" envDefault:"0.0.0.0"`
	Port     string `env:"PORT" envDefault:"8080"`

	Adzuna  AdzunaConfig
	Neo4j   Neo4jConfig
	Redis   RedisConfig
	Sheets  SheetsConfig
	Metrics MetricsConfig

	// DatabaseURL switches the metrics source to Postgres
	DatabaseURL string `env:"DATABASE_URL"`
	// RolesPath points at a TOML role table; empty uses the built-in one
	RolesPath string `env:"ROLES_CONFIG_PATH"`
}

// AdzunaConfig holds Adzuna API credentials
type AdzunaConfig struct {
	AppID   string `env:"ADZUNA_APP_ID"`
	AppKey  string `env:"ADZUNA_APP_KEY"`
	Country string `env:"ADZUNA_COUNTRY" envDefault:"us"`
}

// Enabled reports whether listing import is possible
func (c AdzunaConfig) Enabled() bool {
	return c.AppID != "" && c.AppKey != ""
}

// Neo4jConfig selects the graph-backed catalog
type Neo4jConfig struct {
	URI      string `env:"NEO4J_URI"`
	Username string `env:"NEO4J_USERNAME"`
	Password string `env:"NEO4J_PASSWORD"`
}

// Enabled reports whether any Neo4j setting is present
func (c Neo4jConfig) Enabled() bool {
	return c.URI != "" || c.Username != "" || c.Password != ""
}

// RedisConfig enables catalog event publishing
type RedisConfig struct {
	URL     string `env:"REDIS_URL"`
	Channel string `env:"EVENTS_CHANNEL" envDefault:"recruitops.events"`
}

// SheetsConfig holds the export target and credentials
type SheetsConfig struct {
	CredentialsPath string `env:"SHEETS_CREDENTIALS_PATH"`
	SpreadsheetID   string `env:"EXPORT_SPREADSHEET_ID"`
	Tab             string `env:"EXPORT_TAB" envDefault:"Metrics"`
	// Cron schedules the periodic metrics export; empty disables it
	Cron string `env:"EXPORT_CRON"`
}

// MetricsConfig controls the aggregated window and the demo generator
type MetricsConfig struct {
	WindowDays int    `env:"METRICS_WINDOW_DAYS" envDefault:"90"`
	Seed       uint64 `env:"METRICS_SEED" envDefault:"42"`
}

// Addr is the HTTP listen address
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Load populates config from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadFrom parses config from an explicit environment map
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects partial or inconsistent settings
func (c Config) Validate() error {
	var problems []string

	if c.Neo4j.Enabled() {
		var missingVars []string
		if c.Neo4j.URI == "" {
			missingVars = append(missingVars, "NEO4J_URI")
		}
		if c.Neo4j.Username == "" {
			missingVars = append(missingVars, "NEO4J_USERNAME")
		}
		if c.Neo4j.Password == "" {
			missingVars = append(missingVars, "NEO4J_PASSWORD")
		}
		if len(missingVars) > 0 {
			problems = append(problems, "missing required environment variables: "+strings.Join(missingVars, ", "))
		}
	}

	if c.Sheets.Cron != "" {
		if c.Sheets.SpreadsheetID == "" || c.Sheets.CredentialsPath == "" {
			problems = append(problems, "EXPORT_CRON requires EXPORT_SPREADSHEET_ID and SHEETS_CREDENTIALS_PATH")
		}
	}

	if c.Metrics.WindowDays <= 0 {
		problems = append(problems, fmt.Sprintf("METRICS_WINDOW_DAYS must be positive, got %d", c.Metrics.WindowDays))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
