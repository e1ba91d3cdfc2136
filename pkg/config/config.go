package config

import (
	"fmt"
	"math"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/intentlane-inc/intentlane-engine/pkg/models"
)

// Config holds all configuration for intentlane-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords, signing keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8470"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Authentication configuration
	Auth AuthConfig `yaml:"auth"`

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// Path to SQL migration files
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`

	// Mutual NDA configuration. The active version is explicit configuration
	// threaded into every ledger and gate call so that gate decisions are
	// reproducible for a given version argument.
	Nda NdaConfig `yaml:"nda"`

	// Match engine configuration
	Match MatchConfig `yaml:"match"`
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	// EnableVerification controls whether bearer tokens are validated.
	// Set to false for local development; callers then identify themselves
	// with X-Org-ID / X-User-ID headers.
	EnableVerification bool `yaml:"enable_verification" env:"AUTH_ENABLE_VERIFICATION" env-default:"true"`

	// JWTSecret is the HMAC key used to verify bearer tokens.
	JWTSecret string `yaml:"-" env:"AUTH_JWT_SECRET"` // Secret - not in YAML
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"intentlane"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"intentlane_engine"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
}

// URL returns a PostgreSQL connection string.
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// NdaConfig identifies the currently active mutual NDA document.
// Acceptances of superseded versions do not satisfy mutual status for the
// active version; rotating ActiveVersion therefore re-closes L2 disclosure
// until both sides re-accept.
type NdaConfig struct {
	ActiveVersion   string            `yaml:"active_version" env:"NDA_ACTIVE_VERSION" env-default:"2025-03"`
	ContentHash     string            `yaml:"content_hash" env:"NDA_CONTENT_HASH" env-default:""`
	DefaultLanguage string            `yaml:"default_language" env:"NDA_DEFAULT_LANGUAGE" env-default:"en"`
	Documents       map[string]string `yaml:"documents"` // language -> document text
}

// MatchConfig holds the scoring weight configuration and algorithm version.
type MatchConfig struct {
	AlgorithmVersion string  `yaml:"algorithm_version" env:"MATCH_ALGORITHM_VERSION" env-default:"v1"`
	WeightLanguage   float64 `yaml:"weight_language" env:"MATCH_WEIGHT_LANGUAGE" env-default:"0.15"`
	WeightTech       float64 `yaml:"weight_tech" env:"MATCH_WEIGHT_TECH" env-default:"0.30"`
	WeightIndustry   float64 `yaml:"weight_industry" env:"MATCH_WEIGHT_INDUSTRY" env-default:"0.25"`
	WeightRegion     float64 `yaml:"weight_region" env:"MATCH_WEIGHT_REGION" env-default:"0.15"`
	WeightBudget     float64 `yaml:"weight_budget" env:"MATCH_WEIGHT_BUDGET" env-default:"0.15"`
}

// Weights returns the factor weight set used by the match scorer.
func (c *MatchConfig) Weights() models.FactorWeights {
	return models.FactorWeights{
		Language: c.WeightLanguage,
		Tech:     c.WeightTech,
		Industry: c.WeightIndustry,
		Region:   c.WeightRegion,
		Budget:   c.WeightBudget,
	}
}

// Load reads configuration from config.yaml with environment variable
// overrides. If config.yaml does not exist, configuration comes from the
// environment alone. The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment config: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.EnableVerification && c.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required when auth verification is enabled")
	}
	if c.Nda.ActiveVersion == "" {
		return fmt.Errorf("nda.active_version must not be empty")
	}
	if sum := c.Match.Weights().Sum(); math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("match factor weights must sum to 1.0, got %v", sum)
	}
	return nil
}
