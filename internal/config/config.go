package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	DefaultLinksTable = "links"

	// EnvDSN overrides database.dsn when set.
	EnvDSN = "ECONOMAP_DSN"
)

type ProjectConfig struct {
	Project  string         `yaml:"project"`
	Version  int            `yaml:"version"`
	Database DatabaseConfig `yaml:"database"`
	Tables   TablesConfig   `yaml:"tables"`
	Seed     SeedConfig     `yaml:"seed"`
	Log      LogConfig      `yaml:"log"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type TablesConfig struct {
	Links string `yaml:"links"`
}

type SeedConfig struct {
	Enabled bool   `yaml:"enabled"`
	Fixture string `yaml:"fixture,omitempty"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if dsn := strings.TrimSpace(os.Getenv(EnvDSN)); dsn != "" {
		cfg.Database.DSN = dsn
		cfg.Database.Driver = ""
	}
	applyDefaults(&cfg)

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

// NewProjectConfig returns a version 1 config for dsn with defaults applied
// and seeding enabled.
func NewProjectConfig(project, dsn string) *ProjectConfig {
	cfg := &ProjectConfig{
		Project:  project,
		Version:  1,
		Database: DatabaseConfig{DSN: dsn},
		Seed:     SeedConfig{Enabled: true},
	}
	applyDefaults(cfg)
	return cfg
}

// WriteProjectConfig validates cfg and writes it to path as YAML. An existing
// file is never overwritten.
func WriteProjectConfig(path string, cfg *ProjectConfig) error {
	if err := validateProjectConfig(cfg); err != nil {
		return fmt.Errorf("writing project config: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("writing project config: %w", err)
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("writing project config: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("writing project config: %w", err)
	}
	return file.Close()
}

func applyDefaults(cfg *ProjectConfig) {
	if strings.TrimSpace(cfg.Database.Driver) == "" {
		cfg.Database.Driver = DriverFromDSN(cfg.Database.DSN)
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	if strings.TrimSpace(cfg.Tables.Links) == "" {
		cfg.Tables.Links = DefaultLinksTable
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// DriverFromDSN infers the backend from the DSN scheme.
func DriverFromDSN(dsn string) string {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DriverPostgres
	case strings.HasPrefix(dsn, "sqlite://"):
		return DriverSQLite
	default:
		return ""
	}
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return fmt.Errorf("database dsn is required")
	}
	switch cfg.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver: %q", cfg.Database.Driver)
	}
	if strings.ContainsAny(cfg.Tables.Links, "\"`;") {
		return fmt.Errorf("invalid links table name: %s", cfg.Tables.Links)
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level: %s", cfg.Log.Level)
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %s", cfg.Log.Format)
	}
	return nil
}
