package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/sitecast/stopend/core/metrics"
)

// Config is the service configuration loaded at startup.
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Metrics  metrics.Config `json:"metrics"`
	Planner  PlannerConfig  `json:"planner"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Addr string `json:"addr"`
	// BaseURL is used when building share links.
	BaseURL string `json:"base_url"`
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	DSN         string `json:"dsn"`
	AutoMigrate bool   `json:"auto_migrate"`
}

// PlannerConfig carries defaults applied to projects that do not set
// their own.
type PlannerConfig struct {
	SafetyStock int    `json:"safety_stock"`
	Strategy    string `json:"strategy"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost" + c.Server.Addr
	}
	if c.Metrics.PrometheusPort == "" {
		c.Metrics.PrometheusPort = ":9092"
	}
	if c.Planner.Strategy == "" {
		c.Planner.Strategy = "performance"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Planner.Strategy != "performance" && c.Planner.Strategy != "consistency" {
		return fmt.Errorf("unknown planner strategy %q", c.Planner.Strategy)
	}
	if c.Planner.SafetyStock < 0 {
		return fmt.Errorf("safety stock must be non-negative")
	}
	return nil
}

// Load reads the configuration from a JSON or YAML file. Environment
// variables prefixed with STOPEND_ override file values, with "__"
// separating nesting levels (STOPEND_SERVER__ADDR=:9000).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("STOPEND_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "stopend_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
}
