package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Export   ExportConfig   `yaml:"export"`
	Filter   FilterConfig   `yaml:"filter"`
	LogLevel string         `yaml:"log_level"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type ExportConfig struct {
	OutputDir    string `yaml:"output_dir"`
	HistoryLimit int    `yaml:"history_limit"`
}

type FilterConfig struct {
	// MatchPolicy controls include-keyword combination: "or" or "and".
	MatchPolicy string `yaml:"match_policy"`
}

// Load reads and parses the config file, expanding ${ENV} references.
// A .env file is honored when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

// Default returns a config with all defaults applied, for hosts that
// run without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = "data/tubesift.db"
	}
	if c.Export.OutputDir == "" {
		c.Export.OutputDir = "exports"
	}
	if c.Export.HistoryLimit == 0 {
		c.Export.HistoryLimit = 50
	}
	if c.Filter.MatchPolicy == "" {
		c.Filter.MatchPolicy = "or"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
