// Package config loads the optional user configuration file. A missing or
// unreadable file is not an error: the app falls back to defaults, since a
// broken local config must never block startup.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// DefaultPath returns ~/.config/fitsched/config.yaml.
func DefaultPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "fitsched", "config.yaml"), nil
}

// Load reads config from a YAML file, then applies environment variable
// overrides:
//
//	FITSCHED_DB_PATH
//
// File read or parse failures yield the defaults.
func Load(path string) *Config {
	cfg := &Config{}

	if data, err := os.ReadFile(path); err == nil {
		// Best effort: a corrupt file behaves like an absent one.
		_ = yaml.Unmarshal(data, cfg)
	}

	if v := os.Getenv("FITSCHED_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	return cfg
}
