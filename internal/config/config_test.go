package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if cfg.Database.Path != "" {
		t.Errorf("expected empty db path, got %q", cfg.Database.Path)
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "database:\n  path: /tmp/custom.db\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Load(path)
	if cfg.Database.Path != "/tmp/custom.db" {
		t.Errorf("expected /tmp/custom.db, got %q", cfg.Database.Path)
	}
}

func TestLoadCorruptFileBehavesLikeAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Load(path)
	if cfg.Database.Path != "" {
		t.Errorf("expected defaults for corrupt file, got %q", cfg.Database.Path)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("database:\n  path: /tmp/file.db\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FITSCHED_DB_PATH", "/tmp/env.db")
	cfg := Load(path)
	if cfg.Database.Path != "/tmp/env.db" {
		t.Errorf("expected env override, got %q", cfg.Database.Path)
	}
}
