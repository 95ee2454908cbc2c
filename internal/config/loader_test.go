package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestEmbeddedDefaultsMatchDefault(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded defaults drifted from Default():\n%+v\nvs\n%+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := writeFile(t, "custom.yaml", `
storage:
  path: /tmp/custom.db
ssh:
  idle_timeout: 5m
theme:
  urgent: "#ff0000"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Storage.Path != "/tmp/custom.db" {
		t.Errorf("Storage.Path = %q, want /tmp/custom.db", cfg.Storage.Path)
	}
	if cfg.SSH.IdleTimeout != 5*time.Minute {
		t.Errorf("SSH.IdleTimeout = %v, want 5m", cfg.SSH.IdleTimeout)
	}
	if cfg.Theme.Urgent != "#ff0000" {
		t.Errorf("Theme.Urgent = %q, want #ff0000", cfg.Theme.Urgent)
	}

	// Unset keys keep their defaults
	if cfg.SSH.Address != ":23235" {
		t.Errorf("SSH.Address = %q, want default :23235", cfg.SSH.Address)
	}
	if cfg.Theme.Cursor != DefaultTheme().Cursor {
		t.Errorf("Theme.Cursor = %q, want default %q", cfg.Theme.Cursor, DefaultTheme().Cursor)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() with a missing custom file should fail")
	}

	bad := writeFile(t, "bad.yaml", "storage: [not, a, map")
	if _, err := Load(bad); err == nil {
		t.Error("Load() with malformed YAML should fail")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeFile(t, "custom.yaml", "storage:\n  path: /tmp/file.db\n")

	t.Setenv("ODDONE_DB", "/tmp/env.db")
	t.Setenv("ODDONE_SSH_ADDR", ":2222")
	t.Setenv("ODDONE_IDLE_TIMEOUT", "90s")
	t.Setenv("ODDONE_SEED", "42")
	t.Setenv("ODDONE_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Storage.Path != "/tmp/env.db" {
		t.Errorf("Storage.Path = %q, env should win", cfg.Storage.Path)
	}
	if cfg.SSH.Address != ":2222" {
		t.Errorf("SSH.Address = %q, want :2222", cfg.SSH.Address)
	}
	if cfg.SSH.IdleTimeout != 90*time.Second {
		t.Errorf("SSH.IdleTimeout = %v, want 90s", cfg.SSH.IdleTimeout)
	}
	if cfg.Game.Seed != 42 {
		t.Errorf("Game.Seed = %d, want 42", cfg.Game.Seed)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadEnvInvalidValue(t *testing.T) {
	path := writeFile(t, "custom.yaml", "game:\n  seed: 1\n")
	t.Setenv("ODDONE_SEED", "not-a-number")

	if _, err := Load(path); err == nil {
		t.Error("Load() should reject a malformed ODDONE_SEED")
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "ODDONE_THEME_ACCENT=200\n")

	// Make sure the variable is restored after the test
	t.Setenv("ODDONE_THEME_ACCENT", "")
	os.Unsetenv("ODDONE_THEME_ACCENT")

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("LoadDotEnv() failed: %v", err)
	}
	if got := os.Getenv("ODDONE_THEME_ACCENT"); got != "200" {
		t.Errorf("ODDONE_THEME_ACCENT = %q, want 200", got)
	}
}
