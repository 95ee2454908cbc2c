package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/oddone.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Path: "~/.oddone/scores.db",
		},
		SSH: SSHConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.oddone/oddone.log",
		},
		Theme: DefaultTheme(),
	}
}

// DefaultTheme returns the built-in colors.
func DefaultTheme() ThemeConfig {
	return ThemeConfig{
		Accent:   "229",
		Cursor:   "57",
		Correct:  "28",
		Urgent:   "9",
		Subtle:   "241",
		Positive: "10",
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
