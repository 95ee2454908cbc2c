// Package config provides YAML-based application configuration with
// environment overrides.
package config

import "time"

// Config is the full application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	SSH     SSHConfig     `yaml:"ssh"`
	Log     LogConfig     `yaml:"log"`
	Game    GameConfig    `yaml:"game"`
	Theme   ThemeConfig   `yaml:"theme"`
}

// StorageConfig locates the scores database.
type StorageConfig struct {
	Path string `yaml:"path" env:"ODDONE_DB"`
}

// SSHConfig defines the SSH server settings used by `oddone serve`.
type SSHConfig struct {
	Address     string        `yaml:"address" env:"ODDONE_SSH_ADDR"`
	HostKeyPath string        `yaml:"host_key" env:"ODDONE_HOST_KEY"` // Empty means ~/.oddone/host_key
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"ODDONE_IDLE_TIMEOUT"`
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level" env:"ODDONE_LOG_LEVEL"` // debug, info, warn, error
	File  string `yaml:"file" env:"ODDONE_LOG_FILE"`   // Used while the TUI owns the terminal
}

// GameConfig holds session settings.
type GameConfig struct {
	Seed int64 `yaml:"seed" env:"ODDONE_SEED"` // 0 = random based on time
}

// ThemeConfig holds lipgloss colors (ANSI numbers or hex).
type ThemeConfig struct {
	Accent   string `yaml:"accent" env:"ODDONE_THEME_ACCENT"`
	Cursor   string `yaml:"cursor" env:"ODDONE_THEME_CURSOR"`
	Correct  string `yaml:"correct" env:"ODDONE_THEME_CORRECT"`
	Urgent   string `yaml:"urgent" env:"ODDONE_THEME_URGENT"`
	Subtle   string `yaml:"subtle" env:"ODDONE_THEME_SUBTLE"`
	Positive string `yaml:"positive" env:"ODDONE_THEME_POSITIVE"`
}
