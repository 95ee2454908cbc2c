// oddone is a timed "spot the odd emoji" puzzle for the terminal.
//
// Usage:
//
//	oddone play              - Play a run in this terminal
//	oddone menu              - Title menu: play, high scores, quit
//	oddone serve             - Start SSH server for remote play
//	oddone scores            - Show the top runs
//	oddone levels            - Print the level catalog
//
// Global flags:
//
//	--seed <value>      - Set RNG seed for reproducible boards
//	--db <path>         - Set database path (default: ~/.oddone/scores.db)
//	--config <path>     - Load configuration from a YAML file
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/oddone/internal/config"
	"github.com/vovakirdan/oddone/internal/core"
	"github.com/vovakirdan/oddone/internal/storage"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfigPath string
	flagLogLevel   string

	// appConfig is the loaded configuration with flags applied.
	appConfig config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "oddone",
	Short: "Find the Odd One Out - a timed emoji puzzle",
	Long: `Find the Odd One Out shows a grid of identical emoji with a single
different one hidden among them. Find it before the clock runs out.

Fifteen levels, growing grids, shrinking differences. Every correct pick
scores ten points per second left; every wrong pick costs three seconds.

Available commands:
  play     - Play a run directly
  menu     - Title menu with high scores
  serve    - Start SSH server for remote play
  scores   - View high scores
  levels   - Print the level catalog

Examples:
  oddone play
  oddone play --seed 42
  oddone menu
  oddone serve --ssh :2222
  oddone scores --limit 20`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.oddone/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
}

// loadConfig reads .env, the YAML config and ODDONE_* variables, then lets
// explicitly set flags win.
func loadConfig(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Game.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.Storage.Path = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}

	appConfig = cfg
	return nil
}

// newLogger builds the application logger. While a TUI owns the terminal the
// log goes to the configured file; otherwise to stderr. The returned func
// closes the file.
func newLogger(toFile bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(appConfig.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", appConfig.Log.Level, err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}

	if toFile {
		if appConfig.Log.File == "" {
			w = io.Discard
		} else {
			path, err := storage.ExpandHome(appConfig.Log.File)
			if err != nil {
				return nil, nil, err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
			}
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return nil, nil, fmt.Errorf("cannot open log file: %w", err)
			}
			w = f
			closeFn = func() { f.Close() }
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "oddone",
		Level:           level,
	})
	return logger, closeFn, nil
}

// openStore opens the scores database. A failure is logged and the game
// runs without storage.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(appConfig.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", appConfig.Storage.Path, "error", err)
		return nil
	}
	return store
}

// runtimeConfig returns the terminal size and seed a local session starts with.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = appConfig.Game.Seed
	return cfg
}

// localPlayer names the player for locally recorded runs.
func localPlayer() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}
