package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oddone/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start a run at level 1 in this terminal.

Controls:
  Arrows/hjkl/wasd - Move the cursor
  Enter/Space      - Pick the cell under the cursor
  Mouse click      - Pick the clicked cell
  R                - Restart from level 1
  Q/Ctrl+C         - Quit

A correct pick scores 10 points per second left on the clock.
A wrong pick costs 3 seconds.

Examples:
  oddone play
  oddone play --seed 42
  oddone play --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	logger.Info("starting run", "seed", cfg.Seed, "size", fmt.Sprintf("%dx%d", cfg.ScreenW, cfg.ScreenH))

	_, err = tui.Run(tui.GameOptions{
		Store:  store,
		Config: cfg,
		Theme:  appConfig.Theme,
		Logger: logger,
		Player: localPlayer(),
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
