package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oddone/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the title menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a run, B or Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  oddone menu
  oddone menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
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
	player := localPlayer()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg, appConfig.Theme)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}

		// Update config with any size changes
		cfg = menuResult.Config

		switch menuResult.Choice {
		case tui.ChoiceScores:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, appConfig.Theme)
			if err != nil {
				return fmt.Errorf("scoreboard: %w", err)
			}
			if !goBack {
				return nil
			}

		case tui.ChoicePlay:
			back, err := tui.Run(tui.GameOptions{
				Store:     store,
				Config:    cfg,
				Theme:     appConfig.Theme,
				Logger:    logger,
				Player:    player,
				AllowBack: true,
			})
			if err != nil {
				return fmt.Errorf("running game: %w", err)
			}
			if !back {
				return nil
			}

		default:
			return nil
		}
	}
}
