package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oddone/internal/games/oddone"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Print the level catalog",
	Long:  `Shows every level with its grid, emoji pair and time budget, then checks the catalog.`,
	Args:  cobra.NoArgs,
	RunE:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	levels := oddone.Levels()

	fmt.Println("Levels:")
	fmt.Println()

	// Print header
	fmt.Printf("  %-5s  %-6s  %-6s  %-4s  %-4s  %s\n", "Level", "Tier", "Grid", "Find", "In", "Time")
	fmt.Printf("  %-5s  %-6s  %-6s  %-4s  %-4s  %s\n", "-----", "----", "----", "----", "--", "----")

	for i, lvl := range levels {
		grid := fmt.Sprintf("%dx%d", lvl.GridSize, lvl.GridSize)
		// Emoji are two columns wide, so pad by hand
		fmt.Printf("  %-5d  %-6s  %-6s  %s    %s    %ds\n",
			i+1, lvl.Tier, grid, lvl.Odd, lvl.Common, lvl.TimeBudget)
	}

	fmt.Println()
	if err := oddone.Validate(levels); err != nil {
		return fmt.Errorf("level catalog is invalid: %w", err)
	}
	fmt.Printf("%d levels OK. Run 'oddone play' to start.\n", len(levels))
	return nil
}
