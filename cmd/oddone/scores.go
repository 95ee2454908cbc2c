package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oddone/internal/games/oddone"
	"github.com/vovakirdan/oddone/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best recorded runs.

Examples:
  oddone scores
  oddone scores --limit 25
  oddone scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(appConfig.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Println("All scores cleared.")
		return nil
	}

	scores, err := store.TopScores(flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Println("High Scores - Find the Odd One Out")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'oddone play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-7s  %-6s  %-6s  %-12s  %s\n", "Rank", "Score", "Level", "Result", "Player", "Date")
	fmt.Printf("  %-4s  %-7s  %-6s  %-6s  %-12s  %s\n", "----", "-----", "-----", "------", "------", "----")

	for i, entry := range scores {
		level := fmt.Sprintf("%d/%d", entry.LevelReached, oddone.LevelCount())
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-7d  %-6s  %-6s  %-12s  %s\n",
			i+1, entry.Score, level, entry.Outcome, entry.Player, dateStr)
	}

	stats, err := store.Stats()
	if err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Won: %d  Best: %d  Average: %.0f\n",
			stats.Runs, stats.Wins, stats.HighScore, stats.AvgScore)
	}
	return nil
}
