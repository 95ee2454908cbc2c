// Package oddone implements "Find the Odd One Out": a timed puzzle where the
// player spots the single different emoji in a square grid.
package oddone

import "fmt"

// Tier groups levels for display.
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// Level defines one entry of the campaign.
type Level struct {
	GridSize   int    // Side length of the square grid
	Common     string // Emoji filling every cell but one
	Odd        string // Emoji hidden in exactly one cell
	TimeBudget int    // Countdown start, in seconds
	Tier       Tier
}

// Cells returns the number of cells on the level's board.
func (l Level) Cells() int {
	return l.GridSize * l.GridSize
}

// levels is the campaign in progression order. It is never written after init.
var levels = []Level{
	{GridSize: 3, Common: "😀", Odd: "😃", TimeBudget: 10, Tier: TierEasy},
	{GridSize: 4, Common: "🐶", Odd: "🐱", TimeBudget: 12, Tier: TierEasy},
	{GridSize: 4, Common: "⭐", Odd: "✨", TimeBudget: 12, Tier: TierEasy},
	{GridSize: 5, Common: "🍎", Odd: "🍏", TimeBudget: 15, Tier: TierEasy},
	{GridSize: 5, Common: "🔵", Odd: "🔴", TimeBudget: 15, Tier: TierEasy},

	{GridSize: 6, Common: "😊", Odd: "😉", TimeBudget: 18, Tier: TierMedium},
	{GridSize: 6, Common: "🌙", Odd: "☀️", TimeBudget: 18, Tier: TierMedium},
	{GridSize: 7, Common: "💙", Odd: "💚", TimeBudget: 20, Tier: TierMedium},
	{GridSize: 7, Common: "🦁", Odd: "🐯", TimeBudget: 20, Tier: TierMedium},
	{GridSize: 8, Common: "🌸", Odd: "🌺", TimeBudget: 22, Tier: TierMedium},

	{GridSize: 8, Common: "😄", Odd: "😁", TimeBudget: 22, Tier: TierHard},
	{GridSize: 9, Common: "🟢", Odd: "🟩", TimeBudget: 25, Tier: TierHard},
	{GridSize: 9, Common: "🌟", Odd: "⭐", TimeBudget: 25, Tier: TierHard},
	{GridSize: 10, Common: "😺", Odd: "😸", TimeBudget: 28, Tier: TierHard},
	{GridSize: 10, Common: "🔷", Odd: "🔶", TimeBudget: 28, Tier: TierHard},
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(levels)
}

// GetLevel returns the level at the given index (0-based).
// Returns nil if index is out of range.
func GetLevel(index int) *Level {
	if index < 0 || index >= len(levels) {
		return nil
	}
	lvl := levels[index]
	return &lvl
}

// Levels returns a copy of the campaign.
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels)
	return out
}

// MaxGridSize returns the largest grid side used by any level.
func MaxGridSize() int {
	largest := 0
	for _, lvl := range levels {
		if lvl.GridSize > largest {
			largest = lvl.GridSize
		}
	}
	return largest
}

// Validate checks the authoring rules of a level list and reports the first
// violation. Difficulty must never drop from one level to the next.
func Validate(list []Level) error {
	if len(list) == 0 {
		return fmt.Errorf("oddone: empty level list")
	}
	for i, lvl := range list {
		n := i + 1
		if lvl.GridSize < 3 {
			return fmt.Errorf("oddone: level %d: grid size %d below 3", n, lvl.GridSize)
		}
		if lvl.TimeBudget <= 0 {
			return fmt.Errorf("oddone: level %d: time budget must be positive, got %d", n, lvl.TimeBudget)
		}
		if lvl.Common == "" || lvl.Odd == "" {
			return fmt.Errorf("oddone: level %d: missing emoji", n)
		}
		if lvl.Common == lvl.Odd {
			return fmt.Errorf("oddone: level %d: common and odd emoji are both %q", n, lvl.Common)
		}
		if i > 0 {
			prev := list[i-1]
			if lvl.GridSize < prev.GridSize {
				return fmt.Errorf("oddone: level %d: grid shrinks from %d to %d", n, prev.GridSize, lvl.GridSize)
			}
			if lvl.TimeBudget < prev.TimeBudget {
				return fmt.Errorf("oddone: level %d: time budget drops from %d to %d", n, prev.TimeBudget, lvl.TimeBudget)
			}
		}
	}
	return nil
}
