package oddone

// Phase is the coarse state of a session.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseWon
	PhaseLost
)

// String returns the phase name used in logs and storage.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether only a restart can leave this phase.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// urgentThreshold is the remaining time at which the clock is shown as urgent.
const urgentThreshold = 5

// Snapshot is an immutable copy of the session handed to renderers.
type Snapshot struct {
	Seq           uint64 // Increases with every published snapshot
	Level         int    // 0-based level index; equals LevelCount when won
	LevelCount    int
	GridSize      int      // 0 when no grid is allocated
	Cells         []string // Copy of the board, row-major
	TimeRemaining int
	Score         int
	Phase         Phase
	RevealCorrect bool
	OddIndex      int // -1 unless RevealCorrect
	Urgent        bool
	Misses        int
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Level:         s.levelIndex,
		LevelCount:    LevelCount(),
		TimeRemaining: s.timeRemaining,
		Score:         s.score,
		Phase:         s.phase,
		RevealCorrect: s.revealCorrect,
		OddIndex:      -1,
		Misses:        s.misses,
	}

	if s.cells != nil {
		snap.GridSize = s.gridSize
		snap.Cells = make([]string, len(s.cells))
		copy(snap.Cells, s.cells)
	}
	if s.revealCorrect {
		snap.OddIndex = s.oddIndex
	}
	snap.Urgent = s.phase == PhasePlaying && s.timeRemaining <= urgentThreshold

	return snap
}

// DisplayLevel returns the 1-based level number, capped at the level count.
func (s Snapshot) DisplayLevel() int {
	if s.Level >= s.LevelCount {
		return s.LevelCount
	}
	return s.Level + 1
}
