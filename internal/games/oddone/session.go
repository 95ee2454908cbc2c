package oddone

import "math/rand"

// Scoring rules.
const (
	pointsPerSecond = 10 // Score gained per remaining second on a correct click
	missPenalty     = 3  // Seconds lost on a wrong click
)

// ClickOutcome describes what a click did to the session.
type ClickOutcome int

const (
	ClickIgnored ClickOutcome = iota
	ClickCorrect
	ClickWrong
)

// String returns a human-readable name for the outcome.
func (o ClickOutcome) String() string {
	switch o {
	case ClickIgnored:
		return "ignored"
	case ClickCorrect:
		return "correct"
	case ClickWrong:
		return "wrong"
	default:
		return "unknown"
	}
}

// ClickResult is returned by Session.Click.
type ClickResult struct {
	Outcome    ClickOutcome
	Gained     int    // Points added (correct clicks only)
	Generation uint64 // Generation to pass to Advance after a correct click
}

// Session is the game state machine. It has no notion of wall time: the owner
// calls Tick once per second and Advance once the reveal delay has passed.
// A Session is not safe for concurrent use.
type Session struct {
	rng *rand.Rand

	levelIndex    int
	gridSize      int
	cells         []string
	oddIndex      int
	timeRemaining int
	score         int
	phase         Phase
	revealCorrect bool
	misses        int

	// generation changes on every level begin so that a deferred advance
	// scheduled for an earlier level can be recognised and dropped.
	generation uint64
}

// NewSession creates a session seeded with the given value and begins level 0.
func NewSession(seed int64) *Session {
	s := &Session{
		rng: rand.New(rand.NewSource(seed)),
	}
	s.Restart()
	return s
}

// BeginLevel sets up the level at index. Past the last level the session is won.
func (s *Session) BeginLevel(index int) {
	s.generation++
	s.revealCorrect = false

	lvl := GetLevel(index)
	if lvl == nil {
		if index < 0 {
			index = 0
			lvl = GetLevel(0)
		} else {
			s.levelIndex = LevelCount()
			s.phase = PhaseWon
			s.gridSize = 0
			s.cells = nil
			s.oddIndex = -1
			return
		}
	}

	s.levelIndex = index
	s.gridSize = lvl.GridSize
	s.cells = make([]string, lvl.Cells())
	for i := range s.cells {
		s.cells[i] = lvl.Common
	}
	s.oddIndex = s.rng.Intn(len(s.cells))
	s.cells[s.oddIndex] = lvl.Odd
	s.timeRemaining = lvl.TimeBudget
	s.phase = PhasePlaying
}

// Tick consumes one second of the countdown.
// Returns true if the session was lost on this tick.
func (s *Session) Tick() bool {
	if s.phase != PhasePlaying || s.revealCorrect {
		return false
	}

	if s.timeRemaining <= 1 {
		s.timeRemaining = 0
		s.phase = PhaseLost
		return true
	}

	s.timeRemaining--
	return false
}

// Click handles a click on the cell at index.
func (s *Session) Click(index int) ClickResult {
	if s.phase != PhasePlaying || s.revealCorrect {
		return ClickResult{Outcome: ClickIgnored}
	}
	if index < 0 || index >= len(s.cells) {
		return ClickResult{Outcome: ClickIgnored}
	}

	if index == s.oddIndex {
		gained := s.timeRemaining * pointsPerSecond
		s.score += gained
		s.revealCorrect = true
		return ClickResult{
			Outcome:    ClickCorrect,
			Gained:     gained,
			Generation: s.generation,
		}
	}

	s.misses++
	s.timeRemaining -= missPenalty
	if s.timeRemaining < 0 {
		s.timeRemaining = 0
	}
	return ClickResult{Outcome: ClickWrong}
}

// Advance moves to the next level after a correct click.
// A generation that does not match the current level is stale and ignored.
func (s *Session) Advance(generation uint64) bool {
	if generation != s.generation || !s.revealCorrect || s.phase != PhasePlaying {
		return false
	}
	s.BeginLevel(s.levelIndex + 1)
	return true
}

// Restart resets score and begins level 0. Valid from any phase.
func (s *Session) Restart() {
	s.score = 0
	s.misses = 0
	s.levelIndex = 0
	s.BeginLevel(0)
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// LevelIndex returns the current 0-based level index.
func (s *Session) LevelIndex() int {
	return s.levelIndex
}

// Score returns the accumulated score.
func (s *Session) Score() int {
	return s.score
}

// TimeRemaining returns the seconds left on the current level.
func (s *Session) TimeRemaining() int {
	return s.timeRemaining
}

// Revealing reports whether a correct click is waiting for the level advance.
func (s *Session) Revealing() bool {
	return s.revealCorrect
}

// Generation returns the identifier of the current level attempt.
func (s *Session) Generation() uint64 {
	return s.generation
}
