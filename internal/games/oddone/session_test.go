package oddone

import "testing"

// wrongIndex returns some cell that is not the odd one.
func wrongIndex(s *Session) int {
	return (s.oddIndex + 1) % len(s.cells)
}

// clearLevel clicks the odd cell and applies the advance.
func clearLevel(t *testing.T, s *Session) {
	t.Helper()
	res := s.Click(s.oddIndex)
	if res.Outcome != ClickCorrect {
		t.Fatalf("Click(odd) outcome = %v, want correct", res.Outcome)
	}
	if !s.Advance(res.Generation) {
		t.Fatalf("Advance(%d) was rejected", res.Generation)
	}
}

func TestBeginLevelBoard(t *testing.T) {
	s := NewSession(1)

	for i := 0; i < LevelCount(); i++ {
		s.BeginLevel(i)
		lvl := GetLevel(i)

		if len(s.cells) != lvl.GridSize*lvl.GridSize {
			t.Fatalf("level %d: %d cells, want %d", i, len(s.cells), lvl.GridSize*lvl.GridSize)
		}

		odd := 0
		for j, c := range s.cells {
			switch c {
			case lvl.Odd:
				odd++
				if j != s.oddIndex {
					t.Errorf("level %d: odd emoji at %d but oddIndex = %d", i, j, s.oddIndex)
				}
			case lvl.Common:
			default:
				t.Errorf("level %d: unexpected cell %q", i, c)
			}
		}
		if odd != 1 {
			t.Errorf("level %d: %d odd cells, want exactly 1", i, odd)
		}

		if s.timeRemaining != lvl.TimeBudget {
			t.Errorf("level %d: timeRemaining = %d, want %d", i, s.timeRemaining, lvl.TimeBudget)
		}
		if s.phase != PhasePlaying || s.revealCorrect {
			t.Errorf("level %d: phase = %v reveal = %v, want playing without reveal", i, s.phase, s.revealCorrect)
		}
	}
}

func TestBeginLevelPastCatalogWins(t *testing.T) {
	s := NewSession(1)
	s.BeginLevel(LevelCount())

	if s.phase != PhaseWon {
		t.Errorf("phase = %v, want won", s.phase)
	}
	if s.cells != nil {
		t.Errorf("cells = %v, want no grid", s.cells)
	}

	snap := s.Snapshot()
	if snap.GridSize != 0 || snap.Cells != nil {
		t.Errorf("snapshot grid = %d/%v, want empty", snap.GridSize, snap.Cells)
	}
	if snap.DisplayLevel() != LevelCount() {
		t.Errorf("DisplayLevel() = %d, want %d", snap.DisplayLevel(), LevelCount())
	}
}

func TestBeginLevelNegativeIndex(t *testing.T) {
	s := NewSession(1)
	s.BeginLevel(-3)

	if s.levelIndex != 0 || s.phase != PhasePlaying || len(s.cells) != 9 {
		t.Errorf("BeginLevel(-3) = level %d phase %v cells %d, want level 0 board", s.levelIndex, s.phase, len(s.cells))
	}
}

func TestCorrectClickScores(t *testing.T) {
	tests := []struct {
		name      string
		ticks     int
		wantScore int
	}{
		{name: "immediately", ticks: 0, wantScore: 100},
		{name: "after three seconds", ticks: 3, wantScore: 70},
		{name: "on the last second", ticks: 9, wantScore: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(7)
			for i := 0; i < tt.ticks; i++ {
				s.Tick()
			}

			res := s.Click(s.oddIndex)
			if res.Outcome != ClickCorrect {
				t.Fatalf("outcome = %v, want correct", res.Outcome)
			}
			if res.Gained != tt.wantScore || s.score != tt.wantScore {
				t.Errorf("gained %d score %d, want %d", res.Gained, s.score, tt.wantScore)
			}
			if !s.revealCorrect {
				t.Error("revealCorrect should be set after a correct click")
			}
		})
	}
}

func TestCorrectClickThenAdvance(t *testing.T) {
	s := NewSession(3)

	res := s.Click(s.oddIndex)
	if s.score != 100 {
		t.Fatalf("score = %d, want 100", s.score)
	}

	// Board is frozen while the correct cell is shown
	if again := s.Click(s.oddIndex); again.Outcome != ClickIgnored {
		t.Errorf("second click outcome = %v, want ignored", again.Outcome)
	}
	if s.Tick() || s.timeRemaining != 10 {
		t.Errorf("tick during reveal changed time to %d", s.timeRemaining)
	}

	if !s.Advance(res.Generation) {
		t.Fatal("Advance() rejected the current generation")
	}
	if s.levelIndex != 1 || len(s.cells) != 16 || s.timeRemaining != 12 {
		t.Errorf("after advance: level %d cells %d time %d, want 1/16/12", s.levelIndex, len(s.cells), s.timeRemaining)
	}
	if s.revealCorrect {
		t.Error("revealCorrect should be cleared on the new level")
	}
	if s.score != 100 {
		t.Errorf("score = %d, should carry over", s.score)
	}
}

func TestWrongClicks(t *testing.T) {
	s := NewSession(5)

	want := []int{7, 4, 1}
	for i, w := range want {
		res := s.Click(wrongIndex(s))
		if res.Outcome != ClickWrong {
			t.Fatalf("click %d outcome = %v, want wrong", i+1, res.Outcome)
		}
		if s.timeRemaining != w {
			t.Errorf("click %d: timeRemaining = %d, want %d", i+1, s.timeRemaining, w)
		}
	}

	if s.phase != PhasePlaying {
		t.Errorf("phase = %v, want playing", s.phase)
	}
	if s.score != 0 {
		t.Errorf("score = %d, want 0", s.score)
	}
	if s.misses != 3 {
		t.Errorf("misses = %d, want 3", s.misses)
	}

	// Floor at zero; phase is left to the countdown
	s.Click(wrongIndex(s))
	if s.timeRemaining != 0 || s.phase != PhasePlaying {
		t.Errorf("after floor: time %d phase %v, want 0 playing", s.timeRemaining, s.phase)
	}
	if !s.Tick() || s.phase != PhaseLost {
		t.Errorf("next tick should lose, phase = %v", s.phase)
	}
}

func TestClickOutOfRangeIgnored(t *testing.T) {
	s := NewSession(5)
	before := s.Snapshot()

	for _, idx := range []int{-1, len(s.cells), 1000} {
		if res := s.Click(idx); res.Outcome != ClickIgnored {
			t.Errorf("Click(%d) outcome = %v, want ignored", idx, res.Outcome)
		}
	}

	after := s.Snapshot()
	if after.TimeRemaining != before.TimeRemaining || after.Score != before.Score || after.Misses != before.Misses {
		t.Errorf("out-of-range clicks changed state: %+v -> %+v", before, after)
	}
}

func TestTimerRunsOut(t *testing.T) {
	s := NewSession(9)

	lost := 0
	for i := 0; i < 10; i++ {
		if s.Tick() {
			lost++
		}
	}

	if s.timeRemaining != 0 || s.phase != PhaseLost {
		t.Fatalf("after 10 ticks: time %d phase %v, want 0 lost", s.timeRemaining, s.phase)
	}
	if lost != 1 {
		t.Errorf("Tick reported the loss %d times, want once", lost)
	}

	// Frozen until restart
	if s.Tick() {
		t.Error("tick after loss reported another loss")
	}
	if res := s.Click(s.oddIndex); res.Outcome != ClickIgnored {
		t.Errorf("click after loss outcome = %v, want ignored", res.Outcome)
	}
	if s.score != 0 || s.timeRemaining != 0 || s.phase != PhaseLost {
		t.Errorf("state changed after loss: score %d time %d phase %v", s.score, s.timeRemaining, s.phase)
	}
}

func TestScoreNeverDecreases(t *testing.T) {
	s := NewSession(11)
	prev := 0

	for step := 0; step < 200 && s.phase == PhasePlaying; step++ {
		var res ClickResult
		switch step % 4 {
		case 0, 1:
			res = s.Click(wrongIndex(s))
		case 2:
			s.Tick()
		case 3:
			res = s.Click(s.oddIndex)
		}
		if res.Outcome == ClickCorrect {
			s.Advance(res.Generation)
		}

		if s.score < prev {
			t.Fatalf("step %d: score dropped from %d to %d", step, prev, s.score)
		}
		prev = s.score
	}
}

func TestClearingEveryLevelWins(t *testing.T) {
	s := NewSession(13)

	for i := 0; i < LevelCount(); i++ {
		if s.levelIndex != i {
			t.Fatalf("levelIndex = %d, want %d", s.levelIndex, i)
		}
		clearLevel(t, s)
	}

	if s.phase != PhaseWon {
		t.Fatalf("phase = %v, want won", s.phase)
	}

	// Full time on every level
	want := 0
	for _, lvl := range Levels() {
		want += lvl.TimeBudget * pointsPerSecond
	}
	if s.score != want {
		t.Errorf("score = %d, want %d", s.score, want)
	}

	if res := s.Click(0); res.Outcome != ClickIgnored {
		t.Errorf("click after win outcome = %v, want ignored", res.Outcome)
	}
}

func TestRestart(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, s *Session)
		phase Phase
	}{
		{
			name: "from lost",
			setup: func(t *testing.T, s *Session) {
				clearLevel(t, s)
				for s.phase == PhasePlaying {
					s.Tick()
				}
			},
			phase: PhaseLost,
		},
		{
			name: "from won",
			setup: func(t *testing.T, s *Session) {
				for s.phase == PhasePlaying {
					clearLevel(t, s)
				}
			},
			phase: PhaseWon,
		},
		{
			name: "mid level",
			setup: func(t *testing.T, s *Session) {
				clearLevel(t, s)
				s.Click(wrongIndex(s))
			},
			phase: PhasePlaying,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(17)
			tt.setup(t, s)
			if s.phase != tt.phase {
				t.Fatalf("setup phase = %v, want %v", s.phase, tt.phase)
			}
			if s.score == 0 {
				t.Fatal("setup should leave a non-zero score")
			}

			s.Restart()

			if s.score != 0 || s.levelIndex != 0 || s.misses != 0 {
				t.Errorf("after restart: score %d level %d misses %d, want zeros", s.score, s.levelIndex, s.misses)
			}
			if s.phase != PhasePlaying || len(s.cells) != 9 || s.timeRemaining != 10 {
				t.Errorf("after restart: phase %v cells %d time %d, want fresh level 0", s.phase, len(s.cells), s.timeRemaining)
			}
		})
	}
}

func TestStaleAdvanceAfterRestart(t *testing.T) {
	s := NewSession(19)

	res := s.Click(s.oddIndex)
	s.Restart()

	if s.Advance(res.Generation) {
		t.Fatal("Advance() accepted a generation from before the restart")
	}
	if s.levelIndex != 0 || s.phase != PhasePlaying || s.score != 0 {
		t.Errorf("stale advance changed state: level %d phase %v score %d", s.levelIndex, s.phase, s.score)
	}
}

func TestAdvanceWithoutRevealIgnored(t *testing.T) {
	s := NewSession(23)

	if s.Advance(s.Generation()) {
		t.Error("Advance() without a correct click should be ignored")
	}
	if s.levelIndex != 0 {
		t.Errorf("levelIndex = %d, want 0", s.levelIndex)
	}
}

func TestSnapshot(t *testing.T) {
	s := NewSession(29)

	snap := s.Snapshot()
	if snap.OddIndex != -1 {
		t.Errorf("OddIndex = %d while playing, want hidden", snap.OddIndex)
	}
	if snap.DisplayLevel() != 1 || snap.LevelCount != LevelCount() {
		t.Errorf("level %d/%d, want 1/%d", snap.DisplayLevel(), snap.LevelCount, LevelCount())
	}

	// Snapshot cells are a copy
	snap.Cells[0] = "x"
	if s.cells[0] == "x" {
		t.Error("mutating the snapshot changed the session board")
	}

	s.Click(s.oddIndex)
	if got := s.Snapshot().OddIndex; got != s.oddIndex {
		t.Errorf("OddIndex = %d during reveal, want %d", got, s.oddIndex)
	}
}

func TestSnapshotUrgent(t *testing.T) {
	s := NewSession(31)

	for s.timeRemaining > urgentThreshold+1 {
		s.Tick()
	}
	if s.Snapshot().Urgent {
		t.Errorf("Urgent at %ds, want false", s.timeRemaining)
	}

	s.Tick()
	if !s.Snapshot().Urgent {
		t.Errorf("Urgent at %ds, want true", s.timeRemaining)
	}

	for s.phase == PhasePlaying {
		s.Tick()
	}
	if s.Snapshot().Urgent {
		t.Error("Urgent should be false once the session is lost")
	}
}

func TestSeededBoardsRepeat(t *testing.T) {
	a := NewSession(42)
	b := NewSession(42)

	for i := 0; i < 5; i++ {
		if a.oddIndex != b.oddIndex {
			t.Fatalf("level %d: same seed placed odd cell at %d and %d", i, a.oddIndex, b.oddIndex)
		}
		clearLevel(t, a)
		clearLevel(t, b)
	}
}
