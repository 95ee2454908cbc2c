package oddone

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
)

const waitTimeout = 2 * time.Second

// startController runs a controller on a fake clock and waits for its
// initial snapshot, which is published once the countdown is armed.
func startController(t *testing.T, opts ...Option) (*Controller, *clockwork.FakeClock, Snapshot) {
	t.Helper()

	clock := clockwork.NewFakeClock()
	all := append([]Option{WithClock(clock), WithSeed(1)}, opts...)
	c := NewController(all...)

	ctx, cancel := context.WithCancel(context.Background())
	go c.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-c.Done()
	})

	return c, clock, nextUpdate(t, c)
}

func nextUpdate(t *testing.T, c *Controller) Snapshot {
	t.Helper()
	select {
	case snap := <-c.Updates():
		return snap
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for a controller update")
		return Snapshot{}
	}
}

// tick advances the fake clock by one second and returns the resulting update.
func tick(t *testing.T, c *Controller, clock *clockwork.FakeClock) Snapshot {
	t.Helper()
	clock.Advance(time.Second)
	return nextUpdate(t, c)
}

func requestCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	t.Cleanup(cancel)
	return ctx
}

// oddCell finds the cell that differs from the rest of the board.
func oddCell(t *testing.T, snap Snapshot) int {
	t.Helper()
	if len(snap.Cells) < 3 {
		t.Fatalf("board too small: %v", snap.Cells)
	}
	common := snap.Cells[0]
	if snap.Cells[1] != common && snap.Cells[2] != common {
		return 0
	}
	if snap.Cells[1] == snap.Cells[2] {
		common = snap.Cells[1]
	}
	for i, c := range snap.Cells {
		if c != common {
			return i
		}
	}
	t.Fatal("no odd cell on the board")
	return -1
}

func TestControllerInitialSnapshot(t *testing.T) {
	_, _, snap := startController(t)

	if snap.Seq == 0 {
		t.Error("initial snapshot should carry a sequence number")
	}
	if snap.Level != 0 || snap.Phase != PhasePlaying || snap.TimeRemaining != 10 || snap.GridSize != 3 {
		t.Errorf("initial snapshot = %+v, want fresh level 0", snap)
	}
}

func TestControllerCountdownLosesOnce(t *testing.T) {
	var buf bytes.Buffer
	c, clock, _ := startController(t, WithLogger(log.New(&buf)))

	var last Snapshot
	for want := 9; want >= 0; want-- {
		last = tick(t, c, clock)
		if last.TimeRemaining != want {
			t.Fatalf("TimeRemaining = %d, want %d", last.TimeRemaining, want)
		}
		if want > 0 && last.Phase != PhasePlaying {
			t.Fatalf("phase = %v at %ds, want playing", last.Phase, want)
		}
	}
	if last.Phase != PhaseLost {
		t.Fatalf("phase = %v, want lost", last.Phase)
	}

	// Nothing is left to fire once the level is lost
	clock.Advance(5 * time.Second)
	snap, err := c.Snapshot(requestCtx(t))
	if err != nil {
		t.Fatalf("Snapshot() failed: %v", err)
	}
	if snap.Phase != PhaseLost || snap.TimeRemaining != 0 {
		t.Errorf("after loss: phase %v time %d", snap.Phase, snap.TimeRemaining)
	}
	if c.ticker != nil {
		t.Error("ticker should be stopped after the loss")
	}
	select {
	case extra := <-c.Updates():
		t.Errorf("unexpected update after loss: %+v", extra)
	default:
	}

	if n := strings.Count(buf.String(), "time is up"); n != 1 {
		t.Errorf("loss logged %d times, want once", n)
	}
}

func TestControllerWrongClick(t *testing.T) {
	c, _, first := startController(t)
	wrong := (oddCell(t, first) + 1) % len(first.Cells)

	snap, err := c.Click(requestCtx(t), wrong)
	if err != nil {
		t.Fatalf("Click() failed: %v", err)
	}
	if snap.TimeRemaining != 7 || snap.Score != 0 || snap.Misses != 1 {
		t.Errorf("after wrong click: time %d score %d misses %d, want 7/0/1", snap.TimeRemaining, snap.Score, snap.Misses)
	}
	if snap.Seq <= first.Seq {
		t.Errorf("Seq = %d, want greater than %d", snap.Seq, first.Seq)
	}
}

func TestControllerCorrectClickFreezesAndAdvances(t *testing.T) {
	c, clock, first := startController(t, WithRevealDelay(3*time.Second))

	snap, err := c.Click(requestCtx(t), oddCell(t, first))
	if err != nil {
		t.Fatalf("Click() failed: %v", err)
	}
	if !snap.RevealCorrect || snap.Score != 100 || snap.OddIndex != oddCell(t, first) {
		t.Fatalf("after correct click: %+v", snap)
	}

	// The countdown is frozen during the reveal
	clock.Advance(time.Second)
	clock.Advance(time.Second)
	snap, err = c.Snapshot(requestCtx(t))
	if err != nil {
		t.Fatalf("Snapshot() failed: %v", err)
	}
	if snap.TimeRemaining != 10 || snap.Level != 0 || !snap.RevealCorrect {
		t.Fatalf("during reveal: level %d time %d reveal %v, want 0/10/true", snap.Level, snap.TimeRemaining, snap.RevealCorrect)
	}

	next := tick(t, c, clock)
	if next.Level != 1 || next.GridSize != 4 || next.TimeRemaining != 12 {
		t.Fatalf("after reveal: level %d grid %d time %d, want 1/4/12", next.Level, next.GridSize, next.TimeRemaining)
	}
	if next.RevealCorrect || next.Score != 100 {
		t.Errorf("after reveal: reveal %v score %d", next.RevealCorrect, next.Score)
	}

	// The new level has its own running countdown
	if got := tick(t, c, clock); got.Level != 1 || got.TimeRemaining != 11 {
		t.Errorf("first tick on level 1: level %d time %d, want 1/11", got.Level, got.TimeRemaining)
	}
}

func TestControllerRestartCancelsAdvance(t *testing.T) {
	c, clock, first := startController(t)

	if _, err := c.Click(requestCtx(t), oddCell(t, first)); err != nil {
		t.Fatalf("Click() failed: %v", err)
	}

	snap, err := c.Restart(requestCtx(t))
	if err != nil {
		t.Fatalf("Restart() failed: %v", err)
	}
	if snap.Level != 0 || snap.Score != 0 || snap.RevealCorrect || snap.TimeRemaining != 10 {
		t.Fatalf("after restart: %+v", snap)
	}

	// The only thing due after one second is the new countdown
	next := tick(t, c, clock)
	if next.Level != 0 || next.TimeRemaining != 9 {
		t.Errorf("after one second: level %d time %d, want 0/9", next.Level, next.TimeRemaining)
	}
	if c.advance != nil {
		t.Error("pending advance should have been cancelled")
	}
}

func TestControllerRestartAfterLoss(t *testing.T) {
	c, clock, _ := startController(t)

	for i := 0; i < 10; i++ {
		tick(t, c, clock)
	}

	snap, err := c.Restart(requestCtx(t))
	if err != nil {
		t.Fatalf("Restart() failed: %v", err)
	}
	if snap.Phase != PhasePlaying || snap.TimeRemaining != 10 {
		t.Fatalf("after restart: phase %v time %d", snap.Phase, snap.TimeRemaining)
	}

	if got := tick(t, c, clock); got.TimeRemaining != 9 {
		t.Errorf("countdown after restart: time %d, want 9", got.TimeRemaining)
	}
}

func TestControllerClose(t *testing.T) {
	c := NewController(WithClock(clockwork.NewFakeClock()))

	errCh := make(chan error, 1)
	go func() { errCh <- c.Run(context.Background()) }()
	<-c.Updates()

	c.Close()
	c.Close()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run() after Close = %v, want nil", err)
		}
	case <-time.After(waitTimeout):
		t.Fatal("Run() did not return after Close")
	}

	if _, err := c.Click(context.Background(), 0); !errors.Is(err, ErrClosed) {
		t.Errorf("Click() after Close = %v, want ErrClosed", err)
	}
	if err := c.Run(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("second Run() = %v, want ErrClosed", err)
	}
	if c.ticker != nil || c.advance != nil {
		t.Error("timers should be released when the loop exits")
	}
}

func TestControllerContextCancel(t *testing.T) {
	c := NewController(WithClock(clockwork.NewFakeClock()))
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- c.Run(ctx) }()
	<-c.Updates()

	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(waitTimeout):
		t.Fatal("Run() did not return after cancel")
	}

	select {
	case <-c.Done():
	default:
		t.Error("Done() should be closed")
	}
}
