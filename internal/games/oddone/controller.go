package oddone

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
)

// ErrClosed is returned by requests made after the controller loop ended.
var ErrClosed = errors.New("oddone: controller closed")

// Default timings.
const (
	DefaultTickInterval = time.Second
	DefaultRevealDelay  = time.Second
)

// Controller owns a Session together with its countdown ticker and the
// deferred level advance. All mutation happens on the goroutine running Run;
// callers talk to it through Click, Restart and Snapshot.
type Controller struct {
	clock        clockwork.Clock
	logger       *log.Logger
	tickInterval time.Duration
	revealDelay  time.Duration
	seed         int64

	session *Session
	seq     uint64

	// Owned by the loop goroutine.
	ticker     clockwork.Ticker
	tickerGen  uint64
	advance    clockwork.Timer
	advanceGen uint64

	requests chan request
	updates  chan Snapshot
	quit     chan struct{}
	done     chan struct{}

	closeOnce sync.Once
	runOnce   sync.Once
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock driving the countdown. Tests pass a fake clock.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithSeed sets the RNG seed used to place the odd cell.
func WithSeed(seed int64) Option {
	return func(c *Controller) {
		c.seed = seed
	}
}

// WithLogger sets the logger for session events.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTickInterval overrides the length of one countdown second.
func WithTickInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.tickInterval = d
		}
	}
}

// WithRevealDelay overrides how long a correct cell is shown before advancing.
func WithRevealDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.revealDelay = d
		}
	}
}

type requestKind int

const (
	reqClick requestKind = iota
	reqRestart
	reqSnapshot
)

type request struct {
	kind  requestKind
	index int
	reply chan Snapshot
}

// NewController creates a controller at level 0. The countdown starts with Run.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		clock:        clockwork.NewRealClock(),
		logger:       log.New(io.Discard),
		tickInterval: DefaultTickInterval,
		revealDelay:  DefaultRevealDelay,
		seed:         time.Now().UnixNano(),
		requests:     make(chan request),
		updates:      make(chan Snapshot, 1),
		quit:         make(chan struct{}),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.session = NewSession(c.seed)
	return c
}

// Updates delivers snapshots produced by the countdown and the level advance,
// plus one initial snapshot when Run starts. Only the latest undelivered
// snapshot is kept; compare Seq to discard stale ones.
func (c *Controller) Updates() <-chan Snapshot {
	return c.updates
}

// Done is closed once Run has returned and every timer is released.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Run drives the session until ctx is cancelled or Close is called.
// It must be called at most once.
func (c *Controller) Run(ctx context.Context) error {
	err := ErrClosed
	c.runOnce.Do(func() {
		err = c.loop(ctx)
	})
	return err
}

func (c *Controller) loop(ctx context.Context) error {
	defer close(c.done)
	defer c.stopTimers()

	c.logLevelBegin()
	c.syncTimers()
	c.publish(c.snapshot())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-c.quit:
			return nil

		case <-c.tickerChan():
			if c.session.Tick() {
				c.logger.Info("time is up",
					"level", c.session.LevelIndex()+1,
					"score", c.session.Score(),
				)
			}
			c.syncTimers()
			c.publish(c.snapshot())

		case <-c.advanceChan():
			gen := c.advanceGen
			c.advance = nil
			if c.session.Advance(gen) {
				c.logLevelBegin()
			} else {
				c.logger.Debug("dropped stale level advance", "generation", gen)
			}
			c.syncTimers()
			c.publish(c.snapshot())

		case req := <-c.requests:
			c.handle(req)
		}
	}
}

// handle applies a synchronous request and replies with the resulting state.
func (c *Controller) handle(req request) {
	switch req.kind {
	case reqClick:
		res := c.session.Click(req.index)
		switch res.Outcome {
		case ClickCorrect:
			c.logger.Debug("correct cell",
				"level", c.session.LevelIndex()+1,
				"gained", res.Gained,
				"score", c.session.Score(),
			)
			c.scheduleAdvance(res.Generation)
		case ClickWrong:
			c.logger.Debug("wrong cell",
				"level", c.session.LevelIndex()+1,
				"index", req.index,
				"remaining", c.session.TimeRemaining(),
			)
		}
	case reqRestart:
		c.cancelAdvance()
		c.session.Restart()
		c.logger.Info("session restarted")
		c.logLevelBegin()
	case reqSnapshot:
	}

	c.syncTimers()
	req.reply <- c.snapshot()
}

// syncTimers keeps exactly one ticker alive while the countdown should run.
// A new level always gets a fresh ticker so its first second is a full one.
func (c *Controller) syncTimers() {
	running := c.session.Phase() == PhasePlaying && !c.session.Revealing()

	if c.ticker != nil && (!running || c.tickerGen != c.session.Generation()) {
		c.ticker.Stop()
		c.ticker = nil
	}
	if running && c.ticker == nil {
		c.ticker = c.clock.NewTicker(c.tickInterval)
		c.tickerGen = c.session.Generation()
	}
}

func (c *Controller) scheduleAdvance(generation uint64) {
	c.cancelAdvance()
	c.advance = c.clock.NewTimer(c.revealDelay)
	c.advanceGen = generation
}

func (c *Controller) cancelAdvance() {
	if c.advance == nil {
		return
	}
	if !c.advance.Stop() {
		select {
		case <-c.advance.Chan():
		default:
		}
	}
	c.advance = nil
}

func (c *Controller) stopTimers() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
	c.cancelAdvance()
}

// tickerChan returns the ticker channel, or nil (never ready) when stopped.
func (c *Controller) tickerChan() <-chan time.Time {
	if c.ticker == nil {
		return nil
	}
	return c.ticker.Chan()
}

func (c *Controller) advanceChan() <-chan time.Time {
	if c.advance == nil {
		return nil
	}
	return c.advance.Chan()
}

func (c *Controller) snapshot() Snapshot {
	c.seq++
	snap := c.session.Snapshot()
	snap.Seq = c.seq
	return snap
}

// publish replaces any undelivered snapshot with snap.
func (c *Controller) publish(snap Snapshot) {
	select {
	case c.updates <- snap:
		return
	default:
	}
	select {
	case <-c.updates:
	default:
	}
	select {
	case c.updates <- snap:
	default:
	}
}

func (c *Controller) logLevelBegin() {
	if c.session.Phase() == PhaseWon {
		c.logger.Info("all levels cleared", "score", c.session.Score())
		return
	}
	lvl := GetLevel(c.session.LevelIndex())
	c.logger.Debug("level begins",
		"level", c.session.LevelIndex()+1,
		"grid", lvl.GridSize,
		"time", lvl.TimeBudget,
	)
}

// Click forwards a click on the cell at index.
func (c *Controller) Click(ctx context.Context, index int) (Snapshot, error) {
	return c.call(ctx, request{kind: reqClick, index: index})
}

// Restart resets the session to level 0 with a zero score.
func (c *Controller) Restart(ctx context.Context) (Snapshot, error) {
	return c.call(ctx, request{kind: reqRestart})
}

// Snapshot returns the current state without changing it.
func (c *Controller) Snapshot(ctx context.Context) (Snapshot, error) {
	return c.call(ctx, request{kind: reqSnapshot})
}

func (c *Controller) call(ctx context.Context, req request) (Snapshot, error) {
	req.reply = make(chan Snapshot, 1)

	select {
	case c.requests <- req:
	case <-c.done:
		return Snapshot{}, ErrClosed
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}

	select {
	case snap := <-req.reply:
		return snap, nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Close stops the loop. Safe to call more than once.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		close(c.quit)
	})
}
