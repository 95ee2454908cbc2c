package tui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/oddone/internal/config"
	"github.com/vovakirdan/oddone/internal/core"
	"github.com/vovakirdan/oddone/internal/games/oddone"
	"github.com/vovakirdan/oddone/internal/storage"
)

// GameOptions configures a game screen.
type GameOptions struct {
	Context   context.Context // Parent of the controller loop; defaults to Background
	Store     *storage.Store // May be nil; scores are then not recorded
	Config    core.RuntimeConfig
	Theme     config.ThemeConfig
	Logger    *log.Logger
	Player    string
	AllowBack bool // B/Esc leaves the game (menu and SSH flows)
}

// Model is the Bubble Tea model for one game screen. It renders snapshots
// from an oddone.Controller and forwards clicks to it.
type Model struct {
	ctrl   *oddone.Controller
	ctx    context.Context
	cancel context.CancelFunc

	snap   oddone.Snapshot
	cursor int
	flash  bool // Last click was a miss

	width  int
	height int

	store      *storage.Store
	logger     *log.Logger
	styles     Styles
	keyMapper  *KeyMapper
	help       help.Model
	player     string
	allowBack  bool
	runID      string
	scoreSaved bool
	best       int
	newHigh    bool

	quitting   bool
	backToMenu bool
	exitOnBack bool // Set when the model owns the whole program
}

// NewModel creates a game model with its own controller.
func NewModel(opts GameOptions) Model {
	cfg := opts.Config
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	ctrl := oddone.NewController(
		oddone.WithSeed(cfg.Seed),
		oddone.WithLogger(logger),
	)

	m := Model{
		ctrl:      ctrl,
		ctx:       ctx,
		cancel:    cancel,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     opts.Store,
		logger:    logger,
		styles:    NewStyles(opts.Theme),
		keyMapper: NewKeyMapper(),
		help:      help.New(),
		player:    opts.Player,
		allowBack: opts.AllowBack,
		runID:     uuid.NewString(),
	}
	m.help.Width = cfg.ScreenW

	if m.store != nil {
		if best, err := m.store.HighScore(); err == nil {
			m.best = best
		} else {
			logger.Warn("could not read high score", "error", err)
		}
	}

	return m
}

// Init starts the controller loop and waits for its first snapshot.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		runController(m.ctx, m.ctrl),
		waitForUpdate(m.ctrl),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case UpdateMsg:
		m.flash = false
		m.apply(msg.Snapshot)
		return m, waitForUpdate(m.ctrl)

	case ClickMsg:
		if msg.Err != nil {
			if !errors.Is(msg.Err, oddone.ErrClosed) && !errors.Is(msg.Err, context.Canceled) {
				m.logger.Warn("controller request failed", "error", msg.Err)
			}
			return m, nil
		}
		m.apply(msg.Snapshot)
		return m, nil

	case controllerDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.logger.Error("controller stopped", "error", msg.err)
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKey(msg)

	switch action {
	case core.ActionQuit:
		m.shutdown()
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		if m.allowBack {
			m.shutdown()
			m.backToMenu = true
			if m.exitOnBack {
				return m, tea.Quit
			}
		}
		return m, nil

	case core.ActionRestart:
		m.runID = uuid.NewString()
		m.scoreSaved = false
		m.newHigh = false
		return m, restartCmd(m.ctx, m.ctrl)

	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		if m.acceptsClicks() {
			dx, dy := action.Delta()
			m.cursor = oddone.NewLayout(m.snap.GridSize, 0, 0).Move(m.cursor, dx, dy)
		}
		return m, nil

	case core.ActionSelect:
		if m.acceptsClicks() {
			return m, clickCmd(m.ctx, m.ctrl, m.cursor)
		}
	}

	return m, nil
}

// handleMouse clicks the cell under the pointer.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if !m.acceptsClicks() || !boardFits(m.width, m.height, m.snap.GridSize) {
		return m, nil
	}

	index := boardLayout(m.width, m.height, m.snap.GridSize).CellAt(msg.X, msg.Y)
	if index < 0 {
		return m, nil
	}
	m.cursor = index
	return m, clickCmd(m.ctx, m.ctrl, index)
}

// acceptsClicks reports whether the board is live.
func (m Model) acceptsClicks() bool {
	return m.snap.Seq > 0 && m.snap.Phase == oddone.PhasePlaying && !m.snap.RevealCorrect
}

// apply installs a newer snapshot. Replies and published updates can arrive
// in either order, so anything older than the current one is dropped.
func (m *Model) apply(snap oddone.Snapshot) {
	if snap.Seq <= m.snap.Seq {
		return
	}

	if snap.Level == m.snap.Level && snap.Misses > m.snap.Misses {
		m.flash = true
	}
	if snap.Level != m.snap.Level || snap.GridSize != m.snap.GridSize {
		m.cursor = 0
	}
	if m.cursor >= len(snap.Cells) {
		m.cursor = 0
	}

	m.snap = snap

	if snap.Phase.Terminal() {
		m.saveScore()
	}
}

// saveScore records the finished run once.
func (m *Model) saveScore() {
	if m.scoreSaved || m.snap.Score <= 0 {
		return
	}
	m.scoreSaved = true

	if m.snap.Score > m.best {
		m.newHigh = true
		m.best = m.snap.Score
	}

	if m.store == nil {
		return
	}

	outcome := storage.OutcomeLost
	if m.snap.Phase == oddone.PhaseWon {
		outcome = storage.OutcomeWon
	}

	_, err := m.store.SaveScore(storage.ScoreEntry{
		RunID:        m.runID,
		Player:       m.player,
		Score:        m.snap.Score,
		LevelReached: m.snap.DisplayLevel(),
		Outcome:      outcome,
	})
	if err != nil {
		// Best-effort save, the end screen is still shown
		m.logger.Warn("could not save score", "run", m.runID, "error", err)
		return
	}
	m.logger.Info("run recorded",
		"run", m.runID,
		"score", m.snap.Score,
		"outcome", outcome,
	)
}

// shutdown stops the controller loop and its timers.
func (m *Model) shutdown() {
	m.cancel()
	m.ctrl.Close()
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	helpView := m.styles.Help.Render(m.help.View(m.keyMapper.Keys()))

	switch {
	case m.snap.Seq == 0:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.styles.Title.Render(gameTitle))
	case m.snap.Phase.Terminal():
		return renderEnd(m.styles, m.snap, m.best, m.newHigh, m.width, m.height, helpView)
	default:
		return renderGame(m.styles, m.snap, m.cursor, m.width, m.height, helpView, m.flash)
	}
}

// Snapshot returns the last snapshot the model rendered.
func (m Model) Snapshot() oddone.Snapshot {
	return m.snap
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for one game.
// Returns true if the player asked to go back to the menu.
func Run(opts GameOptions) (backToMenu bool, err error) {
	model := NewModel(opts)
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse clicks pick cells
	)

	finalModel, err := p.Run()
	model.shutdown()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
