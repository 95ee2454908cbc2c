package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/oddone/internal/config"
	"github.com/vovakirdan/oddone/internal/core"
	"github.com/vovakirdan/oddone/internal/games/oddone"
)

// Game screen layout, in terminal rows.
const (
	headerLines = 4 // title, blank, stats, blank
	footerLines = 4 // blank, hint, blank, help
	minPadX     = 2
)

const (
	gameTitle   = "Find the Odd One Out"
	penaltyHint = "Wrong click = -3 seconds penalty!"
)

// Styles holds the lipgloss styles derived from the theme.
type Styles struct {
	Title    lipgloss.Style
	Stat     lipgloss.Style
	Urgent   lipgloss.Style
	Hint     lipgloss.Style
	Help     lipgloss.Style
	Cell     lipgloss.Style
	Cursor   lipgloss.Style
	Correct  lipgloss.Style
	Positive lipgloss.Style
	Box      lipgloss.Style
}

// NewStyles builds the styles for a theme. Empty colors fall back to the
// defaults.
func NewStyles(theme config.ThemeConfig) Styles {
	def := config.DefaultTheme()
	pick := func(v, fallback string) lipgloss.Color {
		if v == "" {
			return lipgloss.Color(fallback)
		}
		return lipgloss.Color(v)
	}

	accent := pick(theme.Accent, def.Accent)
	cursor := pick(theme.Cursor, def.Cursor)
	correct := pick(theme.Correct, def.Correct)
	urgent := pick(theme.Urgent, def.Urgent)
	subtle := pick(theme.Subtle, def.Subtle)
	positive := pick(theme.Positive, def.Positive)

	cell := lipgloss.NewStyle().
		Width(oddone.CellWidth).
		Align(lipgloss.Center)

	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Stat:     lipgloss.NewStyle().Bold(true),
		Urgent:   lipgloss.NewStyle().Bold(true).Foreground(urgent),
		Hint:     lipgloss.NewStyle().Foreground(subtle).Italic(true),
		Help:     lipgloss.NewStyle().Foreground(subtle),
		Cell:     cell,
		Cursor:   cell.Background(cursor),
		Correct:  cell.Background(correct),
		Positive: lipgloss.NewStyle().Bold(true).Foreground(positive),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center),
	}
}

// contentHeight returns the rows the game screen needs for a grid.
func contentHeight(gridSize int) int {
	_, h := oddone.BoardSize(gridSize)
	return headerLines + h + footerLines
}

// contentWidth returns the columns the game screen needs for a grid.
func contentWidth(gridSize int) int {
	w, _ := oddone.BoardSize(gridSize)
	return core.Max(w, lipgloss.Width(penaltyHint)) + 2*minPadX
}

// boardFits reports whether a grid can be drawn in a width by height window.
func boardFits(width, height, gridSize int) bool {
	return core.NewRect(0, 0, width, height).Fits(contentWidth(gridSize), contentHeight(gridSize))
}

// boardLayout places the board for the given window size. The game view and
// mouse hit-testing both use it, so they always agree.
func boardLayout(width, height, gridSize int) oddone.Layout {
	boardW, _ := oddone.BoardSize(gridSize)
	top := core.Max(0, (height-contentHeight(gridSize))/2)
	left := core.Max(0, (width-boardW)/2)
	return oddone.NewLayout(gridSize, left, top+headerLines)
}

// renderGame draws the playing screen.
func renderGame(st Styles, snap oddone.Snapshot, cursor, width, height int, help string, flash bool) string {
	if !boardFits(width, height, snap.GridSize) {
		return renderTooSmall(st, snap.GridSize, width, height)
	}

	layout := boardLayout(width, height, snap.GridSize)
	lines := make([]string, 0, height)

	for len(lines) < layout.Origin.Y-headerLines {
		lines = append(lines, "")
	}

	lines = append(lines,
		centerText(st.Title.Render(gameTitle), width),
		"",
		centerText(renderStats(st, snap, flash), width),
		"",
	)

	indent := strings.Repeat(" ", layout.Origin.X)
	for row := 0; row < snap.GridSize; row++ {
		var b strings.Builder
		b.WriteString(indent)
		for col := 0; col < snap.GridSize; col++ {
			i := row*snap.GridSize + col
			b.WriteString(cellStyle(st, snap, cursor, i).Render(snap.Cells[i]))
		}
		lines = append(lines, b.String())
	}

	lines = append(lines,
		"",
		centerText(st.Hint.Render(penaltyHint), width),
		"",
		centerText(help, width),
	)

	return strings.Join(lines, "\n")
}

func cellStyle(st Styles, snap oddone.Snapshot, cursor, index int) lipgloss.Style {
	switch {
	case snap.RevealCorrect && index == snap.OddIndex:
		return st.Correct
	case index == cursor && !snap.RevealCorrect:
		return st.Cursor
	default:
		return st.Cell
	}
}

func renderStats(st Styles, snap oddone.Snapshot, flash bool) string {
	level := st.Stat.Render(fmt.Sprintf("Level %d/%d", snap.DisplayLevel(), snap.LevelCount))

	timeStyle := st.Stat
	if snap.Urgent || flash {
		timeStyle = st.Urgent
	}
	clock := timeStyle.Render(fmt.Sprintf("Time %ds", snap.TimeRemaining))

	score := st.Stat.Render(fmt.Sprintf("Score %d", snap.Score))
	if snap.RevealCorrect {
		score = st.Positive.Render(fmt.Sprintf("Score %d", snap.Score))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, level, "   ", clock, "   ", score)
}

// renderEnd draws the won or lost screen.
func renderEnd(st Styles, snap oddone.Snapshot, best int, newHigh bool, width, height int, help string) string {
	var title, message, again string
	switch snap.Phase {
	case oddone.PhaseWon:
		title = st.Positive.Render("You Won!")
		message = "You completed all levels!"
		again = "Play Again"
	default:
		title = st.Urgent.Render("Time's Up!")
		message = fmt.Sprintf("Level %d was too tricky!", snap.DisplayLevel())
		again = "Try Again"
	}

	body := []string{
		title,
		"",
		message,
		"",
		st.Stat.Render(fmt.Sprintf("Final Score: %d", snap.Score)),
	}
	switch {
	case newHigh:
		body = append(body, st.Positive.Render("New high score!"))
	case best > 0:
		body = append(body, st.Help.Render(fmt.Sprintf("Best: %d", best)))
	}
	body = append(body, "", st.Title.Render(fmt.Sprintf("[R] %s", again)))

	box := st.Box.Render(lipgloss.JoinVertical(lipgloss.Center, body...))
	view := lipgloss.JoinVertical(lipgloss.Center, box, "", help)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, view)
}

// renderTooSmall asks the player to enlarge the window.
func renderTooSmall(st Styles, gridSize, width, height int) string {
	msg := lipgloss.JoinVertical(lipgloss.Center,
		st.Urgent.Render("Terminal too small"),
		st.Help.Render(fmt.Sprintf("Resize to at least %dx%d", contentWidth(gridSize), contentHeight(gridSize))),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
