// Package tui provides the Bubble Tea integration for oddone.
// It handles the terminal UI loop, input mapping and the bridge to the
// game controller.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/oddone/internal/games/oddone"
)

// UpdateMsg carries a snapshot published by the controller after a tick or
// a level advance.
type UpdateMsg struct {
	Snapshot oddone.Snapshot
}

// ClickMsg carries the controller's reply to a click or restart request.
type ClickMsg struct {
	Snapshot oddone.Snapshot
	Err      error
}

// controllerDoneMsg is sent once the controller loop has returned.
type controllerDoneMsg struct {
	err error
}

// runController starts the controller loop and reports when it ends.
func runController(ctx context.Context, ctrl *oddone.Controller) tea.Cmd {
	return func() tea.Msg {
		return controllerDoneMsg{err: ctrl.Run(ctx)}
	}
}

// waitForUpdate blocks until the controller publishes the next snapshot.
// It must be re-issued after every UpdateMsg.
func waitForUpdate(ctrl *oddone.Controller) tea.Cmd {
	return func() tea.Msg {
		select {
		case snap := <-ctrl.Updates():
			return UpdateMsg{Snapshot: snap}
		case <-ctrl.Done():
			return nil
		}
	}
}

// clickCmd forwards a click to the controller off the UI goroutine.
func clickCmd(ctx context.Context, ctrl *oddone.Controller, index int) tea.Cmd {
	return func() tea.Msg {
		snap, err := ctrl.Click(ctx, index)
		return ClickMsg{Snapshot: snap, Err: err}
	}
}

// restartCmd asks the controller to start over from level 1.
func restartCmd(ctx context.Context, ctrl *oddone.Controller) tea.Cmd {
	return func() tea.Msg {
		snap, err := ctrl.Restart(ctx)
		return ClickMsg{Snapshot: snap, Err: err}
	}
}
