package core

// Action represents a semantic input, abstracted from physical key presses
// and mouse events.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // W, K, Up arrow - move cursor up
	ActionDown              // S, J, Down arrow - move cursor down
	ActionLeft              // A, H, Left arrow - move cursor left
	ActionRight             // D, L, Right arrow - move cursor right
	ActionSelect            // Enter, Space - click the cell under the cursor
	ActionRestart           // R - start over from level 1
	ActionBack              // B, Escape - back to the menu
	ActionScoreboard        // Tab - open high scores
	ActionQuit              // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSelect:
		return "Select"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionScoreboard:
		return "Scoreboard"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Delta returns the cursor movement for a directional action.
func (a Action) Delta() (dx, dy int) {
	switch a {
	case ActionUp:
		return 0, -1
	case ActionDown:
		return 0, 1
	case ActionLeft:
		return -1, 0
	case ActionRight:
		return 1, 0
	default:
		return 0, 0
	}
}
