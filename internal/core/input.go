package core

// Action represents a semantic player action, abstracted from physical key presses.
// Levels react to intents rather than raw keys.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move cursor up
	ActionDown           // S, Down arrow - move cursor down
	ActionLeft           // A, Left arrow - previous item / slider down
	ActionRight          // D, Right arrow - next item / slider up
	ActionConfirm        // Enter, Space - click, select, place, confirm
	ActionAlt            // X - secondary choice (dispose, cancel selection)
	ActionSwitch         // Tab - switch focus between item and slot columns
	ActionBack           // Esc - back to the welcome screen
	ActionNext           // N - advance to the next level after completion
	ActionRestart        // R - restart the adventure from the final screen
	ActionQuit           // Q, Ctrl+C - exit
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
	case ActionConfirm:
		return "Confirm"
	case ActionAlt:
		return "Alt"
	case ActionSwitch:
		return "Switch"
	case ActionBack:
		return "Back"
	case ActionNext:
		return "Next"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Cursor is a bounded selection index used by list-driven level views.
type Cursor struct {
	pos int
	n   int
}

// NewCursor creates a cursor over n entries.
func NewCursor(n int) Cursor {
	return Cursor{n: n}
}

// Pos returns the selected index.
func (c Cursor) Pos() int {
	return c.pos
}

// Move shifts the cursor by delta, wrapping around.
func (c *Cursor) Move(delta int) {
	if c.n == 0 {
		return
	}
	c.pos = ((c.pos+delta)%c.n + c.n) % c.n
}

// Resize changes the entry count, keeping the cursor in range.
func (c *Cursor) Resize(n int) {
	c.n = n
	if c.pos >= n {
		c.pos = Max(0, n-1)
	}
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
