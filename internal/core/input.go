package core

// Command is a semantic player command, abstracted from physical key presses.
// The simulation only ever sees commands; the host decides which keys produce them.
type Command int

const (
	CommandNone Command = iota
	MoveLeft            // Left arrow, h
	MoveRight           // Right arrow, l
	MoveUp              // Up arrow, k
	MoveDown            // Down arrow, j
	Fire                // Space
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "None"
	case MoveLeft:
		return "MoveLeft"
	case MoveRight:
		return "MoveRight"
	case MoveUp:
		return "MoveUp"
	case MoveDown:
		return "MoveDown"
	case Fire:
		return "Fire"
	default:
		return "Unknown"
	}
}

// Delta returns the unit step a move command applies to the player.
// Non-move commands return (0, 0, false).
func (c Command) Delta() (dx, dy int, ok bool) {
	switch c {
	case MoveLeft:
		return -1, 0, true
	case MoveRight:
		return 1, 0, true
	case MoveUp:
		return 0, -1, true
	case MoveDown:
		return 0, 1, true
	default:
		return 0, 0, false
	}
}
