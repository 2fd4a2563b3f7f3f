// Package tui hosts a gridshooter session in a Bubble Tea program.
// It handles the terminal UI loop, input mapping, and arena measurement.
package tui

import (
	"github.com/vovakirdan/gridshooter/internal/shooter"
)

// SnapshotMsg carries a frame from the session controller into the program.
type SnapshotMsg shooter.Snapshot

// ClearMsg asks the model to blank a stale arena.
type ClearMsg struct {
	Arena shooter.Arena
}

// lifecycleMsg reports the outcome of a start or restart.
type lifecycleMsg struct {
	action string
	snap   shooter.Snapshot
	err    error
}

// stoppedMsg reports that the session was stopped on quit.
type stoppedMsg struct{}
