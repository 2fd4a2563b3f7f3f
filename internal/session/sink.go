package session

import (
	"time"

	"github.com/vovakirdan/gridshooter/internal/shooter"
)

// Sink receives frames produced by the controller.
// Present overwrites the whole arena; Clear blanks an arena left over from a
// previous session and must treat an empty arena as a no-op.
type Sink interface {
	Present(snap shooter.Snapshot) error
	Clear(a shooter.Arena) error
}

// TickFunc starts a tick stream with the given interval and returns it along
// with a function that releases it.
type TickFunc func(interval time.Duration) (<-chan time.Time, func())

// RealTicks is the default TickFunc backed by time.Ticker.
func RealTicks(interval time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(interval)
	return t.C, t.Stop
}
