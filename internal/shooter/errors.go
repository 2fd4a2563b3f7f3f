package shooter

import "errors"

var (
	// ErrInvalidArena is returned when an arena has a non-positive size or a
	// negative origin. The previous session, if any, is left untouched.
	ErrInvalidArena = errors.New("shooter: invalid arena")

	// ErrNoActiveSession is returned by Step, HandleInput and TogglePause
	// before the first Start or after Stop. Callers treat it as a no-op.
	ErrNoActiveSession = errors.New("shooter: no active session")

	// ErrPaused is returned by Step and HandleInput while the session is paused.
	ErrPaused = errors.New("shooter: session paused")
)
