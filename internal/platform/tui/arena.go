package tui

import (
	"fmt"
	"sync"

	"golang.org/x/term"

	"github.com/vovakirdan/gridshooter/internal/shooter"
)

// Screen chrome around the arena: a title row and the top border above it,
// the bottom border, status line and help line below, one border column on
// each side.
const (
	chromeTop    = 2
	chromeLeft   = 1
	chromeRows   = 5
	chromeCols   = 2
	minArenaRows = 1
	minArenaCols = 1
)

// TerminalArena derives the play field from the terminal size.
// It is measured once at startup and kept current from tea.WindowSizeMsg.
type TerminalArena struct {
	mu     sync.Mutex
	width  int
	height int
}

// NewTerminalArena measures the terminal behind fd. A failed measurement
// leaves the size unknown until SetSize is called.
func NewTerminalArena(fd int) *TerminalArena {
	t := &TerminalArena{}
	if w, h, err := term.GetSize(fd); err == nil {
		t.SetSize(w, h)
	}
	return t
}

// SetSize records the current terminal size.
func (t *TerminalArena) SetSize(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.width = width
	t.height = height
}

// Size returns the last recorded terminal size.
func (t *TerminalArena) Size() (width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.width, t.height
}

// Arena implements shooter.ArenaSource.
func (t *TerminalArena) Arena() (shooter.Arena, error) {
	w, h := t.Size()
	a := Layout(w, h)
	if a.Rows < minArenaRows || a.Cols < minArenaCols {
		return a, fmt.Errorf("%w: terminal %dx%d is too small", shooter.ErrInvalidArena, w, h)
	}
	return a, nil
}

// Layout returns the arena that fits a width x height terminal.
func Layout(width, height int) shooter.Arena {
	return shooter.Arena{
		Top:  chromeTop,
		Left: chromeLeft,
		Rows: height - chromeRows,
		Cols: width - chromeCols,
	}
}

// Place shifts a configured arena below the title and inside the border, so
// an origin of (0,0) is the first playable cell.
func Place(a shooter.Arena) shooter.Arena {
	a.Top += chromeTop
	a.Left += chromeLeft
	return a
}
