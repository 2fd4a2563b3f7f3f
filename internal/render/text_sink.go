package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/vovakirdan/gridshooter/internal/core"
	"github.com/vovakirdan/gridshooter/internal/shooter"
)

// TextSink writes each presented frame as plain text to an io.Writer.
// It keeps one screen across frames so Clear can blank a stale arena.
type TextSink struct {
	mu     sync.Mutex
	w      io.Writer
	style  Style
	screen *core.Screen
}

// NewTextSink creates a sink writing to w.
func NewTextSink(w io.Writer, style Style) *TextSink {
	return &TextSink{
		w:      w,
		style:  style,
		screen: core.NewScreen(0, 0),
	}
}

// Present draws snap and writes a header line followed by the screen.
func (s *TextSink) Present(snap shooter.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := snap.Arena
	s.screen.Resize(
		core.Max(s.screen.Width(), a.Left+a.Cols+1),
		core.Max(s.screen.Height(), a.Top+a.Rows+1),
	)
	if !a.Empty() {
		s.screen.DrawBox(core.NewRect(a.Left-1, a.Top-1, a.Cols+2, a.Rows+2), s.style.BorderColor)
	}
	Draw(s.screen, snap, s.style)

	var sb strings.Builder
	fmt.Fprintf(&sb, "tick %d  %s  bullets %d  enemies %d\n",
		snap.Tick, snap.State, len(snap.Bullets), len(snap.Enemies))
	sb.WriteString(s.screen.String())
	sb.WriteByte('\n')

	if _, err := io.WriteString(s.w, sb.String()); err != nil {
		return fmt.Errorf("render: write frame: %w", err)
	}
	return nil
}

// Clear blanks a previously drawn arena. An empty arena is a no-op.
func (s *TextSink) Clear(a shooter.Arena) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	Clear(s.screen, a)
	return nil
}

// Screen returns the sink's backing screen.
func (s *TextSink) Screen() *core.Screen {
	return s.screen
}
