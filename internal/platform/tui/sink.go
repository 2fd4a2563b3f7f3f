package tui

import (
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridshooter/internal/shooter"
)

// ErrNotAttached is returned by ProgramSink before a program is attached.
var ErrNotAttached = errors.New("tui: sink has no program attached")

// Sender is the part of *tea.Program used by ProgramSink.
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramSink delivers frames to a running Bubble Tea program as messages.
// Send blocks until the program receives the message, so Present and Clear
// must not be called from inside the program's Update.
type ProgramSink struct {
	mu sync.RWMutex
	p  Sender
}

// Attach sets the program that receives frames.
func (s *ProgramSink) Attach(p Sender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p = p
}

func (s *ProgramSink) sender() Sender {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p
}

// Present sends the snapshot to the program.
func (s *ProgramSink) Present(snap shooter.Snapshot) error {
	p := s.sender()
	if p == nil {
		return ErrNotAttached
	}
	p.Send(SnapshotMsg(snap))
	return nil
}

// Clear asks the program to blank a. An empty arena is a no-op.
func (s *ProgramSink) Clear(a shooter.Arena) error {
	if a.Empty() {
		return nil
	}
	p := s.sender()
	if p == nil {
		return ErrNotAttached
	}
	p.Send(ClearMsg{Arena: a})
	return nil
}
