package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridshooter/internal/core"
)

// KeyMap defines the key bindings for a play session.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	Fire       key.Binding
	Start      key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fire, k.Start, k.Pause, k.Restart, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.Fire},
		{k.Start, k.Pause, k.Restart},
		{k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "fire"),
		),
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Command translates a key message to a gameplay command.
// Returns core.CommandNone for control-surface and unbound keys.
func (k KeyMap) Command(msg tea.KeyMsg) core.Command {
	switch {
	case key.Matches(msg, k.Left):
		return core.MoveLeft
	case key.Matches(msg, k.Right):
		return core.MoveRight
	case key.Matches(msg, k.Up):
		return core.MoveUp
	case key.Matches(msg, k.Down):
		return core.MoveDown
	case key.Matches(msg, k.Fire):
		return core.Fire
	}
	return core.CommandNone
}
