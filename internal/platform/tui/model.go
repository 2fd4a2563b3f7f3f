package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridshooter/internal/core"
	"github.com/vovakirdan/gridshooter/internal/render"
	"github.com/vovakirdan/gridshooter/internal/shooter"
)

const title = "GRID SHOOTER"

// Controller is the session surface the model drives.
type Controller interface {
	Start(ctx context.Context) (shooter.Snapshot, error)
	Restart(ctx context.Context) (shooter.Snapshot, error)
	Stop()
	TogglePause() (shooter.SessionState, error)
	HandleInput(cmd core.Command) error
	Snapshot() shooter.Snapshot
}

// Model is the Bubble Tea model for a play session. Frames arrive as
// SnapshotMsg from the controller's tick loop; the model never steps the
// simulation itself.
type Model struct {
	ctx      context.Context
	ctrl     Controller
	arena    *TerminalArena
	keys     KeyMap
	help     help.Model
	style    render.Style
	log      *log.Logger
	screen   *core.Screen
	snap     shooter.Snapshot
	notice   string
	shotDir  string
	width    int
	height   int
	quitting bool
}

// ModelOptions configures a Model.
type ModelOptions struct {
	Style         render.Style
	Logger        *log.Logger
	ScreenshotDir string // empty disables screenshots
}

// NewModel creates a model driving ctrl. arena receives window size updates.
func NewModel(ctx context.Context, ctrl Controller, arena *TerminalArena, opts ModelOptions) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	w, h := arena.Size()
	m := Model{
		ctx:     ctx,
		ctrl:    ctrl,
		arena:   arena,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		style:   opts.Style,
		log:     opts.Logger,
		shotDir: opts.ScreenshotDir,
		screen:  core.NewScreen(0, 0),
	}
	m.resize(w, h)
	return m
}

// Init starts the first session.
func (m Model) Init() tea.Cmd {
	return m.lifecycle("start", m.ctrl.Start)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.arena.SetSize(msg.Width, msg.Height)
		m.resize(msg.Width, msg.Height)
		m.redraw()
		return m, nil

	case SnapshotMsg:
		m.snap = shooter.Snapshot(msg)
		m.redraw()
		return m, nil

	case ClearMsg:
		m.clearArena(msg.Arena)
		return m, nil

	case stoppedMsg:
		m.quitting = true
		return m, tea.Quit

	case lifecycleMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("%s failed: %v", msg.action, msg.err)
			m.log.Warn(msg.action+" failed", "error", msg.err)
			return m, nil
		}
		m.notice = ""
		m.snap = msg.snap
		m.redraw()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.stop()

	case key.Matches(msg, m.keys.Start):
		return m, m.lifecycle("start", m.ctrl.Start)

	case key.Matches(msg, m.keys.Restart):
		return m, m.lifecycle("restart", m.ctrl.Restart)

	case key.Matches(msg, m.keys.Pause):
		st, err := m.ctrl.TogglePause()
		m.notice = noticeFor(err)
		if err == nil {
			m.snap.State = st
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	if cmd := m.keys.Command(msg); cmd != core.CommandNone {
		m.notice = noticeFor(m.ctrl.HandleInput(cmd))
	}
	return m, nil
}

// lifecycle runs a start or restart outside Update, since the controller
// may wait for the program to take a frame while it runs.
func (m Model) lifecycle(action string, f func(context.Context) (shooter.Snapshot, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		snap, err := f(ctx)
		return lifecycleMsg{action: action, snap: snap, err: err}
	}
}

// stop ends the session outside Update and then quits.
func (m Model) stop() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctrl.Stop()
		return stoppedMsg{}
	}
}

func noticeFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, shooter.ErrPaused):
		return "paused: press p to resume"
	case errors.Is(err, shooter.ErrNoActiveSession):
		return "no session: press s to start"
	default:
		return err.Error()
	}
}

// resize fits the screen buffer to the terminal, leaving the two bottom rows
// for the status and help lines.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.screen.Resize(core.Max(width, 0), core.Max(height-2, 0))
}

// redraw repaints the title, border and current snapshot.
func (m *Model) redraw() {
	m.screen.Clear()
	x := (m.screen.Width() - len([]rune(title))) / 2
	m.screen.DrawTextColored(x, 0, title, core.ColorBrightCyan)
	a := m.snap.Arena
	if a.Empty() {
		return
	}
	m.screen.DrawBox(core.NewRect(a.Left-1, a.Top-1, a.Cols+2, a.Rows+2), m.style.BorderColor)
	render.Draw(m.screen, m.snap, m.style)
}

// clearArena blanks a stale arena together with its border.
func (m *Model) clearArena(a shooter.Arena) {
	if a.Empty() {
		return
	}
	m.screen.ClearRect(core.NewRect(a.Left-1, a.Top-1, a.Cols+2, a.Rows+2))
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	if m.shotDir == "" {
		return
	}
	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		m.notice = "screenshot failed: " + err.Error()
		return
	}
	name := fmt.Sprintf("gridshooter_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(m.shotDir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.notice = "screenshot failed: " + err.Error()
		return
	}
	m.notice = "saved " + path
	m.log.Info("screenshot saved", "path", path)
}

// statusLine summarises the current snapshot.
func (m Model) statusLine() string {
	s := m.snap
	if s.Session == "" {
		return "no session"
	}
	return fmt.Sprintf("%s  tick %d  bullets %d  enemies %d  destroyed %d  escaped %d",
		s.State, s.Tick, len(s.Bullets), len(s.Enemies), s.Stats.EnemiesDestroyed, s.Stats.EnemiesEscaped)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	status := statusStyle.Render(m.statusLine())
	if m.notice != "" {
		status += "  " + noticeStyle.Render(m.notice)
	}
	return RenderScreen(m.screen) + "\n" + status + "\n" + helpStyle.Render(m.help.View(m.keys))
}
