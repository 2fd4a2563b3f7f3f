package tui

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridshooter/internal/core"
	"github.com/vovakirdan/gridshooter/internal/render"
	"github.com/vovakirdan/gridshooter/internal/session"
	"github.com/vovakirdan/gridshooter/internal/shooter"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapCommand(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Command
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.MoveLeft},
		{"h", runes("h"), core.MoveLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.MoveRight},
		{"l", runes("l"), core.MoveRight},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.MoveUp},
		{"k", runes("k"), core.MoveUp},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.MoveDown},
		{"j", runes("j"), core.MoveDown},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.Fire},
		{"start is not a command", runes("s"), core.CommandNone},
		{"pause is not a command", runes("p"), core.CommandNone},
		{"unbound", runes("x"), core.CommandNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.Command(tt.msg); got != tt.want {
				t.Errorf("Command(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestLayout(t *testing.T) {
	a := Layout(80, 24)
	want := shooter.Arena{Top: 2, Left: 1, Rows: 19, Cols: 78}
	if a != want {
		t.Fatalf("Layout(80,24) = %+v, want %+v", a, want)
	}
	// title, top border, arena rows, bottom border, status, help
	if 1+1+a.Rows+1+1+1 != 24 {
		t.Errorf("layout does not fill the terminal height")
	}
}

func TestTerminalArena(t *testing.T) {
	ta := &TerminalArena{}
	if _, err := ta.Arena(); !errors.Is(err, shooter.ErrInvalidArena) {
		t.Errorf("unmeasured Arena() error = %v, want ErrInvalidArena", err)
	}

	ta.SetSize(4, 5)
	if _, err := ta.Arena(); !errors.Is(err, shooter.ErrInvalidArena) {
		t.Errorf("4x5 terminal Arena() error = %v, want ErrInvalidArena", err)
	}

	ta.SetSize(30, 12)
	a, err := ta.Arena()
	if err != nil {
		t.Fatalf("Arena(): %v", err)
	}
	if a.Rows != 7 || a.Cols != 28 {
		t.Errorf("Arena() = %+v, want 7x28", a)
	}
}

type fakeSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (f *fakeSender) Send(msg tea.Msg) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
}

func TestProgramSink(t *testing.T) {
	sink := &ProgramSink{}
	snap := shooter.Snapshot{Tick: 7, Arena: shooter.Arena{Rows: 2, Cols: 2}}

	if err := sink.Present(snap); !errors.Is(err, ErrNotAttached) {
		t.Errorf("Present before Attach = %v, want ErrNotAttached", err)
	}
	if err := sink.Clear(shooter.Arena{}); err != nil {
		t.Errorf("Clear(empty) before Attach = %v, want nil", err)
	}

	s := &fakeSender{}
	sink.Attach(s)
	if err := sink.Present(snap); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if err := sink.Clear(shooter.Arena{}); err != nil {
		t.Fatalf("Clear(empty): %v", err)
	}
	if err := sink.Clear(snap.Arena); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if len(s.msgs) != 2 {
		t.Fatalf("sent %d messages, want 2", len(s.msgs))
	}
	if got, ok := s.msgs[0].(SnapshotMsg); !ok || got.Tick != 7 {
		t.Errorf("first message = %#v, want SnapshotMsg for tick 7", s.msgs[0])
	}
	if got, ok := s.msgs[1].(ClearMsg); !ok || got.Arena != snap.Arena {
		t.Errorf("second message = %#v, want ClearMsg", s.msgs[1])
	}
}

func TestRenderScreen(t *testing.T) {
	scr := core.NewScreen(3, 2)
	scr.SetColored(0, 0, 'a', core.ColorRed)
	scr.SetColored(1, 0, 'b', core.ColorRed)
	scr.Set(2, 0, 'c')
	scr.Set(0, 1, 'd')

	out := RenderScreen(scr)
	for _, want := range []string{"ab", "c", "d"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen output missing %q: %q", want, out)
		}
	}
	if n := strings.Count(out, "\n"); n != 1 {
		t.Errorf("RenderScreen has %d newlines, want 1", n)
	}
}

// fakeController records calls made by the model.
type fakeController struct {
	snap      shooter.Snapshot
	startErr  error
	inputErr  error
	pauseErr  error
	starts    int
	restarts  int
	stops     int
	inputs    []core.Command
	pauseNext shooter.SessionState
}

func (f *fakeController) Start(context.Context) (shooter.Snapshot, error) {
	f.starts++
	return f.snap, f.startErr
}

func (f *fakeController) Restart(context.Context) (shooter.Snapshot, error) {
	f.restarts++
	return f.snap, f.startErr
}

func (f *fakeController) Stop() { f.stops++ }

func (f *fakeController) TogglePause() (shooter.SessionState, error) {
	return f.pauseNext, f.pauseErr
}

func (f *fakeController) HandleInput(cmd core.Command) error {
	f.inputs = append(f.inputs, cmd)
	return f.inputErr
}

func (f *fakeController) Snapshot() shooter.Snapshot { return f.snap }

func newTestModel(t *testing.T, ctrl *fakeController) Model {
	t.Helper()
	ta := &TerminalArena{}
	ta.SetSize(20, 12)
	return NewModel(context.Background(), ctrl, ta, ModelOptions{Style: render.DefaultStyle()})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func testSnapshot() shooter.Snapshot {
	return shooter.Snapshot{
		Session: "s1",
		State:   shooter.Running,
		Arena:   Layout(20, 12),
		Player:  shooter.Entity{Kind: shooter.KindPlayer, Pos: core.Pt(9, 6)},
		Enemies: []shooter.Entity{{Kind: shooter.KindEnemy, Pos: core.Pt(0, 0)}},
	}
}

func TestModelInitStarts(t *testing.T) {
	ctrl := &fakeController{snap: testSnapshot()}
	m := newTestModel(t, ctrl)

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init returned nil command")
	}
	m, _ = update(t, m, cmd())
	if ctrl.starts != 1 {
		t.Errorf("starts = %d, want 1", ctrl.starts)
	}
	if got := m.screen.Get(10, 8); got != '✈' {
		t.Errorf("player cell = %q, want ✈", got)
	}
	if got := m.screen.Get(1, 2); got != '●' {
		t.Errorf("enemy cell = %q, want ●", got)
	}
	if got := m.screen.Get(0, 1); got != '┏' {
		t.Errorf("border corner = %q, want ┏", got)
	}
}

func TestModelStartFailureShowsNotice(t *testing.T) {
	ctrl := &fakeController{startErr: shooter.ErrInvalidArena}
	m := newTestModel(t, ctrl)
	m, _ = update(t, m, m.Init()())
	if !strings.Contains(m.notice, "start failed") {
		t.Errorf("notice = %q, want start failure", m.notice)
	}
	if !strings.Contains(m.View(), "start failed") {
		t.Error("View does not show the failure")
	}
}

func TestModelKeys(t *testing.T) {
	ctrl := &fakeController{snap: testSnapshot(), pauseNext: shooter.Paused}
	m := newTestModel(t, ctrl)

	m, _ = update(t, m, runes("h"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if len(ctrl.inputs) != 2 || ctrl.inputs[0] != core.MoveLeft || ctrl.inputs[1] != core.Fire {
		t.Errorf("inputs = %v, want [MoveLeft Fire]", ctrl.inputs)
	}

	m, cmd := update(t, m, runes("r"))
	if cmd == nil {
		t.Fatal("restart returned nil command")
	}
	m, _ = update(t, m, cmd())
	if ctrl.restarts != 1 {
		t.Errorf("restarts = %d, want 1", ctrl.restarts)
	}

	_, cmd = update(t, m, runes("s"))
	if cmd == nil {
		t.Fatal("start returned nil command")
	}
	cmd()
	if ctrl.starts != 1 {
		t.Errorf("starts = %d, want 1", ctrl.starts)
	}

	m, _ = update(t, m, runes("p"))
	if m.snap.State != shooter.Paused {
		t.Errorf("State after pause = %v, want Paused", m.snap.State)
	}

	m, _ = update(t, m, runes("?"))
	if !m.help.ShowAll {
		t.Error("? did not expand help")
	}

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("quit returned nil command")
	}
	if ctrl.stops != 0 || m.quitting {
		t.Errorf("quit stopped the session inside Update: stops=%d quitting=%v", ctrl.stops, m.quitting)
	}
	m, cmd = update(t, m, cmd())
	if ctrl.stops != 1 || !m.quitting || cmd == nil {
		t.Errorf("after stop: stops=%d quitting=%v cmd=%v", ctrl.stops, m.quitting, cmd)
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("stopped session did not quit the program")
	}
	if m.View() != "" {
		t.Error("View after quit is not empty")
	}
}

func TestModelInputRejectionNotice(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{shooter.ErrPaused, "paused"},
		{shooter.ErrNoActiveSession, "press s to start"},
		{nil, ""},
	}
	for _, tt := range tests {
		ctrl := &fakeController{inputErr: tt.err}
		m := newTestModel(t, ctrl)
		m, _ = update(t, m, runes("j"))
		if !strings.Contains(m.notice, tt.want) || (tt.want == "" && m.notice != "") {
			t.Errorf("notice for %v = %q, want %q", tt.err, m.notice, tt.want)
		}
	}
}

func TestModelSnapshotAndClear(t *testing.T) {
	m := newTestModel(t, &fakeController{})
	snap := testSnapshot()
	snap.Tick = 4
	m, _ = update(t, m, SnapshotMsg(snap))
	if !strings.Contains(m.statusLine(), "tick 4") {
		t.Errorf("status = %q, want tick 4", m.statusLine())
	}

	m, _ = update(t, m, ClearMsg{Arena: snap.Arena})
	if got := m.screen.Get(10, 8); got != ' ' {
		t.Errorf("player cell after clear = %q, want blank", got)
	}
	if got := m.screen.Get(0, 1); got != ' ' {
		t.Errorf("border after clear = %q, want blank", got)
	}
}

func TestModelResize(t *testing.T) {
	ta := &TerminalArena{}
	m := NewModel(context.Background(), &fakeController{}, ta, ModelOptions{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 50, Height: 20})
	if w, h := ta.Size(); w != 50 || h != 20 {
		t.Errorf("arena size = %dx%d, want 50x20", w, h)
	}
	if m.screen.Width() != 50 || m.screen.Height() != 18 {
		t.Errorf("screen = %dx%d, want 50x18", m.screen.Width(), m.screen.Height())
	}
}

func TestModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	ta := &TerminalArena{}
	ta.SetSize(20, 12)
	m := NewModel(context.Background(), &fakeController{}, ta, ModelOptions{ScreenshotDir: dir})
	m, _ = update(t, m, SnapshotMsg(testSnapshot()))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("screenshots = %d, want 1", len(entries))
	}
	if !strings.HasPrefix(m.notice, "saved ") {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestPlaceKeepsChromeVisible(t *testing.T) {
	a := Place(shooter.Arena{Rows: 6, Cols: 10})
	if want := (shooter.Arena{Top: 2, Left: 1, Rows: 6, Cols: 10}); a != want {
		t.Fatalf("Place = %+v, want %+v", a, want)
	}

	ta := &TerminalArena{}
	ta.SetSize(20, 12)
	m := NewModel(context.Background(), &fakeController{}, ta, ModelOptions{Style: render.DefaultStyle()})
	snap := shooter.Snapshot{
		Session: "s1",
		Arena:   a,
		Player:  shooter.Entity{Kind: shooter.KindPlayer, Pos: core.Pt(0, 0)},
	}
	m, _ = update(t, m, SnapshotMsg(snap))

	if row := m.screen.Row(0); !strings.Contains(row, title) {
		t.Errorf("title row = %q, want %q intact", row, title)
	}
	if got := m.screen.Get(0, 1); got != '┏' {
		t.Errorf("border corner = %q, want ┏", got)
	}
	if got := m.screen.Get(1, 2); got != '✈' {
		t.Errorf("player at origin = %q, want ✈ at (1,2)", got)
	}
}

// blockingSender accepts a message only when the test reads it, like the
// unbuffered channel behind tea.Program.Send.
type blockingSender struct {
	msgs chan tea.Msg
}

func (b blockingSender) Send(msg tea.Msg) { b.msgs <- msg }

func TestQuitDuringRestartDoesNotBlockUpdate(t *testing.T) {
	sender := blockingSender{msgs: make(chan tea.Msg)}
	sink := &ProgramSink{}
	sink.Attach(sender)

	engine := shooter.New(shooter.Options{Seed: 1})
	ctrl := session.New(engine, shooter.FixedArena{Rows: 4, Cols: 4}, sink, session.Options{
		Ticks: func(time.Duration) (<-chan time.Time, func()) { return nil, func() {} },
	})
	ta := &TerminalArena{}
	ta.SetSize(20, 12)
	m := NewModel(context.Background(), ctrl, ta, ModelOptions{Style: render.DefaultStyle()})

	// First session; deliver its frame.
	start := m.Init()
	go start()
	<-sender.msgs

	// Restart blocks in Clear until the "program" reads the message.
	_, restart := update(t, m, runes("r"))
	restarted := make(chan tea.Msg, 1)
	go func() { restarted <- restart() }()

	// Update must handle quit without waiting on the controller.
	handled := make(chan tea.Cmd, 1)
	go func() {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		handled <- cmd
	}()
	var stop tea.Cmd
	select {
	case stop = <-handled:
	case <-time.After(time.Second):
		t.Fatal("Update blocked on quit while a restart was in progress")
	}

	stopped := make(chan tea.Msg, 1)
	go func() { stopped <- stop() }()

	// Keep draining like the event loop would until both calls finish.
	var gotRestart, gotStop bool
	deadline := time.After(2 * time.Second)
	for !gotRestart || !gotStop {
		select {
		case <-sender.msgs:
		case <-restarted:
			gotRestart = true
		case msg := <-stopped:
			if _, ok := msg.(stoppedMsg); !ok {
				t.Fatalf("stop returned %T, want stoppedMsg", msg)
			}
			gotStop = true
		case <-deadline:
			t.Fatal("restart and quit did not both complete")
		}
	}
	ctrl.Close()

	waited := make(chan struct{})
	go func() {
		ctrl.Wait()
		close(waited)
	}()
	for {
		select {
		case <-sender.msgs:
		case <-waited:
			return
		}
	}
}
