package shooter

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/gridshooter/internal/core"
)

// Options configures an Engine.
type Options struct {
	SpawnProbability float64 // Per-tick enemy spawn chance in [0, 1]
	Seed             int64   // RNG seed; 0 picks one from the clock
}

// DefaultOptions returns the classic tuning: a 30% spawn chance per tick.
func DefaultOptions() Options {
	return Options{SpawnProbability: DefaultSpawnProbability}
}

// Engine owns the simulation state and serialises every operation on it.
// Step is meant to be called by a single ticker; HandleInput may be called
// from any goroutine at any time.
type Engine struct {
	mu      sync.Mutex
	opts    Options
	seed    int64
	session string
	status  SessionState
	state   *State
	spawner *Spawner
}

// New creates an engine with no active session.
func New(opts Options) *Engine {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		opts:    opts,
		seed:    seed,
		status:  Stopped,
		state:   NewState(Arena{}),
		spawner: NewSpawner(seed, opts.SpawnProbability),
	}
}

// Start begins a new session on the given arena, discarding any previous one.
// An invalid arena returns ErrInvalidArena and leaves the current session as it was.
func (e *Engine) Start(a Arena) (Snapshot, error) {
	if err := a.Validate(); err != nil {
		return e.Snapshot(), err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.session = uuid.NewString()
	e.state = NewState(a)
	e.status = Running
	return e.snapshotLocked(), nil
}

// Stop ends the session. The last state stays readable through Snapshot.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status = Stopped
}

// TogglePause switches between Running and Paused and returns the new state.
func (e *Engine) TogglePause() (SessionState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.status {
	case Running:
		e.status = Paused
	case Paused:
		e.status = Running
	default:
		return e.status, ErrNoActiveSession
	}
	return e.status, nil
}

// HandleInput applies a player command. Commands are ignored unless the
// session is Running.
func (e *Engine) HandleInput(cmd core.Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.runningLocked(); err != nil {
		return err
	}
	e.state.Apply(cmd)
	return nil
}

// Step advances the simulation by one tick and returns the resulting snapshot.
// While Paused or Stopped nothing changes and the current snapshot is returned
// alongside ErrPaused or ErrNoActiveSession.
func (e *Engine) Step() (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.runningLocked(); err != nil {
		return e.snapshotLocked(), err
	}
	e.state.step(e.spawner)
	return e.snapshotLocked(), nil
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Status returns the session state.
func (e *Engine) Status() SessionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Seed returns the RNG seed in use, for reproducing a run.
func (e *Engine) Seed() int64 {
	return e.seed
}

func (e *Engine) runningLocked() error {
	switch e.status {
	case Running:
		return nil
	case Paused:
		return ErrPaused
	default:
		return ErrNoActiveSession
	}
}

func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{
		Session: e.session,
		Arena:   e.state.Arena,
		State:   e.status,
		Tick:    e.state.Tick,
		Player:  e.state.Player,
		Bullets: e.state.Bullets,
		Enemies: e.state.Enemies,
		Stats:   e.state.Stats,
	}
	return snap.clone()
}
