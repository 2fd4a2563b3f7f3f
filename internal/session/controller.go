// Package session drives a shooter.Engine in real time: it owns the tick
// loop, re-measures the arena on restart and hands snapshots to a Sink.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridshooter/internal/core"
	"github.com/vovakirdan/gridshooter/internal/shooter"
)

// DefaultTickInterval is the time between simulation steps.
const DefaultTickInterval = 400 * time.Millisecond

// ErrClosed is returned by Start and Restart after Close.
var ErrClosed = errors.New("session: controller closed")

// Options configures a Controller.
type Options struct {
	TickInterval time.Duration
	Ticks        TickFunc
	Logger       *log.Logger
}

// Controller owns the single tick loop of a session.
//
// Lifecycle calls (Start, Restart, Stop, Close) are serialised by mu and may
// wait for the sink, so a host must not call them from the goroutine that
// drains the sink. Rendering is asynchronous and one frame at a time: a tick
// frame produced while another is in flight is dropped and counted, while a
// lifecycle frame waits its turn.
type Controller struct {
	engine   *shooter.Engine
	arenas   shooter.ArenaSource
	sink     Sink
	log      *log.Logger
	interval time.Duration
	ticks    TickFunc

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	closed bool

	// inflight is closed when the current Present call returns.
	renderMu sync.Mutex
	inflight chan struct{}

	loops   atomic.Int32
	dropped atomic.Uint64
}

// New creates a controller. The loop is not started until Start.
func New(engine *shooter.Engine, arenas shooter.ArenaSource, sink Sink, opts Options) *Controller {
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.Ticks == nil {
		opts.Ticks = RealTicks
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Controller{
		engine:   engine,
		arenas:   arenas,
		sink:     sink,
		log:      opts.Logger,
		interval: opts.TickInterval,
		ticks:    opts.Ticks,
	}
}

// Start measures the arena, begins a new session and installs the tick loop.
// A previous loop is torn down first. If the arena is invalid the running
// session, if any, is left untouched.
func (c *Controller) Start(ctx context.Context) (shooter.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.engine.Snapshot(), ErrClosed
	}
	a, err := c.measure()
	if err != nil {
		return c.engine.Snapshot(), err
	}

	c.stopLoopLocked()
	return c.startLocked(ctx, a)
}

// Restart stops the loop, waits for the last frame to land, clears the
// previous arena through the sink, re-measures the arena and starts a fresh
// session. It is safe to call before any session existed.
func (c *Controller) Restart(ctx context.Context) (shooter.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.engine.Snapshot(), ErrClosed
	}
	c.stopLoopLocked()
	c.Wait()

	stale := c.engine.Snapshot().Arena
	if err := c.sink.Clear(stale); err != nil {
		c.log.Error("clear failed", "arena", stale, "error", err)
	}

	a, err := c.measure()
	if err != nil {
		c.engine.Stop()
		return c.engine.Snapshot(), err
	}
	return c.startLocked(ctx, a)
}

// Stop tears down the tick loop and marks the session stopped. Entities are
// kept so the last frame stays visible.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLoopLocked()
	c.engine.Stop()
	c.log.Info("session stopped", "session", c.engine.Snapshot().Session)
}

// Close stops the session for good; later Start and Restart calls fail
// with ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.Stop()
}

// TogglePause flips Running and Paused. The loop keeps ticking while paused.
// The updated frame is offered to the sink without waiting.
func (c *Controller) TogglePause() (shooter.SessionState, error) {
	st, err := c.engine.TogglePause()
	if err != nil {
		c.log.Debug("pause ignored", "error", err)
		return st, err
	}
	c.log.Info("session "+st.String(), "session", c.engine.Snapshot().Session)
	c.present(c.engine.Snapshot(), false)
	return st, nil
}

// HandleInput forwards a command to the engine. Rejections are logged and
// returned; they are never fatal.
func (c *Controller) HandleInput(cmd core.Command) error {
	if err := c.engine.HandleInput(cmd); err != nil {
		c.log.Debug("input ignored", "command", cmd, "error", err)
		return err
	}
	return nil
}

// Snapshot returns the current engine snapshot.
func (c *Controller) Snapshot() shooter.Snapshot {
	return c.engine.Snapshot()
}

// Dropped returns how many frames were skipped because a render was still
// in flight.
func (c *Controller) Dropped() uint64 {
	return c.dropped.Load()
}

// Wait blocks until no render is in flight.
func (c *Controller) Wait() {
	for {
		c.renderMu.Lock()
		ch := c.inflight
		c.renderMu.Unlock()
		if ch == nil {
			return
		}
		<-ch
	}
}

func (c *Controller) measure() (shooter.Arena, error) {
	a, err := c.arenas.Arena()
	if err != nil {
		c.log.Warn("arena rejected", "error", err)
		return shooter.Arena{}, fmt.Errorf("session: measure arena: %w", err)
	}
	return a, nil
}

func (c *Controller) startLocked(ctx context.Context, a shooter.Arena) (shooter.Snapshot, error) {
	snap, err := c.engine.Start(a)
	if err != nil {
		return snap, fmt.Errorf("session: start: %w", err)
	}
	c.log.Info("session started", "session", snap.Session, "arena", a, "interval", c.interval)

	c.present(snap, true)
	c.startLoopLocked(ctx)
	return snap, nil
}

func (c *Controller) startLoopLocked(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	ticks, release := c.ticks(c.interval)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done

	c.loops.Add(1)
	go c.run(loopCtx, ticks, release, done)
}

func (c *Controller) stopLoopLocked() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
	c.cancel = nil
	c.done = nil
}

func (c *Controller) run(ctx context.Context, ticks <-chan time.Time, release func(), done chan struct{}) {
	defer close(done)
	defer c.loops.Add(-1)
	defer release()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			c.tick()
		}
	}
}

// tick advances the engine once and schedules a render.
func (c *Controller) tick() {
	snap, err := c.engine.Step()
	switch {
	case errors.Is(err, shooter.ErrPaused), errors.Is(err, shooter.ErrNoActiveSession):
		return
	case err != nil:
		c.log.Error("step failed", "error", err)
		return
	}
	c.present(snap, false)
}

// present hands snap to the sink on its own goroutine. If a render is still
// running the frame is dropped, or, when wait is set, sent once it finishes.
func (c *Controller) present(snap shooter.Snapshot, wait bool) {
	for {
		c.renderMu.Lock()
		busy := c.inflight
		if busy == nil {
			done := make(chan struct{})
			c.inflight = done
			c.renderMu.Unlock()
			go c.render(snap, done)
			return
		}
		c.renderMu.Unlock()

		if !wait {
			n := c.dropped.Add(1)
			c.log.Warn("render in flight, frame dropped", "session", snap.Session, "tick", snap.Tick, "dropped", n)
			return
		}
		<-busy
	}
}

func (c *Controller) render(snap shooter.Snapshot, done chan struct{}) {
	defer func() {
		c.renderMu.Lock()
		c.inflight = nil
		c.renderMu.Unlock()
		close(done)
	}()
	if err := c.sink.Present(snap); err != nil {
		c.log.Error("present failed", "session", snap.Session, "tick", snap.Tick, "error", err)
	}
}
