// Package shooter implements the grid shooter simulation: a player that moves
// inside a fixed arena and fires bullets upward at enemies that descend from the
// top row. The package holds no terminal or timing code; a host drives Step once
// per tick and feeds player commands through HandleInput.
package shooter

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/gridshooter/internal/core"
)

// Arena is the fixed rectangular play field, anchored at an absolute origin
// (Top, Left) on the host's presentation surface.
type Arena struct {
	Top  int `yaml:"top"`
	Left int `yaml:"left"`
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// Validate reports ErrInvalidArena for negative origins or non-positive sizes.
func (a Arena) Validate() error {
	if a.Rows <= 0 || a.Cols <= 0 || a.Top < 0 || a.Left < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidArena, a)
	}
	return nil
}

// Empty reports whether the arena covers no cells.
func (a Arena) Empty() bool {
	return a.Rows <= 0 || a.Cols <= 0
}

// Contains reports whether the arena-relative position p is on the field.
func (a Arena) Contains(p core.Point) bool {
	return p.X >= 0 && p.X < a.Cols && p.Y >= 0 && p.Y < a.Rows
}

// Rect returns the absolute rectangle the arena occupies on the host surface.
func (a Arena) Rect() core.Rect {
	return core.NewRect(a.Left, a.Top, a.Cols, a.Rows)
}

// Abs converts an arena-relative position to absolute host coordinates.
func (a Arena) Abs(p core.Point) core.Point {
	return core.Pt(a.Left+p.X, a.Top+p.Y)
}

// String formats the arena as ROWSxCOLS+TOP+LEFT.
func (a Arena) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", a.Rows, a.Cols, a.Top, a.Left)
}

// Kind tags an entity.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindBullet
	KindEnemy
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBullet:
		return "bullet"
	case KindEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Entity is a positioned thing in the arena. Positions are arena-relative.
type Entity struct {
	Kind Kind
	Pos  core.Point
}

// SessionState governs whether Step and HandleInput mutate the simulation.
type SessionState int

const (
	Stopped SessionState = iota
	Running
	Paused
)

// String returns a human-readable name for the session state.
func (s SessionState) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Stats are per-session counters. They are reported to the host but never
// feed back into the simulation.
type Stats struct {
	BulletsFired     int
	EnemiesSpawned   int
	EnemiesDestroyed int
	EnemiesEscaped   int
}

// Snapshot is an immutable copy of the simulation taken after a step.
// Sinks must treat it as a full overwrite of the arena, not a diff.
type Snapshot struct {
	Session string
	Arena   Arena
	State   SessionState
	Tick    uint64
	Player  Entity
	Bullets []Entity
	Enemies []Entity
	Stats   Stats
}

// Active reports whether the snapshot belongs to a started session.
func (s Snapshot) Active() bool {
	return s.Session != "" && !s.Arena.Empty()
}

// Entities returns every entity in draw order: the player, bullets, then enemies.
// Later entities overwrite earlier ones when they share a cell.
// A snapshot with an empty arena has nothing to draw.
func (s Snapshot) Entities() []Entity {
	if s.Arena.Empty() {
		return nil
	}
	out := make([]Entity, 0, len(s.Bullets)+len(s.Enemies)+1)
	out = append(out, s.Player)
	out = append(out, s.Bullets...)
	return append(out, s.Enemies...)
}

func (s Snapshot) clone() Snapshot {
	s.Bullets = slices.Clone(s.Bullets)
	s.Enemies = slices.Clone(s.Enemies)
	return s
}
