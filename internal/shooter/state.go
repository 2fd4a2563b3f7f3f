package shooter

import (
	"github.com/vovakirdan/gridshooter/internal/core"
)

// State is the mutable simulation owned by an Engine. It is created at session
// start, mutated in place by step and the input methods, and discarded on restart.
// State is not safe for concurrent use; Engine serialises access to it.
type State struct {
	Arena   Arena
	Player  Entity
	Bullets []Entity
	Enemies []Entity
	Tick    uint64
	Stats   Stats
}

// NewState creates a fresh session state with the player at the bottom-center
// of the arena and no bullets or enemies.
func NewState(a Arena) *State {
	return &State{
		Arena: a,
		Player: Entity{
			Kind: KindPlayer,
			Pos:  core.Pt(a.Cols/2, a.Rows-1),
		},
		Bullets: make([]Entity, 0, 16),
		Enemies: make([]Entity, 0, 16),
	}
}

// Move shifts the player one cell, clamped to the arena.
// Moving into a wall leaves the player where it is.
func (s *State) Move(cmd core.Command) {
	dx, dy, ok := cmd.Delta()
	if !ok {
		return
	}
	p := s.Player.Pos.Add(dx, dy)
	s.Player.Pos = core.Pt(
		core.Clamp(p.X, 0, s.Arena.Cols-1),
		core.Clamp(p.Y, 0, s.Arena.Rows-1),
	)
}

// Fire adds a bullet directly above the player. There is no cooldown and no
// ammo limit; a bullet fired from the top row starts off the field and is
// dropped by the next step before it is ever drawn.
func (s *State) Fire() {
	s.Bullets = append(s.Bullets, Entity{
		Kind: KindBullet,
		Pos:  s.Player.Pos.Add(0, -1),
	})
	s.Stats.BulletsFired++
}

// Apply routes a player command to Move or Fire.
func (s *State) Apply(cmd core.Command) {
	if cmd == core.Fire {
		s.Fire()
		return
	}
	s.Move(cmd)
}

// step advances the simulation by one tick. The order matters:
// bullets move and leave, enemies move and leave, collisions resolve,
// and only then may a new enemy appear on the top row.
func (s *State) step(spawn *Spawner) {
	s.Tick++
	s.advanceBullets()
	s.advanceEnemies()
	s.resolveCollisions()
	if x, ok := spawn.Roll(s.Arena.Cols); ok {
		s.Enemies = append(s.Enemies, Entity{Kind: KindEnemy, Pos: core.Pt(x, 0)})
		s.Stats.EnemiesSpawned++
	}
}

func (s *State) advanceBullets() {
	kept := s.Bullets[:0]
	for _, b := range s.Bullets {
		b.Pos.Y--
		if b.Pos.Y >= 0 {
			kept = append(kept, b)
		}
	}
	s.Bullets = kept
}

func (s *State) advanceEnemies() {
	kept := s.Enemies[:0]
	for _, e := range s.Enemies {
		e.Pos.Y++
		if e.Pos.Y < s.Arena.Rows {
			kept = append(kept, e)
		} else {
			s.Stats.EnemiesEscaped++
		}
	}
	s.Enemies = kept
}

// resolveCollisions removes every bullet that shares a cell with an enemy,
// together with that enemy. When several enemies share the bullet's cell, only
// the earliest spawned one is hit. Several bullets may hit the same enemy.
func (s *State) resolveCollisions() {
	if len(s.Bullets) == 0 || len(s.Enemies) == 0 {
		return
	}

	// Walk backwards so the lowest index wins for shared cells.
	firstEnemy := make(map[core.Point]int, len(s.Enemies))
	for i := len(s.Enemies) - 1; i >= 0; i-- {
		firstEnemy[s.Enemies[i].Pos] = i
	}

	enemyHit := make([]bool, len(s.Enemies))
	keptBullets := s.Bullets[:0]
	for _, b := range s.Bullets {
		if ei, ok := firstEnemy[b.Pos]; ok {
			enemyHit[ei] = true
			continue
		}
		keptBullets = append(keptBullets, b)
	}
	s.Bullets = keptBullets

	keptEnemies := s.Enemies[:0]
	for i, e := range s.Enemies {
		if enemyHit[i] {
			s.Stats.EnemiesDestroyed++
			continue
		}
		keptEnemies = append(keptEnemies, e)
	}
	s.Enemies = keptEnemies
}
