package shooter

import "math/rand"

// DefaultSpawnProbability is the per-tick chance that one enemy appears.
const DefaultSpawnProbability = 0.3

// Spawner decides, once per tick, whether an enemy appears and in which column.
// At most one enemy spawns per tick and there is no cap on live enemies.
type Spawner struct {
	rng         *rand.Rand
	probability float64
}

// NewSpawner creates a spawner seeded for reproducible runs.
func NewSpawner(seed int64, probability float64) *Spawner {
	return &Spawner{
		rng:         rand.New(rand.NewSource(seed)),
		probability: probability,
	}
}

// Probability returns the per-tick spawn chance.
func (s *Spawner) Probability() float64 {
	return s.probability
}

// Roll returns a column in [0, cols) and true when an enemy should spawn.
func (s *Spawner) Roll(cols int) (int, bool) {
	if cols <= 0 || s.rng.Float64() >= s.probability {
		return 0, false
	}
	return s.rng.Intn(cols), true
}
