package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/gridshooter.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the hardcoded default configuration.
// It mirrors defaults/gridshooter.yaml.
func Default() Config {
	return Config{
		Simulation: SimulationConfig{
			TickInterval:     400 * time.Millisecond,
			SpawnProbability: 0.3,
			Seed:             0,
		},
		Arena: ArenaConfig{
			Source: ArenaSourceTerminal,
			Rows:   20,
			Cols:   30,
		},
		Glyphs: GlyphConfig{
			Player: "✈",
			Bullet: "|",
			Enemy:  "●",
		},
		Colors: ColorConfig{
			Player: "bright-cyan",
			Bullet: "bright-yellow",
			Enemy:  "bright-red",
			Border: "gray",
		},
		Log: LogConfig{
			Level: "info",
		},
		Source: "default",
	}
}
