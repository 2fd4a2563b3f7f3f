// Package config provides YAML-based configuration loading for gridshooter,
// with embedded defaults and environment variable overrides.
package config

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridshooter/internal/core"
	"github.com/vovakirdan/gridshooter/internal/render"
	"github.com/vovakirdan/gridshooter/internal/shooter"
)

// Arena sources.
const (
	ArenaSourceTerminal = "terminal"
	ArenaSourceFixed    = "fixed"
)

// Config contains all gridshooter configuration.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Arena      ArenaConfig      `yaml:"arena"`
	Glyphs     GlyphConfig      `yaml:"glyphs"`
	Colors     ColorConfig      `yaml:"colors"`
	Log        LogConfig        `yaml:"log"`

	// Source records where the configuration was loaded from.
	Source string `yaml:"-"`
}

// SimulationConfig tunes the engine and its tick cadence.
type SimulationConfig struct {
	TickInterval     time.Duration `yaml:"tick_interval" env:"GRIDSHOOTER_TICK_INTERVAL"`
	SpawnProbability float64       `yaml:"spawn_probability" env:"GRIDSHOOTER_SPAWN_PROBABILITY"`
	Seed             int64         `yaml:"seed" env:"GRIDSHOOTER_SEED"`
}

// ArenaConfig selects where the play field comes from.
// Top/Left/Rows/Cols are only used when Source is "fixed".
type ArenaConfig struct {
	Source string `yaml:"source" env:"GRIDSHOOTER_ARENA_SOURCE"`
	Top    int    `yaml:"top" env:"GRIDSHOOTER_ARENA_TOP"`
	Left   int    `yaml:"left" env:"GRIDSHOOTER_ARENA_LEFT"`
	Rows   int    `yaml:"rows" env:"GRIDSHOOTER_ARENA_ROWS"`
	Cols   int    `yaml:"cols" env:"GRIDSHOOTER_ARENA_COLS"`
}

// Fixed returns the configured rectangle as an arena.
func (a ArenaConfig) Fixed() shooter.Arena {
	return shooter.Arena{Top: a.Top, Left: a.Left, Rows: a.Rows, Cols: a.Cols}
}

// GlyphConfig holds the single-rune glyph drawn for each entity.
type GlyphConfig struct {
	Player string `yaml:"player" env:"GRIDSHOOTER_GLYPH_PLAYER"`
	Bullet string `yaml:"bullet" env:"GRIDSHOOTER_GLYPH_BULLET"`
	Enemy  string `yaml:"enemy" env:"GRIDSHOOTER_GLYPH_ENEMY"`
}

// ColorConfig holds color names (see core.ParseColor).
type ColorConfig struct {
	Player string `yaml:"player"`
	Bullet string `yaml:"bullet"`
	Enemy  string `yaml:"enemy"`
	Border string `yaml:"border"`
}

// LogConfig controls logging verbosity.
type LogConfig struct {
	Level string `yaml:"level" env:"GRIDSHOOTER_LOG_LEVEL"`
}

// EngineOptions converts the simulation section into engine options.
func (c Config) EngineOptions() shooter.Options {
	return shooter.Options{
		SpawnProbability: c.Simulation.SpawnProbability,
		Seed:             c.Simulation.Seed,
	}
}

// Style converts the glyph and color sections into a render style.
// It expects a validated config; unknown colors fall back to the default.
func (c Config) Style() render.Style {
	return render.Style{
		Player:      firstRune(c.Glyphs.Player),
		Bullet:      firstRune(c.Glyphs.Bullet),
		Enemy:       firstRune(c.Glyphs.Enemy),
		PlayerColor: color(c.Colors.Player),
		BulletColor: color(c.Colors.Bullet),
		EnemyColor:  color(c.Colors.Enemy),
		BorderColor: color(c.Colors.Border),
	}
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func color(name string) core.Color {
	c, _ := core.ParseColor(name)
	return c
}

// Validate checks every section and returns the first problem found.
func (c Config) Validate() error {
	if c.Simulation.TickInterval <= 0 {
		return fmt.Errorf("config: simulation.tick_interval must be positive, got %s", c.Simulation.TickInterval)
	}
	if p := c.Simulation.SpawnProbability; p < 0 || p > 1 {
		return fmt.Errorf("config: simulation.spawn_probability must be within [0, 1], got %g", p)
	}

	switch c.Arena.Source {
	case ArenaSourceTerminal:
	case ArenaSourceFixed:
		if err := c.Arena.Fixed().Validate(); err != nil {
			return fmt.Errorf("config: arena: %w", err)
		}
	default:
		return fmt.Errorf("config: arena.source must be %q or %q, got %q", ArenaSourceTerminal, ArenaSourceFixed, c.Arena.Source)
	}

	glyphs := []struct{ name, value string }{
		{"player", c.Glyphs.Player},
		{"bullet", c.Glyphs.Bullet},
		{"enemy", c.Glyphs.Enemy},
	}
	for _, g := range glyphs {
		if utf8.RuneCountInString(g.value) != 1 {
			return fmt.Errorf("config: glyphs.%s must be a single character, got %q", g.name, g.value)
		}
	}

	colors := []struct{ name, value string }{
		{"player", c.Colors.Player},
		{"bullet", c.Colors.Bullet},
		{"enemy", c.Colors.Enemy},
		{"border", c.Colors.Border},
	}
	for _, col := range colors {
		if _, ok := core.ParseColor(col.value); !ok {
			return fmt.Errorf("config: colors.%s: unknown color %q", col.name, col.value)
		}
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}
