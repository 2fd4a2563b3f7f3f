package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridshooter/internal/config"
	"github.com/vovakirdan/gridshooter/internal/shooter"
)

// loadConfig loads the config file and environment, then applies any global
// flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("tick") {
		d, err := time.ParseDuration(flagTick)
		if err != nil {
			return cfg, fmt.Errorf("invalid --tick %q: %w", flagTick, err)
		}
		cfg.Simulation.TickInterval = d
	}
	if flags.Changed("spawn") {
		cfg.Simulation.SpawnProbability = flagSpawn
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed = flagSeed
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyArena switches cfg to a fixed arena parsed from an --arena value.
func applyArena(cfg *config.Config, value string) error {
	a, err := shooter.ParseArena(value)
	if err != nil {
		return fmt.Errorf("invalid --arena: %w", err)
	}
	cfg.Arena = config.ArenaConfig{
		Source: config.ArenaSourceFixed,
		Top:    a.Top,
		Left:   a.Left,
		Rows:   a.Rows,
		Cols:   a.Cols,
	}
	return nil
}
