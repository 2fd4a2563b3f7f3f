package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridshooter/internal/core"
	"github.com/vovakirdan/gridshooter/internal/render"
	"github.com/vovakirdan/gridshooter/internal/shooter"
)

var (
	flagSimTicks     int
	flagSimArena     string
	flagSimFireEvery int
	flagSimFrames    bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless simulation",
	Long: `Drive the engine for a fixed number of ticks without a terminal UI
and print the final statistics. The player fires every --fire-every ticks.

Examples:
  gridshooter simulate --ticks 1000 --seed 7
  gridshooter simulate --ticks 20 --arena 8x12 --frames`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 100, "Number of ticks to run")
	simulateCmd.Flags().StringVar(&flagSimArena, "arena", "10x20", "Arena ROWSxCOLS[+TOP+LEFT]")
	simulateCmd.Flags().IntVar(&flagSimFireEvery, "fire-every", 2, "Fire every N ticks (0 = never)")
	simulateCmd.Flags().BoolVar(&flagSimFrames, "frames", false, "Print every frame")
}

// simulation describes one headless run.
type simulation struct {
	Arena     shooter.Arena
	Ticks     int
	FireEvery int
	Options   shooter.Options
	Frames    *render.TextSink // nil disables frame output
	Logger    *log.Logger
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	a, err := shooter.ParseArena(flagSimArena)
	if err != nil {
		return fmt.Errorf("invalid --arena: %w", err)
	}
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log.Level)
	if err != nil {
		return err
	}

	sim := simulation{
		Arena:     a,
		Ticks:     flagSimTicks,
		FireEvery: flagSimFireEvery,
		Options:   cfg.EngineOptions(),
		Logger:    logger,
	}
	out := cmd.OutOrStdout()
	if flagSimFrames {
		sim.Frames = render.NewTextSink(out, cfg.Style())
	}

	snap, err := sim.run()
	if err != nil {
		return err
	}
	return printStats(out, snap)
}

// run starts a session and steps it Ticks times.
func (s simulation) run() (shooter.Snapshot, error) {
	if s.Ticks < 0 {
		return shooter.Snapshot{}, fmt.Errorf("invalid --ticks %d", s.Ticks)
	}
	engine := shooter.New(s.Options)
	snap, err := engine.Start(s.Arena)
	if err != nil {
		return snap, err
	}
	s.Logger.Info("simulation started", "session", snap.Session, "arena", s.Arena, "seed", engine.Seed(), "ticks", s.Ticks)

	for i := 1; i <= s.Ticks; i++ {
		if s.FireEvery > 0 && i%s.FireEvery == 0 {
			if err := engine.HandleInput(core.Fire); err != nil {
				return snap, err
			}
		}
		snap, err = engine.Step()
		if err != nil {
			return snap, err
		}
		if s.Frames != nil {
			if err := s.Frames.Present(snap); err != nil {
				return snap, err
			}
		}
		s.Logger.Debug("tick", "tick", snap.Tick, "bullets", len(snap.Bullets), "enemies", len(snap.Enemies))
	}

	engine.Stop()
	s.Logger.Info("simulation finished", "session", snap.Session, "tick", snap.Tick)
	return engine.Snapshot(), nil
}

func printStats(w io.Writer, snap shooter.Snapshot) error {
	st := snap.Stats
	_, err := fmt.Fprintf(w, `ticks:             %d
arena:             %s
bullets fired:     %d
enemies spawned:   %d
enemies destroyed: %d
enemies escaped:   %d
on field:          %d bullets, %d enemies
`,
		snap.Tick, snap.Arena,
		st.BulletsFired, st.EnemiesSpawned, st.EnemiesDestroyed, st.EnemiesEscaped,
		len(snap.Bullets), len(snap.Enemies))
	return err
}
