package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridshooter/internal/config"
	"github.com/vovakirdan/gridshooter/internal/session"
	"github.com/vovakirdan/gridshooter/internal/shooter"
)

// Run plays an interactive session in the terminal until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	termArena := NewTerminalArena(int(os.Stdout.Fd()))

	var arenas shooter.ArenaSource = termArena
	if cfg.Arena.Source == config.ArenaSourceFixed {
		arenas = shooter.FixedArena(Place(cfg.Arena.Fixed()))
	}

	engine := shooter.New(cfg.EngineOptions())
	sink := &ProgramSink{}
	ctrl := session.New(engine, arenas, sink, session.Options{
		TickInterval: cfg.Simulation.TickInterval,
		Logger:       logger,
	})

	model := NewModel(ctx, ctrl, termArena, ModelOptions{
		Style:         cfg.Style(),
		Logger:        logger,
		ScreenshotDir: screenshotDir(),
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	sink.Attach(p)

	logger.Info("starting", "seed", engine.Seed(), "config", cfg.Source, "arena", cfg.Arena.Source)
	_, err := p.Run()

	ctrl.Close()
	ctrl.Wait()
	if dropped := ctrl.Dropped(); dropped > 0 {
		logger.Warn("frames dropped during session", "dropped", dropped)
	}
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func screenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gridshooter", "screenshots")
}
