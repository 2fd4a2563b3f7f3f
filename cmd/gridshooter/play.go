package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridshooter/internal/platform/tui"
)

var (
	flagPlayArena string
	flagLogFile   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start an interactive session sized to the terminal.

Controls:
  Arrows/hjkl  - Move
  Space        - Fire
  S            - Start a new session
  P            - Pause/resume
  R            - Restart (re-measures the terminal)
  Ctrl+S       - Save a screenshot to ~/.gridshooter/screenshots
  Q/Ctrl+C     - Quit

Examples:
  gridshooter play
  gridshooter play --arena 20x40
  gridshooter play --log /tmp/gridshooter.log --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayArena, "arena", "", "Fixed arena ROWSxCOLS[+TOP+LEFT] instead of the terminal size; the origin is inside the border")
	playCmd.Flags().StringVar(&flagLogFile, "log", "", "Write logs to this file (default: discard)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if flagPlayArena != "" {
		if err := applyArena(&cfg, flagPlayArena); err != nil {
			return err
		}
	}

	w, closeLog, err := openLog(flagLogFile)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck // Best-effort close on exit

	logger, err := newLogger(w, cfg.Log.Level)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tui.Run(ctx, cfg, logger)
}
