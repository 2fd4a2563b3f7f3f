// gridshooter is a terminal grid shooter: steer a ship along the bottom of
// the arena and shoot down the enemies falling from the top.
//
// Usage:
//
//	gridshooter play         - Play in the terminal
//	gridshooter simulate     - Run a headless simulation and print stats
//	gridshooter config       - Print the effective configuration
//
// Global flags:
//
//	--config <path>      - Config file (default search: ~/.gridshooter, ./configs, embedded)
//	--tick <duration>    - Time between simulation steps
//	--spawn <p>          - Enemy spawn probability per tick
//	--seed <value>       - RNG seed for reproducible runs (0 = from the clock)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagTick     string
	flagSpawn    float64
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridshooter",
	Short: "Grid Shooter - a tiny arcade shooter for your terminal",
	Long: `Grid Shooter is a real-time shooter played on a character grid.
Enemies fall from the top of the arena; move your ship and fire to
destroy them before they slip past.

Available commands:
  play      - Play in the terminal
  simulate  - Run a headless simulation
  config    - Print the effective configuration

Examples:
  gridshooter play
  gridshooter play --arena 20x40 --tick 250ms
  gridshooter simulate --ticks 500 --seed 42
  gridshooter config --config ./configs/gridshooter.yaml`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagTick, "tick", "", "Tick interval, e.g. 400ms (overrides config)")
	rootCmd.PersistentFlags().Float64Var(&flagSpawn, "spawn", 0, "Enemy spawn probability per tick (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}
