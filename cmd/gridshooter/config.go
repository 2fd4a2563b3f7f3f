package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridshooter/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration gridshooter would run with, after the config
file, GRIDSHOOTER_* environment variables and flags are applied.

Examples:
  gridshooter config
  gridshooter config --defaults > ~/.gridshooter/config.yaml
  GRIDSHOOTER_TICK_INTERVAL=200ms gridshooter config`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in default file instead")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if flagDefaults {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "# source: %s\n", cfg.Source); err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
