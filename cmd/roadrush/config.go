package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roadrush/internal/config"
)

var flagDefaultConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the road configuration as YAML, after the search path and
--difficulty have been applied. Redirect it to a file to start a custom
config.

Config search order:
  1. --config <path>
  2. ~/.roadrush/configs/road.yaml
  3. ./configs/road.yaml
  4. Built-in defaults

Examples:
  roadrush config
  roadrush config --difficulty hard
  roadrush config --default > ~/.roadrush/configs/road.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaultConfig, "default", false, "Print the built-in default config")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDefaultConfig {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := loadRoadConfig(flagConfig, flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
