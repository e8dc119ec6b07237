// roadrush is a lane-dodging arcade game for the terminal.
//
// Usage:
//
//	roadrush play            - Play locally (Bubble Tea or tcell frontend)
//	roadrush serve           - Start SSH server for remote play
//	roadrush replays         - Browse recorded sessions
//	roadrush replay <id>     - Watch or verify a recorded session
//	roadrush config          - Print the effective configuration
//
// Global flags:
//
//	--config <path>       - Road config YAML (default: search path, then built-in)
//	--difficulty <name>   - Preset: easy, normal, hard, fixed
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Replay database (default: ~/.roadrush/replays.db)
//	--log-file <path>     - Write logs to a file ("-" for stderr)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagSeed       int64
	flagDBPath     string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "roadrush",
	Short: "Road Rush - dodge traffic in your terminal",
	Long: `Road Rush is a lane-dodging arcade game: steer a car down a scrolling
road, avoid the obstacles and keep your speed up.

Available commands:
  play     - Play a game
  serve    - Start SSH server for remote play
  replays  - Browse recorded sessions
  replay   - Watch or verify one recorded session
  config   - Print the effective configuration

Examples:
  roadrush play
  roadrush play --frontend tcell --difficulty hard
  roadrush play --record --seed 42
  roadrush serve --ssh :2222 --record
  roadrush replay 1a2b3c4d --verify`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom road config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.roadrush/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", `Write logs to this file ("-" for stderr, empty to discard)`)
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}
