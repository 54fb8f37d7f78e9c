// voidrun is a top-down survival arena played in the terminal.
//
// Usage:
//
//	voidrun play               - Play in this terminal
//	voidrun simulate           - Run the simulation headless
//	voidrun list               - List weapons and perks
//	voidrun profile show       - Show the saved profile
//	voidrun runs               - Show recent level results
//	voidrun serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.voidrun/voidrun.db)
//	--profile <name>      - Profile used by local commands (default: local)
//	--config <path>       - Custom tuning YAML
//	--difficulty <preset> - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Append logs to a file
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/voidrun/internal/config"
	"github.com/vovakirdan/voidrun/internal/games/voidrun"
	"github.com/vovakirdan/voidrun/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagProfile    string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "voidrun",
	Short: "VOIDRUN - survive the swarm in your terminal",
	Long: `VOIDRUN is a top-down survival arena. Your ship fires on its own;
you steer, collect XP and pick perks while the swarm grows.

Each stage has five levels. Levels 1-4 are timed survival, level 5
is a boss fight in a closed arena. Clearing a stage opens a bonus chest.

Available commands:
  play      - Play in this terminal
  simulate  - Run the simulation headless (balancing)
  list      - Show weapons and perks
  profile   - Inspect, reset or re-equip the saved profile
  runs      - Show recent level results
  serve     - Start SSH server for remote play

Examples:
  voidrun play
  voidrun play --difficulty hard
  voidrun simulate --seconds 120 --autopilot --seed 7
  voidrun profile equip Shotgun
  voidrun serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
		voidrun.SetConfigPath(flagConfig)
		voidrun.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.voidrun/voidrun.db", "Path to profile database")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", storage.DefaultProfile, "Profile name for local play")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}
