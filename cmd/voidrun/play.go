package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/voidrun/internal/core"
	"github.com/vovakirdan/voidrun/internal/platform/tui"
	"github.com/vovakirdan/voidrun/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Open the hangar and launch your next level.

Controls:
  W/A/S/D, arrows  - Steer (hold to keep moving)
  X                - Stop
  1/2/3            - Pick a perk on level up
  Enter/Space      - Continue, open the chest
  P/Esc            - Pause
  R                - Retry after defeat
  B                - Back to the hangar (while paused)
  ?                - Toggle full help
  Q/Ctrl+C         - Quit

Progress is saved to the profile database after every level.

Examples:
  voidrun play
  voidrun play --profile alice
  voidrun play --difficulty easy --log-file /tmp/voidrun.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	// The alt-screen owns the terminal; logs only go to --log-file.
	logger, closeLog, err := newLogger("voidrun", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open profile database: %v\n", err)
		store = nil
	}

	runErr := tui.Run(store, cfg, flagProfile, logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}
