package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/voidrun/internal/core"
	"github.com/vovakirdan/voidrun/internal/games/voidrun"
	"github.com/vovakirdan/voidrun/internal/profile"
)

var (
	flagSimSeconds   float64
	flagSimAutopilot bool
	flagSimDump      string
	flagSimStage     int
	flagSimLevel     int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the simulation headless",
	Long: `Run VOIDRUN without a terminal at a fixed time step and print a summary.

Menus are answered automatically: the first perk is always taken, cleared
levels continue, lost levels are retried and chests are claimed. Without
--autopilot the ship stands still.

The run starts from a fresh profile and nothing is saved.

Examples:
  voidrun simulate --seconds 300 --autopilot --seed 7
  voidrun simulate --stage 2 --level 5 --autopilot --log-level debug
  voidrun simulate --seconds 60 --dump /tmp/voidrun.snap`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Float64Var(&flagSimSeconds, "seconds", 120, "Simulated seconds")
	simulateCmd.Flags().BoolVar(&flagSimAutopilot, "autopilot", false, "Steer the ship in a wide circle")
	simulateCmd.Flags().StringVar(&flagSimDump, "dump", "", "Write the final msgpack snapshot to this file")
	simulateCmd.Flags().IntVar(&flagSimStage, "stage", 1, "Starting stage")
	simulateCmd.Flags().IntVar(&flagSimLevel, "level", 1, "Starting level within the stage (5 = boss)")
}

// simReport summarizes a headless run.
type simReport struct {
	Frames    int
	Simulated time.Duration
	Levels    int
	Wins      int
	Losses    int
	LevelUps  int
	Chests    int
	Kills     int
	Coins     int
	Gems      int
	Final     voidrun.Snapshot
}

// autopilotInput answers every menu and, when steer is set, circles the
// origin so the ship keeps kiting.
func autopilotInput(frame int, dt float64, steer bool) core.InputFrame {
	in := core.NewInputFrame()
	in.DT = dt
	in.Set(core.ActionChoice1)
	in.Set(core.ActionConfirm)
	if steer {
		a := float64(frame) * dt / 1.5
		in.SetMove(core.V(-math.Sin(a), math.Cos(a)))
	}
	return in
}

// simulate steps g for frames fixed steps of dt and tallies its events.
func simulate(g *voidrun.Game, frames int, dt float64, steer bool) simReport {
	var r simReport
	tally := func(events []voidrun.Event) {
		for _, e := range events {
			switch e.Kind {
			case voidrun.EventLevelUp:
				r.LevelUps++
			case voidrun.EventLevelEnd:
				res := e.Result
				r.Levels++
				if res.Won {
					r.Wins++
				} else {
					r.Losses++
				}
				r.Kills += res.Kills
			case voidrun.EventChestOpened:
				r.Chests++
			}
			if e.Delta != nil {
				r.Coins += e.Delta.CoinsEarned
				r.Gems += e.Delta.GemsEarned
			}
		}
	}

	tally(g.DrainEvents())
	for i := range frames {
		g.Step(autopilotInput(i, dt, steer))
		tally(g.DrainEvents())
	}

	s := g.Sim()
	switch s.Phase {
	case voidrun.PhaseRun, voidrun.PhasePaused, voidrun.PhaseLevelUp:
		r.Kills += s.Player.Kills
	}
	r.Frames = frames
	r.Simulated = time.Duration(float64(frames) * dt * float64(time.Second))
	r.Final = s.Snapshot()
	return r
}

func runSimulate(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger("voidrun-sim", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	if flagSimLevel < 1 || flagSimLevel > profile.LevelsPerStage || flagSimStage < 1 {
		return fmt.Errorf("--stage must be >= 1 and --level in 1..%d", profile.LevelsPerStage)
	}

	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	p := profile.New()
	p.Stage = flagSimStage
	p.LevelInStage = flagSimLevel

	g := voidrun.New()
	g.SetLogger(logger)
	g.UseProfile(p)
	g.Reset(cfg)

	frames := int(flagSimSeconds * float64(cfg.TickRate))
	start := time.Now()
	r := simulate(g, frames, cfg.FixedDT(), flagSimAutopilot)
	wall := time.Since(start)

	fmt.Printf("Simulated %s (%s frames, seed %d) in %s\n",
		r.Simulated, humanize.Comma(int64(r.Frames)), cfg.Seed, wall.Round(time.Millisecond))
	fmt.Printf("Levels:    %d (%d won, %d lost), %d chests\n", r.Levels, r.Wins, r.Losses, r.Chests)
	fmt.Printf("Kills:     %s, %d level-ups\n", humanize.Comma(int64(r.Kills)), r.LevelUps)
	fmt.Printf("Earned:    %s coins, %s gems\n", humanize.Comma(int64(r.Coins)), humanize.Comma(int64(r.Gems)))
	fmt.Printf("Final:     stage %d level %d, %s, %d enemies, hash %016x\n",
		r.Final.Stage, r.Final.Level, r.Final.Phase, len(r.Final.Enemies), r.Final.Hash())

	if flagSimDump == "" {
		return nil
	}
	data, err := r.Final.Encode()
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(flagSimDump, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	fmt.Printf("Snapshot:  %s written to %s\n", humanize.Bytes(uint64(len(data))), flagSimDump)
	return nil
}
