package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	flagRunsLimit int
	flagRunsAll   bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent level results",
	Long: `Display the newest finished levels of the --profile player.

Examples:
  voidrun runs
  voidrun runs --limit 50
  voidrun runs --all`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsAll, "all", false, "Show runs of every profile")
}

func runRuns(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	name := flagProfile
	if flagRunsAll {
		name = ""
	}
	runs, err := store.RecentRuns(name, flagRunsLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'voidrun play' to record the first one!")
		return nil
	}

	fmt.Printf("  %-10s  %-5s  %-6s  %-8s  %6s  %6s  %7s  %s\n",
		"Profile", "Level", "Result", "Weapon", "Kills", "Time", "Coins", "When")
	fmt.Printf("  %-10s  %-5s  %-6s  %-8s  %6s  %6s  %7s  %s\n",
		"-------", "-----", "------", "------", "-----", "----", "-----", "----")
	for _, r := range runs {
		result := "lost"
		if r.Won {
			result = "won"
		}
		t := int(r.Elapsed)
		fmt.Printf("  %-10s  %-5s  %-6s  %-8s  %6s  %3d:%02d  %7s  %s\n",
			r.Profile, fmt.Sprintf("%d-%d", r.Stage, r.Level), result, r.Weapon,
			humanize.Comma(int64(r.Kills)), t/60, t%60, humanize.Comma(int64(r.Coins)), humanize.Time(r.CreatedAt))
	}
	return nil
}
