package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/voidrun/internal/config"
	"github.com/vovakirdan/voidrun/internal/games/voidrun"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List weapons and perks",
	Long: `Shows the weapons from the tuning config (or --config) and the perks
offered on level up.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadVoidrun(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	fmt.Println("Weapons:")
	fmt.Println()
	fmt.Printf("  %-8s  %6s  %8s  %6s  %6s  %7s  %5s\n", "ID", "Damage", "Interval", "Speed", "Pierce", "Pellets", "HP+")
	fmt.Printf("  %-8s  %6s  %8s  %6s  %6s  %7s  %5s\n", "--", "------", "--------", "-----", "------", "-------", "---")
	for _, id := range cfg.WeaponIDs() {
		w := cfg.Weapons[id]
		fmt.Printf("  %-8s  %6.1f  %7.2fs  %6.0f  %6d  %7d  %5.0f\n",
			id, w.BaseDamage, w.FireInterval, w.ProjectileSpeed, w.Pierce, max(w.Pellets, 1), w.HPBonus)
	}

	maxIDLen := 2
	for _, p := range voidrun.Perks() {
		maxIDLen = max(maxIDLen, len(p.ID))
	}

	fmt.Println()
	fmt.Println("Perks:")
	fmt.Println()
	fmt.Printf("  %-*s  %-3s  %s\n", maxIDLen, "ID", "Max", "Effect")
	fmt.Printf("  %-*s  %-3s  %s\n", maxIDLen, "--", "---", "------")
	for _, p := range voidrun.Perks() {
		fmt.Printf("  %-*s  %-3d  %s\n", maxIDLen, p.ID, p.MaxLevel, p.Desc)
	}

	fmt.Println()
	fmt.Println("When every perk is maxed, level up offers:")
	for _, p := range voidrun.Fillers() {
		fmt.Printf("  %-*s       %s\n", maxIDLen, p.ID, p.Desc)
	}
	return nil
}
