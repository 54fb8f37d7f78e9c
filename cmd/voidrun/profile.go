package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/voidrun/internal/config"
	"github.com/vovakirdan/voidrun/internal/profile"
	"github.com/vovakirdan/voidrun/internal/storage"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect or change the saved profile",
	Long: `Work with the profile selected by --profile.

Examples:
  voidrun profile show
  voidrun profile show --profile alice
  voidrun profile equip Shotgun
  voidrun profile reset`,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show wallet, campaign position and weapons",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the profile and its run history",
	Args:  cobra.NoArgs,
	RunE:  runProfileReset,
}

var profileEquipCmd = &cobra.Command{
	Use:   "equip <weapon>",
	Short: "Equip an unlocked weapon",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileEquip,
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileResetCmd)
	profileCmd.AddCommand(profileEquipCmd)
}

// openStore opens the --db profile database.
func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening profile database: %w", err)
	}
	return store, nil
}

func runProfileShow(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := store.LoadProfile(flagProfile)
	if err != nil {
		return err
	}
	stats, err := store.Stats(flagProfile)
	if err != nil {
		return err
	}

	next := fmt.Sprintf("stage %d, level %d/%d", p.Stage, p.LevelInStage, profile.LevelsPerStage)
	if p.IsBossLevel() {
		next += " (boss)"
	}

	fmt.Printf("Profile %s\n", flagProfile)
	fmt.Println()
	fmt.Printf("  Next level:  %s\n", next)
	fmt.Printf("  Wallet:      %s coins, %s gems\n", humanize.Comma(int64(p.Coins)), humanize.Comma(int64(p.Gems)))
	fmt.Printf("  Weapon:      %s (owned: %s)\n", p.EquippedWeapon, strings.Join(p.UnlockedWeapons, ", "))
	u := p.Upgrades
	fmt.Printf("  Upgrades:    HP %d, damage %d, fire rate %d, speed %d, magnet %d\n",
		u.HP, u.Damage, u.FireRate, u.MoveSpeed, u.Magnet)

	if stats.Runs == 0 {
		fmt.Println()
		fmt.Println("No runs recorded yet. Start one with 'voidrun play'.")
		return nil
	}
	fmt.Printf("  History:     %d runs, %d won, %s kills, best stage %d, last played %s\n",
		stats.Runs, stats.Wins, humanize.Comma(int64(stats.Kills)), stats.BestStage, humanize.Time(stats.LastPlayed))
	return nil
}

func runProfileReset(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteProfile(flagProfile); err != nil {
		return err
	}
	fmt.Printf("Profile %s reset.\n", flagProfile)
	return nil
}

func runProfileEquip(_ *cobra.Command, args []string) error {
	weapon := args[0]

	cfg, err := config.LoadVoidrun(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if !slices.Contains(cfg.WeaponIDs(), weapon) {
		return fmt.Errorf("unknown weapon %q, run 'voidrun list' to see available weapons", weapon)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := store.LoadProfile(flagProfile)
	if err != nil {
		return err
	}
	if err := p.Equip(weapon); err != nil {
		return err
	}
	if err := store.SaveProfile(flagProfile, p); err != nil {
		return err
	}
	fmt.Printf("Equipped %s.\n", weapon)
	return nil
}
