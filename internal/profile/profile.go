// Package profile holds the persistent player save: currency totals, campaign
// position, unlocked weapons and permanent upgrade levels. The simulation reads
// it at level start and writes LevelDelta values back at level end; storage
// persists it.
package profile

import (
	"fmt"
	"slices"
)

// LevelsPerStage is the number of levels in a stage; the last one is the boss level.
const LevelsPerStage = 5

// DefaultWeapon is the weapon every new profile owns.
const DefaultWeapon = "Pistol"

// Upgrades are permanent stat levels bought outside a run. They never reset.
type Upgrades struct {
	HP        int `msgpack:"hp" yaml:"hp"`
	Damage    int `msgpack:"dmg" yaml:"dmg"`
	FireRate  int `msgpack:"firerate" yaml:"firerate"`
	MoveSpeed int `msgpack:"movespeed" yaml:"movespeed"`
	Magnet    int `msgpack:"magnet" yaml:"magnet"`
}

// Profile is the persisted save state.
type Profile struct {
	Coins           int
	Gems            int
	Stage           int
	LevelInStage    int
	UnlockedWeapons []string
	EquippedWeapon  string
	Upgrades        Upgrades
}

// New returns a fresh profile at stage 1, level 1 with the default weapon.
func New() Profile {
	return Profile{
		Stage:           1,
		LevelInStage:    1,
		UnlockedWeapons: []string{DefaultWeapon},
		EquippedWeapon:  DefaultWeapon,
	}
}

// IsBossLevel reports whether the current level is the stage boss level.
func (p Profile) IsBossLevel() bool {
	return p.LevelInStage == LevelsPerStage
}

// Owns reports whether the weapon is unlocked.
func (p Profile) Owns(weapon string) bool {
	return slices.Contains(p.UnlockedWeapons, weapon)
}

// Unlock adds a weapon to the unlocked set. Returns false if already owned.
func (p *Profile) Unlock(weapon string) bool {
	if p.Owns(weapon) {
		return false
	}
	p.UnlockedWeapons = append(p.UnlockedWeapons, weapon)
	return true
}

// Equip selects an unlocked weapon.
func (p *Profile) Equip(weapon string) error {
	if !p.Owns(weapon) {
		return fmt.Errorf("profile: weapon %q is not unlocked", weapon)
	}
	p.EquippedWeapon = weapon
	return nil
}

// Normalize repairs out-of-range fields read from older saves.
func (p *Profile) Normalize() {
	if p.Stage < 1 {
		p.Stage = 1
	}
	if p.LevelInStage < 1 || p.LevelInStage > LevelsPerStage {
		p.LevelInStage = 1
	}
	if p.Coins < 0 {
		p.Coins = 0
	}
	if p.Gems < 0 {
		p.Gems = 0
	}
	if !p.Owns(DefaultWeapon) {
		p.UnlockedWeapons = append([]string{DefaultWeapon}, p.UnlockedWeapons...)
	}
	if p.EquippedWeapon == "" || !p.Owns(p.EquippedWeapon) {
		p.EquippedWeapon = DefaultWeapon
	}
}

// LevelDelta is what the simulation emits when a level ends.
type LevelDelta struct {
	RunID           string
	Won             bool
	CoinsEarned     int
	GemsEarned      int
	NewLevelInStage int
	NewStage        int
	UnlockedWeapon  string // Set only by chest rewards
}

// Apply merges a delta into the profile.
func (p *Profile) Apply(d LevelDelta) {
	p.Coins += d.CoinsEarned
	p.Gems += d.GemsEarned
	if d.NewStage > 0 {
		p.Stage = d.NewStage
	}
	if d.NewLevelInStage > 0 {
		p.LevelInStage = d.NewLevelInStage
	}
	if d.UnlockedWeapon != "" {
		p.Unlock(d.UnlockedWeapon)
	}
}

// Advance returns the campaign position after clearing (stage, level).
func Advance(stage, level int) (newStage, newLevel int) {
	if level < LevelsPerStage {
		return stage, level + 1
	}
	return stage + 1, 1
}
