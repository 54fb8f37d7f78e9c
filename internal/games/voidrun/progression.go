package voidrun

import (
	"errors"
	"fmt"
	"math"

	"github.com/oklog/ulid/v2"

	"github.com/vovakirdan/voidrun/internal/config"
	"github.com/vovakirdan/voidrun/internal/profile"
)

// ErrWrongPhase is returned when an action does not apply to the current phase.
var ErrWrongPhase = errors.New("voidrun: action not allowed in this phase")

// StartLevel reinitializes every store for the profile's current position:
// wallet, experience and perks reset, HP comes from upgrades and the weapon,
// and even levels are played in the arena.
func (s *Sim) StartLevel() {
	s.prof.Normalize()
	s.Stage = s.prof.Stage
	s.Level = s.prof.LevelInStage
	s.Tier = Tier(s.Stage, s.Level)
	s.Arena = s.Level%2 == 0
	s.ArenaRadius = s.cfg.Arena.Radius
	s.RunID = ulid.Make().String()

	id, w := s.equippedWeapon()
	s.weapon = w
	upg := s.prof.Upgrades
	maxHP := s.cfg.Player.BaseHP + s.cfg.Upgrades.HPPerLevel*float64(upg.HP) + w.HPBonus
	s.Player = Player{
		Radius:     s.cfg.Player.Radius,
		HP:         maxHP,
		MaxHP:      maxHP,
		BaseDamage: w.BaseDamage,
		BaseFire:   w.FireInterval,
		BaseSpeed:  s.cfg.Player.BaseSpeed * (1 + s.cfg.Upgrades.MoveSpeedPerLevel*float64(upg.MoveSpeed)),
		MagnetMul:  1 + s.cfg.Upgrades.MagnetPerLevel*float64(upg.Magnet),
		Weapon:     id,
		Perks:      PerkLevels{},
	}

	s.Enemies = nil
	s.Projectiles = nil
	s.Pickups = nil
	s.Effects = nil
	s.Wave = Wave{}
	s.XP = XPState{Need: s.cfg.Progression.XPStart, Level: 1}
	s.Timers = Timers{}
	s.Offer = nil
	s.pendingLevelUps = 0
	s.Chest = Chest{}
	s.chestQueued = false
	s.Result = nil
	s.Phase = PhaseRun

	s.emit(Event{Kind: EventLevelStart, Stage: s.Stage, Level: s.Level, Arena: s.Arena})
	s.log.Debug("level start", "run", s.RunID, "stage", s.Stage, "level", s.Level, "tier", s.Tier, "arena", s.Arena, "weapon", id)
}

// equippedWeapon resolves the profile's weapon, falling back to the default
// and then to the first configured weapon.
func (s *Sim) equippedWeapon() (string, config.Weapon) {
	for _, id := range []string{s.prof.EquippedWeapon, profile.DefaultWeapon} {
		if w, ok := s.cfg.Weapons[id]; ok {
			return id, normalizeWeapon(w)
		}
	}
	ids := s.cfg.WeaponIDs()
	if len(ids) == 0 {
		panic("voidrun: no weapons configured")
	}
	return ids[0], normalizeWeapon(s.cfg.Weapons[ids[0]])
}

func normalizeWeapon(w config.Weapon) config.Weapon {
	if w.DamageMul == 0 {
		w.DamageMul = 1
	}
	if w.Pellets < 1 {
		w.Pellets = 1
	}
	return w
}

// checkProgress runs after cleanup. Death wins over a clear on the same tick,
// and a finished level discards queued level-ups.
func (s *Sim) checkProgress() {
	if s.IsBossLevel() && s.Wave.BossSpawned && s.Wave.bossDown {
		s.Wave.Done = true
	}

	switch {
	case s.Player.Dead:
		s.endLevel(false)
	case s.Wave.Done:
		s.endLevel(true)
	case s.pendingLevelUps > 0:
		s.openLevelUp()
	}
}

// endLevel credits the wallet, moves the campaign position and reports the
// delta. A loss keeps only part of the wallet and restarts the stage.
func (s *Sim) endLevel(won bool) {
	p := &s.Player
	coins, gems := p.Coins, p.Gems
	if !won {
		keep := s.cfg.Progression.LossRetention
		coins = int(math.Floor(float64(coins) * keep))
		gems = int(math.Floor(float64(gems) * keep))
	}

	delta := profile.LevelDelta{
		RunID:       s.RunID,
		Won:         won,
		CoinsEarned: coins,
		GemsEarned:  gems,
	}
	if won {
		delta.NewStage, delta.NewLevelInStage = profile.Advance(s.Stage, s.Level)
	} else {
		delta.NewStage, delta.NewLevelInStage = s.Stage, 1
	}
	s.prof.Apply(delta)

	s.Result = &LevelResult{
		RunID:   s.RunID,
		Stage:   s.Stage,
		Level:   s.Level,
		Won:     won,
		Weapon:  p.Weapon,
		Kills:   p.Kills,
		Elapsed: s.Wave.Elapsed,
		XPLevel: s.XP.Level,
		Coins:   coins,
		Gems:    gems,
	}
	s.chestQueued = won && s.IsBossLevel()
	s.pendingLevelUps = 0
	s.Offer = nil
	if won {
		s.Phase = PhaseLevelCleared
	} else {
		s.Phase = PhaseLevelFailed
	}

	s.emit(Event{Kind: EventLevelEnd, Stage: s.Stage, Level: s.Level, Arena: s.Arena, Delta: &delta, Result: s.Result})
	s.log.Info("level finished", "run", s.RunID, "stage", s.Stage, "level", s.Level, "won", won,
		"kills", p.Kills, "coins", coins, "gems", gems, "elapsed", math.Round(s.Wave.Elapsed))
}

func (s *Sim) openLevelUp() {
	s.Phase = PhaseLevelUp
	s.Offer = s.rollOffer()
	s.emit(Event{Kind: EventLevelUp, Stage: s.Stage, Level: s.Level, Value: s.XP.Level})
	s.log.Debug("level up", "xp_level", s.XP.Level, "pending", s.pendingLevelUps)
}

// ChoosePerk takes offer i. Further queued level-ups open a new offer;
// otherwise the run resumes.
func (s *Sim) ChoosePerk(i int) error {
	if s.Phase != PhaseLevelUp {
		return fmt.Errorf("choose perk in %s: %w", s.Phase, ErrWrongPhase)
	}
	if i < 0 || i >= len(s.Offer) {
		return fmt.Errorf("voidrun: perk choice %d out of range [0, %d)", i, len(s.Offer))
	}
	d := s.Offer[i].Perk
	s.applyPerk(d)
	s.pendingLevelUps--
	s.emit(Event{Kind: EventPerkChosen, Stage: s.Stage, Level: s.Level, Perk: d.ID, Value: s.Player.Perks[d.ID]})
	s.log.Debug("perk chosen", "perk", d.ID, "level", s.Player.Perks[d.ID])

	if s.pendingLevelUps > 0 {
		s.openLevelUp()
		return nil
	}
	s.Offer = nil
	s.Phase = PhaseRun
	return nil
}

// TogglePause switches between running and paused.
func (s *Sim) TogglePause() error {
	switch s.Phase {
	case PhaseRun:
		s.Phase = PhasePaused
	case PhasePaused:
		s.Phase = PhaseRun
	default:
		return fmt.Errorf("pause in %s: %w", s.Phase, ErrWrongPhase)
	}
	return nil
}

// Continue leaves a cleared level: into the bonus chest after a boss,
// otherwise straight into the next level.
func (s *Sim) Continue() error {
	if s.Phase != PhaseLevelCleared {
		return fmt.Errorf("continue in %s: %w", s.Phase, ErrWrongPhase)
	}
	if s.chestQueued {
		s.chestQueued = false
		s.Phase = PhaseChest
		s.Chest = Chest{}
		s.Chest.Open(s.cfg.Chest.SpinDuration)
		return nil
	}
	s.StartLevel()
	return nil
}

// Retry restarts after a loss. The profile already points at level 1.
func (s *Sim) Retry() error {
	if s.Phase != PhaseLevelFailed {
		return fmt.Errorf("retry in %s: %w", s.Phase, ErrWrongPhase)
	}
	s.StartLevel()
	return nil
}

// updateChest spins the chest and rolls the prize when the spin ends.
func (s *Sim) updateChest(dt float64) {
	if s.Chest.Update(dt) {
		s.Chest.Reward = s.rollChestReward(s.Stage)
		s.log.Debug("chest revealed", "reward", s.Chest.Reward.Kind, "amount", s.Chest.Reward.Amount, "weapon", s.Chest.Reward.Weapon)
	}
}

// ClaimChest applies the revealed prize and starts the next level.
func (s *Sim) ClaimChest() error {
	if s.Phase != PhaseChest || s.Chest.State != ChestRevealed {
		return fmt.Errorf("claim chest in %s: %w", s.Phase, ErrWrongPhase)
	}
	r := s.Chest.Reward
	delta := profile.LevelDelta{RunID: s.RunID, Won: true}
	switch r.Kind {
	case RewardCoins:
		delta.CoinsEarned = r.Amount
	case RewardGems:
		delta.GemsEarned = r.Amount
	case RewardWeapon:
		delta.UnlockedWeapon = r.Weapon
	}
	s.prof.Apply(delta)
	s.emit(Event{Kind: EventChestOpened, Stage: s.Stage, Level: s.Level, Delta: &delta, Reward: &r})
	s.log.Info("chest opened", "reward", r.Kind, "amount", r.Amount, "weapon", r.Weapon)

	s.StartLevel()
	return nil
}
