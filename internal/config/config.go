// Package config provides YAML-based tuning for the voidrun simulation and
// difficulty preset handling.
package config

import (
	"errors"
	"fmt"
	"sort"
)

// VoidrunConfig contains every tunable constant of the simulation.
type VoidrunConfig struct {
	Player      PlayerConfig      `yaml:"player"`
	Arena       ArenaConfig       `yaml:"arena"`
	Difficulty  DifficultyConfig  `yaml:"difficulty"`
	Enemies     EnemyConfig       `yaml:"enemies"`
	Spawner     SpawnerConfig     `yaml:"spawner"`
	Boss        BossConfig        `yaml:"boss"`
	Weapons     map[string]Weapon `yaml:"weapons"`
	Combat      CombatConfig      `yaml:"combat"`
	Drops       DropConfig        `yaml:"drops"`
	Magnet      MagnetConfig      `yaml:"magnet"`
	Progression ProgressionConfig `yaml:"progression"`
	Upgrades    UpgradeConfig     `yaml:"upgrades"`
	Chest       ChestConfig       `yaml:"chest"`
}

// PlayerConfig defines the avatar baseline before upgrades and perks.
type PlayerConfig struct {
	Radius    float64 `yaml:"radius"`
	BaseHP    float64 `yaml:"base_hp"`
	BaseSpeed float64 `yaml:"base_speed"`
	Deadzone  float64 `yaml:"deadzone"` // Input magnitude below which the avatar stands still
}

// ArenaConfig defines the bounded circular arena and open-field culling.
type ArenaConfig struct {
	Radius           float64 `yaml:"radius"`
	ProjectileMargin float64 `yaml:"projectile_margin"` // Projectiles die past Radius+margin
	FieldCullRange   float64 `yaml:"field_cull_range"`  // Open field: projectiles die this far from the player
}

// DifficultyConfig selects a preset scaling enemy health and damage.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// EnemyConfig defines tier baselines and the archetype table.
type EnemyConfig struct {
	BaseHP        float64     `yaml:"base_hp"`
	HPPerTier     float64     `yaml:"hp_per_tier"`
	BaseSpeed     float64     `yaml:"base_speed"`
	SpeedPerTier  float64     `yaml:"speed_per_tier"`
	BaseDamage    float64     `yaml:"base_damage"`
	DamagePerTier float64     `yaml:"damage_per_tier"`
	Archetypes    []Archetype `yaml:"archetypes"`
}

// Archetype is one weighted enemy variant relative to the tier baseline.
type Archetype struct {
	Name      string  `yaml:"name"`
	Weight    float64 `yaml:"weight"`
	HPMul     float64 `yaml:"hp_mul"`
	SpeedMul  float64 `yaml:"speed_mul"`
	DamageMul float64 `yaml:"damage_mul"`
	Radius    float64 `yaml:"radius"`
	XP        int     `yaml:"xp"`
}

// SpawnerConfig defines normal-wave pacing and the spawn ring.
type SpawnerConfig struct {
	BaseInterval     float64 `yaml:"base_interval"`
	IntervalPerTier  float64 `yaml:"interval_per_tier"`
	MinInterval      float64 `yaml:"min_interval"`
	BatchBase        int     `yaml:"batch_base"`
	BatchTierDivisor int     `yaml:"batch_tier_divisor"`
	RingMin          float64 `yaml:"ring_min"`
	RingMax          float64 `yaml:"ring_max"`
	TargetBase       float64 `yaml:"target_base"`     // Seconds to survive at tier 0
	TargetPerTier    float64 `yaml:"target_per_tier"` // Extra seconds per tier
}

// BossConfig defines the boss archetype, its ultimate and the boss-level adds.
type BossConfig struct {
	GracePeriod   float64 `yaml:"grace_period"`
	BaseHP        float64 `yaml:"base_hp"`
	HPPerTier     float64 `yaml:"hp_per_tier"`
	BaseSpeed     float64 `yaml:"base_speed"`
	SpeedPerTier  float64 `yaml:"speed_per_tier"`
	BaseDamage    float64 `yaml:"base_damage"`
	DamagePerTier float64 `yaml:"damage_per_tier"`
	Radius        float64 `yaml:"radius"`
	XP            int     `yaml:"xp"`

	UltCooldown float64 `yaml:"ult_cooldown"`
	UltJitter   float64 `yaml:"ult_jitter"`
	UltFirst    float64 `yaml:"ult_first"`
	UltAddsMin  int     `yaml:"ult_adds_min"`
	UltAddsMax  int     `yaml:"ult_adds_max"`
	UltRingMin  float64 `yaml:"ult_ring_min"`
	UltRingMax  float64 `yaml:"ult_ring_max"`
	UltAddHPMul float64 `yaml:"ult_add_hp_mul"`

	AddIntervalMul   float64 `yaml:"add_interval_mul"`
	AddIntervalMin   float64 `yaml:"add_interval_min"`
	AddIntervalMax   float64 `yaml:"add_interval_max"`
	AddBatchDivisor  int     `yaml:"add_batch_divisor"`
	AddHPMul         float64 `yaml:"add_hp_mul"`
	AddTemplateLevel int     `yaml:"add_template_level"`
}

// Weapon is the equipped weapon descriptor read at level start.
type Weapon struct {
	Name            string  `yaml:"name"`
	BaseDamage      float64 `yaml:"base_damage"`
	FireInterval    float64 `yaml:"fire_interval"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	Pierce          int     `yaml:"pierce"`
	Spread          float64 `yaml:"spread"` // Radians between adjacent pellets
	Pellets         int     `yaml:"pellets"`
	HPBonus         float64 `yaml:"hp_bonus"`
	DamageMul       float64 `yaml:"damage_mul"` // Equipment multiplier, 1 when unset
}

// CombatConfig defines caps and projectile defaults shared by all weapons.
type CombatConfig struct {
	CritCap          float64 `yaml:"crit_cap"`
	ArmorCap         float64 `yaml:"armor_cap"`
	LifestealCap     float64 `yaml:"lifesteal_cap"`
	ProjectileRadius float64 `yaml:"projectile_radius"`
	ProjectileLife   float64 `yaml:"projectile_life"`
	HitFlash         float64 `yaml:"hit_flash"`
}

// DropConfig defines what enemies leave behind.
type DropConfig struct {
	CoinChance   float64 `yaml:"coin_chance"`
	CoinOrbsMin  int     `yaml:"coin_orbs_min"`
	CoinOrbsMax  int     `yaml:"coin_orbs_max"`
	CoinValueMin int     `yaml:"coin_value_min"`
	CoinValueMax int     `yaml:"coin_value_max"`
	GemChance    float64 `yaml:"gem_chance"`
	Scatter      float64 `yaml:"scatter"`       // Max spawn offset from the corpse
	ScatterSpeed float64 `yaml:"scatter_speed"` // Max initial speed per axis
	Friction     float64 `yaml:"friction"`      // Velocity factor retained per second
	Radius       float64 `yaml:"radius"`
}

// MagnetConfig defines pickup attraction.
type MagnetConfig struct {
	BaseRadius     float64 `yaml:"base_radius"`
	PullSpeed      float64 `yaml:"pull_speed"`
	CollectPadding float64 `yaml:"collect_padding"`
}

// ProgressionConfig defines experience thresholds and the loss penalty.
type ProgressionConfig struct {
	XPStart       int     `yaml:"xp_start"`
	XPGrowth      float64 `yaml:"xp_growth"`
	XPBonus       float64 `yaml:"xp_bonus"`
	LossRetention float64 `yaml:"loss_retention"`
}

// UpgradeConfig defines what each permanent upgrade level is worth.
type UpgradeConfig struct {
	HPPerLevel        float64 `yaml:"hp_per_level"`
	DamagePerLevel    float64 `yaml:"damage_per_level"`
	FireRatePerLevel  float64 `yaml:"firerate_per_level"`
	MoveSpeedPerLevel float64 `yaml:"movespeed_per_level"`
	MagnetPerLevel    float64 `yaml:"magnet_per_level"`
}

// ChestConfig defines the stage-clear bonus chest.
type ChestConfig struct {
	SpinDuration float64 `yaml:"spin_duration"`
	CoinWeight   float64 `yaml:"coin_weight"`
	GemWeight    float64 `yaml:"gem_weight"`
	CoinsMin     int     `yaml:"coins_min"`
	CoinsMax     int     `yaml:"coins_max"`
	GemsMin      int     `yaml:"gems_min"`
	GemsMax      int     `yaml:"gems_max"`
}

// WeaponIDs returns the configured weapon ids in a stable order.
func (c VoidrunConfig) WeaponIDs() []string {
	ids := make([]string, 0, len(c.Weapons))
	for id := range c.Weapons {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate reports configuration values the simulation cannot run with.
func (c VoidrunConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("player.radius", c.Player.Radius)
	positive("player.base_hp", c.Player.BaseHP)
	positive("player.base_speed", c.Player.BaseSpeed)
	positive("arena.radius", c.Arena.Radius)
	positive("enemies.base_hp", c.Enemies.BaseHP)
	positive("spawner.min_interval", c.Spawner.MinInterval)
	positive("boss.base_hp", c.Boss.BaseHP)
	positive("boss.radius", c.Boss.Radius)
	positive("combat.projectile_radius", c.Combat.ProjectileRadius)
	positive("combat.projectile_life", c.Combat.ProjectileLife)
	positive("drops.radius", c.Drops.Radius)
	positive("magnet.base_radius", c.Magnet.BaseRadius)
	positive("chest.spin_duration", c.Chest.SpinDuration)

	if c.Spawner.RingMin <= c.Player.Radius || c.Spawner.RingMax < c.Spawner.RingMin {
		errs = append(errs, fmt.Errorf("spawner ring [%v, %v] must start outside the player", c.Spawner.RingMin, c.Spawner.RingMax))
	}
	if c.Spawner.BatchBase < 1 || c.Spawner.BatchTierDivisor < 1 {
		errs = append(errs, errors.New("spawner.batch_base and batch_tier_divisor must be at least 1"))
	}
	if c.Boss.AddBatchDivisor < 1 {
		errs = append(errs, errors.New("boss.add_batch_divisor must be at least 1"))
	}
	if c.Boss.UltAddsMax < c.Boss.UltAddsMin {
		errs = append(errs, errors.New("boss.ult_adds_max must not be below ult_adds_min"))
	}
	if c.Progression.XPStart < 1 || c.Progression.XPGrowth < 1 {
		errs = append(errs, errors.New("progression thresholds must start at 1 and not shrink"))
	}
	if c.Progression.LossRetention < 0 || c.Progression.LossRetention > 1 {
		errs = append(errs, fmt.Errorf("progression.loss_retention must be in [0, 1], got %v", c.Progression.LossRetention))
	}

	var total float64
	for _, a := range c.Enemies.Archetypes {
		if a.Weight < 0 || a.HPMul <= 0 || a.Radius <= 0 {
			errs = append(errs, fmt.Errorf("archetype %q has invalid weight, hp_mul or radius", a.Name))
		}
		total += a.Weight
	}
	if total <= 0 {
		errs = append(errs, errors.New("enemies.archetypes must have positive total weight"))
	}

	if len(c.Weapons) == 0 {
		errs = append(errs, errors.New("at least one weapon must be configured"))
	}
	for id, w := range c.Weapons {
		if w.BaseDamage <= 0 || w.FireInterval <= 0 || w.ProjectileSpeed <= 0 || w.Pellets < 1 || w.Pierce < 0 {
			errs = append(errs, fmt.Errorf("weapon %q has invalid stats", id))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
