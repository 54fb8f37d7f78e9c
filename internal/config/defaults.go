package config

import (
	_ "embed"
)

//go:embed defaults/voidrun.yaml
var defaultVoidrunYAML []byte

// DefaultVoidrunConfig returns the built-in tuning. It mirrors
// defaults/voidrun.yaml and is the fallback when no YAML can be parsed.
func DefaultVoidrunConfig() VoidrunConfig {
	return VoidrunConfig{
		Player: PlayerConfig{
			Radius:    14,
			BaseHP:    100,
			BaseSpeed: 220,
			Deadzone:  0.1,
		},
		Arena: ArenaConfig{
			Radius:           520,
			ProjectileMargin: 120,
			FieldCullRange:   1400,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
		},
		Enemies: EnemyConfig{
			BaseHP:        20,
			HPPerTier:     6,
			BaseSpeed:     90,
			SpeedPerTier:  3,
			BaseDamage:    8,
			DamagePerTier: 1.2,
			Archetypes: []Archetype{
				{Name: "grunt", Weight: 0.60, HPMul: 1.0, SpeedMul: 1.0, DamageMul: 1.0, Radius: 14, XP: 1},
				{Name: "brute", Weight: 0.25, HPMul: 2.1, SpeedMul: 0.75, DamageMul: 1.3, Radius: 18, XP: 2},
				{Name: "runner", Weight: 0.15, HPMul: 0.85, SpeedMul: 1.35, DamageMul: 0.9, Radius: 12, XP: 2},
			},
		},
		Spawner: SpawnerConfig{
			BaseInterval:     1.05,
			IntervalPerTier:  0.03,
			MinInterval:      0.22,
			BatchBase:        2,
			BatchTierDivisor: 4,
			RingMin:          520,
			RingMax:          760,
			TargetBase:       55,
			TargetPerTier:    6,
		},
		Boss: BossConfig{
			GracePeriod:   6,
			BaseHP:        450,
			HPPerTier:     90,
			BaseSpeed:     80,
			SpeedPerTier:  2,
			BaseDamage:    18,
			DamagePerTier: 2,
			Radius:        34,
			XP:            12,

			UltCooldown: 6.5,
			UltJitter:   0.75,
			UltFirst:    2.5,
			UltAddsMin:  4,
			UltAddsMax:  7,
			UltRingMin:  260,
			UltRingMax:  340,
			UltAddHPMul: 0.9,

			AddIntervalMul:   0.85,
			AddIntervalMin:   0.18,
			AddIntervalMax:   0.8,
			AddBatchDivisor:  5,
			AddHPMul:         0.95,
			AddTemplateLevel: 4,
		},
		Weapons: map[string]Weapon{
			"Pistol":  {Name: "Pistol", BaseDamage: 8, FireInterval: 0.18, ProjectileSpeed: 650, Pierce: 0, Spread: 0, Pellets: 1, DamageMul: 1},
			"SMG":     {Name: "SMG", BaseDamage: 5, FireInterval: 0.10, ProjectileSpeed: 720, Pierce: 0, Spread: 0.10, Pellets: 1, DamageMul: 1},
			"Shotgun": {Name: "Shotgun", BaseDamage: 6, FireInterval: 0.45, ProjectileSpeed: 620, Pierce: 0, Spread: 0.55, Pellets: 5, HPBonus: 10, DamageMul: 1},
			"Laser":   {Name: "Laser", BaseDamage: 10, FireInterval: 0.25, ProjectileSpeed: 900, Pierce: 2, Spread: 0.02, Pellets: 1, DamageMul: 1},
		},
		Combat: CombatConfig{
			CritCap:          0.45,
			ArmorCap:         0.45,
			LifestealCap:     0.10,
			ProjectileRadius: 3.2,
			ProjectileLife:   2.2,
			HitFlash:         0.12,
		},
		Drops: DropConfig{
			CoinChance:   0.65,
			CoinOrbsMin:  1,
			CoinOrbsMax:  2,
			CoinValueMin: 1,
			CoinValueMax: 3,
			GemChance:    0.14,
			Scatter:      18,
			ScatterSpeed: 45,
			Friction:     0.3,
			Radius:       6,
		},
		Magnet: MagnetConfig{
			BaseRadius:     120,
			PullSpeed:      420,
			CollectPadding: 6,
		},
		Progression: ProgressionConfig{
			XPStart:       10,
			XPGrowth:      1.22,
			XPBonus:       3,
			LossRetention: 0.65,
		},
		Upgrades: UpgradeConfig{
			HPPerLevel:        10,
			DamagePerLevel:    0.04,
			FireRatePerLevel:  0.03,
			MoveSpeedPerLevel: 0.03,
			MagnetPerLevel:    0.10,
		},
		Chest: ChestConfig{
			SpinDuration: 1.6,
			CoinWeight:   0.55,
			GemWeight:    0.35,
			CoinsMin:     60,
			CoinsMax:     140,
			GemsMin:      2,
			GemsMax:      5,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultVoidrunYAML
}
