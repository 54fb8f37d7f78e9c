package voidrun

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/voidrun/internal/config"
	"github.com/vovakirdan/voidrun/internal/core"
	"github.com/vovakirdan/voidrun/internal/profile"
)

// Tier is the difficulty index of a campaign position. It grows by one per
// level and by LevelsPerStage per stage.
func Tier(stage, levelInStage int) int {
	return (stage-1)*profile.LevelsPerStage + (levelInStage - 1)
}

// Difficulty turns tiers into enemy templates and spawner pacing.
// All outputs are deterministic except RollEnemy and UltCooldown.
type Difficulty struct {
	enemies config.EnemyConfig
	spawner config.SpawnerConfig
	boss    config.BossConfig
	mul     float64 // Preset multiplier on health and damage
}

// NewDifficulty builds the model from tuning and its preset.
func NewDifficulty(cfg config.VoidrunConfig) Difficulty {
	return Difficulty{
		enemies: cfg.Enemies,
		spawner: cfg.Spawner,
		boss:    cfg.Boss,
		mul:     cfg.Difficulty.Preset.StatMultiplier(),
	}
}

// Baseline returns the tier stats before any archetype multiplier.
func (d Difficulty) Baseline(tier int) (hp, speed, damage float64) {
	t := float64(tier)
	hp = (d.enemies.BaseHP + d.enemies.HPPerTier*t) * d.mul
	speed = d.enemies.BaseSpeed + d.enemies.SpeedPerTier*t
	damage = (d.enemies.BaseDamage + d.enemies.DamagePerTier*t) * d.mul
	return hp, speed, damage
}

// Archetype applies one archetype to the tier baseline.
func (d Difficulty) Archetype(tier int, a config.Archetype) EnemyStats {
	hp, speed, damage := d.Baseline(tier)
	return EnemyStats{
		Kind:   kindByName(a.Name),
		HP:     hp * a.HPMul,
		Speed:  speed * a.SpeedMul,
		Damage: damage * a.DamageMul,
		Radius: a.Radius,
		XP:     a.XP,
	}
}

// RollEnemy picks an archetype by weight and returns its template.
func (d Difficulty) RollEnemy(tier int, rng *rand.Rand) EnemyStats {
	var total float64
	for _, a := range d.enemies.Archetypes {
		total += a.Weight
	}
	roll := rng.Float64() * total
	for _, a := range d.enemies.Archetypes {
		if roll < a.Weight {
			return d.Archetype(tier, a)
		}
		roll -= a.Weight
	}
	return d.Archetype(tier, d.enemies.Archetypes[len(d.enemies.Archetypes)-1])
}

// Boss returns the boss template of a stage. It always uses the boss level tier.
func (d Difficulty) Boss(stage int) EnemyStats {
	t := float64(Tier(stage, profile.LevelsPerStage))
	return EnemyStats{
		Kind:   KindBoss,
		HP:     (d.boss.BaseHP + d.boss.HPPerTier*t) * d.mul,
		Speed:  d.boss.BaseSpeed + d.boss.SpeedPerTier*t,
		Damage: (d.boss.BaseDamage + d.boss.DamagePerTier*t) * d.mul,
		Radius: d.boss.Radius,
		XP:     d.boss.XP,
	}
}

// BossAdd rolls an add for the boss level or the boss ultimate. Adds use the
// tier of the level before the boss with a health multiplier.
func (d Difficulty) BossAdd(stage int, hpMul float64, rng *rand.Rand) EnemyStats {
	st := d.RollEnemy(Tier(stage, d.boss.AddTemplateLevel), rng)
	st.HP *= hpMul
	return st
}

// UltCooldown returns the next ultimate delay with jitter.
func (d Difficulty) UltCooldown(rng *rand.Rand) float64 {
	return d.boss.UltCooldown + (rng.Float64()*2-1)*d.boss.UltJitter
}

// SpawnInterval is the delay between normal spawn batches.
func (d Difficulty) SpawnInterval(tier int) float64 {
	base := d.spawner.BaseInterval
	return core.ClampF(base-d.spawner.IntervalPerTier*float64(tier), d.spawner.MinInterval, base)
}

// BatchCap is the largest normal spawn batch.
func (d Difficulty) BatchCap(tier int) int {
	return d.spawner.BatchBase + tier/d.spawner.BatchTierDivisor
}

// TargetDuration is how long a normal level must be survived.
func (d Difficulty) TargetDuration(tier int) float64 {
	return d.spawner.TargetBase + d.spawner.TargetPerTier*float64(tier)
}

// BossAddInterval is the delay between add batches on the boss level.
func (d Difficulty) BossAddInterval(tier int) float64 {
	return core.ClampF(d.SpawnInterval(tier)*d.boss.AddIntervalMul, d.boss.AddIntervalMin, d.boss.AddIntervalMax)
}

// BossAddCap is the largest add batch on the boss level.
func (d Difficulty) BossAddCap(tier int) int {
	return d.spawner.BatchBase + tier/d.boss.AddBatchDivisor
}

// XPNeed returns the experience threshold after need.
func XPNeed(need int, growth, bonus float64) int {
	return int(math.Floor(float64(need)*growth + bonus))
}
