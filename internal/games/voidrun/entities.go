package voidrun

import (
	"fmt"

	"github.com/vovakirdan/voidrun/internal/core"
)

// EnemyKind identifies an enemy archetype.
type EnemyKind int

const (
	KindGrunt EnemyKind = iota
	KindBrute
	KindRunner
	KindBoss
)

func (k EnemyKind) String() string {
	switch k {
	case KindGrunt:
		return "grunt"
	case KindBrute:
		return "brute"
	case KindRunner:
		return "runner"
	case KindBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// kindByName maps archetype names from the config to kinds.
func kindByName(name string) EnemyKind {
	switch name {
	case "brute":
		return KindBrute
	case "runner":
		return KindRunner
	case "boss":
		return KindBoss
	default:
		return KindGrunt
	}
}

// EnemyStats is a spawn template produced by the difficulty model.
type EnemyStats struct {
	Kind   EnemyKind
	HP     float64
	Speed  float64
	Damage float64
	Radius float64
	XP     int
}

// BossUlt is the boss-only ultimate capability: a timer that summons adds.
type BossUlt struct {
	Timer float64
}

// Enemy is a hostile unit chasing the player.
type Enemy struct {
	ID       int
	Pos      core.Vec2
	Radius   float64
	HP       float64
	MaxHP    float64
	Speed    float64
	Damage   float64 // Contact damage per second
	Kind     EnemyKind
	XP       int
	HitFlash float64
	Slow     float64 // Fraction of speed removed by frost, 0..cap
	Ult      *BossUlt

	dead bool // Death side effects already fired
}

// newEnemy builds an enemy from a template. Non-positive health or radius is
// a programming error.
func newEnemy(id int, pos core.Vec2, st EnemyStats) *Enemy {
	if st.HP <= 0 || st.Radius <= 0 {
		panic(fmt.Sprintf("voidrun: invalid enemy template hp=%v radius=%v", st.HP, st.Radius))
	}
	return &Enemy{
		ID:     id,
		Pos:    pos,
		Radius: st.Radius,
		HP:     st.HP,
		MaxHP:  st.HP,
		Speed:  st.Speed,
		Damage: st.Damage,
		Kind:   st.Kind,
		XP:     st.XP,
	}
}

// Alive reports whether the enemy can still act and be damaged.
func (e *Enemy) Alive() bool {
	return !e.dead && e.HP > 0
}

// ProjectileSource tells player weapon shots from drone shots.
type ProjectileSource int

const (
	SourceWeapon ProjectileSource = iota
	SourceDrone
)

// Projectile is a moving shot.
type Projectile struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64
	Damage float64
	Pierce int     // Remaining enemies it may pass through
	Life   float64 // Seconds left
	Blast  int     // On-hit area perk level captured at fire time
	Crit   bool
	Source ProjectileSource

	hits map[int]struct{}
}

func (p *Projectile) alreadyHit(id int) bool {
	_, ok := p.hits[id]
	return ok
}

func (p *Projectile) markHit(id int) {
	if p.hits == nil {
		p.hits = make(map[int]struct{}, 1)
	}
	p.hits[id] = struct{}{}
}

// PickupKind identifies a drop.
type PickupKind int

const (
	PickupXP PickupKind = iota
	PickupCoin
	PickupGem
)

func (k PickupKind) String() string {
	switch k {
	case PickupXP:
		return "xp"
	case PickupCoin:
		return "coin"
	case PickupGem:
		return "gem"
	default:
		return "unknown"
	}
}

// Pickup is a drop lying in the world.
type Pickup struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64
	Kind   PickupKind
	Value  int

	collected bool
}

// Player is the avatar. HP stays within [0, MaxHP].
type Player struct {
	Pos        core.Vec2
	Radius     float64
	HP         float64
	MaxHP      float64
	BaseDamage float64
	BaseFire   float64 // Seconds between shots before multipliers
	BaseSpeed  float64 // Units per second after permanent upgrades
	MagnetMul  float64 // Permanent magnet multiplier
	Coins      int     // Earned this level
	Gems       int     // Earned this level
	Kills      int
	Weapon     string
	Perks      PerkLevels
	Dead       bool
}

// Heal restores health up to MaxHP.
func (p *Player) Heal(amount float64) {
	if p.Dead || amount <= 0 {
		return
	}
	p.HP = core.ClampF(p.HP+amount, 0, p.MaxHP)
}
