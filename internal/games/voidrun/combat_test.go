package voidrun

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/voidrun/internal/core"
	"github.com/vovakirdan/voidrun/internal/profile"
)

func countPickups(s *Sim, kind PickupKind) int {
	n := 0
	for _, pk := range s.Pickups {
		if pk.Kind == kind {
			n++
		}
	}
	return n
}

func TestDamageEnemyIsIdempotentAfterDeath(t *testing.T) {
	s := newTestSim(t)
	e := s.spawnEnemy(core.V(300, 0), dummy(10))

	assert.InDelta(t, 10, s.damageEnemy(e, 25), 1e-9, "only remaining health counts as dealt")
	assert.Zero(t, e.HP, "enemy health never goes negative")
	assert.Zero(t, s.damageEnemy(e, 5), "damaging a dead enemy is a no-op")
	assert.Zero(t, s.damageEnemy(s.spawnEnemy(core.V(-300, 0), dummy(10)), -3))

	s.cleanup()
	assert.Equal(t, 1, s.Player.Kills)
	assert.Equal(t, 1, countPickups(s, PickupXP))
	require.Len(t, s.Enemies, 1)

	s.cleanup()
	assert.Equal(t, 1, s.Player.Kills, "death side effects fire once")
	assert.Equal(t, 1, countPickups(s, PickupXP))
}

func TestPlayerHealthClamps(t *testing.T) {
	s := newTestSim(t)
	p := &s.Player

	p.HP = 50
	p.Heal(1000)
	assert.Equal(t, p.MaxHP, p.HP)

	s.damagePlayer(1e6)
	assert.Zero(t, p.HP)
	assert.True(t, p.Dead)

	s.damagePlayer(10)
	p.Heal(10)
	assert.Zero(t, p.HP, "a dead player takes no damage and no healing")
}

func TestProjectilePierce(t *testing.T) {
	tests := []struct {
		name      string
		pierce    int
		aliveAt   int // Number of updates after which the projectile still exists
		wantHits  int
		enemyPool int
	}{
		{"pierce 0 dies on first hit", 0, 0, 1, 4},
		{"pierce 2 survives two hits", 2, 2, 3, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSim(t)
			for range tc.enemyPool {
				s.spawnEnemy(core.V(100, 0), dummy(1000))
			}
			pr := s.spawnProjectile(Projectile{Pos: core.V(100, 0), Damage: 1, Pierce: tc.pierce})

			for i := 1; i <= 6; i++ {
				s.updateProjectiles(0.001)
				if i <= tc.aliveAt {
					assert.Greater(t, pr.Life, 0.0, "alive after %d updates", i)
				}
			}
			assert.LessOrEqual(t, pr.Life, 0.0)

			hits := 0
			for _, e := range s.Enemies {
				if e.HP < 1000 {
					hits++
					assert.InDelta(t, 999, e.HP, 1e-9, "each enemy is hit at most once")
				}
			}
			assert.Equal(t, tc.wantHits, hits)
		})
	}
}

func TestBlastDamagesNeighbours(t *testing.T) {
	s := newTestSim(t)
	struck := s.spawnEnemy(core.V(100, 0), dummy(1000))
	near := s.spawnEnemy(core.V(130, 0), dummy(1000))
	far := s.spawnEnemy(core.V(400, 0), dummy(1000))

	s.spawnProjectile(Projectile{Pos: core.V(100, 0), Damage: 10, Blast: 1})
	s.updateProjectiles(0.001)

	assert.InDelta(t, 990, struck.HP, 1e-9)
	assert.InDelta(t, 996, near.HP, 1e-9, "blast level 1 deals 40% in radius 34")
	assert.InDelta(t, 1000, far.HP, 1e-9)
}

func TestProjectileCulling(t *testing.T) {
	s := newTestSim(t)
	field := s.spawnProjectile(Projectile{Pos: core.V(1399, 0), Vel: core.V(1000, 0)})
	s.updateProjectiles(0.01)
	assert.LessOrEqual(t, field.Life, 0.0, "open field culls far from the player")

	arena := newTestSim(t, atLevel(1, 2))
	require.True(t, arena.Arena)
	inside := arena.spawnProjectile(Projectile{Pos: core.V(600, 0)})
	outside := arena.spawnProjectile(Projectile{Pos: core.V(641, 0)})
	arena.updateProjectiles(0.01)
	assert.Greater(t, inside.Life, 0.0)
	assert.LessOrEqual(t, outside.Life, 0.0)
}

func TestContactDamageIsRateBased(t *testing.T) {
	s := newTestSim(t)
	e := s.spawnEnemy(core.V(5, 0), EnemyStats{Kind: KindGrunt, HP: 100, Damage: 10, Radius: 14, XP: 1})
	start := s.Player.HP

	for range 100 {
		s.updateEnemies(0.01)
	}
	assert.InDelta(t, start-10, s.Player.HP, 1e-6, "10 dps over one second")
	assert.InDelta(t, 5, e.Pos.X, 1e-9, "zero-speed enemy stays put")

	e.Pos = core.V(200, 0)
	hp := s.Player.HP
	s.updateEnemies(0.01)
	assert.Equal(t, hp, s.Player.HP, "no damage without overlap")
}

func TestContactDamageOnApproach(t *testing.T) {
	s := newTestSim(t)
	e := s.spawnEnemy(core.V(600, 0), EnemyStats{Kind: KindGrunt, HP: 100, Speed: 90, Damage: 10, Radius: 14, XP: 1})
	start := s.Player.HP

	const dt = 1.0 / 60
	var overlap, touched float64
	for i := range 8 * 60 {
		s.updateEnemies(dt)
		if core.CirclesOverlap(s.Player.Pos, s.Player.Radius, e.Pos, e.Radius) {
			if overlap == 0 {
				touched = float64(i+1) * dt
			}
			overlap += dt
		}
	}

	require.Positive(t, overlap)
	assert.InDelta(t, (600-28)/90.0, touched, 2*dt, "contact starts once the gap is closed")
	lost := start - s.Player.HP
	assert.InDelta(t, 10*overlap, lost, 1e-6, "damage follows the time spent overlapping")
	assert.Less(t, lost, 20.0)
}

func TestShieldBlocksExactlyOnce(t *testing.T) {
	s := newTestSim(t)
	shield, ok := LookupPerk(PerkShield)
	require.True(t, ok)
	s.applyPerk(shield)
	require.True(t, s.Timers.ShieldReady, "shield is charged when acquired")

	hp := s.Player.HP
	s.damagePlayer(10)
	assert.Equal(t, hp, s.Player.HP, "blocked hit leaves health unchanged")
	assert.False(t, s.Timers.ShieldReady)

	s.damagePlayer(10)
	assert.InDelta(t, hp-10, s.Player.HP, 1e-9)

	s.updateShield(shieldRecharge(1) - 0.1)
	assert.False(t, s.Timers.ShieldReady, "recharge needs the full cooldown")
	s.damagePlayer(5)
	assert.InDelta(t, hp-15, s.Player.HP, 1e-9)

	s.updateShield(0.2)
	assert.True(t, s.Timers.ShieldReady)
	s.updateShield(100)
	assert.True(t, s.Timers.ShieldReady)
	assert.Zero(t, s.Timers.Shield, "a charged shield does not tick")

	s.damagePlayer(50)
	assert.InDelta(t, hp-15, s.Player.HP, 1e-9)
}

func TestArmorReducesBeforeShield(t *testing.T) {
	s := newTestSim(t)
	s.Player.Perks[PerkArmor] = 5
	hp := s.Player.HP
	s.damagePlayer(10)
	assert.InDelta(t, hp-7, s.Player.HP, 1e-9)

	s.Player.Perks[PerkArmor] = 20
	assert.InDelta(t, 0.45, s.armor(), 1e-9, "armor is capped")
}

func TestCapsAndLifesteal(t *testing.T) {
	s := newTestSim(t)
	s.Player.Perks[PerkCrit] = 100
	s.Player.Perks[PerkVamp] = 100
	assert.InDelta(t, 0.45, s.critChance(), 1e-9)
	assert.InDelta(t, 0.10, s.lifesteal(), 1e-9)

	s.Player.HP = 50
	e := s.spawnEnemy(core.V(300, 0), dummy(100))
	s.damageEnemy(e, 30)
	assert.InDelta(t, 53, s.Player.HP, 1e-9)

	s.Player.HP = s.Player.MaxHP
	s.damageEnemy(e, 30)
	assert.Equal(t, s.Player.MaxHP, s.Player.HP, "life steal never overheals")
}

func TestAutoFireHoldsWithoutTarget(t *testing.T) {
	s := newTestSim(t)

	s.autoFire(1)
	assert.Empty(t, s.Projectiles)
	assert.Zero(t, s.Timers.Fire, "cooldown holds at zero while idle")

	s.spawnEnemy(core.V(200, 0), dummy(100))
	s.autoFire(0.016)
	require.Len(t, s.Projectiles, 1, "first target is engaged immediately")
	assert.InDelta(t, s.fireInterval(), s.Timers.Fire, 1e-9)
	assert.InDelta(t, 0.18, s.fireInterval(), 1e-9)

	s.autoFire(0.016)
	assert.Len(t, s.Projectiles, 1)

	shot := s.Projectiles[0]
	assert.InDelta(t, 0, shot.Vel.Angle(), 1e-9, "aims at the target")
	assert.InDelta(t, 650, shot.Vel.Len(), 1e-9)
}

func TestPelletFan(t *testing.T) {
	shotgun := newTestSim(t, func(p *profile.Profile) {
		p.Unlock("Shotgun")
		require.NoError(t, p.Equip("Shotgun"))
	})
	n, spread := shotgun.pelletFan()
	assert.Equal(t, 5, n)
	assert.InDelta(t, 0.55, spread, 1e-9)

	shotgun.spawnEnemy(core.V(0, 300), dummy(100))
	shotgun.autoFire(0.016)
	require.Len(t, shotgun.Projectiles, 5)
	var sum float64
	for _, pr := range shotgun.Projectiles {
		sum += pr.Vel.Angle() - math.Pi/2
	}
	assert.InDelta(t, 0, sum, 1e-9, "pellets fan symmetrically around the aim")

	pistol := newTestSim(t)
	pistol.Player.Perks[PerkMulti] = 1
	n, spread = pistol.pelletFan()
	assert.Equal(t, 2, n)
	assert.InDelta(t, 0.10, spread, 1e-9, "spread floor once there is more than one pellet")

	pistol.Player.Perks[PerkMulti] = 3
	n, spread = pistol.pelletFan()
	assert.Equal(t, 4, n)
	assert.InDelta(t, 0.18, spread, 1e-9)
}

func TestFireRateAndDamageMultipliers(t *testing.T) {
	s := newTestSim(t, func(p *profile.Profile) {
		p.Upgrades.Damage = 5
		p.Upgrades.FireRate = 10
	})
	s.Player.Perks[PerkDamage] = 2
	s.Player.Perks[PerkFireRate] = 1

	assert.InDelta(t, 8*1.2*1.15*1.15, s.projectileDamage(), 1e-9)
	assert.InDelta(t, 0.18/(1.3*1.12), s.fireInterval(), 1e-9)
}
