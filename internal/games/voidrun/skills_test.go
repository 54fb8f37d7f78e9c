package voidrun

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/voidrun/internal/core"
)

func TestGrenadeDetonatesOnce(t *testing.T) {
	s := newTestSim(t)
	e := s.spawnEnemy(core.V(100, 0), dummy(100))
	s.addEffect(Effect{Kind: EffectGrenade, Pos: core.V(100, 0), T: grenadeDelay, Radius: 80, Damage: 38})

	s.updateEffects(0.5)
	assert.InDelta(t, 100, e.HP, 1e-9)
	require.Len(t, s.Effects, 1)

	s.updateEffects(0.1)
	assert.InDelta(t, 62, e.HP, 1e-9)
	require.Len(t, s.Effects, 1)
	assert.Equal(t, EffectBoom, s.Effects[0].Kind)

	s.updateEffects(0.3)
	assert.Empty(t, s.Effects)
	assert.InDelta(t, 62, e.HP, 1e-9)
}

func TestGrenadeThrow(t *testing.T) {
	s := newTestSim(t)
	s.Player.Perks[PerkGrenade] = 1
	target := s.spawnEnemy(core.V(200, 0), dummy(100))

	s.updateGrenade(0.016)
	require.Len(t, s.Effects, 1)
	g := s.Effects[0]
	assert.Equal(t, EffectGrenade, g.Kind)
	assert.InDelta(t, 80, g.Radius, 1e-9)
	assert.InDelta(t, 38, g.Damage, 1e-9)
	assert.LessOrEqual(t, math.Abs(g.Pos.X-target.Pos.X), float64(grenadeScatter))
	assert.InDelta(t, 2.06, s.Timers.Grenade, 1e-9)
}

func TestLightningStrikesNearest(t *testing.T) {
	s := newTestSim(t)
	s.Player.Perks[PerkLightning] = 4
	var enemies []*Enemy
	for i := 5; i >= 1; i-- {
		enemies = append(enemies, s.spawnEnemy(core.V(float64(i)*100, 0), dummy(1000)))
	}

	s.updateLightning(0.016)

	// Spawned farthest first: the last three are the nearest.
	for i, e := range enemies {
		if i >= 2 {
			assert.InDelta(t, 948, e.HP, 1e-9, "enemy %d", i)
		} else {
			assert.InDelta(t, 1000, e.HP, 1e-9, "enemy %d", i)
		}
	}
	assert.Len(t, s.Effects, 3)
	assert.InDelta(t, 1.42, s.Timers.Lightning, 1e-9)

	s.updateLightning(0.5)
	assert.InDelta(t, 948, enemies[4].HP, 1e-9, "cooldown holds the next strike")
}

func TestSawBlades(t *testing.T) {
	s := newTestSim(t)
	s.Player.Perks[PerkSaw] = 1

	blades := s.sawBlades()
	require.Len(t, blades, 2)
	assert.InDelta(t, 50, blades[0].Len(), 1e-9)

	wantAngle := (2.1 + 0.25) * 0.1
	victim := s.spawnEnemy(core.FromAngle(wantAngle, 50), dummy(100))
	s.updateSaws(0.1)

	assert.InDelta(t, wantAngle, s.Timers.SawAngle, 1e-9)
	assert.InDelta(t, 100-1.4, victim.HP, 1e-9, "14 dps for a tenth of a second")
}

func TestDroneFiresOnItsOwnTimer(t *testing.T) {
	s := newTestSim(t)
	s.Player.Perks[PerkDrone] = 1

	s.updateDrone(0.016)
	assert.Empty(t, s.Projectiles, "no target, no shot")

	s.spawnEnemy(core.V(0, -300), dummy(100))
	s.updateDrone(1)
	require.Len(t, s.Projectiles, 1)
	shot := s.Projectiles[0]
	assert.Equal(t, SourceDrone, shot.Source)
	assert.InDelta(t, 9, shot.Damage, 1e-9)
	assert.InDelta(t, 780, shot.Vel.Len(), 1e-9)
	assert.InDelta(t, 0.77, s.Timers.Drone, 1e-9)
}

func TestFrostAura(t *testing.T) {
	s := newTestSim(t)
	s.Player.Perks[PerkFrost] = 1
	e := s.spawnEnemy(core.V(50, 0), dummy(100))

	s.updateFrost(0.1)
	assert.InDelta(t, 0.08, e.Slow, 1e-9)
	assert.True(t, s.hasEffect(EffectFrost))

	for range 20 {
		s.updateFrost(0.1)
	}
	assert.InDelta(t, 0.22, e.Slow, 1e-9, "slow is capped per level")

	e.Pos = core.V(500, 0)
	s.updateFrost(0.5)
	assert.InDelta(t, 0.22*math.Exp(-1), e.Slow, 1e-9)
}
