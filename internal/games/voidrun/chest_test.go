package voidrun

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/voidrun/internal/profile"
)

func TestChestStateMachine(t *testing.T) {
	var c Chest
	assert.Equal(t, ChestIdle, c.State)
	assert.Zero(t, c.Progress())
	assert.False(t, c.Update(1), "idle chests do not advance")

	c.Open(1.6)
	assert.Equal(t, ChestSpinning, c.State)
	assert.False(t, c.Update(1.0))
	assert.InDelta(t, 0.625, c.Progress(), 1e-9)

	assert.True(t, c.Update(0.7), "reports the reveal once")
	assert.Equal(t, ChestRevealed, c.State)
	assert.InDelta(t, 1, c.Progress(), 1e-9)
	assert.False(t, c.Update(1))

	c.Open(5)
	assert.Equal(t, ChestRevealed, c.State, "opening twice is a no-op")
}

func TestChestRewardBounds(t *testing.T) {
	s := newTestSim(t)
	counts := map[RewardKind]int{}

	const n = 4000
	for range n {
		r := s.rollChestReward(2)
		counts[r.Kind]++
		switch r.Kind {
		case RewardCoins:
			assert.GreaterOrEqual(t, r.Amount, 120)
			assert.LessOrEqual(t, r.Amount, 280)
			assert.Zero(t, r.Amount%2, "coin rewards scale with the stage")
		case RewardGems:
			assert.GreaterOrEqual(t, r.Amount, 2)
			assert.LessOrEqual(t, r.Amount, 5)
		case RewardWeapon:
			assert.False(t, s.Profile().Owns(r.Weapon))
			assert.Contains(t, s.Config().WeaponIDs(), r.Weapon)
		}
	}

	assert.InDelta(t, 0.55, float64(counts[RewardCoins])/n, 0.04)
	assert.InDelta(t, 0.35, float64(counts[RewardGems])/n, 0.04)
	assert.InDelta(t, 0.10, float64(counts[RewardWeapon])/n, 0.04)
}

func TestChestWeaponFallsBackToCoins(t *testing.T) {
	s := newTestSim(t, func(p *profile.Profile) {
		p.Unlock("SMG")
		p.Unlock("Shotgun")
		p.Unlock("Laser")
	})

	for range 1000 {
		r := s.rollChestReward(1)
		assert.NotEqual(t, RewardWeapon, r.Kind, "nothing left to unlock")
	}
}
