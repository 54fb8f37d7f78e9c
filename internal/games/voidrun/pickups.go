package voidrun

import (
	"math"

	"github.com/vovakirdan/voidrun/internal/core"
)

const gemRadiusBonus = 1

// spawnDrops scatters the loot of a dead enemy: one XP orb per experience
// point, sometimes coins and rarely a gem.
func (s *Sim) spawnDrops(at core.Vec2, xp int) {
	d := s.cfg.Drops
	for range xp {
		s.dropAt(at, PickupXP, 1, d.Radius)
	}
	if s.rng.Float64() < d.CoinChance {
		n := s.randInt(d.CoinOrbsMin, d.CoinOrbsMax)
		for range n {
			s.dropAt(at, PickupCoin, s.randInt(d.CoinValueMin, d.CoinValueMax), d.Radius)
		}
	}
	if s.rng.Float64() < d.GemChance {
		s.dropAt(at, PickupGem, 1, d.Radius+gemRadiusBonus)
	}
}

func (s *Sim) dropAt(at core.Vec2, kind PickupKind, value int, radius float64) {
	d := s.cfg.Drops
	offset := core.FromAngle(s.randRange(0, 2*math.Pi), s.randRange(0, d.Scatter))
	vel := core.V(s.randRange(-d.ScatterSpeed, d.ScatterSpeed), s.randRange(-d.ScatterSpeed, d.ScatterSpeed))
	s.Pickups = append(s.Pickups, &Pickup{
		Pos:    at.Add(offset),
		Vel:    vel,
		Radius: radius,
		Kind:   kind,
		Value:  value,
	})
}

// updatePickups applies friction, magnet pull and collection. Pull strength
// falls off linearly from the player to the magnet radius.
func (s *Sim) updatePickups(dt float64) {
	p := &s.Player
	if p.Dead {
		return
	}
	radius := s.magnetRadius()
	friction := math.Pow(s.cfg.Drops.Friction, dt)

	for _, pk := range s.Pickups {
		if pk.collected {
			continue
		}
		pk.Vel = pk.Vel.Scale(friction)
		pk.Pos = pk.Pos.Add(pk.Vel.Scale(dt))

		d := core.Dist(p.Pos, pk.Pos)
		if d > 0 && d < radius {
			pull := s.cfg.Magnet.PullSpeed * core.ClampF((radius-d)/radius, 0, 1)
			pk.Pos = pk.Pos.Add(p.Pos.Sub(pk.Pos).Norm().Scale(pull * dt))
			d = core.Dist(p.Pos, pk.Pos)
		}

		if d == 0 || d < p.Radius+pk.Radius+s.cfg.Magnet.CollectPadding {
			s.collect(pk)
		}
	}
}

// collect credits a pickup exactly once.
func (s *Sim) collect(pk *Pickup) {
	if pk.collected {
		return
	}
	pk.collected = true
	switch pk.Kind {
	case PickupXP:
		s.gainXP(pk.Value)
		if lv := s.perk(PerkHealOnXP); lv > 0 {
			s.Player.Heal(float64(lv))
		}
	case PickupCoin:
		s.Player.Coins += pk.Value
	case PickupGem:
		s.Player.Gems += pk.Value
	}
}

// gainXP adds experience and queues one level-up per threshold crossed.
func (s *Sim) gainXP(v int) {
	if v <= 0 {
		return
	}
	s.XP.Cur += v
	for s.XP.Cur >= s.XP.Need {
		s.XP.Cur -= s.XP.Need
		s.XP.Level++
		s.XP.Need = XPNeed(s.XP.Need, s.cfg.Progression.XPGrowth, s.cfg.Progression.XPBonus)
		s.pendingLevelUps++
	}
}
