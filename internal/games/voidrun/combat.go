package voidrun

import (
	"math"
	"sort"

	"github.com/vovakirdan/voidrun/internal/core"
)

// damageEnemy applies amount to a living enemy and returns the health
// actually removed. Dead enemies and non-positive amounts are no-ops.
// Life steal heals a fraction of the removed health.
func (s *Sim) damageEnemy(e *Enemy, amount float64) float64 {
	if !e.Alive() || amount <= 0 {
		return 0
	}
	dealt := math.Min(amount, e.HP)
	e.HP -= dealt
	e.HitFlash = s.cfg.Combat.HitFlash

	if steal := s.lifesteal(); steal > 0 {
		s.Player.Heal(dealt * steal)
	}
	return dealt
}

// damagePlayer applies one incoming damage instance. Armor reduces it first,
// then a charged shield absorbs it completely.
func (s *Sim) damagePlayer(amount float64) {
	p := &s.Player
	if p.Dead || amount <= 0 {
		return
	}
	amount *= 1 - s.armor()

	if s.Timers.ShieldReady {
		s.Timers.ShieldReady = false
		s.Timers.Shield = shieldRecharge(s.perk(PerkShield))
		s.addEffect(Effect{Kind: EffectShield, Pos: p.Pos, T: shieldTime})
		return
	}

	p.HP -= amount
	if !s.hasEffect(EffectHit) {
		s.addEffect(Effect{Kind: EffectHit, Pos: p.Pos, T: hitTime})
	}
	if p.HP <= 0 {
		p.HP = 0
		p.Dead = true
		s.log.Debug("player died", "stage", s.Stage, "level", s.Level, "elapsed", s.Wave.Elapsed)
	}
}

func (s *Sim) hasEffect(k EffectKind) bool {
	for _, e := range s.Effects {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// nearestEnemy returns the closest living enemy to pos, or nil.
func (s *Sim) nearestEnemy(pos core.Vec2) *Enemy {
	var best *Enemy
	bestD := math.Inf(1)
	for _, e := range s.Enemies {
		if !e.Alive() {
			continue
		}
		if d := core.Dist2(pos, e.Pos); d < bestD {
			bestD = d
			best = e
		}
	}
	return best
}

// nearestEnemies returns up to k living enemies ordered by distance to pos.
func (s *Sim) nearestEnemies(pos core.Vec2, k int) []*Enemy {
	alive := make([]*Enemy, 0, len(s.Enemies))
	for _, e := range s.Enemies {
		if e.Alive() {
			alive = append(alive, e)
		}
	}
	sort.SliceStable(alive, func(i, j int) bool {
		return core.Dist2(pos, alive[i].Pos) < core.Dist2(pos, alive[j].Pos)
	})
	if len(alive) > k {
		alive = alive[:k]
	}
	return alive
}

// cleanup fires death side effects exactly once per enemy and purges dead
// enemies, spent projectiles and collected pickups.
func (s *Sim) cleanup() {
	kept := s.Enemies[:0]
	for _, e := range s.Enemies {
		if e.HP > 0 && !e.dead {
			kept = append(kept, e)
			continue
		}
		if !e.dead {
			e.dead = true
			s.Player.Kills++
			s.spawnDrops(e.Pos, e.XP)
			if e.Kind == KindBoss && e.ID == s.Wave.BossID {
				s.Wave.bossDown = true
				s.log.Debug("boss down", "stage", s.Stage, "elapsed", s.Wave.Elapsed)
			}
		}
	}
	clear(s.Enemies[len(kept):])
	s.Enemies = kept

	shots := s.Projectiles[:0]
	for _, pr := range s.Projectiles {
		if pr.Life > 0 {
			shots = append(shots, pr)
		}
	}
	clear(s.Projectiles[len(shots):])
	s.Projectiles = shots

	drops := s.Pickups[:0]
	for _, pk := range s.Pickups {
		if !pk.collected {
			drops = append(drops, pk)
		}
	}
	clear(s.Pickups[len(drops):])
	s.Pickups = drops
}
