package voidrun

import "github.com/vovakirdan/voidrun/internal/core"

// movePlayer integrates the input vector. Magnitudes under the deadzone are
// ignored; the avatar stays inside the arena.
func (s *Sim) movePlayer(move core.Vec2, dt float64) {
	move = core.ClampLen(move, 1)
	if move.Len() < s.cfg.Player.Deadzone {
		return
	}
	p := &s.Player
	p.Pos = p.Pos.Add(move.Scale(s.moveSpeed() * dt))
	if s.Arena {
		p.Pos = core.ClampToCircle(p.Pos, s.ArenaRadius)
	}
}

// updateEnemies runs boss ultimates, chases the player and applies contact
// damage at a rate of Damage per second while circles overlap.
func (s *Sim) updateEnemies(dt float64) {
	p := &s.Player
	for _, e := range s.Enemies {
		if !e.Alive() {
			continue
		}
		if e.HitFlash > 0 {
			e.HitFlash = max(e.HitFlash-dt, 0)
		}
		if e.Ult != nil {
			s.updateBossUlt(e, dt)
		}

		step := p.Pos.Sub(e.Pos).Norm().Scale(e.Speed * (1 - e.Slow) * dt)
		e.Pos = e.Pos.Add(step)
		if s.Arena {
			e.Pos = core.ClampToCircle(e.Pos, s.ArenaRadius)
		}

		if p.Dead {
			continue
		}
		if core.CirclesOverlap(p.Pos, p.Radius, e.Pos, e.Radius) {
			s.damagePlayer(e.Damage * dt)
		}
	}
}
