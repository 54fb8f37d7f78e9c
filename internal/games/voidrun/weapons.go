package voidrun

import (
	"github.com/vovakirdan/voidrun/internal/core"
)

// Multishot widens the fan by this much per level, with a floor once the
// volley has more than one pellet.
const (
	multiSpreadPerLevel = 0.06
	multiSpreadMin      = 0.10
)

// fireInterval is the effective weapon cooldown.
func (s *Sim) fireInterval() float64 {
	return s.Player.BaseFire / s.fireMul()
}

// pelletFan returns the pellet count and angle between adjacent pellets.
func (s *Sim) pelletFan() (int, float64) {
	lv := s.perk(PerkMulti)
	n := s.weapon.Pellets + lv
	spread := s.weapon.Spread + multiSpreadPerLevel*float64(lv)
	if n > 1 && spread < multiSpreadMin {
		spread = multiSpreadMin
	}
	return n, spread
}

// projectileDamage is the per-pellet damage before crits.
func (s *Sim) projectileDamage() float64 {
	return s.Player.BaseDamage * s.damageMul()
}

// autoFire shoots at the nearest living enemy. The cooldown counts down to
// zero and holds there while nothing is targetable, so the first enemy in
// range is engaged on the same tick it appears.
func (s *Sim) autoFire(dt float64) {
	s.Timers.Fire = max(s.Timers.Fire-dt, 0)
	if s.Timers.Fire > 0 {
		return
	}
	target := s.nearestEnemy(s.Player.Pos)
	if target == nil {
		return
	}
	s.Timers.Fire = s.fireInterval()

	aim := target.Pos.Sub(s.Player.Pos).Angle()
	n, spread := s.pelletFan()
	pierce := s.weapon.Pierce + s.perk(PerkPierce)
	blast := s.perk(PerkBlast)
	for i := range n {
		a := aim + (float64(i)-float64(n-1)/2)*spread
		dmg := s.projectileDamage()
		crit := s.rng.Float64() < s.critChance()
		if crit {
			dmg *= 2
		}
		s.spawnProjectile(Projectile{
			Pos:    s.Player.Pos,
			Vel:    core.FromAngle(a, s.weapon.ProjectileSpeed),
			Damage: dmg,
			Pierce: pierce,
			Blast:  blast,
			Crit:   crit,
			Source: SourceWeapon,
		})
	}
}

func (s *Sim) spawnProjectile(p Projectile) *Projectile {
	if p.Radius == 0 {
		p.Radius = s.cfg.Combat.ProjectileRadius
	}
	if p.Life == 0 {
		p.Life = s.cfg.Combat.ProjectileLife
	}
	pr := &p
	s.Projectiles = append(s.Projectiles, pr)
	return pr
}

// updateProjectiles moves shots and resolves at most one hit per projectile
// per tick. A projectile never hits the same enemy twice.
func (s *Sim) updateProjectiles(dt float64) {
	for _, pr := range s.Projectiles {
		if pr.Life <= 0 {
			continue
		}
		pr.Life -= dt
		pr.Pos = pr.Pos.Add(pr.Vel.Scale(dt))
		if s.outOfBounds(pr.Pos) {
			pr.Life = 0
			continue
		}

		for _, e := range s.Enemies {
			if !e.Alive() || pr.alreadyHit(e.ID) {
				continue
			}
			if core.CirclesOverlap(pr.Pos, pr.Radius, e.Pos, e.Radius) {
				s.hitEnemy(pr, e)
				break
			}
		}
	}
}

// hitEnemy resolves one projectile impact and spends a pierce charge.
func (s *Sim) hitEnemy(pr *Projectile, e *Enemy) {
	pr.markHit(e.ID)
	s.damageEnemy(e, pr.Damage)
	if pr.Blast > 0 {
		s.blast(pr, e)
	}
	if pr.Pierce > 0 {
		pr.Pierce--
	} else {
		pr.Life = 0
	}
}

// blast deals on-hit area damage around the struck enemy to the others.
func (s *Sim) blast(pr *Projectile, struck *Enemy) {
	lv := float64(pr.Blast)
	radius := 28 + 6*lv
	base := pr.Damage
	if pr.Crit {
		base /= 2
	}
	dmg := (0.3 + 0.1*lv) * base
	for _, e := range s.Enemies {
		if e == struck || !e.Alive() {
			continue
		}
		if core.CirclesOverlap(struck.Pos, radius, e.Pos, e.Radius) {
			s.damageEnemy(e, dmg)
		}
	}
	s.addEffect(Effect{Kind: EffectBoom, Pos: struck.Pos, T: boomTime, Radius: radius})
}

func (s *Sim) outOfBounds(pos core.Vec2) bool {
	if s.Arena {
		return pos.Len() > s.ArenaRadius+s.cfg.Arena.ProjectileMargin
	}
	return core.Dist(pos, s.Player.Pos) > s.cfg.Arena.FieldCullRange
}
