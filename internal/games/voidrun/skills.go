package voidrun

import (
	"math"

	"github.com/vovakirdan/voidrun/internal/core"
)

const (
	grenadeDelay   = 0.55
	grenadeScatter = 25
	droneSpeed     = 780
	sawHitPadding  = 10
	frostGainRate  = 0.8 // Slow added per second inside the aura
	frostDecayRate = 2.0 // Exponential decay rate outside the aura
)

// updateSkills runs every active perk with its own timer.
func (s *Sim) updateSkills(dt float64) {
	s.updateSaws(dt)
	s.updateDrone(dt)
	s.updateGrenade(dt)
	s.updateLightning(dt)
	s.updateShield(dt)
	s.updateFrost(dt)
}

// sawBlades returns the blade positions for the current angle.
func (s *Sim) sawBlades() []core.Vec2 {
	lv := s.perk(PerkSaw)
	if lv <= 0 {
		return nil
	}
	count := core.Clamp(1+lv, 2, 6)
	radius := 42 + 8*float64(lv)
	blades := make([]core.Vec2, count)
	for i := range count {
		a := s.Timers.SawAngle + float64(i)*2*math.Pi/float64(count)
		blades[i] = s.Player.Pos.Add(core.FromAngle(a, radius))
	}
	return blades
}

// updateSaws applies blade damage as a rate, dps times dt.
func (s *Sim) updateSaws(dt float64) {
	lv := s.perk(PerkSaw)
	if lv <= 0 {
		return
	}
	s.Timers.SawAngle = math.Mod(s.Timers.SawAngle+(2.1+0.25*float64(lv))*dt, 2*math.Pi)
	dps := (10 + 4*float64(lv)) * s.damageMul()

	for _, b := range s.sawBlades() {
		for _, e := range s.Enemies {
			if !e.Alive() {
				continue
			}
			if core.Dist(b, e.Pos) < e.Radius+sawHitPadding {
				s.damageEnemy(e, dps*dt)
				if !s.hasEffect(EffectSaw) {
					s.addEffect(Effect{Kind: EffectSaw, Pos: b, T: sawTime})
				}
			}
		}
	}
}

func (s *Sim) updateDrone(dt float64) {
	lv := s.perk(PerkDrone)
	if lv <= 0 {
		return
	}
	s.Timers.Drone -= dt
	if s.Timers.Drone > 0 {
		return
	}
	s.Timers.Drone = core.ClampF(0.85-0.08*float64(lv), 0.35, 0.85)

	target := s.nearestEnemy(s.Player.Pos)
	if target == nil {
		return
	}
	dir := target.Pos.Sub(s.Player.Pos).Norm()
	s.spawnProjectile(Projectile{
		Pos:    s.Player.Pos,
		Vel:    dir.Scale(droneSpeed),
		Damage: (6 + 3*float64(lv)) * s.damageMul(),
		Source: SourceDrone,
	})
	s.addEffect(Effect{Kind: EffectDrone, Pos: s.Player.Pos, T: droneTime})
}

func (s *Sim) updateGrenade(dt float64) {
	lv := s.perk(PerkGrenade)
	if lv <= 0 {
		return
	}
	s.Timers.Grenade -= dt
	if s.Timers.Grenade > 0 {
		return
	}
	s.Timers.Grenade = core.ClampF(2.2-0.14*float64(lv), 1.1, 2.2)

	target := s.nearestEnemy(s.Player.Pos)
	if target == nil {
		return
	}
	at := target.Pos.Add(core.V(s.randRange(-grenadeScatter, grenadeScatter), s.randRange(-grenadeScatter, grenadeScatter)))
	s.addEffect(Effect{
		Kind:   EffectGrenade,
		Pos:    at,
		T:      grenadeDelay,
		Radius: 70 + 10*float64(lv),
		Damage: (28 + 10*float64(lv)) * s.damageMul(),
	})
}

// updateLightning strikes the K nearest enemies at once.
func (s *Sim) updateLightning(dt float64) {
	lv := s.perk(PerkLightning)
	if lv <= 0 {
		return
	}
	s.Timers.Lightning -= dt
	if s.Timers.Lightning > 0 {
		return
	}
	s.Timers.Lightning = core.ClampF(1.9-0.12*float64(lv), 0.8, 1.9)

	k := core.Clamp(1+lv/2, 1, 5)
	dmg := (20 + 8*float64(lv)) * s.damageMul()
	for _, e := range s.nearestEnemies(s.Player.Pos, k) {
		s.damageEnemy(e, dmg)
		s.addEffect(Effect{Kind: EffectZap, Pos: e.Pos, T: zapTime})
	}
}

// updateShield recharges a spent shield. A charged shield does not tick.
func (s *Sim) updateShield(dt float64) {
	if s.perk(PerkShield) <= 0 || s.Timers.ShieldReady {
		return
	}
	s.Timers.Shield -= dt
	if s.Timers.Shield <= 0 {
		s.Timers.Shield = 0
		s.Timers.ShieldReady = true
	}
}

// updateFrost builds slow on enemies inside the aura and decays it outside.
func (s *Sim) updateFrost(dt float64) {
	lv := s.perk(PerkFrost)
	radius := 90 + 15*float64(lv)
	limit := math.Min(0.15+0.07*float64(lv), 0.6)
	decay := math.Exp(-frostDecayRate * dt)

	chilled := false
	for _, e := range s.Enemies {
		if !e.Alive() {
			continue
		}
		if lv > 0 && core.Dist(e.Pos, s.Player.Pos) < radius {
			e.Slow = math.Min(e.Slow+frostGainRate*dt, limit)
			chilled = true
			continue
		}
		e.Slow *= decay
	}
	if chilled && !s.hasEffect(EffectFrost) {
		s.addEffect(Effect{Kind: EffectFrost, Pos: s.Player.Pos, T: frostTime, Radius: radius})
	}
}
