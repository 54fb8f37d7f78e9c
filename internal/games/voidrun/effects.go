package voidrun

import (
	"fmt"

	"github.com/vovakirdan/voidrun/internal/core"
)

// EffectKind tags the Effect variant. Every switch over it must be exhaustive.
type EffectKind int

const (
	EffectBoom EffectKind = iota
	EffectZap
	EffectGrenade
	EffectShield
	EffectSaw
	EffectFrost
	EffectDrone
	EffectBossUlt
	EffectHit
)

func (k EffectKind) String() string {
	switch k {
	case EffectBoom:
		return "boom"
	case EffectZap:
		return "zap"
	case EffectGrenade:
		return "grenade"
	case EffectShield:
		return "shield"
	case EffectSaw:
		return "saw"
	case EffectFrost:
		return "frost"
	case EffectDrone:
		return "drone"
	case EffectBossUlt:
		return "bossult"
	case EffectHit:
		return "hit"
	default:
		return "unknown"
	}
}

// Effect is a timed world effect. Radius and Damage are only meaningful for
// the kinds that use them: Grenade carries both, Boom and Frost carry Radius.
type Effect struct {
	Kind   EffectKind
	Pos    core.Vec2
	T      float64 // Countdown in seconds
	Radius float64
	Damage float64
}

// Visual lifetimes of the transient effects.
const (
	boomTime    = 0.20
	zapTime     = 0.20
	shieldTime  = 0.35
	sawTime     = 0.12
	frostTime   = 0.10
	droneTime   = 0.10
	bossUltTime = 0.45
	hitTime     = 0.18
)

func (s *Sim) addEffect(e Effect) {
	s.Effects = append(s.Effects, e)
}

// updateEffects counts every effect down. Grenades detonate exactly when
// their countdown reaches zero and are replaced by a Boom.
func (s *Sim) updateEffects(dt float64) {
	kept := s.Effects[:0]
	var spawned []Effect
	for _, e := range s.Effects {
		e.T -= dt
		switch e.Kind {
		case EffectGrenade:
			if e.T <= 0 {
				s.detonate(e)
				spawned = append(spawned, Effect{Kind: EffectBoom, Pos: e.Pos, T: boomTime, Radius: e.Radius})
				continue
			}
		case EffectBoom, EffectZap, EffectShield, EffectSaw, EffectFrost, EffectDrone, EffectBossUlt, EffectHit:
			if e.T <= 0 {
				continue
			}
		default:
			panic(fmt.Sprintf("voidrun: unknown effect kind %d", int(e.Kind)))
		}
		kept = append(kept, e)
	}
	s.Effects = append(kept, spawned...)
}

// detonate applies grenade area damage. Area damage never crits.
func (s *Sim) detonate(g Effect) {
	for _, e := range s.Enemies {
		if !e.Alive() {
			continue
		}
		if core.CirclesOverlap(g.Pos, g.Radius, e.Pos, e.Radius) {
			s.damageEnemy(e, g.Damage)
		}
	}
}
