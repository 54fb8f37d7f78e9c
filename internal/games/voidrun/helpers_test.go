package voidrun

import (
	"testing"

	"github.com/vovakirdan/voidrun/internal/config"
	"github.com/vovakirdan/voidrun/internal/core"
	"github.com/vovakirdan/voidrun/internal/profile"
)

// newTestSim starts a seeded simulation on a fresh profile after applying mutate.
func newTestSim(t *testing.T, mutate ...func(*profile.Profile)) *Sim {
	t.Helper()
	p := profile.New()
	for _, m := range mutate {
		m(&p)
	}
	s := NewSim(config.DefaultVoidrunConfig(), &p, 42, nil)
	s.StartLevel()
	s.DrainEvents()
	return s
}

func atLevel(stage, level int) func(*profile.Profile) {
	return func(p *profile.Profile) {
		p.Stage = stage
		p.LevelInStage = level
	}
}

var origin core.Vec2

// dummy is a stationary, harmless enemy template.
func dummy(hp float64) EnemyStats {
	return EnemyStats{Kind: KindGrunt, HP: hp, Radius: 14, XP: 1}
}

func frame(dt float64, actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.DT = dt
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func eventKinds(events []Event) []EventKind {
	kinds := make([]EventKind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	return kinds
}
