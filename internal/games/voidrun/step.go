package voidrun

import (
	"github.com/vovakirdan/voidrun/internal/core"
)

const defaultDT = 1.0 / 60.0

// Step advances one frame. Outside PhaseRun and PhaseChest only actions are
// processed: wave timers, cooldowns and effects stay frozen.
func (s *Sim) Step(in core.InputFrame) {
	if s.Stage == 0 {
		s.StartLevel()
	}
	dt := in.DT
	if dt <= 0 {
		dt = defaultDT
	}
	dt = core.ClampDT(dt)

	s.handleActions(in)

	switch s.Phase {
	case PhaseRun:
		s.advance(in.Move, dt)
	case PhaseChest:
		s.updateChest(dt)
	case PhaseLevelUp, PhasePaused, PhaseLevelCleared, PhaseLevelFailed:
	}
}

// advance runs one real-time tick: move, spawn, act, collide, cleanup, progress.
func (s *Sim) advance(move core.Vec2, dt float64) {
	s.Tick++

	s.movePlayer(move, dt)
	s.updateSpawner(dt)

	s.autoFire(dt)
	s.updateSkills(dt)

	s.updateProjectiles(dt)
	s.updateEnemies(dt)
	s.updateEffects(dt)
	s.updatePickups(dt)

	s.cleanup()
	s.checkProgress()
}

// handleActions maps discrete input to phase transitions. Actions that do
// not apply to the current phase are ignored.
func (s *Sim) handleActions(in core.InputFrame) {
	switch s.Phase {
	case PhaseRun:
		if in.Has(core.ActionPause) {
			_ = s.TogglePause()
		}
	case PhasePaused:
		if in.Has(core.ActionPause) || in.Has(core.ActionConfirm) {
			_ = s.TogglePause()
		}
	case PhaseLevelUp:
		for _, a := range []core.Action{core.ActionChoice1, core.ActionChoice2, core.ActionChoice3} {
			if in.Has(a) {
				_ = s.ChoosePerk(a.ChoiceIndex())
				return
			}
		}
	case PhaseLevelCleared:
		if in.Has(core.ActionConfirm) {
			_ = s.Continue()
		}
	case PhaseLevelFailed:
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			_ = s.Retry()
		}
	case PhaseChest:
		if in.Has(core.ActionConfirm) && s.Chest.State == ChestRevealed {
			_ = s.ClaimChest()
		}
	}
}
