// Package voidrun implements the survival arena simulation: difficulty
// scaling, enemy waves, auto-fire combat with run perks, pickups and the
// level/stage progression state machine.
//
// The simulation is single-threaded. One call to Sim.Step advances every
// store in a fixed order: move, spawn, act, collide, cleanup, progress.
package voidrun

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/voidrun/internal/config"
	"github.com/vovakirdan/voidrun/internal/profile"
)

// Phase is the progression state of the current level.
type Phase int

const (
	PhaseRun          Phase = iota // Real-time simulation
	PhaseLevelUp                   // Waiting for a perk choice
	PhasePaused                    // Paused by the player
	PhaseLevelCleared              // Level won, waiting for continue
	PhaseLevelFailed               // Player died, waiting for retry
	PhaseChest                     // Stage bonus chest
)

// String returns the HUD name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseRun:
		return "run"
	case PhaseLevelUp:
		return "levelup"
	case PhasePaused:
		return "paused"
	case PhaseLevelCleared:
		return "cleared"
	case PhaseLevelFailed:
		return "failed"
	case PhaseChest:
		return "chest"
	default:
		return "unknown"
	}
}

// Wave tracks the spawner and win condition of the current level.
type Wave struct {
	Elapsed     float64 // Seconds of real-time simulation this level
	SpawnT      float64 // Countdown to the next spawn batch
	BossSpawned bool
	BossID      int // 0 when no boss
	Done        bool

	bossDown bool
}

// XPState is the in-level experience track.
type XPState struct {
	Cur   int
	Need  int
	Level int
}

// Timers are the independent cooldowns of the weapon and active perks.
type Timers struct {
	Fire        float64
	Drone       float64
	Grenade     float64
	Lightning   float64
	Shield      float64 // Recharge countdown, only ticks while the shield is spent
	ShieldReady bool
	SawAngle    float64
}

// SimulationContext holds every store mutated by a step.
// The progression controller decides when it is cleared.
type SimulationContext struct {
	Tick        uint64
	Phase       Phase
	Stage       int
	Level       int
	Tier        int
	Arena       bool
	ArenaRadius float64
	RunID       string

	Player      Player
	Enemies     []*Enemy
	Projectiles []*Projectile
	Pickups     []*Pickup
	Effects     []Effect

	Wave   Wave
	XP     XPState
	Timers Timers

	Offer           []PerkOffer
	pendingLevelUps int

	Chest       Chest
	chestQueued bool
	Result      *LevelResult

	nextID int
}

// Sim owns a SimulationContext together with its tuning, randomness and the
// profile it reads at level start and writes at level end.
type Sim struct {
	SimulationContext

	cfg    config.VoidrunConfig
	diff   Difficulty
	weapon config.Weapon
	rng    *rand.Rand
	log    *log.Logger
	prof   *profile.Profile
	events []Event
}

// NewSim creates a simulation bound to prof. The first level is not started
// until StartLevel is called. A nil logger discards output.
func NewSim(cfg config.VoidrunConfig, prof *profile.Profile, seed int64, logger *log.Logger) *Sim {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if prof == nil {
		p := profile.New()
		prof = &p
	}
	prof.Normalize()

	return &Sim{
		cfg:  cfg,
		diff: NewDifficulty(cfg),
		rng:  rand.New(rand.NewSource(seed)),
		log:  logger,
		prof: prof,
	}
}

// Config returns the tuning the simulation runs with.
func (s *Sim) Config() config.VoidrunConfig {
	return s.cfg
}

// Profile returns the bound profile.
func (s *Sim) Profile() *profile.Profile {
	return s.prof
}

// Weapon returns the weapon equipped for the current level.
func (s *Sim) Weapon() config.Weapon {
	return s.weapon
}

// IsBossLevel reports whether the current level is the stage boss level.
func (s *Sim) IsBossLevel() bool {
	return s.Level == profile.LevelsPerStage
}

func (s *Sim) newID() int {
	s.nextID++
	return s.nextID
}

// randRange returns a uniform float in [lo, hi).
func (s *Sim) randRange(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// randInt returns a uniform int in [lo, hi].
func (s *Sim) randInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}
