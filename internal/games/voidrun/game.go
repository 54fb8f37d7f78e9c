package voidrun

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/voidrun/internal/config"
	"github.com/vovakirdan/voidrun/internal/core"
	"github.com/vovakirdan/voidrun/internal/profile"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// preset from the config file.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Game wraps a Sim with config loading, profile binding and the
// Reset/Step/Render loop the terminal platform drives.
type Game struct {
	sim     *Sim
	prof    profile.Profile
	logger  *log.Logger
	runtime core.RuntimeConfig
}

// New creates a game with a fresh profile.
func New() *Game {
	return &Game{
		prof:   profile.New(),
		logger: log.New(io.Discard),
	}
}

// UseProfile replaces the profile the next Reset starts from.
func (g *Game) UseProfile(p profile.Profile) {
	g.prof = p
}

// SetLogger sets the logger handed to the simulation on Reset.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// Reset loads tuning and starts the profile's current level.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadVoidrun(configPath)
	if err != nil {
		g.logger.Warn("falling back to built-in config", "err", err)
		cfg = config.DefaultVoidrunConfig()
	}
	config.ApplyVoidrunPreset(&cfg, difficultyPreset)

	g.sim = NewSim(cfg, &g.prof, runtime.Seed, g.logger)
	g.sim.StartLevel()
}

// Step advances the simulation by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.sim == nil {
		g.Reset(g.runtime)
	}
	if in.DT <= 0 {
		in.DT = g.runtime.FixedDT()
	}
	g.sim.Step(in)
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.sim.Player.Kills,
		GameOver: g.sim.Phase == PhaseLevelFailed,
		Paused:   g.sim.Phase != PhaseRun,
		Phase:    g.sim.Phase.String(),
	}
}

// Sim exposes the running simulation, nil before Reset.
func (g *Game) Sim() *Sim {
	return g.sim
}

// Profile returns a copy of the profile with every delta applied so far.
func (g *Game) Profile() profile.Profile {
	p := g.prof
	p.UnlockedWeapons = append([]string(nil), g.prof.UnlockedWeapons...)
	return p
}

// DrainEvents returns the events emitted since the last call.
func (g *Game) DrainEvents() []Event {
	if g.sim == nil {
		return nil
	}
	return g.sim.DrainEvents()
}

// HUD returns the HUD values of the running simulation.
func (g *Game) HUD() HUD {
	if g.sim == nil {
		return HUD{BossHP: -1}
	}
	return g.sim.HUD()
}
