package voidrun

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/voidrun/internal/core"
	"github.com/vovakirdan/voidrun/internal/profile"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	cfg := core.DefaultConfig()
	cfg.Seed = 42
	g.Reset(cfg)
	return g
}

func TestGameResetAndStep(t *testing.T) {
	g := newTestGame(t)
	require.NotNil(t, g.Sim())

	assert.Equal(t, []EventKind{EventLevelStart}, eventKinds(g.DrainEvents()))
	assert.Empty(t, g.DrainEvents())

	res := g.Step(core.NewInputFrame())
	assert.Equal(t, "run", res.State.Phase)
	assert.False(t, res.State.Paused)
	assert.False(t, res.State.GameOver)
	assert.InDelta(t, 1.0/60, g.Sim().Wave.Elapsed, 1e-9, "zero delta falls back to the tick rate")

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	res = g.Step(in)
	assert.True(t, res.State.Paused)
	assert.Equal(t, "paused", g.State().Phase)
}

func TestGameUsesProfile(t *testing.T) {
	p := profile.New()
	p.Stage = 3
	p.LevelInStage = 2
	p.Coins = 500

	g := New()
	g.UseProfile(p)
	g.Reset(core.DefaultConfig())

	assert.Equal(t, 3, g.HUD().Stage)
	assert.Equal(t, 2, g.HUD().Level)
	assert.True(t, g.HUD().Arena)

	cp := g.Profile()
	cp.UnlockedWeapons[0] = "changed"
	assert.Equal(t, profile.DefaultWeapon, g.Profile().UnlockedWeapons[0], "Profile returns a copy")
	assert.Equal(t, 500, g.Profile().Coins)
}

func TestGameStateBeforeReset(t *testing.T) {
	g := New()
	assert.Nil(t, g.Sim())
	assert.Equal(t, core.GameState{}, g.State())
	assert.Nil(t, g.DrainEvents())
	assert.InDelta(t, -1, g.HUD().BossHP, 1e-9)
}

func TestRenderPlacesPlayerAtCenter(t *testing.T) {
	g := newTestGame(t)
	scr := core.NewScreen(80, 24)
	g.Render(scr)

	cell := scr.GetCell(40, 12)
	assert.Equal(t, PlayerChar, cell.Rune)
	assert.Equal(t, core.ColorBlue, cell.Color)
	assert.Contains(t, scr.Row(0), "HP 100/100")
	assert.Contains(t, scr.Row(0), "S1-1 FIELD")
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t)
	s := g.Sim()
	scr := core.NewScreen(80, 24)

	require.NoError(t, s.TogglePause())
	g.Render(scr)
	assert.Contains(t, scr.String(), "PAUSED")
	require.NoError(t, s.TogglePause())

	s.gainXP(s.XP.Need)
	s.checkProgress()
	g.Render(scr)
	out := scr.String()
	assert.Contains(t, out, "LEVEL UP")
	assert.Contains(t, out, "1) ")
	assert.Contains(t, out, "3) ")

	require.NoError(t, s.ChoosePerk(0))
	s.damagePlayer(1e6)
	s.checkProgress()
	g.Render(scr)
	assert.Contains(t, scr.String(), "DEFEATED")
}

func TestRenderSmallScreen(t *testing.T) {
	g := newTestGame(t)
	scr := core.NewScreen(20, 10)
	g.Render(scr)

	assert.True(t, strings.Contains(scr.String(), "Window too small"))
	assert.NotContains(t, scr.String(), string(PlayerChar))
}
