package voidrun

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/voidrun/internal/core"
)

// World units per terminal cell. Cells are about twice as tall as wide.
const (
	unitsPerCol = 10.0
	unitsPerRow = 20.0
)

// Minimum screen size for the field view.
const (
	minScreenW = 40
	minScreenH = 14
)

// Visual characters for rendering
const (
	PlayerChar  = '@'
	XPChar      = '·'
	CoinChar    = '$'
	GemChar     = '◆'
	ShotChar    = '•'
	SawChar     = '+'
	ArenaChar   = '·'
	GrenadeChar = 'g'
)

type camera struct {
	center core.Vec2
	w, h   int
	top    int // First field row; row 0 is the HUD
}

func (c camera) cell(p core.Vec2) (int, int, bool) {
	x := c.w/2 + int(math.Round((p.X-c.center.X)/unitsPerCol))
	y := c.top + (c.h-c.top)/2 + int(math.Round((p.Y-c.center.Y)/unitsPerRow))
	return x, y, x >= 0 && x < c.w && y >= c.top && y < c.h
}

func (c camera) plot(dst *core.Screen, p core.Vec2, r rune, col core.Color) {
	if x, y, ok := c.cell(p); ok {
		dst.SetWithColor(x, y, r, col)
	}
}

// ring draws a sampled circle outline.
func (c camera) ring(dst *core.Screen, center core.Vec2, radius float64, r rune, col core.Color) {
	steps := max(int(2*math.Pi*radius/unitsPerCol), 8)
	for i := range steps {
		c.plot(dst, center.Add(core.FromAngle(float64(i)*2*math.Pi/float64(steps), radius)), r, col)
	}
}

// Render draws the field around the player, the HUD row and the phase overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}
	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}
	g.sim.Render(dst)
}

// Render draws the simulation into dst.
func (s *Sim) Render(dst *core.Screen) {
	cam := camera{center: s.Player.Pos, w: dst.Width(), h: dst.Height(), top: 1}

	if s.Arena {
		cam.ring(dst, core.Vec2{}, s.ArenaRadius, ArenaChar, core.ColorGray)
	}
	s.renderPickups(dst, cam)
	s.renderEffects(dst, cam)
	s.renderProjectiles(dst, cam)
	s.renderEnemies(dst, cam)
	for _, b := range s.sawBlades() {
		cam.plot(dst, b, SawChar, core.ColorWhite)
	}
	s.renderPlayer(dst, cam)
	s.renderHUD(dst)
	s.renderOverlay(dst)
}

func (s *Sim) renderPickups(dst *core.Screen, cam camera) {
	for _, pk := range s.Pickups {
		switch pk.Kind {
		case PickupXP:
			cam.plot(dst, pk.Pos, XPChar, core.ColorGreen)
		case PickupCoin:
			cam.plot(dst, pk.Pos, CoinChar, core.ColorYellow)
		case PickupGem:
			cam.plot(dst, pk.Pos, GemChar, core.ColorCyan)
		}
	}
}

func (s *Sim) renderProjectiles(dst *core.Screen, cam camera) {
	for _, pr := range s.Projectiles {
		col := core.ColorWhite
		switch {
		case pr.Source == SourceDrone:
			col = core.ColorCyan
		case pr.Crit:
			col = core.ColorYellow
		}
		cam.plot(dst, pr.Pos, ShotChar, col)
	}
}

func enemyGlyph(k EnemyKind) (rune, core.Color) {
	switch k {
	case KindBrute:
		return 'O', core.ColorOrange
	case KindRunner:
		return 'r', core.ColorGreen
	case KindBoss:
		return 'B', core.ColorBrightRed
	default:
		return 'o', core.ColorGray
	}
}

func (s *Sim) renderEnemies(dst *core.Screen, cam camera) {
	for _, e := range s.Enemies {
		r, col := enemyGlyph(e.Kind)
		switch {
		case e.HitFlash > 0:
			col = core.ColorWhite
		case e.Slow > 0.1:
			col = core.ColorCyan
		}
		if e.Kind == KindBoss {
			cam.ring(dst, e.Pos, e.Radius, '#', col)
		}
		cam.plot(dst, e.Pos, r, col)
	}
}

// renderEffects switches over every effect kind.
func (s *Sim) renderEffects(dst *core.Screen, cam camera) {
	for _, fx := range s.Effects {
		switch fx.Kind {
		case EffectBoom:
			cam.ring(dst, fx.Pos, fx.Radius, '*', core.ColorOrange)
		case EffectZap:
			cam.plot(dst, fx.Pos, '↯', core.ColorYellow)
		case EffectGrenade:
			cam.plot(dst, fx.Pos, GrenadeChar, core.ColorRed)
		case EffectShield:
			cam.ring(dst, fx.Pos, s.Player.Radius+12, 'o', core.ColorBrightBlue)
		case EffectSaw:
			cam.plot(dst, fx.Pos, 'x', core.ColorWhite)
		case EffectFrost:
			cam.ring(dst, fx.Pos, fx.Radius, '.', core.ColorCyan)
		case EffectDrone:
			cam.plot(dst, fx.Pos.Add(core.V(0, -unitsPerRow)), '^', core.ColorCyan)
		case EffectBossUlt:
			cam.ring(dst, fx.Pos, 60, '!', core.ColorBrightRed)
		case EffectHit:
			cam.plot(dst, fx.Pos.Add(core.V(unitsPerCol, 0)), 'x', core.ColorRed)
		default:
			panic(fmt.Sprintf("voidrun: unknown effect kind %d", int(fx.Kind)))
		}
	}
}

func (s *Sim) renderPlayer(dst *core.Screen, cam camera) {
	col := core.ColorBlue
	if s.perk(PerkShield) > 0 && s.Timers.ShieldReady {
		col = core.ColorBrightBlue
	}
	if s.Player.Dead {
		col = core.ColorRed
	}
	cam.plot(dst, s.Player.Pos, PlayerChar, col)
}

// renderHUD draws the status line on row 0.
func (s *Sim) renderHUD(dst *core.Screen) {
	h := s.HUD()
	left := fmt.Sprintf("HP %d/%d  XP %d/%d Lv%d  $%d  ◆%d  K%d",
		int(math.Ceil(h.HP)), int(h.MaxHP), h.XP, h.XPNeed, h.XPLevel, h.Coins, h.Gems, h.Kills)
	dst.DrawTextColor(1, 0, left, core.ColorWhite)

	mode := "FIELD"
	if h.Arena {
		mode = "ARENA"
	}
	var clock string
	switch {
	case h.Target > 0:
		clock = fmt.Sprintf("%s/%s", formatClock(h.Elapsed), formatClock(h.Target))
	case h.BossHP >= 0:
		clock = fmt.Sprintf("BOSS %d%%", int(math.Ceil(h.BossHP*100)))
	default:
		clock = formatClock(h.Elapsed)
	}
	right := fmt.Sprintf("%s  S%d-%d %s", clock, h.Stage, h.Level, mode)
	dst.DrawTextColor(dst.Width()-len([]rune(right))-1, 0, right, core.ColorWhite)
}

func formatClock(sec float64) string {
	t := int(sec)
	return fmt.Sprintf("%02d:%02d", t/60, t%60)
}

func (s *Sim) renderOverlay(dst *core.Screen) {
	switch s.Phase {
	case PhaseRun:
	case PhasePaused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case PhaseLevelUp:
		lines := make([]string, 0, len(s.Offer))
		for i, o := range s.Offer {
			lvl := ""
			if o.Perk.Kind != PerkKindFiller {
				lvl = fmt.Sprintf(" [%d/%d]", o.Level, o.Perk.MaxLevel)
			}
			lines = append(lines, fmt.Sprintf("%d) %s%s - %s", i+1, o.Perk.Name, lvl, o.Perk.Desc))
		}
		drawCenteredBox(dst, fmt.Sprintf("LEVEL UP  (XP level %d)", s.XP.Level), lines...)
	case PhaseLevelCleared:
		r := s.Result
		lines := []string{fmt.Sprintf("Kills %d  +%d coins  +%d gems", r.Kills, r.Coins, r.Gems)}
		if s.chestQueued {
			lines = append(lines, "Stage cleared! A chest awaits.")
		}
		lines = append(lines, "Press Enter to continue")
		drawCenteredBox(dst, fmt.Sprintf("LEVEL %d-%d CLEARED", r.Stage, r.Level), lines...)
	case PhaseLevelFailed:
		r := s.Result
		drawCenteredBox(dst, "DEFEATED",
			fmt.Sprintf("Kept %d coins and %d gems", r.Coins, r.Gems),
			"Back to level 1 of the stage",
			"Press R to retry")
	case PhaseChest:
		s.renderChest(dst)
	}
}

func (s *Sim) renderChest(dst *core.Screen) {
	switch s.Chest.State {
	case ChestRevealed:
		r := s.Chest.Reward
		var prize string
		switch r.Kind {
		case RewardCoins:
			prize = fmt.Sprintf("+%d coins", r.Amount)
		case RewardGems:
			prize = fmt.Sprintf("+%d gems", r.Amount)
		case RewardWeapon:
			prize = fmt.Sprintf("Unlocked %s", r.Weapon)
		}
		drawCenteredBox(dst, "BONUS CHEST", prize, "Press Enter to continue")
	default:
		const width = 20
		filled := int(s.Chest.Progress() * width)
		bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
		drawCenteredBox(dst, "BONUS CHEST", bar)
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW = core.Min(boxW+4, w)
	boxH := len(lines) + 4
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	dst.DrawTextColor(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorYellow)
	for i, l := range lines {
		dst.DrawText(boxX+2, boxY+3+i, l)
	}
}
