package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/voidrun/internal/core"
	"github.com/vovakirdan/voidrun/internal/games/voidrun"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:    lipgloss.NewStyle(),
	core.ColorRed:        lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:       lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:    lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:       lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:      lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightBlue: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorOrange:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var (
	hpFillStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	xpFillStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	bossFillStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	barEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	barLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// bar draws a fixed-width gauge filled to frac.
func bar(frac float64, width int, fill lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	n := int(core.ClampF(frac, 0, 1)*float64(width) + 0.5)
	return fill.Render(strings.Repeat("█", n)) + barEmptyStyle.Render(strings.Repeat("░", width-n))
}

// renderGauges draws the HP and XP gauges, plus the boss gauge while a boss
// is alive, on one line of the given width.
func renderGauges(h voidrun.HUD, width int) string {
	parts := 2
	if h.BossHP >= 0 {
		parts = 3
	}
	// Each gauge carries a 4-column label and a separating space.
	w := (width-parts*5)/parts - 1
	if w < 4 {
		return ""
	}

	var hpFrac, xpFrac float64
	if h.MaxHP > 0 {
		hpFrac = h.HP / h.MaxHP
	}
	if h.XPNeed > 0 {
		xpFrac = float64(h.XP) / float64(h.XPNeed)
	}

	line := barLabelStyle.Render("HP ") + bar(hpFrac, w, hpFillStyle) +
		"  " + barLabelStyle.Render(fmt.Sprintf("L%-2d", h.XPLevel)) + bar(xpFrac, w, xpFillStyle)
	if h.BossHP >= 0 {
		line += "  " + barLabelStyle.Render("BOSS") + bar(h.BossHP, w, bossFillStyle)
	}
	return line
}
