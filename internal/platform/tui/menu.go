package tui

import (
	"fmt"
	"io"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/voidrun/internal/core"
	"github.com/vovakirdan/voidrun/internal/profile"
	"github.com/vovakirdan/voidrun/internal/storage"
)

// HangarItem is one entry of the hangar menu.
type HangarItem int

const (
	HangarLaunch HangarItem = iota
	HangarWeapon
	HangarRuns
	HangarQuit
)

var hangarItems = []HangarItem{HangarLaunch, HangarWeapon, HangarRuns, HangarQuit}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// HangarModel is the menu between levels: launch the next level, change the
// equipped weapon or browse the run history.
type HangarModel struct {
	store    *storage.Store
	player   string
	logger   *log.Logger
	profile  profile.Profile
	cursor   int
	width    int
	height   int
	status   string
	chosen   HangarItem
	picked   bool
	quitting bool
}

// NewHangarModel loads the player's profile. A missing store or a failed
// load falls back to a fresh profile.
func NewHangarModel(store *storage.Store, player string, cfg core.RuntimeConfig, logger *log.Logger) HangarModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := HangarModel{
		store:   store,
		player:  player,
		logger:  logger,
		profile: profile.New(),
		width:   cfg.ScreenW,
		height:  cfg.ScreenH,
	}
	if store != nil {
		p, err := store.LoadProfile(player)
		if err != nil {
			logger.Warn("could not load profile", "player", player, "err", err)
			m.status = "profile unavailable, playing offline"
		} else {
			m.profile = p
		}
	}
	return m
}

// Init initializes the hangar.
func (m HangarModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the hangar.
func (m HangarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m HangarModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(hangarItems)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		switch item := hangarItems[m.cursor]; item {
		case HangarWeapon:
			m.cycleWeapon()
		case HangarQuit:
			m.quitting = true
			return m, tea.Quit
		default:
			m.chosen = item
			m.picked = true
		}
	}
	return m, nil
}

// cycleWeapon equips the next unlocked weapon and saves the profile.
func (m *HangarModel) cycleWeapon() {
	owned := m.profile.UnlockedWeapons
	if len(owned) < 2 {
		m.status = "no other weapons unlocked yet"
		return
	}
	i := slices.Index(owned, m.profile.EquippedWeapon)
	next := owned[(i+1)%len(owned)]
	if err := m.profile.Equip(next); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "equipped " + next
	if m.store == nil {
		return
	}
	if err := m.store.SaveProfile(m.player, m.profile); err != nil {
		m.logger.Warn("could not save profile", "player", m.player, "err", err)
		m.status = "equipped " + next + " (not saved)"
	}
}

// View renders the hangar.
func (m HangarModel) View() string {
	if m.quitting {
		return ""
	}

	p := m.profile
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  V O I D R U N  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("pilot "+m.player), m.width))
	b.WriteString("\n\n")

	next := fmt.Sprintf("Stage %d  Level %d/%d", p.Stage, p.LevelInStage, profile.LevelsPerStage)
	if p.IsBossLevel() {
		next += "  BOSS"
	}
	b.WriteString(centerText(next, m.width))
	b.WriteString("\n")
	wallet := fmt.Sprintf("%s coins   %s gems", humanize.Comma(int64(p.Coins)), humanize.Comma(int64(p.Gems)))
	b.WriteString(centerText(wallet, m.width))
	b.WriteString("\n")
	u := p.Upgrades
	upgrades := fmt.Sprintf("HP %d  DMG %d  ROF %d  SPD %d  MAG %d", u.HP, u.Damage, u.FireRate, u.MoveSpeed, u.Magnet)
	b.WriteString(centerText(dimStyle.Render(upgrades), m.width))
	b.WriteString("\n\n")

	for i, item := range hangarItems {
		label := m.label(item)
		if i == m.cursor {
			label = selectedStyle.Render("> " + label + " ")
		} else {
			label = "  " + label + " "
		}
		b.WriteString(centerText(label, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(centerText(warnStyle.Render(m.status), m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(helpStyle.Render("↑/↓ navigate  •  enter select  •  q quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

func (m HangarModel) label(item HangarItem) string {
	switch item {
	case HangarLaunch:
		return fmt.Sprintf("Launch %d-%d", m.profile.Stage, m.profile.LevelInStage)
	case HangarWeapon:
		return fmt.Sprintf("Weapon: %s (%d/%d)", m.profile.EquippedWeapon,
			slices.Index(m.profile.UnlockedWeapons, m.profile.EquippedWeapon)+1, len(m.profile.UnlockedWeapons))
	case HangarRuns:
		return "Run history"
	case HangarQuit:
		return "Quit"
	}
	return ""
}

// Chosen returns the picked item, if any.
func (m HangarModel) Chosen() (HangarItem, bool) {
	return m.chosen, m.picked
}

// Profile returns the profile shown in the hangar.
func (m HangarModel) Profile() profile.Profile {
	return m.profile
}

// IsQuitting returns true if user requested to quit.
func (m HangarModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width, measuring its printed cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
