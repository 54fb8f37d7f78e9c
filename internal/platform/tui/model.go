package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/voidrun/internal/core"
	"github.com/vovakirdan/voidrun/internal/games/voidrun"
	"github.com/vovakirdan/voidrun/internal/profile"
	"github.com/vovakirdan/voidrun/internal/storage"
)

// footerRows is the height of the gauge line plus the short help line.
const footerRows = 2

// exitGameMsg asks the session to return to the hangar.
type exitGameMsg struct{}

// GameModel runs one VOIDRUN session and persists its results.
type GameModel struct {
	game     *voidrun.Game
	screen   *core.Screen
	store    *storage.Store
	player   string
	logger   *log.Logger
	config   core.RuntimeConfig
	clock    *core.Clock
	held     *heldKeys
	input    core.InputFrame
	keys     GameKeyMap
	help     help.Model
	state    core.GameState
	quitting bool
}

// NewGameModel binds game to the player's profile. The caller has already
// loaded the profile; results are written back to store under player.
func NewGameModel(game *voidrun.Game, p profile.Profile, store *storage.Store, player string, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	game.UseProfile(p)
	game.SetLogger(logger)

	m := GameModel{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerRows, 1)),
		store:  store,
		player: player,
		logger: logger,
		config: cfg,
		clock:  &core.Clock{},
		held:   newHeldKeys(),
		input:  core.NewInputFrame(),
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
	}
	m.help.Width = cfg.ScreenW
	return m
}

// Init starts the level and the frame loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.persist(m.game.DrainEvents())
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// handleKey records movement and queues discrete actions for the next tick.
func (m GameModel) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	case key.Matches(msg, m.keys.Stop):
		m.held.Release()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.state.Paused {
			return m, func() tea.Msg { return exitGameMsg{} }
		}
		return m, nil
	}

	if dir, ok := m.keys.Direction(msg); ok {
		m.held.Press(dir, now)
		return m, nil
	}
	if a := m.keys.Action(msg); a != core.ActionNone {
		m.input.Set(a)
	}
	return m, nil
}

// handleResize keeps the world running and only resizes the viewport.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.layout()
	return m, nil
}

// layout fits the arena viewport above the footer.
func (m *GameModel) layout() {
	rows := footerRows
	if m.help.ShowAll {
		rows = 1 + lipgloss.Height(m.help.View(m.keys))
	}
	m.screen.Resize(m.config.ScreenW, max(m.config.ScreenH-rows, 1))
}

// handleTick advances the simulation by the wall-clock delta since the
// previous frame.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.input.DT = m.clock.Advance(now)
	m.input.SetMove(m.held.Vector(now))

	result := m.game.Step(m.input)
	m.state = result.State
	m.persist(m.game.DrainEvents())

	m.input.Clear()
	return m, tickCmd(m.config.TickRate)
}

// persist writes progression events to the store. Failures are logged and
// the session keeps running on its in-memory profile.
func (m GameModel) persist(events []voidrun.Event) {
	for _, e := range events {
		switch e.Kind {
		case voidrun.EventLevelEnd:
			m.saveDelta(e.Delta)
			if e.Result != nil {
				m.saveRun(*e.Result)
			}
		case voidrun.EventChestOpened:
			m.saveDelta(e.Delta)
		}
	}
}

func (m GameModel) saveDelta(d *profile.LevelDelta) {
	if m.store == nil || d == nil {
		return
	}
	if _, err := m.store.ApplyDelta(m.player, *d); err != nil {
		m.logger.Warn("could not save profile", "player", m.player, "err", err)
	}
}

func (m GameModel) saveRun(r voidrun.LevelResult) {
	if m.store == nil {
		return
	}
	_, err := m.store.RecordRun(storage.RunRecord{
		ID:      r.RunID,
		Profile: m.player,
		Stage:   r.Stage,
		Level:   r.Level,
		Won:     r.Won,
		Weapon:  r.Weapon,
		Kills:   r.Kills,
		Elapsed: r.Elapsed,
		XPLevel: r.XPLevel,
		Coins:   r.Coins,
		Gems:    r.Gems,
	})
	if err != nil {
		m.logger.Warn("could not record run", "player", m.player, "err", err)
	}
}

// saveScreenshot saves the current arena view to a text file.
func (m GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".voidrun", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("%s_%s.txt", m.player, time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the arena with the gauges and help below it.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(renderGauges(m.game.HUD(), m.config.ScreenW))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Profile returns the in-memory profile with every delta of this session.
func (m GameModel) Profile() profile.Profile {
	return m.game.Profile()
}

// IsQuitting returns true if the user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}
