package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/voidrun/internal/core"
	"github.com/vovakirdan/voidrun/internal/games/voidrun"
	"github.com/vovakirdan/voidrun/internal/storage"
)

type screenMode int

const (
	modeHangar screenMode = iota
	modeGame
	modeRuns
)

// SessionModel manages one player's flow: hangar -> level -> hangar.
// Local play and every SSH session run one of these.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	player   string
	logger   *log.Logger
	mode     screenMode
	hangar   HangarModel
	game     GameModel
	runs     RunsModel
	quitting bool
}

// NewSessionModel creates a session for player. store may be nil, in which
// case nothing is persisted.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if player == "" {
		player = storage.DefaultProfile
	}
	return SessionModel{
		store:  store,
		config: cfg,
		player: player,
		logger: logger,
		hangar: NewHangarModel(store, player, cfg, logger),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.hangar.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.mode {
	case modeGame:
		return m.updateGame(msg)
	case modeRuns:
		return m.updateRuns(msg)
	default:
		return m.updateHangar(msg)
	}
}

func (m SessionModel) updateHangar(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.hangar.Update(msg)
	if h, ok := next.(HangarModel); ok {
		m.hangar = h
	}
	if m.hangar.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	item, picked := m.hangar.Chosen()
	if !picked {
		return m, cmd
	}
	switch item {
	case HangarLaunch:
		return m.startGame()
	case HangarRuns:
		m.runs = NewRunsModel(m.store, m.player, m.config.ScreenW, m.config.ScreenH)
		m.mode = modeRuns
		return m, m.runs.Init()
	}
	return m, cmd
}

// startGame creates a fresh game bound to the hangar's profile.
func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	m.game = NewGameModel(voidrun.New(), m.hangar.Profile(), m.store, m.player, m.config, m.logger)
	m.mode = modeGame
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(exitGameMsg); ok {
		m.backToHangar()
		return m, nil
	}
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = gm
	}
	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m SessionModel) updateRuns(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.runs.Update(msg)
	if rm, ok := next.(RunsModel); ok {
		m.runs = rm
	}
	if m.runs.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.runs.GoingBack() {
		m.backToHangar()
		return m, nil
	}
	return m, cmd
}

// backToHangar reloads the profile so the hangar shows what was saved.
func (m *SessionModel) backToHangar() {
	m.hangar = NewHangarModel(m.store, m.player, m.config, m.logger)
	if m.store == nil && m.mode == modeGame {
		m.hangar.profile = m.game.Profile()
	}
	m.mode = modeHangar
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.mode {
	case modeGame:
		return m.game.View()
	case modeRuns:
		return m.runs.View()
	default:
		return m.hangar.View()
	}
}

// Run starts a local session in the current terminal.
func Run(store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) error {
	p := tea.NewProgram(
		NewSessionModel(store, cfg, player, logger),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
