package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/voidrun/internal/storage"
)

// maxRuns is how many runs the history screen loads.
const maxRuns = 100

// RunsKeyMap defines the key bindings for the run history.
type RunsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel lists the finished levels of one player.
type RunsModel struct {
	store     *storage.Store
	player    string
	runs      []storage.RunRecord
	stats     *storage.RunStats
	err       error
	table     table.Model
	help      help.Model
	keys      RunsKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewRunsModel creates the history screen and loads the player's runs.
func NewRunsModel(store *storage.Store, player string, width, height int) RunsModel {
	m := RunsModel{
		store:  store,
		player: player,
		keys:   DefaultRunsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 6},
		{Title: "Result", Width: 7},
		{Title: "Weapon", Width: 8},
		{Title: "Kills", Width: 6},
		{Title: "Time", Width: 6},
		{Title: "Coins", Width: 7},
		{Title: "When", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *RunsModel) load() {
	if m.store == nil {
		return
	}
	m.runs, m.err = m.store.RecentRuns(m.player, maxRuns)
	if m.err == nil {
		m.stats, m.err = m.store.Stats(m.player)
	}
	m.table.SetRows(runRows(m.runs))
	m.table.GotoTop()
}

// runRows formats runs for the table.
func runRows(runs []storage.RunRecord) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		result := "lost"
		if r.Won {
			result = "won"
		}
		t := int(r.Elapsed)
		rows[i] = table.Row{
			fmt.Sprintf("%d-%d", r.Stage, r.Level),
			result,
			r.Weapon,
			humanize.Comma(int64(r.Kills)),
			fmt.Sprintf("%d:%02d", t/60, t%60),
			humanize.Comma(int64(r.Coins)),
			humanize.Time(r.CreatedAt),
		}
	}
	return rows
}

// Init initializes the history screen.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(runRows(m.runs))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m RunsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("RUN HISTORY - "+m.player, m.width)))
	b.WriteString("\n\n")

	switch {
	case m.store == nil:
		b.WriteString(centerText(warnStyle.Render("history is unavailable without a database"), m.width))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(centerText(warnStyle.Render("could not load history: "+m.err.Error()), m.width))
		b.WriteString("\n")
	case len(m.runs) == 0:
		b.WriteString(centerText(dimStyle.Render("no runs yet"), m.width))
		b.WriteString("\n")
	default:
		if m.stats != nil {
			summary := fmt.Sprintf("%d runs  %d wins  %s kills  %s coins  best stage %d",
				m.stats.Runs, m.stats.Wins, humanize.Comma(int64(m.stats.Kills)),
				humanize.Comma(m.stats.Coins), m.stats.BestStage)
			b.WriteString(centerText(dimStyle.Render(summary), m.width))
			b.WriteString("\n")
		}
		tableStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
		b.WriteString(tableStyle.Render(m.table.View()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// GoingBack returns true if the user left the history screen.
func (m RunsModel) GoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user requested to quit.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}
