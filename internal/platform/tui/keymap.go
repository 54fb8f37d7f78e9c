package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/voidrun/internal/core"
)

// holdWindow is how long one key press keeps the avatar moving. Terminals
// report no key releases, so held keys are detected through auto-repeat.
const holdWindow = 180 * time.Millisecond

// GameKeyMap defines the in-game key bindings.
type GameKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Stop    key.Binding
	Choice1 key.Binding
	Choice2 key.Binding
	Choice3 key.Binding
	Confirm key.Binding
	Pause   key.Binding
	Restart key.Binding
	Back    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Stop},
		{k.Choice1, k.Choice2, k.Choice3},
		{k.Confirm, k.Pause, k.Restart},
		{k.Back, k.Help, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Stop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "stop"),
		),
		Choice1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "perk 1"),
		),
		Choice2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "perk 2"),
		),
		Choice3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "perk 3"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "continue"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "hangar"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action maps a key to a discrete simulation action, or ActionNone.
func (k GameKeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Choice1):
		return core.ActionChoice1
	case key.Matches(msg, k.Choice2):
		return core.ActionChoice2
	case key.Matches(msg, k.Choice3):
		return core.ActionChoice3
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// Direction returns the unit step of a movement key.
func (k GameKeyMap) Direction(msg tea.KeyMsg) (core.Vec2, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return core.V(0, -1), true
	case key.Matches(msg, k.Down):
		return core.V(0, 1), true
	case key.Matches(msg, k.Left):
		return core.V(-1, 0), true
	case key.Matches(msg, k.Right):
		return core.V(1, 0), true
	}
	return core.Vec2{}, false
}

// heldKeys turns discrete key presses into a continuous movement vector.
// Each press keeps its direction active for holdWindow; pressing the
// opposite direction cancels it.
type heldKeys struct {
	until map[core.Vec2]time.Time
}

func newHeldKeys() *heldKeys {
	return &heldKeys{until: make(map[core.Vec2]time.Time, 4)}
}

// Press activates dir until now+holdWindow.
func (h *heldKeys) Press(dir core.Vec2, now time.Time) {
	delete(h.until, dir.Scale(-1))
	h.until[dir] = now.Add(holdWindow)
}

// Release drops every held direction.
func (h *heldKeys) Release() {
	clear(h.until)
}

// Vector sums the directions still held at now, clamped to unit length.
func (h *heldKeys) Vector(now time.Time) core.Vec2 {
	var v core.Vec2
	for dir, until := range h.until {
		if now.After(until) {
			delete(h.until, dir)
			continue
		}
		v = v.Add(dir)
	}
	return core.ClampLen(v, 1)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
