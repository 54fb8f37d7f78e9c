// Package tui runs VOIDRUN in a terminal through Bubble Tea. It owns the
// frame loop, the key bindings, the hangar screens and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent on every frame callback. It carries the wall-clock time the
// frame fired, which the model turns into a bounded delta.
type TickMsg time.Time

// tickCmd schedules the next frame callback at the given rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
