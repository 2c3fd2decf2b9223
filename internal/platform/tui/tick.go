// Package tui provides the Bubble Tea integration for Pixel Snake.
// It handles the terminal UI loop, input mapping, menus and SSH serving.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Gen ties the message to the timer that produced it.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

// tickGen is shared by all game models so a stale tick from one game can
// never match a timer armed by another.
var tickGen atomic.Uint64

func nextTickGen() uint64 {
	return tickGen.Add(1)
}

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(gen uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
