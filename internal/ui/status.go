package ui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/jsonexplorer/internal/ui/theme"
)

// StatusKind selects the status bar color.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusError
)

// statusClearDelay is how long transient messages stay visible.
const statusClearDelay = 3 * time.Second

// clearStatusMsg clears the status bar if no newer message replaced it.
type clearStatusMsg struct {
	seq int
}

// StatusModel is the one-line message bar under the panes.
type StatusModel struct {
	Text  string
	Kind  StatusKind
	seq   int
	Width int
}

// Set shows text and returns a command that clears it after a delay.
// Errors stay until replaced.
func (s *StatusModel) Set(kind StatusKind, text string) tea.Cmd {
	s.seq++
	s.Text = text
	s.Kind = kind
	if kind == StatusError {
		return nil
	}
	seq := s.seq
	return tea.Tick(statusClearDelay, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// Clear empties the bar if msg belongs to the latest message.
func (s *StatusModel) Clear(msg clearStatusMsg) {
	if msg.seq == s.seq {
		s.Text = ""
		s.Kind = StatusInfo
	}
}

// View renders the bar.
func (s StatusModel) View(th theme.Theme) string {
	c := th.StatusColor
	switch s.Kind {
	case StatusError:
		c = th.StatusError
	case StatusSuccess:
		c = th.StatusSuccess
	}
	line := theme.PadRight(s.Text, s.Width)
	return theme.Fg(c).Render(line)
}
