package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/navsurf/internal/theme"
)

// StatusBar shows the mode, the last history action and the gate state at
// the bottom of the screen.
type StatusBar struct {
	mode       string
	history    string // browser, hash or memory
	action     string
	key        string
	title      string
	message    string // temporary status message
	isError    bool
	loading    bool
	blocked    bool
	pending    bool
	scrollInfo string
	linkCount  int
	position   string // e.g. "3/5"
	width      int
}

// NewStatusBar creates a new status bar.
func NewStatusBar() StatusBar {
	return StatusBar{
		mode: "NORMAL",
	}
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// SetMode sets the current mode indicator (NORMAL, INSERT, COMMAND, etc).
func (s *StatusBar) SetMode(mode string) {
	s.mode = mode
}

// SetHistory sets the history kind label.
func (s *StatusBar) SetHistory(kind string) {
	s.history = kind
}

// SetTransition records the action and key of the current location.
func (s *StatusBar) SetTransition(action, key string) {
	s.action = action
	s.key = key
}

// SetPosition sets the session stack position, 1-based.
func (s *StatusBar) SetPosition(index, length int) {
	s.position = fmt.Sprintf("%d/%d", index+1, length)
}

// SetTitle updates the page title.
func (s *StatusBar) SetTitle(title string) {
	s.title = title
}

// SetLoading sets the loading indicator state.
func (s *StatusBar) SetLoading(loading bool) {
	s.loading = loading
}

// SetGate sets the blocked and pending indicators.
func (s *StatusBar) SetGate(blocked, pending bool) {
	s.blocked = blocked
	s.pending = pending
}

// SetScrollInfo sets the scroll position string (e.g. "42%", "TOP", "BOT").
func (s *StatusBar) SetScrollInfo(info string) {
	s.scrollInfo = info
}

// SetLinkCount sets the total link count displayed.
func (s *StatusBar) SetLinkCount(n int) {
	s.linkCount = n
}

// SetMessage sets a temporary status message.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
	s.isError = false
}

// SetError sets a temporary error message.
func (s *StatusBar) SetError(err error) {
	s.message = err.Error()
	s.isError = true
}

// Message returns the current temporary message.
func (s *StatusBar) Message() string {
	return s.message
}

func (s *StatusBar) modeColor() lipgloss.Color {
	t := theme.Current
	switch s.mode {
	case "NORMAL":
		return t.Primary
	case "INSERT":
		return t.Success
	case "COMMAND":
		return t.Accent
	case "FOLLOW":
		return t.Link
	case "CONFIRM":
		return t.Warning
	case "SESSION":
		return t.Secondary
	default:
		return t.Secondary
	}
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := theme.Current

	modeStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(t.Background).
		Background(s.modeColor())
	mode := modeStyle.Render(s.mode)

	cell := lipgloss.NewStyle().
		Background(t.Surface).
		Padding(0, 1)

	var left string
	if s.history != "" {
		left += cell.Foreground(t.Secondary).Bold(true).Render(s.history)
	}
	switch {
	case s.loading:
		left += cell.Foreground(t.Warning).Bold(true).Render("loading...")
	case s.message != "" && s.isError:
		left += cell.Foreground(t.Error).Render(s.message)
	case s.message != "":
		left += cell.Foreground(t.Info).Render(s.message)
	case s.title != "":
		left += cell.Foreground(t.Text).Render(s.title)
	}

	var right string
	if s.pending {
		right += cell.Foreground(t.Background).Background(t.Warning).Bold(true).Render("PENDING")
	} else if s.blocked {
		right += cell.Foreground(t.Warning).Bold(true).Render("blocked")
	}
	if s.action != "" {
		label := s.action
		if s.key != "" {
			label += " " + s.key
		}
		right += cell.Foreground(t.Accent).Render(label)
	}
	if s.position != "" {
		right += cell.Foreground(t.TextDim).Render(s.position)
	}
	if s.linkCount > 0 {
		right += cell.Foreground(t.TextDim).Render(fmt.Sprintf("%d links", s.linkCount))
	}
	if s.scrollInfo != "" {
		right += cell.Foreground(t.Secondary).Bold(true).Render(s.scrollInfo)
	}

	spacerWidth := s.width - lipgloss.Width(mode) - lipgloss.Width(left) - lipgloss.Width(right)
	if spacerWidth < 0 {
		spacerWidth = 0
	}
	spacer := lipgloss.NewStyle().
		Background(t.Surface).
		Render(fmt.Sprintf("%*s", spacerWidth, ""))

	return mode + left + spacer + right
}
