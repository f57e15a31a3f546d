package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/navsurf/internal/theme"
)

// PathTarget says what a submitted path will do to the session stack.
type PathTarget int

const (
	TargetPush PathTarget = iota
	TargetReplace
)

func (t PathTarget) String() string {
	if t == TargetReplace {
		return "replace"
	}
	return "push"
}

// PathBar is the location bar at the top of the window. When idle it shows
// the href of the current location; when focused it edits a path to push or
// replace.
type PathBar struct {
	input  textinput.Model
	active bool
	target PathTarget
	href   string
	width  int
}

// NewPathBar creates a new path bar.
func NewPathBar() PathBar {
	ti := textinput.New()
	ti.Placeholder = "/path?query#hash"
	ti.CharLimit = 2048
	ti.Width = 60

	return PathBar{
		input: ti,
	}
}

// SetWidth updates the path bar width.
func (p *PathBar) SetWidth(w int) {
	p.width = w
	p.input.Width = w - 16 // prompt, target label and padding
}

// SetHref sets the href shown while the bar is idle.
func (p *PathBar) SetHref(href string) {
	p.href = href
}

// Focus activates the bar for a push or replace, pre-filled with value.
func (p *PathBar) Focus(target PathTarget, value string) tea.Cmd {
	p.active = true
	p.target = target
	p.input.SetValue(value)
	p.input.CursorEnd()
	return p.input.Focus()
}

// Blur deactivates the path bar.
func (p *PathBar) Blur() {
	p.active = false
	p.input.Blur()
	p.input.Reset()
}

// IsActive reports whether the path bar is focused.
func (p *PathBar) IsActive() bool {
	return p.active
}

// Target returns what the pending input will do.
func (p *PathBar) Target() PathTarget {
	return p.target
}

// Value returns the current input text.
func (p *PathBar) Value() string {
	return p.input.Value()
}

// Update handles messages for the path bar.
func (p *PathBar) Update(msg tea.Msg) (*PathBar, tea.Cmd) {
	if !p.active {
		return p, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// View renders the path bar.
func (p *PathBar) View() string {
	t := theme.Current

	border := t.Border
	fg := t.TextDim
	if p.active {
		border = t.BorderFocus
		fg = t.Text
	}
	barStyle := lipgloss.NewStyle().
		Foreground(fg).
		Background(t.Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(p.width - 2)

	promptStyle := lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	if !p.active {
		return barStyle.Render(promptStyle.Render("⌂") + " " + p.href)
	}

	targetStyle := lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent).
		Padding(0, 1)

	content := targetStyle.Render(p.target.String()) + " " + p.input.View()
	return barStyle.Render(content)
}
