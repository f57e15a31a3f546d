package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/navsurf/internal/theme"
)

// ConfirmDialog asks the user to allow or refuse a transition. It holds the
// resolve callback of the pending decision and calls it at most once.
type ConfirmDialog struct {
	message string
	resolve func(bool)
	width   int
}

// NewConfirmDialog creates a hidden dialog.
func NewConfirmDialog() ConfirmDialog {
	return ConfirmDialog{}
}

// Open shows message and keeps resolve until the user answers. A dialog
// that is already open is answered with false first.
func (d *ConfirmDialog) Open(message string, resolve func(bool)) {
	if d.resolve != nil {
		d.Answer(false)
	}
	d.message = message
	d.resolve = resolve
}

// Answer resolves the pending decision and hides the dialog. It reports
// whether a decision was pending.
func (d *ConfirmDialog) Answer(ok bool) bool {
	resolve := d.resolve
	if resolve == nil {
		return false
	}
	d.resolve = nil
	d.message = ""
	resolve(ok)
	return true
}

// IsOpen reports whether a decision is waiting on the user.
func (d *ConfirmDialog) IsOpen() bool {
	return d.resolve != nil
}

// Message returns the question being asked.
func (d *ConfirmDialog) Message() string {
	return d.message
}

// SetWidth sets the available width.
func (d *ConfirmDialog) SetWidth(w int) {
	d.width = w
}

// View renders the dialog box.
func (d *ConfirmDialog) View() string {
	if !d.IsOpen() {
		return ""
	}

	t := theme.Current

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Warning).
		Padding(1, 2).
		Width(min(max(d.width-4, 20), 72))

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Warning)

	hintStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Italic(true)

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Confirm navigation"),
		"",
		lipgloss.NewStyle().Foreground(t.Text).Render(d.message),
		"",
		hintStyle.Render("y: allow   n/Esc: stay"),
	))
}
