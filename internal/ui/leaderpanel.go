package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/navsurf/internal/theme"
)

// LeaderBinding represents a single leader key shortcut.
type LeaderBinding struct {
	Key  string // the key to press after leader (e.g. "o", "t", "B")
	Desc string // short description
}

// LeaderGroup is a named group of leader shortcuts.
type LeaderGroup struct {
	Name     string
	Icon     string
	Bindings []LeaderBinding
}

// LeaderPanel renders the popup shortcut palette shown after pressing the leader key.
type LeaderPanel struct {
	visible bool
	width   int
	height  int
	groups  []LeaderGroup
}

// NewLeaderPanel creates a leader panel with the default shortcut groups.
func NewLeaderPanel() LeaderPanel {
	return LeaderPanel{
		groups: defaultLeaderGroups(),
	}
}

// defaultLeaderGroups returns the built-in shortcut groups.
func defaultLeaderGroups() []LeaderGroup {
	return []LeaderGroup{
		{
			Name: "Navigate",
			Icon: "🧭",
			Bindings: []LeaderBinding{
				{Key: "o", Desc: "Push path"},
				{Key: "r", Desc: "Replace path"},
				{Key: "b", Desc: "Back"},
				{Key: "f", Desc: "Forward"},
				{Key: "l", Desc: "Follow link"},
			},
		},
		{
			Name: "Gate",
			Icon: "🚧",
			Bindings: []LeaderBinding{
				{Key: "k", Desc: "Toggle block"},
				{Key: "p", Desc: "Block POP only"},
				{Key: "y", Desc: "Allow pending"},
				{Key: "n", Desc: "Refuse pending"},
			},
		},
		{
			Name: "Views",
			Icon: "👁",
			Bindings: []LeaderBinding{
				{Key: "s", Desc: "Session stack"},
				{Key: "j", Desc: "Journal"},
				{Key: "T", Desc: "Theme cycle"},
				{Key: ":", Desc: "Command"},
				{Key: "?", Desc: "Help"},
			},
		},
	}
}

// Bindings returns every leader key with its description, in display order.
func (lp *LeaderPanel) Bindings() []LeaderBinding {
	var out []LeaderBinding
	for _, g := range lp.groups {
		out = append(out, g.Bindings...)
	}
	return out
}

// Show makes the panel visible.
func (lp *LeaderPanel) Show() {
	lp.visible = true
}

// Hide closes the panel.
func (lp *LeaderPanel) Hide() {
	lp.visible = false
}

// IsVisible reports whether the panel is shown.
func (lp *LeaderPanel) IsVisible() bool {
	return lp.visible
}

// SetSize sets the available area for rendering.
func (lp *LeaderPanel) SetSize(w, h int) {
	lp.width = w
	lp.height = h
}

// View renders the leader palette as a popup box with one column per group.
func (lp *LeaderPanel) View() string {
	if !lp.visible {
		return ""
	}

	t := theme.Current

	groupStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Underline(true)
	badgeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Background).
		Background(t.Secondary).
		Padding(0, 1)
	descStyle := lipgloss.NewStyle().Foreground(t.Text)
	colStyle := lipgloss.NewStyle().Width(20)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Italic(true)

	rows := 0
	for _, g := range lp.groups {
		rows = max(rows, len(g.Bindings))
	}

	columns := make([]string, 0, len(lp.groups))
	for _, g := range lp.groups {
		lines := []string{groupStyle.Render(g.Icon + " " + g.Name), ""}
		for _, b := range g.Bindings {
			lines = append(lines, badgeStyle.Render(b.Key)+descStyle.Render(" "+b.Desc))
		}
		for range rows - len(g.Bindings) {
			lines = append(lines, "")
		}
		columns = append(columns, colStyle.Render(strings.Join(lines, "\n")))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	rule := lipgloss.NewStyle().Foreground(t.Border).Render(strings.Repeat("─", lipgloss.Width(body)))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render("Leader"),
		rule,
		body,
		rule,
		dimStyle.Render("press a key or Esc to dismiss"),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		MaxWidth(lp.width).
		MaxHeight(lp.height).
		Render(content)
}
