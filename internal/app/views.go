package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/navsurf/internal/storage"
	"github.com/vidyasagar/navsurf/internal/theme"
)

// showJournal lists the latest transitions in the viewport. A limit of zero
// shows everything the journal keeps.
func (m Model) showJournal(limit int) (tea.Model, tea.Cmd) {
	if m.s.journal == nil {
		m.statusBar.SetMessage("Journal unavailable")
		return m, nil
	}
	ctx := context.Background()
	entries, err := m.s.journal.List(ctx, limit)
	if err != nil {
		m.statusBar.SetError(err)
		return m, nil
	}

	counts := make([]string, 0, 3)
	for _, o := range []storage.Outcome{storage.OutcomeCommitted, storage.OutcomeDenied, storage.OutcomeRejected} {
		n, err := m.s.journal.Count(ctx, o)
		if err != nil {
			m.statusBar.SetError(err)
			return m, nil
		}
		counts = append(counts, fmt.Sprintf("%d %s", n, o))
	}

	m.setView("Journal", renderJournal("Journal", strings.Join(counts, ", "), entries))
	return m, nil
}

// searchJournal lists the transitions whose path contains query.
func (m Model) searchJournal(query string) (tea.Model, tea.Cmd) {
	if m.s.journal == nil {
		m.statusBar.SetMessage("Journal unavailable")
		return m, nil
	}
	entries, err := m.s.journal.Search(context.Background(), query)
	if err != nil {
		m.statusBar.SetError(err)
		return m, nil
	}
	m.setView("Journal search", renderJournal(
		fmt.Sprintf("Journal matching %q", query),
		fmt.Sprintf("%d matches", len(entries)),
		entries))
	return m, nil
}

// setView replaces the page with generated content until the next
// transition loads a page again.
func (m *Model) setView(title, content string) {
	m.page = nil
	m.viewport.SetContent(content)
	m.statusBar.SetTitle(title)
	m.syncStatusBar()
}

func renderJournal(title, summary string, entries []storage.JournalEntry) string {
	t := theme.Current

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary)
	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)
	actionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Width(9)
	pathStyle := lipgloss.NewStyle().
		Foreground(t.Text)

	outcomeStyles := map[storage.Outcome]lipgloss.Style{
		storage.OutcomeCommitted: lipgloss.NewStyle().Foreground(t.Success),
		storage.OutcomeDenied:    lipgloss.NewStyle().Foreground(t.Error),
		storage.OutcomeRejected:  lipgloss.NewStyle().Foreground(t.Warning),
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(summary))
	sb.WriteString("\n\n")

	if len(entries) == 0 {
		sb.WriteString(dimStyle.Render("No transitions recorded."))
		return sb.String()
	}

	now := time.Now()
	for _, e := range entries {
		outcome := outcomeStyles[e.Outcome].Width(10).Render(string(e.Outcome))
		line := fmt.Sprintf("%s %s %s %s",
			dimStyle.Width(9).Render(timeAgo(now.Sub(e.At))),
			actionStyle.Render(string(e.Action)),
			outcome,
			pathStyle.Render(e.Path))
		if e.Key != "" {
			line += dimStyle.Render(" " + e.Key)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// timeAgo returns a human-readable relative time string.
func timeAgo(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// showHelp renders the keybindings into the viewport.
func (m *Model) showHelp() {
	t := theme.Current

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)
	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		MarginTop(1)
	keyStyle := lipgloss.NewStyle().
		Foreground(t.Secondary).
		Width(18)
	descStyle := lipgloss.NewStyle().
		Foreground(t.Text)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("navsurf Keybindings"))
	sb.WriteString("\n\n")

	k := m.keys
	sections := []struct {
		name     string
		bindings []struct{ k, d string }
	}{
		{"Scrolling", helpRows(k.ScrollDown, k.ScrollUp, k.HalfPageDown, k.HalfPageUp, k.GotoTop, k.GotoBottom)},
		{"History", helpRows(k.Push, k.Replace, k.Back, k.Forward, k.Reload, k.FollowLink)},
		{"Gate", helpRows(k.ToggleBlock, k.Allow, k.Refuse)},
		{"Views", helpRows(k.SessionPanel, k.Journal, k.SearchMode, k.CommandMode, k.Leader, k.Help, k.Quit)},
		{"Commands", []struct{ k, d string }{
			{":push <p> [state]", "Push a path"},
			{":replace <p>", "Replace the current entry"},
			{":go <n>", "Traverse n entries"},
			{":block [msg]", "Prompt before leaving"},
			{":block pop", "Prompt on back/forward only"},
			{":guard <prefix>", "Refuse paths under prefix"},
			{":deny", "Refuse every transition"},
			{":unblock", "Remove the hook"},
			{":hash <frag>", "Edit the fragment (hash mode)"},
			{":href <p>", "Show the href of a path"},
			{":journal [n|clear]", "Transition journal"},
			{":theme <name>", "Change theme"},
			{":log <level>", "Change log level"},
			{":quit", "Quit navsurf"},
		}},
	}

	for _, section := range sections {
		sb.WriteString(sectionStyle.Render(section.name))
		sb.WriteString("\n\n")
		for _, b := range section.bindings {
			sb.WriteString(keyStyle.Render(b.k))
			sb.WriteString(descStyle.Render(b.d))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	var leader []string
	for _, b := range m.leaderPanel.Bindings() {
		leader = append(leader, fmt.Sprintf("Space %s: %s", b.Key, b.Desc))
	}
	sb.WriteString(sectionStyle.Render("Leader"))
	sb.WriteString("\n\n")
	sb.WriteString(descStyle.Render(strings.Join(leader, "  ·  ")))
	sb.WriteString("\n")

	m.setView("Help - Keybindings", sb.String())
}

func helpRows(bindings ...key.Binding) []struct{ k, d string } {
	rows := make([]struct{ k, d string }, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		rows = append(rows, struct{ k, d string }{h.Key, h.Desc})
	}
	return rows
}
