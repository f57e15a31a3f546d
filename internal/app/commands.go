package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidyasagar/navsurf/history"
	"github.com/vidyasagar/navsurf/internal/theme"
)

// commandNames are the ex commands offered for completion.
var commandNames = []string{
	"back", "block", "deny", "forward", "go", "guard", "hash", "help", "href",
	"journal", "log", "push", "quit", "replace", "session", "theme", "unblock",
}

// executeCommand handles :commands.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return m, nil
	}
	args := parts[1:]

	switch parts[0] {
	case "q", "quit":
		return m, tea.Quit

	case "push", "p", "replace", "r":
		if len(args) == 0 {
			m.statusBar.SetMessage(fmt.Sprintf("Usage: :%s <path> [state]", parts[0]))
			return m, nil
		}
		var state any
		if len(args) > 1 {
			state = strings.Join(args[1:], " ")
		}
		if parts[0] == "push" || parts[0] == "p" {
			return m.navigate(m.s.push(args[0], state))
		}
		return m.navigate(m.s.replace(args[0], state))

	case "go":
		if len(args) != 1 {
			m.statusBar.SetMessage("Usage: :go <delta>")
			return m, nil
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			m.statusBar.SetMessage(fmt.Sprintf("Invalid delta: %s", args[0]))
			return m, nil
		}
		return m.traverse(n)
	case "back":
		return m.traverse(-1)
	case "forward":
		return m.traverse(1)

	case "block":
		if len(args) == 1 && args[0] == "pop" {
			m.s.prompt("", true)
		} else {
			m.s.prompt(strings.Join(args, " "), false)
		}
		m.statusBar.SetMessage("Gate: " + m.s.gate)
	case "guard":
		if len(args) != 1 {
			m.statusBar.SetMessage("Usage: :guard <path prefix>")
			return m, nil
		}
		m.s.guard(args[0])
		m.statusBar.SetMessage("Gate: " + m.s.gate)
	case "deny":
		m.s.deny()
		m.statusBar.SetMessage("Gate: " + m.s.gate)
	case "unblock":
		m.s.clearGate()
		m.statusBar.SetMessage("Navigation unblocked")

	case "hash":
		if len(args) != 1 {
			m.statusBar.SetMessage("Usage: :hash <fragment>")
			return m, nil
		}
		if err := m.s.editHash(args[0]); err != nil {
			m.statusBar.SetError(err)
			return m, nil
		}
		return m.afterTransition()

	case "href":
		if len(args) != 1 {
			m.statusBar.SetMessage("Usage: :href <path>")
			return m, nil
		}
		loc, err := history.ParsePath(args[0])
		if err != nil {
			m.statusBar.SetError(err)
			return m, nil
		}
		m.statusBar.SetMessage(fmt.Sprintf("href: %s", m.s.hist.CreateHref(loc)))

	case "journal":
		if m.s.journal == nil {
			m.statusBar.SetMessage("Journal unavailable")
			return m, nil
		}
		if len(args) == 1 && args[0] == "clear" {
			if err := m.s.journal.Clear(context.Background()); err != nil {
				m.statusBar.SetError(err)
				return m, nil
			}
			m.statusBar.SetMessage("Journal cleared")
			return m, nil
		}
		limit := 0
		if len(args) == 1 {
			limit, _ = strconv.Atoi(args[0])
		}
		return m.showJournal(limit)

	case "session":
		return m.toggleSessionPanel()

	case "theme":
		if len(args) == 0 {
			m.statusBar.SetMessage(fmt.Sprintf("Current: %s | Available: %s", theme.Current.Name, strings.Join(theme.List(), ", ")))
			return m, nil
		}
		if !theme.Set(args[0]) {
			m.statusBar.SetMessage(fmt.Sprintf("Unknown theme: %s (available: %s)", args[0], strings.Join(theme.List(), ", ")))
			return m, nil
		}
		m.statusBar.SetMessage(fmt.Sprintf("Theme: %s", args[0]))
		m.s.cache.Purge()
		return m, m.loadPage(m.s.hist.Location())

	case "log":
		if len(args) != 1 {
			m.statusBar.SetMessage(fmt.Sprintf("Log level: %s", m.logger.Level()))
			return m, nil
		}
		m.logger.SetLevel(args[0])
		m.statusBar.SetMessage(fmt.Sprintf("Log level: %s", m.logger.Level()))

	case "help":
		m.showHelp()

	default:
		m.statusBar.SetMessage(fmt.Sprintf("Unknown command: %s", parts[0]))
	}

	m.syncStatusBar()
	return m, nil
}
