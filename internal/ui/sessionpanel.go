package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/navsurf/internal/theme"
)

// SessionEntry is one row of the session stack panel.
type SessionEntry struct {
	Path string
	Key  string
}

// SessionPanel displays the session stack with vim navigation. Selecting a
// row traverses to it with Go(delta).
type SessionPanel struct {
	entries  []SessionEntry
	current  int
	cursor   int
	offset   int // scroll offset for visible window
	width    int
	height   int
	visible  bool
	lastGKey bool // for gg detection within the panel
}

// NewSessionPanel creates a new session panel.
func NewSessionPanel() SessionPanel {
	return SessionPanel{}
}

// SetEntries updates the stack shown and the index of the current entry.
// The cursor follows the current entry.
func (sp *SessionPanel) SetEntries(entries []SessionEntry, current int) {
	sp.entries = entries
	sp.current = current
	sp.cursor = current
	sp.clampCursor()
	sp.ensureVisible()
}

// SetSize updates the panel dimensions.
func (sp *SessionPanel) SetSize(w, h int) {
	sp.width = w
	sp.height = h
}

// Show makes the panel visible with the cursor on the current entry.
func (sp *SessionPanel) Show() {
	sp.visible = true
	sp.cursor = sp.current
	sp.clampCursor()
	sp.lastGKey = false
	sp.ensureVisible()
}

// Hide closes the panel.
func (sp *SessionPanel) Hide() {
	sp.visible = false
	sp.lastGKey = false
}

// IsVisible reports whether the panel is shown.
func (sp *SessionPanel) IsVisible() bool {
	return sp.visible
}

// Toggle switches visibility.
func (sp *SessionPanel) Toggle() {
	if sp.visible {
		sp.Hide()
	} else {
		sp.Show()
	}
}

// CursorUp moves the cursor up one entry.
func (sp *SessionPanel) CursorUp() {
	sp.lastGKey = false
	if sp.cursor > 0 {
		sp.cursor--
		sp.ensureVisible()
	}
}

// CursorDown moves the cursor down one entry.
func (sp *SessionPanel) CursorDown() {
	sp.lastGKey = false
	if sp.cursor < len(sp.entries)-1 {
		sp.cursor++
		sp.ensureVisible()
	}
}

// GotoTop moves to the first entry.
func (sp *SessionPanel) GotoTop() {
	sp.lastGKey = false
	sp.cursor = 0
	sp.offset = 0
}

// GotoBottom moves to the last entry.
func (sp *SessionPanel) GotoBottom() {
	sp.lastGKey = false
	if len(sp.entries) > 0 {
		sp.cursor = len(sp.entries) - 1
		sp.ensureVisible()
	}
}

// HandleGKey handles the "g" key for gg detection.
// Returns true if "gg" was completed (go to top).
func (sp *SessionPanel) HandleGKey() bool {
	if sp.lastGKey {
		sp.GotoTop()
		return true
	}
	sp.lastGKey = true
	return false
}

// ResetGKey resets the g key state (called on any non-g key press).
func (sp *SessionPanel) ResetGKey() {
	sp.lastGKey = false
}

// Cursor returns the cursor index.
func (sp *SessionPanel) Cursor() int {
	return sp.cursor
}

// Delta returns the traversal distance from the current entry to the
// entry under the cursor.
func (sp *SessionPanel) Delta() int {
	return sp.cursor - sp.current
}

func (sp *SessionPanel) clampCursor() {
	if sp.cursor >= len(sp.entries) {
		sp.cursor = len(sp.entries) - 1
	}
	if sp.cursor < 0 {
		sp.cursor = 0
	}
}

// visibleCount returns how many entries fit below the two header lines.
func (sp *SessionPanel) visibleCount() int {
	return max(sp.height-3, 1)
}

// ensureVisible adjusts offset so the cursor is within the visible window.
func (sp *SessionPanel) ensureVisible() {
	visible := sp.visibleCount()
	if sp.cursor < sp.offset {
		sp.offset = sp.cursor
	}
	if sp.cursor >= sp.offset+visible {
		sp.offset = sp.cursor - visible + 1
	}
	if sp.offset < 0 {
		sp.offset = 0
	}
}

// View renders the session panel.
func (sp *SessionPanel) View() string {
	if !sp.visible {
		return ""
	}

	t := theme.Current

	panelStyle := lipgloss.NewStyle().
		Width(sp.width).
		Height(sp.height).
		Background(t.Background)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Background(t.Surface).
		Width(sp.width).
		Padding(0, 1)

	rowStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Width(sp.width).
		Padding(0, 1)

	selectedStyle := rowStyle.
		Foreground(t.TextBright).
		Background(t.Selected).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Session (%d)", len(sp.entries))))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(t.Border).Render(strings.Repeat("─", max(sp.width-2, 1))))
	sb.WriteString("\n")

	if len(sp.entries) == 0 {
		sb.WriteString(rowStyle.Foreground(t.TextDim).Render("Empty session."))
		return panelStyle.Render(sb.String())
	}

	end := min(sp.offset+sp.visibleCount(), len(sp.entries))
	maxPath := max(sp.width-14, 10)
	for i := sp.offset; i < end; i++ {
		e := sp.entries[i]

		marker := "  "
		if i == sp.current {
			marker = "● "
		}
		path := e.Path
		if len(path) > maxPath {
			path = path[:maxPath-3] + "..."
		}
		line := fmt.Sprintf("%s%s %s", marker, path, keyStyle.Render(e.Key))

		if i == sp.cursor {
			sb.WriteString(selectedStyle.Render(line))
		} else {
			sb.WriteString(rowStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	return panelStyle.Render(sb.String())
}
