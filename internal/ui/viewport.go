package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/vidyasagar/navsurf/internal/theme"
)

// Motion is a scroll movement of the page viewport.
type Motion int

const (
	MotionLineDown Motion = iota
	MotionLineUp
	MotionHalfDown
	MotionHalfUp
	MotionTop
	MotionBottom
)

// PageViewport shows the rendered page of the current location. It keeps a
// plain-text copy of the content so a location fragment can be found in it.
type PageViewport struct {
	viewport viewport.Model
	ready    bool
	plain    []string
	hasPage  bool
}

// NewPageViewport creates a viewport; it is sized on the first WindowSizeMsg.
func NewPageViewport() PageViewport {
	return PageViewport{}
}

func (pv *PageViewport) SetSize(width, height int) {
	if pv.ready {
		pv.viewport.Width, pv.viewport.Height = width, height
		return
	}
	pv.viewport = viewport.New(width, height)
	pv.viewport.MouseWheelEnabled = true
	pv.viewport.MouseWheelDelta = 3
	pv.ready = true
}

// SetContent replaces the content and scrolls to the top.
func (pv *PageViewport) SetContent(content string) {
	if !pv.ready {
		return
	}
	pv.viewport.SetContent(content)
	pv.viewport.GotoTop()
	pv.plain = strings.Split(ansi.Strip(content), "\n")
	pv.hasPage = true
}

func (pv *PageViewport) Update(msg tea.Msg) (*PageViewport, tea.Cmd) {
	if !pv.ready {
		return pv, nil
	}
	var cmd tea.Cmd
	pv.viewport, cmd = pv.viewport.Update(msg)
	return pv, cmd
}

// Move scrolls the viewport. Nothing happens before the first resize.
func (pv *PageViewport) Move(m Motion) {
	if !pv.ready {
		return
	}
	v := &pv.viewport
	switch m {
	case MotionLineDown:
		v.LineDown(1)
	case MotionLineUp:
		v.LineUp(1)
	case MotionHalfDown:
		v.HalfViewDown()
	case MotionHalfUp:
		v.HalfViewUp()
	case MotionTop:
		v.GotoTop()
	case MotionBottom:
		v.GotoBottom()
	}
}

// ScrollTo moves the first line containing text (case-insensitive) to the
// top of the viewport. It reports whether such a line exists.
func (pv *PageViewport) ScrollTo(text string) bool {
	if !pv.ready || text == "" {
		return false
	}
	needle := strings.ToLower(text)
	for i, line := range pv.plain {
		if strings.Contains(strings.ToLower(line), needle) {
			pv.viewport.SetYOffset(i)
			return true
		}
	}
	return false
}

// ScrollInfo is TOP, BOT or the scroll percentage.
func (pv *PageViewport) ScrollInfo() string {
	if !pv.ready {
		return "TOP"
	}
	switch pct := pv.viewport.ScrollPercent(); {
	case pct <= 0:
		return "TOP"
	case pct >= 1:
		return "BOT"
	default:
		return fmt.Sprintf("%d%%", int(pct*100))
	}
}

// Width is zero until the viewport is sized.
func (pv *PageViewport) Width() int {
	if !pv.ready {
		return 0
	}
	return pv.viewport.Width
}

func (pv *PageViewport) View() string {
	switch {
	case !pv.ready:
		return "\n  Initializing..."
	case !pv.hasPage:
		return welcome()
	}
	return pv.viewport.View()
}

func welcome() string {
	t := theme.Current
	keyStyle := lipgloss.NewStyle().Foreground(t.Secondary).Width(12)
	descStyle := lipgloss.NewStyle().Foreground(t.Text)

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render("navsurf"),
		lipgloss.NewStyle().Foreground(t.TextDim).Render("Session history explorer"),
		"",
	}
	for _, s := range [][2]string{
		{"o / O", "Push / replace a path"},
		{"f", "Follow link by number"},
		{"H / L", "Go back / forward"},
		{"b", "Toggle the navigation prompt"},
		{"s", "Session stack"},
		{":", "Command mode"},
		{"?", "Show all keybindings"},
		{"q", "Quit"},
	} {
		lines = append(lines, keyStyle.Render(s[0])+descStyle.Render(s[1]))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}
