package ui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/navsurf/internal/theme"
)

// CommandType identifies the kind of command bar interaction.
type CommandType int

const (
	CommandNone   CommandType = iota
	CommandEx                 // : commands
	CommandSearch             // / journal search
	CommandFollow             // f link follow
)

var commandPrompts = map[CommandType]struct{ prompt, placeholder string }{
	CommandEx:     {":", "command..."},
	CommandSearch: {"/", "search journal..."},
	CommandFollow: {"f", "link #..."},
}

// CommandResult is emitted when a command is submitted.
type CommandResult struct {
	Type  CommandType
	Value string
}

// CommandBar handles vim-style : commands, / journal search and f link
// following. Ex commands keep a recall history and complete on Tab.
type CommandBar struct {
	input       textinput.Model
	active      bool
	cmdType     CommandType
	width       int
	history     []string
	historyPos  int
	completions []string
}

// NewCommandBar creates a command bar that completes the given command names.
func NewCommandBar(completions ...string) CommandBar {
	ti := textinput.New()
	ti.CharLimit = 256

	return CommandBar{
		input:       ti,
		historyPos:  -1,
		completions: slices.Sorted(slices.Values(completions)),
	}
}

// SetWidth sets the command bar width.
func (c *CommandBar) SetWidth(w int) {
	c.width = w
	c.input.Width = w - 4
}

// Open activates the command bar in the given mode.
func (c *CommandBar) Open(ct CommandType) tea.Cmd {
	c.active = true
	c.cmdType = ct
	c.input.Reset()
	c.historyPos = -1

	p := commandPrompts[ct]
	c.input.Prompt = p.prompt
	c.input.Placeholder = p.placeholder

	return c.input.Focus()
}

// Close deactivates the command bar.
func (c *CommandBar) Close() {
	c.active = false
	c.cmdType = CommandNone
	c.input.Blur()
	c.input.Reset()
}

// IsActive reports whether the command bar is open.
func (c *CommandBar) IsActive() bool {
	return c.active
}

// SetValue sets the text input value (useful for pre-filling commands).
func (c *CommandBar) SetValue(val string) {
	c.input.SetValue(val)
	c.input.SetCursor(len(val))
}

// Type returns the current command type.
func (c *CommandBar) Type() CommandType {
	return c.cmdType
}

// Submit returns the command result and adds ex commands to the recall
// history.
func (c *CommandBar) Submit() CommandResult {
	val := strings.TrimSpace(c.input.Value())
	result := CommandResult{
		Type:  c.cmdType,
		Value: val,
	}

	if val != "" && c.cmdType == CommandEx {
		c.history = append(c.history, val)
	}

	c.Close()
	return result
}

// Complete returns the first command name with the given prefix, or prefix
// itself when nothing matches or the input already has arguments.
func (c *CommandBar) Complete(prefix string) string {
	if prefix == "" || strings.Contains(prefix, " ") {
		return prefix
	}
	for _, name := range c.completions {
		if strings.HasPrefix(name, prefix) {
			return name
		}
	}
	return prefix
}

func (c *CommandBar) recall(step int) {
	pos := c.historyPos + step
	switch {
	case pos < 0:
		c.historyPos = -1
		c.input.Reset()
	case pos < len(c.history):
		c.historyPos = pos
		c.SetValue(c.history[len(c.history)-1-pos])
	}
}

// Update processes messages for the command bar.
func (c *CommandBar) Update(msg tea.Msg) (*CommandBar, tea.Cmd) {
	if !c.active {
		return c, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			c.Close()
			return c, nil
		case tea.KeyEnter:
			// Handled by the parent to process the result.
			return c, nil
		case tea.KeyTab:
			if c.cmdType == CommandEx {
				c.SetValue(c.Complete(c.input.Value()))
			}
			return c, nil
		case tea.KeyUp:
			if c.cmdType == CommandEx {
				c.recall(1)
			}
			return c, nil
		case tea.KeyDown:
			if c.cmdType == CommandEx {
				c.recall(-1)
			}
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// View renders the command bar.
func (c *CommandBar) View() string {
	if !c.active {
		return ""
	}

	t := theme.Current

	barStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		Width(c.width)

	return barStyle.Render(c.input.View())
}
