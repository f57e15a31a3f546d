package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestCommandBarComplete(t *testing.T) {
	c := NewCommandBar("push", "replace", "go", "journal", "theme")

	tests := []struct {
		in, want string
	}{
		{"pu", "push"},
		{"j", "journal"},
		{"x", "x"},
		{"", ""},
		{"go 2", "go 2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Complete(tt.in), tt.in)
	}
}

func TestCommandBarRecall(t *testing.T) {
	c := NewCommandBar()
	c.Open(CommandEx)
	c.SetValue("go -1")
	assert.Equal(t, CommandResult{Type: CommandEx, Value: "go -1"}, c.Submit())
	assert.False(t, c.IsActive())

	c.Open(CommandEx)
	c.SetValue("push /a")
	c.Submit()

	c.Open(CommandEx)
	c.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, CommandResult{Type: CommandEx, Value: "push /a"}, c.Submit())

	c.Open(CommandEx)
	c.Update(tea.KeyMsg{Type: tea.KeyUp})
	c.Update(tea.KeyMsg{Type: tea.KeyUp})
	c.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "go -1", c.Submit().Value, "recall stops at the oldest entry")
}

func TestCommandBarSearchIsNotRecalled(t *testing.T) {
	c := NewCommandBar()
	c.Open(CommandSearch)
	c.SetValue("/docs")
	assert.Equal(t, CommandSearch, c.Submit().Type)

	c.Open(CommandEx)
	c.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "", c.Submit().Value)
}
