package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirmDialogAnswersOnce(t *testing.T) {
	d := NewConfirmDialog()
	var answers []bool
	d.Open("Leave?", func(ok bool) { answers = append(answers, ok) })

	assert.True(t, d.IsOpen())
	assert.Equal(t, "Leave?", d.Message())
	assert.True(t, d.Answer(true))
	assert.False(t, d.Answer(false), "second answer has nothing to resolve")
	assert.Equal(t, []bool{true}, answers)
	assert.False(t, d.IsOpen())
	assert.Empty(t, d.View())
}

func TestConfirmDialogReopenRefusesPrevious(t *testing.T) {
	d := NewConfirmDialog()
	var first, second []bool
	d.Open("one", func(ok bool) { first = append(first, ok) })
	d.Open("two", func(ok bool) { second = append(second, ok) })

	assert.Equal(t, []bool{false}, first)
	assert.Equal(t, "two", d.Message())
	d.Answer(true)
	assert.Equal(t, []bool{true}, second)
}
