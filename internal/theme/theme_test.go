package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	t.Cleanup(func() { Current = Default })

	require.True(t, Set("nord"))
	assert.Equal(t, "nord", Current.Name)

	assert.False(t, Set("missing"))
	assert.Equal(t, "nord", Current.Name, "unknown names leave the theme alone")
}

func TestListAndNext(t *testing.T) {
	t.Cleanup(func() { Current = Default })

	assert.Equal(t, []string{"default", "gruvbox", "nord", "solarized"}, List())

	Current = Solarized
	assert.Equal(t, "default", Next())
	Current = Default
	assert.Equal(t, "gruvbox", Next())
}

func TestGlamourStyles(t *testing.T) {
	for _, name := range List() {
		th := themes[name]
		assert.Contains(t, []string{"dark", "light"}, th.GlamourStyle, name)
	}
}
