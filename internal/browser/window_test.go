package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStack(t *testing.T) {
	t.Parallel()

	s := NewSessionStack(Entry{URL: "/"})
	s.Push(Entry{URL: "/a"})
	s.Push(Entry{URL: "/b"})
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.CanGoBack())
	assert.False(t, s.CanGoForward())

	require.True(t, s.Move(-2))
	assert.Equal(t, "/", s.Current().URL)
	assert.False(t, s.Move(-1))
	assert.False(t, s.Move(5))

	s.Push(Entry{URL: "/c"})
	assert.Equal(t, []Entry{{URL: "/"}, {URL: "/c"}}, s.Entries())
	assert.Equal(t, 1, s.Index())

	s.Replace(Entry{URL: "/d", State: 1})
	assert.Equal(t, Entry{URL: "/d", State: 1}, s.Current())
}

func TestWindowTraversalFiresEvents(t *testing.T) {
	t.Parallel()

	w := NewWindow("/")
	require.NoError(t, w.PushState("one", "/one"))
	require.NoError(t, w.PushState("two", "/one#frag"))

	var pops []any
	hashChanges := 0
	w.OnPopState(func(state any) { pops = append(pops, state) })
	w.OnHashChange(func() { hashChanges++ })

	w.Back()
	assert.Equal(t, "/one#frag", w.URL(), "traversal is queued")
	assert.Equal(t, 1, w.Pending())

	assert.Equal(t, 1, w.Flush())
	assert.Equal(t, "/one", w.URL())
	assert.Equal(t, []any{"one"}, pops)
	assert.Equal(t, 1, hashChanges)

	w.Go(-5)
	w.Flush()
	assert.Equal(t, "/one", w.URL(), "out of range traversal is ignored")
	assert.Len(t, pops, 1)
}

func TestWindowHashNavigation(t *testing.T) {
	t.Parallel()

	w := NewWindow("/page")
	hashChanges := 0
	cancel := w.OnHashChange(func() { hashChanges++ })

	assert.Equal(t, "", w.Hash())
	require.NoError(t, w.PushHash("/a"))
	assert.Equal(t, "/page#/a", w.URL())
	assert.Equal(t, "/a", w.Hash())
	assert.Equal(t, 2, w.Len())

	require.NoError(t, w.PushHash("/a"))
	assert.Equal(t, 2, w.Len(), "same fragment adds no entry")

	require.NoError(t, w.ReplaceHash("/b"))
	assert.Equal(t, 2, w.Len())
	assert.Equal(t, "/b", w.Hash())

	w.Flush()
	assert.Equal(t, 2, hashChanges)

	cancel()
	w.SetHash("/c")
	w.Flush()
	assert.Equal(t, 2, hashChanges)
}

func TestWindowFragmentOnlyURL(t *testing.T) {
	t.Parallel()

	w := NewWindow("/doc?x=1#old")
	require.NoError(t, w.PushState(nil, "#new"))
	assert.Equal(t, "/doc?x=1#new", w.URL())
}

func TestWindowReloadOnTraverse(t *testing.T) {
	t.Parallel()

	assert.True(t, NewWindow("/").CanGoWithoutReload())
	assert.False(t, NewWindow("/", WithReloadOnTraverse()).CanGoWithoutReload())
}
