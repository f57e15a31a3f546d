package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidyasagar/navsurf/history"
	"github.com/vidyasagar/navsurf/internal/browser"
)

func newBrowser(t *testing.T, url string, opts ...history.Option) (*history.BrowserHistory, *browser.Window) {
	t.Helper()

	w := browser.NewWindow(url)
	h, err := history.NewBrowserHistory(w, opts...)
	require.NoError(t, err)
	t.Cleanup(h.Close)
	return h, w
}

func TestBrowserInitialLocation(t *testing.T) {
	t.Parallel()

	h, w := newBrowser(t, "/start?x=1#frag")

	loc := h.Location()
	assert.Equal(t, "/start", loc.Pathname)
	assert.Equal(t, "?x=1", loc.Search)
	assert.Equal(t, "#frag", loc.Hash)
	assert.Empty(t, loc.Key, "the initial location has no key")
	assert.Nil(t, loc.State)
	assert.Equal(t, history.Pop, h.Action())

	_, state := w.Current()
	assert.NotNil(t, state, "the initial entry is stamped")
	assert.Equal(t, 1, h.Len())
}

func TestBrowserNilAdapter(t *testing.T) {
	t.Parallel()

	_, err := history.NewBrowserHistory(nil)
	assert.ErrorIs(t, err, history.ErrNilAdapter)
}

func TestBrowserPushNewPath(t *testing.T) {
	t.Parallel()

	h, w := newBrowser(t, "/")
	rec := record(h)

	require.NoError(t, h.Push("/home?the=query#the-hash", map[string]int{"n": 1}))

	require.Len(t, rec.changes, 1)
	got := rec.last()
	assert.Equal(t, history.Push, got.Action)
	assert.Equal(t, "/home", got.Loc.Pathname)
	assert.Equal(t, "?the=query", got.Loc.Search)
	assert.Equal(t, "#the-hash", got.Loc.Hash)
	assert.Equal(t, map[string]int{"n": 1}, got.Loc.State)
	assert.Len(t, got.Loc.Key, 6)

	assert.Equal(t, "/home?the=query#the-hash", w.URL())
	assert.Equal(t, 2, h.Len())
}

func TestBrowserPushSamePathAddsEntry(t *testing.T) {
	t.Parallel()

	h, _ := newBrowser(t, "/")
	require.NoError(t, h.Push("/home", nil))
	require.NoError(t, h.Push("/home", nil))

	assert.Equal(t, 3, h.Len())
}

func TestBrowserReplace(t *testing.T) {
	t.Parallel()

	h, w := newBrowser(t, "/")
	rec := record(h)
	require.NoError(t, h.Push("/a", nil))
	require.NoError(t, h.Replace("/b", "replaced"))

	assert.Equal(t, []string{"PUSH /a", "REPLACE /b"}, rec.paths())
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "/b", w.URL())
}

func TestBrowserGoBackAndForward(t *testing.T) {
	t.Parallel()

	h, w := newBrowser(t, "/")
	require.NoError(t, h.Push("/a", "a-state"))
	pushed := h.Location()
	require.NoError(t, h.Push("/b", nil))
	rec := record(h)

	require.NoError(t, h.GoBack())
	assert.Equal(t, "/b", h.Location().Pathname, "traversal is observed on the next event")

	w.Flush()
	assert.Equal(t, []string{"POP /a"}, rec.paths())
	assert.True(t, pushed.Equal(h.Location()), "key and state are restored")

	require.NoError(t, h.GoForward())
	w.Flush()
	assert.Equal(t, []string{"POP /a", "POP /b"}, rec.paths())

	require.NoError(t, h.Go(-2))
	w.Flush()
	assert.Equal(t, "/", h.Location().Pathname)
	assert.Empty(t, h.Location().Key)
}

func TestBrowserUnicodeAndEncodedPaths(t *testing.T) {
	t.Parallel()

	h, w := newBrowser(t, "/")

	require.NoError(t, h.Push("/歴史", nil))
	assert.Equal(t, "/歴史", h.Location().Pathname)

	require.NoError(t, h.Push("/%E6%AD%B4%E5%8F%B2", nil))
	assert.Equal(t, "/歴史", h.Location().Pathname)

	require.NoError(t, h.Push("/view/%23abc", nil))
	assert.Equal(t, "/view/%23abc", h.Location().Pathname)
	assert.Empty(t, h.Location().Hash)

	require.NoError(t, h.Push("/view/#abc", nil))
	assert.Equal(t, "/view/", h.Location().Pathname)
	assert.Equal(t, "#abc", h.Location().Hash)

	// Going back re-reads the URL and decodes it the same way.
	require.NoError(t, h.Go(-3))
	w.Flush()
	assert.Equal(t, "/歴史", h.Location().Pathname)
}

func TestBrowserInitialEncodedURL(t *testing.T) {
	t.Parallel()

	h, _ := newBrowser(t, "/%E6%AD%B4%E5%8F%B2")
	assert.Equal(t, "/歴史", h.Location().Pathname)

	_, err := history.NewBrowserHistory(browser.NewWindow("/%E6%AD"))
	assert.True(t, history.IsDecodeError(err))
}

func TestBrowserBasename(t *testing.T) {
	t.Parallel()

	h, w := newBrowser(t, "/prefix/hello", history.WithBasename("/prefix/"))
	assert.Equal(t, "/hello", h.Location().Pathname)

	require.NoError(t, h.Push("/x?y=1", nil))
	assert.Equal(t, "/prefix/x?y=1", w.URL())
	assert.Equal(t, "/x", h.Location().Pathname)
	assert.Equal(t, "/prefix/a", h.CreateHref(history.Location{Pathname: "/a"}))

	require.NoError(t, h.GoBack())
	w.Flush()
	assert.Equal(t, "/hello", h.Location().Pathname)
}

func TestBrowserBasenameSpecialCharacters(t *testing.T) {
	t.Parallel()

	h, _ := newBrowser(t, "/prefix$special/hello", history.WithBasename("/prefix$special"))
	assert.Equal(t, "/hello", h.Location().Pathname)
}

func TestBrowserBasenameMismatchWarns(t *testing.T) {
	t.Parallel()

	logger, logs := bufferLogger()
	h, _ := newBrowser(t, "/elsewhere", history.WithBasename("/prefix"), history.WithLogger(logger))

	assert.Equal(t, "/elsewhere", h.Location().Pathname)
	assert.Contains(t, logs.String(), "does not begin with the basename")
}

func TestBrowserBlockEverything(t *testing.T) {
	t.Parallel()

	h, w := newBrowser(t, "/")
	require.NoError(t, h.Push("/a", nil))
	rec := record(h)
	h.Block(history.Deny)

	require.NoError(t, h.Push("/b", nil))
	require.NoError(t, h.Replace("/c", nil))
	w.Back()
	w.Flush()

	assert.Empty(t, rec.changes)
	assert.Equal(t, "/a", h.Location().Pathname)
	assert.Equal(t, "/a", w.URL(), "the denied POP was reverted")
	assert.Equal(t, 1, w.Index())
	assert.Equal(t, 2, w.Len())
}

func TestBrowserBlockPopWithoutListening(t *testing.T) {
	t.Parallel()

	h, w := newBrowser(t, "/")
	require.NoError(t, h.Push("/a", nil))
	require.NoError(t, h.Push("/b", nil))

	var hookCalls int
	h.Block(func(next history.Location, action history.Action, resolve func(bool)) {
		hookCalls++
		assert.Equal(t, history.Pop, action)
		assert.Equal(t, "/", next.Pathname)
		resolve(false)
	})

	w.Go(-2)
	w.Flush()

	assert.Equal(t, 1, hookCalls, "the corrective traversal skips the hook")
	assert.Equal(t, "/b", h.Location().Pathname)
	assert.Equal(t, 2, w.Index())
}

func TestBrowserAsyncPopApproval(t *testing.T) {
	t.Parallel()

	h, w := newBrowser(t, "/")
	require.NoError(t, h.Push("/a", nil))
	rec := record(h)
	p := &pendingHook{}
	h.Block(p.hook)

	w.Back()
	w.Flush()
	assert.Equal(t, "/a", h.Location().Pathname)
	assert.True(t, h.Pending())
	assert.ErrorIs(t, h.Push("/b", nil), history.ErrTransitionPending)

	p.resolve(true)
	assert.Equal(t, []string{"POP /"}, rec.paths())
}

func TestBrowserDeferredPopReplay(t *testing.T) {
	t.Parallel()

	h, w := newBrowser(t, "/")
	require.NoError(t, h.Push("/a", nil))
	require.NoError(t, h.Push("/b", nil))
	rec := record(h)
	p := &pendingHook{}
	h.Block(p.hook)

	w.Back()
	w.Flush()
	require.Equal(t, 1, p.calls)

	// A second traversal lands while the first is still undecided.
	w.Back()
	w.Flush()
	assert.Equal(t, 1, p.calls, "the event waits for the decision")

	p.resolve(true)
	require.Equal(t, 2, p.calls, "the replayed event asks again")
	assert.Equal(t, "/", p.next.Pathname, "the replay reads where the browser is now")

	p.resolve(true)
	assert.Equal(t, []string{"POP /a", "POP /"}, rec.paths())
}

func TestBrowserDeniedPopWithQueuedTraversal(t *testing.T) {
	t.Parallel()

	h, w := newBrowser(t, "/")
	require.NoError(t, h.Push("/a", nil))
	require.NoError(t, h.Push("/b", nil))
	rec := record(h)
	p := &pendingHook{}
	h.Block(p.hook)

	w.Back()
	w.Flush()
	w.Back()
	w.Flush()
	require.Equal(t, 0, w.Index(), "the browser moved twice")

	p.resolve(false)
	w.Flush()

	assert.Equal(t, 1, p.calls, "the corrective traversal is not gated")
	assert.False(t, h.Pending())
	assert.Empty(t, rec.changes)
	assert.Equal(t, "/b", h.Location().Pathname)
	assert.Equal(t, "/b", w.URL(), "the browser is back on the committed entry")
	assert.Equal(t, 2, w.Index())

	// The next traversal is gated as usual.
	w.Back()
	w.Flush()
	require.Equal(t, 2, p.calls)
	p.resolve(true)
	assert.Equal(t, []string{"POP /a"}, rec.paths())
}

func TestBrowserDeniedAsyncPopReverts(t *testing.T) {
	t.Parallel()

	h, w := newBrowser(t, "/")
	require.NoError(t, h.Push("/a", nil))
	require.NoError(t, h.Push("/b", nil))
	rec := record(h)
	p := &pendingHook{}
	h.Block(p.hook)

	w.Go(-2)
	w.Flush()
	p.resolve(false)
	w.Flush()

	assert.Empty(t, rec.changes)
	assert.Equal(t, "/b", w.URL())
	assert.False(t, h.Pending())
}

func TestBrowserClose(t *testing.T) {
	t.Parallel()

	h, w := newBrowser(t, "/")
	require.NoError(t, h.Push("/a", nil))
	rec := record(h)

	h.Close()
	w.Back()
	w.Flush()

	assert.Empty(t, rec.changes)
	assert.Equal(t, "/a", h.Location().Pathname)
}

func TestBrowserRestoresEnvelopeAfterReload(t *testing.T) {
	t.Parallel()

	w := browser.NewWindow("/")
	first, err := history.NewBrowserHistory(w)
	require.NoError(t, err)
	require.NoError(t, first.Push("/a", "saved"))
	pushed := first.Location()
	first.Close()

	second, err := history.NewBrowserHistory(w)
	require.NoError(t, err)
	defer second.Close()

	assert.True(t, pushed.Equal(second.Location()))
}

func TestBrowserKeysStayUnique(t *testing.T) {
	t.Parallel()

	h, _ := newBrowser(t, "/", history.WithKeyLength(1))

	seen := map[string]bool{}
	for range 40 {
		require.NoError(t, h.Push("/p", nil))
		key := h.Location().Key
		assert.False(t, seen[key], "duplicate key %q", key)
		seen[key] = true
	}
}

func TestBrowserHashEditIsPop(t *testing.T) {
	t.Parallel()

	h, w := newBrowser(t, "/page")
	rec := record(h)

	w.SetHash("section")
	w.Flush()

	assert.Equal(t, []string{"POP /page#section"}, rec.paths())
	assert.Empty(t, h.Location().Key)
}
