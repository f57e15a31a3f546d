package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidyasagar/navsurf/history"
)

func TestListenNotCalledOnRegistration(t *testing.T) {
	t.Parallel()

	h := newMemory(t)
	calls := 0
	unlisten := h.Listen(func(history.Location, history.Action) { calls++ })
	assert.Zero(t, calls)

	require.NoError(t, h.Push("/a", nil))
	assert.Equal(t, 1, calls)

	unlisten()
	unlisten()
	require.NoError(t, h.Push("/b", nil))
	assert.Equal(t, 1, calls)
}

func TestListenersNotifiedInOrderFromSnapshot(t *testing.T) {
	t.Parallel()

	h := newMemory(t)
	var order []string

	var unlistenSecond func()
	h.Listen(func(history.Location, history.Action) {
		order = append(order, "first")
		unlistenSecond()
		h.Listen(func(history.Location, history.Action) { order = append(order, "late") })
	})
	unlistenSecond = h.Listen(func(history.Location, history.Action) { order = append(order, "second") })
	h.Listen(func(history.Location, history.Action) { order = append(order, "third") })

	require.NoError(t, h.Push("/a", nil))
	assert.Equal(t, []string{"first", "third"}, order, "removed listener skipped, added listener waits")
}

func TestBlockDeniesTransitions(t *testing.T) {
	t.Parallel()

	h := newMemory(t)
	rec := record(h)
	before := h.Location()

	var seen []history.Action
	unblock := h.Block(func(next history.Location, action history.Action, resolve func(bool)) {
		seen = append(seen, action)
		resolve(false)
	})

	require.NoError(t, h.Push("/a", nil))
	require.NoError(t, h.Replace("/b", nil))
	assert.Empty(t, rec.changes)
	assert.True(t, before.Equal(h.Location()))
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, []history.Action{history.Push, history.Replace}, seen)

	unblock()
	require.NoError(t, h.Push("/a", nil))
	assert.Equal(t, []string{"PUSH /a"}, rec.paths())
}

func TestBlockHookSeesCandidate(t *testing.T) {
	t.Parallel()

	h := newMemory(t)
	var next history.Location
	h.Block(history.Allow(func(loc history.Location, _ history.Action) bool {
		next = loc
		return true
	}))

	require.NoError(t, h.Push("/a?x=1", "s"))
	assert.True(t, next.Equal(h.Location()))
}

func TestBlockDeniesMemoryPop(t *testing.T) {
	t.Parallel()

	h := newMemory(t)
	require.NoError(t, h.Push("/a", nil))
	rec := record(h)
	h.Block(history.Deny)

	require.NoError(t, h.GoBack())
	assert.Equal(t, "/a", h.Location().Pathname)
	assert.Equal(t, 1, h.Index())
	assert.Empty(t, rec.changes)
}

func TestBlockSingleSlot(t *testing.T) {
	t.Parallel()

	logger, logs := bufferLogger()
	h := newMemory(t, history.WithLogger(logger))

	unblockFirst := h.Block(history.Deny)
	h.Block(history.Allow(func(history.Location, history.Action) bool { return true }))
	assert.Contains(t, logs.String(), "only one hook is active")

	unblockFirst()
	require.NoError(t, h.Push("/a", nil))
	assert.Equal(t, "/a", h.Location().Pathname, "second hook allowed it")

	h.Block(history.Deny)
	h.Block(nil)
	require.NoError(t, h.Push("/b", nil))
	assert.Equal(t, "/b", h.Location().Pathname, "Block(nil) clears the slot")
}

func TestStaleUnblockKeepsNewerHook(t *testing.T) {
	t.Parallel()

	h := newMemory(t)
	unblockAllow := h.Block(history.Allow(func(history.Location, history.Action) bool { return true }))
	h.Block(history.Deny)
	unblockAllow()

	require.NoError(t, h.Push("/a", nil))
	assert.Equal(t, "/", h.Location().Pathname)
}

func TestAsyncHook(t *testing.T) {
	t.Parallel()

	h := newMemory(t)
	rec := record(h)
	p := &pendingHook{}
	h.Block(p.hook)

	require.NoError(t, h.Push("/a", nil))
	assert.True(t, h.Pending())
	assert.Equal(t, "/", h.Location().Pathname)
	assert.Equal(t, history.Push, p.action)
	assert.Equal(t, "/a", p.next.Pathname)

	assert.ErrorIs(t, h.Push("/b", nil), history.ErrTransitionPending)
	assert.ErrorIs(t, h.Replace("/b", nil), history.ErrTransitionPending)
	assert.ErrorIs(t, h.GoBack(), history.ErrTransitionPending)
	assert.Equal(t, 1, p.calls)

	p.resolve(true)
	assert.False(t, h.Pending())
	assert.Equal(t, []string{"PUSH /a"}, rec.paths())

	p.resolve(false)
	p.resolve(true)
	assert.Equal(t, "/a", h.Location().Pathname, "later resolves are ignored")
	assert.Len(t, rec.changes, 1)
}

func TestBlockMessage(t *testing.T) {
	t.Parallel()

	var messages []string
	answer := false
	h := newMemory(t, history.WithConfirm(func(message string, resolve func(bool)) {
		messages = append(messages, message)
		resolve(answer)
	}))

	h.BlockMessage("Are you sure?")
	require.NoError(t, h.Push("/a", nil))
	assert.Equal(t, "/", h.Location().Pathname)

	answer = true
	require.NoError(t, h.Push("/a", nil))
	assert.Equal(t, "/a", h.Location().Pathname)
	assert.Equal(t, []string{"Are you sure?", "Are you sure?"}, messages)
}

func TestBlockMessageWithoutConfirm(t *testing.T) {
	t.Parallel()

	logger, logs := bufferLogger()
	h := newMemory(t, history.WithLogger(logger))
	h.BlockMessage("Leave?")

	require.NoError(t, h.Push("/a", nil))
	assert.Equal(t, "/a", h.Location().Pathname)
	assert.Contains(t, logs.String(), "no confirm function configured")
}

func TestBlockPrompt(t *testing.T) {
	t.Parallel()

	asked := 0
	h := newMemory(t, history.WithConfirm(func(_ string, resolve func(bool)) {
		asked++
		resolve(false)
	}))

	h.BlockPrompt(func(next history.Location, _ history.Action) string {
		if next.Pathname == "/guarded" {
			return "Leave for the guarded page?"
		}
		return ""
	})

	require.NoError(t, h.Push("/open", nil))
	assert.Equal(t, "/open", h.Location().Pathname)
	assert.Zero(t, asked)

	require.NoError(t, h.Push("/guarded", nil))
	assert.Equal(t, "/open", h.Location().Pathname)
	assert.Equal(t, 1, asked)
}

func TestConfirmResolvesLater(t *testing.T) {
	t.Parallel()

	var pending func(bool)
	h := newMemory(t, history.WithConfirm(func(_ string, resolve func(bool)) {
		pending = resolve
	}))
	h.BlockMessage("Sure?")

	require.NoError(t, h.Push("/a", nil))
	require.NotNil(t, pending)
	assert.True(t, h.Pending())

	pending(true)
	assert.Equal(t, "/a", h.Location().Pathname)
	assert.False(t, h.Pending())
}
