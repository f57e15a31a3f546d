package browser

import (
	"maps"
	"slices"
	"strings"
)

// Window simulates the navigation surface of a browser tab: a session
// stack, the location fragment and the popstate/hashchange events they
// produce. Events are queued and delivered by Flush, the way a browser
// delivers them on a later turn of its event loop.
type Window struct {
	stack  *SessionStack
	queue  []func()
	nextID int

	popListeners  map[int]func(state any)
	hashListeners map[int]func()

	reloadOnTraverse bool
}

// WindowOption configures a Window.
type WindowOption func(*Window)

// WithReloadOnTraverse makes the window report that traversing hash
// entries reloads the page.
func WithReloadOnTraverse() WindowOption {
	return func(w *Window) {
		w.reloadOnTraverse = true
	}
}

// NewWindow opens a window at url with no entry state.
func NewWindow(url string, opts ...WindowOption) *Window {
	if url == "" {
		url = "/"
	}
	w := &Window{
		stack:         NewSessionStack(Entry{URL: url}),
		popListeners:  make(map[int]func(any)),
		hashListeners: make(map[int]func()),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Current returns the URL and state of the current entry.
func (w *Window) Current() (string, any) {
	e := w.stack.Current()
	return e.URL, e.State
}

// URL returns the URL of the current entry.
func (w *Window) URL() string {
	return w.stack.Current().URL
}

func (w *Window) PushState(state any, url string) error {
	w.stack.Push(Entry{URL: w.resolve(url), State: state})
	return nil
}

func (w *Window) ReplaceState(state any, url string) error {
	w.stack.Replace(Entry{URL: w.resolve(url), State: state})
	return nil
}

// resolve keeps the current document when url is only a fragment.
func (w *Window) resolve(url string) string {
	if strings.HasPrefix(url, "#") {
		return stripFragment(w.URL()) + url
	}
	if url == "" {
		return w.URL()
	}
	return url
}

// Go queues a traversal of delta entries. Out of range moves do nothing.
func (w *Window) Go(delta int) {
	w.enqueue(func() {
		from := w.stack.Current()
		if !w.stack.Move(delta) {
			return
		}
		to := w.stack.Current()
		w.firePopState(to.State)
		if fragment(from.URL) != fragment(to.URL) {
			w.fireHashChange()
		}
	})
}

// Back simulates the browser's back button.
func (w *Window) Back() {
	w.Go(-1)
}

// Forward simulates the browser's forward button.
func (w *Window) Forward() {
	w.Go(1)
}

func (w *Window) Len() int {
	return w.stack.Len()
}

// Index returns the position of the current entry.
func (w *Window) Index() int {
	return w.stack.Index()
}

// Entries returns a copy of the session entries.
func (w *Window) Entries() []Entry {
	return w.stack.Entries()
}

// Hash returns the current fragment without the '#'.
func (w *Window) Hash() string {
	return fragment(w.URL())
}

// PushHash navigates to fragment with a new entry. Navigating to the
// current fragment does nothing.
func (w *Window) PushHash(frag string) error {
	cur := w.URL()
	if hasFragment(cur) && fragment(cur) == frag {
		return nil
	}
	w.stack.Push(Entry{URL: stripFragment(cur) + "#" + frag})
	w.enqueue(func() {
		w.firePopState(nil)
		w.fireHashChange()
	})
	return nil
}

// ReplaceHash navigates to fragment in place of the current entry.
func (w *Window) ReplaceHash(frag string) error {
	cur := w.URL()
	if hasFragment(cur) && fragment(cur) == frag {
		return nil
	}
	w.stack.Replace(Entry{URL: stripFragment(cur) + "#" + frag})
	w.enqueue(func() {
		w.firePopState(nil)
		w.fireHashChange()
	})
	return nil
}

// SetHash simulates the user editing the fragment in the address bar.
func (w *Window) SetHash(frag string) {
	_ = w.PushHash(frag)
}

// CanGoWithoutReload reports whether hash entries can be traversed in
// place.
func (w *Window) CanGoWithoutReload() bool {
	return !w.reloadOnTraverse
}

func (w *Window) OnPopState(fn func(state any)) func() {
	id := w.nextID
	w.nextID++
	w.popListeners[id] = fn
	return func() { delete(w.popListeners, id) }
}

func (w *Window) OnHashChange(fn func()) func() {
	id := w.nextID
	w.nextID++
	w.hashListeners[id] = fn
	return func() { delete(w.hashListeners, id) }
}

// Pending returns the number of queued events.
func (w *Window) Pending() int {
	return len(w.queue)
}

// Flush delivers queued events, including those queued by the handlers,
// and returns how many it ran.
func (w *Window) Flush() int {
	n := 0
	for len(w.queue) > 0 {
		ev := w.queue[0]
		w.queue = w.queue[1:]
		ev()
		n++
	}
	return n
}

func (w *Window) enqueue(ev func()) {
	w.queue = append(w.queue, ev)
}

func (w *Window) firePopState(state any) {
	for _, id := range sortedIDs(w.popListeners) {
		if fn, ok := w.popListeners[id]; ok {
			fn(state)
		}
	}
}

func (w *Window) fireHashChange() {
	for _, id := range sortedIDs(w.hashListeners) {
		if fn, ok := w.hashListeners[id]; ok {
			fn()
		}
	}
}

func fragment(url string) string {
	_, frag, _ := strings.Cut(url, "#")
	return frag
}

func hasFragment(url string) bool {
	return strings.Contains(url, "#")
}

func stripFragment(url string) string {
	before, _, _ := strings.Cut(url, "#")
	return before
}

func sortedIDs[V any](m map[int]V) []int {
	return slices.Sorted(maps.Keys(m))
}
