package history

import (
	"fmt"
	"log/slog"
	"slices"
)

// SessionHistory is the native session-history store of a browser window.
type SessionHistory interface {
	// Current returns the URL path and state of the current entry.
	Current() (url string, state any)
	PushState(state any, url string) error
	ReplaceState(state any, url string) error
	// Go traverses delta entries. The move is observed later through
	// OnPopState.
	Go(delta int)
	Len() int
	OnPopState(fn func(state any)) (cancel func())
}

// historyState is stored with every entry this package writes.
type historyState struct {
	Key   string
	State any
}

func readHistoryState(raw any) historyState {
	if st, ok := raw.(historyState); ok {
		return st
	}
	return historyState{State: raw}
}

// BrowserHistory drives a SessionHistory with pushState and replaceState and
// observes traversal through popstate.
type BrowserHistory struct {
	core
	session SessionHistory

	// allKeys mirrors the keys of the session entries this history knows.
	allKeys       []string
	pendingRevert bool
	cancel        func()
}

func NewBrowserHistory(session SessionHistory, opts ...Option) (*BrowserHistory, error) {
	if session == nil {
		return nil, ErrNilAdapter
	}
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	h := &BrowserHistory{core: newCore(o), session: session}

	url, raw := session.Current()
	st, ok := raw.(historyState)
	if !ok {
		st = historyState{State: raw}
		if err := session.ReplaceState(st, url); err != nil {
			return nil, fmt.Errorf("stamping initial entry: %w", err)
		}
	}

	loc, err := h.domLocation(url, st.State, st.Key)
	if err != nil {
		return nil, err
	}
	h.location = loc
	h.allKeys = []string{loc.Key}
	h.cancel = session.OnPopState(h.handlePopState)
	return h, nil
}

func (h *BrowserHistory) newKey() string {
	return newKey(h.opts.keyLength, func(key string) bool {
		return slices.Contains(h.allKeys, key)
	})
}

func (h *BrowserHistory) Len() int {
	return h.session.Len()
}

func (h *BrowserHistory) handlePopState(any) {
	h.tm.deferOrRun(h.handlePop)
}

// handlePop reads the entry the browser moved to. The state is re-read
// rather than taken from the event so a replayed event sees where the
// browser is now.
func (h *BrowserHistory) handlePop() {
	if h.pendingRevert {
		h.pendingRevert = false
		return
	}

	url, raw := h.session.Current()
	st := readHistoryState(raw)
	loc, err := h.domLocation(url, st.State, st.Key)
	if err != nil {
		h.tm.logger.Error("history: ignoring popstate", slog.String("path", url), slog.Any("error", err))
		return
	}
	if loc.Equal(h.location) {
		return
	}

	h.tm.confirmTransitionTo(loc, Pop, func(ok bool) {
		if ok {
			h.setState(loc, Pop)
			return
		}
		h.revertPop()
	})
}

// revertPop moves the browser back to the current location after a denied
// POP. The step is measured from the entry the browser shows now, which may
// be past the denied one if more traversals arrived during the decision.
// The resulting popstate is swallowed.
func (h *BrowserHistory) revertPop() {
	h.tm.discardDeferred()
	_, raw := h.session.Current()
	to := max(slices.Index(h.allKeys, h.location.Key), 0)
	at := max(slices.Index(h.allKeys, readHistoryState(raw).Key), 0)
	if delta := to - at; delta != 0 {
		h.pendingRevert = true
		h.session.Go(delta)
	}
}

func (h *BrowserHistory) Push(path string, state any) error {
	if err := h.ready(); err != nil {
		return err
	}
	loc, err := h.createLocation(path, state, h.newKey())
	if err != nil {
		return err
	}
	return h.push(loc)
}

func (h *BrowserHistory) PushLocation(to Location) error {
	if err := h.ready(); err != nil {
		return err
	}
	loc, err := h.createLocationFrom(to, h.newKey())
	if err != nil {
		return err
	}
	return h.push(loc)
}

// push returns the adapter error when the hook decides synchronously; a late
// failure can only be logged.
func (h *BrowserHistory) push(loc Location) error {
	var commitErr error
	h.tm.confirmTransitionTo(loc, Push, func(ok bool) {
		if !ok {
			return
		}
		if err := h.session.PushState(historyState{Key: loc.Key, State: loc.State}, h.CreateHref(loc)); err != nil {
			commitErr = fmt.Errorf("pushing state: %w", err)
			h.tm.logger.Error("history: push failed", slog.String("path", loc.Path()), slog.Any("error", err))
			return
		}
		prev := slices.Index(h.allKeys, h.location.Key)
		keys := slices.Clone(h.allKeys[:prev+1])
		h.allKeys = append(keys, loc.Key)
		h.setState(loc, Push)
	})
	return commitErr
}

func (h *BrowserHistory) Replace(path string, state any) error {
	if err := h.ready(); err != nil {
		return err
	}
	loc, err := h.createLocation(path, state, h.newKey())
	if err != nil {
		return err
	}
	return h.replace(loc)
}

func (h *BrowserHistory) ReplaceLocation(to Location) error {
	if err := h.ready(); err != nil {
		return err
	}
	loc, err := h.createLocationFrom(to, h.newKey())
	if err != nil {
		return err
	}
	return h.replace(loc)
}

func (h *BrowserHistory) replace(loc Location) error {
	var commitErr error
	h.tm.confirmTransitionTo(loc, Replace, func(ok bool) {
		if !ok {
			return
		}
		if err := h.session.ReplaceState(historyState{Key: loc.Key, State: loc.State}, h.CreateHref(loc)); err != nil {
			commitErr = fmt.Errorf("replacing state: %w", err)
			h.tm.logger.Error("history: replace failed", slog.String("path", loc.Path()), slog.Any("error", err))
			return
		}
		if prev := slices.Index(h.allKeys, h.location.Key); prev != -1 {
			keys := slices.Clone(h.allKeys)
			keys[prev] = loc.Key
			h.allKeys = keys
		}
		h.setState(loc, Replace)
	})
	return commitErr
}

// Go asks the browser to traverse n entries. Listeners hear about it when
// the popstate event arrives.
func (h *BrowserHistory) Go(n int) error {
	if err := h.ready(); err != nil {
		return err
	}
	h.session.Go(n)
	return nil
}

func (h *BrowserHistory) GoBack() error {
	return h.Go(-1)
}

func (h *BrowserHistory) GoForward() error {
	return h.Go(1)
}

func (h *BrowserHistory) CreateHref(loc Location) string {
	return AddBasename(CreatePath(loc), h.opts.basename)
}

func (h *BrowserHistory) Close() {
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}
