package history

import (
	"fmt"
	"log/slog"
	"slices"
)

// HashLocation is the fragment part of a browser window's location.
type HashLocation interface {
	// Hash returns the current fragment without the leading '#'.
	Hash() string
	// PushHash navigates to fragment, adding an entry.
	PushHash(fragment string) error
	// ReplaceHash navigates to fragment, replacing the current entry.
	ReplaceHash(fragment string) error
	Go(delta int)
	Len() int
	OnHashChange(fn func()) (cancel func())
}

// A HashLocation may implement traversalChecker to report that traversal
// reloads the page.
type traversalChecker interface {
	CanGoWithoutReload() bool
}

// HashHistory keeps the whole location in the URL fragment. Hash locations
// carry neither state nor keys.
type HashHistory struct {
	core
	hashLoc HashLocation
	coder   HashType

	// allPaths mirrors the paths of the entries this history knows.
	allPaths []string
	// ignorePath is the path of a hash change this history made itself.
	ignorePath    string
	ignoring      bool
	pendingRevert bool
	cancel        func()
}

func NewHashHistory(hashLoc HashLocation, opts ...Option) (*HashHistory, error) {
	if hashLoc == nil {
		return nil, ErrNilAdapter
	}
	if tc, ok := hashLoc.(traversalChecker); ok && !tc.CanGoWithoutReload() {
		return nil, ErrTraversalUnsupported
	}
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	h := &HashHistory{core: newCore(o), hashLoc: hashLoc, coder: o.hashType}

	fragment := hashLoc.Hash()
	if encoded := h.coder.Encode(fragment); fragment != encoded {
		if err := hashLoc.ReplaceHash(encoded); err != nil {
			return nil, fmt.Errorf("normalizing hash: %w", err)
		}
	}

	loc, err := h.currentLocation()
	if err != nil {
		return nil, err
	}
	h.location = loc
	h.allPaths = []string{CreatePath(loc)}
	h.cancel = hashLoc.OnHashChange(h.handleHashChange)
	return h, nil
}

func (h *HashHistory) currentLocation() (Location, error) {
	return h.domLocation(h.coder.Decode(h.hashLoc.Hash()), nil, "")
}

func (h *HashHistory) Len() int {
	return h.hashLoc.Len()
}

func (h *HashHistory) handleHashChange() {
	h.tm.deferOrRun(h.handleChange)
}

func (h *HashHistory) handleChange() {
	fragment := h.hashLoc.Hash()
	if encoded := h.coder.Encode(fragment); fragment != encoded {
		// The replacement fires another hashchange.
		if err := h.hashLoc.ReplaceHash(encoded); err != nil {
			h.tm.logger.Error("history: normalizing hash", slog.String("path", fragment), slog.Any("error", err))
		}
		return
	}

	loc, err := h.currentLocation()
	if err != nil {
		h.tm.logger.Error("history: ignoring hashchange", slog.String("path", fragment), slog.Any("error", err))
		return
	}
	if !h.pendingRevert && samePath(h.location, loc) {
		return
	}
	if h.ignoring && h.ignorePath == CreatePath(loc) {
		return
	}
	h.ignoring = false
	h.ignorePath = ""
	h.handlePop(loc)
}

func (h *HashHistory) handlePop(loc Location) {
	if h.pendingRevert {
		h.pendingRevert = false
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

// revertPop returns the browser to the current location from whichever
// entry it shows now.
func (h *HashHistory) revertPop() {
	h.tm.discardDeferred()
	at, err := h.currentLocation()
	if err != nil {
		h.tm.logger.Error("history: reverting denied POP", slog.String("path", h.hashLoc.Hash()), slog.Any("error", err))
		return
	}
	to := max(lastIndexOf(h.allPaths, CreatePath(h.location)), 0)
	from := max(lastIndexOf(h.allPaths, CreatePath(at)), 0)
	if delta := to - from; delta != 0 {
		h.pendingRevert = true
		h.hashLoc.Go(delta)
	}
}

func (h *HashHistory) Push(path string, state any) error {
	if err := h.ready(); err != nil {
		return err
	}
	h.warnState(state, Push)
	loc, err := h.createLocation(path, nil, "")
	if err != nil {
		return err
	}
	return h.push(loc)
}

func (h *HashHistory) PushLocation(to Location) error {
	if err := h.ready(); err != nil {
		return err
	}
	h.warnState(to.State, Push)
	to.State = nil
	loc, err := h.createLocationFrom(to, "")
	if err != nil {
		return err
	}
	return h.push(loc)
}

func (h *HashHistory) warnState(state any, action Action) {
	if state != nil {
		h.warn("history: hash history cannot keep state; it is ignored",
			slog.String("action", string(action)))
	}
}

func (h *HashHistory) encode(loc Location) string {
	return h.coder.Encode(AddBasename(CreatePath(loc), h.opts.basename))
}

func (h *HashHistory) push(loc Location) error {
	var commitErr error
	h.tm.confirmTransitionTo(loc, Push, func(ok bool) {
		if !ok {
			return
		}
		path := CreatePath(loc)
		encoded := h.encode(loc)
		if h.hashLoc.Hash() == encoded {
			h.warn("history: hash history cannot push the same path; a new entry will not be added",
				slog.String("path", path))
			h.setState(loc, Push)
			return
		}

		h.ignorePath, h.ignoring = path, true
		if err := h.hashLoc.PushHash(encoded); err != nil {
			h.ignorePath, h.ignoring = "", false
			commitErr = fmt.Errorf("pushing hash: %w", err)
			h.tm.logger.Error("history: push failed", slog.String("path", path), slog.Any("error", err))
			return
		}

		prev := lastIndexOf(h.allPaths, CreatePath(h.location))
		paths := slices.Clone(h.allPaths[:prev+1])
		h.allPaths = append(paths, path)
		h.setState(loc, Push)
	})
	return commitErr
}

func (h *HashHistory) Replace(path string, state any) error {
	if err := h.ready(); err != nil {
		return err
	}
	h.warnState(state, Replace)
	loc, err := h.createLocation(path, nil, "")
	if err != nil {
		return err
	}
	return h.replace(loc)
}

func (h *HashHistory) ReplaceLocation(to Location) error {
	if err := h.ready(); err != nil {
		return err
	}
	h.warnState(to.State, Replace)
	to.State = nil
	loc, err := h.createLocationFrom(to, "")
	if err != nil {
		return err
	}
	return h.replace(loc)
}

func (h *HashHistory) replace(loc Location) error {
	var commitErr error
	h.tm.confirmTransitionTo(loc, Replace, func(ok bool) {
		if !ok {
			return
		}
		path := CreatePath(loc)
		encoded := h.encode(loc)
		if h.hashLoc.Hash() != encoded {
			h.ignorePath, h.ignoring = path, true
			if err := h.hashLoc.ReplaceHash(encoded); err != nil {
				h.ignorePath, h.ignoring = "", false
				commitErr = fmt.Errorf("replacing hash: %w", err)
				h.tm.logger.Error("history: replace failed", slog.String("path", path), slog.Any("error", err))
				return
			}
		} else {
			h.warn("history: hash history cannot replace the same path",
				slog.String("path", path))
		}

		if prev := slices.Index(h.allPaths, CreatePath(h.location)); prev != -1 {
			paths := slices.Clone(h.allPaths)
			paths[prev] = path
			h.allPaths = paths
		}
		h.setState(loc, Replace)
	})
	return commitErr
}

// Go asks the browser to traverse n entries. Listeners hear about it when
// the hashchange event arrives.
func (h *HashHistory) Go(n int) error {
	if err := h.ready(); err != nil {
		return err
	}
	h.hashLoc.Go(n)
	return nil
}

func (h *HashHistory) GoBack() error {
	return h.Go(-1)
}

func (h *HashHistory) GoForward() error {
	return h.Go(1)
}

func (h *HashHistory) CreateHref(loc Location) string {
	return "#" + h.encode(loc)
}

func (h *HashHistory) Close() {
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}
