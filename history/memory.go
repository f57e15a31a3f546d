package history

import "slices"

// MemoryHistory keeps its entries in memory. It needs no browser and is the
// variant used in tests and non-browser hosts.
type MemoryHistory struct {
	core
	entries []Location
	index   int
}

// NewMemoryHistory returns a history seeded from WithInitialEntries, or with
// a single "/" entry.
func NewMemoryHistory(opts ...Option) (*MemoryHistory, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	paths := o.initialEntries
	if len(paths) == 0 {
		paths = []string{"/"}
	}

	h := &MemoryHistory{core: newCore(o)}
	for _, path := range paths {
		loc, err := newLocation(path, nil, h.newKey(), "", o.decode)
		if err != nil {
			return nil, err
		}
		h.entries = append(h.entries, loc)
	}

	h.index = clamp(o.initialIndex, 0, len(h.entries)-1)
	h.location = h.entries[h.index]
	return h, nil
}

func (h *MemoryHistory) newKey() string {
	return newKey(h.opts.keyLength, func(key string) bool {
		return slices.ContainsFunc(h.entries, func(e Location) bool { return e.Key == key })
	})
}

func (h *MemoryHistory) Len() int {
	return len(h.entries)
}

// Index returns the position of the current entry.
func (h *MemoryHistory) Index() int {
	return h.index
}

// Entries returns a copy of the entry stack.
func (h *MemoryHistory) Entries() []Location {
	return slices.Clone(h.entries)
}

// CanGo reports whether Go(n) would land on an existing entry.
func (h *MemoryHistory) CanGo(n int) bool {
	next := h.index + n
	return next >= 0 && next < len(h.entries)
}

func (h *MemoryHistory) Push(path string, state any) error {
	if err := h.ready(); err != nil {
		return err
	}
	loc, err := h.createLocation(path, state, h.newKey())
	if err != nil {
		return err
	}
	h.push(loc)
	return nil
}

func (h *MemoryHistory) PushLocation(to Location) error {
	if err := h.ready(); err != nil {
		return err
	}
	loc, err := h.createLocationFrom(to, h.newKey())
	if err != nil {
		return err
	}
	h.push(loc)
	return nil
}

func (h *MemoryHistory) push(loc Location) {
	h.tm.confirmTransitionTo(loc, Push, func(ok bool) {
		if !ok {
			return
		}
		next := h.index + 1
		entries := slices.Clone(h.entries[:next])
		h.entries = append(entries, loc)
		h.index = next
		h.setState(loc, Push)
	})
}

func (h *MemoryHistory) Replace(path string, state any) error {
	if err := h.ready(); err != nil {
		return err
	}
	loc, err := h.createLocation(path, state, h.newKey())
	if err != nil {
		return err
	}
	h.replace(loc)
	return nil
}

func (h *MemoryHistory) ReplaceLocation(to Location) error {
	if err := h.ready(); err != nil {
		return err
	}
	loc, err := h.createLocationFrom(to, h.newKey())
	if err != nil {
		return err
	}
	h.replace(loc)
	return nil
}

func (h *MemoryHistory) replace(loc Location) {
	h.tm.confirmTransitionTo(loc, Replace, func(ok bool) {
		if !ok {
			return
		}
		entries := slices.Clone(h.entries)
		entries[h.index] = loc
		h.entries = entries
		h.setState(loc, Replace)
	})
}

// Go moves n entries, clamped to the stack. Moving nowhere is a no-op.
func (h *MemoryHistory) Go(n int) error {
	if err := h.ready(); err != nil {
		return err
	}
	next := clamp(h.index+n, 0, len(h.entries)-1)
	if next == h.index {
		return nil
	}
	loc := h.entries[next]
	h.tm.confirmTransitionTo(loc, Pop, func(ok bool) {
		if !ok {
			return
		}
		h.index = next
		h.setState(loc, Pop)
	})
	return nil
}

func (h *MemoryHistory) GoBack() error {
	return h.Go(-1)
}

func (h *MemoryHistory) GoForward() error {
	return h.Go(1)
}

func (h *MemoryHistory) CreateHref(loc Location) string {
	return CreatePath(loc)
}

// Close is a no-op; a MemoryHistory has no adapter.
func (h *MemoryHistory) Close() {}

func clamp(n, lo, hi int) int {
	return min(max(n, lo), hi)
}
