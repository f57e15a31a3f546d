package history

import "reflect"

// Action describes what caused the current location.
type Action string

const (
	// Push adds a new entry on top of the current one.
	Push Action = "PUSH"
	// Replace overwrites the current entry.
	Replace Action = "REPLACE"
	// Pop is any change not made through Push or Replace in this session:
	// back/forward traversal, an edited hash, the initial load.
	Pop Action = "POP"
)

// Location is where the application currently is. Locations are values; a
// navigation produces a new one instead of modifying the current one.
type Location struct {
	Pathname string
	Search   string
	Hash     string
	State    any
	// Key identifies locations created by Push and Replace. The initial
	// browser location and every hash history location have no key.
	Key string
}

// Path returns pathname, search and hash joined into a single string.
func (l Location) Path() string {
	return CreatePath(l)
}

// Equal reports whether both locations point at the same entry with the
// same state.
func (l Location) Equal(o Location) bool {
	return l.Pathname == o.Pathname &&
		l.Search == o.Search &&
		l.Hash == o.Hash &&
		l.Key == o.Key &&
		reflect.DeepEqual(l.State, o.State)
}

// samePath ignores key and state; hash locations carry neither.
func samePath(a, b Location) bool {
	return a.Pathname == b.Pathname && a.Search == b.Search && a.Hash == b.Hash
}
