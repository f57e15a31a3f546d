package browser

// Entry is one session-history entry of a window.
type Entry struct {
	URL   string
	State any
}

// SessionStack is a window's back/forward list of entries.
type SessionStack struct {
	entries []Entry
	pos     int // current position in the stack
}

// NewSessionStack creates a stack holding a single entry.
func NewSessionStack(initial Entry) *SessionStack {
	return &SessionStack{
		entries: []Entry{initial},
		pos:     0,
	}
}

// Push adds a new entry, truncating any forward entries.
func (s *SessionStack) Push(e Entry) {
	// If we're not at the end, truncate forward history.
	if s.pos < len(s.entries)-1 {
		s.entries = s.entries[:s.pos+1]
	}
	s.entries = append(s.entries, e)
	s.pos = len(s.entries) - 1
}

// Replace overwrites the current entry.
func (s *SessionStack) Replace(e Entry) {
	s.entries[s.pos] = e
}

// Move shifts the cursor by delta. A move past either end is ignored and
// reports false, as browsers silently ignore it.
func (s *SessionStack) Move(delta int) bool {
	next := s.pos + delta
	if delta == 0 || next < 0 || next >= len(s.entries) {
		return false
	}
	s.pos = next
	return true
}

// Current returns the current entry.
func (s *SessionStack) Current() Entry {
	return s.entries[s.pos]
}

// CanGoBack reports whether there is a previous entry.
func (s *SessionStack) CanGoBack() bool {
	return s.pos > 0
}

// CanGoForward reports whether there is a next entry.
func (s *SessionStack) CanGoForward() bool {
	return s.pos < len(s.entries)-1
}

// Len returns the total number of entries.
func (s *SessionStack) Len() int {
	return len(s.entries)
}

// Index returns the position of the current entry.
func (s *SessionStack) Index() int {
	return s.pos
}

// Entries returns a copy of the stack.
func (s *SessionStack) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
