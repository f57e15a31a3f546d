package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vidyasagar/navsurf/history"
	"github.com/vidyasagar/navsurf/internal/browser"
	"github.com/vidyasagar/navsurf/internal/storage"
	"github.com/vidyasagar/navsurf/internal/ui"
)

// pageCacheSize bounds the rendered page cache.
const pageCacheSize = 50

// change is a committed transition reported by the history listener.
type change struct {
	loc    history.Location
	action history.Action
}

// candidate is the transition most recently offered to the navigation
// prompt.
type candidate struct {
	next   history.Location
	action history.Action
}

// session holds the state every copy of the Model shares: the history, the
// simulated window behind it and the transition journal.
type session struct {
	kind    string
	hist    history.History
	window  *browser.Window        // nil for memory histories
	memory  *history.MemoryHistory // nil unless kind is memory
	fetcher *browser.Fetcher
	journal *storage.Journal
	cache   *lru.Cache[string, *browser.RenderedPage]
	logger  *slog.Logger

	confirm *ui.ConfirmDialog

	changes   []change
	candidate candidate
	unblock   func()
	gate      string // describes the installed hook, empty when unblocked
	unlisten  func()
}

// newSession builds the history selected by cfg.Mode.
func newSession(cfg *storage.Config, logger *slog.Logger, journal *storage.Journal) (*session, error) {
	cache, err := lru.New[string, *browser.RenderedPage](pageCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating page cache: %w", err)
	}
	confirm := ui.NewConfirmDialog()
	s := &session{
		kind:    cfg.Mode,
		fetcher: browser.NewFetcher(),
		journal: journal,
		cache:   cache,
		logger:  logger,
		confirm: &confirm,
	}

	opts := []history.Option{
		history.WithBasename(cfg.Basename),
		history.WithKeyLength(cfg.KeyLength),
		history.WithLogger(logger),
		history.WithConfirm(s.confirmTransition),
	}

	switch cfg.Mode {
	case storage.ModeMemory:
		mem, err := history.NewMemoryHistory(append(opts, history.WithInitialEntries(cfg.Homepage))...)
		if err != nil {
			return nil, fmt.Errorf("creating memory history: %w", err)
		}
		s.hist, s.memory = mem, mem
	case storage.ModeHash:
		ht, err := history.ParseHashType(cfg.HashType)
		if err != nil {
			return nil, err
		}
		s.window = browser.NewWindow("/#" + ht.Encode(history.AddBasename(cfg.Homepage, history.NormalizeBasename(cfg.Basename))))
		h, err := history.NewHashHistory(s.window, append(opts, history.WithHashType(ht))...)
		if err != nil {
			return nil, fmt.Errorf("creating hash history: %w", err)
		}
		s.hist = h
	default:
		s.kind = storage.ModeBrowser
		s.window = browser.NewWindow(history.AddBasename(cfg.Homepage, history.NormalizeBasename(cfg.Basename)))
		h, err := history.NewBrowserHistory(s.window, opts...)
		if err != nil {
			return nil, fmt.Errorf("creating browser history: %w", err)
		}
		s.hist = h
	}

	s.unlisten = s.hist.Listen(s.onChange)
	s.settle()
	return s, nil
}

func (s *session) onChange(loc history.Location, action history.Action) {
	s.changes = append(s.changes, change{loc: loc, action: action})
	s.record(action, loc, storage.OutcomeCommitted)
}

// confirmTransition is the ConfirmFunc of the history. The decision is left
// to the user through the confirm dialog.
func (s *session) confirmTransition(message string, resolve func(bool)) {
	c := s.candidate
	s.confirm.Open(message, func(ok bool) {
		if !ok {
			s.record(c.action, c.next, storage.OutcomeDenied)
		}
		resolve(ok)
	})
}

// settle delivers queued window events and returns the last location
// committed since the previous call.
func (s *session) settle() (change, bool) {
	if s.window != nil {
		s.window.Flush()
	}
	if len(s.changes) == 0 {
		return change{}, false
	}
	last := s.changes[len(s.changes)-1]
	s.changes = s.changes[:0]
	return last, true
}

// run performs a history call and journals a rejection when another
// decision is still pending.
func (s *session) run(action history.Action, path string, fn func() error) error {
	err := fn()
	if errors.Is(err, history.ErrTransitionPending) {
		s.record(action, history.Location{Pathname: path}, storage.OutcomeRejected)
	}
	return err
}

func (s *session) push(path string, state any) error {
	return s.run(history.Push, path, func() error { return s.hist.Push(path, state) })
}

func (s *session) replace(path string, state any) error {
	return s.run(history.Replace, path, func() error { return s.hist.Replace(path, state) })
}

func (s *session) goTo(n int) error {
	return s.run(history.Pop, fmt.Sprintf("go(%d)", n), func() error { return s.hist.Go(n) })
}

// prompt installs the navigation prompt. An empty message asks a generated
// question; popOnly lets PUSH and REPLACE through.
func (s *session) prompt(message string, popOnly bool) {
	s.clearGate()
	s.unblock = s.hist.BlockPrompt(func(next history.Location, action history.Action) string {
		if popOnly && action != history.Pop {
			return ""
		}
		s.candidate = candidate{next: next, action: action}
		if message != "" {
			return message
		}
		return fmt.Sprintf("Leave %s for %s (%s)?", s.hist.Location().Path(), next.Path(), action)
	})
	switch {
	case popOnly:
		s.gate = "prompt on POP"
	case message != "":
		s.gate = "prompt: " + message
	default:
		s.gate = "prompt"
	}
}

// guard installs a hook refusing every transition into prefix.
func (s *session) guard(prefix string) {
	s.install(history.Allow(func(next history.Location, _ history.Action) bool {
		return !history.HasBasename(next.Pathname, prefix)
	}), "guard "+prefix)
}

// deny installs a hook refusing every transition.
func (s *session) deny() {
	s.install(history.Deny, "deny all")
}

func (s *session) install(hook history.Hook, label string) {
	s.clearGate()
	s.unblock = s.hist.Block(func(next history.Location, action history.Action, resolve func(bool)) {
		hook(next, action, func(ok bool) {
			if !ok {
				s.record(action, next, storage.OutcomeDenied)
			}
			resolve(ok)
		})
	})
	s.gate = label
}

func (s *session) clearGate() {
	if s.unblock != nil {
		s.unblock()
		s.unblock = nil
	}
	s.gate = ""
}

func (s *session) blocked() bool {
	return s.unblock != nil
}

func (s *session) record(action history.Action, loc history.Location, outcome storage.Outcome) {
	if s.journal == nil {
		return
	}
	_, err := s.journal.Record(context.Background(), storage.JournalEntry{
		Action:     action,
		Path:       loc.Path(),
		Key:        loc.Key,
		Outcome:    outcome,
		SessionLen: s.hist.Len(),
	})
	if err != nil {
		s.logger.Error("recording transition", "path", loc.Path(), "err", err)
	}
}

// position returns the current index and length of the session stack.
func (s *session) position() (int, int) {
	switch {
	case s.memory != nil:
		return s.memory.Index(), s.memory.Len()
	case s.window != nil:
		return s.window.Index(), s.window.Len()
	}
	return 0, s.hist.Len()
}

// entries returns the session stack as the panel shows it.
func (s *session) entries() []ui.SessionEntry {
	if s.memory != nil {
		locs := s.memory.Entries()
		out := make([]ui.SessionEntry, len(locs))
		for i, loc := range locs {
			out[i] = ui.SessionEntry{Path: loc.Path(), Key: loc.Key}
		}
		return out
	}
	if s.window == nil {
		return nil
	}
	wins := s.window.Entries()
	out := make([]ui.SessionEntry, len(wins))
	for i, e := range wins {
		out[i] = ui.SessionEntry{Path: e.URL}
	}
	return out
}

// editHash simulates the user typing a fragment into the address bar.
func (s *session) editHash(frag string) error {
	if s.window == nil || s.kind != storage.ModeHash {
		return fmt.Errorf("editing the fragment needs a hash history, have %s", s.kind)
	}
	s.window.SetHash(strings.TrimPrefix(frag, "#"))
	return nil
}

func (s *session) close() {
	s.clearGate()
	if s.unlisten != nil {
		s.unlisten()
	}
	s.hist.Close()
}
