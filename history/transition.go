package history

import (
	"log/slog"
	"slices"
)

type hookSlot struct {
	fn Hook
}

type listenerEntry struct {
	fn     Listener
	active bool
}

// transitionManager owns the listener list, the hook slot and the pending
// gate shared by every History variant.
type transitionManager struct {
	hook      *hookSlot
	listeners []*listenerEntry
	confirm   ConfirmFunc
	logger    *slog.Logger

	pending  bool
	deferred []func()
}

func newTransitionManager(confirm ConfirmFunc, logger *slog.Logger) *transitionManager {
	return &transitionManager{confirm: confirm, logger: logger}
}

// setHook installs fn, replacing any previous hook. The returned func clears
// the slot only while fn is still the installed hook.
func (tm *transitionManager) setHook(fn Hook) func() {
	if fn == nil {
		tm.hook = nil
		return func() {}
	}
	if tm.hook != nil {
		tm.logger.Warn("history: a previous hook was replaced; only one hook is active at a time")
	}
	slot := &hookSlot{fn: fn}
	tm.hook = slot
	return func() {
		if tm.hook == slot {
			tm.hook = nil
		}
	}
}

// promptHook turns a message producer into a Hook that asks the confirm
// function. An empty message allows the transition.
func (tm *transitionManager) promptHook(message func(Location, Action) string) Hook {
	return func(next Location, action Action, resolve func(bool)) {
		msg := message(next, action)
		if msg == "" {
			resolve(true)
			return
		}
		if tm.confirm == nil {
			tm.logger.Warn("history: no confirm function configured, allowing transition",
				slog.String("message", msg),
				slog.String("action", string(action)),
				slog.String("path", CreatePath(next)))
			resolve(true)
			return
		}
		tm.confirm(msg, resolve)
	}
}

func (tm *transitionManager) listen(fn Listener) func() {
	entry := &listenerEntry{fn: fn, active: true}
	tm.listeners = append(tm.listeners, entry)
	return func() {
		if !entry.active {
			return
		}
		entry.active = false
		tm.listeners = slices.DeleteFunc(slices.Clone(tm.listeners), func(e *listenerEntry) bool {
			return e == entry
		})
	}
}

// notify calls the listeners registered when it starts. A listener removed
// during the round is skipped.
func (tm *transitionManager) notify(loc Location, action Action) {
	snapshot := slices.Clone(tm.listeners)
	for _, l := range snapshot {
		if l.active {
			l.fn(loc, action)
		}
	}
}

// confirmTransitionTo runs the gate for a transition to next and reports the decision
// through done. Without a hook the decision is immediate.
func (tm *transitionManager) confirmTransitionTo(next Location, action Action, done func(ok bool)) {
	if tm.hook == nil {
		done(true)
		return
	}

	tm.pending = true
	settled := false
	tm.hook.fn(next, action, func(allow bool) {
		if settled {
			tm.logger.Debug("history: transition already resolved",
				slog.String("action", string(action)),
				slog.String("path", CreatePath(next)))
			return
		}
		settled = true
		tm.pending = false
		done(allow)
		tm.drain()
	})
}

// deferOrRun runs fn now, or once the pending decision resolves.
func (tm *transitionManager) deferOrRun(fn func()) {
	if tm.pending {
		tm.deferred = append(tm.deferred, fn)
		return
	}
	fn()
}

// discardDeferred drops queued browser events. A denied POP sends the
// browser back to the committed entry, which undoes them.
func (tm *transitionManager) discardDeferred() {
	if len(tm.deferred) > 0 {
		tm.logger.Debug("history: dropping events queued behind a denied POP", slog.Int("count", len(tm.deferred)))
	}
	tm.deferred = nil
}

func (tm *transitionManager) drain() {
	for !tm.pending && len(tm.deferred) > 0 {
		next := tm.deferred[0]
		tm.deferred = tm.deferred[1:]
		next()
	}
}
