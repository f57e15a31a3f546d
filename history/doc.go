// Package history manages session navigation state for single-page
// applications.
//
// A History tracks the current Location, notifies listeners when it changes
// and lets a single hook veto a transition before it commits. Three variants
// share the same API:
//
//   - BrowserHistory drives a native session-history stack (pushState,
//     replaceState, popstate) through the SessionHistory interface.
//   - HashHistory keeps the whole location in the URL fragment through the
//     HashLocation interface, using one of the hashbang, noslash or slash
//     encodings.
//   - MemoryHistory keeps entries in memory and needs no browser at all.
//
// # Basic Usage
//
//	h, err := history.NewMemoryHistory()
//	if err != nil {
//	    return err
//	}
//
//	unlisten := h.Listen(func(loc history.Location, action history.Action) {
//	    fmt.Println(action, loc.Pathname)
//	})
//	defer unlisten()
//
//	_ = h.Push("/settings?tab=profile", nil)
//	_ = h.GoBack()
//
// # Blocking Transitions
//
// A hook receives the candidate location and must call resolve exactly once,
// either before returning or later (for example after the user answers a
// dialog):
//
//	unblock := h.Block(func(next history.Location, action history.Action, resolve func(bool)) {
//	    resolve(!formIsDirty)
//	})
//	defer unblock()
//
// BlockMessage is shorthand for a hook that hands a message to the configured
// ConfirmFunc.
//
// A History is not safe for concurrent use. Calls are expected to come from a
// single event loop, the same one that delivers browser events.
package history
