package history

// Listener is called after a transition commits.
type Listener func(loc Location, action Action)

// Hook decides whether a transition to next may proceed. It must call
// resolve exactly once, before returning or later; further calls are
// ignored.
type Hook func(next Location, action Action, resolve func(allow bool))

// Allow adapts a synchronous predicate into a Hook.
func Allow(pred func(next Location, action Action) bool) Hook {
	return func(next Location, action Action, resolve func(bool)) {
		resolve(pred(next, action))
	}
}

// Deny is a Hook that rejects every transition.
func Deny(_ Location, _ Action, resolve func(bool)) {
	resolve(false)
}
