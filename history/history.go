package history

// History is the navigation API shared by BrowserHistory, HashHistory and
// MemoryHistory.
type History interface {
	// Location returns the current location.
	Location() Location
	// Action returns the action that produced the current location.
	Action() Action
	// Len returns the number of entries in the session stack.
	Len() int

	Push(path string, state any) error
	PushLocation(loc Location) error
	Replace(path string, state any) error
	ReplaceLocation(loc Location) error
	Go(n int) error
	GoBack() error
	GoForward() error

	// Listen registers fn for committed transitions. It is not called on
	// registration. The returned func unregisters it.
	Listen(fn Listener) func()
	// Block installs the single transition hook. Block(nil) clears it.
	Block(hook Hook) func()
	BlockMessage(message string) func()
	BlockPrompt(message func(next Location, action Action) string) func()

	// Pending reports whether a hook is still deciding on a transition.
	Pending() bool

	CreateHref(loc Location) string
	// Close detaches the history from its adapter.
	Close()
}

var (
	_ History = (*BrowserHistory)(nil)
	_ History = (*HashHistory)(nil)
	_ History = (*MemoryHistory)(nil)
)

// core holds the state common to every variant.
type core struct {
	opts     *options
	tm       *transitionManager
	location Location
	action   Action
}

func newCore(o *options) core {
	return core{
		opts:   o,
		tm:     newTransitionManager(o.confirm, o.logger),
		action: Pop,
	}
}

func (c *core) Location() Location {
	return c.location
}

func (c *core) Action() Action {
	return c.action
}

func (c *core) Listen(fn Listener) func() {
	return c.tm.listen(fn)
}

func (c *core) Block(hook Hook) func() {
	return c.tm.setHook(hook)
}

func (c *core) BlockMessage(message string) func() {
	return c.tm.setHook(c.tm.promptHook(func(Location, Action) string {
		return message
	}))
}

func (c *core) BlockPrompt(message func(next Location, action Action) string) func() {
	if message == nil {
		return c.tm.setHook(nil)
	}
	return c.tm.setHook(c.tm.promptHook(message))
}

// Pending reports whether a hook is still deciding on a transition.
func (c *core) Pending() bool {
	return c.tm.pending
}

func (c *core) ready() error {
	if c.tm.pending {
		return ErrTransitionPending
	}
	return nil
}

func (c *core) setState(loc Location, action Action) {
	c.location = loc
	c.action = action
	c.tm.notify(loc, action)
}

func (c *core) createLocation(path string, state any, key string) (Location, error) {
	return newLocation(path, state, key, c.location.Pathname, c.opts.decode)
}

func (c *core) createLocationFrom(partial Location, key string) (Location, error) {
	return newLocationFrom(partial, nil, key, c.location.Pathname, c.opts.decode)
}

func (c *core) warn(msg string, args ...any) {
	c.tm.logger.Warn(msg, args...)
}

// domLocation builds a location from a path read from the browser,
// stripping the configured basename.
func (c *core) domLocation(path string, state any, key string) (Location, error) {
	if b := c.opts.basename; b != "" {
		if !HasBasename(path, b) {
			c.warn("history: the path does not begin with the basename",
				"path", path, "basename", b)
		}
		path = StripBasename(path, b)
	}
	return newLocation(path, state, key, "", c.opts.decode)
}

func lastIndexOf(items []string, s string) int {
	for i := len(items) - 1; i >= 0; i-- {
		if items[i] == s {
			return i
		}
	}
	return -1
}
