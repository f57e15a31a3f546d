package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for navsurf.
type KeyMap struct {
	// Scrolling
	ScrollDown   key.Binding
	ScrollUp     key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding
	GotoTop      key.Binding
	GotoBottom   key.Binding

	// History
	Push       key.Binding
	Replace    key.Binding
	Back       key.Binding
	Forward    key.Binding
	Reload     key.Binding
	FollowLink key.Binding

	// Gate
	ToggleBlock key.Binding
	Allow       key.Binding
	Refuse      key.Binding

	// Modes and views
	CommandMode  key.Binding
	SearchMode   key.Binding
	SessionPanel key.Binding
	Journal      key.Binding
	Leader       key.Binding
	Select       key.Binding
	Dismiss      key.Binding

	Quit key.Binding
	Help key.Binding
}

// DefaultKeyMap returns the default vim-style keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "scroll down"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "scroll up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("Ctrl+d", "half page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("Ctrl+u", "half page up"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "go to top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		Push: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "push path"),
		),
		Replace: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "replace path"),
		),
		Back: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "go back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "go forward"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload page"),
		),
		FollowLink: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "follow link"),
		),
		ToggleBlock: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "toggle navigation prompt"),
		),
		Allow: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "allow transition"),
		),
		Refuse: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/Esc", "stay"),
		),
		CommandMode: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command mode"),
		),
		SearchMode: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search journal"),
		),
		SessionPanel: key.NewBinding(
			key.WithKeys("s", "ctrl+h"),
			key.WithHelp("s", "session stack"),
		),
		Journal: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "transition journal"),
		),
		Leader: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "leader"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "select"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("Esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
