package theme

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name string

	// GlamourStyle names the glamour standard style used for page bodies.
	GlamourStyle string

	// Core colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Text colors
	Text       lipgloss.Color
	TextDim    lipgloss.Color
	TextBright lipgloss.Color

	// UI element colors
	Background  lipgloss.Color
	Surface     lipgloss.Color
	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selected    lipgloss.Color

	// Semantic colors
	Link      lipgloss.Color
	LinkIndex lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Info      lipgloss.Color
}

var themes = map[string]Theme{
	"default":   Default,
	"gruvbox":   Gruvbox,
	"nord":      Nord,
	"solarized": Solarized,
}

var Default = Theme{
	Name:         "default",
	GlamourStyle: "dark",
	Primary:      lipgloss.Color("#7C3AED"),
	Secondary:    lipgloss.Color("#06B6D4"),
	Accent:       lipgloss.Color("#F59E0B"),
	Text:         lipgloss.Color("#E2E8F0"),
	TextDim:      lipgloss.Color("#64748B"),
	TextBright:   lipgloss.Color("#F8FAFC"),
	Background:   lipgloss.Color("#0F172A"),
	Surface:      lipgloss.Color("#1E293B"),
	Border:       lipgloss.Color("#334155"),
	BorderFocus:  lipgloss.Color("#7C3AED"),
	Selected:     lipgloss.Color("#4C1D95"),
	Link:         lipgloss.Color("#38BDF8"),
	LinkIndex:    lipgloss.Color("#F59E0B"),
	Error:        lipgloss.Color("#EF4444"),
	Success:      lipgloss.Color("#22C55E"),
	Warning:      lipgloss.Color("#F59E0B"),
	Info:         lipgloss.Color("#3B82F6"),
}

var Gruvbox = Theme{
	Name:         "gruvbox",
	GlamourStyle: "dark",
	Primary:      lipgloss.Color("#D65D0E"),
	Secondary:    lipgloss.Color("#458588"),
	Accent:       lipgloss.Color("#D79921"),
	Text:         lipgloss.Color("#EBDBB2"),
	TextDim:      lipgloss.Color("#928374"),
	TextBright:   lipgloss.Color("#FBF1C7"),
	Background:   lipgloss.Color("#282828"),
	Surface:      lipgloss.Color("#3C3836"),
	Border:       lipgloss.Color("#504945"),
	BorderFocus:  lipgloss.Color("#D65D0E"),
	Selected:     lipgloss.Color("#665C54"),
	Link:         lipgloss.Color("#83A598"),
	LinkIndex:    lipgloss.Color("#FABD2F"),
	Error:        lipgloss.Color("#FB4934"),
	Success:      lipgloss.Color("#B8BB26"),
	Warning:      lipgloss.Color("#FABD2F"),
	Info:         lipgloss.Color("#83A598"),
}

var Nord = Theme{
	Name:         "nord",
	GlamourStyle: "dark",
	Primary:      lipgloss.Color("#88C0D0"),
	Secondary:    lipgloss.Color("#81A1C1"),
	Accent:       lipgloss.Color("#EBCB8B"),
	Text:         lipgloss.Color("#ECEFF4"),
	TextDim:      lipgloss.Color("#4C566A"),
	TextBright:   lipgloss.Color("#ECEFF4"),
	Background:   lipgloss.Color("#2E3440"),
	Surface:      lipgloss.Color("#3B4252"),
	Border:       lipgloss.Color("#434C5E"),
	BorderFocus:  lipgloss.Color("#88C0D0"),
	Selected:     lipgloss.Color("#4C566A"),
	Link:         lipgloss.Color("#88C0D0"),
	LinkIndex:    lipgloss.Color("#EBCB8B"),
	Error:        lipgloss.Color("#BF616A"),
	Success:      lipgloss.Color("#A3BE8C"),
	Warning:      lipgloss.Color("#EBCB8B"),
	Info:         lipgloss.Color("#5E81AC"),
}

// Solarized is the only light palette; pages render with glamour's light style.
var Solarized = Theme{
	Name:         "solarized",
	GlamourStyle: "light",
	Primary:      lipgloss.Color("#268BD2"),
	Secondary:    lipgloss.Color("#2AA198"),
	Accent:       lipgloss.Color("#B58900"),
	Text:         lipgloss.Color("#586E75"),
	TextDim:      lipgloss.Color("#93A1A1"),
	TextBright:   lipgloss.Color("#073642"),
	Background:   lipgloss.Color("#FDF6E3"),
	Surface:      lipgloss.Color("#EEE8D5"),
	Border:       lipgloss.Color("#93A1A1"),
	BorderFocus:  lipgloss.Color("#268BD2"),
	Selected:     lipgloss.Color("#D3CBB7"),
	Link:         lipgloss.Color("#268BD2"),
	LinkIndex:    lipgloss.Color("#CB4B16"),
	Error:        lipgloss.Color("#DC322F"),
	Success:      lipgloss.Color("#859900"),
	Warning:      lipgloss.Color("#B58900"),
	Info:         lipgloss.Color("#6C71C4"),
}

// Current is the active theme.
var Current = Default

// Set changes the active theme by name.
func Set(name string) bool {
	if t, ok := themes[name]; ok {
		Current = t
		return true
	}
	return false
}

// List returns all available theme names in sorted order.
func List() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Next returns the name of the theme after the current one, wrapping around.
func Next() string {
	names := List()
	i := slices.Index(names, Current.Name)
	return names[(i+1)%len(names)]
}
