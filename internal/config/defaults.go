package config

// DefaultPalette is the colour set the random provider draws from
// (Catppuccin Mocha accents).
func DefaultPalette() []string {
	return []string{
		"#f38ba8", // red
		"#fab387", // peach
		"#f9e2af", // yellow
		"#a6e3a1", // green
		"#94e2d5", // teal
		"#89b4fa", // blue
		"#cba6f7", // mauve
		"#f5c2e7", // pink
	}
}

// KeyBindings defines the mapping of actions to keys.
// Kept separate so it can later be made configurable via config file.
type KeyBindings struct {
	Quit     string
	Help     string
	Tab      string
	ShiftTab string
	Up       string
	Down     string
	PageUp   string
	PageDown string
	Home     string
	End      string
	Back     string
	Add      string
	Insert   string
	RemoveAt string
	Remove   string
	Edit     string
	Clear    string
	Count    string
	Reload   string
	Reset    string
	Inspect  string
	Spacers  string
}

// DefaultKeyBindings returns the default key bindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit:     "q",
		Help:     "?",
		Tab:      "tab",
		ShiftTab: "shift+tab",
		Up:       "k",
		Down:     "j",
		PageUp:   "pgup",
		PageDown: "pgdown",
		Home:     "g",
		End:      "G",
		Back:     "esc",
		Add:      "a",
		Insert:   "i",
		RemoveAt: "d",
		Remove:   "x",
		Edit:     "e",
		Clear:    "c",
		Count:    "n",
		Reload:   "r",
		Reset:    "0",
		Inspect:  "v",
		Spacers:  "s",
	}
}
