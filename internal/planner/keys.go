package planner

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the planner.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Submit key.Binding
	Erase  key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the built-in key binding set. Letters are never bound
// because every screen takes typed input.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Erase: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("⌫", "erase"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Submit, k.Quit}
}
