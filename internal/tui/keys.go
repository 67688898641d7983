// ABOUTME: Key bindings and context-sensitive help for the terminal UI
// ABOUTME: Each screen shows only the bindings that do something there
package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Enter   key.Binding
	Select  key.Binding
	Number  key.Binding
	Submit  key.Binding
	Abandon key.Binding
	Reset   key.Binding
	Yes     key.Binding
	No      key.Binding
	Quit    key.Binding
	Force   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next:    key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next group")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev group")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
		Select:  key.NewBinding(key.WithKeys("enter", " ", "space"), key.WithHelp("enter/space", "select")),
		Number:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "ask")),
		Submit:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next phase")),
		Abandon: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to dashboard")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset progress")),
		Yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		No:      key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
		Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Force:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// bindings is a help.KeyMap over a fixed list
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding  { return b }
func (b bindings) FullHelp() [][]key.Binding { return [][]key.Binding{b} }
