// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// LogKeys are active while the log panel has focus.
type LogKeys struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

// DetailsKeys scroll the details panel. They work regardless of focus,
// so they avoid every key the log panel uses.
type DetailsKeys struct {
	ScrollDown   key.Binding
	ScrollUp     key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding
	PageDown     key.Binding
	PageUp       key.Binding
	ToggleWrap   key.Binding
}

// AppKeys are global.
type AppKeys struct {
	CycleFormat key.Binding
	Reload      key.Binding
	SwitchFocus key.Binding
	Help        key.Binding
	Logs        key.Binding
	Quit        key.Binding
}

// PopupKeys dismiss a message popup.
type PopupKeys struct {
	Dismiss key.Binding
}

// Log is the log panel keymap.
var Log = LogKeys{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "previous change"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "next change"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "first change"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "last change"),
	),
}

// Details is the details panel keymap.
var Details = DetailsKeys{
	ScrollDown: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "scroll down"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "scroll up"),
	),
	HalfPageDown: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "half page down"),
	),
	HalfPageUp: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("ctrl+u", "half page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+f", "pgdown"),
		key.WithHelp("ctrl+f", "page down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+b", "pgup"),
		key.WithHelp("ctrl+b", "page up"),
	),
	ToggleWrap: key.NewBinding(
		key.WithKeys("W"),
		key.WithHelp("W", "toggle wrap"),
	),
}

// App is the global keymap.
var App = AppKeys{
	CycleFormat: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "cycle diff format"),
	),
	Reload: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "reload log"),
	),
	SwitchFocus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch panel"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Logs: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "debug log"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Popup is the message popup keymap.
var Popup = PopupKeys{
	Dismiss: key.NewBinding(
		key.WithKeys("esc", "enter", "q"),
		key.WithHelp("esc", "dismiss"),
	),
}

// StatusHelp adapts the keymaps to bubbles/help for the status line.
type StatusHelp struct{}

// ShortHelp returns keybindings for the status line.
func (StatusHelp) ShortHelp() []key.Binding {
	return []key.Binding{Log.Down, App.CycleFormat, Details.HalfPageDown, App.Help, App.Quit}
}

// FullHelp returns keybindings for the expanded status line.
func (StatusHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{Log.Up, Log.Down, Log.Top, Log.Bottom},
		{Details.ScrollDown, Details.ScrollUp, Details.HalfPageDown, Details.HalfPageUp, Details.PageDown, Details.PageUp, Details.ToggleWrap},
		{App.CycleFormat, App.Reload, App.SwitchFocus, App.Help, App.Logs, App.Quit},
	}
}
