package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings for the dashboard.
// It implements help.KeyMap for the footer.
type keyMap struct {
	Quit     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Overview key.Binding
	History  key.Binding
	Details  key.Binding
	Refresh  key.Binding
	Faster   key.Binding
	Slower   key.Binding
	Search   key.Binding
	Done     key.Binding
	Cancel   key.Binding
	Help     key.Binding
}

// ShortHelp returns the compact set of bindings shown by default.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.NextTab, k.Refresh, k.Slower, k.Faster, k.Quit}
}

// FullHelp returns the expanded groups shown when help is toggled.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Overview, k.History, k.Details},
		{k.Refresh, k.Faster, k.Slower},
		{k.Search, k.Done, k.Cancel},
		{k.Help, k.Quit},
	}
}

// searchHelp is shown while the process filter has focus.
type searchHelp struct{ k keyMap }

func (s searchHelp) ShortHelp() []key.Binding { return []key.Binding{s.k.Done, s.k.Cancel} }

func (s searchHelp) FullHelp() [][]key.Binding { return [][]key.Binding{s.ShortHelp()} }

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	NextTab:  key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next tab")),
	PrevTab:  key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "prev tab")),
	Overview: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "overview")),
	History:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "history")),
	Details:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "details")),
	Refresh:  key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh now")),
	Faster:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "shorter interval")),
	Slower:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "longer interval")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter processes")),
	Done:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply filter")),
	Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}
