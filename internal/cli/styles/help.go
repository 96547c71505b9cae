package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap defines keybindings that can be rendered as help.
type KeyMap interface {
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}

// PromptKeyMap defines keybindings for the permission prompt.
type PromptKeyMap struct {
	Allow     key.Binding
	AllowOnce key.Binding
	Deny      key.Binding
	Left      key.Binding
	Right     key.Binding
	Confirm   key.Binding
	Back      key.Binding
	Outside   key.Binding

	Enqueue     key.Binding
	CloseWindow key.Binding
	Background  key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k PromptKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Allow, k.AllowOnce, k.Deny, k.Back, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k PromptKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Allow, k.AllowOnce, k.Deny},
		{k.Left, k.Right, k.Confirm},
		{k.Back, k.Outside},
		{k.Enqueue, k.CloseWindow, k.Background},
		{k.Help, k.Quit},
	}
}

// DefaultPromptKeyMap returns the default prompt keybindings.
func DefaultPromptKeyMap() PromptKeyMap {
	return PromptKeyMap{
		Allow: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "allow"),
		),
		AllowOnce: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "allow this time"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "don't allow"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←/h", "previous button"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/l", "next button"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "press button"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Outside: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "click outside"),
		),
		Enqueue: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "new request"),
		),
		CloseWindow: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "close window"),
		),
		Background: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "background/foreground"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewStyledHelp creates a themed help model.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Text)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	return h
}
