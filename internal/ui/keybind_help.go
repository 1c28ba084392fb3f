package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func newHelpModel() help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true)
	h.Styles.ShortDesc = Styles.Muted
	h.Styles.ShortSeparator = Styles.Muted
	h.Styles.FullKey = h.Styles.ShortKey
	h.Styles.FullDesc = Styles.Muted
	h.Styles.FullSeparator = Styles.Muted
	return h
}

// RenderKeybindHelp produces the transient help view shown after SPC.
// When the handler has a longer buffer (e.g. "SPC l"), shows next-level hints.
func RenderKeybindHelp(keyHandler *KeyHandler) string {
	if keyHandler == nil {
		return ""
	}
	currentSeq := ""
	if len(keyHandler.Buffer) > 0 {
		currentSeq = strings.Join(keyHandler.Buffer, " ")
	}
	hints := keyHandler.Registry.LeaderHints(currentSeq)
	if len(hints) == 0 {
		return ""
	}

	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bindings := make([]key.Binding, 0, len(keys)+1)
	for _, k := range keys {
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, hints[k]),
		))
	}
	bindings = append(bindings, key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1).
		MarginTop(1)

	prefix := "SPC"
	if currentSeq != "" {
		prefix = currentSeq
	}
	return boxStyle.Render(Styles.Muted.Render(prefix) + " " + newHelpModel().ShortHelpView(bindings))
}

// deckKeyMap adapts the registry plus the deck's own navigation keys to
// help.KeyMap.
type deckKeyMap struct {
	registry *KeybindRegistry
}

var navBindings = []key.Binding{
	key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "connect")),
	key.NewBinding(key.WithKeys("1"), key.WithHelp("1-9", "connect nth clip")),
}

// ShortHelp implements help.KeyMap.
func (k deckKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		navBindings[4],
		key.NewBinding(key.WithKeys(" "), key.WithHelp("SPC", "commands")),
		key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	}
}

// FullHelp implements help.KeyMap.
func (k deckKeyMap) FullHelp() [][]key.Binding {
	cols := [][]key.Binding{navBindings}
	if k.registry != nil {
		if b := k.registry.Bindings(); len(b) > 0 {
			cols = append(cols, b)
		}
	}
	return cols
}
