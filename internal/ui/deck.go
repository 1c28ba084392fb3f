package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"clipdeck/internal/composition"
	"clipdeck/internal/ui/textutil"
	"clipdeck/internal/viewer"
)

const (
	defaultColumns  = 3
	minButtonWidth  = 8
	maxButtonWidth  = 24
	defaultWidth    = 80
	connectedMarker = "● "
)

// DeckView renders the active layer's clips as a grid of buttons.
// It reads viewer state but never changes it.
type DeckView struct {
	viewer   *viewer.Viewer
	registry *KeybindRegistry
	Columns  int
	Cursor   int
	width    int

	spinner  spinner.Model
	help     help.Model
	busy     bool
	status   string
	failed   bool
	fullHelp bool
}

// Ensure DeckView implements View.
var _ View = (*DeckView)(nil)

// NewDeckView creates a deck over v laid out in columns.
func NewDeckView(v *viewer.Viewer, registry *KeybindRegistry, columns int) *DeckView {
	if columns < 1 {
		columns = defaultColumns
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Styles.Status
	return &DeckView{
		viewer:   v,
		registry: registry,
		Columns:  columns,
		spinner:  s,
		help:     newHelpModel(),
	}
}

// Init implements View.
func (d *DeckView) Init() tea.Cmd {
	return nil
}

// SetBusy starts or stops the spinner. It returns the first tick when the
// deck becomes busy.
func (d *DeckView) SetBusy(busy bool) tea.Cmd {
	was := d.busy
	d.busy = busy
	if busy && !was {
		return d.spinner.Tick
	}
	return nil
}

// SetStatus sets the one-line status under the grid.
func (d *DeckView) SetStatus(s string, failed bool) {
	d.status = s
	d.failed = failed
}

// Status returns the current status line text.
func (d *DeckView) Status() string { return d.status }

// Failed reports whether the status line shows a failure.
func (d *DeckView) Failed() bool { return d.failed }

// ToggleHelp switches between the short and full help views.
func (d *DeckView) ToggleHelp() {
	d.fullHelp = !d.fullHelp
}

// ResetCursor moves the cursor back to the first button.
func (d *DeckView) ResetCursor() {
	d.Cursor = 0
}

func (d *DeckView) items() []composition.Display {
	return composition.Collect(d.viewer.Displayable())
}

func (d *DeckView) move(delta, n int) {
	if n == 0 {
		d.Cursor = 0
		return
	}
	c := d.Cursor + delta
	if c < 0 {
		c = 0
	}
	if c > n-1 {
		c = n - 1
	}
	d.Cursor = c
}

// Update implements View.
func (d *DeckView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.help.Width = msg.Width
		return d, nil
	case spinner.TickMsg:
		if !d.busy {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd
	case tea.KeyMsg:
		n := len(d.items())
		switch msg.String() {
		case "left", "h":
			d.move(-1, n)
		case "right", "l":
			d.move(1, n)
		case "up", "k":
			d.move(-d.Columns, n)
		case "down", "j":
			d.move(d.Columns, n)
		case "home", "g":
			d.move(-n, n)
		case "end", "G":
			d.move(n, n)
		}
	}
	return d, nil
}

// View implements View.
func (d *DeckView) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Layer %d Clips", d.viewer.CurrentLayer())
	if total := d.viewer.TotalLayers(); total > 0 {
		title += fmt.Sprintf(" (of %d)", total)
	}
	line := Styles.Title.Render(title)
	if d.busy {
		line += " " + d.spinner.View()
	}
	b.WriteString(line + "\n")
	b.WriteString(Styles.Hint.Render("Press [SPC] for commands") + "\n\n")

	switch items := d.items(); {
	case d.viewer.Loading():
		b.WriteString(Styles.Empty.Render("Loading clips...") + "\n")
	case len(items) == 0:
		b.WriteString(Styles.Empty.Render("No clips available for this layer.") + "\n")
	default:
		b.WriteString(d.renderGrid(items) + "\n")
	}

	if d.status != "" {
		style := Styles.Status
		if d.failed {
			style = Styles.Error
		}
		b.WriteString("\n" + style.Render(d.status) + "\n")
	}

	km := deckKeyMap{registry: d.registry}
	if d.fullHelp {
		b.WriteString("\n" + d.help.FullHelpView(km.FullHelp()))
	} else {
		b.WriteString("\n" + d.help.ShortHelpView(km.ShortHelp()))
	}
	return b.String()
}

// buttonWidth returns the label width that fits Columns buttons across.
// Each button adds 2 columns of border, 2 of padding and 1 of gap.
func (d *DeckView) buttonWidth() int {
	width := d.width
	if width == 0 {
		width = defaultWidth
	}
	w := width/d.Columns - 5
	if w < minButtonWidth {
		w = minButtonWidth
	}
	if w > maxButtonWidth {
		w = maxButtonWidth
	}
	return w
}

func (d *DeckView) renderGrid(items []composition.Display) string {
	selected, hasSelected := d.viewer.Selected(d.viewer.CurrentLayer())
	width := d.buttonWidth()

	var rows []string
	var row []string
	for i, it := range items {
		label := it.Label
		style := Styles.Button
		if hasSelected && it.Clip.ID == selected {
			label = connectedMarker + label
			style = Styles.ButtonConnected
		}
		if i == d.Cursor {
			style = Styles.ButtonFocused
		}
		row = append(row, style.Render(textutil.Center(label, width)), " ")
		if len(row)/2 == d.Columns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
