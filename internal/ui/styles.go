package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for focus and borders
	ColorDanger    = "196" // Red - for failures
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
	ColorButton    = "33"  // Blue - button fill
	ColorConnected = "35"  // Green - clip connected on this layer
)

// Styles contains shared style definitions used across views.
var Styles = struct {
	Title lipgloss.Style // Bold accent color - for the layer title

	// Buttons
	Button          lipgloss.Style // Idle clip button
	ButtonFocused   lipgloss.Style // Button under the cursor
	ButtonConnected lipgloss.Style // Clip last connected on this layer

	// Text styles
	Muted  lipgloss.Style // Dimmed text (muted color)
	Hint   lipgloss.Style // Help/hint text (muted color)
	Status lipgloss.Style // Status line (accent color)
	Error  lipgloss.Style // Failure status line
	Empty  lipgloss.Style // Empty state text (muted, italic)
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Button: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorButton)).
		Foreground(lipgloss.Color(ColorText)).
		Padding(0, 1),
	ButtonFocused: lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true).
		Padding(0, 1),
	ButtonConnected: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorConnected)).
		Foreground(lipgloss.Color(ColorConnected)).
		Bold(true).
		Padding(0, 1),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
}
