package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"clipdeck/internal/viewer"
)

// loadLayerCmd returns a command that fetches the composition for req.
// Fetch only reads immutable viewer fields, so it is safe off the event loop.
func loadLayerCmd(ctx context.Context, v *viewer.Viewer, req viewer.LoadRequest) tea.Cmd {
	return func() tea.Msg {
		return LayerLoadedMsg{Result: v.Fetch(ctx, req)}
	}
}

// connectCmd returns a command that runs the connect protocol for req.
// The steps run strictly in order inside this one command, so no two
// connects are ever in flight together.
func connectCmd(ctx context.Context, v *viewer.Viewer, req viewer.SelectRequest) tea.Cmd {
	return func() tea.Msg {
		return ClipConnectedMsg{Result: v.Run(ctx, req)}
	}
}

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
