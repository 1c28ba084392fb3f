package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"clipdeck/internal/viewer"
)

// AppModel is the root model. It owns the viewer and turns user input into
// remote calls, applying their results as they arrive.
type AppModel struct {
	Deck       *DeckView
	KeyHandler *KeyHandler
	Viewer     *viewer.Viewer
	Logger     *zap.Logger

	ctx        context.Context
	connecting bool
	pending    string // label of the clip being connected
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.startLoad()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LayerLoadedMsg:
		return a, a.handleLayerLoaded(msg)
	case ClipConnectedMsg:
		return a, a.handleClipConnected(msg)
	case ConnectFocusedMsg:
		return a, a.connect(a.Deck.Cursor)
	case ConnectNthMsg:
		return a, a.connect(msg.Index)
	case ReloadMsg:
		return a, a.startLoad()
	case NextLayerMsg:
		a.Viewer.SetLayer(a.Viewer.NextLayer())
		return a, a.startLoad()
	case PrevLayerMsg:
		prev := a.Viewer.CurrentLayer() - 1
		if prev < 1 {
			prev = max(a.Viewer.TotalLayers(), 1)
		}
		a.Viewer.SetLayer(prev)
		return a, a.startLoad()
	case ToggleHelpMsg:
		a.Deck.ToggleHelp()
		return a, nil
	case tea.KeyMsg:
		if a.KeyHandler != nil {
			if consumed, keyCmd := a.KeyHandler.Handle(msg); consumed {
				return a, keyCmd
			}
		}
		s := msg.String()
		if s == "enter" {
			return a, msgCmd(ConnectFocusedMsg{})
		}
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			return a, msgCmd(ConnectNthMsg{Index: int(s[0] - '1')})
		}
	}

	v, cmd := a.Deck.Update(msg)
	if d, ok := v.(*DeckView); ok {
		a.Deck = d
	}
	return a, cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	base := a.Deck.View()
	if a.KeyHandler != nil && a.KeyHandler.LeaderWaiting {
		base += "\n" + RenderKeybindHelp(a.KeyHandler)
	}
	return base
}

// startLoad begins fetching the active layer.
func (a *AppModel) startLoad() tea.Cmd {
	req := a.Viewer.BeginLoad(a.Viewer.CurrentLayer())
	a.Deck.ResetCursor()
	return tea.Batch(loadLayerCmd(a.ctx, a.Viewer, req), a.Deck.SetBusy(true))
}

func (a *AppModel) handleLayerLoaded(msg LayerLoadedMsg) tea.Cmd {
	if !a.Viewer.Apply(msg.Result) {
		return nil
	}
	if err := msg.Result.Err; err != nil {
		a.Deck.SetStatus(fmt.Sprintf("Could not load layer %d", msg.Result.Layer), true)
	} else if !msg.Result.Found {
		a.Deck.SetStatus(fmt.Sprintf("Layer %d not found", msg.Result.Layer), true)
	} else if a.Deck.Failed() && !a.connecting {
		a.Deck.SetStatus("", false)
	}
	return a.Deck.SetBusy(a.connecting)
}

// connect starts the connect protocol for the n-th displayed clip. Requests
// made while a connect or load is outstanding are dropped.
func (a *AppModel) connect(n int) tea.Cmd {
	if a.connecting || a.Viewer.Loading() {
		a.Logger.Debug("connect ignored while busy", zap.Int("index", n), zap.Bool("connecting", a.connecting))
		return nil
	}
	req, err := a.Viewer.PlanDisplayed(n)
	if err != nil {
		return nil
	}
	for i, d := range a.Viewer.Displayable() {
		if i == n {
			a.pending = d.Label
			break
		}
	}
	a.connecting = true
	a.Deck.SetStatus(fmt.Sprintf("Connecting %s...", a.pending), false)
	return tea.Batch(connectCmd(a.ctx, a.Viewer, req), a.Deck.SetBusy(true))
}

func (a *AppModel) handleClipConnected(msg ClipConnectedMsg) tea.Cmd {
	a.connecting = false
	res := msg.Result
	if _, ok := a.Viewer.Commit(res); !ok {
		a.Deck.SetStatus(fmt.Sprintf("Failed to connect %s", a.pending), true)
		return a.Deck.SetBusy(false)
	}
	a.Deck.SetStatus(fmt.Sprintf("Connected %s on layer %d", a.pending, res.Layer), false)
	return a.startLoad()
}

// NewAppModel creates the root application model around v.
func NewAppModel(ctx context.Context, v *viewer.Viewer, columns int, logger *zap.Logger) *AppModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("r", msgCmd(ReloadMsg{}), "Reload layer")
	reg.BindWithDesc("SPC r", msgCmd(ReloadMsg{}), "Reload layer")
	reg.BindWithDesc("tab", msgCmd(NextLayerMsg{}), "Next layer")
	reg.BindWithDesc("shift+tab", msgCmd(PrevLayerMsg{}), "Previous layer")
	reg.BindWithDesc("SPC l n", msgCmd(NextLayerMsg{}), "Next layer")
	reg.BindWithDesc("SPC l p", msgCmd(PrevLayerMsg{}), "Previous layer")
	reg.BindWithDesc("?", msgCmd(ToggleHelpMsg{}), "Toggle help")
	return &AppModel{
		Deck:       NewDeckView(v, reg, columns),
		KeyHandler: NewKeyHandler(reg),
		Viewer:     v,
		Logger:     logger,
		ctx:        ctx,
	}
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}
