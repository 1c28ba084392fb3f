package ui

import "clipdeck/internal/viewer"

// LayerLoadedMsg carries the result of fetching a layer.
type LayerLoadedMsg struct {
	Result viewer.LoadResult
}

// ClipConnectedMsg carries the outcome of the connect protocol, success or not.
type ClipConnectedMsg struct {
	Result viewer.SelectResult
}

// ConnectFocusedMsg connects the clip under the cursor (Enter).
type ConnectFocusedMsg struct{}

// ConnectNthMsg connects the n-th displayed clip (digit keys).
type ConnectNthMsg struct {
	Index int // 0-based index into the displayed clips
}

// ReloadMsg refetches the active layer (r, SPC r).
type ReloadMsg struct{}

// NextLayerMsg moves to the next layer without connecting anything (tab).
type NextLayerMsg struct{}

// PrevLayerMsg moves to the previous layer without connecting anything (shift+tab).
type PrevLayerMsg struct{}

// ToggleHelpMsg switches between short and full help (?).
type ToggleHelpMsg struct{}
