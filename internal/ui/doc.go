// Package ui is the Bubble Tea front end of clipdeck.
//
// Core pieces:
//   - AppModel: root model; owns the viewer state and runs remote calls as tea.Cmds
//   - DeckView: renders the active layer's clips as a grid of buttons
//   - KeybindRegistry/KeyHandler: single keys plus SPC-prefixed leader sequences
//
// Remote calls never mutate state directly. Their results come back as
// messages and are applied in Update.
package ui
