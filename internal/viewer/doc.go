// Package viewer holds the state behind the clip deck: which layer is
// active, the clips it shows, and which clip was last connected on each
// layer. It also runs the connect protocol.
//
// Remote calls are split from state changes: Fetch and Run only talk to the
// service, Apply and Commit only touch local state. The TUI runs the former
// inside tea.Cmds and the latter from Update, so state is never mutated off
// the event loop. LoadLayer and Select chain both halves for synchronous
// callers.
package viewer
