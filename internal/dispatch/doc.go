// Package dispatch applies a decoded script envelope to an editor.
//
// The script answers with exactly one action:
//   - show_message shows a modal dialog
//   - status_message writes to the status bar
//   - open_file opens the path in content
//   - update_view replaces the target region with content
//
// Envelopes without a flag, and flagged envelopes with an empty or unknown
// action, are logged and ignored. Nothing here returns an error: a bad
// envelope never aborts the command that produced it.
//
// After update_view the view state captured before the run is reapplied.
// Folds are located again by their text because the replace moves every
// offset after the target region.
package dispatch
