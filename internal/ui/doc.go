// Package ui provides the interactive terminal viewer for tailview.
//
// # Architecture Overview
//
// The viewer is a Bubble Tea program. It never reads the log file itself: a
// Controller (normally engine.Tailer) polls in the background and the model
// pulls a state.Snapshot on every refresh tick. Rendering is skipped when the
// snapshot sequence, keywords, theme and size are unchanged.
//
// # Package Structure
//
//   - ui.go: Model, messages, commands and Run
//   - logs.go: log pane rendering with line numbers and keyword highlighting
//   - header.go, status.go: title bar and status bar
//   - prompt.go: input for line count, keywords and file path
//   - help.go: keyboard shortcut overlay built from the key map
//   - keys.go, theme.go, style_helpers.go: bindings and styling
//
// # Following and Pausing
//
// The pane follows the end of the file by default. Scrolling up pauses
// polling so the text under the reader stays put; scrolling back to the bottom
// or pressing G resumes it. Space toggles the pause explicitly, and an
// explicit pause is not lifted by scrolling.
//
// # Preferences
//
// Theme, line count and keywords chosen in the viewer are written to the
// prefs file and picked up on the next start.
package ui
