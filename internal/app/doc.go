// Package app is the composition root for tailview.
//
// Run loads the config file, merges prefs and command-line options, sets up
// logging, and builds an engine.Tailer for the requested file. It then picks
// a presentation:
//
//   - CLI stream, when requested or when stdout is not a terminal: every poll's
//     new lines are written to stdout with keywords wrapped in ANSI markers.
//     Poll errors go to stderr in red, once per distinct error.
//   - Interactive viewer otherwise (package ui).
//
// Settings are merged in this order, later wins:
//
//  1. built-in defaults
//  2. ~/.config/tailview/config.toml
//  3. ~/.config/tailview/prefs.toml (viewer only: line count, keywords, theme)
//  4. command-line options
//
// With watch enabled, an fsnotify watcher on the file's directory wakes the
// scheduler early. Failing to set it up is logged and polling continues on
// the timer alone.
package app
