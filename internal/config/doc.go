// Package config loads tailview settings.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/tailview/config.toml (default)
//  3. If the config file doesn't exist, fall back to built-in defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Command-line flags are applied on top of the loaded values by the caller.
//
// # Default Values
//
//   - max_lines: 1000
//   - keywords: ["ERROR"]
//   - poll_interval: "1s"
//   - encoding: "utf-8"
//   - strip_nul: true
//   - max_read_bytes: 16777216
//   - watch: false
//
// # TOML Format
//
// Example config.toml:
//
//	max_lines = 500
//	keywords = ["ERROR", "panic"]
//	poll_interval = "500ms"
//	encoding = "utf-8"
//	strip_nul = true
//	watch = true
//
// # Validation
//
// A negative max_lines or an unparsable poll_interval is an error. Interactive
// line-count input goes through ParseMaxLines, which hands back the previous
// value alongside ErrInvalidMaxLines so the viewer keeps running with it.
package config
