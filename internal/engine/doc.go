// Package engine drives incremental reads of a single log file.
//
// # Components
//
// Engine owns a state.TailState and a logtail.Reader. Each call to Poll reads
// whatever the file gained since the previous poll, merges it into the line
// buffer and publishes a state.Snapshot. Configuration calls (SetPath,
// SetMaxLines, SetKeywords, Reload) share a mutex with Poll, so they are safe
// to call from the UI goroutine while polling runs elsewhere.
//
// Scheduler runs a tick function on a fixed interval from one goroutine:
//
//	Idle ──Start──▶ Running ◀──Resume/Pause──▶ Paused
//	                   │                          │
//	                   └──────────Stop────────────┴──▶ Stopped
//
// The first tick runs as soon as Start is called. Paused ticks are dropped,
// not queued. Stop cancels the loop and waits for it, so no tick runs after
// Stop returns.
//
// Tailer wires the two together and is what the CLI and the viewer use.
//
// # Failure Handling
//
// A poll that fails (missing file, read error) keeps the current buffer and
// offset and records the error in the snapshot. The following tick retries
// with the same offset; there is no backoff.
package engine
