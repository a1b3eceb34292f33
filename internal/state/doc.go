// Package state holds the line buffer and the snapshot store for tailview.
//
// # Overview
//
// The package has three parts:
//
//   - Apply: the buffer merge rule for poll results
//   - TailState: path, offset, line limit and buffer for one file, owned by
//     exactly one engine
//   - Store: thread-safe snapshots of that state for the presentation layer
//
// # Merge Rule
//
// Forward reads stop wherever the writer happened to be, often in the middle
// of a line. Apply therefore glues the first line of every delta onto the
// last buffered line:
//
//	buffer:  ["X", "partial"]
//	delta:   ["-tail", "Y"]
//	result:  ["X", "partial-tail", "Y"]
//
// A delta that ended on a line terminator carries a trailing "" entry, so the
// next delta starts a fresh line. A rescan or truncation replaces the buffer.
// The buffer is trimmed from the front to the line limit after every apply.
//
// # Store
//
// The engine writes after every poll, the UI and CLI stream read:
//
//	Engine goroutine:            UI goroutine:
//	┌────────────────┐          ┌─────────────────┐
//	│ reader.Poll()  │          │                 │
//	│ tail.Apply()   │          │                 │
//	│ store.Update() │─────────→│ store.Snapshot()│
//	└────────────────┘ (RWMutex)└─────────────────┘
//
// Update with an error keeps the previous lines and offset and counts the
// failure, so a missing file leaves the last good view on screen. Snapshot
// returns deep copies; callers may modify them freely.
//
// The zero Store is ready to use.
package state
