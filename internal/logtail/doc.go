// Package logtail reads new content from a growing log file.
//
// # Overview
//
// The package has two read paths. On first view, or after the file shrank, it
// scans the file backwards and returns the last N lines. On every later poll
// it reads only the bytes appended since the previous offset. Callers own the
// offset; nothing here keeps a file handle or any other state between polls.
//
// # Backward Scan
//
// ScanLastLines reads the file in fixed-size chunks starting at the end:
//
//	1. Read the chunk ending at the current position
//	2. Walk it from the last byte to the first:
//	   - '\n' closes the pending line, unless the line is empty
//	   - '\r' is dropped
//	   - any other byte is prepended to the pending line
//	3. Stop once N lines are collected or byte 0 is reached
//	4. A pending line at byte 0 becomes the oldest line
//
// Consecutive terminators collapse, so the scan never returns blank lines.
// Memory use is O(N × average line length) regardless of file size.
//
// # Forward Delta
//
// Reader.Poll compares the stored offset with the current file length:
//
//   - offset 0: backward scan, Rescanned set
//   - offset > length: backward scan, Truncated and Rescanned set
//   - offset == length: no new lines
//   - offset < length: read the delta (capped at MaxReadBytes) and split it
//
// The delta is split on "\n" or "\r\n" and keeps empty leading and trailing
// segments. A delta of "foo" yields ["foo"], and "bar\nbaz\n" yields
// ["bar", "baz", ""]. The trailing "" tells the buffer that the next delta
// starts a new line.
//
// The two paths treat blank lines differently: a backward scan drops them and
// a forward read keeps them. After a rescan of a newline-terminated file the
// first delta is merged into the last scanned line. This matches the
// behaviour users of the viewer have always seen and is left as is.
//
// Example usage:
//
//	var r logtail.Reader
//	res, err := r.Poll("/var/log/app.log", offset, 1000)
//	if err != nil {
//		return err
//	}
//	offset = res.NewOffset
//
// # Decoding
//
// Decoder converts bytes with an encoding from golang.org/x/text, selected by
// WHATWG label. Invalid input decodes to U+FFFD instead of failing. The
// backward scan decodes each line once it is complete, so only forward reads
// can split a multi-byte character.
//
// # Error Handling
//
// A missing file yields an error matching ErrFileNotFound (and
// fs.ErrNotExist). Other failures are *ReadError values carrying the
// operation and path. Truncation is reported through PollResult, never as an
// error.
package logtail
