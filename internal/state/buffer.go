package state

import "github.com/five82/tailview/internal/logtail"

// Apply merges a poll result into buffer and returns the new buffer, trimmed
// from the front to at most maxLines entries. The result never shares its
// backing array with buffer.
//
// With forceReplace or a truncated result the buffer is replaced outright.
// Otherwise the first new line continues the last buffered line, since the
// previous read may have stopped in the middle of a line, and the remaining
// new lines are appended.
func Apply(buffer []string, res logtail.PollResult, maxLines int, forceReplace bool) []string {
	if maxLines <= 0 {
		return nil
	}
	if forceReplace || res.Truncated {
		return tail(res.NewLines, maxLines)
	}

	incoming := res.NewLines
	merged := make([]string, 0, len(buffer)+len(incoming))
	merged = append(merged, buffer...)
	if len(merged) > 0 && len(incoming) > 0 {
		merged[len(merged)-1] += incoming[0]
		incoming = incoming[1:]
	}
	merged = append(merged, incoming...)
	return tail(merged, maxLines)
}

// tail returns a fresh copy of the last n lines.
func tail(lines []string, n int) []string {
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}
