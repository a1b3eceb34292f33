package app

import (
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/five82/tailview/internal/highlight"
	"github.com/five82/tailview/internal/state"
)

// Stream prints each poll's new lines to a writer. Lines are joined with
// "\n" and no newline is added at the end, so a line that is still being
// written continues where the previous output stopped.
type Stream struct {
	out     io.Writer
	errOut  io.Writer
	markers highlight.Markers
	errFmt  *color.Color

	mu        sync.Mutex
	lastSeq   uint64
	lastErr   string
	wrote     bool
	atNewline bool
}

// NewStream creates a stream writing lines to out and poll errors to errOut.
func NewStream(out, errOut io.Writer, markers highlight.Markers) *Stream {
	return &Stream{
		out:       out,
		errOut:    errOut,
		markers:   markers,
		errFmt:    color.New(color.FgRed, color.Bold),
		atNewline: true,
	}
}

// OnPoll handles one published snapshot. Snapshots already seen are ignored.
func (s *Stream) OnPoll(snap state.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.Seq == s.lastSeq {
		return
	}
	s.lastSeq = snap.Seq

	if snap.LastError != nil {
		// Report each distinct failure once; the same error repeats every tick.
		if msg := snap.LastError.Error(); msg != s.lastErr {
			s.lastErr = msg
			s.errFmt.Fprintf(s.errOut, "tailview: %s\n", msg)
		}
		return
	}
	s.lastErr = ""

	if len(snap.NewLines) == 0 {
		return
	}

	text := strings.Join(highlight.ANSI(snap.NewLines, snap.Keywords, s.markers), "\n")
	if snap.Rescanned && s.wrote && !s.atNewline {
		text = "\n" + text
	}
	if text == "" {
		return
	}
	if _, err := io.WriteString(s.out, text); err != nil {
		return
	}
	s.wrote = true
	s.atNewline = strings.HasSuffix(text, "\n")
}
