package state

import "github.com/five82/tailview/internal/logtail"

// TailState is the reading position and visible buffer for one file.
type TailState struct {
	Path     string
	Offset   int64
	MaxLines int
	Buffer   []string
}

// NewTailState returns state for a file that has not been read yet.
func NewTailState(path string, maxLines int) *TailState {
	return &TailState{Path: path, MaxLines: maxLines}
}

// Reset forgets the buffer and the offset so the next poll rescans.
func (s *TailState) Reset() {
	s.Offset = 0
	s.Buffer = nil
}

// SetMaxLines changes the buffer bound and forces a rescan on the next poll.
// The current buffer is trimmed right away so it never exceeds the bound.
func (s *TailState) SetMaxLines(n int) {
	s.MaxLines = n
	s.Offset = 0
	s.Buffer = tail(s.Buffer, n)
}

// Apply folds a successful poll into the state.
func (s *TailState) Apply(res logtail.PollResult, forceReplace bool) {
	s.Buffer = Apply(s.Buffer, res, s.MaxLines, forceReplace)
	s.Offset = res.NewOffset
}

// Lines returns a copy of the buffer.
func (s *TailState) Lines() []string {
	return cloneLines(s.Buffer)
}

// Text joins the buffer with "\n".
func (s *TailState) Text() string {
	return joinLines(s.Buffer)
}
