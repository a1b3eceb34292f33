package state

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// PollStats describes the most recent successful poll.
type PollStats struct {
	NewLines  []string
	Truncated bool
	Rescanned bool
	Size      int64
	Elapsed   time.Duration
}

// Snapshot represents the latest data available to the presentation layer.
type Snapshot struct {
	Path     string
	Lines    []string
	Offset   int64
	MaxLines int
	Keywords []string

	// Result of the last successful poll.
	NewLines  []string
	Truncated bool
	Rescanned bool
	Size      int64
	Elapsed   time.Duration

	Seq                 uint64 // incremented on every Update
	Paused              bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// Fetched is the number of lines delivered by the last poll.
func (s Snapshot) Fetched() int {
	return len(s.NewLines)
}

// Text joins the buffered lines with "\n".
func (s Snapshot) Text() string {
	return joinLines(s.Lines)
}

// IsUnavailable returns true when the file could not be read for multiple polls.
func (s Snapshot) IsUnavailable() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records a poll. When err is non-nil the previous lines and offset are
// kept but the error is recorded for visibility.
func (s *Store) Update(tail *TailState, stats PollStats, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Seq++
	s.snapshot.LastUpdated = time.Now()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		s.snapshot.NewLines = nil
		return
	}

	if tail != nil {
		s.snapshot.Path = tail.Path
		s.snapshot.Lines = cloneLines(tail.Buffer)
		s.snapshot.Offset = tail.Offset
		s.snapshot.MaxLines = tail.MaxLines
	}
	s.snapshot.NewLines = cloneLines(stats.NewLines)
	s.snapshot.Truncated = stats.Truncated
	s.snapshot.Rescanned = stats.Rescanned
	s.snapshot.Size = stats.Size
	s.snapshot.Elapsed = stats.Elapsed
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Reset replaces the file identity without recording a poll. It is used when
// the tailed path or line limit changes and the next poll has not run yet.
func (s *Store) Reset(tail *TailState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Path = tail.Path
	s.snapshot.Lines = cloneLines(tail.Buffer)
	s.snapshot.Offset = tail.Offset
	s.snapshot.MaxLines = tail.MaxLines
	s.snapshot.NewLines = nil
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// SetKeywords records the active highlight keywords.
func (s *Store) SetKeywords(keywords []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Keywords = cloneLines(keywords)
}

// SetPaused records whether polling is paused.
func (s *Store) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Paused = paused
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Lines = cloneLines(s.snapshot.Lines)
	snap.NewLines = cloneLines(s.snapshot.NewLines)
	snap.Keywords = cloneLines(s.snapshot.Keywords)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneLines(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	dup := make([]string, len(lines))
	copy(dup, lines)
	return dup
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
