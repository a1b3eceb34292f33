package state

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	tail := &TailState{Path: "app.log", Offset: 42, MaxLines: 10, Buffer: []string{"a", "b"}}
	stats := PollStats{NewLines: []string{"b"}, Size: 42, Elapsed: 3 * time.Millisecond}

	before := time.Now()
	s.Update(tail, stats, nil)

	snap := s.Snapshot()
	if snap.Path != "app.log" || snap.Offset != 42 || snap.MaxLines != 10 {
		t.Fatalf("snapshot identity = %q/%d/%d, want app.log/42/10", snap.Path, snap.Offset, snap.MaxLines)
	}
	if len(snap.Lines) != 2 || snap.Lines[0] != "a" {
		t.Fatalf("snapshot lines = %#v, want 2 lines", snap.Lines)
	}
	if snap.Fetched() != 1 || snap.Elapsed != 3*time.Millisecond {
		t.Fatalf("fetched=%d elapsed=%v, want 1 and 3ms", snap.Fetched(), snap.Elapsed)
	}
	if snap.Seq != 1 {
		t.Fatalf("Seq = %d, want 1", snap.Seq)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Neither the tail state nor a returned snapshot share storage with the store.
	tail.Buffer[0] = "mutated"
	snap.Lines[1] = "mutated"
	snap2 := s.Snapshot()
	if snap2.Lines[0] != "a" || snap2.Lines[1] != "b" {
		t.Fatalf("Snapshot should clone lines; got %#v", snap2.Lines)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(&TailState{Path: "app.log", Offset: 7, MaxLines: 5, Buffer: []string{"one"}}, PollStats{NewLines: []string{"one"}}, nil)
	prev := s.Snapshot()

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(nil, PollStats{}, origErr)

	snap := s.Snapshot()
	if snap.Offset != prev.Offset || len(snap.Lines) != 1 || snap.Lines[0] != "one" {
		t.Fatalf("data changed on error: got %#v want %#v", snap.Lines, prev.Lines)
	}
	if snap.Fetched() != 0 {
		t.Fatalf("Fetched = %d after error, want 0", snap.Fetched())
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError should wrap the original error")
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsUnavailable() {
		t.Fatalf("fresh store: failures=%d unavailable=%v", snap.ConsecutiveFailures, snap.IsUnavailable())
	}

	s.Update(nil, PollStats{}, errors.New("fail 1"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", snap.ConsecutiveFailures)
	}
	if snap.IsUnavailable() {
		t.Fatal("IsUnavailable() = true, want false with 1 failure")
	}

	s.Update(nil, PollStats{}, errors.New("fail 2"))
	snap = s.Snapshot()
	if !snap.IsUnavailable() {
		t.Fatal("IsUnavailable() = false, want true with 2 failures")
	}

	s.Update(NewTailState("app.log", 1), PollStats{}, nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0 after success", snap.ConsecutiveFailures)
	}
	if snap.Seq != 3 {
		t.Fatalf("Seq = %d, want 3", snap.Seq)
	}
}

func TestStore_ResetKeywordsPaused(t *testing.T) {
	var s Store

	s.Update(nil, PollStats{}, errors.New("missing"))
	s.Reset(&TailState{Path: "other.log", MaxLines: 20})
	s.SetKeywords([]string{"ERROR", "WARN"})
	s.SetPaused(true)

	snap := s.Snapshot()
	if snap.Path != "other.log" || snap.MaxLines != 20 || snap.Lines != nil {
		t.Fatalf("Reset snapshot = %#v", snap)
	}
	if snap.LastError != nil || snap.ConsecutiveFailures != 0 {
		t.Fatalf("Reset should clear errors, got %v/%d", snap.LastError, snap.ConsecutiveFailures)
	}
	if !snap.Paused {
		t.Fatal("Paused = false, want true")
	}
	snap.Keywords[0] = "mutated"
	if got := s.Snapshot().Keywords; !reflect.DeepEqual(got, []string{"ERROR", "WARN"}) {
		t.Fatalf("Keywords = %#v, want [ERROR WARN]", got)
	}
}

func TestSnapshotText(t *testing.T) {
	snap := Snapshot{Lines: []string{"a", "", "b"}}
	if got := snap.Text(); got != "a\n\nb" {
		t.Fatalf("Text = %q, want %q", got, "a\n\nb")
	}
}
