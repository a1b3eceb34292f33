package engine

import (
	"context"
	"time"

	"github.com/five82/tailview/internal/state"
)

// TailerOptions configure a Tailer.
type TailerOptions struct {
	Options

	Interval time.Duration
	Wake     <-chan struct{} // optional early wake-ups, e.g. from a file watcher

	// OnPoll runs on the scheduler goroutine after every poll.
	OnPoll func(state.Snapshot)
}

// Tailer drives an Engine with a Scheduler.
type Tailer struct {
	engine *Engine
	sched  *Scheduler
	onPoll func(state.Snapshot)
}

// NewTailer builds the engine and its scheduler without starting either.
func NewTailer(opts TailerOptions) (*Tailer, error) {
	eng, err := New(opts.Options)
	if err != nil {
		return nil, err
	}
	t := &Tailer{engine: eng, onPoll: opts.OnPoll}
	t.sched = NewScheduler(opts.Interval, opts.Wake, t.tick)
	return t, nil
}

func (t *Tailer) tick(context.Context) {
	snap := t.engine.Poll()
	if t.onPoll != nil {
		t.onPoll(snap)
	}
}

// Start begins polling; the first poll runs immediately.
func (t *Tailer) Start(ctx context.Context) error {
	return t.sched.Start(ctx)
}

// Stop halts polling and waits for an in-flight poll to finish.
func (t *Tailer) Stop() {
	t.sched.Stop()
}

// Done is closed once the polling loop has exited.
func (t *Tailer) Done() <-chan struct{} {
	return t.sched.Done()
}

// State returns the scheduler state.
func (t *Tailer) State() State {
	return t.sched.State()
}

// Engine returns the underlying engine.
func (t *Tailer) Engine() *Engine {
	return t.engine
}

// SetPath switches to another file and polls it right away.
func (t *Tailer) SetPath(path string) {
	t.engine.SetPath(path)
	t.sched.Trigger()
}

// SetMaxLines changes the line limit and rescans right away. The previous
// limit is kept when n is invalid.
func (t *Tailer) SetMaxLines(n int) error {
	if err := t.engine.SetMaxLines(n); err != nil {
		return err
	}
	t.sched.Trigger()
	return nil
}

// SetKeywords replaces the highlight keywords.
func (t *Tailer) SetKeywords(keywords []string) {
	t.engine.SetKeywords(keywords)
}

// Reload rescans the file right away.
func (t *Tailer) Reload() {
	t.engine.Reload()
	t.sched.Trigger()
}

// Poll returns the current snapshot.
func (t *Tailer) Poll() state.Snapshot {
	return t.engine.Snapshot()
}

// Pause stops reading until Resume. Explicit requests such as SetPath or
// Reload still poll once.
func (t *Tailer) Pause() {
	t.sched.Pause()
	t.engine.Store().SetPaused(true)
}

// Resume restarts regular polling.
func (t *Tailer) Resume() {
	t.sched.Resume()
	t.engine.Store().SetPaused(false)
}

// IsPaused reports whether polling is paused.
func (t *Tailer) IsPaused() bool {
	return t.sched.IsPaused()
}
