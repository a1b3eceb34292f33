package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is the poll cadence when none is configured.
const DefaultInterval = time.Second

// ErrSchedulerStarted is returned by Start on a scheduler that already ran.
var ErrSchedulerStarted = errors.New("scheduler already started")

// State is the lifecycle state of a Scheduler.
type State int32

const (
	Idle State = iota
	Running
	Paused
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Scheduler calls a tick function on a fixed cadence from a single
// goroutine, so ticks never overlap. While paused, timer and wake ticks are
// skipped rather than queued; Trigger runs one tick even when paused.
type Scheduler struct {
	interval time.Duration
	tick     func(context.Context)
	wake     <-chan struct{}

	signal chan struct{}
	forced atomic.Bool
	paused atomic.Bool

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler returns an idle scheduler. A non-positive interval uses
// DefaultInterval. Ticks also fire whenever wake delivers a value; wake may
// be nil.
func NewScheduler(interval time.Duration, wake <-chan struct{}, tick func(context.Context)) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		interval: interval,
		tick:     tick,
		wake:     wake,
		signal:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Start launches the loop. The first tick runs immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Idle {
		return ErrSchedulerStarted
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.state = Running
	if s.paused.Load() {
		s.state = Paused
	}
	go s.loop(ctx)
	return nil
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.runTick(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-s.signal:
		case <-s.wake:
		}
	}
}

func (s *Scheduler) runTick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	forced := s.forced.Swap(false)
	if s.paused.Load() && !forced {
		return
	}
	s.tick(ctx)
}

// Trigger requests an extra tick as soon as the loop is free. Requests made
// while a tick is pending are coalesced.
func (s *Scheduler) Trigger() {
	s.forced.Store(true)
	select {
	case s.signal <- struct{}{}:
	default:
	}
}

// Pause makes the loop skip ticks until Resume.
func (s *Scheduler) Pause() {
	s.paused.Store(true)
	s.mu.Lock()
	if s.state == Running {
		s.state = Paused
	}
	s.mu.Unlock()
}

// Resume re-enables ticks. The next tick runs on the regular cadence.
func (s *Scheduler) Resume() {
	s.paused.Store(false)
	s.mu.Lock()
	if s.state == Paused {
		s.state = Running
	}
	s.mu.Unlock()
}

// IsPaused reports whether ticks are being skipped.
func (s *Scheduler) IsPaused() bool {
	return s.paused.Load()
}

// Stop ends the loop and waits for it to exit. No tick runs after Stop
// returns. Stop is terminal and must not be called from the tick function.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.state == Stopped {
		s.mu.Unlock()
		<-s.done
		return
	}
	started := s.state != Idle
	s.state = Stopped
	cancel := s.cancel
	s.mu.Unlock()

	if !started {
		close(s.done)
		return
	}
	cancel()
	<-s.done
}

// State returns the current lifecycle state. A loop that ended because its
// context was cancelled reports Stopped.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Running || s.state == Paused {
		select {
		case <-s.done:
			return Stopped
		default:
		}
	}
	return s.state
}

// Done is closed once the loop has exited.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}
