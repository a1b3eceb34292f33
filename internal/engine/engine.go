package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/tailview/internal/config"
	"github.com/five82/tailview/internal/logtail"
	"github.com/five82/tailview/internal/logx"
	"github.com/five82/tailview/internal/state"
)

// ErrInvalidMaxLines is returned by SetMaxLines for a non-positive count.
var ErrInvalidMaxLines = config.ErrInvalidMaxLines

// Options configure an Engine.
type Options struct {
	Path     string
	MaxLines int
	Keywords []string
	Reader   logtail.Reader
	Store    *state.Store // nil creates a private store
	Logger   *logrus.Entry
}

// Engine owns the tail state for one file and publishes a snapshot after
// every poll. All methods are safe for concurrent use; polls and
// configuration changes are serialized.
type Engine struct {
	mu       sync.Mutex
	reader   logtail.Reader
	tail     *state.TailState
	keywords []string
	force    bool

	store *state.Store
	log   *logrus.Entry
}

// New validates opts and returns an engine that has not polled yet.
func New(opts Options) (*Engine, error) {
	if opts.MaxLines <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxLines, opts.MaxLines)
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	log := opts.Logger
	if log == nil {
		log = logx.Discard()
	}

	e := &Engine{
		reader:   opts.Reader,
		tail:     state.NewTailState(opts.Path, opts.MaxLines),
		keywords: append([]string(nil), opts.Keywords...),
		force:    true,
		store:    store,
		log:      log,
	}
	store.Reset(e.tail)
	store.SetKeywords(e.keywords)
	return e, nil
}

// Store returns the snapshot store the engine publishes to.
func (e *Engine) Store() *state.Store {
	return e.store
}

// Snapshot returns the latest published snapshot without polling.
func (e *Engine) Snapshot() state.Snapshot {
	return e.store.Snapshot()
}

// SetPath redirects the engine to another file. The buffer and offset are
// cleared and the next poll scans the new file from its end.
func (e *Engine) SetPath(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tail.Path = path
	e.tail.Reset()
	e.force = true
	e.store.Reset(e.tail)
	e.log.WithField("path", path).Info("tailing file")
}

// SetMaxLines changes the line limit and forces a full rescan. A non-positive
// n is rejected and the previous limit stays in effect.
func (e *Engine) SetMaxLines(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxLines, n)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.tail.SetMaxLines(n)
	e.force = true
	e.store.Reset(e.tail)
	e.log.WithField("max_lines", n).Debug("line limit changed")
	return nil
}

// SetKeywords replaces the highlight keywords. It has no effect on reading.
func (e *Engine) SetKeywords(keywords []string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.keywords = append([]string(nil), keywords...)
	e.store.SetKeywords(e.keywords)
}

// Keywords returns the active highlight keywords.
func (e *Engine) Keywords() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.keywords...)
}

// Reload discards the reading position so the next poll rescans the file.
func (e *Engine) Reload() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tail.Offset = 0
	e.force = true
}

// Poll reads new content, merges it into the buffer and publishes the
// resulting snapshot. Read failures leave the buffer and offset untouched and
// are recorded in the snapshot; the next poll simply tries again.
func (e *Engine) Poll() state.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	res, err := e.reader.Poll(e.tail.Path, e.tail.Offset, e.tail.MaxLines)
	elapsed := time.Since(start)

	if err != nil {
		e.store.Update(nil, state.PollStats{}, err)
		e.logFailure(err)
		return e.store.Snapshot()
	}

	e.tail.Apply(res, e.force || res.Rescanned)
	e.force = false

	e.store.Update(e.tail, state.PollStats{
		NewLines:  res.NewLines,
		Truncated: res.Truncated,
		Rescanned: res.Rescanned,
		Size:      res.Size,
		Elapsed:   elapsed,
	}, nil)

	entry := e.log.WithFields(logrus.Fields{
		"fetched":    len(res.NewLines),
		"total":      len(e.tail.Buffer),
		"elapsed_ms": elapsed.Milliseconds(),
		"offset":     e.tail.Offset,
	})
	if res.Truncated {
		entry.Info("file truncated, rescanned")
	} else {
		entry.Debug("poll")
	}
	return e.store.Snapshot()
}

// logFailure warns on the first failure of a streak and stays quiet after.
func (e *Engine) logFailure(err error) {
	entry := e.log.WithError(err).WithField("path", e.tail.Path)
	if e.store.Snapshot().ConsecutiveFailures == 1 {
		entry.Warn("poll failed")
		return
	}
	entry.Debug("poll failed")
}
