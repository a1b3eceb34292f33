package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/five82/tailview/internal/config"
	"github.com/five82/tailview/internal/engine"
	"github.com/five82/tailview/internal/highlight"
	"github.com/five82/tailview/internal/logtail"
	"github.com/five82/tailview/internal/logx"
	"github.com/five82/tailview/internal/prefs"
	"github.com/five82/tailview/internal/ui"
	"github.com/five82/tailview/internal/watch"
)

// Options configure a tailview run. Zero values fall back to prefs (viewer
// only) and then to the config file.
type Options struct {
	Path       string // empty tails config.DefaultFile
	ConfigPath string // empty uses ~/.config/tailview/config.toml
	PrefsPath  string // empty uses ~/.config/tailview/prefs.toml

	CLI      bool          // force the plain stream even on a terminal
	MaxLines int           // > 0 overrides the line count
	Keywords []string      // non-nil overrides keywords; empty disables highlighting
	Interval time.Duration // > 0 overrides the poll interval
	Encoding string
	Watch    bool
	Theme    string

	Stdout io.Writer // nil uses os.Stdout
	Stderr io.Writer // nil uses os.Stderr
}

// settings is the merged result of config, prefs and command-line options.
type settings struct {
	path     string
	maxLines int
	keywords []string
	interval time.Duration
	encoding string
	stripNUL bool
	maxRead  int64
	watch    bool
	theme    string
}

// Run tails a file until ctx is cancelled or, in the viewer, the user quits.
func Run(ctx context.Context, opts Options) error {
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	mode := logx.ModeTUI
	if opts.CLI || !isTerminal(stdout) {
		mode = logx.ModeCLI
	}

	logOpts := logx.OptionsFromEnv(mode)
	if mode == logx.ModeCLI && logOpts.File == "" {
		logOpts.Output = stderr
	}
	logger, closer, err := logx.New(logOpts)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer.Close()
	log := logx.Component(logger, "app")

	var userPrefs *prefs.Prefs
	if mode == logx.ModeTUI {
		p, err := prefs.Load(opts.PrefsPath)
		if err != nil {
			log.WithError(err).Warn("load prefs failed")
		}
		userPrefs = &p
	}

	s, err := resolve(cfg, userPrefs, opts)
	if err != nil {
		return err
	}

	decoder, err := logtail.NewDecoder(s.encoding, s.stripNUL)
	if err != nil {
		return fmt.Errorf("init decoder: %w", err)
	}

	log.WithFields(logrus.Fields{
		"path":      s.path,
		"max_lines": s.maxLines,
		"interval":  s.interval.String(),
		"encoding":  decoder.Name(),
		"watch":     s.watch,
	}).Debug("starting")

	var watcher *watch.Watcher
	var wake <-chan struct{}
	if s.watch {
		watcher, err = watch.New(s.path, logx.Component(logger, "watch"))
		if err != nil {
			log.WithError(err).Warn("file watching disabled")
		} else {
			defer watcher.Close()
			watcher.Start(ctx)
			wake = watcher.Wake()
		}
	}

	tailerOpts := engine.TailerOptions{
		Options: engine.Options{
			Path:     s.path,
			MaxLines: s.maxLines,
			Keywords: s.keywords,
			Reader:   logtail.Reader{MaxReadBytes: s.maxRead, Decoder: decoder},
			Logger:   logx.Component(logger, "engine"),
		},
		Interval: s.interval,
		Wake:     wake,
	}

	if mode == logx.ModeCLI {
		stream := NewStream(stdout, stderr, highlight.DefaultMarkers)
		tailerOpts.OnPoll = stream.OnPoll
		tailer, err := engine.NewTailer(tailerOpts)
		if err != nil {
			return fmt.Errorf("init tailer: %w", err)
		}
		return runStream(ctx, tailer)
	}

	tailer, err := engine.NewTailer(tailerOpts)
	if err != nil {
		return fmt.Errorf("init tailer: %w", err)
	}
	if err := tailer.Start(ctx); err != nil {
		return fmt.Errorf("start tailer: %w", err)
	}
	defer tailer.Stop()

	return ui.Run(ui.Options{
		Context:   ctx,
		Tailer:    &session{Tailer: tailer, watcher: watcher, log: log},
		ThemeName: s.theme,
		PrefsPath: opts.PrefsPath,
		Logger:    logx.Component(logger, "ui"),
	})
}

// runStream polls until ctx is cancelled.
func runStream(ctx context.Context, tailer *engine.Tailer) error {
	if err := tailer.Start(ctx); err != nil {
		return fmt.Errorf("start tailer: %w", err)
	}
	select {
	case <-ctx.Done():
	case <-tailer.Done():
	}
	tailer.Stop()
	return nil
}

// resolve merges settings: options win over prefs, prefs over the config
// file.
func resolve(cfg config.Config, p *prefs.Prefs, opts Options) (settings, error) {
	s := settings{
		maxLines: cfg.MaxLines,
		keywords: cfg.Keywords,
		interval: cfg.PollInterval,
		encoding: cfg.Encoding,
		stripNUL: cfg.StripNUL,
		maxRead:  cfg.MaxReadBytes,
		watch:    cfg.Watch || opts.Watch,
	}

	if p != nil {
		if p.MaxLines > 0 {
			s.maxLines = p.MaxLines
		}
		if p.Keywords != nil {
			s.keywords = p.Keywords
		}
		s.theme = p.Theme
	}

	if opts.MaxLines < 0 {
		return settings{}, fmt.Errorf("%w: %d", config.ErrInvalidMaxLines, opts.MaxLines)
	}
	if opts.MaxLines > 0 {
		s.maxLines = opts.MaxLines
	}
	if opts.Keywords != nil {
		s.keywords = opts.Keywords
	}
	if opts.Interval > 0 {
		s.interval = opts.Interval
	}
	if opts.Encoding != "" {
		s.encoding = opts.Encoding
	}
	if opts.Theme != "" {
		s.theme = opts.Theme
	}

	path := opts.Path
	if path == "" {
		path = config.DefaultFile
	}
	resolved, err := config.ExpandPath(path)
	if err != nil {
		return settings{}, fmt.Errorf("resolve log path: %w", err)
	}
	s.path = resolved

	return s, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// session moves the file watcher along with the tailed path.
type session struct {
	*engine.Tailer
	watcher *watch.Watcher
	log     *logrus.Entry
}

func (s *session) SetPath(path string) {
	if s.watcher != nil {
		if err := s.watcher.SetPath(path); err != nil {
			s.log.WithError(err).Warn("watch new path failed")
		}
	}
	s.Tailer.SetPath(path)
}
