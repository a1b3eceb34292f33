// Package logx sets up the logrus logger shared by tailview components.
//
// The interactive viewer owns the terminal, so in TUI mode nothing is written
// to stderr: logs go to TAILVIEW_LOG_FILE when it is set and are dropped
// otherwise. The CLI stream logs to stderr. TAILVIEW_LOG_LEVEL selects the
// level (debug, info, warn, error; default info).
package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	envLevel = "TAILVIEW_LOG_LEVEL"
	envFile  = "TAILVIEW_LOG_FILE"
)

// Mode selects where logs go when no file is configured.
type Mode int

const (
	ModeCLI Mode = iota
	ModeTUI
)

// Options configure New.
type Options struct {
	Mode  Mode
	Level string // empty uses info
	File  string // empty logs to stderr (CLI) or nowhere (TUI)

	// Output replaces stderr in CLI mode when File is empty.
	Output io.Writer
}

// OptionsFromEnv reads the level and log file from the environment.
func OptionsFromEnv(mode Mode) Options {
	return Options{
		Mode:  mode,
		Level: strings.TrimSpace(os.Getenv(envLevel)),
		File:  strings.TrimSpace(os.Getenv(envFile)),
	}
}

// New builds a logger. The returned closer releases the log file, if any.
func New(opts Options) (*logrus.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: time.RFC3339,
		FullTimestamp:   true,
	})

	var closer io.Closer = nopCloser{}
	switch {
	case opts.File != "":
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		l.SetOutput(f)
		closer = f
	case opts.Mode == ModeTUI:
		l.SetOutput(io.Discard)
	case opts.Output != nil:
		l.SetOutput(opts.Output)
	default:
		l.SetOutput(os.Stderr)
	}
	return l, closer, nil
}

// ParseLevel accepts the usual level names; "warning" is an alias of "warn".
func ParseLevel(name string) (logrus.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return logrus.InfoLevel, nil
	case "debug":
		return logrus.DebugLevel, nil
	case "info":
		return logrus.InfoLevel, nil
	case "warn", "warning":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	default:
		return logrus.InfoLevel, fmt.Errorf("unknown log level %q", name)
	}
}

// Component returns an entry tagged with the component name.
func Component(l *logrus.Logger, name string) *logrus.Entry {
	if l == nil {
		l = discard()
	}
	return l.WithField("component", name)
}

// Discard returns an entry that drops everything. Useful as a default.
func Discard() *logrus.Entry {
	return logrus.NewEntry(discard())
}

func discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
