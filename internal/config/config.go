package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds tailview settings read from config.toml.
type Config struct {
	MaxLines     int
	Keywords     []string
	PollInterval time.Duration
	Encoding     string
	StripNUL     bool
	MaxReadBytes int64
	Watch        bool
}

const (
	defaultConfigPath   = "~/.config/tailview/config.toml"
	defaultMaxLines     = 1000
	defaultKeyword      = "ERROR"
	defaultPollInterval = time.Second
	defaultEncoding     = "utf-8"
	defaultMaxReadBytes = 16 * 1024 * 1024

	// DefaultFile is tailed when no file is given on the command line.
	DefaultFile = "sample.log"
)

// ErrInvalidMaxLines is returned for a line count that is not a positive integer.
var ErrInvalidMaxLines = errors.New("line count must be a positive integer")

// Default returns the built-in settings.
func Default() Config {
	return Config{
		MaxLines:     defaultMaxLines,
		Keywords:     []string{defaultKeyword},
		PollInterval: defaultPollInterval,
		Encoding:     defaultEncoding,
		StripNUL:     true,
		MaxReadBytes: defaultMaxReadBytes,
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the tailview config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		MaxLines     int       `toml:"max_lines"`
		Keywords     *[]string `toml:"keywords"`
		PollInterval string    `toml:"poll_interval"`
		Encoding     string    `toml:"encoding"`
		StripNUL     *bool     `toml:"strip_nul"`
		MaxReadBytes int64     `toml:"max_read_bytes"`
		Watch        bool      `toml:"watch"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.MaxLines < 0 {
		return Config{}, fmt.Errorf("parse config: max_lines %d: %w", raw.MaxLines, ErrInvalidMaxLines)
	}
	if raw.MaxLines > 0 {
		cfg.MaxLines = raw.MaxLines
	}

	if raw.Keywords != nil {
		cfg.Keywords = cleanKeywords(*raw.Keywords)
	}

	if interval := strings.TrimSpace(raw.PollInterval); interval != "" {
		d, err := ParseInterval(interval)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		cfg.PollInterval = d
	}

	if enc := strings.TrimSpace(raw.Encoding); enc != "" {
		cfg.Encoding = enc
	}
	if raw.StripNUL != nil {
		cfg.StripNUL = *raw.StripNUL
	}
	if raw.MaxReadBytes > 0 {
		cfg.MaxReadBytes = raw.MaxReadBytes
	}
	cfg.Watch = raw.Watch

	return cfg, nil
}

// ParseMaxLines parses user input for the line count. Invalid input returns
// prior together with ErrInvalidMaxLines so callers can keep the old value.
func ParseMaxLines(text string, prior int) (int, error) {
	trimmed := strings.TrimSpace(text)
	n, err := strconv.Atoi(trimmed)
	if err != nil || n <= 0 {
		return prior, fmt.Errorf("%w: %q", ErrInvalidMaxLines, trimmed)
	}
	return n, nil
}

// ParseInterval parses a positive Go duration such as "500ms" or "2s".
func ParseInterval(text string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("poll interval: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("poll interval %s: must be positive", d)
	}
	return d, nil
}

func cleanKeywords(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ExpandPath resolves a leading "~" and makes the path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
