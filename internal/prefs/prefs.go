// Package prefs handles tailview user preferences persistence.
// Preferences are stored in ~/.config/tailview/prefs.toml and record what the
// user last chose in the viewer: theme, line count and keywords.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/tailview/internal/config"
)

// Prefs holds user preferences for tailview. Zero MaxLines and nil Keywords
// mean the user never changed them.
type Prefs struct {
	Theme    string   `toml:"theme"`
	MaxLines int      `toml:"max_lines,omitempty"`
	Keywords []string `toml:"keywords,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/tailview/prefs.toml"
	defaultTheme     = "Nightfox"
)

// ErrInvalid is returned by Load when the prefs file exists but cannot be
// parsed. The returned Prefs are the defaults and remain usable.
var ErrInvalid = errors.New("invalid prefs file")

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

func defaults() Prefs {
	return Prefs{Theme: defaultTheme}
}

// Load reads preferences from path. A missing file yields the defaults and no
// error; an unreadable or malformed file yields the defaults and an error the
// caller may log and otherwise ignore.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return defaults(), fmt.Errorf("resolve path: %w", err)
	}

	data, err := os.ReadFile(resolved)
	if errors.Is(err, os.ErrNotExist) {
		return defaults(), nil
	}
	if err != nil {
		return defaults(), fmt.Errorf("read prefs: %w", err)
	}

	p := defaults()
	if err := toml.Unmarshal(data, &p); err != nil {
		return defaults(), fmt.Errorf("%w %s: %w", ErrInvalid, resolved, err)
	}

	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = defaultTheme
	}
	p.MaxLines = max(p.MaxLines, 0)
	return p, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// Update loads the preferences at path, applies fn and saves the result. A
// malformed file is replaced.
func Update(path string, fn func(*Prefs)) error {
	p, err := Load(path)
	if err != nil && !errors.Is(err, ErrInvalid) {
		return err
	}
	fn(&p)
	return Save(path, p)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	return config.ExpandPath(path)
}
