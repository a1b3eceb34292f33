package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tailview/internal/config"
	"github.com/five82/tailview/internal/highlight"
	"github.com/five82/tailview/internal/prefs"
)

// promptKind selects what the status bar input edits.
type promptKind int

const (
	promptNone promptKind = iota
	promptLines
	promptKeywords
	promptOpen
)

func (p promptKind) label() string {
	switch p {
	case promptLines:
		return "Lines: "
	case promptKeywords:
		return "Keywords: "
	case promptOpen:
		return "Open: "
	default:
		return ""
	}
}

// openPrompt focuses the input prefilled with the current value.
func (m *Model) openPrompt(kind promptKind) tea.Cmd {
	var value string
	switch kind {
	case promptLines:
		value = strconv.Itoa(m.snapshot.MaxLines)
	case promptKeywords:
		value = highlight.FormatKeywords(m.snapshot.Keywords)
	case promptOpen:
		value = m.snapshot.Path
	}

	m.prompt = kind
	m.notice = ""
	m.input.Prompt = kind.label()
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		kind, value := m.prompt, m.input.Value()
		m.closePrompt()
		m.applyPrompt(kind, value)
		if m.tailer == nil {
			return m, nil
		}
		return m, fetchSnapshotCmd(m.tailer)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// applyPrompt hands the submitted value to the tailer and records the choice
// in prefs. Invalid input leaves everything unchanged and shows why.
func (m *Model) applyPrompt(kind promptKind, value string) {
	if m.tailer == nil {
		return
	}

	switch kind {
	case promptLines:
		n, err := config.ParseMaxLines(value, m.snapshot.MaxLines)
		if err != nil {
			m.notice = err.Error()
			return
		}
		if err := m.tailer.SetMaxLines(n); err != nil {
			m.notice = err.Error()
			return
		}
		m.savePrefs(func(p *prefs.Prefs) { p.MaxLines = n })
		m.notice = fmt.Sprintf("showing last %d lines", n)

	case promptKeywords:
		keywords := highlight.ParseKeywords(value)
		m.tailer.SetKeywords(keywords)
		m.savePrefs(func(p *prefs.Prefs) { p.Keywords = keywords })
		if len(keywords) == 0 {
			m.notice = "highlighting off"
		} else {
			m.notice = "highlighting " + highlight.FormatKeywords(keywords)
		}

	case promptOpen:
		path, err := config.ExpandPath(value)
		if err != nil {
			m.notice = err.Error()
			return
		}
		m.tailer.SetPath(path)
		m.follow = true
		m.notice = "opened " + path
	}
}
