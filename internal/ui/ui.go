package ui

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/tailview/internal/highlight"
	"github.com/five82/tailview/internal/logx"
	"github.com/five82/tailview/internal/prefs"
	"github.com/five82/tailview/internal/state"
)

// DefaultRefreshEvery is how often the viewer pulls a fresh snapshot.
const DefaultRefreshEvery = 200 * time.Millisecond

// Controller is the tailing engine as seen by the viewer.
type Controller interface {
	SetPath(path string)
	SetMaxLines(n int) error
	SetKeywords(keywords []string)
	Reload()
	Pause()
	Resume()
	IsPaused() bool
	Poll() state.Snapshot
}

// Options configures the UI.
type Options struct {
	Context      context.Context
	Tailer       Controller
	RefreshEvery time.Duration
	ThemeName    string
	PrefsPath    string
	Logger       *logrus.Entry
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	tailer       Controller
	prefsPath    string
	refreshEvery time.Duration
	log          *logrus.Entry

	// UI state
	keys   keyMap
	help   help.Model
	theme  Theme
	width  int
	height int
	ready  bool

	// Data state
	snapshot state.Snapshot
	matcher  *highlight.Matcher

	// Log pane
	viewport       viewport.Model
	follow         bool
	autoPaused     bool // paused because the user scrolled away from the bottom
	contentVersion uint64
	lastRendered   uint64

	// Overlays
	showHelp bool
	prompt   promptKind
	input    textinput.Model
	notice   string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	refresh := opts.RefreshEvery
	if refresh <= 0 {
		refresh = DefaultRefreshEvery
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	log := opts.Logger
	if log == nil {
		log = logx.Discard()
	}

	input := textinput.New()
	input.CharLimit = 4096

	m := Model{
		ctx:          ctx,
		tailer:       opts.Tailer,
		prefsPath:    prefsPath,
		refreshEvery: refresh,
		log:          log,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		theme:        GetTheme(opts.ThemeName),
		follow:       true,
		input:        input,
	}
	if m.tailer != nil {
		m.snapshot = m.tailer.Poll()
	}
	m.matcher = highlight.Compile(m.snapshot.Keywords)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.refreshEvery)}
	if m.tailer != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.tailer))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(0, 0)
		}
		m.ready = true
		m.help.Width = msg.Width
		m.contentVersion++
		m.updateViewport()
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(m.refreshEvery)}
		if m.tailer != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.tailer))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil
	}

	return m, nil
}

// applySnapshot stores a new snapshot and re-renders only when the visible
// content changed.
func (m *Model) applySnapshot(snap state.Snapshot) {
	if !slices.Equal(snap.Keywords, m.snapshot.Keywords) {
		m.matcher = highlight.Compile(snap.Keywords)
		m.contentVersion++
	}
	if snap.Seq != m.snapshot.Seq || snap.Path != m.snapshot.Path || snap.MaxLines != m.snapshot.MaxLines {
		m.contentVersion++
	}
	m.snapshot = snap
	m.updateViewport()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.prompt != promptNone {
		return m.handlePromptKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs(func(p *prefs.Prefs) { p.Theme = m.theme.Name })
		m.contentVersion++
		m.updateViewport()
		return m, nil

	case key.Matches(msg, m.keys.TogglePause):
		if m.tailer == nil {
			return m, nil
		}
		if m.tailer.IsPaused() {
			m.resumeFollow()
		} else {
			m.tailer.Pause()
			m.autoPaused = false
			m.follow = false
		}
		return m, fetchSnapshotCmd(m.tailer)

	case key.Matches(msg, m.keys.Reload):
		if m.tailer != nil {
			m.tailer.Reload()
			m.notice = "reloading"
		}
		return m, nil

	case key.Matches(msg, m.keys.SetLines):
		cmd := m.openPrompt(promptLines)
		return m, cmd

	case key.Matches(msg, m.keys.SetKeywords):
		cmd := m.openPrompt(promptKeywords)
		return m, cmd

	case key.Matches(msg, m.keys.OpenFile):
		cmd := m.openPrompt(promptOpen)
		return m, cmd

	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		m.holdScroll()
	case key.Matches(msg, m.keys.Up):
		m.viewport.ScrollUp(1)
		m.holdScroll()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.PageUp()
		m.holdScroll()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.HalfPageUp()
		m.holdScroll()

	case key.Matches(msg, m.keys.Bottom):
		m.resumeFollow()
	case key.Matches(msg, m.keys.Down):
		m.viewport.ScrollDown(1)
		m.releaseAtBottom()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.PageDown()
		m.releaseAtBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.HalfPageDown()
		m.releaseAtBottom()
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.holdScroll()
	case tea.MouseButtonWheelDown:
		m.releaseAtBottom()
	}
	return m, cmd
}

// holdScroll stops following so the text under the reader stays put. Polling
// is paused too unless the user already paused it.
func (m *Model) holdScroll() {
	m.follow = false
	if m.tailer != nil && !m.tailer.IsPaused() {
		m.tailer.Pause()
		m.autoPaused = true
	}
}

// releaseAtBottom resumes a scroll-induced pause once the bottom is reached.
func (m *Model) releaseAtBottom() {
	if m.autoPaused && m.viewport.AtBottom() {
		m.resumeFollow()
	}
}

func (m *Model) resumeFollow() {
	m.follow = true
	m.autoPaused = false
	if m.tailer != nil {
		m.tailer.Resume()
	}
	m.viewport.GotoBottom()
}

func (m *Model) savePrefs(fn func(*prefs.Prefs)) {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Update(m.prefsPath, fn); err != nil {
		m.log.WithError(err).Warn("save prefs failed")
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(c Controller) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(c.Poll())
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-m.ctx.Done():
			p.Quit()
		case <-done:
		}
	}()

	_, err := p.Run()
	return err
}
