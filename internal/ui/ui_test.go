package ui

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tailview/internal/config"
	"github.com/five82/tailview/internal/prefs"
	"github.com/five82/tailview/internal/state"
)

type fakeController struct {
	mu       sync.Mutex
	snap     state.Snapshot
	paused   bool
	reloads  int
	setPaths []string
}

func newFakeController(lines ...string) *fakeController {
	return &fakeController{snap: state.Snapshot{
		Path:     "/var/log/app.log",
		Lines:    lines,
		MaxLines: 100,
		Seq:      1,
	}}
}

func (f *fakeController) SetPath(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setPaths = append(f.setPaths, path)
	f.snap.Path = path
	f.snap.Seq++
}

func (f *fakeController) SetMaxLines(n int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n <= 0 {
		return config.ErrInvalidMaxLines
	}
	f.snap.MaxLines = n
	return nil
}

func (f *fakeController) SetKeywords(keywords []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap.Keywords = keywords
}

func (f *fakeController) Reload() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reloads++
}

func (f *fakeController) Pause() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused = true
	f.snap.Paused = true
}

func (f *fakeController) Resume() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused = false
	f.snap.Paused = false
}

func (f *fakeController) IsPaused() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paused
}

func (f *fakeController) Poll() state.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func newTestModel(t *testing.T, ctrl *fakeController) Model {
	t.Helper()
	m := New(Options{
		Tailer:    ctrl,
		ThemeName: "Nightfox",
		PrefsPath: t.TempDir() + "/prefs.toml",
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 12})
	return updated.(Model)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = press(t, m, runes(string(r)))
	}
	return m
}

func manyLines(n int) []string {
	lines := make([]string, 0, n+1)
	for i := range n {
		lines = append(lines, "line "+strings.Repeat("x", i%7))
	}
	return append(lines, "")
}

func TestDisplayLinesDropsTrailingSentinel(t *testing.T) {
	got := displayLines([]string{"a", "b", ""})
	if len(got) != 2 || got[1] != "b" {
		t.Fatalf("displayLines() = %q, want [a b]", got)
	}
	if got := displayLines([]string{"a", "partial"}); len(got) != 2 {
		t.Fatalf("displayLines() dropped a partial line: %q", got)
	}
	if got := displayLines(nil); len(got) != 0 {
		t.Fatalf("displayLines(nil) = %q", got)
	}
}

func TestStatusSummary(t *testing.T) {
	snap := state.Snapshot{
		Lines:    []string{"a", "b", "c", ""},
		NewLines: []string{"c", ""},
		Elapsed:  12 * time.Millisecond,
	}
	if got, want := statusSummary(snap), "3 lines | fetched 2 | 12ms"; got != want {
		t.Fatalf("statusSummary() = %q, want %q", got, want)
	}
}

func TestViewBeforeResize(t *testing.T) {
	m := New(Options{Tailer: newFakeController("x"), PrefsPath: t.TempDir() + "/prefs.toml"})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View() before resize = %q", got)
	}
}

func TestViewRendersLinesAndPath(t *testing.T) {
	m := newTestModel(t, newFakeController("first entry", "ERROR boom", ""))
	view := m.View()
	for _, want := range []string{"tailview", "/var/log/app.log", "first entry", "ERROR boom", "2 lines"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestViewShowsErrorWhenEmpty(t *testing.T) {
	ctrl := newFakeController()
	ctrl.snap.LastError = errors.New("log file not found")
	ctrl.snap.ConsecutiveFailures = 3
	m := newTestModel(t, ctrl)

	view := m.View()
	if !strings.Contains(view, "Cannot read /var/log/app.log") {
		t.Fatalf("View() missing empty-state error:\n%s", view)
	}
	if !strings.Contains(view, "3 failures") {
		t.Fatalf("View() missing failure count:\n%s", view)
	}
}

func TestSnapshotMsgRerendersOnNewSeq(t *testing.T) {
	ctrl := newFakeController("one", "")
	m := newTestModel(t, ctrl)
	before := m.contentVersion

	updated, _ := m.Update(snapshotMsg(ctrl.Poll()))
	m = updated.(Model)
	if m.contentVersion != before {
		t.Fatalf("unchanged snapshot bumped content version %d -> %d", before, m.contentVersion)
	}

	next := ctrl.Poll()
	next.Lines = []string{"one", "two", ""}
	next.Seq++
	updated, _ = m.Update(snapshotMsg(next))
	m = updated.(Model)
	if m.contentVersion == before {
		t.Fatal("new snapshot did not bump content version")
	}
	if !strings.Contains(m.View(), "two") {
		t.Fatal("View() missing appended line")
	}
}

func TestSpaceTogglesPause(t *testing.T) {
	ctrl := newFakeController("a", "")
	m := newTestModel(t, ctrl)

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !ctrl.IsPaused() {
		t.Fatal("space did not pause")
	}
	if m.follow {
		t.Fatal("follow still on after pause")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if ctrl.IsPaused() {
		t.Fatal("space did not resume")
	}
	if !m.follow {
		t.Fatal("follow not restored after resume")
	}
}

func TestScrollUpPausesAndBottomResumes(t *testing.T) {
	ctrl := newFakeController(manyLines(50)...)
	m := newTestModel(t, ctrl)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if !ctrl.IsPaused() || !m.autoPaused {
		t.Fatalf("scroll up: paused=%v autoPaused=%v, want both true", ctrl.IsPaused(), m.autoPaused)
	}

	m = press(t, m, runes("G"))
	if ctrl.IsPaused() || m.autoPaused || !m.follow {
		t.Fatalf("G: paused=%v autoPaused=%v follow=%v", ctrl.IsPaused(), m.autoPaused, m.follow)
	}
}

func TestScrollDownToBottomResumesAutoPause(t *testing.T) {
	ctrl := newFakeController(manyLines(50)...)
	m := newTestModel(t, ctrl)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if ctrl.IsPaused() {
		t.Fatal("reaching the bottom did not resume polling")
	}
}

func TestScrollKeepsExplicitPause(t *testing.T) {
	ctrl := newFakeController(manyLines(50)...)
	m := newTestModel(t, ctrl)

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if !ctrl.IsPaused() {
		t.Fatal("scrolling lifted an explicit pause")
	}
	if m.autoPaused {
		t.Fatal("explicit pause marked as automatic")
	}
}

func TestReloadKey(t *testing.T) {
	ctrl := newFakeController("a")
	m := newTestModel(t, ctrl)
	m = press(t, m, runes("r"))
	if ctrl.reloads != 1 {
		t.Fatalf("reloads = %d, want 1", ctrl.reloads)
	}
	if m.notice != "reloading" {
		t.Fatalf("notice = %q", m.notice)
	}
}

func TestLinesPromptAppliesAndSaves(t *testing.T) {
	ctrl := newFakeController("a")
	m := newTestModel(t, ctrl)

	m = press(t, m, runes("L"))
	if m.prompt != promptLines {
		t.Fatalf("prompt = %v, want promptLines", m.prompt)
	}
	if m.input.Value() != "100" {
		t.Fatalf("prefilled value = %q, want 100", m.input.Value())
	}

	m.input.SetValue("")
	m = typeText(t, m, "250")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.prompt != promptNone {
		t.Fatal("prompt still open after enter")
	}
	if got := ctrl.Poll().MaxLines; got != 250 {
		t.Fatalf("MaxLines = %d, want 250", got)
	}
	p, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.MaxLines != 250 {
		t.Fatalf("saved MaxLines = %d, want 250", p.MaxLines)
	}
}

func TestLinesPromptRejectsInvalid(t *testing.T) {
	ctrl := newFakeController("a")
	m := newTestModel(t, ctrl)

	m = press(t, m, runes("L"))
	m.input.SetValue("abc")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := ctrl.Poll().MaxLines; got != 100 {
		t.Fatalf("MaxLines = %d, want unchanged 100", got)
	}
	if !strings.Contains(m.notice, "positive integer") {
		t.Fatalf("notice = %q, want invalid input message", m.notice)
	}
}

func TestKeywordsPrompt(t *testing.T) {
	ctrl := newFakeController("a")
	m := newTestModel(t, ctrl)

	m = press(t, m, runes("K"))
	m.input.SetValue("ERROR, WARN ,")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	got := ctrl.Poll().Keywords
	if len(got) != 2 || got[0] != "ERROR" || got[1] != "WARN" {
		t.Fatalf("Keywords = %q, want [ERROR WARN]", got)
	}
	p, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if len(p.Keywords) != 2 {
		t.Fatalf("saved Keywords = %q", p.Keywords)
	}
}

func TestOpenPromptSetsPath(t *testing.T) {
	ctrl := newFakeController("a")
	m := newTestModel(t, ctrl)
	target := t.TempDir() + "/other.log"

	m = press(t, m, runes("o"))
	m.input.SetValue(target)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(ctrl.setPaths) != 1 || ctrl.setPaths[0] != target {
		t.Fatalf("SetPath calls = %q, want [%s]", ctrl.setPaths, target)
	}
}

func TestPromptCancel(t *testing.T) {
	ctrl := newFakeController("a")
	m := newTestModel(t, ctrl)

	m = press(t, m, runes("o"))
	m.input.SetValue("/somewhere/else.log")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.prompt != promptNone {
		t.Fatal("esc did not close the prompt")
	}
	if len(ctrl.setPaths) != 0 {
		t.Fatalf("cancelled prompt called SetPath: %q", ctrl.setPaths)
	}
}

func TestPromptSwallowsShortcuts(t *testing.T) {
	ctrl := newFakeController("a")
	m := newTestModel(t, ctrl)

	m = press(t, m, runes("K"))
	m.input.SetValue("")
	m = typeText(t, m, "rq")
	if ctrl.reloads != 0 {
		t.Fatal("typing r in the prompt triggered reload")
	}
	if m.input.Value() != "rq" {
		t.Fatalf("input = %q, want rq", m.input.Value())
	}
}

func TestThemeCycleSavesPrefs(t *testing.T) {
	m := newTestModel(t, newFakeController("a"))
	m = press(t, m, runes("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	p, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Theme != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", p.Theme)
	}
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t, newFakeController("a"))
	m = press(t, m, runes("?"))
	if !m.showHelp {
		t.Fatal("? did not open help")
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("help overlay missing title")
	}
	m = press(t, m, runes("x"))
	if m.showHelp {
		t.Fatal("any key should close help")
	}
}

func TestHelpSectionsFollowKeyMap(t *testing.T) {
	keys := DefaultKeyMap()
	sections := helpSections(keys)
	groups := keys.FullHelp()
	if len(sections) != len(groups) {
		t.Fatalf("sections = %d, want %d", len(sections), len(groups))
	}
	for i, section := range sections {
		if len(section.items) != len(groups[i]) {
			t.Fatalf("section %q has %d items, want %d", section.title, len(section.items), len(groups[i]))
		}
	}
	if sections[1].title != "Tailing" {
		t.Fatalf("second section = %q, want Tailing", sections[1].title)
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t, newFakeController("a"))
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not quit")
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("short", 10); got != "short" {
		t.Fatalf("truncateMiddle(short) = %q", got)
	}
	got := truncateMiddle("/very/long/path/to/some/file.log", 15)
	if len([]rune(got)) != 15 || !strings.Contains(got, "...") {
		t.Fatalf("truncateMiddle() = %q", got)
	}
	if !strings.HasSuffix(got, ".log") {
		t.Fatalf("truncateMiddle() lost the file name: %q", got)
	}
}
