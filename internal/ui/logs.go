package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tailview/internal/highlight"
)

// tabWidth is how many spaces a tab expands to in the log pane.
const tabWidth = 4

// displayLines drops the empty sentinel that follows a trailing newline.
func displayLines(lines []string) []string {
	if n := len(lines); n > 0 && lines[n-1] == "" {
		return lines[:n-1]
	}
	return lines
}

// updateViewport resizes the log pane and re-renders its content when the
// snapshot, keywords, theme or width changed since the last render.
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}

	width, height := m.logPaneSize()
	sizeChanged := m.viewport.Width != width || m.viewport.Height != height
	m.viewport.Width = width
	m.viewport.Height = height

	if sizeChanged || m.contentVersion != m.lastRendered {
		m.viewport.SetContent(m.renderLogContent(width))
		m.lastRendered = m.contentVersion
	}
	if m.follow {
		m.viewport.GotoBottom()
	}
}

// logPaneSize returns the inner size of the bordered log pane.
func (m Model) logPaneSize() (int, int) {
	width := max(m.width-2, 1)
	// header, status bar and the two border rows
	height := max(m.height-4, 1)
	return width, height
}

// renderLogContent renders every buffered line with a line number gutter and
// keyword highlighting.
func (m Model) renderLogContent(width int) string {
	styles := m.theme.Styles().WithBackground(m.theme.Pane)
	bg := NewBgStyle(m.theme.Pane)

	lines := displayLines(m.snapshot.Lines)
	if len(lines) == 0 {
		return bg.FillLine(bg.Render(m.emptyMessage(), styles.MutedText), width)
	}

	gutter := max(len(strconv.Itoa(len(lines))), 4)
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		number := bg.Render(fmt.Sprintf("%*d │ ", gutter, i+1), styles.FaintText)
		b.WriteString(bg.FillLine(number+renderLogLine(line, m.matcher, styles), width))
	}
	return b.String()
}

// renderLogLine expands tabs and paints keyword matches.
func renderLogLine(line string, matcher *highlight.Matcher, styles Styles) string {
	line = strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))
	return highlight.Styled(line, matcher.Find(line), styles.Text, styles.Match)
}

func (m Model) emptyMessage() string {
	path := m.snapshot.Path
	if path == "" {
		return "No file selected. Press o to open one."
	}
	if m.snapshot.LastError != nil {
		return fmt.Sprintf("Cannot read %s: %v", path, m.snapshot.LastError)
	}
	if !m.snapshot.LastUpdated.IsZero() {
		return fmt.Sprintf("%s is empty", path)
	}
	return fmt.Sprintf("Waiting for %s...", path)
}

// renderLogPane draws the viewport inside a border that lights up while
// following.
func (m Model) renderLogPane() string {
	border := m.theme.Border
	if m.follow && !m.snapshot.Paused {
		border = m.theme.BorderFollow
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		BorderBackground(lipgloss.Color(m.theme.Base)).
		Background(lipgloss.Color(m.theme.Pane)).
		Render(m.viewport.View())
}

// renderMain composes header, log pane and status bar.
func (m Model) renderMain() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderLogPane(),
		m.renderStatus(),
	)
}
