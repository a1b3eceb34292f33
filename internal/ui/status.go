package ui

import (
	"fmt"

	"github.com/five82/tailview/internal/state"
)

// statusSummary reports the buffer size, the last fetch and how long it took.
func statusSummary(snap state.Snapshot) string {
	return fmt.Sprintf("%d lines | fetched %d | %dms",
		len(displayLines(snap.Lines)), snap.Fetched(), snap.Elapsed.Milliseconds())
}

// renderStatus renders the bottom bar, or the input while a prompt is open.
func (m Model) renderStatus() string {
	styles := m.theme.Styles().WithBackground(m.theme.Bar)
	bg := NewBgStyle(m.theme.Bar)
	bar := styles.Footer.Width(m.width).MaxHeight(1)

	if m.prompt != promptNone {
		return bar.Render(m.input.View())
	}

	parts := []string{bg.Render(statusSummary(m.snapshot), styles.MutedText)}
	if m.snapshot.Truncated {
		parts = append(parts, bg.Render("truncated", styles.WarningText))
	}
	if m.snapshot.Paused {
		parts = append(parts, bg.Render("PAUSED", styles.WarningText.Bold(true)))
	}
	if err := m.snapshot.LastError; err != nil {
		text := "error: " + err.Error()
		if m.snapshot.IsUnavailable() {
			text = fmt.Sprintf("%s (%d failures)", text, m.snapshot.ConsecutiveFailures)
		}
		parts = append(parts, bg.Render(text, styles.DangerText))
	}
	if m.notice != "" {
		parts = append(parts, bg.Render(m.notice, styles.AccentText))
	}
	parts = append(parts, m.help.ShortHelpView(m.keys.ShortHelp()))

	return bar.Render(bg.Join(parts, "│", styles.FaintText))
}
