package ui

import "github.com/five82/tailview/internal/highlight"

// renderHeader renders the title bar: name, file path and active keywords.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Bar)
	bg := NewBgStyle(m.theme.Bar)

	path := m.snapshot.Path
	if path == "" {
		path = "no file"
	}

	parts := []string{
		bg.Render("tailview", styles.Logo),
		bg.Render(truncateMiddle(path, max(m.width/2, 20)), styles.Text),
	}
	if len(m.snapshot.Keywords) > 0 {
		parts = append(parts,
			bg.Render("match", styles.FaintText)+bg.Space()+
				bg.Render(highlight.FormatKeywords(m.snapshot.Keywords), styles.WarningText))
	}

	return styles.Header.Width(m.width).MaxHeight(1).Render(bg.Join(parts, "│", styles.FaintText))
}

// truncateMiddle shortens s to at most limit runes, keeping both ends.
func truncateMiddle(s string, limit int) string {
	runes := []rune(s)
	if limit <= 3 || len(runes) <= limit {
		return s
	}
	keep := limit - 3
	head := keep / 2
	tail := keep - head
	return string(runes[:head]) + "..." + string(runes[len(runes)-tail:])
}
