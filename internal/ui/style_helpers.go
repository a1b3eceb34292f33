package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle renders text segments that all share one background color.
// Lipgloss resets between separately rendered segments drop the background
// on the spaces in between, so spaces are rendered explicitly.
type BgStyle struct {
	bg    lipgloss.Color
	space string // cached styled space
}

// NewBgStyle creates a new background style helper for the given color.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	return BgStyle{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Render renders text with a style, keeping the background on every space.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	wordStyle := style.Background(b.bg)
	if !strings.Contains(text, " ") {
		return wordStyle.Render(text)
	}

	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = wordStyle.Render(w)
		}
	}
	return strings.Join(words, b.space)
}

// Space returns a single styled space.
func (b BgStyle) Space() string {
	return b.space
}

// Join joins rendered parts with a styled separator.
func (b BgStyle) Join(parts []string, sep string, style lipgloss.Style) string {
	return strings.Join(parts, b.space+b.Render(sep, style)+b.space)
}

// FillLine pads rendered content to the given width with the background color.
func (b BgStyle) FillLine(content string, width int) string {
	if width <= 0 {
		return content
	}
	return lipgloss.NewStyle().Background(b.bg).Width(width).Render(content)
}
