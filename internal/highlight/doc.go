// Package highlight finds keyword matches in log lines and renders them.
//
// Matching is case-insensitive and literal: each keyword is quoted with
// regexp.QuoteMeta and compiled with the (?i) flag. Find returns raw spans and
// never merges overlaps, which leaves the choice to the renderer:
//
//   - ANSI rewrites each line keyword by keyword, wrapping matches in
//     terminal escape markers. It is used by the plain CLI stream.
//   - Styled paints the union of all spans with a lipgloss style. It is used
//     by the interactive viewer.
package highlight
