package highlight

import (
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Markers are the delimiters the ANSI renderer wraps around each match.
type Markers struct {
	Start string
	End   string
}

// DefaultMarkers render matches in bold red.
var DefaultMarkers = Markers{Start: "\x1b[1;31m", End: "\x1b[0m"}

// Span is a keyword match inside a line. Start and End are byte offsets;
// Keyword is the index of the matching term in the keyword list.
type Span struct {
	Start   int
	End     int
	Keyword int
}

// Matcher holds compiled case-insensitive patterns for a keyword list.
type Matcher struct {
	keywords []string
	patterns []*regexp.Regexp
	index    []int
}

// Compile builds a Matcher. Empty keywords are ignored.
func Compile(keywords []string) *Matcher {
	m := &Matcher{keywords: append([]string(nil), keywords...)}
	for i, kw := range keywords {
		if kw == "" {
			continue
		}
		m.patterns = append(m.patterns, regexp.MustCompile("(?i)"+regexp.QuoteMeta(kw)))
		m.index = append(m.index, i)
	}
	return m
}

// Keywords returns the keyword list the matcher was built from.
func (m *Matcher) Keywords() []string {
	return append([]string(nil), m.keywords...)
}

// Empty reports whether the matcher has no usable keyword.
func (m *Matcher) Empty() bool {
	return m == nil || len(m.patterns) == 0
}

// Find returns every match of every keyword, keyword by keyword and left to
// right within a keyword. Overlapping matches of different keywords are all
// reported.
func (m *Matcher) Find(line string) []Span {
	if m.Empty() || line == "" {
		return nil
	}
	var spans []Span
	for i, re := range m.patterns {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			spans = append(spans, Span{Start: loc[0], End: loc[1], Keyword: m.index[i]})
		}
	}
	return spans
}

// ANSI wraps matches in each line with the markers. Keywords are applied one
// after another to the already rewritten line, so a later keyword can match
// inside an earlier wrap.
func (m *Matcher) ANSI(lines []string, markers Markers) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		for _, re := range m.patterns {
			line = re.ReplaceAllStringFunc(line, func(s string) string {
				return markers.Start + s + markers.End
			})
		}
		out[i] = line
	}
	return out
}

// Find is a convenience wrapper around Compile(keywords).Find(line).
func Find(line string, keywords []string) []Span {
	return Compile(keywords).Find(line)
}

// ANSI is a convenience wrapper around Compile(keywords).ANSI(lines, markers).
func ANSI(lines, keywords []string, markers Markers) []string {
	return Compile(keywords).ANSI(lines, markers)
}

// Styled renders line with base for unmatched text and match for every byte
// covered by at least one span.
func Styled(line string, spans []Span, base, match lipgloss.Style) string {
	if len(spans) == 0 {
		return base.Render(line)
	}

	covered := merge(spans, len(line))
	var b strings.Builder
	pos := 0
	for _, s := range covered {
		if s.Start > pos {
			b.WriteString(base.Render(line[pos:s.Start]))
		}
		b.WriteString(match.Render(line[s.Start:s.End]))
		pos = s.End
	}
	if pos < len(line) {
		b.WriteString(base.Render(line[pos:]))
	}
	return b.String()
}

// merge returns the union of spans as sorted, disjoint ranges clamped to n.
func merge(spans []Span, n int) []Span {
	sorted := make([]Span, 0, len(spans))
	for _, s := range spans {
		s.Start = max(0, s.Start)
		s.End = min(n, s.End)
		if s.End > s.Start {
			sorted = append(sorted, s)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	var out []Span
	for _, s := range sorted {
		if last := len(out) - 1; last >= 0 && s.Start <= out[last].End {
			out[last].End = max(out[last].End, s.End)
			continue
		}
		out = append(out, s)
	}
	return out
}

// ParseKeywords splits comma-separated input into trimmed, non-empty terms.
func ParseKeywords(text string) []string {
	var keywords []string
	for _, part := range strings.Split(text, ",") {
		if kw := strings.TrimSpace(part); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// FormatKeywords joins keywords for display in an input field.
func FormatKeywords(keywords []string) string {
	return strings.Join(keywords, ", ")
}
