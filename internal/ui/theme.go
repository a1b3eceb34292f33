package ui

import "github.com/charmbracelet/lipgloss"

// Theme is a named color palette for the viewer.
type Theme struct {
	Name string

	Base string // behind everything, including the pane border
	Bar  string // header and status bar
	Pane string // log pane

	Border       string
	BorderFollow string // border while the pane follows the file

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Warning string
	Danger  string

	MatchBg   string
	MatchText string
}

// Styles contains the lipgloss styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	Match       lipgloss.Style

	Header lipgloss.Style
	Footer lipgloss.Style
	Logo   lipgloss.Style
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Styles builds the styles for this theme. Text styles carry no background;
// use WithBackground before rendering onto a colored area.
func (t Theme) Styles() Styles {
	bar := lipgloss.NewStyle().
		Background(lipgloss.Color(t.Bar)).
		Padding(0, 1)

	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		WarningText: fg(t.Warning).Bold(true),
		DangerText:  fg(t.Danger).Bold(true),
		Match: fg(t.MatchText).
			Background(lipgloss.Color(t.MatchBg)).
			Bold(true),

		Header: bar.Foreground(lipgloss.Color(t.Text)),
		Footer: bar.Foreground(lipgloss.Color(t.Muted)),
		Logo:   fg(t.Warning).Bold(true),
	}
}

// WithBackground sets bgColor on every text style so that no segment falls
// back to the terminal background. Match keeps its own background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.WarningText, &out.DangerText, &out.Logo,
	} {
		*st = st.Background(bg)
	}
	return out
}

// themes lists the palettes in cycling order; the first is the default.
var themes = []Theme{
	{
		// https://github.com/EdenEast/nightfox.nvim
		Name:         "Nightfox",
		Base:         "#131a24",
		Bar:          "#192330",
		Pane:         "#212e3f",
		Border:       "#39506d",
		BorderFollow: "#719cd6",
		Text:         "#cdcecf",
		Muted:        "#738091",
		Faint:        "#71839b",
		Accent:       "#719cd6",
		Warning:      "#dbc074",
		Danger:       "#c94f6d",
		MatchBg:      "#c94f6d",
		MatchText:    "#131a24",
	},
	{
		// https://github.com/rebelot/kanagawa.nvim
		Name:         "Kanagawa",
		Base:         "#16161D",
		Bar:          "#1F1F28",
		Pane:         "#2A2A37",
		Border:       "#54546D",
		BorderFollow: "#7E9CD8",
		Text:         "#DCD7BA",
		Muted:        "#C8C093",
		Faint:        "#727169",
		Accent:       "#7E9CD8",
		Warning:      "#E6C384",
		Danger:       "#E46876",
		MatchBg:      "#E46876",
		MatchText:    "#16161D",
	},
	{
		// Tailwind slate and sky
		Name:         "Slate",
		Base:         "#020617",
		Bar:          "#0f172a",
		Pane:         "#1e293b",
		Border:       "#334155",
		BorderFollow: "#38bdf8",
		Text:         "#f1f5f9",
		Muted:        "#94a3b8",
		Faint:        "#64748b",
		Accent:       "#38bdf8",
		Warning:      "#f59e0b",
		Danger:       "#ef4444",
		MatchBg:      "#dc2626",
		MatchText:    "#f8fafc",
	},
}

// GetTheme returns the named theme, or the default for unknown names.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the theme after current, wrapping around.
func NextTheme(current string) string {
	for i, t := range themes {
		if t.Name == current {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}

// ThemeNames returns the theme names in cycling order.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
