package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/weathernow/internal/preferences"
)

// palette is one colour scheme
type palette struct {
	primary lipgloss.Color
	accent  lipgloss.Color
	danger  lipgloss.Color
	success lipgloss.Color
	muted   lipgloss.Color
	border  lipgloss.Color
	text    lipgloss.Color
	inverse lipgloss.Color
}

var (
	darkPalette = palette{
		primary: lipgloss.Color("#00BFFF"), // Deep sky blue
		accent:  lipgloss.Color("#87CEEB"), // Sky blue
		danger:  lipgloss.Color("#FF6B6B"),
		success: lipgloss.Color("#6BCF7F"),
		muted:   lipgloss.Color("#6C757D"),
		border:  lipgloss.Color("#4A90E2"),
		text:    lipgloss.Color("#FFFFFF"),
		inverse: lipgloss.Color("#0B1220"),
	}

	lightPalette = palette{
		primary: lipgloss.Color("#0B5ED7"),
		accent:  lipgloss.Color("#1E88E5"),
		danger:  lipgloss.Color("#C62828"),
		success: lipgloss.Color("#2E7D32"),
		muted:   lipgloss.Color("#5F6B7A"),
		border:  lipgloss.Color("#90A4AE"),
		text:    lipgloss.Color("#1A1A1A"),
		inverse: lipgloss.Color("#FFFFFF"),
	}
)

// styles are rebuilt whenever the theme changes
type styles struct {
	title         lipgloss.Style
	subtitle      lipgloss.Style
	label         lipgloss.Style
	value         lipgloss.Style
	muted         lipgloss.Style
	help          lipgloss.Style
	errorBanner   lipgloss.Style
	success       lipgloss.Style
	searchBox     lipgloss.Style
	card          lipgloss.Style
	sectionHeader lipgloss.Style
	suggestion    lipgloss.Style
	activeSuggest lipgloss.Style
	sparkline     lipgloss.Style
	spinner       lipgloss.Style
}

func newStyles(theme preferences.Theme) styles {
	p := darkPalette
	if theme == preferences.ThemeLight {
		p = lightPalette
	}

	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary),

		subtitle: lipgloss.NewStyle().
			Foreground(p.muted),

		label: lipgloss.NewStyle().
			Foreground(p.muted).
			Bold(true),

		value: lipgloss.NewStyle().
			Foreground(p.text),

		muted: lipgloss.NewStyle().
			Foreground(p.muted),

		help: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(1, 0),

		errorBanner: lipgloss.NewStyle().
			Foreground(p.danger).
			Bold(true).
			Padding(0, 2),

		success: lipgloss.NewStyle().
			Foreground(p.success),

		searchBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1).
			Width(64),

		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(1, 2).
			Width(64),

		sectionHeader: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginTop(1),

		suggestion: lipgloss.NewStyle().
			Foreground(p.text).
			Padding(0, 1),

		activeSuggest: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.inverse).
			Background(p.primary).
			Padding(0, 1),

		sparkline: lipgloss.NewStyle().
			Foreground(p.accent),

		spinner: lipgloss.NewStyle().
			Foreground(p.primary),
	}
}
