// Package tui draws rendered pages in the terminal and runs the
// interactive viewer.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	Primary = lipgloss.Color("#101F38")
	Accent  = lipgloss.Color("#8BC34A")
	Muted   = lipgloss.Color("#8a94a6")
	Remote  = lipgloss.Color("#2196F3")
	Border  = lipgloss.Color("#2a3850")
)

// Styles groups the lipgloss styles used by the viewer.
type Styles struct {
	Title      lipgloss.Style
	Tab        lipgloss.Style
	ActiveTab  lipgloss.Style
	Week       lipgloss.Style
	ActiveWeek lipgloss.Style
	Day        lipgloss.Style
	Card       lipgloss.Style
	CardTitle  lipgloss.Style
	Remote     lipgloss.Style
	Muted      lipgloss.Style
	Footer     lipgloss.Style
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(Accent).MarginBottom(1),
		Tab:        lipgloss.NewStyle().Padding(0, 1).Foreground(Muted),
		ActiveTab:  lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(Primary),
		Week:       lipgloss.NewStyle().Padding(0, 1).Foreground(Muted),
		ActiveWeek: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(Accent).Underline(true),
		Day:        lipgloss.NewStyle().Bold(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1).
			MarginTop(1),
		CardTitle: lipgloss.NewStyle().Bold(true),
		Remote:    lipgloss.NewStyle().Foreground(Remote),
		Muted:     lipgloss.NewStyle().Foreground(Muted),
		Footer:    lipgloss.NewStyle().Foreground(Muted).MarginTop(1),
	}
}

// PlainStyles returns unstyled renderers, for pipes and tests.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title: plain, Tab: plain, ActiveTab: plain, Week: plain, ActiveWeek: plain,
		Day: plain, Card: plain, CardTitle: plain, Remote: plain, Muted: plain, Footer: plain,
	}
}
