package tui

import "github.com/charmbracelet/lipgloss"

// Theme groups the lipgloss styles used by the collection view.
type Theme struct {
	Header      lipgloss.Style
	Row         lipgloss.Style
	SelectedRow lipgloss.Style
	Modal       lipgloss.Style
	ModalTitle  lipgloss.Style
	Label       lipgloss.Style
	Help        lipgloss.Style
	StatusOK    lipgloss.Style
	StatusErr   lipgloss.Style
	Sidebar     lipgloss.Style
}

// DefaultTheme returns the standard color scheme.
func DefaultTheme() Theme {
	return Theme{
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Row:         lipgloss.NewStyle(),
		SelectedRow: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("57")),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("207")),
		Label:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusOK:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		StatusErr:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Sidebar:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).PaddingRight(2),
	}
}
