package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme contains style tokens used by the terminal UI.
type Theme struct {
	Name               string
	StatusBarStyle     lipgloss.Style
	PanelStyle         lipgloss.Style
	SliderPanelStyle   lipgloss.Style
	TabStyle           lipgloss.Style
	ActiveTabStyle     lipgloss.Style
	HeadingStyle       lipgloss.Style
	FocusedSliderStyle lipgloss.Style
	FigureStyle        lipgloss.Style
	SavingStyle        lipgloss.Style
	LossStyle          lipgloss.Style
	BarStyle           lipgloss.Style
	MutedStyle         lipgloss.Style
	ErrorStyle         lipgloss.Style
}

// ResolveTheme returns the configured theme or the dark default.
func ResolveTheme(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light":
		return newLightTheme()
	default:
		return newDarkTheme()
	}
}

func newDarkTheme() Theme {
	border := lipgloss.Color("63")
	muted := lipgloss.Color("245")
	return Theme{
		Name: "dark",
		StatusBarStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("63")).
			Padding(0, 1),
		PanelStyle: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(border).
			Padding(0, 1),
		SliderPanelStyle: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(border).
			Padding(0, 1),
		TabStyle:           lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		ActiveTabStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("25")).Bold(true).Padding(0, 1),
		HeadingStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		FocusedSliderStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
		FigureStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true),
		SavingStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		LossStyle:          lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		BarStyle:           lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
		MutedStyle: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		ErrorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
	}
}

func newLightTheme() Theme {
	border := lipgloss.Color("246")
	muted := lipgloss.Color("240")
	return Theme{
		Name: "light",
		StatusBarStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("189")).
			Padding(0, 1),
		PanelStyle: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(border).
			Padding(0, 1),
		SliderPanelStyle: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(border).
			Padding(0, 1),
		TabStyle:           lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		ActiveTabStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("153")).Bold(true).Padding(0, 1),
		HeadingStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
		FocusedSliderStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("94")).Bold(true),
		FigureStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Bold(true),
		SavingStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		LossStyle:          lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		BarStyle:           lipgloss.NewStyle().Foreground(lipgloss.Color("31")),
		MutedStyle: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		ErrorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
	}
}
