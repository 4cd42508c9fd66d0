package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/benchexplorer/internal/widgets"
)

var (
	brandStyle     = lipgloss.NewStyle().Foreground(widgets.ColorAccent).Bold(true)
	activeTabStyle = lipgloss.NewStyle().
			Background(widgets.ColorSurface0).
			Foreground(widgets.ColorAccent).
			Bold(true).
			Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(widgets.ColorMuted).
				Padding(0, 1)

	statusBarStyle    = lipgloss.NewStyle().Foreground(widgets.ColorGreen)
	statusErrBarStyle = lipgloss.NewStyle().Foreground(widgets.ColorError)
	keyStyle          = lipgloss.NewStyle().Foreground(widgets.ColorAccent).Bold(true)
	helpDescStyle     = lipgloss.NewStyle().Foreground(widgets.ColorMuted)

	fieldStyle      = lipgloss.NewStyle().Foreground(widgets.ColorText)
	fieldFocusStyle = lipgloss.NewStyle().Foreground(widgets.ColorFocus).Bold(true)
	warnStyle       = lipgloss.NewStyle().Foreground(widgets.ColorWarning)
	labelStyle      = lipgloss.NewStyle().Foreground(widgets.ColorMuted)
)
