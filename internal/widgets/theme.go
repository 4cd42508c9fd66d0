package widgets

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha subset.
const (
	ColorPink     lipgloss.Color = "#f5c2e7"
	ColorMauve    lipgloss.Color = "#cba6f7"
	ColorRed      lipgloss.Color = "#f38ba8"
	ColorPeach    lipgloss.Color = "#fab387"
	ColorYellow   lipgloss.Color = "#f9e2af"
	ColorGreen    lipgloss.Color = "#a6e3a1"
	ColorTeal     lipgloss.Color = "#94e2d5"
	ColorBlue     lipgloss.Color = "#89b4fa"
	ColorLavender lipgloss.Color = "#b4befe"
	ColorText     lipgloss.Color = "#cdd6f4"
	ColorOverlay1 lipgloss.Color = "#7f849c"
	ColorSurface1 lipgloss.Color = "#45475a"
	ColorSurface0 lipgloss.Color = "#313244"
	ColorMantle   lipgloss.Color = "#181825"
)

const (
	ColorAccent  = ColorPink
	ColorFocus   = ColorLavender
	ColorMuted   = ColorOverlay1
	ColorError   = ColorRed
	ColorWarning = ColorYellow
	ColorInfo    = ColorTeal
)

// SeriesColors is the order in which chart series pick colors.
var SeriesColors = []lipgloss.Color{ColorBlue, ColorGreen, ColorPeach, ColorMauve, ColorTeal, ColorYellow}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	mutedStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorText).Background(ColorSurface1)
)
