package widgets

import "github.com/charmbracelet/lipgloss"

// Box frames Content with a rounded border and a title line. A focused box
// gets the focus border color.
type Box struct {
	Title   string
	Content string
	Focused bool
}

func (b Box) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	border := ColorSurface1
	if b.Focused {
		border = ColorFocus
	}
	innerW := max(1, width-4)
	innerH := max(1, height-2)
	body := b.Content
	if b.Title != "" {
		body = titleStyle.Render(b.Title) + "\n" + body
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width - 2).
		Height(innerH)
	return style.Render(Clip(body, innerW, innerH))
}
