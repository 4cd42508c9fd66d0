package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Popup is a bordered card drawn centered over another view.
type Popup struct {
	Title string
	Body  string
}

var popupStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorAccent).
	Padding(1, 2)

// Overlay draws the popup over base. Cells of base outside the card's
// non-blank span stay visible.
func (p Popup) Overlay(base string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	body := p.Body
	if p.Title != "" {
		body = titleStyle.Render(p.Title) + "\n\n" + body
	}
	card := popupStyle.MaxWidth(width).Render(body)
	canvas := fitCanvas(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card), width, height)
	return overlayOntoBase(fitCanvas(base, width, height), canvas, width, height)
}

func overlayOntoBase(base, overlay string, width, height int) string {
	baseLines := fitLines(base, height)
	overlayLines := fitLines(overlay, height)
	out := make([]string, height)
	for i := 0; i < height; i++ {
		baseLine := PadRight(baseLines[i], width)
		overlayLine := PadRight(overlayLines[i], width)
		start, end, ok := segmentBounds(overlayLine, width)
		if !ok {
			out[i] = baseLine
			continue
		}
		left := ansi.Truncate(baseLine, start, "")
		segment := ansi.Truncate(dropColumns(overlayLine, start), end-start, "")
		right := dropColumns(baseLine, end)
		out[i] = PadRight(left+segment+right, width)
	}
	return strings.Join(out, "\n")
}

// segmentBounds finds the columns of the first and last non-blank cell.
func segmentBounds(line string, width int) (start, end int, ok bool) {
	plain := ansi.Strip(ansi.Truncate(line, width, ""))
	trimmed := strings.TrimRight(plain, " ")
	if trimmed == "" {
		return 0, 0, false
	}
	for start < len(trimmed) && trimmed[start] == ' ' {
		start++
	}
	return ansi.StringWidth(trimmed[:start]), ansi.StringWidth(trimmed), true
}

func fitCanvas(s string, width, height int) string {
	lines := fitLines(s, height)
	for i := range lines {
		lines[i] = PadRight(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

func dropColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	return ansi.TruncateLeft(s, cols, "")
}
