package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Bar is one category of a BarChart.
type Bar struct {
	Label string
	Count int
}

// BarChart draws horizontal bars with the count and share of each category.
// Bars that do not fit are folded into a single "other" bar.
type BarChart struct {
	Title string
	Bars  []Bar
	// Total is the share denominator. Zero means the sum of Bars.
	Total int
	Color lipgloss.Color
}

func (c BarChart) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(c.Bars) == 0 {
		return Clip(titleStyle.Render(c.Title)+"\n"+mutedStyle.Render("(no data)"), width, height)
	}
	total := c.Total
	if total <= 0 {
		for _, b := range c.Bars {
			total += b.Count
		}
	}
	bars := TopBars(c.Bars, height-1)

	maxV, labelW := 1, 0
	suffixes := make([]string, len(bars))
	suffixW := 0
	for i, b := range bars {
		maxV = max(maxV, b.Count)
		labelW = max(labelW, lipgloss.Width(b.Label))
		suffixes[i] = fmt.Sprintf("%d %5.1f%%", b.Count, share(b.Count, total))
		suffixW = max(suffixW, len(suffixes[i]))
	}
	labelW = min(labelW, max(6, width/3))
	barW := max(1, width-labelW-suffixW-2)

	color := c.Color
	if color == "" {
		color = SeriesColors[0]
	}
	fill := lipgloss.NewStyle().Foreground(color)

	lines := []string{titleStyle.Render(c.Title)}
	for i, b := range bars {
		n := b.Count * barW / maxV
		if b.Count > 0 && n == 0 {
			n = 1
		}
		bar := fill.Render(strings.Repeat("█", n)) + strings.Repeat(" ", barW-n)
		lines = append(lines, Fit(b.Label, labelW)+" "+bar+" "+fmt.Sprintf("%*s", suffixW, suffixes[i]))
	}
	return Clip(strings.Join(lines, "\n"), width, height)
}

// TopBars keeps the first room-1 bars and sums the rest into one "other" bar
// when there are more than room bars.
func TopBars(bars []Bar, room int) []Bar {
	if room <= 0 || len(bars) <= room {
		return bars
	}
	if room == 1 {
		return bars[:1]
	}
	keep := room - 1
	out := make([]Bar, keep, room)
	copy(out, bars[:keep])
	other := Bar{}
	for _, b := range bars[keep:] {
		other.Count += b.Count
	}
	other.Label = fmt.Sprintf("other (%d)", len(bars)-keep)
	return append(out, other)
}

func share(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}
