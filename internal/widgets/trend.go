package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// YearPoint is one column of a Trend.
type YearPoint struct {
	Year  int
	Count int
}

// Trend draws one vertical column per year, oldest on the left. When the
// years do not fit the width the most recent ones are kept.
type Trend struct {
	Title  string
	Points []YearPoint
	// Undated is reported in the caption; those records have no column.
	Undated int
	Color   lipgloss.Color
}

const trendColumn = 3

func (t Trend) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(t.Points) == 0 {
		body := titleStyle.Render(t.Title) + "\n" + mutedStyle.Render("(no data)")
		if t.Undated > 0 {
			body += "\n" + mutedStyle.Render(fmt.Sprintf("%d without year", t.Undated))
		}
		return Clip(body, width, height)
	}
	pts := t.Points
	if fit := max(1, width/trendColumn); len(pts) > fit {
		pts = pts[len(pts)-fit:]
	}
	maxV := 1
	peak := pts[0]
	for _, p := range pts {
		maxV = max(maxV, p.Count)
		if p.Count > peak.Count {
			peak = p
		}
	}
	caption := t.caption(pts, peak, width)
	plotH := max(1, height-2-len(caption))

	color := t.Color
	if color == "" {
		color = SeriesColors[1]
	}
	fill := lipgloss.NewStyle().Foreground(color)

	lines := []string{titleStyle.Render(t.Title)}
	for row := plotH; row >= 1; row-- {
		var b strings.Builder
		for _, p := range pts {
			if columnHeight(p.Count, maxV, plotH) >= row {
				b.WriteString(fill.Render("██") + " ")
			} else {
				b.WriteString("   ")
			}
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	var axis strings.Builder
	for _, p := range pts {
		fmt.Fprintf(&axis, "%02d ", p.Year%100)
	}
	lines = append(lines, mutedStyle.Render(strings.TrimRight(axis.String(), " ")))

	for _, c := range caption {
		lines = append(lines, mutedStyle.Render(c))
	}
	return Clip(strings.Join(lines, "\n"), width, height)
}

// caption summarises the plotted span. The undated count moves to its own
// line when one line would not fit width.
func (t Trend) caption(pts []YearPoint, peak YearPoint, width int) []string {
	span := fmt.Sprintf("%d-%d, peak %d in %d", pts[0].Year, pts[len(pts)-1].Year, peak.Count, peak.Year)
	if t.Undated <= 0 {
		return []string{span}
	}
	undated := fmt.Sprintf("%d without year", t.Undated)
	if one := span + ", " + undated; len(one) <= width {
		return []string{one}
	}
	return []string{span, undated}
}

// columnHeight scales n to rows, rounding up so any non-zero count shows.
func columnHeight(n, maxV, rows int) int {
	if n <= 0 {
		return 0
	}
	return (n*rows + maxV - 1) / maxV
}
