package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/benchexplorer/internal/dataset"
	"github.com/jask/benchexplorer/internal/explorer"
	"github.com/jask/benchexplorer/internal/widgets"
)

const (
	defaultWidth  = 110
	defaultHeight = 32
)

// pane adapts a render function to widgets.Widget.
type pane func(width, height int) string

func (p pane) Render(width, height int) string { return p(width, height) }

func (a *App) View() string {
	width, height := a.width, a.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	bodyH := max(4, height-3)

	filters := pane(func(w, h int) string {
		return widgets.Box{Title: "Filters", Content: a.renderFilters(w - 4), Focused: a.focus == focusFilters}.Render(w, h)
	})
	var content widgets.Widget
	if a.state.Tab == explorer.TabStats {
		content = pane(func(w, h int) string {
			return widgets.Box{Title: "Statistics", Content: a.renderStats(w-4, h-3)}.Render(w, h)
		})
	} else {
		content = pane(func(w, h int) string {
			return widgets.Box{Title: "Datasets", Content: a.renderList(w-4, h-3), Focused: a.focus == focusList}.Render(w, h)
		})
	}
	body := widgets.HStack{Widgets: []widgets.Widget{filters, content}, Ratios: []float64{1, 3}, Gap: 1}.Render(width, bodyH)

	view := strings.Join([]string{a.renderHeader(width), body, a.renderStatus(width), a.renderFooter(width)}, "\n")
	if popup, ok := a.popup(width); ok {
		return popup.Overlay(view, width, height)
	}
	return view
}

func (a *App) renderHeader(width int) string {
	tabs := []struct {
		label string
		tab   explorer.Tab
	}{{"Explorer", explorer.TabExplorer}, {"Statistics", explorer.TabStats}}
	parts := []string{brandStyle.Render("benchexplorer")}
	for _, t := range tabs {
		if t.tab == a.state.Tab {
			parts = append(parts, activeTabStyle.Render(t.label))
		} else {
			parts = append(parts, inactiveTabStyle.Render(t.label))
		}
	}
	left := strings.Join(parts, " ")
	right := labelStyle.Render(fmt.Sprintf("%d of %d datasets", len(a.result.Filtered), a.result.Total))
	gap := max(1, width-lipgloss.Width(left)-lipgloss.Width(right))
	return widgets.PadRight(left+strings.Repeat(" ", gap)+right, width)
}

func (a *App) renderFilters(width int) string {
	c := a.state.Criteria
	opts := a.catalog.Options
	var lines []string
	add := func(f filterField, value string) {
		marker, style := "  ", fieldStyle
		if a.focus == focusFilters && a.field == f {
			marker, style = "▸ ", fieldFocusStyle
		}
		lines = append(lines, style.Render(marker+fmt.Sprintf("%-9s", f.label()))+" "+value)
	}
	add(fieldTask, orAny(c.Task))
	add(fieldArea, orAny(c.Area))
	add(fieldModality, modalitySummary(c.Modalities))
	chips := make([]widgets.Chip, len(opts.Modalities))
	for i, m := range opts.Modalities {
		chips[i] = widgets.Chip{Text: m, On: c.HasModality(m)}
	}
	focus := -1
	if a.focus == focusFilters && a.field == fieldModality {
		focus = a.chip
	}
	lines = append(lines, indent(widgets.Chips{Items: chips, Focus: focus}.Render(max(1, width-4), 6), "    "))
	add(fieldYearMin, yearOrAny(c.YearMin))
	add(fieldYearMax, yearOrAny(c.YearMax))
	search := orAny(c.Search)
	if c.Fuzzy {
		search += labelStyle.Render(" (fuzzy)")
	}
	add(fieldSearch, search)

	if opts.HasYears {
		lines = append(lines, "", labelStyle.Render(fmt.Sprintf("years %d-%d", opts.YearMin, opts.YearMax)))
	}
	if c.InvertedYears() {
		lines = append(lines, warnStyle.Render("year range is inverted"))
	}
	return strings.Join(lines, "\n")
}

var listColumns = []widgets.Column{
	{Title: "#", Width: 5},
	{Title: "Dataset", Width: 0},
	{Title: "Task", Width: 18},
	{Title: "Year", Width: 4},
	{Title: "Modalities", Width: 16},
	{Title: "Bench", Width: 5},
}

func (a *App) renderList(width, height int) string {
	page := a.result.Page
	rows := make([][]string, len(page.Rows))
	for i, r := range page.Rows {
		rows[i] = []string{
			strconv.Itoa(r.Serial),
			r.DatasetID,
			orDash(r.Task),
			yearOrDash(r.Year),
			strings.Join(r.Modalities, ", "),
			strconv.Itoa(r.BenchmarkCount()),
		}
	}
	cursor := a.row
	if a.focus != focusList {
		cursor = -1
	}
	empty := "No datasets match the current filters."
	if a.state.Criteria.InvertedYears() {
		empty = "No results: the year range is inverted."
	}
	table := widgets.Table{Columns: listColumns, Rows: rows, Cursor: cursor, Empty: empty}
	return table.Render(width, max(1, height-1)) + "\n" + a.renderPager(width)
}

func (a *App) renderPager(width int) string {
	page := a.result.Page
	var links []string
	for _, p := range explorer.PageLinks(page.Cursor.Page, page.TotalPages) {
		switch {
		case p == explorer.Ellipsis:
			links = append(links, "…")
		case p == page.Cursor.Page:
			links = append(links, fieldFocusStyle.Render("["+strconv.Itoa(p+1)+"]"))
		default:
			links = append(links, strconv.Itoa(p+1))
		}
	}
	span := "0 rows"
	if page.Total > 0 {
		span = fmt.Sprintf("rows %d-%d of %d", page.Start+1, page.Start+len(page.Rows), page.Total)
	}
	dir := "asc"
	if a.state.Sort.Desc {
		dir = "desc"
	}
	sortLabel := a.state.Sort.Field.Label()
	if a.state.Sort.Field != explorer.SortNone {
		sortLabel += " " + dir
	}
	line := fmt.Sprintf("Page %d/%d  %s  %s  %d/page  sort: %s",
		page.Cursor.Page+1, page.TotalPages, strings.Join(links, " "), span, page.Cursor.PageSize, sortLabel)
	return labelStyle.Render(widgets.Clip(line, width, 1))
}

func (a *App) renderStats(width, height int) string {
	if a.result.Empty() {
		return labelStyle.Render("No results for the current filters.")
	}
	st := a.result.Stats
	summary := labelStyle.Render(fmt.Sprintf("%d datasets, %d modality tags, %d tasks",
		st.Records, st.ModalityTags(), len(st.ByTask)))

	tasks := widgets.BarChart{Title: "By task", Bars: toBars(st.Tasks(), a.chartRows), Total: st.Records, Color: widgets.SeriesColors[0]}
	years := widgets.Trend{Title: "By year", Points: toPoints(st.Years()), Undated: st.NoYear, Color: widgets.SeriesColors[1]}
	mods := widgets.BarChart{Title: "By modality", Bars: toBars(st.Modalities(), a.chartRows), Total: st.ModalityTags(), Color: widgets.SeriesColors[2]}

	chartH := max(3, height-1)
	var charts string
	if width >= 90 {
		charts = widgets.VStack{
			Widgets: []widgets.Widget{
				widgets.HStack{Widgets: []widgets.Widget{tasks, mods}, Gap: 3},
				years,
			},
			Spacing: 1,
		}.Render(width, chartH)
	} else {
		charts = widgets.VStack{Widgets: []widgets.Widget{tasks, years, mods}, Spacing: 1}.Render(width, chartH)
	}
	return summary + "\n" + charts
}

func (a *App) popup(width int) (widgets.Popup, bool) {
	switch a.overlay {
	case overlaySearch:
		return widgets.Popup{Title: "Search", Body: a.input.View()}, true
	case overlayPresetName:
		return widgets.Popup{Title: "Save preset", Body: a.input.View()}, true
	case overlayPresets:
		items := make([]string, len(a.presets))
		for i, p := range a.presets {
			items[i] = fmt.Sprintf("%-24s used %d×", p.Name, p.UseCount)
		}
		list := widgets.List{Items: items, Cursor: a.presetCursor, Empty: "No saved presets"}
		return widgets.Popup{Title: "Presets", Body: list.Render(48, 12)}, true
	}
	if a.result.Selected != nil && a.state.Tab == explorer.TabExplorer {
		r := *a.result.Selected
		return widgets.Popup{Title: fmt.Sprintf("%s (#%d)", r.DatasetID, r.Serial), Body: renderDetail(r, min(72, width-8))}, true
	}
	return widgets.Popup{}, false
}

func renderDetail(r dataset.Record, width int) string {
	width = max(20, width)
	field := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-17s", label)) + " " + orDash(value)
	}
	lines := []string{
		lipgloss.NewStyle().Width(width).Render(orDash(r.Description)),
		"",
		field("Task", r.Task),
		field("Subtask", deref(r.Subtask)),
		field("Associated tasks", strings.Join(r.AssociatedTasks, ", ")),
		field("Modalities", strings.Join(r.Modalities, ", ")),
		field("Area", r.Area),
		field("Year", yearOrDash(r.Year)),
		field("Size", r.DatasetSize),
		field("License", r.License),
		field("Languages", r.Languages),
		"",
		labelStyle.Render("Links"),
	}
	links := r.Links()
	if len(links) == 0 {
		lines = append(lines, "  -")
	}
	for _, l := range links {
		lines = append(lines, fmt.Sprintf("  %-14s %s", l.Label, l.URL))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderStatus(width int) string {
	msg := strings.TrimSpace(a.status)
	if msg == "" {
		msg = "Ready"
	}
	if a.statusErr {
		return statusErrBarStyle.Render(widgets.Clip(msg, width, 1))
	}
	return statusBarStyle.Render(widgets.Clip(msg, width, 1))
}

func (a *App) renderFooter(width int) string {
	var parts []string
	for _, b := range a.keys.HelpBindings(a.scope()) {
		h := b.Help()
		parts = append(parts, keyStyle.Render(h.Key)+" "+helpDescStyle.Render(h.Desc))
	}
	return widgets.Clip(strings.Join(parts, "  "), width, 1)
}

func toBars(buckets []explorer.Bucket, limit int) []widgets.Bar {
	bars := make([]widgets.Bar, len(buckets))
	for i, b := range buckets {
		bars[i] = widgets.Bar{Label: b.Label, Count: b.Count}
	}
	return widgets.TopBars(bars, limit)
}

func toPoints(years []explorer.YearCount) []widgets.YearPoint {
	out := make([]widgets.YearPoint, len(years))
	for i, y := range years {
		out[i] = widgets.YearPoint{Year: y.Year, Count: y.Count}
	}
	return out
}

func modalitySummary(selected []string) string {
	if len(selected) == 0 {
		return "any"
	}
	return strings.Join(selected, " or ")
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

func orAny(s string) string {
	if strings.TrimSpace(s) == "" {
		return "any"
	}
	return s
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yearOrAny(y *int) string {
	if y == nil {
		return "any"
	}
	return strconv.Itoa(*y)
}

func yearOrDash(y *int) string {
	if y == nil {
		return "-"
	}
	return strconv.Itoa(*y)
}
