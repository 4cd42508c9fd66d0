package widgets

import "strings"

// Column is a table column. A zero Width takes whatever the fixed columns
// leave over.
type Column struct {
	Title string
	Width int
}

// Table renders fixed-width columns with truncated cells. The cursor row is
// highlighted and kept in view.
type Table struct {
	Columns []Column
	Rows    [][]string
	Cursor  int // -1 for none
	Empty   string
}

const minFlexWidth = 4

func (t Table) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(t.Columns) == 0 {
		return "No data"
	}
	widths := t.columnWidths(width)
	lines := []string{headerStyle.Render(t.line(widths, func(i int) string { return t.Columns[i].Title }))}
	if len(t.Rows) == 0 {
		empty := t.Empty
		if empty == "" {
			empty = "No rows"
		}
		lines = append(lines, mutedStyle.Render(empty))
		return Clip(strings.Join(lines, "\n"), width, height)
	}

	visible := max(1, height-1)
	offset := 0
	if t.Cursor >= visible {
		offset = t.Cursor - visible + 1
	}
	for i := offset; i < len(t.Rows) && i < offset+visible; i++ {
		row := t.Rows[i]
		text := t.line(widths, func(c int) string {
			if c < len(row) {
				return row[c]
			}
			return ""
		})
		if i == t.Cursor {
			text = selectedStyle.Render(text)
		}
		lines = append(lines, text)
	}
	return Clip(strings.Join(lines, "\n"), width, height)
}

func (t Table) line(widths []int, cell func(int) string) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = Fit(cell(i), w)
	}
	return strings.Join(parts, " ")
}

func (t Table) columnWidths(width int) []int {
	out := make([]int, len(t.Columns))
	fixed, flex := len(t.Columns)-1, 0
	for i, c := range t.Columns {
		if c.Width > 0 {
			out[i] = c.Width
			fixed += c.Width
		} else {
			flex++
		}
	}
	if flex == 0 {
		return out
	}
	sizes := splitSizes(max(flex*minFlexWidth, width-fixed), flex, nil)
	for i, c := range t.Columns {
		if c.Width <= 0 {
			out[i] = sizes[0]
			sizes = sizes[1:]
		}
	}
	return out
}
