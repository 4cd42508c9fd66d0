package widgets

import "strings"

// List is a titled single-selection list that scrolls to keep Cursor visible.
type List struct {
	Title  string
	Items  []string
	Cursor int
	Empty  string
}

func (l List) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	rows := make([]string, 0, len(l.Items)+1)
	if l.Title != "" {
		rows = append(rows, titleStyle.Render(l.Title))
	}
	if len(l.Items) == 0 {
		empty := l.Empty
		if empty == "" {
			empty = "(empty)"
		}
		rows = append(rows, mutedStyle.Render(empty))
		return Clip(strings.Join(rows, "\n"), width, height)
	}
	visible := max(1, height-len(rows))
	offset := 0
	if l.Cursor >= visible {
		offset = l.Cursor - visible + 1
	}
	for i := offset; i < len(l.Items) && i < offset+visible; i++ {
		if i == l.Cursor {
			rows = append(rows, selectedStyle.Render("> "+l.Items[i]))
			continue
		}
		rows = append(rows, "  "+l.Items[i])
	}
	return Clip(strings.Join(rows, "\n"), width, height)
}
