package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Chip is one toggleable value.
type Chip struct {
	Text string
	On   bool
}

// Chips lays out toggle values as "[x] Text" tokens, wrapping at the width.
// Focus is the index of the chip under the cursor, or -1.
type Chips struct {
	Items []Chip
	Focus int
}

var (
	chipOnStyle    = lipgloss.NewStyle().Foreground(ColorGreen)
	chipFocusStyle = lipgloss.NewStyle().Underline(true).Foreground(ColorFocus)
)

func (c Chips) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(c.Items) == 0 {
		return mutedStyle.Render("(none)")
	}
	var lines []string
	cur, curW := "", 0
	for i, chip := range c.Items {
		token := "[ ] " + chip.Text
		if chip.On {
			token = "[x] " + chip.Text
		}
		w := lipgloss.Width(token)
		switch {
		case i == c.Focus:
			token = chipFocusStyle.Render(token)
		case chip.On:
			token = chipOnStyle.Render(token)
		}
		if curW > 0 && curW+2+w > width {
			lines = append(lines, cur)
			cur, curW = "", 0
		}
		if curW > 0 {
			cur += "  "
			curW += 2
		}
		cur += token
		curW += w
	}
	lines = append(lines, cur)
	return Clip(strings.Join(lines, "\n"), width, height)
}
