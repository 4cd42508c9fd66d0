package explorer

import "github.com/jask/benchexplorer/internal/dataset"

// PageSizes are the page sizes the list view offers.
var PageSizes = []int{10, 20, 50, 100}

const DefaultPageSize = 20

// Ellipsis marks a gap in PageLinks.
const Ellipsis = -1

// Cursor is a zero-based page index and a page size.
type Cursor struct {
	Page     int `yaml:"page"`
	PageSize int `yaml:"page_size"`
}

// Page is one slice of the filtered set.
type Page struct {
	Rows       []dataset.Record
	Cursor     Cursor // clamped
	TotalPages int
	Start      int // index of Rows[0] within the filtered set
	Total      int // size of the filtered set
}

// ValidPageSize reports whether n is one of PageSizes.
func ValidPageSize(n int) bool {
	for _, s := range PageSizes {
		if s == n {
			return true
		}
	}
	return false
}

// Normalize maps an unsupported page size to DefaultPageSize and a negative
// page to zero.
func (c Cursor) Normalize() Cursor {
	if !ValidPageSize(c.PageSize) {
		c.PageSize = DefaultPageSize
	}
	if c.Page < 0 {
		c.Page = 0
	}
	return c
}

// TotalPages is ceil(n/pageSize), never less than one.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate slices filtered at the cursor. A page index beyond the last page is
// clamped to the last page so a shrinking result set never yields an empty page
// while rows exist.
func Paginate(filtered []dataset.Record, c Cursor) Page {
	c = c.Normalize()
	total := TotalPages(len(filtered), c.PageSize)
	if c.Page > total-1 {
		c.Page = total - 1
	}
	start := c.Page * c.PageSize
	end := min(start+c.PageSize, len(filtered))
	rows := []dataset.Record{}
	if start < end {
		rows = filtered[start:end]
	}
	return Page{
		Rows:       rows,
		Cursor:     c,
		TotalPages: total,
		Start:      start,
		Total:      len(filtered),
	}
}

// PageLinks returns at most seven zero-based page indexes to show as page
// buttons, always including the first, the last and the neighbours of current.
// Gaps are marked with Ellipsis.
func PageLinks(current, total int) []int {
	if total <= 0 {
		return nil
	}
	current = max(0, min(current, total-1))
	if total <= 7 {
		out := make([]int, total)
		for i := range out {
			out[i] = i
		}
		return out
	}
	out := []int{0}
	if current > 2 {
		out = append(out, Ellipsis)
	}
	for p := max(1, current-1); p <= min(total-2, current+1); p++ {
		out = append(out, p)
	}
	if current < total-3 {
		out = append(out, Ellipsis)
	}
	return append(out, total-1)
}
