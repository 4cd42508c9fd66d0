package explorer

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/benchexplorer/internal/dataset"
)

// Criteria is the set of user-selected filter constraints. The zero value
// matches every record.
type Criteria struct {
	Task       string   `yaml:"task,omitempty"`
	Area       string   `yaml:"area,omitempty"`
	Modalities []string `yaml:"modalities,omitempty"`
	YearMin    *int     `yaml:"year_min,omitempty"`
	YearMax    *int     `yaml:"year_max,omitempty"`
	Search     string   `yaml:"search,omitempty"`
	Fuzzy      bool     `yaml:"fuzzy,omitempty"`
}

// IsZero reports whether no constraint is active.
func (c Criteria) IsZero() bool {
	return c.Task == "" && c.Area == "" && len(c.Modalities) == 0 &&
		c.YearMin == nil && c.YearMax == nil && strings.TrimSpace(c.Search) == ""
}

// InvertedYears reports a year range whose lower bound exceeds its upper bound.
func (c Criteria) InvertedYears() bool {
	return c.YearMin != nil && c.YearMax != nil && *c.YearMin > *c.YearMax
}

// ToggleModality adds m when absent and removes it when present.
func (c Criteria) ToggleModality(m string) Criteria {
	out := make([]string, 0, len(c.Modalities)+1)
	found := false
	for _, have := range c.Modalities {
		if have == m {
			found = true
			continue
		}
		out = append(out, have)
	}
	if !found {
		out = append(out, m)
	}
	if len(out) == 0 {
		out = nil
	}
	c.Modalities = out
	return c
}

// HasModality reports whether m is selected.
func (c Criteria) HasModality(m string) bool {
	for _, have := range c.Modalities {
		if have == m {
			return true
		}
	}
	return false
}

// Apply returns the records matching every active constraint, in input order.
// The input slice is never modified.
func Apply(records []dataset.Record, c Criteria) []dataset.Record {
	out := make([]dataset.Record, 0, len(records))
	if c.InvertedYears() {
		return out
	}
	query := strings.ToLower(strings.TrimSpace(c.Search))
	for _, r := range records {
		if !matchesTask(r, c.Task) {
			continue
		}
		if !matchesArea(r, c.Area) {
			continue
		}
		if !matchesModalities(r, c.Modalities) {
			continue
		}
		if !matchesYear(r, c.YearMin, c.YearMax) {
			continue
		}
		if !matchesSearch(r, query, c.Fuzzy) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesTask(r dataset.Record, task string) bool {
	return task == "" || r.Task == task
}

func matchesArea(r dataset.Record, area string) bool {
	return area == "" || r.Area == area
}

func matchesModalities(r dataset.Record, selected []string) bool {
	if len(selected) == 0 {
		return true // no filter = show all
	}
	for _, m := range selected {
		if r.HasModality(m) {
			return true
		}
	}
	return false
}

// matchesYear passes records without a year; bounds are inclusive.
func matchesYear(r dataset.Record, lo, hi *int) bool {
	if r.Year == nil {
		return true
	}
	if lo != nil && *r.Year < *lo {
		return false
	}
	if hi != nil && *r.Year > *hi {
		return false
	}
	return true
}

// matchesSearch expects query to be lower-cased already.
func matchesSearch(r dataset.Record, query string, fuzzy bool) bool {
	if query == "" {
		return true
	}
	id := strings.ToLower(r.DatasetID)
	if strings.Contains(id, query) {
		return true
	}
	if !fuzzy {
		return false
	}
	return levenshtein.ComputeDistance(id, query) <= fuzzyBudget(query)
}

// fuzzyBudget is the edit distance tolerated for a query: one edit per four
// characters, at least one.
func fuzzyBudget(query string) int {
	return max(1, len([]rune(query))/4)
}
