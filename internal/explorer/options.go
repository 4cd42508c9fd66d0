package explorer

import (
	"sort"

	"github.com/jask/benchexplorer/internal/dataset"
)

// Options lists the values the filter panel can offer for a table.
type Options struct {
	Tasks      []Bucket // with record counts, most common first
	Areas      []string
	Modalities []string
	YearMin    int
	YearMax    int
	HasYears   bool
}

// Discover collects distinct filter values from the full table.
func Discover(records []dataset.Record) Options {
	tasks := make(map[string]int)
	areas := make(map[string]bool)
	mods := make(map[string]bool)
	var o Options
	for _, r := range records {
		if r.Task != "" {
			tasks[r.Task]++
		}
		if r.Area != "" {
			areas[r.Area] = true
		}
		for _, m := range r.Modalities {
			mods[m] = true
		}
		if r.Year == nil {
			continue
		}
		if !o.HasYears {
			o.YearMin, o.YearMax, o.HasYears = *r.Year, *r.Year, true
			continue
		}
		o.YearMin = min(o.YearMin, *r.Year)
		o.YearMax = max(o.YearMax, *r.Year)
	}
	o.Tasks = Ranked(tasks)
	o.Areas = sortedKeys(areas)
	o.Modalities = sortedKeys(mods)
	return o
}

// TaskNames returns the task labels in panel order.
func (o Options) TaskNames() []string {
	out := make([]string, len(o.Tasks))
	for i, b := range o.Tasks {
		out[i] = b.Label
	}
	return out
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
