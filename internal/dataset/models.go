package dataset

import (
	"strconv"
	"strings"
)

// Record represents one row of the benchmark catalogue.
type Record struct {
	Serial           int
	DatasetID        string
	Description      string
	Task             string
	Subtask          *string
	AssociatedTasks  []string
	Modalities       []string
	HomepageURL      *string
	BenchmarkSiteURL *string
	Year             *int
	Area             string
	DatasetSize      string
	License          string
	Languages        string
	PaperURL         *string
	BenchmarkURLs    []string
}

// Link is a labelled outbound URL shown in the detail view.
type Link struct {
	Label string
	URL   string
}

func (r Record) BenchmarkCount() int      { return len(r.BenchmarkURLs) }
func (r Record) AssociatedTaskCount() int { return len(r.AssociatedTasks) }

// HasModality reports whether the record carries modality m (exact match).
func (r Record) HasModality(m string) bool {
	for _, have := range r.Modalities {
		if have == m {
			return true
		}
	}
	return false
}

// Links returns every outbound URL of the record in display order.
func (r Record) Links() []Link {
	var out []Link
	add := func(label string, url *string) {
		if url != nil && *url != "" {
			out = append(out, Link{Label: label, URL: *url})
		}
	}
	add("Homepage", r.HomepageURL)
	add("Benchmark site", r.BenchmarkSiteURL)
	add("Paper", r.PaperURL)
	for i, u := range r.BenchmarkURLs {
		label := "Benchmark"
		if len(r.BenchmarkURLs) > 1 {
			label = "Benchmark " + strconv.Itoa(i+1)
		}
		out = append(out, Link{Label: label, URL: u})
	}
	return out
}

// SplitList splits a comma-delimited field, trimming tokens and dropping empty ones.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SplitSet is SplitList with duplicate tokens removed, first occurrence wins.
func SplitSet(s string) []string {
	list := SplitList(s)
	if len(list) < 2 {
		return list
	}
	seen := make(map[string]bool, len(list))
	out := list[:0]
	for _, v := range list {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
