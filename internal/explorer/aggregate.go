package explorer

import (
	"sort"

	"github.com/jask/benchexplorer/internal/dataset"
)

// UnspecifiedTask labels records whose task field is empty.
const UnspecifiedTask = "Unspecified"

// Stats holds the count-by-category summaries of a filtered set.
type Stats struct {
	Records    int
	ByTask     map[string]int
	ByYear     map[int]int
	ByModality map[string]int
	NoYear     int // records left out of ByYear
}

// Bucket is one chart category.
type Bucket struct {
	Label string
	Count int
}

// YearCount is one point of the yearly trend.
type YearCount struct {
	Year  int
	Count int
}

// Aggregate counts tasks, years and modalities in a single pass. A record with N
// modalities contributes to N modality buckets.
func Aggregate(records []dataset.Record) Stats {
	s := Stats{
		Records:    len(records),
		ByTask:     make(map[string]int),
		ByYear:     make(map[int]int),
		ByModality: make(map[string]int),
	}
	for _, r := range records {
		task := r.Task
		if task == "" {
			task = UnspecifiedTask
		}
		s.ByTask[task]++
		if r.Year != nil {
			s.ByYear[*r.Year]++
		} else {
			s.NoYear++
		}
		for _, m := range r.Modalities {
			s.ByModality[m]++
		}
	}
	return s
}

// Ranked orders buckets by count descending, then label ascending.
func Ranked(counts map[string]int) []Bucket {
	out := make([]Bucket, 0, len(counts))
	for label, n := range counts {
		out = append(out, Bucket{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func (s Stats) Tasks() []Bucket      { return Ranked(s.ByTask) }
func (s Stats) Modalities() []Bucket { return Ranked(s.ByModality) }

// Years returns the yearly counts in ascending year order.
func (s Stats) Years() []YearCount {
	out := make([]YearCount, 0, len(s.ByYear))
	for y, n := range s.ByYear {
		out = append(out, YearCount{Year: y, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// ModalityTags is the number of modality occurrences counted.
func (s Stats) ModalityTags() int {
	n := 0
	for _, c := range s.ByModality {
		n += c
	}
	return n
}
