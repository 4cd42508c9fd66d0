package explorer

import (
	"sort"
	"strings"

	"github.com/jask/benchexplorer/internal/dataset"
)

type SortField string

const (
	SortNone       SortField = ""
	SortSerial     SortField = "serial"
	SortDataset    SortField = "dataset"
	SortTask       SortField = "task"
	SortYear       SortField = "year"
	SortBenchmarks SortField = "benchmarks"
)

// SortFields is the cycle order used by the list view.
var SortFields = []SortField{SortNone, SortSerial, SortDataset, SortTask, SortYear, SortBenchmarks}

type Sort struct {
	Field SortField `yaml:"field,omitempty"`
	Desc  bool      `yaml:"desc,omitempty"`
}

// Next returns the field after f in SortFields, wrapping around.
func (f SortField) Next() SortField {
	for i, s := range SortFields {
		if s == f {
			return SortFields[(i+1)%len(SortFields)]
		}
	}
	return SortNone
}

func (f SortField) Label() string {
	switch f {
	case SortDataset:
		return "dataset"
	case SortTask:
		return "task"
	case SortYear:
		return "year"
	case SortBenchmarks:
		return "benchmarks"
	case SortSerial:
		return "serial"
	}
	return "file order"
}

// SortRecords stable-sorts records in place. The zero Sort keeps file order.
// Records without a year sort last in both directions.
func SortRecords(records []dataset.Record, s Sort) {
	if s.Field == SortNone {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if s.Field == SortYear && (a.Year == nil) != (b.Year == nil) {
			return b.Year == nil
		}
		c := compare(a, b, s.Field)
		if s.Desc {
			return c > 0
		}
		return c < 0
	})
}

func compare(a, b dataset.Record, field SortField) int {
	switch field {
	case SortDataset:
		return strings.Compare(strings.ToLower(a.DatasetID), strings.ToLower(b.DatasetID))
	case SortTask:
		return strings.Compare(strings.ToLower(a.Task), strings.ToLower(b.Task))
	case SortYear:
		if a.Year == nil || b.Year == nil {
			return 0
		}
		return *a.Year - *b.Year
	case SortBenchmarks:
		return a.BenchmarkCount() - b.BenchmarkCount()
	}
	return a.Serial - b.Serial
}
