package explorer

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jask/benchexplorer/internal/dataset"
)

// Tab is the active top-level view.
type Tab string

const (
	TabExplorer Tab = "explorer"
	TabStats    Tab = "stats"
)

// State is the whole session: filters, page cursor, sort, selection and tab.
// It is passed into Recompute and the clamped copy handed back replaces it.
type State struct {
	Criteria Criteria `yaml:"criteria"`
	Cursor   Cursor   `yaml:"cursor"`
	Sort     Sort     `yaml:"sort,omitempty"`
	Selected *int     `yaml:"selected,omitempty"`
	Tab      Tab      `yaml:"tab,omitempty"`
}

// NewState is the all-inclusive starting state.
func NewState(pageSize int) State {
	return State{
		Cursor: Cursor{PageSize: pageSize}.Normalize(),
		Tab:    TabExplorer,
	}
}

// Result is everything a view needs after one recomputation.
type Result struct {
	Total    int // rows in the source table
	Filtered []dataset.Record
	Page     Page
	Stats    Stats
	Selected *dataset.Record
}

// Empty reports the "no results" condition.
func (r Result) Empty() bool { return len(r.Filtered) == 0 }

// Recompute runs filter, sort, page and aggregate over records. It never
// mutates records and returns the state with its cursor clamped and a stale
// selection dropped.
func Recompute(records []dataset.Record, s State) (State, Result) {
	filtered := Apply(records, s.Criteria)
	SortRecords(filtered, s.Sort)
	page := Paginate(filtered, s.Cursor)
	s.Cursor = page.Cursor
	if s.Tab == "" {
		s.Tab = TabExplorer
	}

	res := Result{
		Total:    len(records),
		Filtered: filtered,
		Page:     page,
		Stats:    Aggregate(filtered),
	}
	if s.Selected != nil {
		if r, ok := findSerial(records, *s.Selected); ok {
			res.Selected = &r
		} else {
			s.Selected = nil
		}
	}
	return s, res
}

func findSerial(records []dataset.Record, serial int) (dataset.Record, bool) {
	for _, r := range records {
		if r.Serial == serial {
			return r, true
		}
	}
	return dataset.Record{}, false
}

// WithCriteria replaces the filters. The page index is kept; Recompute clamps it
// when the result set shrinks.
func (s State) WithCriteria(c Criteria) State {
	s.Criteria = c
	return s
}

// ResetCriteria restores the all-inclusive filters and returns to the first page.
func (s State) ResetCriteria() State {
	s.Criteria = Criteria{}
	s.Cursor.Page = 0
	return s
}

// WithPageSize changes the page size and always returns to the first page.
func (s State) WithPageSize(n int) State {
	s.Cursor = Cursor{PageSize: n}.Normalize()
	return s
}

// CyclePageSize moves to the next entry of PageSizes.
func (s State) CyclePageSize() State {
	for i, n := range PageSizes {
		if n == s.Cursor.PageSize {
			return s.WithPageSize(PageSizes[(i+1)%len(PageSizes)])
		}
	}
	return s.WithPageSize(DefaultPageSize)
}

func (s State) NextPage() State { return s.GoToPage(s.Cursor.Page + 1) }
func (s State) PrevPage() State { return s.GoToPage(s.Cursor.Page - 1) }

// GoToPage sets the page index; values past the last page are clamped by Recompute.
func (s State) GoToPage(p int) State {
	s.Cursor.Page = max(0, p)
	return s
}

func (s State) WithSort(srt Sort) State {
	s.Sort = srt
	return s
}

func (s State) Select(serial int) State {
	s.Selected = &serial
	return s
}

func (s State) ClearSelection() State {
	s.Selected = nil
	return s
}

func (s State) WithTab(t Tab) State {
	s.Tab = t
	return s
}

// EncodeState serialises a state as YAML.
func EncodeState(s State) ([]byte, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return out, nil
}

// DecodeState parses a YAML state and normalises its cursor.
func DecodeState(data []byte) (State, error) {
	var s State
	if err := yaml.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("decode state: %w", err)
	}
	s.Cursor = s.Cursor.Normalize()
	if s.Tab == "" {
		s.Tab = TabExplorer
	}
	return s, nil
}
