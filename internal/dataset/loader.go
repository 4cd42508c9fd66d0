package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrUnreadable marks a source file that cannot be used at all.
	ErrUnreadable = errors.New("dataset unreadable")
	// ErrSchema marks a header that shares no column with the catalogue schema.
	ErrSchema = errors.New("dataset header has no known columns")
)

// Column names of the catalogue schema.
const (
	ColSerial           = "serial_no"
	ColDatasetID        = "dataset_id"
	ColDescription      = "description"
	ColTask             = "task"
	ColSubtask          = "subtask"
	ColAssociatedTasks  = "associated_tasks"
	ColModalities       = "modalities"
	ColHomepageURL      = "homepage_url"
	ColBenchmarkSiteURL = "benchmark_site_url"
	ColYear             = "year_published"
	ColArea             = "area"
	ColDatasetSize      = "dataset_size"
	ColLicense          = "license"
	ColLanguages        = "languages"
	ColPaperURL         = "paper_url"
	ColBenchmarkURLs    = "benchmark_urls"
)

// Columns lists the schema in file order.
var Columns = []string{
	ColSerial, ColDatasetID, ColDescription, ColTask, ColSubtask, ColAssociatedTasks,
	ColModalities, ColHomepageURL, ColBenchmarkSiteURL, ColYear, ColArea, ColDatasetSize,
	ColLicense, ColLanguages, ColPaperURL, ColBenchmarkURLs,
}

// LoadResult summarises a load. Every input line ends up in exactly one of
// Loaded (clean), Degraded (kept with substitutions) or Skipped.
type LoadResult struct {
	Loaded   int
	Degraded int
	Skipped  int
	Issues   []error
}

// Rows is the number of records retained.
func (r LoadResult) Rows() int { return r.Loaded + r.Degraded }

// Table is the immutable in-memory catalogue.
type Table struct {
	records  []Record
	bySerial map[int]int
}

// NewTable builds a table from already-parsed records. Serial numbers must be unique.
func NewTable(records []Record) *Table {
	t := &Table{records: records, bySerial: make(map[int]int, len(records))}
	for i, r := range records {
		t.bySerial[r.Serial] = i
	}
	return t
}

// Records returns the rows in file order. Callers must not modify the slice.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}
	return t.records
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// BySerial looks up a record by its serial number.
func (t *Table) BySerial(serial int) (Record, bool) {
	if t == nil {
		return Record{}, false
	}
	i, ok := t.bySerial[serial]
	if !ok {
		return Record{}, false
	}
	return t.records[i], true
}

// LoadFile opens path and loads it. A missing or unreadable file is fatal.
func LoadFile(path string) (*Table, LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadResult{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a catalogue CSV with a header row. Malformed lines are skipped and
// counted; rows with bad optional fields are kept with nulls substituted.
func Load(r io.Reader) (*Table, LoadResult, error) {
	res := LoadResult{}
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1

	header, err := csvr.Read()
	if err == io.EOF {
		return nil, res, fmt.Errorf("%w: no header row", ErrUnreadable)
	}
	if err != nil {
		return nil, res, fmt.Errorf("%w: header: %w", ErrUnreadable, err)
	}
	cols := indexHeader(header)
	if len(cols) == 0 {
		return nil, res, ErrSchema
	}

	var (
		records  []Record
		degraded []bool
		pending  []int // indexes of records that still need a serial
		seen     = make(map[int]bool)
		maxSeen  = 0
	)
	for {
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Skipped++
			res.Issues = append(res.Issues, err)
			continue
		}
		// quoted fields may span lines, so ask the reader where the row began
		line, _ := csvr.FieldPos(0)
		if blank(rec) {
			res.Skipped++
			res.Issues = append(res.Issues, fmt.Errorf("line %d: blank row", line))
			continue
		}
		row, issues, serialOK := parseRow(rec, cols)
		for _, is := range issues {
			res.Issues = append(res.Issues, fmt.Errorf("line %d %w", line, is))
		}
		bad := len(issues) > 0
		if serialOK && seen[row.Serial] {
			res.Issues = append(res.Issues, fmt.Errorf("line %d %s: duplicate %d", line, ColSerial, row.Serial))
			serialOK = false
			bad = true
		}
		if serialOK {
			seen[row.Serial] = true
			maxSeen = max(maxSeen, row.Serial)
		} else {
			pending = append(pending, len(records))
		}
		records = append(records, row)
		degraded = append(degraded, bad)
	}

	for _, idx := range pending {
		maxSeen++
		records[idx].Serial = maxSeen
	}
	for _, d := range degraded {
		if d {
			res.Degraded++
		} else {
			res.Loaded++
		}
	}
	return NewTable(records), res, nil
}

func indexHeader(header []string) map[string]int {
	known := make(map[string]bool, len(Columns))
	for _, c := range Columns {
		known[c] = true
	}
	cols := make(map[string]int)
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if !known[name] {
			continue
		}
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	return cols
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseRow maps one CSV line onto a Record. Returned issues describe fields that
// were substituted; serialOK is false when the serial must be assigned later.
func parseRow(rec []string, cols map[string]int) (Record, []error, bool) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	var issues []error

	row := Record{
		DatasetID:        get(ColDatasetID),
		Description:      get(ColDescription),
		Task:             get(ColTask),
		Subtask:          nullableStr(get(ColSubtask)),
		AssociatedTasks:  SplitSet(get(ColAssociatedTasks)),
		Modalities:       SplitSet(get(ColModalities)),
		HomepageURL:      nullableStr(get(ColHomepageURL)),
		BenchmarkSiteURL: nullableStr(get(ColBenchmarkSiteURL)),
		Area:             get(ColArea),
		DatasetSize:      get(ColDatasetSize),
		License:          get(ColLicense),
		Languages:        get(ColLanguages),
		PaperURL:         nullableStr(get(ColPaperURL)),
		BenchmarkURLs:    SplitList(get(ColBenchmarkURLs)),
	}

	if raw := get(ColYear); raw != "" {
		y, err := parseYear(raw)
		if err != nil {
			issues = append(issues, fmt.Errorf("%s: %w", ColYear, err))
		} else {
			row.Year = &y
		}
	}

	serialOK := false
	raw := get(ColSerial)
	switch {
	case raw == "":
		// without a serial column every row is numbered in file order
		if _, ok := cols[ColSerial]; ok {
			issues = append(issues, fmt.Errorf("%s: missing", ColSerial))
		}
	default:
		n, err := strconv.Atoi(raw)
		if err != nil {
			issues = append(issues, fmt.Errorf("%s: %w", ColSerial, err))
		} else {
			row.Serial = n
			serialOK = true
		}
	}
	return row, issues, serialOK
}

// parseYear accepts integers and float renderings such as "2019.0" that
// spreadsheet exports produce for nullable integer columns.
func parseYear(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("not a whole year: %q", s)
	}
	return int(f), nil
}

func nullableStr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
