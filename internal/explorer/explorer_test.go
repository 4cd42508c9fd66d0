package explorer

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/jask/benchexplorer/internal/dataset"
)

func intp(v int) *int { return &v }

func rec(serial int, id, task, area string, year *int, mods ...string) dataset.Record {
	return dataset.Record{Serial: serial, DatasetID: id, Task: task, Area: area, Year: year, Modalities: mods}
}

func serials(rs []dataset.Record) []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = r.Serial
	}
	return out
}

func sample() []dataset.Record {
	return []dataset.Record{
		rec(1, "squad", "QA", "NLP", intp(2016), "Text"),
		rec(2, "imagenet", "Classification", "Vision", intp(2009), "Image"),
		rec(3, "vqa", "QA", "Multimodal", intp(2015), "Image", "Text"),
		rec(4, "librispeech", "ASR", "Speech", intp(2015), "Audio"),
		rec(5, "mystery", "", "", nil),
		rec(6, "coco", "Detection", "Vision", intp(2014), "Image"),
		rec(7, "glue", "NLU", "NLP", intp(2018), "Text"),
	}
}

func TestApplyIndividualFilters(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		c    Criteria
		want []int
	}{
		{"zero criteria keeps all", Criteria{}, []int{1, 2, 3, 4, 5, 6, 7}},
		{"task exact", Criteria{Task: "QA"}, []int{1, 3}},
		{"task is case sensitive", Criteria{Task: "qa"}, []int{}},
		{"area exact", Criteria{Area: "Vision"}, []int{2, 6}},
		{"modality intersection", Criteria{Modalities: []string{"Audio", "Text"}}, []int{1, 3, 4, 7}},
		{"year range keeps yearless", Criteria{YearMin: intp(2015), YearMax: intp(2016)}, []int{1, 3, 4, 5}},
		{"year lower bound only", Criteria{YearMin: intp(2016)}, []int{1, 5, 7}},
		{"year upper bound only", Criteria{YearMax: intp(2009)}, []int{2, 5}},
		{"inverted years yield nothing", Criteria{YearMin: intp(2020), YearMax: intp(2010)}, []int{}},
		{"search substring case insensitive", Criteria{Search: "NET"}, []int{2}},
		{"search without fuzzy is strict", Criteria{Search: "imagnet"}, []int{}},
		{"search with fuzzy tolerates typo", Criteria{Search: "imagnet", Fuzzy: true}, []int{2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := serials(Apply(sample(), tc.c))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Apply mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyYearRangeExample(t *testing.T) {
	t.Parallel()

	records := []dataset.Record{
		rec(1, "a", "T", "A", intp(2017)),
		rec(2, "b", "T", "A", intp(2018)),
		rec(3, "c", "T", "A", intp(2019)),
		rec(4, "d", "T", "A", intp(2021)),
	}
	got := Apply(records, Criteria{YearMin: intp(2018), YearMax: intp(2020)})
	require.Equal(t, []int{2, 3}, serials(got))
}

func TestApplyIsSubsetIdempotentAndComposable(t *testing.T) {
	t.Parallel()

	all := sample()
	task := Criteria{Task: "QA"}
	years := Criteria{YearMin: intp(2015), YearMax: intp(2016)}
	both := Criteria{Task: "QA", YearMin: intp(2015), YearMax: intp(2016)}

	first := Apply(all, both)
	second := Apply(all, both)
	require.Equal(t, serials(first), serials(second))
	require.Equal(t, serials(first), serials(Apply(first, both)))

	inAll := map[int]bool{}
	for _, r := range all {
		inAll[r.Serial] = true
	}
	for _, r := range first {
		require.True(t, inAll[r.Serial])
	}

	// intersection of the individual filters, in input order
	byYear := map[int]bool{}
	for _, r := range Apply(all, years) {
		byYear[r.Serial] = true
	}
	var want []int
	for _, r := range Apply(all, task) {
		if byYear[r.Serial] {
			want = append(want, r.Serial)
		}
	}
	require.Equal(t, want, serials(first))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	all := sample()
	before := serials(all)
	out := Apply(all, Criteria{})
	SortRecords(out, Sort{Field: SortDataset})
	require.Equal(t, before, serials(all))
}

func TestCriteriaToggleModality(t *testing.T) {
	t.Parallel()

	c := Criteria{}.ToggleModality("Text").ToggleModality("Image")
	require.Equal(t, []string{"Text", "Image"}, c.Modalities)
	require.True(t, c.HasModality("Image"))
	c = c.ToggleModality("Text").ToggleModality("Image")
	require.Nil(t, c.Modalities)
	require.True(t, c.IsZero())
}

func makeRecords(n int) []dataset.Record {
	out := make([]dataset.Record, n)
	for i := range out {
		out[i] = rec(i+1, fmt.Sprintf("ds-%03d", i+1), "T", "A", intp(2000+i%20))
	}
	return out
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	cases := []struct{ n, p, want int }{
		{0, 10, 1}, {1, 10, 1}, {10, 10, 1}, {11, 10, 2}, {120, 25, 5}, {100, 20, 5}, {101, 100, 2},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, TotalPages(tc.n, tc.p), "n=%d p=%d", tc.n, tc.p)
	}
}

func TestPaginateConcatenationReconstructsFilteredSet(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 9, 10, 11, 57, 100} {
		for _, size := range PageSizes {
			all := makeRecords(n)
			first := Paginate(all, Cursor{PageSize: size})
			var got []int
			for p := 0; p < first.TotalPages; p++ {
				page := Paginate(all, Cursor{Page: p, PageSize: size})
				require.LessOrEqual(t, len(page.Rows), size)
				got = append(got, serials(page.Rows)...)
			}
			want := serials(all)
			if n == 0 {
				want = nil
			}
			require.Equal(t, want, got, "n=%d size=%d", n, size)
		}
	}
}

func TestPaginateClampsStalePage(t *testing.T) {
	t.Parallel()

	all := makeRecords(120)
	page := Paginate(all, Cursor{Page: 4, PageSize: 20})
	require.Equal(t, 4, page.Cursor.Page)

	shrunk := all[:10]
	page = Paginate(shrunk, Cursor{Page: 4, PageSize: 20})
	require.Equal(t, 1, page.TotalPages)
	require.Equal(t, 0, page.Cursor.Page)
	require.Len(t, page.Rows, 10)

	page = Paginate(all[:45], Cursor{Page: 9, PageSize: 20})
	require.Equal(t, 2, page.Cursor.Page)
	require.Equal(t, 40, page.Start)
	require.Len(t, page.Rows, 5)
}

func TestPaginateEmptyAndInvalidCursor(t *testing.T) {
	t.Parallel()

	page := Paginate(nil, Cursor{Page: 3, PageSize: 10})
	require.Equal(t, 1, page.TotalPages)
	require.Equal(t, 0, page.Cursor.Page)
	require.Empty(t, page.Rows)
	require.NotNil(t, page.Rows)

	page = Paginate(makeRecords(30), Cursor{Page: -2, PageSize: 7})
	require.Equal(t, DefaultPageSize, page.Cursor.PageSize)
	require.Equal(t, 0, page.Cursor.Page)
	require.Len(t, page.Rows, 20)
}

func TestPageLinks(t *testing.T) {
	t.Parallel()

	E := Ellipsis
	cases := []struct {
		current, total int
		want           []int
	}{
		{0, 1, []int{0}},
		{2, 7, []int{0, 1, 2, 3, 4, 5, 6}},
		{0, 10, []int{0, 1, E, 9}},
		{4, 10, []int{0, E, 3, 4, 5, E, 9}},
		{9, 10, []int{0, E, 8, 9}},
		{2, 10, []int{0, 1, 2, 3, E, 9}},
		{50, 10, []int{0, E, 8, 9}},
	}
	for _, tc := range cases {
		got := PageLinks(tc.current, tc.total)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("PageLinks(%d, %d) (-want +got):\n%s", tc.current, tc.total, diff)
		}
		require.LessOrEqual(t, len(got), 7)
	}
	require.Nil(t, PageLinks(0, 0))
}

func TestSortRecords(t *testing.T) {
	t.Parallel()

	all := sample()
	SortRecords(all, Sort{Field: SortYear})
	require.Equal(t, []int{2, 6, 3, 4, 1, 7, 5}, serials(all))

	SortRecords(all, Sort{Field: SortYear, Desc: true})
	require.Equal(t, []int{7, 1, 3, 4, 6, 2, 5}, serials(all))

	SortRecords(all, Sort{Field: SortDataset})
	require.Equal(t, []int{6, 7, 2, 4, 5, 1, 3}, serials(all))

	SortRecords(all, Sort{Field: SortSerial, Desc: true})
	require.Equal(t, []int{7, 6, 5, 4, 3, 2, 1}, serials(all))

	require.Equal(t, SortSerial, SortNone.Next())
	require.Equal(t, SortNone, SortBenchmarks.Next())
}

func TestAggregateCounts(t *testing.T) {
	t.Parallel()

	all := sample()
	s := Aggregate(all)
	require.Equal(t, 7, s.Records)

	taskSum := 0
	for _, n := range s.ByTask {
		taskSum += n
	}
	require.Equal(t, len(all), taskSum)
	require.Equal(t, 1, s.ByTask[UnspecifiedTask])

	tags := 0
	for _, r := range all {
		tags += len(r.Modalities)
	}
	require.Equal(t, tags, s.ModalityTags())
	require.Greater(t, s.ModalityTags(), 0)
	require.Equal(t, 3, s.ByModality["Image"])

	require.Equal(t, 1, s.NoYear)
	require.Equal(t, []YearCount{{2009, 1}, {2014, 1}, {2015, 2}, {2016, 1}, {2018, 1}}, s.Years())
}

func TestRankedBreaksTiesByLabel(t *testing.T) {
	t.Parallel()

	got := Ranked(map[string]int{"b": 2, "a": 2, "c": 5, "d": 1})
	require.Equal(t, []Bucket{{"c", 5}, {"a", 2}, {"b", 2}, {"d", 1}}, got)
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	o := Discover(sample())
	require.Equal(t, []string{"QA", "ASR", "Classification", "Detection", "NLU"}, o.TaskNames())
	require.Equal(t, 2, o.Tasks[0].Count)
	require.Equal(t, []string{"Multimodal", "NLP", "Speech", "Vision"}, o.Areas)
	require.Equal(t, []string{"Audio", "Image", "Text"}, o.Modalities)
	require.True(t, o.HasYears)
	require.Equal(t, 2009, o.YearMin)
	require.Equal(t, 2018, o.YearMax)

	require.False(t, Discover(nil).HasYears)
}

func TestRecomputeExampleFilterShrinksToOnePage(t *testing.T) {
	t.Parallel()

	all := makeRecords(120)
	for i := 0; i < 10; i++ {
		all[i*12].Task = "Match"
	}
	s := NewState(25)
	require.Equal(t, DefaultPageSize, s.Cursor.PageSize) // 25 is not offered

	s = s.WithPageSize(50).GoToPage(2)
	s, res := Recompute(all, s)
	require.Equal(t, 2, s.Cursor.Page)
	require.Equal(t, 3, res.Page.TotalPages)

	s, res = Recompute(all, s.WithCriteria(Criteria{Task: "Match"}))
	require.Equal(t, 1, res.Page.TotalPages)
	require.Equal(t, 0, s.Cursor.Page)
	require.Len(t, res.Page.Rows, 10)
	require.False(t, res.Empty())
	require.Equal(t, 120, res.Total)

	s, res = Recompute(all, s.NextPage())
	require.Equal(t, 0, s.Cursor.Page)
	require.Len(t, res.Page.Rows, 10)
}

func TestRecomputePageSizeChangeResetsPage(t *testing.T) {
	t.Parallel()

	all := makeRecords(300)
	s, _ := Recompute(all, NewState(10).GoToPage(7))
	require.Equal(t, 7, s.Cursor.Page)

	s, res := Recompute(all, s.CyclePageSize())
	require.Equal(t, 0, s.Cursor.Page)
	require.Equal(t, 20, s.Cursor.PageSize)
	require.Equal(t, 15, res.Page.TotalPages)

	s = s.WithPageSize(100).GoToPage(2)
	s = s.CyclePageSize()
	require.Equal(t, 10, s.Cursor.PageSize)
	require.Equal(t, 0, s.Cursor.Page)
}

func TestRecomputeEmptyResultAndSelection(t *testing.T) {
	t.Parallel()

	all := sample()
	s := NewState(10).Select(3)
	s, res := Recompute(all, s.WithCriteria(Criteria{Task: "nope"}))
	require.True(t, res.Empty())
	require.Equal(t, 1, res.Page.TotalPages)
	require.Empty(t, res.Page.Rows)
	require.Equal(t, 0, res.Stats.Records)
	require.NotNil(t, res.Selected)
	require.Equal(t, "vqa", res.Selected.DatasetID)

	s, res = Recompute(all, s.Select(999))
	require.Nil(t, s.Selected)
	require.Nil(t, res.Selected)

	s, res = Recompute(all, s.ResetCriteria())
	require.Len(t, res.Filtered, 7)
	require.True(t, s.Criteria.IsZero())
}

func TestStateRoundTripsThroughYAML(t *testing.T) {
	t.Parallel()

	s := NewState(50).
		WithCriteria(Criteria{Task: "QA", Modalities: []string{"Text"}, YearMin: intp(2010), Search: "sq", Fuzzy: true}).
		WithSort(Sort{Field: SortYear, Desc: true}).
		WithTab(TabStats).
		GoToPage(3)

	data, err := EncodeState(s)
	require.NoError(t, err)
	require.Contains(t, string(data), "task: QA")

	got, err := DecodeState(data)
	require.NoError(t, err)
	if diff := cmp.Diff(s, got); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}

	got, err = DecodeState([]byte("cursor:\n  page: -1\n  page_size: 33\n"))
	require.NoError(t, err)
	require.Equal(t, Cursor{Page: 0, PageSize: DefaultPageSize}, got.Cursor)
	require.Equal(t, TabExplorer, got.Tab)

	_, err = DecodeState([]byte("criteria: [unclosed"))
	require.Error(t, err)
}
