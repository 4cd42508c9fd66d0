package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const header = "serial_no,dataset_id,description,task,subtask,associated_tasks,modalities,homepage_url,benchmark_site_url,year_published,area,dataset_size,license,languages,paper_url,benchmark_urls"

func TestLoadParsesFullRow(t *testing.T) {
	t.Parallel()

	data := strings.Join([]string{
		header,
		`1,squad,Reading comprehension,Question Answering,Extractive QA,"QA, Reading Comprehension, ,QA","Text, Text",https://squad.example,https://bench.example,2016,NLP,100k,CC BY-SA 4.0,English,https://arxiv.example/1606,"https://pwc.example/a, https://pwc.example/b"`,
	}, "\n")

	tbl, res, err := Load(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 1, res.Loaded)
	require.Zero(t, res.Degraded)
	require.Zero(t, res.Skipped)
	require.Empty(t, res.Issues)
	require.Equal(t, 1, tbl.Len())

	r := tbl.Records()[0]
	require.Equal(t, 1, r.Serial)
	require.Equal(t, "squad", r.DatasetID)
	require.Equal(t, "Question Answering", r.Task)
	require.NotNil(t, r.Subtask)
	require.Equal(t, "Extractive QA", *r.Subtask)
	require.Equal(t, []string{"QA", "Reading Comprehension"}, r.AssociatedTasks)
	require.Equal(t, []string{"Text"}, r.Modalities)
	require.NotNil(t, r.Year)
	require.Equal(t, 2016, *r.Year)
	require.Equal(t, []string{"https://pwc.example/a", "https://pwc.example/b"}, r.BenchmarkURLs)
	require.Equal(t, 2, r.BenchmarkCount())
	require.Equal(t, 2, r.AssociatedTaskCount())

	links := r.Links()
	require.Len(t, links, 5)
	require.Equal(t, "Homepage", links[0].Label)
	require.Equal(t, "Benchmark 2", links[4].Label)
}

func TestLoadDegradesOptionalFields(t *testing.T) {
	t.Parallel()

	data := strings.Join([]string{
		header,
		"1,mnist,,Image Classification,,,,,,,Vision,,,,,",
		"2,coco,,Detection,,,Image,,,twenty,Vision,,,,,",
		"3,glue,,NLU,,,Text,,,2019.0,NLP,,,,,",
	}, "\n")

	tbl, res, err := Load(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 3, tbl.Len())
	require.Equal(t, 2, res.Loaded)
	require.Equal(t, 1, res.Degraded)
	require.Len(t, res.Issues, 1)
	require.Contains(t, res.Issues[0].Error(), "line 3")

	mnist, ok := tbl.BySerial(1)
	require.True(t, ok)
	require.Nil(t, mnist.Subtask)
	require.Nil(t, mnist.Year)
	require.Nil(t, mnist.Modalities)
	require.Empty(t, mnist.Links())

	coco, _ := tbl.BySerial(2)
	require.Nil(t, coco.Year)

	glue, _ := tbl.BySerial(3)
	require.Equal(t, 2019, *glue.Year)
}

func TestLoadSkipsMalformedLinesAndCountsThem(t *testing.T) {
	t.Parallel()

	data := strings.Join([]string{
		header,
		"1,ok-one,,Task,,,,,,2020,Area,,,,,",
		`2,bad"quote,,Task,,,,,,2020,Area,,,,,`,
		"3,ok-two,,Task,,,,,,2021,Area,,,,,",
	}, "\n")

	tbl, res, err := Load(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())
	require.Equal(t, 1, res.Skipped)
	require.Equal(t, 2, res.Rows())
	require.Len(t, res.Issues, 1)
}

func TestLoadCountsBlankRowsAsSkipped(t *testing.T) {
	t.Parallel()

	data := "serial_no,dataset_id,task\n1,a,QA\n,,\n2,b,QA\n"
	tbl, res, err := Load(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())
	require.Equal(t, 2, res.Loaded)
	require.Equal(t, 1, res.Skipped)
	require.Len(t, res.Issues, 1)
	require.EqualError(t, res.Issues[0], "line 3: blank row")
}

func TestLoadReportsLineWhereRowStarts(t *testing.T) {
	t.Parallel()

	data := strings.Join([]string{
		"serial_no,dataset_id,description,year_published",
		`1,squad,"first line`,
		`second line",2016`,
		"2,coco,,someday",
	}, "\n")
	tbl, res, err := Load(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())
	require.Equal(t, "first line\nsecond line", tbl.Records()[0].Description)
	require.Equal(t, 1, res.Degraded)
	require.Len(t, res.Issues, 1)
	require.Contains(t, res.Issues[0].Error(), "line 4 ")
}

func TestLoadAssignsSerialsForMissingAndDuplicates(t *testing.T) {
	t.Parallel()

	data := strings.Join([]string{
		header,
		"5,a,,T,,,,,,,,,,,,",
		",b,,T,,,,,,,,,,,,",
		"5,c,,T,,,,,,,,,,,,",
		"x,d,,T,,,,,,,,,,,,",
	}, "\n")

	tbl, res, err := Load(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 1, res.Loaded)
	require.Equal(t, 3, res.Degraded)

	serials := map[int]string{}
	for _, r := range tbl.Records() {
		_, dup := serials[r.Serial]
		require.False(t, dup, "serial %d reused", r.Serial)
		serials[r.Serial] = r.DatasetID
	}
	require.Equal(t, map[int]string{5: "a", 6: "b", 7: "c", 8: "d"}, serials)
}

func TestLoadWithoutSerialColumnNumbersInFileOrder(t *testing.T) {
	t.Parallel()

	data := "dataset_id,task\nalpha,T1\nbeta,T2\n"
	tbl, res, err := Load(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, res.Loaded)
	require.Zero(t, res.Degraded)
	require.Equal(t, 1, tbl.Records()[0].Serial)
	require.Equal(t, 2, tbl.Records()[1].Serial)
}

func TestLoadFatalErrors(t *testing.T) {
	t.Parallel()

	_, _, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, ErrUnreadable)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = Load(strings.NewReader(""))
	require.ErrorIs(t, err, ErrUnreadable)

	_, _, err = Load(strings.NewReader("foo,bar\n1,2\n"))
	require.ErrorIs(t, err, ErrSchema)
}

func TestLoadFileReadsFromDisk(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "datasets.csv")
	require.NoError(t, os.WriteFile(path, []byte("\ufeff"+header+"\n1,imagenet,,Classification,,,Image,,,2009,Vision,,,,,\n"), 0o644))

	tbl, res, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, res.Loaded)
	r, ok := tbl.BySerial(1)
	require.True(t, ok)
	require.Equal(t, "imagenet", r.DatasetID)
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		list []string
		set  []string
	}{
		{"", nil, nil},
		{" , ,", nil, nil},
		{"a", []string{"a"}, []string{"a"}},
		{" a , b,,a ", []string{"a", "b", "a"}, []string{"a", "b"}},
	}
	for _, tc := range cases {
		require.Equal(t, tc.list, SplitList(tc.in), "SplitList(%q)", tc.in)
		require.Equal(t, tc.set, SplitSet(tc.in), "SplitSet(%q)", tc.in)
	}
}
