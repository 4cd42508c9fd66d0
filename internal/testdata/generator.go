// Package testdata generates synthetic benchmark catalogues for demos and
// large-input tests.
package testdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/benchexplorer/internal/dataset"
)

var (
	tasks = []string{
		"Question Answering", "Image Classification", "Object Detection", "Speech Recognition",
		"Machine Translation", "Summarization", "Visual Question Answering", "Code Generation",
	}
	areas      = []string{"NLP", "Vision", "Speech", "Multimodal", "Code"}
	modalities = []string{"Text", "Image", "Audio", "Video", "Code", "Tabular"}
	licenses   = []string{"CC BY 4.0", "MIT", "Apache 2.0", "CC BY-NC 4.0", ""}
	prefixes   = []string{"open", "big", "wiki", "sim", "multi", "tiny", "robust", "cross"}
	suffixes   = []string{"qa", "bench", "set", "eval", "corpus", "vision", "speech", "code"}
)

// Options controls the shape of a generated catalogue.
type Options struct {
	Rows int
	Seed uint64
	// Degraded is the share of rows written with an unparseable year.
	Degraded float64
	// Blank is the share of rows with no task and no year.
	Blank float64
}

// Write emits a catalogue in the loader's CSV schema. The same Options always
// produce the same bytes.
func Write(w io.Writer, opts Options) error {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	cw := csv.NewWriter(w)
	if err := cw.Write(dataset.Columns); err != nil {
		return err
	}
	for i := 1; i <= opts.Rows; i++ {
		if err := cw.Write(row(rng, i, opts)); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Catalogue is Write into a string.
func Catalogue(opts Options) string {
	var b strings.Builder
	_ = Write(&b, opts)
	return b.String()
}

func row(rng *rand.Rand, serial int, opts Options) []string {
	id := fmt.Sprintf("%s%s-%d", pick(rng, prefixes), pick(rng, suffixes), serial)
	task := pick(rng, tasks)
	year := strconv.Itoa(2000 + rng.IntN(26))
	switch p := rng.Float64(); {
	case p < opts.Blank:
		task, year = "", ""
	case p < opts.Blank+opts.Degraded:
		year = "tbd"
	}

	mods := make([]string, 0, 3)
	for _, m := range modalities {
		if rng.IntN(4) == 0 {
			mods = append(mods, m)
		}
	}
	if len(mods) == 0 {
		mods = append(mods, pick(rng, modalities))
	}

	benches := make([]string, rng.IntN(4))
	for i := range benches {
		benches[i] = "https://bench.example.org/" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("%s/%d", id, i))).String()
	}
	homepage := ""
	if rng.IntN(2) == 0 {
		homepage = "https://" + id + ".example.org"
	}

	// Order follows dataset.Columns.
	return []string{
		strconv.Itoa(serial),
		id,
		fmt.Sprintf("Synthetic %s dataset #%d.", strings.ToLower(task), serial),
		task,
		"",
		strings.Join(pickN(rng, tasks, rng.IntN(3)), ", "),
		strings.Join(mods, ", "),
		homepage,
		"",
		year,
		pick(rng, areas),
		fmt.Sprintf("%dk", 1+rng.IntN(900)),
		pick(rng, licenses),
		"en",
		"",
		strings.Join(benches, ", "),
	}
}

func pick(rng *rand.Rand, from []string) string { return from[rng.IntN(len(from))] }

func pickN(rng *rand.Rand, from []string, n int) []string {
	out := make([]string, 0, n)
	for _, i := range rng.Perm(len(from))[:n] {
		out = append(out, from[i])
	}
	return out
}
