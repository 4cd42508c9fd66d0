package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/benchexplorer/internal/explorer"
	"github.com/jask/benchexplorer/internal/service"
	"github.com/jask/benchexplorer/internal/widgets"
)

const statsWidth = 80

type statsFlags struct {
	task       string
	area       string
	modalities []string
	yearMin    int
	yearMax    int
	search     string
	fuzzy      bool
}

func newStatsCmd(opts *options) *cobra.Command {
	f := &statsFlags{}
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print task, year and modality counts for the (filtered) catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, cleanup, err := opts.setup()
			if err != nil {
				return err
			}
			defer cleanup()
			cfg.Database.Path = ""

			catalog, err := service.Open(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer catalog.Close()

			state := explorer.NewState(cfg.UI.PageSize).WithCriteria(f.criteria(cmd))
			_, res := catalog.Recompute(state)
			writeStats(cmd.OutOrStdout(), res, cfg.UI.ChartRows)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.task, "task", "", "exact task")
	flags.StringVar(&f.area, "area", "", "exact area")
	flags.StringSliceVar(&f.modalities, "modality", nil, "modality, repeatable; a record matches any")
	flags.IntVar(&f.yearMin, "year-min", 0, "earliest publication year (inclusive)")
	flags.IntVar(&f.yearMax, "year-max", 0, "latest publication year (inclusive)")
	flags.StringVar(&f.search, "search", "", "dataset id substring")
	flags.BoolVar(&f.fuzzy, "fuzzy", false, "tolerate typos in --search")
	return cmd
}

func (f *statsFlags) criteria(cmd *cobra.Command) explorer.Criteria {
	c := explorer.Criteria{
		Task:       f.task,
		Area:       f.area,
		Modalities: f.modalities,
		Search:     f.search,
		Fuzzy:      f.fuzzy,
	}
	if cmd.Flags().Changed("year-min") {
		y := f.yearMin
		c.YearMin = &y
	}
	if cmd.Flags().Changed("year-max") {
		y := f.yearMax
		c.YearMax = &y
	}
	return c
}

func writeStats(w io.Writer, res explorer.Result, chartRows int) {
	fmt.Fprintf(w, "%d of %d datasets\n", len(res.Filtered), res.Total)
	if res.Empty() {
		fmt.Fprintln(w, "No results for the current filters.")
		return
	}
	st := res.Stats
	bars := func(buckets []explorer.Bucket) []widgets.Bar {
		out := make([]widgets.Bar, len(buckets))
		for i, b := range buckets {
			out[i] = widgets.Bar{Label: b.Label, Count: b.Count}
		}
		return out
	}
	points := make([]widgets.YearPoint, 0, len(st.ByYear))
	for _, y := range st.Years() {
		points = append(points, widgets.YearPoint{Year: y.Year, Count: y.Count})
	}
	sections := []string{
		widgets.BarChart{Title: "By task", Bars: bars(st.Tasks()), Total: st.Records}.Render(statsWidth, chartRows+1),
		widgets.Trend{Title: "By year", Points: points, Undated: st.NoYear}.Render(statsWidth, 10),
		widgets.BarChart{Title: "By modality", Bars: bars(st.Modalities()), Total: st.ModalityTags()}.Render(statsWidth, chartRows+1),
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Join(sections, "\n\n"))
}
