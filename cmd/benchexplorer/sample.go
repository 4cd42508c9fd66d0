package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/benchexplorer/internal/testdata"
)

func newSampleCmd() *cobra.Command {
	var (
		opts testdata.Options
		out  string
	)
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a synthetic catalogue CSV for trying the browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Rows < 0 {
				return fmt.Errorf("--rows must not be negative")
			}
			if out == "" || out == "-" {
				return testdata.Write(cmd.OutOrStdout(), opts)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := testdata.Write(f, opts); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d rows to %s\n", opts.Rows, out)
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.Rows, "rows", 500, "number of datasets")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 1, "random seed")
	cmd.Flags().Float64Var(&opts.Degraded, "degraded", 0.02, "share of rows with an unparseable year")
	cmd.Flags().Float64Var(&opts.Blank, "blank", 0.03, "share of rows with no task or year")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}
