package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/benchexplorer/internal/config"
	"github.com/jask/benchexplorer/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "benchexplorer:", err)
		stop()
		os.Exit(1)
	}
}

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	dataPath   string
	dbPath     string
	noPresets  bool
	debugLog   string
	pageSize   int
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "benchexplorer",
		Short: "Browse a catalogue of AI benchmarks and datasets",
		Long: `benchexplorer loads a CSV catalogue of AI benchmarks once and lets you
filter it by task, area, modality, year and name, page through the matches,
open any record, and chart the distribution of the filtered set.

Run without a subcommand to start the interactive browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd.Context(), opts)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/benchexplorer/config.toml)")
	flags.StringVar(&opts.dataPath, "data", "", "catalogue CSV (overrides data.path)")
	flags.StringVar(&opts.dbPath, "db", "", "preset database (overrides database.path)")
	flags.BoolVar(&opts.noPresets, "no-presets", false, "run without the preset database")
	flags.StringVar(&opts.debugLog, "debug-log", "", "write debug logs to this file")
	flags.IntVar(&opts.pageSize, "page-size", 0, "initial rows per page (10, 20, 50 or 100)")

	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newPresetsCmd(opts))
	root.AddCommand(newSampleCmd())
	root.AddCommand(newConfigCmd(opts))
	return root
}

// setup resolves the configuration with flag overrides applied and builds the
// logger. The returned cleanup flushes the logger.
func (o *options) setup() (config.Config, *zap.Logger, func(), error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	if o.dataPath != "" {
		cfg.Data.Path = o.dataPath
	}
	if o.dbPath != "" {
		cfg.Database.Path = o.dbPath
	}
	if o.noPresets {
		cfg.Database.Path = ""
	}
	if o.pageSize != 0 {
		cfg.UI.PageSize = o.pageSize
	}
	if o.debugLog != "" {
		cfg.Log.File, cfg.Log.Level = o.debugLog, "debug"
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, nil, err
	}
	log, cleanup, err := logging.Setup(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, log, cleanup, nil
}
