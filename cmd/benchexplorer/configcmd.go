package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/benchexplorer/internal/config"
)

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write the configuration file",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration after flags and env",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, cleanup, err := opts.setup()
			if err != nil {
				return err
			}
			defer cleanup()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "data.path        %s\n", cfg.Data.Path)
			fmt.Fprintf(w, "database.path    %s\n", orNone(cfg.Database.Path))
			fmt.Fprintf(w, "ui.page_size     %d\n", cfg.UI.PageSize)
			fmt.Fprintf(w, "ui.chart_rows    %d\n", cfg.UI.ChartRows)
			fmt.Fprintf(w, "log.file         %s\n", orNone(cfg.Log.File))
			fmt.Fprintf(w, "log.level        %s\n", cfg.Log.Level)
			return nil
		},
	}

	var path string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to a TOML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, cleanup, err := opts.setup()
			if err != nil {
				return err
			}
			defer cleanup()
			if path == "" {
				path = opts.configPath
			}
			if err := config.Save(cfg, path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "config written")
			return nil
		},
	}
	initCmd.Flags().StringVarP(&path, "output", "o", "", "target file (default --config or ~/.config/benchexplorer/config.toml)")

	cmd.AddCommand(show, initCmd)
	return cmd
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
