package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jask/benchexplorer/internal/service"
	"github.com/jask/benchexplorer/internal/widgets"
)

func newPresetsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage saved view presets",
	}

	open := func(cmd *cobra.Command) (*service.Catalog, int, func(), error) {
		cfg, log, cleanup, err := opts.setup()
		if err != nil {
			return nil, 0, nil, err
		}
		c, err := service.OpenPresets(cmd.Context(), cfg, log)
		if err != nil {
			cleanup()
			return nil, 0, nil, err
		}
		return c, cfg.UI.PageSize, func() { _ = c.Close(); cleanup() }, nil
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List presets, most recently used first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, done, err := open(cmd)
			if err != nil {
				return err
			}
			defer done()
			presets, err := c.ListPresets(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, len(presets))
			for i, p := range presets {
				last := "never"
				if p.LastUsedAt != nil {
					last = p.LastUsedAt.Local().Format("2006-01-02 15:04")
				}
				rows[i] = []string{p.Slug, p.Name, strconv.Itoa(p.UseCount), last}
			}
			table := widgets.Table{
				Columns: []widgets.Column{{Title: "ID", Width: 24}, {Title: "Name", Width: 28}, {Title: "Uses", Width: 5}, {Title: "Last used", Width: 16}},
				Rows:    rows,
				Cursor:  -1,
				Empty:   "No saved presets",
			}
			fmt.Fprintln(cmd.OutOrStdout(), table.Render(76, len(rows)+2))
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a preset by name or id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, done, err := open(cmd)
			if err != nil {
				return err
			}
			defer done()
			if err := c.DeletePreset(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete preset %q: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Delete every preset and restore the default one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, pageSize, done, err := open(cmd)
			if err != nil {
				return err
			}
			defer done()
			m := &service.MaintenanceService{DB: c.DB(), PageSize: pageSize}
			if err := m.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "presets reset")
			return nil
		},
	}

	cmd.AddCommand(list, del, reset)
	return cmd
}
