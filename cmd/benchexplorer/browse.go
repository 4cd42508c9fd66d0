package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/benchexplorer/internal/service"
	"github.com/jask/benchexplorer/internal/tui"
)

func runBrowse(ctx context.Context, opts *options) error {
	cfg, log, cleanup, err := opts.setup()
	if err != nil {
		return err
	}
	defer cleanup()

	catalog, err := service.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer catalog.Close()

	app := tui.New(ctx, catalog, cfg.UI, log)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		log.Error("ui exited", zap.Error(err))
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
