package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/benchexplorer/internal/explorer"
)

func (a *App) loadPresetsCmd() tea.Cmd {
	return func() tea.Msg {
		list, err := a.catalog.ListPresets(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return presetsMsg(list)
	}
}

func (a *App) savePresetCmd(name string, s explorer.State) tea.Cmd {
	return func() tea.Msg {
		p, err := a.catalog.SavePreset(a.ctx, name, s)
		if err != nil {
			return errMsg{err}
		}
		return presetSaved{preset: p}
	}
}

func (a *App) applyPresetCmd(slug string, current explorer.State) tea.Cmd {
	return func() tea.Msg {
		next, err := a.catalog.ApplyPreset(a.ctx, slug, current)
		if err != nil {
			return errMsg{err}
		}
		return presetLoaded{slug: slug, state: next}
	}
}

func (a *App) deletePresetCmd(slug string) tea.Cmd {
	return func() tea.Msg {
		if err := a.catalog.DeletePreset(a.ctx, slug); err != nil {
			return errMsg{err}
		}
		return presetGone{slug: slug}
	}
}
