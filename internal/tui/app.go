package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/benchexplorer/internal/config"
	"github.com/jask/benchexplorer/internal/database/repository"
	"github.com/jask/benchexplorer/internal/explorer"
	"github.com/jask/benchexplorer/internal/service"
)

// App is the bubbletea model. It owns one explorer.State; every key press
// produces the next state and a full recompute of the result.
type App struct {
	ctx     context.Context
	catalog *service.Catalog
	log     *zap.Logger
	keys    *KeyRegistry

	state  explorer.State
	result explorer.Result
	row    int // cursor within the current page

	focus   focusArea
	field   filterField
	chip    int // modality chip under the cursor
	overlay overlayKind

	input        textinput.Model
	searchBefore string

	presets      []repository.Preset
	presetCursor int

	status    string
	statusErr bool

	copyText func(string) error

	width     int
	height    int
	chartRows int
}

type focusArea int

const (
	focusList focusArea = iota
	focusFilters
)

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlaySearch
	overlayPresetName
	overlayPresets
)

type filterField int

const (
	fieldTask filterField = iota
	fieldArea
	fieldModality
	fieldYearMin
	fieldYearMax
	fieldSearch
	fieldCount
)

func (f filterField) label() string {
	switch f {
	case fieldTask:
		return "Task"
	case fieldArea:
		return "Area"
	case fieldModality:
		return "Modality"
	case fieldYearMin:
		return "Year from"
	case fieldYearMax:
		return "Year to"
	case fieldSearch:
		return "Search"
	}
	return ""
}

// New builds the app over a loaded catalogue.
func New(ctx context.Context, catalog *service.Catalog, ui config.UIConfig, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	inp := textinput.New()
	inp.CharLimit = 120
	a := &App{
		ctx:       ctx,
		catalog:   catalog,
		log:       log,
		keys:      NewKeyRegistry(),
		input:     inp,
		chartRows: max(1, ui.ChartRows),
		copyText:  copyToClipboard,
	}
	a.apply(explorer.NewState(ui.PageSize))
	if res := catalog.Load; res.Degraded > 0 || res.Skipped > 0 {
		a.status = fmt.Sprintf("loaded %d datasets (%d with missing fields, %d rows skipped)",
			res.Rows(), res.Degraded, res.Skipped)
	}
	return a
}

// State returns the current session state.
func (a *App) State() explorer.State { return a.state }

// Result returns the output of the last recompute.
func (a *App) Result() explorer.Result { return a.result }

func (a *App) Init() tea.Cmd { return nil }

type (
	statusMsg    string
	errMsg       struct{ err error }
	presetsMsg   []repository.Preset
	presetSaved  struct{ preset repository.Preset }
	presetGone   struct{ slug string }
	presetLoaded struct {
		slug  string
		state explorer.State
	}
)

func (e errMsg) Error() string { return e.err.Error() }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case tea.KeyMsg:
		return a.handleKey(m)
	case presetsMsg:
		a.presets = []repository.Preset(m)
		a.presetCursor = min(a.presetCursor, max(0, len(a.presets)-1))
		a.overlay = overlayPresets
	case presetSaved:
		a.setStatus("saved preset " + m.preset.Name)
	case presetGone:
		for i, p := range a.presets {
			if p.Slug == m.slug {
				a.presets = append(a.presets[:i:i], a.presets[i+1:]...)
				break
			}
		}
		a.presetCursor = min(a.presetCursor, max(0, len(a.presets)-1))
		a.setStatus("deleted preset " + m.slug)
	case presetLoaded:
		a.overlay = overlayNone
		a.focus = focusList
		a.row = 0
		a.apply(m.state)
		a.setStatus("applied preset " + m.slug)
	case statusMsg:
		a.setStatus(string(m))
	case errMsg:
		a.setError(m.err)
	default:
		if a.overlay == overlaySearch || a.overlay == overlayPresetName {
			var cmd tea.Cmd
			a.input, cmd = a.input.Update(msg)
			return a, cmd
		}
	}
	return a, nil
}

// apply recomputes the result for next and adopts the clamped state.
func (a *App) apply(next explorer.State) {
	a.state, a.result = a.catalog.Recompute(next)
	a.row = max(0, min(a.row, len(a.result.Page.Rows)-1))
}

func (a *App) setStatus(s string) {
	a.status, a.statusErr = s, false
}

func (a *App) setError(err error) {
	a.status, a.statusErr = "error: "+err.Error(), true
	a.log.Warn("ui error", zap.Error(err))
}

func (a *App) scope() string {
	switch a.overlay {
	case overlaySearch:
		return scopeSearchInput
	case overlayPresetName:
		return scopePresetName
	case overlayPresets:
		return scopePresets
	}
	switch {
	case a.focus == focusFilters:
		return scopeFilters
	case a.state.Tab == explorer.TabStats:
		return scopeStats
	case a.result.Selected != nil:
		return scopeDetail
	}
	return scopeList
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	scope := a.scope()
	b := a.keys.Lookup(m.String(), scope)
	if scope == scopeSearchInput || scope == scopePresetName {
		return a.handleInputKey(m, scope, b)
	}
	if b == nil {
		return a, nil
	}

	next, cmd, handled := a.state, tea.Cmd(nil), true
	switch scope {
	case scopeList:
		next, cmd, handled = a.listAction(b.Action)
	case scopeFilters:
		next, cmd, handled = a.filterAction(b.Action)
	case scopeDetail:
		next, handled = a.detailAction(b.Action)
	case scopeStats:
		next, handled = a.statsAction(b.Action)
	case scopePresets:
		return a, a.presetsAction(b.Action)
	}
	if !handled {
		next, cmd = a.globalAction(b.Action)
	}
	a.apply(next)
	return a, cmd
}

func (a *App) globalAction(action Action) (explorer.State, tea.Cmd) {
	s := a.state
	switch action {
	case actionQuit:
		return s, tea.Quit
	case actionNextTab:
		if s.Tab == explorer.TabStats {
			return s.WithTab(explorer.TabExplorer), nil
		}
		return s.WithTab(explorer.TabStats), nil
	case actionSavePreset:
		if a.catalog.Presets == nil {
			a.setError(service.ErrPresetsDisabled)
			return s, nil
		}
		a.openInput(overlayPresetName, "", "preset name")
		return s, textinput.Blink
	case actionListPresets:
		return s, a.loadPresetsCmd()
	}
	return s, nil
}

func (a *App) listAction(action Action) (explorer.State, tea.Cmd, bool) {
	s := a.state
	rows := a.result.Page.Rows
	switch action {
	case actionDown:
		if a.row < len(rows)-1 {
			a.row++
			return s, nil, true
		}
		if s.Cursor.Page < a.result.Page.TotalPages-1 {
			a.row = 0
			return s.NextPage(), nil, true
		}
	case actionUp:
		if a.row > 0 {
			a.row--
			return s, nil, true
		}
		if s.Cursor.Page > 0 {
			a.row = s.Cursor.PageSize - 1
			return s.PrevPage(), nil, true
		}
	case actionNextPage:
		a.row = 0
		return s.NextPage(), nil, true
	case actionPrevPage:
		a.row = 0
		return s.PrevPage(), nil, true
	case actionFirstPage:
		a.row = 0
		return s.GoToPage(0), nil, true
	case actionLastPage:
		a.row = 0
		return s.GoToPage(a.result.Page.TotalPages - 1), nil, true
	case actionPageSize:
		a.row = 0
		next := s.CyclePageSize()
		a.setStatus(fmt.Sprintf("%d rows per page", next.Cursor.PageSize))
		return next, nil, true
	case actionOpen:
		if len(rows) > 0 {
			return s.Select(rows[a.row].Serial), nil, true
		}
	case actionSortField:
		a.row = 0
		return s.WithSort(explorer.Sort{Field: s.Sort.Field.Next(), Desc: s.Sort.Desc}).GoToPage(0), nil, true
	case actionSortDir:
		a.row = 0
		field := s.Sort.Field
		if field == explorer.SortNone {
			field = explorer.SortSerial
		}
		return s.WithSort(explorer.Sort{Field: field, Desc: !s.Sort.Desc}).GoToPage(0), nil, true
	case actionFocusFilters:
		a.focus = focusFilters
	case actionEditSearch:
		a.field = fieldSearch
		a.openInput(overlaySearch, s.Criteria.Search, "dataset id")
		return s, textinput.Blink, true
	case actionReset:
		a.row = 0
		a.setStatus("filters reset")
		return s.ResetCriteria(), nil, true
	default:
		return s, nil, false
	}
	return s, nil, true
}

func (a *App) filterAction(action Action) (explorer.State, tea.Cmd, bool) {
	s := a.state
	c := s.Criteria
	opts := a.catalog.Options
	switch action {
	case actionDown:
		a.field = (a.field + 1) % fieldCount
	case actionUp:
		a.field = (a.field + fieldCount - 1) % fieldCount
	case actionPrevValue, actionNextValue:
		dir := 1
		if action == actionPrevValue {
			dir = -1
		}
		switch a.field {
		case fieldTask:
			c.Task = cycleString(opts.TaskNames(), c.Task, dir)
		case fieldArea:
			c.Area = cycleString(opts.Areas, c.Area, dir)
		case fieldModality:
			if n := len(opts.Modalities); n > 0 {
				a.chip = (a.chip + dir + n) % n
			}
			return s, nil, true
		case fieldYearMin:
			c.YearMin = cycleYear(c.YearMin, dir, opts)
		case fieldYearMax:
			c.YearMax = cycleYear(c.YearMax, dir, opts)
		case fieldSearch:
			return s, nil, true
		}
		return s.WithCriteria(c), nil, true
	case actionToggle:
		if a.field == fieldModality && a.chip < len(opts.Modalities) {
			return s.WithCriteria(c.ToggleModality(opts.Modalities[a.chip])), nil, true
		}
	case actionFuzzy:
		c.Fuzzy = !c.Fuzzy
		return s.WithCriteria(c), nil, true
	case actionEditSearch:
		a.field = fieldSearch
		a.openInput(overlaySearch, c.Search, "dataset id")
		return s, textinput.Blink, true
	case actionReset:
		a.row = 0
		a.setStatus("filters reset")
		return s.ResetCriteria(), nil, true
	case actionFocusList:
		a.focus = focusList
	default:
		return s, nil, false
	}
	return s, nil, true
}

func (a *App) detailAction(action Action) (explorer.State, bool) {
	s := a.state
	switch action {
	case actionClose:
		return s.ClearSelection(), true
	case actionCopy:
		r := a.result.Selected
		text := r.DatasetID
		if links := r.Links(); len(links) > 0 {
			text = links[0].URL
		}
		if err := a.copyText(text); err != nil {
			a.setError(err)
		} else {
			a.setStatus("copied " + text)
		}
		return s, true
	case actionDown, actionUp:
		step := 1
		if action == actionUp {
			step = -1
		}
		idx := -1
		for i, r := range a.result.Filtered {
			if r.Serial == *s.Selected {
				idx = i
				break
			}
		}
		target := idx + step
		if idx < 0 || target < 0 || target >= len(a.result.Filtered) {
			return s, true
		}
		size := s.Cursor.PageSize
		a.row = target % size
		return s.GoToPage(target / size).Select(a.result.Filtered[target].Serial), true
	}
	return s, false
}

func (a *App) statsAction(action Action) (explorer.State, bool) {
	switch action {
	case actionReset:
		a.setStatus("filters reset")
		return a.state.ResetCriteria(), true
	case actionFocusFilters:
		a.focus = focusFilters
		return a.state, true
	}
	return a.state, false
}

func (a *App) presetsAction(action Action) tea.Cmd {
	switch action {
	case actionDown:
		if a.presetCursor < len(a.presets)-1 {
			a.presetCursor++
		}
	case actionUp:
		if a.presetCursor > 0 {
			a.presetCursor--
		}
	case actionConfirm:
		if len(a.presets) > 0 {
			return a.applyPresetCmd(a.presets[a.presetCursor].Slug, a.state)
		}
	case actionDelete:
		if len(a.presets) > 0 {
			return a.deletePresetCmd(a.presets[a.presetCursor].Slug)
		}
	case actionCancel:
		a.overlay = overlayNone
	case actionQuit:
		return tea.Quit
	}
	return nil
}

func (a *App) openInput(kind overlayKind, value, placeholder string) {
	a.overlay = kind
	a.searchBefore = a.state.Criteria.Search
	a.input.SetValue(value)
	a.input.Placeholder = placeholder
	a.input.CursorEnd()
	a.input.Focus()
}

func (a *App) closeInput() {
	a.overlay = overlayNone
	a.input.Blur()
	a.input.SetValue("")
}

// handleInputKey drives the search box and the preset name prompt. Search is
// live: every edit recomputes, and esc restores the previous query.
func (a *App) handleInputKey(m tea.KeyMsg, scope string, b *Binding) (tea.Model, tea.Cmd) {
	if b != nil {
		switch b.Action {
		case actionConfirm:
			value := strings.TrimSpace(a.input.Value())
			if scope == scopePresetName {
				if value == "" {
					a.setError(repository.ErrEmptyName)
					return a, nil
				}
				a.closeInput()
				return a, a.savePresetCmd(value, a.state)
			}
			a.closeInput()
			a.row = 0
			c := a.state.Criteria
			c.Search = value
			a.apply(a.state.WithCriteria(c))
			return a, nil
		case actionCancel:
			a.closeInput()
			if scope == scopeSearchInput {
				c := a.state.Criteria
				c.Search = a.searchBefore
				a.apply(a.state.WithCriteria(c))
			}
			return a, nil
		}
	}
	if m.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	if scope == scopeSearchInput {
		c := a.state.Criteria
		c.Search = a.input.Value()
		a.apply(a.state.WithCriteria(c))
	}
	return a, cmd
}

// cycleString steps through "" (any) followed by values.
func cycleString(values []string, current string, dir int) string {
	all := append([]string{""}, values...)
	idx := 0
	for i, v := range all {
		if v == current {
			idx = i
			break
		}
	}
	return all[(idx+dir+len(all))%len(all)]
}

// cycleYear steps through nil (any) followed by every year in the table's range.
func cycleYear(current *int, dir int, opts explorer.Options) *int {
	if !opts.HasYears {
		return nil
	}
	n := opts.YearMax - opts.YearMin + 2
	idx := 0
	if current != nil {
		idx = max(1, min(n-1, *current-opts.YearMin+1))
	}
	idx = (idx + dir + n) % n
	if idx == 0 {
		return nil
	}
	y := opts.YearMin + idx - 1
	return &y
}
