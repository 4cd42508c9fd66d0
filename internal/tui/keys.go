package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
}

// KeyRegistry maps key names to actions per scope. Lookups fall back to the
// global scope.
type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal      = "global"
	scopeList        = "list"
	scopeFilters     = "filters"
	scopeDetail      = "detail"
	scopeStats       = "stats"
	scopeSearchInput = "search_input"
	scopePresetName  = "preset_name"
	scopePresets     = "presets"
)

const (
	actionQuit         Action = "quit"
	actionNextTab      Action = "next_tab"
	actionFocusFilters Action = "focus_filters"
	actionFocusList    Action = "focus_list"
	actionNavigate     Action = "navigate"
	actionUp           Action = "up"
	actionDown         Action = "down"
	actionPrevValue    Action = "prev_value"
	actionNextValue    Action = "next_value"
	actionToggle       Action = "toggle"
	actionFuzzy        Action = "fuzzy"
	actionEditSearch   Action = "edit_search"
	actionReset        Action = "reset"
	actionNextPage     Action = "next_page"
	actionPrevPage     Action = "prev_page"
	actionFirstPage    Action = "first_page"
	actionLastPage     Action = "last_page"
	actionPageSize     Action = "page_size"
	actionOpen         Action = "open"
	actionClose        Action = "close"
	actionCopy         Action = "copy"
	actionSortField    Action = "sort_field"
	actionSortDir      Action = "sort_dir"
	actionSavePreset   Action = "save_preset"
	actionListPresets  Action = "list_presets"
	actionDelete       Action = "delete"
	actionConfirm      Action = "confirm"
	actionCancel       Action = "cancel"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}
	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(scope, Binding{Action: action, Keys: keys, Help: help})
	}

	reg(scopeGlobal, actionQuit, []string{"q", "ctrl+c"}, "quit")
	reg(scopeGlobal, actionNextTab, []string{"tab"}, "stats/explorer")
	reg(scopeGlobal, actionSavePreset, []string{"s"}, "save preset")
	reg(scopeGlobal, actionListPresets, []string{"l"}, "presets")

	// The first binding of each action is what the footer shows.
	reg(scopeList, actionNavigate, []string{"j/k"}, "move")
	reg(scopeList, actionDown, []string{"j", "down"}, "")
	reg(scopeList, actionUp, []string{"k", "up"}, "")
	reg(scopeList, actionNextPage, []string{"n", "right", "pgdown"}, "next page")
	reg(scopeList, actionPrevPage, []string{"p", "left", "pgup"}, "prev page")
	reg(scopeList, actionFirstPage, []string{"g", "home"}, "first")
	reg(scopeList, actionLastPage, []string{"G", "end"}, "last")
	reg(scopeList, actionPageSize, []string{"z"}, "page size")
	reg(scopeList, actionOpen, []string{"enter"}, "details")
	reg(scopeList, actionSortField, []string{"o"}, "sort")
	reg(scopeList, actionSortDir, []string{"O"}, "sort dir")
	reg(scopeList, actionFocusFilters, []string{"f"}, "filters")
	reg(scopeList, actionEditSearch, []string{"/"}, "search")
	reg(scopeList, actionReset, []string{"r"}, "reset")

	reg(scopeFilters, actionNavigate, []string{"j/k"}, "field")
	reg(scopeFilters, actionDown, []string{"j", "down"}, "")
	reg(scopeFilters, actionUp, []string{"k", "up"}, "")
	reg(scopeFilters, actionPrevValue, []string{"h", "left"}, "prev")
	reg(scopeFilters, actionNextValue, []string{"l", "right"}, "next")
	reg(scopeFilters, actionToggle, []string{"space"}, "toggle")
	reg(scopeFilters, actionEditSearch, []string{"enter", "/"}, "edit search")
	reg(scopeFilters, actionFuzzy, []string{"~"}, "fuzzy")
	reg(scopeFilters, actionReset, []string{"r"}, "reset")
	reg(scopeFilters, actionFocusList, []string{"esc", "f"}, "list")

	reg(scopeDetail, actionNavigate, []string{"j/k"}, "prev/next record")
	reg(scopeDetail, actionDown, []string{"j", "down"}, "")
	reg(scopeDetail, actionUp, []string{"k", "up"}, "")
	reg(scopeDetail, actionCopy, []string{"y"}, "copy link")
	reg(scopeDetail, actionClose, []string{"esc", "enter"}, "close")

	reg(scopeStats, actionReset, []string{"r"}, "reset filters")
	reg(scopeStats, actionFocusFilters, []string{"f"}, "filters")

	reg(scopeSearchInput, actionConfirm, []string{"enter"}, "apply")
	reg(scopeSearchInput, actionCancel, []string{"esc"}, "cancel")
	reg(scopePresetName, actionConfirm, []string{"enter"}, "save")
	reg(scopePresetName, actionCancel, []string{"esc"}, "cancel")

	reg(scopePresets, actionNavigate, []string{"j/k"}, "navigate")
	reg(scopePresets, actionDown, []string{"j", "down"}, "")
	reg(scopePresets, actionUp, []string{"k", "up"}, "")
	reg(scopePresets, actionConfirm, []string{"enter"}, "apply")
	reg(scopePresets, actionDelete, []string{"x"}, "delete")
	reg(scopePresets, actionCancel, []string{"esc"}, "close")
	return r
}

// Register adds b to scope. Keys already bound in the scope are skipped.
func (r *KeyRegistry) Register(scope string, b Binding) {
	scope = strings.TrimSpace(scope)
	if r == nil || scope == "" {
		return
	}
	if _, ok := r.indexByScope[scope]; !ok {
		r.indexByScope[scope] = make(map[string]*Binding)
	}
	keys := make([]string, 0, len(b.Keys))
	for _, k := range b.Keys {
		n := normalizeKeyName(k)
		if n == "" {
			continue
		}
		if _, taken := r.indexByScope[scope][n]; taken {
			continue
		}
		keys = append(keys, n)
	}
	if len(keys) == 0 {
		return
	}
	copyBinding := b
	copyBinding.Keys = keys
	r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
	for _, k := range keys {
		r.indexByScope[scope][k] = &copyBinding
	}
}

func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.indexByScope[scope][keyName]; b != nil {
		return b
	}
	if scope != scopeGlobal {
		return r.indexByScope[scopeGlobal][keyName]
	}
	return nil
}

// HelpBindings lists the footer entries for scope followed by the global ones.
// Bindings with no help text are left out.
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	var out []key.Binding
	add := func(s string) {
		for _, b := range r.bindingsByScope[s] {
			if b.Help == "" {
				continue
			}
			out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
		}
	}
	add(scope)
	if scope != scopeGlobal && !modalScope(scope) {
		add(scopeGlobal)
	}
	return out
}

func modalScope(scope string) bool {
	switch scope {
	case scopeSearchInput, scopePresetName, scopePresets:
		return true
	}
	return false
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if len(trimmed) == 1 {
		// Single runes keep their case so o and O can differ.
		return trimmed
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	return s
}
