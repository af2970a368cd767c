package reducer

import (
	"time"

	"github.com/sabiql/sabiql/internal/action"
	"github.com/sabiql/sabiql/internal/appstate"
	"github.com/sabiql/sabiql/internal/effect"
)

// reduceNavigation handles list selection, pane scrolling, and result
// pagination. It does not check the input mode; the key mapper only
// produces these actions from the picker and normal-mode bindings.
// SQL-modal-specific movement lives in reduceSQLModal.
func reduceNavigation(s *appstate.AppState, a action.Action, now time.Time) ([]effect.Effect, bool) {
	switch a.Kind {
	case action.KindSelectNext:
		if max := pickerListLen(s) - 1; max >= 0 && s.UI.PickerSelected < max {
			s.UI.PickerSelected++
		}
		return nil, true
	case action.KindSelectPrevious:
		if s.UI.PickerSelected > 0 {
			s.UI.PickerSelected--
		}
		return nil, true
	case action.KindSelectFirst:
		s.UI.PickerSelected = 0
		return nil, true
	case action.KindSelectLast:
		if max := pickerListLen(s) - 1; max >= 0 {
			s.UI.PickerSelected = max
		}
		return nil, true

	case action.KindConfirmSelection:
		return reduceConfirmSelection(s, now), true

	case action.KindResultScroll, action.KindInspectorScroll, action.KindExplorerScroll:
		applyScroll(s, a.Scroll)
		return nil, true

	case action.KindResultNextPage:
		return reduceResultNextPage(s), true
	case action.KindResultPrevPage:
		return reduceResultPrevPage(s), true
	}
	return nil, false
}

// pickerListLen returns the length of whichever filtered list is backing
// the currently open picker overlay, or -1 if neither is open.
func pickerListLen(s *appstate.AppState) int {
	switch s.UI.InputMode {
	case appstate.ModeTablePicker:
		return len(FilteredTables(s))
	case appstate.ModeCommandPalette:
		return len(FilteredCommands(s))
	}
	return -1
}

// reduceConfirmSelection resolves the highlighted row against whichever
// picker is open and dispatches the corresponding action through the full
// cascade, so a palette command behaves exactly as if it were typed.
func reduceConfirmSelection(s *appstate.AppState, now time.Time) []effect.Effect {
	switch s.UI.InputMode {
	case appstate.ModeTablePicker:
		tables := FilteredTables(s)
		s.UI.InputMode = appstate.ModeNormal
		if s.UI.PickerSelected >= len(tables) {
			return nil
		}
		t := tables[s.UI.PickerSelected]
		return selectTable(s, t.Schema, t.Name)

	case appstate.ModeCommandPalette:
		commands := FilteredCommands(s)
		s.UI.InputMode = appstate.ModeNormal
		if s.UI.PickerSelected >= len(commands) {
			return nil
		}
		return Reduce(s, commands[s.UI.PickerSelected].Action, now)
	}
	return nil
}

func applyScroll(s *appstate.AppState, dir action.ScrollDirection) {
	switch dir {
	case action.ScrollUp:
		if s.Selection.Row > 0 {
			s.Selection.Row--
		}
	case action.ScrollDown:
		s.Selection.Row++
	case action.ScrollTop:
		s.Selection.Row = 0
	}
}

// reduceResultNextPage is a no-op if a query is already running (not
// modeled here), the current result isn't a Preview, or reached_end is
// set.
func reduceResultNextPage(s *appstate.AppState) []effect.Effect {
	if s.QueryResult == nil || s.QueryResult.Source != appstate.SourcePreview {
		return nil
	}
	if s.Pagination.ReachedEnd {
		return nil
	}
	nextPage := s.Pagination.CurrentPage + 1
	return []effect.Effect{{
		Kind:       effect.KindExecutePreview,
		DSN:        s.Conn.DSN,
		Schema:     s.Pagination.Schema,
		Table:      s.Pagination.Table,
		Generation: s.Generation,
		Limit:      previewPageSize,
		Offset:     nextPage * previewPageSize,
		TargetPage: nextPage,
	}}
}

func reduceResultPrevPage(s *appstate.AppState) []effect.Effect {
	if s.Pagination.CurrentPage == 0 {
		return nil
	}
	s.Pagination.ReachedEnd = false
	prevPage := s.Pagination.CurrentPage - 1
	return []effect.Effect{{
		Kind:       effect.KindExecutePreview,
		DSN:        s.Conn.DSN,
		Schema:     s.Pagination.Schema,
		Table:      s.Pagination.Table,
		Generation: s.Generation,
		Limit:      previewPageSize,
		Offset:     prevPage * previewPageSize,
		TargetPage: prevPage,
	}}
}
