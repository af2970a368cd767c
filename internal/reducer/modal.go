package reducer

import (
	"time"

	"github.com/sabiql/sabiql/internal/action"
	"github.com/sabiql/sabiql/internal/appstate"
	"github.com/sabiql/sabiql/internal/effect"
)

// reduceModal handles pane-focus, mode toggles, and the filter/command
// line buffers shared by the table picker and command palette overlays.
func reduceModal(s *appstate.AppState, a action.Action, now time.Time) ([]effect.Effect, bool) {
	switch a.Kind {
	case action.KindSetFocusedPane:
		s.UI.FocusedPane = a.Pane
		return nil, true
	case action.KindToggleFocus:
		s.ToggleFocus()
		return nil, true
	case action.KindInspectorNextTab:
		s.UI.InspectorTab = s.UI.InspectorTab.Next()
		return nil, true
	case action.KindInspectorPrevTab:
		s.UI.InspectorTab = s.UI.InspectorTab.Prev()
		return nil, true

	case action.KindOpenTablePicker:
		s.UI.InputMode = appstate.ModeTablePicker
		s.UI.FilterInput = ""
		s.UI.PickerSelected = 0
		return nil, true
	case action.KindCloseTablePicker:
		s.UI.InputMode = appstate.ModeNormal
		return nil, true
	case action.KindOpenCommandPalette:
		s.UI.InputMode = appstate.ModeCommandPalette
		s.UI.PickerSelected = 0
		return nil, true
	case action.KindCloseCommandPalette:
		s.UI.InputMode = appstate.ModeNormal
		return nil, true
	case action.KindOpenHelp:
		if s.UI.InputMode == appstate.ModeHelp {
			s.UI.InputMode = appstate.ModeNormal
		} else {
			s.UI.InputMode = appstate.ModeHelp
		}
		return nil, true
	case action.KindCloseHelp:
		s.UI.InputMode = appstate.ModeNormal
		return nil, true
	case action.KindOpenSqlModal:
		s.UI.InputMode = appstate.ModeSqlModal
		return nil, true
	case action.KindCloseSqlModal:
		s.UI.InputMode = appstate.ModeNormal
		s.SQL.CompletionVisible = false
		s.SQL.DebounceScheduled = false
		return nil, true
	case action.KindOpenErDiagram:
		return reduceOpenErDiagram(s), true
	case action.KindEscape:
		s.UI.InputMode = appstate.ModeNormal
		return nil, true

	case action.KindFilterInput:
		s.UI.FilterInput += string(a.Char)
		s.UI.PickerSelected = 0
		return nil, true
	case action.KindFilterBackspace:
		s.UI.FilterInput = dropLastRune(s.UI.FilterInput)
		s.UI.PickerSelected = 0
		return nil, true

	case action.KindEnterCommandLine:
		s.UI.InputMode = appstate.ModeCommandLine
		s.UI.CommandLineInput = ""
		return nil, true
	case action.KindExitCommandLine:
		s.UI.InputMode = appstate.ModeNormal
		return nil, true
	case action.KindCommandLineInput:
		s.UI.CommandLineInput += string(a.Char)
		return nil, true
	case action.KindCommandLineBackspace:
		s.UI.CommandLineInput = dropLastRune(s.UI.CommandLineInput)
		return nil, true
	case action.KindCommandLineSubmit:
		return reduceCommandLineSubmit(s, now), true

	case action.KindOpenConsole:
		if s.Conn.DSN == "" {
			return nil, true
		}
		return []effect.Effect{{Kind: effect.KindOpenConsole, DSN: s.Conn.DSN, ProjectName: s.Pagination.Table}}, true

	case action.KindCopyCellToClipboard:
		return []effect.Effect{{Kind: effect.KindCopyToClipboard, Content: a.Text}}, true
	}
	return nil, false
}

func dropLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

// reduceOpenErDiagram implements the ER-preparation state machine: a
// no-op while already in flight, a re-queue of failed targets, a wait
// for incomplete prefetches, or a render request once everything is
// cached.
func reduceOpenErDiagram(s *appstate.AppState) []effect.Effect {
	if s.ErPrep.Status == appstate.ErRendering || s.ErPrep.Status == appstate.ErWaiting {
		return nil
	}
	if len(s.ErPrep.Failed) > 0 {
		for name := range s.ErPrep.Failed {
			s.ErPrep.Pending[name] = true
			s.PrefetchQueue = append(s.PrefetchQueue, name)
			delete(s.ErPrep.Failed, name)
		}
		clear(s.PrefetchBackoff)
		s.ErPrep.Status = appstate.ErWaiting
		return nil
	}
	if s.ErPrep.Incomplete() {
		s.ErPrep.Status = appstate.ErWaiting
		return nil
	}
	s.ErPrep.Status = appstate.ErRendering
	tables := make(map[string]appstate.TableDetail, len(s.ErPrep.SelectedTargets))
	for _, name := range s.ErPrep.SelectedTargets {
		if detail, ok := s.TableDetailCache[name]; ok {
			tables[name] = detail
		}
	}
	return []effect.Effect{{Kind: effect.KindGenerateErDiagramFromCache, ErDiagram: tables}}
}
