package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sabiql/sabiql/internal/action"
	"github.com/sabiql/sabiql/internal/appstate"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune{r}})
}

func namedKey(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: t})
}

func TestMapNormalKeyQuit(t *testing.T) {
	a := mapNormalKey(runeKey('q'))
	if a.Kind != action.KindQuit {
		t.Fatalf("expected Quit, got %+v", a)
	}
}

func TestMapNormalKeyOpensTablePicker(t *testing.T) {
	a := mapNormalKey(tea.KeyMsg(tea.Key{Type: tea.KeyCtrlP}))
	if a.Kind != action.KindOpenTablePicker {
		t.Fatalf("expected OpenTablePicker, got %+v", a)
	}
}

func TestMapKeyGlobalKillTakesPrecedenceOverMode(t *testing.T) {
	s := appstate.NewAppState()
	s.UI.InputMode = appstate.ModeSqlModal
	a := mapKey(s, namedKey(tea.KeyCtrlC))
	if a.Kind != action.KindQuit {
		t.Fatalf("expected kill key to map to Quit regardless of mode, got %+v", a)
	}
}

func TestMapConnectionSetupKeyEnterSubmits(t *testing.T) {
	a := mapConnectionSetupKey(namedKey(tea.KeyEnter))
	if a.Kind != action.KindSubmitConnectionSetup {
		t.Fatalf("expected SubmitConnectionSetup, got %+v", a)
	}
}

func TestMapConnectionSetupKeyTypesIntoBuffer(t *testing.T) {
	a := mapConnectionSetupKey(runeKey('p'))
	if a.Kind != action.KindSqlModalInput || a.Char != 'p' {
		t.Fatalf("expected buffer input 'p', got %+v", a)
	}
}

func TestMapConnectionSetupKeyEscCancels(t *testing.T) {
	a := mapConnectionSetupKey(namedKey(tea.KeyEscape))
	if a.Kind != action.KindEscape {
		t.Fatalf("expected Escape, got %+v", a)
	}
}

func TestMapPickerKeyEnterConfirms(t *testing.T) {
	a := mapPickerKey(namedKey(tea.KeyEnter))
	if a.Kind != action.KindConfirmSelection {
		t.Fatalf("expected ConfirmSelection, got %+v", a)
	}
}

func TestMapKeyDispatchesByMode(t *testing.T) {
	s := appstate.NewAppState()
	s.UI.InputMode = appstate.ModeTablePicker
	a := mapKey(s, namedKey(tea.KeyEnter))
	if a.Kind != action.KindConfirmSelection {
		t.Fatalf("expected table picker mode to route enter to ConfirmSelection, got %+v", a)
	}

	s.UI.InputMode = appstate.ModeCommandLine
	a = mapKey(s, namedKey(tea.KeyEnter))
	if a.Kind != action.KindCommandLineSubmit {
		t.Fatalf("expected command line mode to route enter to CommandLineSubmit, got %+v", a)
	}
}
