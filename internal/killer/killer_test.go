package killer

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sabiql/sabiql/internal/action"
)

func TestCheckKillKeysGlobal(t *testing.T) {
	for _, typ := range GlobalKillKeys() {
		msg := tea.KeyMsg(tea.Key{Type: typ})
		if CheckKillKeys(msg) != Global {
			t.Errorf("expected Global for %v", typ)
		}
	}
}

func TestCheckKillKeysChild(t *testing.T) {
	for _, typ := range ChildKillKeys() {
		msg := tea.KeyMsg(tea.Key{Type: typ})
		if CheckKillKeys(msg) != Child {
			t.Errorf("expected Child for %v", typ)
		}
	}
}

func TestCheckKillKeysNoneForNonKeyMsg(t *testing.T) {
	if CheckKillKeys(tea.WindowSizeMsg{}) != None {
		t.Fatal("expected None for a non-key message")
	}
}

func TestToActionMapsGlobalToQuit(t *testing.T) {
	a, ok := ToAction(Global)
	if !ok || a.Kind != action.KindQuit {
		t.Fatalf("expected Quit action, got %+v ok=%v", a, ok)
	}
}

func TestToActionMapsNoneToNoAction(t *testing.T) {
	_, ok := ToAction(None)
	if ok {
		t.Fatal("expected no action for None")
	}
}
