package reducer

import (
	"testing"

	"github.com/sabiql/sabiql/internal/appstate"
)

func tablesState(names ...string) *appstate.AppState {
	s := appstate.NewAppState()
	tables := make([]appstate.TableSummary, len(names))
	for i, n := range names {
		tables[i] = appstate.TableSummary{Schema: "public", Name: n}
	}
	s.Metadata = &appstate.Metadata{Tables: tables}
	return s
}

func TestFilteredTablesEmptyFilterListsAlphabetically(t *testing.T) {
	s := tablesState("zebra", "apple", "mango")
	got := FilteredTables(s)
	if len(got) != 3 || got[0].Name != "apple" || got[1].Name != "mango" || got[2].Name != "zebra" {
		t.Fatalf("expected alphabetical order, got %+v", got)
	}
}

func TestFilteredTablesRanksFuzzyMatches(t *testing.T) {
	s := tablesState("orders", "order_items", "customers")
	s.UI.FilterInput = "ordit"
	got := FilteredTables(s)
	if len(got) == 0 || got[0].Name != "order_items" {
		t.Fatalf("expected order_items to rank first, got %+v", got)
	}
}

func TestFilteredTablesNoMetadataReturnsNil(t *testing.T) {
	s := appstate.NewAppState()
	if got := FilteredTables(s); got != nil {
		t.Fatalf("expected nil with no metadata loaded, got %+v", got)
	}
}

func TestFilteredCommandsEmptyFilterListsAll(t *testing.T) {
	s := appstate.NewAppState()
	if got := FilteredCommands(s); len(got) != len(paletteCommands) {
		t.Fatalf("expected all %d commands, got %d", len(paletteCommands), len(got))
	}
}

func TestFilteredCommandsRanksFuzzyMatches(t *testing.T) {
	s := appstate.NewAppState()
	s.UI.FilterInput = "console"
	got := FilteredCommands(s)
	if len(got) == 0 || got[0].Label != "Open console" {
		t.Fatalf("expected 'Open console' to rank first, got %+v", got)
	}
}
