package ui

import (
	"strings"
	"testing"

	"github.com/sabiql/sabiql/internal/appstate"
)

func TestRenderConnectionSetupShowsPlaceholderWhenEmpty(t *testing.T) {
	s := appstate.NewAppState()
	s.UI.InputMode = appstate.ModeConnectionSetup
	out := render(s)
	if !strings.Contains(out, "postgres://") {
		t.Fatalf("expected DSN placeholder in connection setup view, got %q", out)
	}
}

func TestRenderConnectionSetupShowsTypedDSN(t *testing.T) {
	s := appstate.NewAppState()
	s.UI.InputMode = appstate.ModeConnectionSetup
	s.SQL.Buffer = "postgres://me@localhost/mydb"
	out := render(s)
	if !strings.Contains(out, "postgres://me@localhost/mydb") {
		t.Fatalf("expected typed DSN to appear, got %q", out)
	}
}

func TestRenderNormalModeWithNoMetadataShowsLoading(t *testing.T) {
	s := appstate.NewAppState()
	out := render(s)
	if !strings.Contains(out, "loading") {
		t.Fatalf("expected loading placeholder with no metadata, got %q", out)
	}
}

func TestRenderExplorerHighlightsSelectedTable(t *testing.T) {
	s := appstate.NewAppState()
	s.Metadata = &appstate.Metadata{Tables: []appstate.TableSummary{
		{Schema: "public", Name: "orders"},
		{Schema: "public", Name: "users"},
	}}
	s.Pagination.Schema = "public"
	s.Pagination.Table = "users"
	out := renderExplorer(s)
	if !strings.Contains(out, "> public.users") {
		t.Fatalf("expected selected table marker, got %q", out)
	}
}

func TestRenderTableTruncatesWideCells(t *testing.T) {
	out := renderTable([]string{"id", "description"}, [][]string{
		{"1", strings.Repeat("x", 200)},
	}, 40)
	if strings.Contains(out, strings.Repeat("x", 200)) {
		t.Fatalf("expected wide cell to be truncated, got %q", out)
	}
}

func TestRenderErDiagramStatusReflectsWaiting(t *testing.T) {
	s := appstate.NewAppState()
	s.UI.InputMode = appstate.ModeErDiagram
	s.ErPrep.Status = appstate.ErWaiting
	s.ErPrep.Pending = map[string]bool{"public.orders": true}
	out := render(s)
	if !strings.Contains(out, "waiting on 1") {
		t.Fatalf("expected waiting status, got %q", out)
	}
}
