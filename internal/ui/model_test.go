package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sabiql/sabiql/internal/appstate"
	"github.com/sabiql/sabiql/internal/completion"
	"github.com/sabiql/sabiql/internal/executor"
)

type stubMetadata struct {
	metadata appstate.Metadata
}

func (s *stubMetadata) FetchMetadata(ctx context.Context, dsn string) (appstate.Metadata, error) {
	return s.metadata, nil
}
func (s *stubMetadata) FetchTableDetail(ctx context.Context, dsn, schema, table string) (appstate.TableDetail, error) {
	return appstate.TableDetail{}, nil
}
func (s *stubMetadata) RunQuery(ctx context.Context, dsn, query string, limit, offset int) (appstate.QueryResult, error) {
	return appstate.QueryResult{}, nil
}

type stubConnections struct{}

func (stubConnections) Load() ([]appstate.ConnectionProfile, error) { return nil, nil }
func (stubConnections) Save(profiles []appstate.ConnectionProfile) error { return nil }
func (stubConnections) Delete(id string) error                          { return nil }

func newTestDeps() *executor.Deps {
	return &executor.Deps{
		Metadata:    &stubMetadata{},
		Connections: stubConnections{},
		Completion:  completion.New(),
		CacheDir:    "/tmp",
	}
}

func TestNewWithoutDSNStartsInConnectionSetup(t *testing.T) {
	m := New(newTestDeps(), "", 0, 0)
	if m.state.UI.InputMode != appstate.ModeConnectionSetup {
		t.Fatalf("expected ModeConnectionSetup, got %v", m.state.UI.InputMode)
	}
}

func TestNewWithDSNStartsConnecting(t *testing.T) {
	m := New(newTestDeps(), "postgres://localhost/db", 0, 0)
	if m.state.UI.InputMode == appstate.ModeConnectionSetup {
		t.Fatal("expected DSN-seeded model to skip connection setup")
	}
	if m.state.Conn.Status != appstate.ConnConnecting {
		t.Fatalf("expected ConnConnecting, got %v", m.state.Conn.Status)
	}
}

func TestNewSeedsTerminalSizeFromConstructorArgs(t *testing.T) {
	m := New(newTestDeps(), "", 200, 60)
	if m.state.UI.TerminalWidth != 200 || m.state.UI.TerminalHeight != 60 {
		t.Fatalf("expected seeded terminal size, got %+v", m.state.UI)
	}
}

func TestUpdateWindowSizeMsgResizesState(t *testing.T) {
	m := New(newTestDeps(), "", 0, 0)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	next := updated.(Model)
	if next.state.UI.TerminalWidth != 120 || next.state.UI.TerminalHeight != 40 {
		t.Fatalf("expected terminal size recorded, got %+v", next.state.UI)
	}
}

func TestUpdateQuitKeySetsShouldQuit(t *testing.T) {
	m := New(newTestDeps(), "", 0, 0)
	_, cmd := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyCtrlC}))
	if cmd == nil {
		t.Fatal("expected tea.Quit command")
	}
}

func TestInitEmitsLoadConnectionsOnly(t *testing.T) {
	m := New(newTestDeps(), "", 0, 0)
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected a non-nil init command")
	}
}
