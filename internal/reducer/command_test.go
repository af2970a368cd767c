package reducer

import (
	"testing"
	"time"

	"github.com/sabiql/sabiql/internal/action"
	"github.com/sabiql/sabiql/internal/appstate"
)

func TestParseCommandLineStripsLeadingColonAndLowercases(t *testing.T) {
	cmd := parseCommandLine(":QUIT")
	if cmd.verb != "quit" {
		t.Fatalf("expected verb %q, got %q", "quit", cmd.verb)
	}
}

func TestParseCommandLineSplitsQuotedArgs(t *testing.T) {
	cmd := parseCommandLine(`sql "select 1"`)
	if cmd.verb != "sql" || len(cmd.args) != 1 || cmd.args[0] != "select 1" {
		t.Fatalf("expected one quoted arg, got %+v", cmd)
	}
}

func TestCommandLineSubmitQuitSetsShouldQuit(t *testing.T) {
	s := newState()
	s.UI.InputMode = appstate.ModeCommandLine
	s.UI.CommandLineInput = "q"
	Reduce(s, action.Action{Kind: action.KindCommandLineSubmit}, time.Now())
	if !s.ShouldQuit {
		t.Fatal("expected :q to set ShouldQuit")
	}
	if s.UI.InputMode != appstate.ModeNormal {
		t.Fatalf("expected return to ModeNormal, got %v", s.UI.InputMode)
	}
}

func TestCommandLineSubmitSqlOpensModal(t *testing.T) {
	s := newState()
	s.UI.InputMode = appstate.ModeCommandLine
	s.UI.CommandLineInput = "sql"
	Reduce(s, action.Action{Kind: action.KindCommandLineSubmit}, time.Now())
	if s.UI.InputMode != appstate.ModeSqlModal {
		t.Fatalf("expected ModeSqlModal, got %v", s.UI.InputMode)
	}
}

func TestCommandLineSubmitUnknownVerbSetsStatusAndReturnsToNormal(t *testing.T) {
	s := newState()
	s.UI.InputMode = appstate.ModeCommandLine
	s.UI.CommandLineInput = "bogus"
	Reduce(s, action.Action{Kind: action.KindCommandLineSubmit}, time.Now())
	if s.UI.InputMode != appstate.ModeNormal {
		t.Fatalf("expected ModeNormal, got %v", s.UI.InputMode)
	}
	if s.StatusMessage == "" {
		t.Fatal("expected a status message for an unrecognized command")
	}
}

func TestCommandLineSubmitEmptyInputIsQuietNoOp(t *testing.T) {
	s := newState()
	s.UI.InputMode = appstate.ModeCommandLine
	s.UI.CommandLineInput = "   "
	Reduce(s, action.Action{Kind: action.KindCommandLineSubmit}, time.Now())
	if s.StatusMessage != "" {
		t.Fatalf("expected no status message for blank command, got %q", s.StatusMessage)
	}
	if s.UI.InputMode != appstate.ModeNormal {
		t.Fatalf("expected ModeNormal, got %v", s.UI.InputMode)
	}
}

func TestCommandLineSubmitErDispatchesOpenErDiagram(t *testing.T) {
	s := newState()
	s.UI.InputMode = appstate.ModeCommandLine
	s.UI.CommandLineInput = "er"
	s.Metadata = &appstate.Metadata{Tables: []appstate.TableSummary{{Schema: "public", Name: "t"}}}
	Reduce(s, action.Action{Kind: action.KindCommandLineSubmit}, time.Now())
	if s.ErPrep.Status == appstate.ErIdle {
		t.Fatalf("expected :er to advance ER prep state, got %v", s.ErPrep.Status)
	}
}
