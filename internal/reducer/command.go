package reducer

import (
	"strings"
	"time"

	"github.com/google/shlex"

	"github.com/sabiql/sabiql/internal/action"
	"github.com/sabiql/sabiql/internal/appstate"
	"github.com/sabiql/sabiql/internal/effect"
)

// reduceSQLModal lives in sqlmodal.go; this file owns the `:`-command line
// typed in ModeCommandLine, a distinct surface from the fuzzy-matched
// command palette in picker.go.

// parsedCommand is the result of tokenizing a command-line submission: a
// verb plus whatever arguments followed it.
type parsedCommand struct {
	verb string
	args []string
}

// parseCommandLine splits a typed command-line string into a verb and its
// arguments. It tolerates a leading ':' (some users type it out of habit
// even though entering command-line mode already consumed one) and uses
// shell-style quoting so an argument can contain spaces.
func parseCommandLine(input string) parsedCommand {
	trimmed := strings.TrimPrefix(strings.TrimSpace(input), ":")
	tokens, err := shlex.Split(trimmed)
	if err != nil || len(tokens) == 0 {
		return parsedCommand{}
	}
	return parsedCommand{verb: strings.ToLower(tokens[0]), args: tokens[1:]}
}

// commandToAction maps a parsed command-line verb onto the action it
// stands for. An empty-Kind (zero value) return means the verb was not
// recognized.
func commandToAction(cmd parsedCommand) action.Action {
	switch cmd.verb {
	case "q", "quit", "exit":
		return action.Action{Kind: action.KindQuit}
	case "help", "h", "?":
		return action.Action{Kind: action.KindOpenHelp}
	case "sql", "new":
		return action.Action{Kind: action.KindOpenSqlModal}
	case "er", "erd", "diagram":
		return action.Action{Kind: action.KindOpenErDiagram}
	case "console", "psql":
		return action.Action{Kind: action.KindOpenConsole}
	case "reload", "refresh":
		return action.Action{Kind: action.KindReloadMetadata}
	default:
		return action.Action{}
	}
}

// reduceCommandLineSubmit parses and dispatches a `:`-command, returning
// to normal mode regardless of whether the command was recognized.
func reduceCommandLineSubmit(s *appstate.AppState, now time.Time) []effect.Effect {
	cmd := parseCommandLine(s.UI.CommandLineInput)
	s.UI.InputMode = appstate.ModeNormal
	s.UI.CommandLineInput = ""

	followUp := commandToAction(cmd)
	if followUp.Kind == action.KindNone {
		if cmd.verb != "" {
			s.StatusMessage = "unknown command: " + cmd.verb
			s.MarkDirty()
		}
		return nil
	}
	return Reduce(s, followUp, now)
}
