package reducer

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/sabiql/sabiql/internal/action"
	"github.com/sabiql/sabiql/internal/appstate"
)

// tableSource adapts a table slice to fuzzy.Source.
type tableSource []appstate.TableSummary

func (t tableSource) Len() int            { return len(t) }
func (t tableSource) String(i int) string { return t[i].QualifiedName() }

// FilteredTables returns the tables in s.Metadata matching s.UI.FilterInput,
// best fuzzy match first. An empty filter lists every table alphabetically,
// matching the table picker's cold-open ordering.
func FilteredTables(s *appstate.AppState) []appstate.TableSummary {
	if s.Metadata == nil {
		return nil
	}
	if s.UI.FilterInput == "" {
		sorted := make([]appstate.TableSummary, len(s.Metadata.Tables))
		copy(sorted, s.Metadata.Tables)
		slices.SortFunc(sorted, func(a, b appstate.TableSummary) int {
			return strings.Compare(a.QualifiedName(), b.QualifiedName())
		})
		return sorted
	}
	matches := fuzzy.FindFrom(s.UI.FilterInput, tableSource(s.Metadata.Tables))
	out := make([]appstate.TableSummary, len(matches))
	for i, m := range matches {
		out[i] = s.Metadata.Tables[m.Index]
	}
	return out
}

// PaletteCommand is one command-palette entry.
type PaletteCommand struct {
	Label  string
	Action action.Action
}

// paletteCommands is the fixed set of actions reachable from the command
// palette, independent of which table or connection is active.
var paletteCommands = []PaletteCommand{
	{"Reload metadata", action.Action{Kind: action.KindReloadMetadata}},
	{"Open SQL modal", action.Action{Kind: action.KindOpenSqlModal}},
	{"Open console", action.Action{Kind: action.KindOpenConsole}},
	{"Open ER diagram", action.Action{Kind: action.KindOpenErDiagram}},
	{"Switch connection", action.Action{Kind: action.KindOpenConnectionSetup}},
	{"Quit", action.Quit()},
}

type commandSource []PaletteCommand

func (c commandSource) Len() int            { return len(c) }
func (c commandSource) String(i int) string { return c[i].Label }

// FilteredCommands returns the palette entries matching s.UI.FilterInput,
// best fuzzy match first.
func FilteredCommands(s *appstate.AppState) []PaletteCommand {
	if s.UI.FilterInput == "" {
		return paletteCommands
	}
	matches := fuzzy.FindFrom(s.UI.FilterInput, commandSource(paletteCommands))
	out := make([]PaletteCommand, len(matches))
	for i, m := range matches {
		out[i] = paletteCommands[m.Index]
	}
	return out
}
