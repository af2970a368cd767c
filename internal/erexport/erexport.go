// Package erexport turns a set of table details into an ER diagram: a DOT
// document, a rendered image via the external `dot` binary, and a launch of
// the user's preferred viewer.
package erexport

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strings"

	"github.com/sabiql/sabiql/internal/appstate"
)

// DotExporter builds a Graphviz DOT document from a set of table details.
// It implements appstate.ErDiagramExporter.
type DotExporter struct{}

var _ appstate.ErDiagramExporter = DotExporter{}

// Export renders tables (keyed by qualified name) into a DOT document.
// Tables and foreign-key edges are emitted in sorted order so the output is
// stable across runs of the same schema.
func (DotExporter) Export(tables map[string]appstate.TableDetail) (string, error) {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	var dot strings.Builder
	dot.WriteString("digraph full_er {\n")
	dot.WriteString("    rankdir=LR;\n")
	dot.WriteString("    node [shape=box, fontname=\"Helvetica\"];\n")
	dot.WriteString("    edge [fontname=\"Helvetica\", fontsize=10];\n")
	dot.WriteString("\n")

	for _, name := range names {
		t := tables[name]
		fmt.Fprintf(&dot, "    \"%s\" [label=\"%s\\n(%s)\" style=filled fillcolor=lightblue];\n",
			escapeDotString(t.QualifiedName()), escapeDotString(t.Name), escapeDotString(t.Schema))
	}
	dot.WriteString("\n")

	type edge struct{ from, to, label string }
	var edges []edge
	for _, name := range names {
		t := tables[name]
		for _, fk := range t.ForeignKeys {
			edges = append(edges, edge{
				from:  t.QualifiedName(),
				to:    fk.ToSchema + "." + fk.ToTable,
				label: fk.Name,
			})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].from != edges[j].from {
			return edges[i].from < edges[j].from
		}
		if edges[i].to != edges[j].to {
			return edges[i].to < edges[j].to
		}
		return edges[i].label < edges[j].label
	})

	for _, e := range edges {
		fmt.Fprintf(&dot, "    \"%s\" -> \"%s\" [label=\"%s\"];\n",
			escapeDotString(e.from), escapeDotString(e.to), escapeDotString(e.label))
	}

	dot.WriteString("}\n")
	return dot.String(), nil
}

func escapeDotString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// ErrGraphvizNotInstalled is returned by SystemGraphvizRunner.Render when
// the `dot` binary cannot be found on PATH.
var ErrGraphvizNotInstalled = fmt.Errorf("graphviz (dot) not found on PATH")

// SystemGraphvizRunner shells out to the `dot` binary to rasterize a DOT
// document into an SVG file. It implements appstate.GraphvizRunner.
type SystemGraphvizRunner struct{}

var _ appstate.GraphvizRunner = SystemGraphvizRunner{}

// Render writes dot to a temporary .dot file next to outputPath and
// invokes `dot -Tsvg -o outputPath <dotfile>`.
func (SystemGraphvizRunner) Render(dot string, outputPath string) error {
	dotPath := strings.TrimSuffix(outputPath, ".svg") + ".dot"
	if err := os.WriteFile(dotPath, []byte(dot), 0o600); err != nil {
		return fmt.Errorf("write dot file: %w", err)
	}

	cmd := exec.Command("dot", "-Tsvg", "-o", outputPath, dotPath)
	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) && execErr.Err == exec.ErrNotFound {
			return ErrGraphvizNotInstalled
		}
		return fmt.Errorf("run dot: %w", err)
	}
	return nil
}

// SystemViewerLauncher opens a rendered diagram using the user's preferred
// viewer: the SABIQL_BROWSER environment variable when set, otherwise the
// platform's default opener. It implements appstate.ViewerLauncher.
type SystemViewerLauncher struct{}

var _ appstate.ViewerLauncher = SystemViewerLauncher{}

// Open launches path in an external viewer.
func (SystemViewerLauncher) Open(path string) error {
	if browser := os.Getenv("SABIQL_BROWSER"); browser != "" {
		if runtime.GOOS == "darwin" {
			return exec.Command("open", "-a", browser, path).Run()
		}
		return exec.Command(browser, path).Run()
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Run()
	case "windows":
		return exec.Command("cmd", "/C", "start", "", path).Run()
	default:
		return exec.Command("xdg-open", path).Run()
	}
}
