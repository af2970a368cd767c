package erexport

import (
	"strings"
	"testing"

	"github.com/sabiql/sabiql/internal/appstate"
)

func TestExportEscapesSpecialCharacters(t *testing.T) {
	tables := map[string]appstate.TableDetail{
		"public.weird": {
			Schema: "public",
			Name:   "weird\"name\\with\nnewline",
		},
	}

	dot, err := DotExporter{}.Export(tables)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(dot, `weird\"name\\with\nnewline`) {
		t.Fatalf("expected escaped label in output, got: %s", dot)
	}
	if strings.Contains(dot, "weird\"name\\with\nnewline") {
		t.Fatalf("raw unescaped text leaked into output")
	}
}

func TestExportOrdersTablesAndEdgesDeterministically(t *testing.T) {
	tables := map[string]appstate.TableDetail{
		"public.zebra": {
			Schema: "public", Name: "zebra",
			ForeignKeys: []appstate.ForeignKey{{Name: "fk_z_a", ToSchema: "public", ToTable: "apple"}},
		},
		"public.apple": {
			Schema: "public", Name: "apple",
		},
	}

	dot, err := DotExporter{}.Export(tables)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	appleIdx := strings.Index(dot, `"public.apple"`)
	zebraIdx := strings.Index(dot, `"public.zebra"`)
	if appleIdx == -1 || zebraIdx == -1 {
		t.Fatalf("expected both node labels in output: %s", dot)
	}
	if appleIdx > zebraIdx {
		t.Fatalf("expected apple node before zebra node (sorted by qualified name)")
	}
	if !strings.Contains(dot, `"public.zebra" -> "public.apple" [label="fk_z_a"];`) {
		t.Fatalf("expected edge from zebra to apple, got: %s", dot)
	}
}

func TestExportEmptyTableSetProducesValidSkeleton(t *testing.T) {
	dot, err := DotExporter{}.Export(map[string]appstate.TableDetail{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(dot, "digraph full_er {") || !strings.HasSuffix(dot, "}\n") {
		t.Fatalf("expected well-formed empty digraph, got: %s", dot)
	}
}

func TestSystemViewerLauncherHonorsBrowserOverride(t *testing.T) {
	t.Setenv("SABIQL_BROWSER", "true")
	if err := (SystemViewerLauncher{}).Open("/tmp/does-not-need-to-exist.svg"); err != nil {
		t.Fatalf("expected override command to succeed, got: %v", err)
	}
}

func TestSystemGraphvizRunnerReportsNotInstalled(t *testing.T) {
	t.Setenv("PATH", "")
	err := (SystemGraphvizRunner{}).Render("digraph {}", t.TempDir()+"/out.svg")
	if err == nil {
		t.Fatalf("expected error when dot is not on PATH")
	}
}
