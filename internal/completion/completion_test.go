package completion

import (
	"testing"

	"github.com/sabiql/sabiql/internal/appstate"
)

func TestAnalyzeEmptyInputIsKeywordContext(t *testing.T) {
	e := New()
	candidates := e.GetCandidates("", 0, nil, nil)
	if len(candidates) == 0 {
		t.Fatal("expected keyword candidates for empty input")
	}
	if candidates[0].Kind != appstate.CompletionKeyword {
		t.Fatalf("expected keyword candidates, got %+v", candidates[0])
	}
}

func TestAnalyzeAfterSelectIsColumnContext(t *testing.T) {
	e := New()
	sql := "SELECT "
	tokens := tokenizeFull(sql)
	_, ctx := e.analyzeWithContext(sql, len(sql), emptyCtx(), tokens)
	if ctx.Mode != ModeColumn {
		t.Fatalf("expected ModeColumn, got %v", ctx.Mode)
	}
}

func TestAnalyzeAfterFromIsTableContext(t *testing.T) {
	e := New()
	sql := "SELECT * FROM "
	tokens := tokenizeFull(sql)
	_, ctx := e.analyzeWithContext(sql, len(sql), emptyCtx(), tokens)
	if ctx.Mode != ModeTable {
		t.Fatalf("expected ModeTable, got %v", ctx.Mode)
	}
}

func TestAnalyzePartialTokenExtracted(t *testing.T) {
	e := New()
	sql := "SELECT * FROM us"
	tokens := tokenizeFull(sql)
	token, ctx := e.analyzeWithContext(sql, len(sql), emptyCtx(), tokens)
	if token != "us" {
		t.Fatalf("expected partial token 'us', got %q", token)
	}
	if ctx.Mode != ModeTable {
		t.Fatalf("expected ModeTable, got %v", ctx.Mode)
	}
}

func TestAnalyzeSchemaDotReturnsSchemaQualified(t *testing.T) {
	e := New()
	sql := "SELECT * FROM public."
	tokens := tokenizeFull(sql)
	_, ctx := e.analyzeWithContext(sql, len(sql), emptyCtx(), tokens)
	if ctx.Mode != ModeSchemaQualified || ctx.Name != "public" {
		t.Fatalf("expected SchemaQualified(public), got %+v", ctx)
	}
}

func TestUpdateClauseColumnCompletionScenario(t *testing.T) {
	// Spec scenario 1: UPDATE users SET na, metadata has public.users with
	// id(PK,NOT NULL), name(nullable), email(NOT NULL).
	e := New()
	detail := &appstate.TableDetail{
		Schema: "public",
		Name:   "users",
		Columns: []appstate.Column{
			{Name: "id", Type: "int", Nullable: false, IsPrimaryKey: true},
			{Name: "name", Type: "text", Nullable: true},
			{Name: "email", Type: "text", Nullable: false},
		},
	}

	sql := "UPDATE users SET na"
	candidates := e.GetCandidates(sql, len(sql), nil, detail)

	if len(candidates) != 1 {
		t.Fatalf("expected exactly 1 candidate, got %+v", candidates)
	}
	if candidates[0].Text != "name" || candidates[0].Score != 100 {
		t.Fatalf("expected name scored 100 (prefix match, no PK/FK/NOT NULL bonus), got %+v", candidates[0])
	}
}

func TestGetCandidatesInsideStringReturnsEmpty(t *testing.T) {
	e := New()
	sql := "SELECT 'abc"
	candidates := e.GetCandidates(sql, len(sql), nil, nil)
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates inside an unterminated string, got %+v", candidates)
	}
}

func TestTableCandidatesPrefixTiesBreakAlphabetically(t *testing.T) {
	metadata := &appstate.Metadata{
		Tables: []appstate.TableSummary{
			{Schema: "public", Name: "users"},
			{Schema: "public", Name: "user_roles"},
		},
	}
	candidates := tableCandidates(metadata, "user")
	if len(candidates) != 2 {
		t.Fatalf("expected 2 matches, got %+v", candidates)
	}
	if candidates[0].Text != "public.user_roles" {
		t.Fatalf("expected alphabetical tie-break to rank public.user_roles first, got %+v", candidates[0])
	}
	for _, c := range candidates {
		if c.Score != 100 {
			t.Fatalf("expected both prefix matches scored 100, got %+v", c)
		}
	}
}

func TestCteOrTableCandidatesCtesRankAboveTables(t *testing.T) {
	e := New()
	sqlContext := emptyCtx()
	sqlContext.Ctes = append(sqlContext.Ctes, cteOf("recent"))
	metadata := &appstate.Metadata{Tables: []appstate.TableSummary{{Schema: "public", Name: "records"}}}

	candidates := e.cteOrTableCandidates(sqlContext, metadata, "re")
	if len(candidates) != 2 {
		t.Fatalf("expected cte + table candidates, got %+v", candidates)
	}
	if candidates[0].Text != "recent" || candidates[0].Score != 110 {
		t.Fatalf("expected recent CTE ranked first at score 110, got %+v", candidates[0])
	}
}

func TestAliasColumnCandidatesResolveFromCache(t *testing.T) {
	e := New()
	e.CacheTableDetail("orders", appstate.TableDetail{
		Schema: "public", Name: "orders",
		Columns: []appstate.Column{{Name: "id", IsPrimaryKey: true}, {Name: "total"}},
	})

	sql := "SELECT o. FROM orders o"
	tokens := tokenizeFull(sql)
	sqlContext := buildContextFor(tokens, len("SELECT o."))

	candidates := e.aliasColumnCandidates("o", sqlContext, nil, "")
	if len(candidates) != 2 {
		t.Fatalf("expected 2 columns from cached orders detail, got %+v", candidates)
	}
}

func TestAliasColumnCandidatesEmptyWhenUncached(t *testing.T) {
	e := New()
	sql := "SELECT o. FROM orders o"
	tokens := tokenizeFull(sql)
	sqlContext := buildContextFor(tokens, len("SELECT o."))

	candidates := e.aliasColumnCandidates("o", sqlContext, nil, "")
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates when the table is not yet cached, got %+v", candidates)
	}
}

func TestKeywordFallbackWhenContextSpecificEmpty(t *testing.T) {
	e := New()
	// Table mode with no metadata at all yields empty table candidates,
	// which should fall back to keyword candidates (the empty prefix
	// matches every keyword).
	sql := "SELECT * FROM "
	candidates := e.GetCandidates(sql, len(sql), nil, nil)
	if len(candidates) == 0 {
		t.Fatal("expected a non-empty keyword fallback when table candidates are empty")
	}
	if candidates[0].Kind != appstate.CompletionKeyword {
		t.Fatalf("expected fallback candidates to be keywords, got %+v", candidates[0])
	}
}
