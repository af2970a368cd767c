/*
Package completion ranks SQL auto-completion candidates from the current
buffer, cursor position, and whatever database metadata/table detail the
caller has on hand.

It never performs I/O itself: callers are responsible for fetching
Metadata and TableDetail ahead of time (and for caching table details keyed
by qualified name via CacheTableDetail, typically from prefetch
completions) so that alias.column resolution has something to resolve
against.
*/
package completion

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sabiql/sabiql/internal/appstate"
	"github.com/sabiql/sabiql/internal/sqlctx"
	"github.com/sabiql/sabiql/internal/sqllex"
)

const maxCandidates = 20

// Mode is the completion context detected at the cursor.
type Mode int

const (
	ModeKeyword Mode = iota
	ModeTable
	ModeColumn
	ModeSchemaQualified
	ModeAliasColumn
	ModeCteOrTable
)

// Context is the resolved completion mode plus whichever name it carries
// (schema for SchemaQualified, alias for AliasColumn).
type Context struct {
	Mode Mode
	Name string
}

// keywords is the completion-facing keyword list. It is a subset of
// sqllex.Keywords (ONLY, FULL, NATURAL, LATERAL, the window-frame words
// and the FOR ... locking words are left out) kept in its own slice so
// ordering/ties match the reference ranking exactly.
var keywords = []string{
	"SELECT", "FROM", "WHERE", "JOIN", "LEFT", "RIGHT", "INNER", "OUTER",
	"CROSS", "ON", "AND", "OR", "NOT", "IN", "IS", "NULL", "TRUE", "FALSE",
	"LIKE", "ILIKE", "BETWEEN", "EXISTS", "CASE", "WHEN", "THEN", "ELSE",
	"END", "AS", "DISTINCT", "ORDER", "BY", "ASC", "DESC", "NULLS", "FIRST",
	"LAST", "GROUP", "HAVING", "LIMIT", "OFFSET", "UNION", "INTERSECT",
	"EXCEPT", "ALL", "INSERT", "INTO", "VALUES", "UPDATE", "SET", "DELETE",
	"CREATE", "DROP", "ALTER", "TABLE", "INDEX", "VIEW", "RETURNING", "WITH",
	"RECURSIVE", "COALESCE", "NULLIF", "CAST", "USING",
}

// Engine tracks a table-detail cache populated by prefetch completions, so
// that alias.column resolution doesn't need a network round-trip.
type Engine struct {
	tableDetailCache map[string]appstate.TableDetail
}

// New returns an empty completion engine.
func New() *Engine {
	return &Engine{tableDetailCache: make(map[string]appstate.TableDetail)}
}

// CacheTableDetail records table as the known detail for qualifiedName, so
// later AliasColumn completions can resolve it without a fetch.
func (e *Engine) CacheTableDetail(qualifiedName string, table appstate.TableDetail) {
	e.tableDetailCache[qualifiedName] = table
}

// ClearCache drops every cached table detail, e.g. on connection switch.
func (e *Engine) ClearCache() {
	e.tableDetailCache = make(map[string]appstate.TableDetail)
}

// GetCandidates returns the ranked completion list for content/cursorPos.
// tableDetail is the detail for whatever table is currently "active" in the
// UI (e.g. the one shown in the inspector) and is consulted for plain
// Column mode; AliasColumn mode instead resolves through the engine's
// internal cache.
func (e *Engine) GetCandidates(content string, cursorPos int, metadata *appstate.Metadata, tableDetail *appstate.TableDetail) []appstate.CompletionCandidate {
	if sqllex.IsInStringOrComment(content, cursorPos) {
		return nil
	}

	tokens := sqllex.Tokenize(content, len([]rune(content)), nil)
	sqlContext := sqlctx.BuildContext(tokens, cursorPos)

	currentToken, ctx := e.analyzeWithContext(content, cursorPos, sqlContext, tokens)

	var candidates []appstate.CompletionCandidate
	switch ctx.Mode {
	case ModeKeyword:
		candidates = keywordCandidates(currentToken)
	case ModeTable:
		candidates = tableCandidates(metadata, currentToken)
	case ModeColumn:
		candidates = columnCandidates(tableDetail, currentToken, nil)
	case ModeSchemaQualified:
		candidates = schemaQualifiedCandidates(metadata, ctx.Name, currentToken)
	case ModeAliasColumn:
		candidates = e.aliasColumnCandidates(ctx.Name, sqlContext, metadata, currentToken)
	case ModeCteOrTable:
		candidates = e.cteOrTableCandidates(sqlContext, metadata, currentToken)
	}

	if len(candidates) == 0 && ctx.Mode != ModeKeyword {
		return keywordCandidates(currentToken)
	}

	return candidates
}

// CurrentTokenLen returns the character length of the partial identifier
// immediately left of cursorPos, for popup width/positioning.
func (e *Engine) CurrentTokenLen(content string, cursorPos int) int {
	before := runesUpTo(content, cursorPos)
	return len([]rune(extractCurrentToken(before)))
}

func runesUpTo(content string, cursorPos int) string {
	r := []rune(content)
	if cursorPos > len(r) {
		cursorPos = len(r)
	}
	return string(r[:cursorPos])
}

func (e *Engine) analyzeWithContext(content string, cursorPos int, sqlContext sqlctx.Context, tokens []sqllex.Token) (string, Context) {
	before := runesUpTo(content, cursorPos)
	currentToken := extractCurrentToken(before)

	if alias, ok := detectAliasPrefix(before, currentToken, sqlContext); ok {
		return currentToken, Context{Mode: ModeAliasColumn, Name: alias}
	}

	if schema, ok := detectSchemaPrefix(before, currentToken); ok {
		return currentToken, Context{Mode: ModeSchemaQualified, Name: schema}
	}

	base := detectContextFromTokens(tokens, cursorPos)
	if base.Mode == ModeTable && len(sqlContext.Ctes) > 0 {
		return currentToken, Context{Mode: ModeCteOrTable}
	}

	return currentToken, base
}

func extractCurrentToken(before string) string {
	r := []rune(before)
	end := len(r)
	start := end
	for start > 0 && isWordRune(r[start-1]) {
		start--
	}
	return string(r[start:end])
}

func isWordRune(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}

func detectAliasPrefix(before, currentToken string, sqlContext sqlctx.Context) (string, bool) {
	prefix := prefixBeforeCurrentToken(before, currentToken)
	if !strings.HasSuffix(prefix, ".") {
		return "", false
	}

	potentialAlias := trailingIdentifier(strings.TrimSuffix(prefix, "."))
	if potentialAlias == "" {
		return "", false
	}

	aliasLower := strings.ToLower(potentialAlias)
	for _, tableRef := range sqlContext.Tables {
		if tableRef.HasAlias && strings.ToLower(tableRef.Alias) == aliasLower {
			return potentialAlias, true
		}
		if strings.ToLower(tableRef.Table) == aliasLower {
			return potentialAlias, true
		}
	}

	return "", false
}

func detectSchemaPrefix(before, currentToken string) (string, bool) {
	prefix := prefixBeforeCurrentToken(before, currentToken)
	if !strings.HasSuffix(prefix, ".") {
		return "", false
	}
	schema := trailingIdentifier(strings.TrimSuffix(prefix, "."))
	if schema == "" {
		return "", false
	}
	return schema, true
}

func prefixBeforeCurrentToken(before, currentToken string) string {
	r := []rune(before)
	tokLen := len([]rune(currentToken))
	end := len(r) - tokLen
	if end < 0 {
		end = 0
	}
	return string(r[:end])
}

func trailingIdentifier(s string) string {
	r := []rune(s)
	end := len(r)
	start := end
	for start > 0 && isWordRune(r[start-1]) {
		start--
	}
	return string(r[start:end])
}

func detectContextFromTokens(tokens []sqllex.Token, cursorPos int) Context {
	tableKeywords := map[string]bool{"FROM": true, "JOIN": true, "INTO": true, "UPDATE": true}
	columnKeywords := map[string]bool{"SELECT": true, "WHERE": true, "ON": true, "SET": true, "AND": true, "OR": true, "BY": true}

	lastTablePos := -1
	lastColumnPos := -1

	for _, tok := range tokens {
		if tok.Start >= cursorPos {
			break
		}
		if tok.Kind != sqllex.TokenKeyword {
			continue
		}
		if tableKeywords[tok.Keyword] {
			lastTablePos = tok.Start
		} else if columnKeywords[tok.Keyword] {
			lastColumnPos = tok.Start
		}
	}

	switch {
	case lastTablePos >= 0 && lastColumnPos >= 0 && lastTablePos > lastColumnPos:
		return Context{Mode: ModeTable}
	case lastTablePos > 0 && lastColumnPos < 0:
		return Context{Mode: ModeTable}
	case lastColumnPos >= 0:
		return Context{Mode: ModeColumn}
	default:
		return Context{Mode: ModeKeyword}
	}
}

func sortCandidates(c []appstate.CompletionCandidate) {
	sort.SliceStable(c, func(i, j int) bool {
		if c[i].Score != c[j].Score {
			return c[i].Score > c[j].Score
		}
		return c[i].Text < c[j].Text
	})
}

func capCandidates(c []appstate.CompletionCandidate) []appstate.CompletionCandidate {
	if len(c) > maxCandidates {
		return c[:maxCandidates]
	}
	return c
}

func keywordCandidates(prefix string) []appstate.CompletionCandidate {
	prefixUpper := strings.ToUpper(prefix)
	var out []appstate.CompletionCandidate
	for _, kw := range keywords {
		if prefix != "" && !strings.HasPrefix(kw, prefixUpper) {
			continue
		}
		score := 10
		if strings.HasPrefix(kw, prefixUpper) {
			score = 100
		}
		out = append(out, appstate.CompletionCandidate{Text: kw, Kind: appstate.CompletionKeyword, Score: score})
	}
	sortCandidates(out)
	return capCandidates(out)
}

func tableCandidates(metadata *appstate.Metadata, prefix string) []appstate.CompletionCandidate {
	if metadata == nil {
		return nil
	}
	prefixLower := strings.ToLower(prefix)

	var out []appstate.CompletionCandidate
	for _, t := range metadata.Tables {
		nameLower := strings.ToLower(t.Name)
		qualLower := strings.ToLower(t.QualifiedName())
		isNamePrefix := strings.HasPrefix(nameLower, prefixLower)
		isQualPrefix := strings.HasPrefix(qualLower, prefixLower)
		if prefix != "" && !isNamePrefix && !isQualPrefix {
			continue
		}

		score := 10
		if isNamePrefix {
			score = 100
		} else if isQualPrefix {
			score = 50
		}

		out = append(out, appstate.CompletionCandidate{
			Text:   t.QualifiedName(),
			Kind:   appstate.CompletionTable,
			Detail: rowCountDetail(t.RowCountEstimate),
			Score:  score,
		})
	}

	sortCandidates(out)
	return capCandidates(out)
}

func rowCountDetail(estimate *int64) *string {
	if estimate == nil {
		return nil
	}
	s := formatRowCount(*estimate)
	return &s
}

func formatRowCount(n int64) string {
	return "~" + strconv.FormatInt(n, 10) + " rows"
}

func columnCandidates(tableDetail *appstate.TableDetail, prefix string, recentColumns []string) []appstate.CompletionCandidate {
	if tableDetail == nil {
		return nil
	}
	prefixLower := strings.ToLower(prefix)

	fkColumns := map[string]bool{}
	for _, fk := range tableDetail.ForeignKeys {
		for _, col := range fk.FromColumns {
			fkColumns[col] = true
		}
	}
	recent := map[string]bool{}
	for _, c := range recentColumns {
		recent[c] = true
	}

	var out []appstate.CompletionCandidate
	for _, c := range tableDetail.Columns {
		nameLower := strings.ToLower(c.Name)
		isPrefixMatch := strings.HasPrefix(nameLower, prefixLower)
		isContainsMatch := !isPrefixMatch && strings.Contains(nameLower, prefixLower)
		if prefix != "" && !isPrefixMatch && !isContainsMatch {
			continue
		}

		score := 0
		switch {
		case isPrefixMatch:
			score = 100
		case isContainsMatch:
			score = 10
		}
		if c.IsPrimaryKey {
			score += 50
		}
		if fkColumns[c.Name] {
			score += 40
		}
		if !c.Nullable {
			score += 20
		}
		if recent[c.Name] {
			score += 30
		}

		detail := c.TypeDisplay()
		out = append(out, appstate.CompletionCandidate{Text: c.Name, Kind: appstate.CompletionColumn, Detail: &detail, Score: score})
	}

	sortCandidates(out)
	return capCandidates(out)
}

func schemaQualifiedCandidates(metadata *appstate.Metadata, schema, prefix string) []appstate.CompletionCandidate {
	if metadata == nil {
		return nil
	}
	schemaLower := strings.ToLower(schema)
	prefixLower := strings.ToLower(prefix)

	var out []appstate.CompletionCandidate
	for _, t := range metadata.Tables {
		if strings.ToLower(t.Schema) != schemaLower {
			continue
		}
		nameLower := strings.ToLower(t.Name)
		isPrefixMatch := strings.HasPrefix(nameLower, prefixLower)
		if prefix != "" && !isPrefixMatch {
			continue
		}
		score := 10
		if isPrefixMatch {
			score = 100
		}
		out = append(out, appstate.CompletionCandidate{
			Text:   t.Name,
			Kind:   appstate.CompletionTable,
			Detail: rowCountDetail(t.RowCountEstimate),
			Score:  score,
		})
	}

	sortCandidates(out)
	return capCandidates(out)
}

func (e *Engine) aliasColumnCandidates(alias string, sqlContext sqlctx.Context, metadata *appstate.Metadata, prefix string) []appstate.CompletionCandidate {
	aliasLower := strings.ToLower(alias)

	var tableRef *sqlctx.TableReference
	for i := range sqlContext.Tables {
		t := &sqlContext.Tables[i]
		if (t.HasAlias && strings.ToLower(t.Alias) == aliasLower) || strings.ToLower(t.Table) == aliasLower {
			tableRef = t
			break
		}
	}
	if tableRef == nil {
		return nil
	}

	qualifiedName := e.qualifiedNameFromRef(*tableRef, metadata)
	if table, ok := e.tableDetailCache[qualifiedName]; ok {
		return columnCandidates(&table, prefix, nil)
	}

	return nil
}

func (e *Engine) cteOrTableCandidates(sqlContext sqlctx.Context, metadata *appstate.Metadata, prefix string) []appstate.CompletionCandidate {
	prefixLower := strings.ToLower(prefix)
	var out []appstate.CompletionCandidate

	for _, cte := range sqlContext.Ctes {
		if prefix == "" || strings.HasPrefix(strings.ToLower(cte.Name), prefixLower) {
			detail := "CTE"
			out = append(out, appstate.CompletionCandidate{Text: cte.Name, Kind: appstate.CompletionTable, Detail: &detail, Score: 110})
		}
	}

	if metadata != nil {
		for _, t := range metadata.Tables {
			nameLower := strings.ToLower(t.Name)
			qualLower := strings.ToLower(t.QualifiedName())
			isNamePrefix := strings.HasPrefix(nameLower, prefixLower)
			if prefix != "" && !isNamePrefix && !strings.HasPrefix(qualLower, prefixLower) {
				continue
			}
			score := 50
			if isNamePrefix {
				score = 100
			}
			out = append(out, appstate.CompletionCandidate{
				Text:   t.QualifiedName(),
				Kind:   appstate.CompletionTable,
				Detail: rowCountDetail(t.RowCountEstimate),
				Score:  score,
			})
		}
	}

	sortCandidates(out)
	return capCandidates(out)
}

func (e *Engine) qualifiedNameFromRef(tableRef sqlctx.TableReference, metadata *appstate.Metadata) string {
	if tableRef.HasSchema {
		return tableRef.Schema + "." + tableRef.Table
	}
	if metadata != nil {
		for _, t := range metadata.Tables {
			if strings.ToLower(t.Name) == strings.ToLower(tableRef.Table) {
				return t.QualifiedName()
			}
		}
	}
	return tableRef.Table
}
