/*
Package sqlctx analyses a token stream from sqllex and extracts the
structural context a completion engine needs: which tables are referenced,
which CTEs are defined, which clause the cursor sits in, and (for
UPDATE/DELETE/INSERT) which table the statement targets.

It operates purely on tokens from sqllex. The token stream may run past
the cursor (the completion engine tokenizes the whole buffer), so the
functions that depend on the cursor take its position as an argument.
*/
package sqlctx

import "github.com/sabiql/sabiql/internal/sqllex"

// TableReference names one FROM/JOIN/UPDATE/INSERT target.
type TableReference struct {
	Schema   string
	HasSchema bool
	Table    string
	Alias    string
	HasAlias bool
	Position int
}

// CteDefinition names one WITH-clause common table expression.
type CteDefinition struct {
	Name     string
	Position int
}

// ClauseKind is the SQL clause the cursor currently sits in, judged from
// the last clause-introducing keyword seen before the cursor.
type ClauseKind int

const (
	ClauseUnknown ClauseKind = iota
	ClauseSelect
	ClauseFrom
	ClauseJoin
	ClauseWhere
	ClauseOn
	ClauseGroupBy
	ClauseOrderBy
	ClauseHaving
	ClauseInsertInto
	ClauseUpdateSet
	ClauseWith
)

// Context is the aggregate structural analysis of a SQL buffer at a cursor
// position.
type Context struct {
	Tables       []TableReference
	Ctes         []CteDefinition
	CurrentClause ClauseKind
	TargetTable  *TableReference
}

var clauseKeywords = map[string]bool{
	"SELECT": true, "FROM": true, "WHERE": true, "JOIN": true, "ON": true,
	"AND": true, "OR": true, "ORDER": true, "GROUP": true, "HAVING": true,
	"LIMIT": true, "OFFSET": true, "UNION": true, "INTERSECT": true,
	"EXCEPT": true, "LEFT": true, "RIGHT": true, "INNER": true, "OUTER": true,
	"CROSS": true, "FULL": true, "NATURAL": true,
}

func isClauseKeyword(kw string) bool {
	return clauseKeywords[kw]
}

func skipWhitespace(tokens []sqllex.Token, i *int) {
	for *i < len(tokens) && tokens[*i].Kind == sqllex.TokenWhitespace {
		*i++
	}
}

func isKeyword(tok sqllex.Token, kw string) bool {
	return tok.Kind == sqllex.TokenKeyword && tok.Keyword == kw
}

// parseTableReference parses `[schema.]table [[AS] alias]` starting at *i,
// advancing *i past what it consumes. Returns false if *i does not start an
// identifier/keyword-as-name.
func parseTableReference(tokens []sqllex.Token, i *int) (TableReference, bool) {
	if *i >= len(tokens) {
		return TableReference{}, false
	}

	ref := TableReference{Position: tokens[*i].Start}

	switch tokens[*i].Kind {
	case sqllex.TokenIdentifier, sqllex.TokenKeyword:
		ref.Table = tokens[*i].Text
	default:
		return TableReference{}, false
	}
	*i++

	skipWhitespace(tokens, i)

	if *i < len(tokens) && tokens[*i].Kind == sqllex.TokenPunctuation && tokens[*i].Text == "." {
		*i++
		skipWhitespace(tokens, i)
		if *i < len(tokens) && (tokens[*i].Kind == sqllex.TokenIdentifier || tokens[*i].Kind == sqllex.TokenKeyword) {
			ref.Schema = ref.Table
			ref.HasSchema = true
			ref.Table = tokens[*i].Text
			*i++
		}
	}

	skipWhitespace(tokens, i)

	if *i < len(tokens) && isKeyword(tokens[*i], "AS") {
		*i++
		skipWhitespace(tokens, i)
	}

	if *i < len(tokens) {
		switch tokens[*i].Kind {
		case sqllex.TokenIdentifier:
			ref.Alias = tokens[*i].Text
			ref.HasAlias = true
			*i++
		case sqllex.TokenKeyword:
			if !isClauseKeyword(tokens[*i].Keyword) {
				ref.Alias = tokens[*i].Text
				ref.HasAlias = true
				*i++
			}
		}
	}

	return ref, true
}

// ExtractTableReferences finds every FROM/JOIN/UPDATE/INSERT-INTO table
// reference in the token stream, excluding tables named only inside a FOR
// UPDATE/FOR SHARE locking clause.
func ExtractTableReferences(tokens []sqllex.Token) []TableReference {
	var refs []TableReference
	i := 0
	prevKeyword := ""
	inForClause := false

	for i < len(tokens) {
		tok := tokens[i]

		if tok.Kind == sqllex.TokenPunctuation && tok.Text == ";" {
			inForClause = false
			prevKeyword = ""
			i++
			continue
		}

		if tok.Kind == sqllex.TokenKeyword {
			kw := tok.Keyword
			switch {
			case kw == "FROM" || kw == "JOIN":
				inForClause = false
				prevKeyword = kw
				i++
				skipWhitespace(tokens, &i)
				if i < len(tokens) && isKeyword(tokens[i], "ONLY") {
					i++
					skipWhitespace(tokens, &i)
				}
				if ref, ok := parseTableReference(tokens, &i); ok {
					refs = append(refs, ref)
					continue
				}
			case kw == "INNER" || kw == "LEFT" || kw == "RIGHT" || kw == "FULL" || kw == "CROSS":
				inForClause = false
				prevKeyword = kw
				i++
				skipWhitespace(tokens, &i)
				if i < len(tokens) && isKeyword(tokens[i], "JOIN") {
					i++
					skipWhitespace(tokens, &i)
					if ref, ok := parseTableReference(tokens, &i); ok {
						refs = append(refs, ref)
						continue
					}
				}
			case kw == "FOR":
				inForClause = true
				prevKeyword = "FOR"
			case (kw == "NO" || kw == "KEY" || kw == "SHARE") && inForClause:
				prevKeyword = kw
			case kw == "UPDATE" && !inForClause:
				prevKeyword = "UPDATE"
				i++
				skipWhitespace(tokens, &i)
				if i < len(tokens) && isKeyword(tokens[i], "ONLY") {
					i++
					skipWhitespace(tokens, &i)
				}
				if ref, ok := parseTableReference(tokens, &i); ok {
					refs = append(refs, ref)
					continue
				}
			case kw == "INTO" && prevKeyword == "INSERT":
				i++
				skipWhitespace(tokens, &i)
				if i < len(tokens) && isKeyword(tokens[i], "ONLY") {
					i++
					skipWhitespace(tokens, &i)
				}
				if ref, ok := parseTableReference(tokens, &i); ok {
					refs = append(refs, ref)
					continue
				}
			default:
				inForClause = false
				prevKeyword = kw
			}
		}
		i++
	}

	return refs
}

// ExtractCteDefinitions finds every name introduced by a leading WITH
// clause, stopping at the first top-level SELECT.
func ExtractCteDefinitions(tokens []sqllex.Token) []CteDefinition {
	var ctes []CteDefinition
	i := 0

	for i < len(tokens) {
		tok := tokens[i]

		if tok.Kind == sqllex.TokenKeyword && tok.Keyword == "WITH" {
			i++
			skipWhitespace(tokens, &i)
			if i < len(tokens) && isKeyword(tokens[i], "RECURSIVE") {
				i++
			}

			for {
				skipWhitespace(tokens, &i)
				if i >= len(tokens) {
					break
				}

				position := tokens[i].Start
				if tokens[i].Kind == sqllex.TokenIdentifier || tokens[i].Kind == sqllex.TokenKeyword {
					name := tokens[i].Text
					isSelect := tokens[i].Kind == sqllex.TokenKeyword && tokens[i].Keyword == "SELECT"
					if !isSelect {
						ctes = append(ctes, CteDefinition{Name: name, Position: position})
					}
					i++

					parenDepth := 0
					for i < len(tokens) {
						t := tokens[i]
						if t.Kind == sqllex.TokenPunctuation && t.Text == "(" {
							parenDepth++
						} else if t.Kind == sqllex.TokenPunctuation && t.Text == ")" {
							if parenDepth > 0 {
								parenDepth--
							}
						} else if t.Kind == sqllex.TokenPunctuation && t.Text == "," && parenDepth == 0 {
							i++
							break
						} else if t.Kind == sqllex.TokenKeyword && t.Keyword == "SELECT" && parenDepth == 0 {
							return ctes
						}
						i++
					}
				} else {
					break
				}
			}
		}
		i++
	}

	return ctes
}

func findSemicolonPositions(tokens []sqllex.Token) []int {
	var out []int
	for i, t := range tokens {
		if t.Kind == sqllex.TokenPunctuation && t.Text == ";" {
			out = append(out, i)
		}
	}
	return out
}

// FindStatementRange returns the [start, end) token index range of the
// statement (semicolon-delimited) that contains cursorPos.
func FindStatementRange(tokens []sqllex.Token, cursorPos int) (int, int) {
	semicolons := findSemicolonPositions(tokens)
	if len(semicolons) == 0 {
		return 0, len(tokens)
	}

	start := 0
	for _, semiIdx := range semicolons {
		if semiIdx >= len(tokens) {
			break
		}
		semiPos := tokens[semiIdx].End
		if cursorPos <= semiPos {
			return start, semiIdx + 1
		}
		start = semiIdx + 1
	}

	return start, len(tokens)
}

// ExtractTargetTable finds the UPDATE/DELETE/INSERT target table for the
// statement containing cursorPos, skipping FOR UPDATE/FOR SHARE locking
// clauses and anything inside parentheses.
func ExtractTargetTable(tokens []sqllex.Token, cursorPos int) *TableReference {
	startIdx, endIdx := FindStatementRange(tokens, cursorPos)

	i := startIdx
	parenDepth := 0
	inForClause := false

	for i < endIdx {
		tok := tokens[i]

		switch {
		case tok.Kind == sqllex.TokenPunctuation && tok.Text == "(":
			parenDepth++
		case tok.Kind == sqllex.TokenPunctuation && tok.Text == ")":
			if parenDepth > 0 {
				parenDepth--
			}
		case tok.Kind == sqllex.TokenPunctuation && tok.Text == ";":
			inForClause = false
		case tok.Kind == sqllex.TokenKeyword && parenDepth == 0:
			kw := tok.Keyword
			switch {
			case kw == "FOR":
				inForClause = true
			case (kw == "NO" || kw == "KEY" || kw == "SHARE") && inForClause:
				// part of the locking clause, no-op
			case kw == "UPDATE" && inForClause:
				inForClause = false
			case kw == "UPDATE":
				i++
				skipWhitespace(tokens, &i)
				if i < len(tokens) && isKeyword(tokens[i], "ONLY") {
					i++
					skipWhitespace(tokens, &i)
				}
				if ref, ok := parseTableReference(tokens, &i); ok {
					return &ref
				}
				return nil
			case kw == "DELETE":
				i++
				skipWhitespace(tokens, &i)
				if i < len(tokens) && isKeyword(tokens[i], "FROM") {
					i++
					skipWhitespace(tokens, &i)
				}
				if i < len(tokens) && isKeyword(tokens[i], "ONLY") {
					i++
					skipWhitespace(tokens, &i)
				}
				if ref, ok := parseTableReference(tokens, &i); ok {
					return &ref
				}
				return nil
			case kw == "INSERT":
				i++
				skipWhitespace(tokens, &i)
				if i < len(tokens) && isKeyword(tokens[i], "INTO") {
					i++
					skipWhitespace(tokens, &i)
				}
				if i < len(tokens) && isKeyword(tokens[i], "ONLY") {
					i++
					skipWhitespace(tokens, &i)
				}
				if ref, ok := parseTableReference(tokens, &i); ok {
					return &ref
				}
				return nil
			default:
				inForClause = false
			}
		}
		i++
	}

	return nil
}

// DetectClauseAtCursor returns the clause the last keyword before cursorPos
// introduced.
func DetectClauseAtCursor(tokens []sqllex.Token, cursorPos int) ClauseKind {
	lastClause := ClauseUnknown

	for _, tok := range tokens {
		if tok.Start > cursorPos {
			break
		}
		if tok.Kind != sqllex.TokenKeyword {
			continue
		}
		switch tok.Keyword {
		case "SELECT":
			lastClause = ClauseSelect
		case "FROM":
			lastClause = ClauseFrom
		case "JOIN", "LEFT", "RIGHT", "INNER", "OUTER", "CROSS", "FULL":
			lastClause = ClauseJoin
		case "WHERE":
			lastClause = ClauseWhere
		case "ON":
			lastClause = ClauseOn
		case "GROUP":
			lastClause = ClauseGroupBy
		case "ORDER":
			lastClause = ClauseOrderBy
		case "HAVING":
			lastClause = ClauseHaving
		case "INSERT", "INTO":
			lastClause = ClauseInsertInto
		case "UPDATE", "SET":
			lastClause = ClauseUpdateSet
		case "WITH":
			lastClause = ClauseWith
		}
	}

	return lastClause
}

// BuildContext runs the full analysis pipeline over tokens for a cursor at
// cursorPos.
func BuildContext(tokens []sqllex.Token, cursorPos int) Context {
	return Context{
		Tables:        ExtractTableReferences(tokens),
		Ctes:          ExtractCteDefinitions(tokens),
		CurrentClause: DetectClauseAtCursor(tokens, cursorPos),
		TargetTable:   ExtractTargetTable(tokens, cursorPos),
	}
}
