package completion

import (
	"github.com/sabiql/sabiql/internal/sqlctx"
	"github.com/sabiql/sabiql/internal/sqllex"
)

func tokenizeFull(sql string) []sqllex.Token {
	return sqllex.Tokenize(sql, len([]rune(sql)), nil)
}

func emptyCtx() sqlctx.Context {
	return sqlctx.Context{}
}

func cteOf(name string) sqlctx.CteDefinition {
	return sqlctx.CteDefinition{Name: name}
}

func buildContextFor(tokens []sqllex.Token, cursorPos int) sqlctx.Context {
	return sqlctx.BuildContext(tokens, cursorPos)
}
