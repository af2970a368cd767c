package sqllex

import (
	"strings"
	"testing"
)

func keywordTexts(tokens []Token) []string {
	var out []string
	for _, t := range tokens {
		if t.Kind == TokenKeyword {
			out = append(out, t.Text)
		}
	}
	return out
}

func TestTokenizeSimpleSelectExtractsKeywords(t *testing.T) {
	tokens := Tokenize("SELECT * FROM users", 19, nil)
	kws := keywordTexts(tokens)
	if len(kws) != 2 || kws[0] != "SELECT" || kws[1] != "FROM" {
		t.Fatalf("expected [SELECT FROM], got %v", kws)
	}
}

func TestTokenizeNonKeywordReturnsIdentifier(t *testing.T) {
	tokens := Tokenize("SELECT username FROM users", 26, nil)
	found := map[string]bool{}
	for _, tok := range tokens {
		if tok.Kind == TokenIdentifier {
			found[tok.Text] = true
		}
	}
	if !found["username"] || !found["users"] {
		t.Fatalf("expected username and users as identifiers, got %v", found)
	}
}

func TestTokenizeCastOperator(t *testing.T) {
	tokens := Tokenize("SELECT col::integer", 19, nil)
	for _, tok := range tokens {
		if tok.Kind == TokenOperator && tok.Text == "::" {
			return
		}
	}
	t.Fatal("expected :: operator token")
}

func TestTokenizeArrayAccessPunctuation(t *testing.T) {
	tokens := Tokenize("SELECT arr[0]", 13, nil)
	seen := map[string]bool{}
	for _, tok := range tokens {
		if tok.Kind == TokenPunctuation {
			seen[tok.Text] = true
		}
	}
	if !seen["["] || !seen["]"] {
		t.Fatalf("expected [ and ] punctuation tokens, got %v", seen)
	}
}

func TestTokenizeSingleQuotedString(t *testing.T) {
	tokens := Tokenize("SELECT 'hello'", 14, nil)
	for _, tok := range tokens {
		if tok.Kind == TokenStringLiteral {
			return
		}
	}
	t.Fatal("expected a string literal token")
}

func TestTokenizeKeywordInsideStringIsHidden(t *testing.T) {
	tokens := Tokenize("SELECT 'SELECT'", 15, nil)
	kws := keywordTexts(tokens)
	if len(kws) != 1 || kws[0] != "SELECT" {
		t.Fatalf("expected only the outer SELECT keyword, got %v", kws)
	}
}

func TestTokenizeDollarQuotedStringHidesKeywords(t *testing.T) {
	sql := "SELECT $$SELECT FROM WHERE$$ AS x"
	tokens := Tokenize(sql, len(sql), nil)
	kws := keywordTexts(tokens)
	if len(kws) != 2 {
		t.Fatalf("expected exactly SELECT and AS outside the dollar quote, got %v", kws)
	}
	if kws[0] != "SELECT" || kws[1] != "AS" {
		t.Fatalf("expected [SELECT AS], got %v", kws)
	}
	for _, tok := range tokens {
		if tok.Kind == TokenStringLiteral && tok.Text == "$$SELECT FROM WHERE$$" {
			return
		}
	}
	t.Fatal("expected the dollar-quoted span to be a single string literal")
}

func TestTokenizeDollarQuoteWithTag(t *testing.T) {
	sql := "SELECT $tag$it's fine$tag$"
	tokens := Tokenize(sql, len(sql), nil)
	for _, tok := range tokens {
		if tok.Kind == TokenStringLiteral && tok.Text == "$tag$it's fine$tag$" {
			return
		}
	}
	t.Fatal("expected tagged dollar quote to be captured whole")
}

func TestTokenizeEscapeStringHandlesBackslash(t *testing.T) {
	sql := `SELECT E'a\'b'`
	tokens := Tokenize(sql, len(sql), nil)
	for _, tok := range tokens {
		if tok.Kind == TokenStringLiteral {
			return
		}
	}
	t.Fatal("expected escape string to be tokenized as a string literal")
}

func TestTokenizeLineComment(t *testing.T) {
	sql := "SELECT 1 -- trailing comment\nFROM x"
	tokens := Tokenize(sql, len(sql), nil)
	for _, tok := range tokens {
		if tok.Kind == TokenComment && tok.Text == "-- trailing comment" {
			return
		}
	}
	t.Fatal("expected a line comment token")
}

func TestTokenizeBlockComment(t *testing.T) {
	sql := "SELECT /* note */ 1"
	tokens := Tokenize(sql, len(sql), nil)
	for _, tok := range tokens {
		if tok.Kind == TokenComment && tok.Text == "/* note */" {
			return
		}
	}
	t.Fatal("expected a block comment token")
}

func TestTokenizeIsCursorBounded(t *testing.T) {
	sql := "SELECT * FROM users WHERE id = 1"
	tokens := Tokenize(sql, 9, nil)
	for _, tok := range tokens {
		if tok.Start >= 9 {
			t.Fatalf("expected no tokens starting at/after cursor, got %+v", tok)
		}
	}
}

func TestTokenizeUnterminatedStringAtCursor(t *testing.T) {
	sql := "SELECT 'unterminated"
	tokens := Tokenize(sql, len(sql), nil)
	last := tokens[len(tokens)-1]
	if last.Kind != TokenStringLiteral {
		t.Fatalf("expected trailing unterminated string to become a string literal, got %v", last.Kind)
	}
}

func TestCacheValidityRoundtrip(t *testing.T) {
	cache := &Cache{}
	sql := "SELECT * FROM users"
	first := Tokenize(sql, 19, cache)
	if !cache.Valid(sql, 19) {
		t.Fatal("expected cache to be valid after tokenizing")
	}
	second := Tokenize(sql, 19, cache)
	if len(first) != len(second) {
		t.Fatalf("expected cached tokenize to return identical token count, got %d vs %d", len(first), len(second))
	}
	if cache.Valid(sql, 18) {
		t.Fatal("expected cache to invalidate on cursor move")
	}
	if cache.Valid(sql+" WHERE true", 19) {
		t.Fatal("expected cache to invalidate on content change")
	}
}

func TestTokenizeTextRoundtripsOriginalCase(t *testing.T) {
	sql := "select id, Name from Users u where u.id = 1 -- trailing"
	tokens := Tokenize(sql, len(sql), nil)
	var rebuilt string
	for _, tok := range tokens {
		rebuilt += tok.Text
	}
	if rebuilt != sql {
		t.Fatalf("expected token text to roundtrip to original input, got %q, want %q", rebuilt, sql)
	}
}

func TestTokenizeKeywordCarriesUppercaseSeparately(t *testing.T) {
	tokens := Tokenize("select Id from Users", 21, nil)
	for _, tok := range tokens {
		if tok.Kind != TokenKeyword {
			continue
		}
		if tok.Keyword != strings.ToUpper(tok.Text) {
			t.Fatalf("expected Keyword to be the uppercased form of Text, got Text=%q Keyword=%q", tok.Text, tok.Keyword)
		}
		switch tok.Keyword {
		case "SELECT":
			if tok.Text != "select" {
				t.Fatalf("expected original-case SELECT token text to be %q, got %q", "select", tok.Text)
			}
		case "FROM":
			if tok.Text != "from" {
				t.Fatalf("expected original-case FROM token text to be %q, got %q", "from", tok.Text)
			}
		}
	}
}

func TestIsInStringOrCommentTrue(t *testing.T) {
	sql := "SELECT 'abc"
	if !IsInStringOrComment(sql, len(sql)) {
		t.Fatal("expected cursor inside unterminated string to report true")
	}
}

func TestIsInStringOrCommentFalse(t *testing.T) {
	sql := "SELECT * FROM users"
	if IsInStringOrComment(sql, len(sql)) {
		t.Fatal("expected cursor after a completed identifier to report false")
	}
}
