package lexer

import (
	"testing"

	"github.com/lowtek7/songlang/internal/token"
)

func typesOf(toks []token.Token) []token.Type {
	types := make([]token.Type, len(toks))
	for i, t := range toks {
		types[i] = t.Type
	}
	return types
}

func assertTypes(t *testing.T, source string, want ...token.Type) []token.Token {
	t.Helper()
	toks, err := Tokenize(source)
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", source, err)
	}
	got := typesOf(toks)
	if len(got) != len(want) {
		t.Fatalf("Tokenize(%q) = %v, want %v", source, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tokenize(%q) = %v, want %v", source, got, want)
		}
	}
	return toks
}

func TestTokenizeSimpleRelation(t *testing.T) {
	assertTypes(t, "Player HAS HP 100",
		token.IDENTIFIER, token.HAS, token.IDENTIFIER, token.NUMBER, token.EOF)
}

func TestTokenizeKeywordsAreCaseInsensitive(t *testing.T) {
	assertTypes(t, "Player has HP", token.IDENTIFIER, token.HAS, token.IDENTIFIER, token.EOF)
	assertTypes(t, "Player HAS HP", token.IDENTIFIER, token.HAS, token.IDENTIFIER, token.EOF)
}

func TestTokenizeStringLiteral(t *testing.T) {
	toks := assertTypes(t, `Player HAS Name "Hero"`,
		token.IDENTIFIER, token.HAS, token.IDENTIFIER, token.STRING, token.EOF)
	if toks[3].StringValue() != "Hero" {
		t.Errorf("expected string value Hero, got %q", toks[3].StringValue())
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	if _, err := Tokenize(`Player HAS Name "Hero`); err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestTokenizeQueryVariable(t *testing.T) {
	toks := assertTypes(t, "?m IS Monster", token.QUERY_VAR, token.IS, token.IDENTIFIER, token.EOF)
	if toks[0].StringValue() != "m" {
		t.Errorf("expected captured query variable name m, got %q", toks[0].StringValue())
	}
}

func TestTokenizeBareQuestionMark(t *testing.T) {
	assertTypes(t, "? IS Monster", token.QUESTION, token.IS, token.IDENTIFIER, token.EOF)
}

func TestTokenizeComparisonOperators(t *testing.T) {
	assertTypes(t, "1 == 2", token.NUMBER, token.EQ, token.NUMBER, token.EOF)
	assertTypes(t, "1 != 2", token.NUMBER, token.NEQ, token.NUMBER, token.EOF)
	assertTypes(t, "1 <= 2", token.NUMBER, token.LTE, token.NUMBER, token.EOF)
	assertTypes(t, "1 >= 2", token.NUMBER, token.GTE, token.NUMBER, token.EOF)
	assertTypes(t, "1 < 2", token.NUMBER, token.LT, token.NUMBER, token.EOF)
	assertTypes(t, "1 > 2", token.NUMBER, token.GT, token.NUMBER, token.EOF)
}

func TestTokenizeLoneEqualsIsAnError(t *testing.T) {
	if _, err := Tokenize("1 = 2"); err == nil {
		t.Fatal("expected an error for a lone '='")
	}
}

func TestTokenizeSkipsLineComments(t *testing.T) {
	assertTypes(t, "Player HAS HP 100 // full heal\n",
		token.IDENTIFIER, token.HAS, token.IDENTIFIER, token.NUMBER, token.NEWLINE, token.EOF)
}

func TestTokenizeNewlinesAreSignificant(t *testing.T) {
	assertTypes(t, "Player PRINT\nGoblin PRINT",
		token.IDENTIFIER, token.PRINT, token.NEWLINE, token.IDENTIFIER, token.PRINT, token.EOF)
}

func TestTokenizeFloatLiteral(t *testing.T) {
	toks := assertTypes(t, "3.5", token.NUMBER, token.EOF)
	if toks[0].NumberValue() != 3.5 {
		t.Errorf("expected 3.5, got %v", toks[0].NumberValue())
	}
}

func TestTokenizeIdentifierAllowsLeadingUnderscore(t *testing.T) {
	assertTypes(t, "_Internal PRINT", token.IDENTIFIER, token.PRINT, token.EOF)
}

func TestTokenizePositions(t *testing.T) {
	toks, err := Tokenize("Player HAS HP")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if toks[0].Line != 1 || toks[0].Column != 1 {
		t.Errorf("expected first token at 1:1, got %d:%d", toks[0].Line, toks[0].Column)
	}
	if toks[1].Column != 8 {
		t.Errorf("expected HAS at column 8, got %d", toks[1].Column)
	}
}
