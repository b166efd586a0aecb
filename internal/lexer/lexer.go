// Package lexer turns SongLang source text into a token stream.
package lexer

import (
	"strconv"
	"strings"

	"github.com/lowtek7/songlang/internal/token"
)

type lexer struct {
	src    []rune
	pos    int
	line   int
	column int
}

// Tokenize scans source left to right and returns its token sequence,
// always terminated by a single EOF token. It fails fast on the first
// lexical error.
func Tokenize(source string) ([]token.Token, error) {
	l := &lexer{src: []rune(source), line: 1, column: 1}

	var tokens []token.Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) peekAt(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func (l *lexer) next() (token.Token, error) {
	l.skipWhitespaceAndComments()

	startLine, startCol := l.line, l.column

	if l.pos >= len(l.src) {
		return token.Token{Type: token.EOF, Line: startLine, Column: startCol}, nil
	}

	r := l.peek()

	switch {
	case r == '\n':
		l.advance()
		return token.Token{Type: token.NEWLINE, Lexeme: "\n", Line: startLine, Column: startCol}, nil

	case isDigit(r):
		return l.scanNumber(startLine, startCol), nil

	case r == '"':
		return l.scanString(startLine, startCol)

	case isIdentStart(r):
		return l.scanIdentifier(startLine, startCol), nil

	case r == '?':
		return l.scanQuestion(startLine, startCol), nil

	default:
		return l.scanOperator(startLine, startCol)
	}
}

func (l *lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.src) {
		r := l.peek()
		switch {
		case r == ' ' || r == '\t' || r == '\r':
			l.advance()
		case r == '/' && l.peekAt(1) == '/':
			for l.pos < len(l.src) && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *lexer) scanNumber(line, col int) token.Token {
	var b strings.Builder
	for l.pos < len(l.src) && isDigit(l.peek()) {
		b.WriteRune(l.advance())
	}
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		b.WriteRune(l.advance())
		for l.pos < len(l.src) && isDigit(l.peek()) {
			b.WriteRune(l.advance())
		}
	}
	lexeme := b.String()
	f, _ := strconv.ParseFloat(lexeme, 64)
	return token.Token{Type: token.NUMBER, Lexeme: lexeme, Value: f, Line: line, Column: col}
}

func (l *lexer) scanString(line, col int) (token.Token, error) {
	l.advance() // opening quote
	var b strings.Builder
	for {
		if l.pos >= len(l.src) {
			return token.Token{}, newError(line, col, "unterminated string literal")
		}
		r := l.peek()
		if r == '"' {
			l.advance()
			s := b.String()
			return token.Token{Type: token.STRING, Lexeme: s, Value: s, Line: line, Column: col}, nil
		}
		b.WriteRune(l.advance())
	}
}

func (l *lexer) scanIdentifier(line, col int) token.Token {
	var b strings.Builder
	for l.pos < len(l.src) && isIdentPart(l.peek()) {
		b.WriteRune(l.advance())
	}
	lexeme := b.String()
	if kw, ok := token.Keywords[strings.ToLower(lexeme)]; ok {
		return token.Token{Type: kw, Lexeme: lexeme, Line: line, Column: col}
	}
	return token.Token{Type: token.IDENTIFIER, Lexeme: lexeme, Line: line, Column: col}
}

func (l *lexer) scanQuestion(line, col int) token.Token {
	l.advance() // '?'
	if !isIdentStart(l.peek()) {
		return token.Token{Type: token.QUESTION, Lexeme: "?", Line: line, Column: col}
	}
	var b strings.Builder
	for l.pos < len(l.src) && isIdentPart(l.peek()) {
		b.WriteRune(l.advance())
	}
	name := b.String()
	return token.Token{Type: token.QUERY_VAR, Lexeme: "?" + name, Value: name, Line: line, Column: col}
}

func (l *lexer) scanOperator(line, col int) (token.Token, error) {
	r := l.advance()
	two := func(t token.Type, lex string) token.Token {
		l.advance()
		return token.Token{Type: t, Lexeme: lex, Line: line, Column: col}
	}
	one := func(t token.Type, lex string) token.Token {
		return token.Token{Type: t, Lexeme: lex, Line: line, Column: col}
	}

	switch r {
	case '{':
		return one(token.LBRACE, "{"), nil
	case '}':
		return one(token.RBRACE, "}"), nil
	case '(':
		return one(token.LPAREN, "("), nil
	case ')':
		return one(token.RPAREN, ")"), nil
	case ',':
		return one(token.COMMA, ","), nil
	case '.':
		return one(token.DOT, "."), nil
	case '+':
		return one(token.PLUS, "+"), nil
	case '-':
		return one(token.MINUS, "-"), nil
	case '*':
		return one(token.STAR, "*"), nil
	case '/':
		return one(token.SLASH, "/"), nil
	case '%':
		return one(token.PERCENT, "%"), nil
	case '=':
		if l.peek() == '=' {
			return two(token.EQ, "=="), nil
		}
		return token.Token{}, newError(line, col, "unexpected character '='")
	case '!':
		if l.peek() == '=' {
			return two(token.NEQ, "!="), nil
		}
		return token.Token{}, newError(line, col, "unexpected character '!'")
	case '<':
		if l.peek() == '=' {
			return two(token.LTE, "<="), nil
		}
		return one(token.LT, "<"), nil
	case '>':
		if l.peek() == '=' {
			return two(token.GTE, ">="), nil
		}
		return one(token.GT, ">"), nil
	default:
		return token.Token{}, newError(line, col, "unexpected character %q", r)
	}
}
