package parser

import (
	"fmt"

	"github.com/lowtek7/songlang/internal/token"
)

// ParserError is returned for any grammatical mismatch. Token is the
// token the parser was looking at when it gave up.
type ParserError struct {
	Token   token.Token
	Message string
}

func (e ParserError) Error() string {
	return fmt.Sprintf("[%d:%d] %s", e.Token.Line, e.Token.Column, e.Message)
}

func newError(tok token.Token, format string, args ...any) ParserError {
	return ParserError{Token: tok, Message: fmt.Sprintf(format, args...)}
}
