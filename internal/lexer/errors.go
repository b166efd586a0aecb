package lexer

import "fmt"

// TokenizerError is returned for any lexical failure: an unterminated
// string, a stray '=' or '!', or an unrecognized character.
type TokenizerError struct {
	Line    int
	Column  int
	Message string
}

func (e TokenizerError) Error() string {
	return fmt.Sprintf("[%d:%d] %s", e.Line, e.Column, e.Message)
}

func newError(line, column int, format string, args ...any) TokenizerError {
	return TokenizerError{Line: line, Column: column, Message: fmt.Sprintf(format, args...)}
}
