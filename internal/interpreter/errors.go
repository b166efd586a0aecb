package interpreter

import (
	"fmt"

	"github.com/lowtek7/songlang/internal/ast"
)

// Kind tags the category of a runtime error, mirroring the Go*Error
// structs used throughout the rest of the module.
type Kind string

const (
	NodeNotFound     Kind = "NodeNotFound"
	PropertyNotFound Kind = "PropertyNotFound"
	TypeMismatch     Kind = "TypeMismatch"
	InvalidCondition Kind = "InvalidCondition"
	DivisionByZero   Kind = "DivisionByZero"
	InvalidOperand   Kind = "InvalidOperand"
	CannotPerform    Kind = "CannotPerform"
	SyntaxErrorKind  Kind = "SyntaxError"
	UnexpectedToken  Kind = "UnexpectedToken"
	RuntimeError     Kind = "RuntimeError"
)

// Error is a language-level runtime failure. It carries enough source
// position to let a host print a caret-style diagnostic.
type Error struct {
	Kind       Kind
	Line       int
	Column     int
	Message    string
	SourceLine string
}

func (e Error) Error() string {
	s := fmt.Sprintf("[Error] %s: %s\n  at line %d", e.Kind, e.Message, e.Line)
	if e.SourceLine != "" {
		s += fmt.Sprintf(": %s", e.SourceLine)
	}
	return s
}

func newError(kind Kind, at ast.Pos, format string, args ...any) Error {
	return Error{Kind: kind, Line: at.Line, Column: at.Column, Message: fmt.Sprintf(format, args...)}
}
