// Package songlang provides the top-level tokenize/parse/execute
// pipeline for the SongLang language, plus a Run convenience wrapper
// that strings the three stages together for hosts that just want to
// run a script and collect its output.
package songlang

import (
	"github.com/lowtek7/songlang/internal/ast"
	"github.com/lowtek7/songlang/internal/graph"
	"github.com/lowtek7/songlang/internal/interpreter"
	"github.com/lowtek7/songlang/internal/lexer"
	"github.com/lowtek7/songlang/internal/parser"
	"github.com/lowtek7/songlang/internal/token"
)

type (
	Token       = token.Token
	Statement   = ast.Statement
	Expression  = ast.Expression
	Graph       = graph.Graph
	Snapshot    = graph.Snapshot
	Interpreter = interpreter.Interpreter
	Option      = interpreter.Option
)

// Tokenize turns source text into a token stream.
func Tokenize(source string) ([]Token, error) {
	return lexer.Tokenize(source)
}

// Parse turns a token stream into an ordered statement sequence.
func Parse(tokens []Token) ([]Statement, error) {
	return parser.Parse(tokens)
}

// NewInterpreter builds an Interpreter ready to execute statements.
func NewInterpreter(opts ...Option) *Interpreter {
	return interpreter.New(opts...)
}

// WithOutput and WithRNG re-export the interpreter package's
// functional options so callers never need to import it directly.
var (
	WithOutput = interpreter.WithOutput
	WithRNG    = interpreter.WithRNG
	WithGraph  = interpreter.WithGraph
)

// Run tokenizes, parses, and executes source against a fresh
// interpreter, collecting every emitted line. It's the convenience
// pipeline hosts reach for when they don't need to keep a session
// alive between chunks.
func Run(source string, onOutput func(line string)) (*Interpreter, []string, error) {
	var lines []string
	capture := func(line string) {
		lines = append(lines, line)
		if onOutput != nil {
			onOutput(line)
		}
	}

	it := interpreter.New(interpreter.WithOutput(capture))

	tokens, err := Tokenize(source)
	if err != nil {
		return it, lines, err
	}
	stmts, err := Parse(tokens)
	if err != nil {
		return it, lines, err
	}
	if err := it.Execute(stmts); err != nil {
		return it, lines, err
	}
	return it, lines, nil
}
