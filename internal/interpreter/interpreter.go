// Package interpreter walks a parsed statement sequence against a
// graph, mutating it and emitting output lines through an injected
// callback.
package interpreter

import (
	"strings"

	"github.com/lowtek7/songlang/internal/ast"
	"github.com/lowtek7/songlang/internal/graph"
	"github.com/lowtek7/songlang/internal/rng"
)

// Interpreter holds the graph it mutates, the callback it emits
// output through, a context mapping used for role and loop-variable
// binding, and an optional WHEN subject used to resolve bare
// identifiers as properties of the node currently under test.
type Interpreter struct {
	Graph       *graph.Graph
	output      func(line string)
	context     map[string]graph.Value
	whenSubject *graph.Node
	rng         rng.Source
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithOutput sets the callback invoked once per emitted output line.
func WithOutput(f func(line string)) Option {
	return func(it *Interpreter) { it.output = f }
}

// WithRNG overrides the default PRNG, letting tests inject a
// deterministic source.
func WithRNG(r rng.Source) Option {
	return func(it *Interpreter) { it.rng = r }
}

// WithGraph attaches an existing graph instead of starting from an
// empty one, used by hosts resuming from a persisted snapshot.
func WithGraph(g *graph.Graph) Option {
	return func(it *Interpreter) { it.Graph = g }
}

// New builds an Interpreter ready to execute statements.
func New(opts ...Option) *Interpreter {
	it := &Interpreter{
		Graph:   graph.New(),
		output:  func(string) {},
		context: make(map[string]graph.Value),
		rng:     rng.New(1, 2),
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

func (it *Interpreter) emit(line string) {
	it.output(line)
}

// resolveSubject resolves a statement's bare-identifier subject: a
// context binding (role parameter or EACH loop variable) takes
// priority over the graph, so relation bodies and loop bodies act on
// the bound node rather than a literally-named one. Falls back to
// getOrCreateNode, since an unbound subject names an entity the
// statement may be defining for the first time.
func (it *Interpreter) resolveSubject(name string) *graph.Node {
	if v, ok := it.context[name]; ok && v.Kind == graph.NodeRefVal {
		return v.NodeRef
	}
	return it.Graph.GetOrCreateNode(name)
}

// lookupSubject is resolveSubject's read-only counterpart, used where
// the statement requires the node to already exist (EACH's collection,
// legacy WHEN conditions, WhenExpression subjects).
func (it *Interpreter) lookupSubject(name string) (*graph.Node, bool) {
	if v, ok := it.context[name]; ok && v.Kind == graph.NodeRefVal {
		return v.NodeRef, true
	}
	return it.Graph.GetNode(name)
}

// Execute runs a statement sequence in order against the graph.
func (it *Interpreter) Execute(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := it.exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) exec(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case ast.RelationStatement:
		return it.execRelation(s)
	case ast.HasExpressionStatement:
		return it.execHasExpression(s)
	case ast.ExpressionPrintStatement:
		return it.execExpressionPrint(s)
	case ast.ExpressionHasStatement:
		return it.execExpressionHas(s)
	case ast.RoleDefinitionStatement:
		return it.execRoleDefinition(s)
	case ast.DoBlockStatement:
		return it.execDoBlock(s)
	case ast.CanStatement:
		return it.execCan(s)
	case ast.LosesStatement:
		return it.execLoses(s)
	case ast.DebugStatement:
		return it.execDebug(s)
	case ast.WhenStatement:
		return it.execWhen(s)
	case ast.WhenExpressionStatement:
		return it.execWhenExpression(s)
	case ast.ChanceStatement:
		return it.execChance(s)
	case ast.AllStatement:
		return it.execAll(s)
	case ast.EachStatement:
		return it.execEach(s)
	case ast.QueryStatement:
		return it.execQuery(s)
	default:
		return newError(RuntimeError, stmt.Position(), "unhandled statement type %T", stmt)
	}
}

func (it *Interpreter) execRelation(s ast.RelationStatement) error {
	switch strings.ToUpper(s.Relation) {
	case "IS":
		if len(s.Args) != 1 {
			return newError(InvalidOperand, s.At, "IS requires exactly one type argument")
		}
		subject := it.resolveSubject(s.Subject)
		parent := it.Graph.GetOrCreateNode(s.Args[0].Text)
		subject.AddParent(parent)
		return nil

	case "HAS":
		if len(s.Args) == 0 {
			return newError(InvalidOperand, s.At, "HAS requires a property name")
		}
		subject := it.resolveSubject(s.Subject)
		prop := s.Args[0].Text
		if len(s.Args) == 1 {
			subject.SetProperty(prop, graph.Null())
			return nil
		}
		subject.SetProperty(prop, it.valueFromArg(s.Args[1]))
		return nil

	case "PRINT":
		subject := it.resolveSubject(s.Subject)
		it.emit(graph.DisplayName(subject))
		return nil

	default:
		return it.execCustomRelation(s)
	}
}

// valueFromArg turns a literal Arg into a runtime Value, applying
// node-name auto-promotion for string/identifier args.
func (it *Interpreter) valueFromArg(a ast.Arg) graph.Value {
	switch a.Kind {
	case ast.ArgNumber:
		return graph.NumberValue(a.Number)
	default:
		return it.autoPromote(a.Text)
	}
}

func (it *Interpreter) autoPromote(text string) graph.Value {
	if n, ok := it.Graph.GetNode(text); ok {
		return graph.NodeRefValue(n)
	}
	return graph.StringValue(text)
}

func (it *Interpreter) execHasExpression(s ast.HasExpressionStatement) error {
	v, err := it.eval(s.Value)
	if err != nil {
		return err
	}
	subject := it.resolveSubject(s.Subject)
	subject.SetProperty(s.Property, v)
	return nil
}

func (it *Interpreter) execExpressionPrint(s ast.ExpressionPrintStatement) error {
	v, err := it.eval(s.Subject)
	if err != nil {
		return err
	}
	if v.Kind == graph.NodeRefVal {
		it.emit(graph.DisplayName(v.NodeRef))
		return nil
	}
	it.emit(v.DefaultString())
	return nil
}

func (it *Interpreter) execExpressionHas(s ast.ExpressionHasStatement) error {
	subjVal, err := it.eval(s.Subject)
	if err != nil {
		return err
	}
	if subjVal.Kind != graph.NodeRefVal {
		return newError(TypeMismatch, s.At, "HAS subject must evaluate to a node")
	}
	node := subjVal.NodeRef

	switch {
	case s.ValueExpr != nil:
		v, err := it.eval(s.ValueExpr)
		if err != nil {
			return err
		}
		node.SetProperty(s.Property, v)
	case s.Literal != nil:
		node.SetProperty(s.Property, it.valueFromArg(*s.Literal))
	default:
		node.SetProperty(s.Property, graph.Null())
	}
	return nil
}

func (it *Interpreter) execRoleDefinition(s ast.RoleDefinitionStatement) error {
	subject := it.resolveSubject(s.Subject)
	subject.Roles().Add(s.RoleName)
	return nil
}

func (it *Interpreter) execDoBlock(s ast.DoBlockStatement) error {
	subject := it.resolveSubject(s.Subject)
	subject.SetProperty("_DoBody", graph.StatementListValue(s.Body))
	return nil
}

func (it *Interpreter) execCan(s ast.CanStatement) error {
	subject := it.resolveSubject(s.Subject)
	subject.Abilities().Add(s.Ability)
	return nil
}

func (it *Interpreter) execLoses(s ast.LosesStatement) error {
	subject := it.resolveSubject(s.Subject)
	switch s.Kind {
	case ast.LosesIs:
		if parent, ok := it.Graph.GetNode(s.Target); ok {
			subject.RemoveParent(parent)
		}
	default: // ast.LosesAuto
		abilities := subject.Abilities()
		if abilities.Has(s.Target) {
			abilities.Remove(s.Target)
		} else if subject.HasOwnProperty(s.Target) {
			subject.RemoveProperty(s.Target)
		}
	}
	return nil
}

// valuesEqualToArg compares a resolved Value against a literal Arg,
// using the |a-b| < 1e-4 tolerance rule for numbers everywhere HAS
// equality is checked (relation dispatch notes, legacy WHEN, Query).
func valuesEqualToArg(v graph.Value, arg ast.Arg) bool {
	if arg.Kind == ast.ArgNumber {
		n, ok := v.AsNumber()
		return ok && graph.NumericEquals(n, arg.Number)
	}
	switch v.Kind {
	case graph.StringVal:
		return v.Str == arg.Text
	case graph.NodeRefVal:
		return v.NodeRef != nil && v.NodeRef.Name == arg.Text
	default:
		return false
	}
}
