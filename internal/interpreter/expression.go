package interpreter

import (
	"math"

	"github.com/lowtek7/songlang/internal/ast"
	"github.com/lowtek7/songlang/internal/graph"
)

func (it *Interpreter) eval(expr ast.Expression) (graph.Value, error) {
	switch e := expr.(type) {
	case ast.Number:
		return graph.NumberValue(e.Value), nil
	case ast.String:
		return graph.StringValue(e.Value), nil
	case ast.Identifier:
		return it.resolveIdentifier(e)
	case ast.PropertyAccess:
		return it.evalPropertyAccess(e)
	case ast.Binary:
		return it.evalBinary(e)
	case ast.Unary:
		return it.evalUnary(e)
	case ast.Grouping:
		return it.eval(e.Inner)
	case ast.Random:
		return it.evalRandom(e)
	default:
		return graph.Value{}, newError(RuntimeError, expr.Position(), "unhandled expression type %T", expr)
	}
}

// resolveIdentifier follows §4.5's priority: context, then an existing
// graph node (as a NodeRef), then (if set) the WHEN subject's
// inherited property.
func (it *Interpreter) resolveIdentifier(e ast.Identifier) (graph.Value, error) {
	if v, ok := it.context[e.Name]; ok {
		return v, nil
	}
	if n, ok := it.Graph.GetNode(e.Name); ok {
		return graph.NodeRefValue(n), nil
	}
	if it.whenSubject != nil {
		if v, ok := it.whenSubject.GetProperty(e.Name); ok {
			return v, nil
		}
	}
	return graph.Value{}, newError(NodeNotFound, e.At, "%q is not defined", e.Name)
}

func (it *Interpreter) evalPropertyAccess(e ast.PropertyAccess) (graph.Value, error) {
	obj, err := it.eval(e.Object)
	if err != nil {
		return graph.Value{}, err
	}
	if obj.Kind != graph.NodeRefVal {
		return graph.Value{}, newError(TypeMismatch, e.At, "cannot access property %q of a non-node value", e.Property)
	}
	v, ok := obj.NodeRef.GetProperty(e.Property)
	if !ok {
		return graph.Value{}, newError(PropertyNotFound, e.At, "%s has no property %q", obj.NodeRef.Name, e.Property)
	}
	return v, nil
}

func (it *Interpreter) evalUnary(e ast.Unary) (graph.Value, error) {
	operand, err := it.eval(e.Operand)
	if err != nil {
		return graph.Value{}, err
	}
	switch e.Op {
	case ast.Not:
		return graph.BoolValue(!operand.Truthy()), nil
	case ast.Negate:
		n, ok := operand.AsNumber()
		if !ok {
			return graph.Value{}, newError(TypeMismatch, e.At, "cannot negate a non-numeric value")
		}
		return graph.NumberValue(-n), nil
	default:
		return graph.Value{}, newError(RuntimeError, e.At, "unknown unary operator")
	}
}

func (it *Interpreter) evalBinary(e ast.Binary) (graph.Value, error) {
	// AND/OR short-circuit, so the right operand is evaluated lazily.
	if e.Op == ast.And {
		left, err := it.eval(e.Left)
		if err != nil {
			return graph.Value{}, err
		}
		if !left.Truthy() {
			return graph.BoolValue(false), nil
		}
		right, err := it.eval(e.Right)
		if err != nil {
			return graph.Value{}, err
		}
		return graph.BoolValue(right.Truthy()), nil
	}
	if e.Op == ast.Or {
		left, err := it.eval(e.Left)
		if err != nil {
			return graph.Value{}, err
		}
		if left.Truthy() {
			return graph.BoolValue(true), nil
		}
		right, err := it.eval(e.Right)
		if err != nil {
			return graph.Value{}, err
		}
		return graph.BoolValue(right.Truthy()), nil
	}

	left, err := it.eval(e.Left)
	if err != nil {
		return graph.Value{}, err
	}
	right, err := it.eval(e.Right)
	if err != nil {
		return graph.Value{}, err
	}

	switch e.Op {
	case ast.Add:
		if left.Kind == graph.StringVal || right.Kind == graph.StringVal {
			return graph.StringValue(left.DefaultString() + right.DefaultString()), nil
		}
		return it.numericBinary(e, left, right, func(a, b float64) float64 { return a + b })
	case ast.Sub:
		return it.numericBinary(e, left, right, func(a, b float64) float64 { return a - b })
	case ast.Mul:
		return it.numericBinary(e, left, right, func(a, b float64) float64 { return a * b })
	case ast.Div:
		r, ok := right.AsNumber()
		if !ok {
			return graph.Value{}, newError(TypeMismatch, e.At, "right operand of / is not numeric")
		}
		if r == 0 {
			return graph.Value{}, newError(DivisionByZero, e.At, "division by zero")
		}
		return it.numericBinary(e, left, right, func(a, b float64) float64 { return a / b })
	case ast.Mod:
		r, ok := right.AsNumber()
		if !ok {
			return graph.Value{}, newError(TypeMismatch, e.At, "right operand of %% is not numeric")
		}
		if r == 0 {
			return graph.Value{}, newError(DivisionByZero, e.At, "modulo by zero")
		}
		return it.numericBinary(e, left, right, math.Mod)
	case ast.Eq:
		return graph.BoolValue(left.Equals(right)), nil
	case ast.Neq:
		return graph.BoolValue(!left.Equals(right)), nil
	case ast.Lt, ast.Gt, ast.Lte, ast.Gte:
		a, ok1 := left.AsNumber()
		b, ok2 := right.AsNumber()
		if !ok1 || !ok2 {
			return graph.Value{}, newError(TypeMismatch, e.At, "comparison requires numeric operands")
		}
		switch e.Op {
		case ast.Lt:
			return graph.BoolValue(a < b), nil
		case ast.Gt:
			return graph.BoolValue(a > b), nil
		case ast.Lte:
			return graph.BoolValue(a <= b), nil
		default:
			return graph.BoolValue(a >= b), nil
		}
	default:
		return graph.Value{}, newError(RuntimeError, e.At, "unknown binary operator")
	}
}

func (it *Interpreter) numericBinary(e ast.Binary, left, right graph.Value, f func(a, b float64) float64) (graph.Value, error) {
	a, ok1 := left.AsNumber()
	b, ok2 := right.AsNumber()
	if !ok1 || !ok2 {
		return graph.Value{}, newError(TypeMismatch, e.At, "arithmetic requires numeric operands")
	}
	return graph.NumberValue(f(a, b)), nil
}

func (it *Interpreter) evalRandom(e ast.Random) (graph.Value, error) {
	minV, err := it.eval(e.Min)
	if err != nil {
		return graph.Value{}, err
	}
	maxV, err := it.eval(e.Max)
	if err != nil {
		return graph.Value{}, err
	}
	minN, ok1 := minV.AsNumber()
	maxN, ok2 := maxV.AsNumber()
	if !ok1 || !ok2 {
		return graph.Value{}, newError(TypeMismatch, e.At, "RANDOM requires numeric operands")
	}
	result := it.rng.NextIntInclusive(int(math.Floor(minN)), int(math.Floor(maxN)))
	return graph.NumberValue(float64(result)), nil
}
