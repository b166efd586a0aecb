package graph

import (
	"strconv"

	"github.com/lowtek7/songlang/internal/ast"
)

// ValueKind tags the concrete shape of a runtime Value.
type ValueKind int

const (
	NumberVal ValueKind = iota
	StringVal
	BooleanVal
	NullVal
	NodeRefVal
	StringSetVal
	StatementListVal
	NodeListVal
	RoleListVal
)

// Value is a tagged-union runtime value. Only the field matching Kind
// is meaningful.
type Value struct {
	Kind          ValueKind
	Number        float64
	Str           string
	Bool          bool
	NodeRef       *Node
	StringSet     *OrderedStrings
	StatementList []ast.Statement
	NodeList      []*Node
}

func NumberValue(f float64) Value        { return Value{Kind: NumberVal, Number: f} }
func StringValue(s string) Value         { return Value{Kind: StringVal, Str: s} }
func BoolValue(b bool) Value             { return Value{Kind: BooleanVal, Bool: b} }
func Null() Value                        { return Value{Kind: NullVal} }
func NodeRefValue(n *Node) Value         { return Value{Kind: NodeRefVal, NodeRef: n} }
func StringSetValue(s *OrderedStrings) Value {
	return Value{Kind: StringSetVal, StringSet: s}
}
func StatementListValue(stmts []ast.Statement) Value {
	return Value{Kind: StatementListVal, StatementList: stmts}
}
func NodeListValue(nodes []*Node) Value { return Value{Kind: NodeListVal, NodeList: nodes} }

// RoleListValue wraps an ordered role set the same way StringSetValue
// wraps an ordered ability set; both are OrderedStrings underneath.
func RoleListValue(roles *OrderedStrings) Value {
	return Value{Kind: RoleListVal, StringSet: roles}
}

// IsNull reports whether v is the Null value.
func (v Value) IsNull() bool { return v.Kind == NullVal }

// Truthy implements the language's truthiness rule: null, false, 0,
// and "" are false; everything else (including any node reference) is
// true.
func (v Value) Truthy() bool {
	switch v.Kind {
	case NullVal:
		return false
	case BooleanVal:
		return v.Bool
	case NumberVal:
		return v.Number != 0
	case StringVal:
		return v.Str != ""
	default:
		return true
	}
}

// DefaultString is the "default string conversion" used for string
// concatenation and as the generic fallback print form. It does not
// resolve a NodeRef's Name property — callers that want that
// (PRINT / ExpressionPrint) use DisplayName instead.
func (v Value) DefaultString() string {
	switch v.Kind {
	case NumberVal:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case StringVal:
		return v.Str
	case BooleanVal:
		return strconv.FormatBool(v.Bool)
	case NullVal:
		return "null"
	case NodeRefVal:
		if v.NodeRef == nil {
			return "null"
		}
		return v.NodeRef.Name
	default:
		return ""
	}
}

// AsNumber applies numeric coercion: number -> itself, boolean -> 0/1,
// everything else is not coercible.
func (v Value) AsNumber() (float64, bool) {
	switch v.Kind {
	case NumberVal:
		return v.Number, true
	case BooleanVal:
		if v.Bool {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// Equals implements "==" value equality: identity for node refs,
// strict equality for primitives, null == null, null != anything
// else, and no implicit coercion across kinds.
func (v Value) Equals(other Value) bool {
	if v.Kind == NullVal || other.Kind == NullVal {
		return v.Kind == NullVal && other.Kind == NullVal
	}
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case NumberVal:
		return v.Number == other.Number
	case StringVal:
		return v.Str == other.Str
	case BooleanVal:
		return v.Bool == other.Bool
	case NodeRefVal:
		return v.NodeRef == other.NodeRef
	default:
		return false
	}
}

// NumericEquals compares two numbers with the tolerance spec.md uses
// for HAS/WHEN equality checks (|a-b| < 1e-4).
func NumericEquals(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-4
}
