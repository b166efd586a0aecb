package interpreter

import (
	"fmt"
	"strings"

	"github.com/lowtek7/songlang/internal/ast"
	"github.com/lowtek7/songlang/internal/graph"
)

// execWhen handles the legacy trailing-WHEN form: the condition is a
// relation-shaped statement that is never executed as a mutation,
// only inspected as a predicate.
func (it *Interpreter) execWhen(s ast.WhenStatement) error {
	if it.evalLegacyCondition(s.Condition) {
		return it.Execute(s.Body)
	}
	return nil
}

// evalLegacyCondition inspects a statement as a boolean predicate
// without executing it. Only HAS, IS, and CAN shapes are evaluable;
// everything else (PRINT, DO, custom relations, ...) is false.
func (it *Interpreter) evalLegacyCondition(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case ast.RelationStatement:
		node, ok := it.lookupSubject(s.Subject)
		if !ok {
			return false
		}
		switch strings.ToUpper(s.Relation) {
		case "HAS":
			if len(s.Args) == 0 {
				return false
			}
			v, ok := node.GetProperty(s.Args[0].Text)
			if !ok {
				return false
			}
			if len(s.Args) >= 2 {
				return valuesEqualToArg(v, s.Args[1])
			}
			return true
		case "IS":
			if len(s.Args) == 0 {
				return false
			}
			return node.Is(s.Args[0].Text)
		default:
			return false
		}
	case ast.CanStatement:
		node, ok := it.lookupSubject(s.Subject)
		if !ok {
			return false
		}
		return node.Can(s.Ability)
	default:
		return false
	}
}

// execWhenExpression implements the parenthesized-condition WHEN form.
// The subject is bound into context for the statement's whole
// lifetime (condition, body, and any ELSE WHEN/ELSE DO branches);
// whenSubject is set only while the condition itself is evaluated.
func (it *Interpreter) execWhenExpression(s ast.WhenExpressionStatement) error {
	node, existed := it.lookupSubject(s.Subject)
	if existed {
		it.context[s.Subject] = graph.NodeRefValue(node)
		defer delete(it.context, s.Subject)
	}

	prevSubject := it.whenSubject
	if existed {
		it.whenSubject = node
	}
	condVal, err := it.eval(s.Condition)
	it.whenSubject = prevSubject
	if err != nil {
		return err
	}

	switch {
	case condVal.Truthy():
		return it.Execute(s.Body)
	case s.ElseWhen != nil:
		return it.execWhenExpression(*s.ElseWhen)
	case s.ElseBody != nil:
		return it.Execute(s.ElseBody)
	default:
		return nil
	}
}

// execChance draws a uniform integer in [0,99] and runs the body if
// the draw is strictly less than the evaluated percentage.
func (it *Interpreter) execChance(s ast.ChanceStatement) error {
	v, err := it.eval(s.Percent)
	if err != nil {
		return err
	}
	percent, ok := v.AsNumber()
	if !ok {
		return newError(TypeMismatch, s.At, "CHANCE percent must be numeric")
	}

	draw := it.rng.NextIntInclusive(0, 99)
	if float64(draw) < percent {
		return it.Execute(s.Body)
	}
	if s.ElseBody != nil {
		return it.Execute(s.ElseBody)
	}
	return nil
}

// execAll handles both ALL forms: replaying a materialized query
// result by variable name, or collecting every node of a type.
func (it *Interpreter) execAll(s ast.AllStatement) error {
	var matches []*graph.Node

	if s.QueryVariable != "" {
		node, ok := it.Graph.GetNode(s.QueryVariable)
		var items graph.Value
		var hasItems bool
		if ok {
			items, hasItems = node.OwnProperty("_Items")
		}
		if !ok || !hasItems || items.Kind != graph.NodeListVal || len(items.NodeList) == 0 {
			it.emit(fmt.Sprintf("ALL ?%s: No query results found (run query first)", s.QueryVariable))
			return nil
		}
		matches = items.NodeList
	} else {
		// The type's own node is not one of its members.
		for _, n := range it.Graph.AllNodes() {
			if n.Name != s.TypeName && n.Is(s.TypeName) {
				matches = append(matches, n)
			}
		}
	}

	if s.Action == nil {
		target := s.TypeName
		if s.QueryVariable != "" {
			target = "?" + s.QueryVariable
		}
		it.emit(fmt.Sprintf("ALL %s: %d nodes found", target, len(matches)))
		return nil
	}

	for _, n := range matches {
		rebound, ok := rebindSubject(s.Action, n.Name)
		if !ok {
			continue // non-relation actions are silently ignored, per spec
		}
		if err := it.exec(rebound); err != nil {
			return err
		}
	}
	return nil
}

// rebindSubject constructs a copy of a RelationStatement action with
// its subject set to name. ALL's action slot is always parsed as a
// RelationStatement (HAS/PRINT/custom); anything else can't occur
// from the grammar, but we guard anyway.
func rebindSubject(action ast.Statement, name string) (ast.Statement, bool) {
	rel, ok := action.(ast.RelationStatement)
	if !ok {
		return nil, false
	}
	rel.Subject = name
	return rel, true
}

// execEach iterates, in insertion order, every node whose direct
// parent list contains the collection node.
func (it *Interpreter) execEach(s ast.EachStatement) error {
	collection, ok := it.lookupSubject(s.Collection)
	if !ok {
		return newError(NodeNotFound, s.At, "%q is not defined", s.Collection)
	}

	for _, n := range it.Graph.AllNodes() {
		isChild := false
		for _, p := range n.Parents() {
			if p == collection {
				isChild = true
				break
			}
		}
		if !isChild {
			continue
		}

		it.context[s.Variable] = graph.NodeRefValue(n)
		err := it.Execute(s.Body)
		delete(it.context, s.Variable)
		if err != nil {
			return err
		}
	}
	return nil
}

// execQuery filters every node by IS/HAS/CAN, optionally narrows by a
// WHERE expression, and reports the match count plus one line per
// match. A named query variable also materializes the result list
// under that node's _Items property for later reuse by ALL ?name.
func (it *Interpreter) execQuery(s ast.QueryStatement) error {
	var matches []*graph.Node
	for _, n := range it.Graph.AllNodes() {
		if queryMatches(n, s) {
			matches = append(matches, n)
		}
	}

	if s.WhereCondition != nil {
		varName := "_"
		if s.Subject.Kind == ast.Variable {
			varName = s.Subject.Name
		}
		filtered := matches[:0]
		for _, n := range matches {
			it.context[varName] = graph.NodeRefValue(n)
			v, err := it.eval(s.WhereCondition)
			delete(it.context, varName)
			if err != nil {
				continue // per-candidate evaluation errors exclude silently
			}
			if v.Truthy() {
				filtered = append(filtered, n)
			}
		}
		matches = filtered
	}

	if s.Subject.Kind == ast.Variable {
		name := s.Subject.Name
		resultNode := it.Graph.GetOrCreateNode(name)
		resultNode.AddParent(it.Graph.GetOrCreateNode("QueryResult"))
		resultNode.SetProperty("_Items", graph.NodeListValue(matches))
		it.emit(fmt.Sprintf("Query ?%s: %d nodes found", name, len(matches)))
	} else {
		it.emit(fmt.Sprintf("Query ?: %d nodes found", len(matches)))
	}
	for _, n := range matches {
		it.emit(fmt.Sprintf("  - %s", n.Name))
	}
	return nil
}

func queryMatches(n *graph.Node, s ast.QueryStatement) bool {
	switch strings.ToUpper(s.Relation) {
	case "IS":
		if !s.HasTarget {
			return true
		}
		// The target type's own node is not reported as a match.
		return n.Name != s.Target && n.Is(s.Target)

	case "HAS":
		if !s.HasTarget {
			for _, key := range n.OwnPropertyNames() {
				if len(key) > 0 && key[0] != '_' {
					return true
				}
			}
			return false
		}
		v, ok := n.GetProperty(s.Target)
		if !ok {
			return false
		}
		if s.TargetValue != nil {
			return valuesEqualToArg(v, *s.TargetValue)
		}
		return true

	case "CAN":
		if !s.HasTarget {
			abilities, ok := n.OwnProperty("_Abilities")
			return ok && abilities.Kind == graph.StringSetVal && abilities.StringSet.Len() > 0
		}
		return n.Can(s.Target)

	default:
		return false
	}
}
