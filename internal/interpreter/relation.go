package interpreter

import (
	"github.com/lowtek7/songlang/internal/ast"
	"github.com/lowtek7/songlang/internal/graph"
)

// execCustomRelation dispatches any relation name that isn't one of
// the built-ins (IS, HAS, PRINT).
func (it *Interpreter) execCustomRelation(s ast.RelationStatement) error {
	relNode, ok := it.Graph.GetNode(s.Relation)
	if !ok {
		return it.degradeUnknownRelation(s)
	}
	if !relNode.Is("RELATION") {
		return newError(RuntimeError, s.At, "%s is not a relation", s.Relation)
	}

	body, ok := relNode.OwnProperty("_DoBody")
	if !ok || body.Kind != graph.StatementListVal {
		return nil
	}

	subject := it.resolveSubject(s.Subject)
	bound := it.bindRoles(relNode, subject, s.Args)
	err := it.Execute(body.StatementList)
	for _, role := range bound {
		delete(it.context, role)
	}
	return err
}

// degradeUnknownRelation implements the graceful-degradation rule: a
// relation name with no matching node records its first argument's
// node name under subject._<R>, or no-ops with no arguments.
func (it *Interpreter) degradeUnknownRelation(s ast.RelationStatement) error {
	if len(s.Args) == 0 {
		return nil
	}
	subject := it.resolveSubject(s.Subject)
	target := it.Graph.GetOrCreateNode(s.Args[0].Text)
	subject.SetProperty("_"+s.Relation, graph.StringValue(target.Name))
	return nil
}

// bindRoles binds the relation's declared roles in order: the first
// role to subject, each subsequent role to a node looked up from the
// matching positional argument. Returns the role names actually
// bound, so the caller can unbind them once the body finishes.
func (it *Interpreter) bindRoles(relNode, subject *graph.Node, args []ast.Arg) []string {
	roles := relNode.Roles().Items()
	bound := make([]string, 0, len(roles))

	for i, role := range roles {
		var value *graph.Node
		if i == 0 {
			value = subject
		} else {
			argIndex := i - 1
			if argIndex >= len(args) {
				continue
			}
			value = it.Graph.GetOrCreateNode(args[argIndex].Text)
		}
		it.context[role] = graph.NodeRefValue(value)
		bound = append(bound, role)
	}
	return bound
}
