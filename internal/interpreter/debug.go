package interpreter

import (
	"fmt"
	"strings"

	"github.com/lowtek7/songlang/internal/ast"
	"github.com/lowtek7/songlang/internal/graph"
)

func (it *Interpreter) execDebug(s ast.DebugStatement) error {
	switch s.Target {
	case ast.DebugGraph:
		it.DumpGraph()
	case ast.DebugTokens:
		it.emit("DEBUG TOKENS is not implemented")
	case ast.DebugAst:
		it.emit("DEBUG AST is not implemented")
	}
	return nil
}

// DumpGraph emits a formatted multi-line dump of every node: its
// parents, its abilities, and its own properties, filtering internal
// underscore-prefixed keys except for _Items and _Abilities, which
// get their own display syntax.
func (it *Interpreter) DumpGraph() {
	for _, n := range it.Graph.AllNodes() {
		it.emit(n.Name)

		if parents := n.Parents(); len(parents) > 0 {
			names := make([]string, len(parents))
			for i, p := range parents {
				names[i] = p.Name
			}
			it.emit(fmt.Sprintf("  IS %s", strings.Join(names, ", ")))
		}

		for _, key := range n.OwnPropertyNames() {
			v, _ := n.OwnProperty(key)
			switch {
			case key == "_Abilities" && v.Kind == graph.StringSetVal:
				if v.StringSet.Len() > 0 {
					it.emit(fmt.Sprintf("  CAN %s", strings.Join(v.StringSet.Items(), ", ")))
				}
			case key == "_Items" && v.Kind == graph.NodeListVal:
				names := make([]string, len(v.NodeList))
				for i, item := range v.NodeList {
					names[i] = item.Name
				}
				it.emit(fmt.Sprintf("  _Items: [%s]", strings.Join(names, ", ")))
			case len(key) > 0 && key[0] == '_':
				continue
			default:
				it.emit(fmt.Sprintf("  HAS %s %s", key, dumpValue(v)))
			}
		}
	}
}

func dumpValue(v graph.Value) string {
	if v.Kind == graph.NodeRefVal {
		if v.NodeRef == nil {
			return "null"
		}
		return v.NodeRef.Name
	}
	return v.DefaultString()
}
