package graph

import "sort"

// Snapshot is the JSON-friendly rendering of a Graph used by
// internal/persist and the GET /sessions/{id}/snapshot endpoint. It
// intentionally drops anything that isn't plain data: reserved
// underscore-prefixed properties (_Roles, _DoBody, _Items, ...) and
// NodeRef-valued own properties are never round-tripped. Own
// abilities are the exception: they are carried in each node's
// Abilities list rather than as a property. Other relations are not materialized as edges in the
// snapshot; IS is the only edge type it carries.
type Snapshot struct {
	Nodes []SnapshotNode `json:"nodes"`
	Edges []SnapshotEdge `json:"edges"`
}

// SnapshotNode is one node's scalar own-properties and abilities.
type SnapshotNode struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties"`
	Abilities  []string       `json:"abilities,omitempty"`
}

// SnapshotEdge is a single IS (prototype) edge. Type is always "IS".
type SnapshotEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// ToSnapshot renders the full graph as a Snapshot, in node
// first-creation order with edges in each node's parent order.
// Properties is a map, so property insertion order is not kept.
func (g *Graph) ToSnapshot() Snapshot {
	snap := Snapshot{}
	for _, n := range g.AllNodes() {
		sn := SnapshotNode{ID: n.Name, Name: n.Name, Properties: make(map[string]any)}

		for _, key := range n.OwnPropertyNames() {
			if len(key) > 0 && key[0] == '_' {
				continue
			}
			v := n.props[key]
			switch v.Kind {
			case NumberVal:
				sn.Properties[key] = v.Number
			case StringVal:
				sn.Properties[key] = v.Str
			case BooleanVal:
				sn.Properties[key] = v.Bool
			case NullVal:
				sn.Properties[key] = nil
			case NodeRefVal:
				// Other relations are not materialized as edges in the
				// snapshot; only IS is.
			}
		}

		if abilities, ok := n.OwnProperty("_Abilities"); ok && abilities.Kind == StringSetVal {
			sn.Abilities = append(sn.Abilities, abilities.StringSet.Items()...)
		}

		for _, parent := range n.Parents() {
			snap.Edges = append(snap.Edges, SnapshotEdge{Source: n.Name, Target: parent.Name, Type: "IS"})
		}

		snap.Nodes = append(snap.Nodes, sn)
	}
	return snap
}

// sortedKeys is used by tests that need deterministic property-key
// iteration over a snapshot's property maps.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
