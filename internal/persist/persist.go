// Package persist round-trips a graph.Graph through the same
// Snapshot JSON shape served by GET /sessions/{id}/snapshot. Deferred
// relation bodies (_DoBody) are never round-tripped: a restored graph
// has lost any DO-block bodies that were attached to its nodes.
package persist

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lowtek7/songlang/internal/graph"
)

// WriteJSON encodes g's snapshot to w.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g.ToSnapshot())
}

// ReadJSON decodes a snapshot from r and rebuilds a graph from it.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var snap graph.Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot JSON: %w", err)
	}
	return fromSnapshot(snap)
}

// SaveFile writes g's snapshot to a JSON file at path.
func SaveFile(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// LoadFile reads a graph snapshot from a JSON file at path.
func LoadFile(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func fromSnapshot(snap graph.Snapshot) (*graph.Graph, error) {
	g := graph.New()

	for _, sn := range snap.Nodes {
		n := g.GetOrCreateNode(sn.Name)
		for key, raw := range sn.Properties {
			v, err := valueFromJSON(raw)
			if err != nil {
				return nil, fmt.Errorf("node %s property %s: %w", sn.Name, key, err)
			}
			n.SetProperty(key, v)
		}
		if len(sn.Abilities) > 0 {
			abilities := n.Abilities()
			for _, a := range sn.Abilities {
				abilities.Add(a)
			}
		}
	}

	for _, e := range snap.Edges {
		child, err := g.RequireNode(e.Source)
		if err != nil {
			return nil, fmt.Errorf("edge source: %w", err)
		}
		if e.Type != "IS" {
			return nil, fmt.Errorf("unknown edge type %q", e.Type)
		}
		child.AddParent(g.GetOrCreateNode(e.Target))
	}

	return g, nil
}

func valueFromJSON(raw any) (graph.Value, error) {
	switch v := raw.(type) {
	case nil:
		return graph.Null(), nil
	case string:
		return graph.StringValue(v), nil
	case float64:
		return graph.NumberValue(v), nil
	case bool:
		return graph.BoolValue(v), nil
	default:
		return graph.Value{}, fmt.Errorf("unsupported property value type %T", raw)
	}
}
