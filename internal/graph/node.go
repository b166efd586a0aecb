package graph

// Node is a single entry in the graph: a name, an ordered/deduped list
// of parents (IS edges), and an ordered map of own properties (HAS
// edges). Abilities (CAN) and declared role names live as ordinary properties
// under the reserved keys _Abilities and _Roles so inherited lookup
// treats them the same as any other property.
type Node struct {
	Name    string
	parents []*Node

	propOrder []string
	props     map[string]Value
}

// NewNode creates an empty node with the given name.
func NewNode(name string) *Node {
	return &Node{Name: name, props: make(map[string]Value)}
}

// Parents returns this node's direct IS-parents in insertion order.
// The caller must not mutate the returned slice.
func (n *Node) Parents() []*Node {
	return n.parents
}

// AddParent adds p as a direct parent if it isn't already one.
// Returns true if p was newly added.
func (n *Node) AddParent(p *Node) bool {
	for _, existing := range n.parents {
		if existing == p {
			return false
		}
	}
	n.parents = append(n.parents, p)
	return true
}

// RemoveParent removes p from the direct parent list if present.
// Returns true if it was present.
func (n *Node) RemoveParent(p *Node) bool {
	for i, existing := range n.parents {
		if existing == p {
			n.parents = append(n.parents[:i], n.parents[i+1:]...)
			return true
		}
	}
	return false
}

// HasOwnProperty reports whether key is set directly on n, without
// walking the prototype chain.
func (n *Node) HasOwnProperty(key string) bool {
	_, ok := n.props[key]
	return ok
}

// OwnProperty returns the directly-set value for key, ignoring
// inheritance.
func (n *Node) OwnProperty(key string) (Value, bool) {
	v, ok := n.props[key]
	return v, ok
}

// SetProperty sets key directly on n, preserving first-insertion
// order across repeated sets.
func (n *Node) SetProperty(key string, v Value) {
	if _, exists := n.props[key]; !exists {
		n.propOrder = append(n.propOrder, key)
	}
	n.props[key] = v
}

// RemoveProperty deletes key if it is set directly on n. Returns true
// if it was present.
func (n *Node) RemoveProperty(key string) bool {
	if _, ok := n.props[key]; !ok {
		return false
	}
	delete(n.props, key)
	for i, k := range n.propOrder {
		if k == key {
			n.propOrder = append(n.propOrder[:i], n.propOrder[i+1:]...)
			break
		}
	}
	return true
}

// OwnPropertyNames returns own property keys in insertion order. The
// caller must not mutate the returned slice.
func (n *Node) OwnPropertyNames() []string {
	return n.propOrder
}

// GetProperty resolves key via depth-first, first-hit-wins prototype
// lookup: n's own properties first, then each direct parent's chain in
// order. A visited set guards against cycles introduced by IS loops.
func (n *Node) GetProperty(key string) (Value, bool) {
	return n.getProperty(key, make(map[*Node]bool))
}

func (n *Node) getProperty(key string, visited map[*Node]bool) (Value, bool) {
	if visited[n] {
		return Value{}, false
	}
	visited[n] = true

	if v, ok := n.props[key]; ok {
		return v, true
	}
	for _, parent := range n.parents {
		if v, ok := parent.getProperty(key, visited); ok {
			return v, true
		}
	}
	return Value{}, false
}

// Is reports whether n's own name equals typeName, or typeName names
// any ancestor reachable via parents (depth-first, cycle-guarded).
func (n *Node) Is(typeName string) bool {
	return n.is(typeName, make(map[*Node]bool))
}

func (n *Node) is(typeName string, visited map[*Node]bool) bool {
	if visited[n] {
		return false
	}
	visited[n] = true

	if n.Name == typeName {
		return true
	}
	for _, parent := range n.parents {
		if parent.is(typeName, visited) {
			return true
		}
	}
	return false
}

// Abilities returns the node's own _Abilities set, creating it on
// first use.
func (n *Node) Abilities() *OrderedStrings {
	if v, ok := n.props["_Abilities"]; ok && v.Kind == StringSetVal {
		return v.StringSet
	}
	set := NewOrderedStrings()
	n.SetProperty("_Abilities", StringSetValue(set))
	return set
}

// Roles returns the node's own _Roles set, creating it on first use.
func (n *Node) Roles() *OrderedStrings {
	if v, ok := n.props["_Roles"]; ok && v.Kind == RoleListVal {
		return v.StringSet
	}
	set := NewOrderedStrings()
	n.SetProperty("_Roles", RoleListValue(set))
	return set
}

// CanOwn reports whether n itself (not via inheritance) has ability.
func (n *Node) CanOwn(ability string) bool {
	v, ok := n.props["_Abilities"]
	if !ok || v.Kind != StringSetVal {
		return false
	}
	return v.StringSet.Has(ability)
}

// Can reports whether n or any ancestor has ability (depth-first,
// cycle-guarded) — the inherited ability check used by CAN queries
// and the legacy WHEN predicate.
func (n *Node) Can(ability string) bool {
	return n.can(ability, make(map[*Node]bool))
}

func (n *Node) can(ability string, visited map[*Node]bool) bool {
	if visited[n] {
		return false
	}
	visited[n] = true

	if n.CanOwn(ability) {
		return true
	}
	for _, parent := range n.parents {
		if parent.can(ability, visited) {
			return true
		}
	}
	return false
}
