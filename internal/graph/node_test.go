package graph

import "testing"

func TestAddParentIdempotent(t *testing.T) {
	child := NewNode("Goblin")
	parent := NewNode("Monster")

	if !child.AddParent(parent) {
		t.Fatal("first AddParent should report true")
	}
	if child.AddParent(parent) {
		t.Error("second AddParent of the same node should report false")
	}
	if len(child.Parents()) != 1 {
		t.Errorf("expected one parent, got %d", len(child.Parents()))
	}
}

func TestRemoveParent(t *testing.T) {
	child := NewNode("Goblin")
	parent := NewNode("Monster")
	child.AddParent(parent)

	if !child.RemoveParent(parent) {
		t.Fatal("RemoveParent should report true for a present parent")
	}
	if child.RemoveParent(parent) {
		t.Error("RemoveParent should report false once already removed")
	}
	if len(child.Parents()) != 0 {
		t.Errorf("expected no parents, got %d", len(child.Parents()))
	}
}

func TestSetPropertyPreservesInsertionOrder(t *testing.T) {
	n := NewNode("Player")
	n.SetProperty("HP", NumberValue(100))
	n.SetProperty("MP", NumberValue(50))
	n.SetProperty("HP", NumberValue(80)) // re-set, shouldn't move position

	got := n.OwnPropertyNames()
	want := []string{"HP", "MP"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}

	v, ok := n.OwnProperty("HP")
	if !ok || v.Number != 80 {
		t.Errorf("expected HP=80, got %v ok=%v", v, ok)
	}
}

func TestRemovePropertyPreservesOrderOfSurvivors(t *testing.T) {
	n := NewNode("Player")
	n.SetProperty("HP", NumberValue(100))
	n.SetProperty("MP", NumberValue(50))
	n.SetProperty("XP", NumberValue(0))

	if !n.RemoveProperty("MP") {
		t.Fatal("expected RemoveProperty to report true")
	}
	got := n.OwnPropertyNames()
	want := []string{"HP", "XP"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestGetPropertyWalksPrototypeChain(t *testing.T) {
	base := NewNode("Monster")
	base.SetProperty("Hostile", BoolValue(true))

	child := NewNode("Goblin")
	child.AddParent(base)

	v, ok := child.GetProperty("Hostile")
	if !ok || !v.Bool {
		t.Fatalf("expected inherited Hostile=true, got %v ok=%v", v, ok)
	}
}

func TestGetPropertyOwnShadowsParent(t *testing.T) {
	base := NewNode("Monster")
	base.SetProperty("HP", NumberValue(10))

	child := NewNode("Goblin")
	child.AddParent(base)
	child.SetProperty("HP", NumberValue(30))

	v, ok := child.GetProperty("HP")
	if !ok || v.Number != 30 {
		t.Fatalf("expected own HP=30 to shadow parent, got %v ok=%v", v, ok)
	}
}

func TestGetPropertyCycleGuard(t *testing.T) {
	a := NewNode("A")
	b := NewNode("B")
	a.AddParent(b)
	b.AddParent(a) // cycle

	if _, ok := a.GetProperty("Missing"); ok {
		t.Error("expected lookup of a missing property through a cycle to fail cleanly")
	}
}

func TestIsSelfAndAncestorByName(t *testing.T) {
	monster := NewNode("Monster")
	goblin := NewNode("Goblin")
	goblin.AddParent(monster)

	if !goblin.Is("Goblin") {
		t.Error("a node should be its own type")
	}
	if !goblin.Is("Monster") {
		t.Error("a node should be its ancestor's type")
	}
	if goblin.Is("Player") {
		t.Error("a node should not be an unrelated type")
	}
}

func TestIsWorksAgainstNonexistentTypeName(t *testing.T) {
	// node.is(typeName) must work against a type-name string even if no
	// node named Monster has ever been created in the graph.
	lonely := NewNode("Floating")
	if lonely.Is("Monster") {
		t.Error("expected no match against a type name with no corresponding ancestor")
	}
}

func TestCanOwnVsCan(t *testing.T) {
	base := NewNode("Monster")
	base.Abilities().Add("Attack")

	child := NewNode("Goblin")
	child.AddParent(base)

	if child.CanOwn("Attack") {
		t.Error("CanOwn should not see an inherited ability")
	}
	if !child.Can("Attack") {
		t.Error("Can should see an inherited ability")
	}

	child.Abilities().Add("Flee")
	if !child.CanOwn("Flee") {
		t.Error("CanOwn should see an own ability")
	}
}

func TestRolesLazyCreatesPerNode(t *testing.T) {
	n := NewNode("Attack")
	roles := n.Roles()
	roles.Add("attacker")
	roles.Add("target")

	again := n.Roles()
	if again.Len() != 2 {
		t.Fatalf("expected the same role set to be returned, got len %d", again.Len())
	}
	if again.Items()[0] != "attacker" || again.Items()[1] != "target" {
		t.Errorf("expected roles in insertion order, got %v", again.Items())
	}
}
