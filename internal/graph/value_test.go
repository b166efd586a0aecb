package graph

import "testing"

func TestTruthy(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", Null(), false},
		{"false", BoolValue(false), false},
		{"true", BoolValue(true), true},
		{"zero", NumberValue(0), false},
		{"nonzero", NumberValue(-3), true},
		{"empty string", StringValue(""), false},
		{"nonempty string", StringValue("x"), true},
		{"node ref", NodeRefValue(NewNode("N")), true},
	}
	for _, c := range cases {
		if got := c.v.Truthy(); got != c.want {
			t.Errorf("%s: Truthy() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestDefaultStringNodeRefUsesOwnName(t *testing.T) {
	n := NewNode("Goblin")
	n.SetProperty("Name", StringValue("Grunt"))
	v := NodeRefValue(n)
	if got := v.DefaultString(); got != "Goblin" {
		t.Errorf("DefaultString should use the node's own identifier, got %q", got)
	}
}

func TestAsNumberCoercion(t *testing.T) {
	if n, ok := BoolValue(true).AsNumber(); !ok || n != 1 {
		t.Errorf("expected true -> 1, got %v ok=%v", n, ok)
	}
	if n, ok := BoolValue(false).AsNumber(); !ok || n != 0 {
		t.Errorf("expected false -> 0, got %v ok=%v", n, ok)
	}
	if _, ok := StringValue("x").AsNumber(); ok {
		t.Error("a string should not coerce to a number")
	}
}

func TestEqualsNoCrossKindCoercion(t *testing.T) {
	if NumberValue(1).Equals(BoolValue(true)) {
		t.Error("a number and a boolean should never compare equal")
	}
	if !Null().Equals(Null()) {
		t.Error("null should equal null")
	}
	if Null().Equals(StringValue("")) {
		t.Error("null should not equal an empty string")
	}
}

func TestEqualsNodeRefIsIdentity(t *testing.T) {
	a := NewNode("A")
	b := NewNode("A") // same name, distinct node
	if NodeRefValue(a).Equals(NodeRefValue(b)) {
		t.Error("two distinct nodes sharing a name should not be equal")
	}
	if !NodeRefValue(a).Equals(NodeRefValue(a)) {
		t.Error("a node should equal itself")
	}
}

func TestNumericEqualsTolerance(t *testing.T) {
	if !NumericEquals(1.0, 1.00005) {
		t.Error("values within 1e-4 should compare equal")
	}
	if NumericEquals(1.0, 1.01) {
		t.Error("values outside the tolerance should not compare equal")
	}
}
