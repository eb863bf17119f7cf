package vars

import "testing"

func TestFlavorString(t *testing.T) {
	if got := Recursive.String(); got != "recursive" {
		t.Errorf("Recursive.String() = %q, want %q", got, "recursive")
	}
	if got := Simple.String(); got != "simple" {
		t.Errorf("Simple.String() = %q, want %q", got, "simple")
	}
	if got := Flavor(99).String(); got != "unknown" {
		t.Errorf("Flavor(99).String() = %q, want %q", got, "unknown")
	}
}

func TestNewSetContainsGivenNames(t *testing.T) {
	s := NewSet(1, 2, 3)
	for _, n := range []VariableName{1, 2, 3} {
		if !s.Contains(n) {
			t.Errorf("Set should contain %v", n)
		}
	}
	if s.Contains(4) {
		t.Error("Set should not contain 4")
	}
}

func TestNewSetEmpty(t *testing.T) {
	s := NewSet()
	if s.Contains(1) {
		t.Error("empty set should contain nothing")
	}
}

func TestUnionCombinesBothSets(t *testing.T) {
	a := NewSet(1, 2)
	b := NewSet(2, 3)
	u := a.Union(b)
	for _, n := range []VariableName{1, 2, 3} {
		if !u.Contains(n) {
			t.Errorf("union should contain %v", n)
		}
	}
}

func TestUnionDoesNotMutateOperands(t *testing.T) {
	a := NewSet(1)
	b := NewSet(2)
	_ = a.Union(b)
	if a.Contains(2) {
		t.Error("Union must not mutate its left operand")
	}
	if b.Contains(1) {
		t.Error("Union must not mutate its right operand")
	}
}

func TestAddMutatesInPlace(t *testing.T) {
	s := NewSet()
	s.Add(5)
	if !s.Contains(5) {
		t.Error("Add should insert the name into the set")
	}
}
