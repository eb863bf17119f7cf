package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gnumake-go/mkexpr/internal/content"
	"github.com/gnumake-go/mkexpr/internal/srcloc"
)

func marker(line, col int) srcloc.Marker {
	return srcloc.Marker{Inner: srcloc.Real(srcloc.Position{File: "a.mk", Line: line, Column: col})}
}

func constBlock(s string) *content.Block {
	return content.BlockFromLocatedString(srcloc.NewLocatedString(s, srcloc.Real(srcloc.Position{File: "a.mk", Line: 1, Column: 1})))
}

// nodeEqual compares two Nodes structurally, ignoring unexported fields
// inside content.Block (Text() is compared instead, since Block carries an
// unexported cumulative-offset cache).
func nodeEqual(t *testing.T, got, want *Node) {
	t.Helper()
	diff := cmp.Diff(want, got,
		cmpopts.IgnoreUnexported(content.Block{}),
		cmp.Comparer(func(a, b *content.Block) bool {
			if a == nil || b == nil {
				return a == b
			}
			return a.Text() == b.Text()
		}),
	)
	if diff != "" {
		t.Errorf("node mismatch (-want +got):\n%s", diff)
	}
}

func TestNewConstant(t *testing.T) {
	m := marker(1, 1)
	n := NewConstant(m, constBlock("foo"))

	if n.Type != Constant {
		t.Errorf("Type = %v, want Constant", n.Type)
	}
	if n.Fields.ConstantValue.Text() != "foo" {
		t.Errorf("ConstantValue.Text() = %q, want %q", n.Fields.ConstantValue.Text(), "foo")
	}
	if n.Marker != m {
		t.Errorf("Marker = %+v, want %+v", n.Marker, m)
	}
}

func TestNewConcat(t *testing.T) {
	m := marker(1, 1)
	a := NewConstant(m, constBlock("a"))
	b := NewConstant(m, constBlock("b"))
	n := NewConcat(m, []*Node{a, b})

	if n.Type != Concat {
		t.Errorf("Type = %v, want Concat", n.Type)
	}
	if len(n.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(n.Children))
	}
}

func TestNewVariableReference(t *testing.T) {
	m := marker(1, 1)
	name := NewConstant(m, constBlock("FOO"))
	n := NewVariableReference(m, name)

	if n.Type != VariableReference {
		t.Errorf("Type = %v, want VariableReference", n.Type)
	}
	if len(n.Children) != 1 || n.Children[0] != name {
		t.Error("Children[0] is not the name node")
	}
}

func TestNewSubstitutionReference(t *testing.T) {
	m := marker(1, 1)
	v := NewConstant(m, constBlock("SRCS"))
	k := NewConstant(m, constBlock(".c"))
	r := NewConstant(m, constBlock(".o"))
	n := NewSubstitutionReference(m, v, k, r)

	if n.Type != SubstitutionReference {
		t.Errorf("Type = %v, want SubstitutionReference", n.Type)
	}
	want := []*Node{v, k, r}
	if len(n.Children) != 3 {
		t.Fatalf("len(Children) = %d, want 3", len(n.Children))
	}
	for i := range want {
		if n.Children[i] != want[i] {
			t.Errorf("Children[%d] mismatch", i)
		}
	}
}

func TestNewCall(t *testing.T) {
	m := marker(1, 1)
	arg := NewConstant(m, constBlock("x"))
	n := NewCall(m, Strip, []*Node{arg})

	if n.Type != Strip {
		t.Errorf("Type = %v, want Strip", n.Type)
	}
	if len(n.Children) != 1 || n.Children[0] != arg {
		t.Error("Children[0] is not arg")
	}
}

func TestNewCallFunctionPrependsName(t *testing.T) {
	m := marker(1, 1)
	name := NewConstant(m, constBlock("myfunc"))
	arg1 := NewConstant(m, constBlock("a"))
	arg2 := NewConstant(m, constBlock("b"))
	n := NewCallFunction(m, name, []*Node{arg1, arg2})

	if n.Type != Call {
		t.Errorf("Type = %v, want Call", n.Type)
	}
	if len(n.Children) != 3 {
		t.Fatalf("len(Children) = %d, want 3", len(n.Children))
	}
	if n.Children[0] != name || n.Children[1] != arg1 || n.Children[2] != arg2 {
		t.Error("Children order must be [name, arg1, arg2]")
	}
}

func TestNewUnimplemented(t *testing.T) {
	m := marker(1, 1)
	arg := NewConstant(m, constBlock("msg"))
	n := NewUnimplemented(m, "error", []*Node{arg})

	if n.Type != Unimplemented {
		t.Errorf("Type = %v, want Unimplemented", n.Type)
	}
	if n.Fields.Name != "error" {
		t.Errorf("Fields.Name = %q, want %q", n.Fields.Name, "error")
	}
}

func TestCloneDeepCopiesChildren(t *testing.T) {
	m := marker(1, 1)
	leaf := NewConstant(m, constBlock("x"))
	root := NewConcat(m, []*Node{leaf})

	clone := root.Clone()
	nodeEqual(t, clone, root)

	if clone == root {
		t.Error("Clone() returned the same pointer")
	}
	if clone.Children[0] == root.Children[0] {
		t.Error("Clone() did not deep-copy children")
	}
}

func TestCloneOfNilIsNil(t *testing.T) {
	var n *Node
	if n.Clone() != nil {
		t.Error("Clone() of nil Node should return nil")
	}
}

func TestCloneLeavesOriginalUnaffectedByMutation(t *testing.T) {
	m := marker(1, 1)
	leaf := NewConstant(m, constBlock("x"))
	root := NewConcat(m, []*Node{leaf})

	clone := root.Clone()
	clone.Children[0].Fields.Name = "mutated"

	if root.Children[0].Fields.Name == "mutated" {
		t.Error("mutating a clone's child leaked back into the original")
	}
}

func TestCloneOfLeafHasNilChildren(t *testing.T) {
	m := marker(1, 1)
	leaf := NewConstant(m, constBlock("x"))
	clone := leaf.Clone()
	if clone.Children != nil {
		t.Errorf("Children = %v, want nil", clone.Children)
	}
}
