// Package ast defines the parsed expression tree.
// Go has no tagged union, so Node follows the teacher's own
// NodeType+NodeFields shape (internal/parser/ast.go in the teacher repo): a
// closed set of variants switched on a Type tag, generic recursion through
// Children, variant-specific data in Fields.
package ast

import (
	"github.com/gnumake-go/mkexpr/internal/content"
	"github.com/gnumake-go/mkexpr/internal/srcloc"
)

// Type classifies a Node.
type Type int

const (
	// Constant is a literal run of text requiring no evaluation.
	Constant Type = iota
	// Concat joins a sequence of child nodes left to right.
	Concat
	// VariableReference is `$x`, `$(name)` or `${name}`; Children[0] is the
	// (possibly itself nested) name expression.
	VariableReference
	// SubstitutionReference is `$(var:key=replacement)`; Children are
	// [Variable, Key, Replacement].
	SubstitutionReference
	// Strip is `$(strip text)`; Children[0] is the argument.
	Strip
	// Words is `$(words text)`; Children[0] is the argument.
	Words
	// Word is `$(word n,text)`; Children are [Index, List].
	Word
	// Eval is `$(eval text)`; Children[0] is the argument.
	Eval
	// If is `$(if cond,then[,else])`; Children are [Cond, Then] or [Cond,
	// Then, Else].
	If
	// Firstword is `$(firstword text)`.
	Firstword
	// Wordlist is `$(wordlist s,e,text)`; Children are [Start, End, Text].
	Wordlist
	// Sort is `$(sort text)`.
	Sort
	// Or is `$(or cond1,cond2,...)`; Children are the conditions.
	Or
	// And is `$(and cond1,cond2,...)`; Children are the conditions.
	And
	// Subst is `$(subst from,to,text)`; Children are [From, To, Text].
	Subst
	// Patsubst is `$(patsubst pattern,replacement,text)`; Children are
	// [Pattern, Replacement, Text].
	Patsubst
	// Filter is `$(filter pattern,text)`; Children are [Pattern, Text].
	Filter
	// FilterOut is `$(filter-out pattern,text)`; Children are [Pattern,
	// Text].
	FilterOut
	// Findstring is `$(findstring find,text)`; Children are [Find, Text].
	Findstring
	// Value is `$(value name)`; Children[0] is the name.
	Value
	// Origin is `$(origin name)`; Children[0] is the name.
	Origin
	// Flavor is `$(flavor name)`; Children[0] is the name.
	Flavor
	// Call is `$(call name,args...)`; Children are [Name, arg1, arg2, ...].
	Call
	// Foreach is `$(foreach var,list,text)`; Children are [Var, List, Text].
	Foreach
	// Unimplemented represents a recognized-but-unsupported builtin
	// (shell/error/warning/info — requires a clear error, not
	// silent misbehavior). Fields.Name holds the function name.
	Unimplemented
)

//go:generate stringer -type=Type

// Fields holds variant-specific data that doesn't fit the generic
// Children slice.
type Fields struct {
	// ConstantValue holds the literal Block for a Constant node.
	ConstantValue *content.Block

	// Name holds the builtin function name for Unimplemented nodes. Call
	// nodes carry their target name as Children[0] instead.
	Name string
}

// Node is one node of the parsed expression tree. Marker records where the
// construct began in the source, for error reporting.
type Node struct {
	Type     Type
	Marker   srcloc.Marker
	Children []*Node
	Fields   Fields
}

// NewConstant builds a Constant node wrapping a literal Block.
func NewConstant(marker srcloc.Marker, value *content.Block) *Node {
	return &Node{Type: Constant, Marker: marker, Fields: Fields{ConstantValue: value}}
}

// NewConcat builds a Concat node over the given parts.
func NewConcat(marker srcloc.Marker, parts []*Node) *Node {
	return &Node{Type: Concat, Marker: marker, Children: parts}
}

// NewVariableReference builds a VariableReference node whose name
// expression is name.
func NewVariableReference(marker srcloc.Marker, name *Node) *Node {
	return &Node{Type: VariableReference, Marker: marker, Children: []*Node{name}}
}

// NewSubstitutionReference builds a SubstitutionReference node.
func NewSubstitutionReference(marker srcloc.Marker, variable, key, replacement *Node) *Node {
	return &Node{Type: SubstitutionReference, Marker: marker, Children: []*Node{variable, key, replacement}}
}

// NewCall builds a Node for a builtin-function call: name is the builtin's
// identifier (e.g. "strip"), typ its Type tag, and args its argument
// children in source order. This single constructor covers every builtin
// whose shape is "keyword plus an ordered argument list" — Strip, Words,
// Word, Eval, If, Firstword, Wordlist, Sort, Or, And, Subst, Patsubst,
// Filter, FilterOut, Findstring, Value, Origin, Flavor, Foreach.
func NewCall(marker srcloc.Marker, typ Type, args []*Node) *Node {
	return &Node{Type: typ, Marker: marker, Children: args}
}

// NewCallFunction builds a `$(call name,args...)` node.
func NewCallFunction(marker srcloc.Marker, name *Node, args []*Node) *Node {
	children := make([]*Node, 0, len(args)+1)
	children = append(children, name)
	children = append(children, args...)
	return &Node{Type: Call, Marker: marker, Children: children}
}

// NewUnimplemented builds a placeholder node for a recognized builtin this
// engine does not evaluate.
func NewUnimplemented(marker srcloc.Marker, name string, args []*Node) *Node {
	return &Node{Type: Unimplemented, Marker: marker, Children: args, Fields: Fields{Name: name}}
}

// Clone returns a deep copy of the node, as required before recursive
// evaluation mutates the database can replace that very record).
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := &Node{Type: n.Type, Marker: n.Marker, Fields: n.Fields}
	if n.Children != nil {
		clone.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			clone.Children[i] = c.Clone()
		}
	}
	return clone
}
