// Package content implements the provenance-preserving text rope the rest
// of the engine is built on: Block and Span. A
// Block is an immutable, shareable sequence of ContentReferences plus a
// sensitivity set; a Span is a cheap logical window over one.
package content

import (
	"sort"
	"strings"

	"github.com/gnumake-go/mkexpr/internal/srcloc"
	"github.com/gnumake-go/mkexpr/internal/vars"
)

// evaluatedKind tags which variant an EvaluatedNode holds.
type evaluatedKind int

const (
	evalConstant evaluatedKind = iota
	evalVariableReference
	evalSubstitutionReference
)

// EvaluatedNode is a memoizable record of an evaluation. A ContentReference is always a handle to one of these: plain
// source text and injected synthetic spaces are both represented as
// evalConstant, so that every entry in a Block's reference list has a
// uniform shape.
type EvaluatedNode struct {
	kind evaluatedKind

	constant srcloc.LocatedString

	varRefName  *Block
	varRefValue *Block

	subVariable    *Block
	subKey         *Block
	subReplacement *Block
	subValue       *Block
}

// ContentReference is a handle into a Block's reference list.
type ContentReference = *EvaluatedNode

// NewConstant builds a ContentReference wrapping literal (possibly
// synthetic) text.
func NewConstant(s srcloc.LocatedString) ContentReference {
	return &EvaluatedNode{kind: evalConstant, constant: s}
}

// NewVariableReference builds a ContentReference recording a variable
// dereference: the evaluated name and the value it produced.
func NewVariableReference(name, value *Block) ContentReference {
	return &EvaluatedNode{kind: evalVariableReference, varRefName: name, varRefValue: value}
}

// NewSubstitutionReference builds a ContentReference recording a
// `$(var:key=replacement)` substitution.
func NewSubstitutionReference(variable, key, replacement, value *Block) ContentReference {
	return &EvaluatedNode{
		kind:           evalSubstitutionReference,
		subVariable:    variable,
		subKey:         key,
		subReplacement: replacement,
		subValue:       value,
	}
}

// Text returns the flattened text this reference contributes.
func (n *EvaluatedNode) Text() string {
	switch n.kind {
	case evalConstant:
		return n.constant.Text()
	case evalVariableReference:
		return n.varRefValue.Text()
	case evalSubstitutionReference:
		return n.subValue.Text()
	default:
		return ""
	}
}

// Location returns the reference's source location, recursing into the
// value Block for derived references so that Block.Location still finds
// real provenance through a variable expansion.
func (n *EvaluatedNode) Location() srcloc.Location {
	switch n.kind {
	case evalConstant:
		return n.constant.Location()
	case evalVariableReference:
		return n.varRefValue.Location()
	case evalSubstitutionReference:
		return n.subValue.Location()
	default:
		return srcloc.Synthetic
	}
}

// IsSynthetic reports whether this reference carries no real provenance.
func (n *EvaluatedNode) IsSynthetic() bool {
	return n.Location().IsSynthetic()
}

// runeLen returns the rune length of the reference's text.
func (n *EvaluatedNode) runeLen() int {
	if n.kind == evalConstant {
		return n.constant.RuneLen()
	}
	return len([]rune(n.Text()))
}

// VariableReferenceParts exposes the (name, value) pair of an
// evalVariableReference node, for diagnostics.
func (n *EvaluatedNode) VariableReferenceParts() (name, value *Block, ok bool) {
	if n.kind != evalVariableReference {
		return nil, nil, false
	}
	return n.varRefName, n.varRefValue, true
}

// SubstitutionReferenceParts exposes the four sub-blocks of an
// evalSubstitutionReference node, for diagnostics.
func (n *EvaluatedNode) SubstitutionReferenceParts() (variable, key, replacement, value *Block, ok bool) {
	if n.kind != evalSubstitutionReference {
		return nil, nil, nil, nil, false
	}
	return n.subVariable, n.subKey, n.subReplacement, n.subValue, true
}

// Block is an ordered sequence of ContentReferences plus the sensitivity
// set of variable names that influenced its content.
type Block struct {
	refs        []ContentReference
	prefix      []int // len(refs)+1 cumulative rune offsets
	sensitivity vars.Set
}

// Builder accumulates ContentReferences before a Block is sealed.
// Mutation through Push is only valid before the Block is shared.
type Builder struct {
	refs []ContentReference
}

// Push appends a reference to the builder.
func (b *Builder) Push(ref ContentReference) {
	b.refs = append(b.refs, ref)
}

// Build seals the builder into an immutable Block with the given
// sensitivity set (nil is treated as empty).
func (b *Builder) Build(sensitivity vars.Set) *Block {
	return newBlock(b.refs, sensitivity)
}

func newBlock(refs []ContentReference, sensitivity vars.Set) *Block {
	prefix := make([]int, len(refs)+1)
	for i, r := range refs {
		prefix[i+1] = prefix[i] + r.runeLen()
	}
	if sensitivity == nil {
		sensitivity = vars.Set{}
	}
	return &Block{refs: refs, prefix: prefix, sensitivity: sensitivity}
}

// NewBlock builds a Block directly from a reference list and sensitivity
// set; used by the evaluator to assemble the result of a node evaluation.
func NewBlock(sensitivity vars.Set, refs []ContentReference) *Block {
	return newBlock(refs, sensitivity)
}

// Empty returns a Block with no content and no sensitivity.
func Empty() *Block {
	return newBlock(nil, nil)
}

// BlockFromLocatedString wraps a single LocatedString segment as a
// one-reference Block, the shape astparse needs for every literal
// Constant node it builds out of a Span's segments.
func BlockFromLocatedString(ls srcloc.LocatedString) *Block {
	return newBlock([]ContentReference{NewConstant(ls)}, nil)
}

// Sensitivity returns the set of variable names that influenced this
// Block's content.
func (b *Block) Sensitivity() vars.Set {
	return b.sensitivity
}

// RuneLen returns the block's logical length in runes.
func (b *Block) RuneLen() int {
	return b.prefix[len(b.prefix)-1]
}

// Refs exposes the underlying reference slice (read-only use only).
func (b *Block) Refs() []ContentReference {
	return b.refs
}

// Text returns the block's full flattened text.
func (b *Block) Text() string {
	var sb strings.Builder
	for _, r := range b.refs {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// Concat returns a new Block whose references are the concatenation of b
// and other's, and whose sensitivity is their union.
func (b *Block) Concat(other *Block) *Block {
	refs := make([]ContentReference, 0, len(b.refs)+len(other.refs))
	refs = append(refs, b.refs...)
	refs = append(refs, other.refs...)
	return newBlock(refs, b.sensitivity.Union(other.sensitivity))
}

// Location returns the location of the first non-synthetic character in
// the block, or the zero Location and false if the block is empty or
// entirely synthetic.
func (b *Block) Location() (srcloc.Location, bool) {
	for _, r := range b.refs {
		if r.runeLen() == 0 {
			continue
		}
		if !r.IsSynthetic() {
			return r.Location(), true
		}
	}
	return srcloc.Location{}, false
}

// Span returns a Span covering the whole block.
func (b *Block) Span() Span {
	return Span{block: b, offset: 0, end: b.RuneLen()}
}

// refForOffset returns the index of the reference containing logical
// rune offset idx, and the rune offset within that reference. idx must be
// in [0, RuneLen()).
func (b *Block) refForOffset(idx int) (refIdx, within int) {
	// prefix is sorted; find the last entry <= idx.
	i := sort.Search(len(b.prefix), func(i int) bool { return b.prefix[i] > idx }) - 1
	if i < 0 {
		i = 0
	}
	if i >= len(b.refs) {
		i = len(b.refs) - 1
	}
	return i, idx - b.prefix[i]
}

// runeAt returns the rune and its location at logical offset idx.
func (b *Block) runeAt(idx int) (rune, srcloc.Location) {
	refIdx, within := b.refForOffset(idx)
	ref := b.refs[refIdx]
	if ref.kind == evalConstant {
		r := ref.constant.RuneAt(within)
		loc := ref.constant.Location()
		if !loc.IsSynthetic() {
			if pos, ok := loc.Position(); ok {
				pos.Column += within
				loc = srcloc.Real(pos)
			}
		}
		return r, loc
	}
	// Derived references (variable/substitution results) are rare inside a
	// Span — Spans are only built over source-text Blocks — but handle
	// them for completeness by indexing into the flattened text.
	text := []rune(ref.Text())
	return text[within], ref.Location()
}
