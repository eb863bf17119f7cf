// Package vars defines the identifiers the rest of the engine uses to name
// Make variables, and the flavor distinction (recursive vs. simple) that
// governs when a variable's body is evaluated. The interner that produces
// VariableName values is specified only by behavior here;
// a concrete implementation lives in internal/vardb.
package vars

import "golang.org/x/exp/maps"

// VariableName is an interned handle for a variable's name. Equal names
// always intern to equal VariableName values.
type VariableName uint32

// Flavor distinguishes how a variable's body is evaluated.
type Flavor int

const (
	// Recursive variables (VAR = value) re-evaluate their body on every
	// dereference.
	Recursive Flavor = iota
	// Simple variables (VAR := value) evaluate their body once, at
	// assignment time, and store the resulting text in place of the AST.
	Simple
)

// String renders the flavor for diagnostics.
func (f Flavor) String() string {
	switch f {
	case Recursive:
		return "recursive"
	case Simple:
		return "simple"
	default:
		return "unknown"
	}
}

// Set is a sensitivity set: the identifiers of every variable whose value
// influenced some piece of evaluated text.
type Set map[VariableName]struct{}

// NewSet builds a Set containing the given names.
func NewSet(names ...VariableName) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Union returns a new Set containing every name in s or other.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	maps.Copy(out, s)
	maps.Copy(out, other)
	return out
}

// Names returns the members of s in no particular order.
func (s Set) Names() []VariableName {
	return maps.Keys(s)
}

// Add inserts name into s, mutating it. Only safe on a Set that has not
// been shared yet (i.e. during construction of a single evaluation's
// sensitivity set).
func (s Set) Add(name VariableName) {
	s[name] = struct{}{}
}

// Contains reports whether name is a member of s.
func (s Set) Contains(name VariableName) bool {
	_, ok := s[name]
	return ok
}
