package eval

import (
	"github.com/gnumake-go/mkexpr/internal/ast"
	"github.com/gnumake-go/mkexpr/internal/vars"
)

// VariableRecord exposes a stored variable's body and flavor.
type VariableRecord interface {
	// Ast returns the variable's body. Implementations must return a
	// value the evaluator is free to mutate via Clone — the borrow
	// discipline the evaluator follows requires it never hold a reference
	// into the database across a recursive sub-evaluation, since
	// evaluating that very body may itself call $(eval ...) and replace
	// this record.
	Ast() *ast.Node
	Flavor() vars.Flavor
}

// Database is the collaborator the evaluator reads and mutates variables
// through. internal/vardb is the concrete implementation this repo
// ships; the variable-name interner itself is an external collaborator,
// so any conforming store may be plugged in here.
type Database interface {
	// InternVariableName returns the VariableName for name, assigning a
	// fresh one if name has never been seen.
	InternVariableName(name string) vars.VariableName
	// VariableName looks up an already-interned name without assigning a
	// new one.
	VariableName(name string) (vars.VariableName, bool)
	// GetVariable returns the record stored for name, if any.
	GetVariable(name vars.VariableName) (VariableRecord, bool)
	// SetVariable stores or replaces the record for name.
	SetVariable(name vars.VariableName, flavor vars.Flavor, body *ast.Node)
	// ReparseTopLevel parses text as top-level assignments and applies
	// them to the database — the engine's one non-idempotent, mutating
	// construct, reached through $(eval ...).
	ReparseTopLevel(text string) error
}
