// Package vardb is the concrete variable store the evaluator reads and
// mutates through internal/eval.Database: a name interner plus a
// map of variable records, shaped like the teacher's own plain-struct,
// explicit-constructor style (internal/config.Config) rather than any
// framework or generic store from the pack — none of the example repos'
// database/cache layers (sqlite, redis, boltdb-style KV stores) fit a
// single-process, single-threaded interned-name table, so this stays
// hand-rolled.
package vardb

import (
	"github.com/golang/glog"

	"github.com/gnumake-go/mkexpr/internal/ast"
	"github.com/gnumake-go/mkexpr/internal/eval"
	"github.com/gnumake-go/mkexpr/internal/srcloc"
	"github.com/gnumake-go/mkexpr/internal/toplevel"
	"github.com/gnumake-go/mkexpr/internal/vars"
)

// Record is the stored form of one variable: its flavor and its body.
// For a Simple-flavor variable, Body is a Constant node holding the
// already-evaluated text; for Recursive, it's the unevaluated expression
// tree, re-walked on every dereference.
type Record struct {
	flavor vars.Flavor
	body   *ast.Node
}

func (r *Record) Ast() *ast.Node    { return r.body }
func (r *Record) Flavor() vars.Flavor { return r.flavor }

// DB is the default eval.Database implementation.
type DB struct {
	names    map[string]vars.VariableName
	byID     []string
	records  map[vars.VariableName]*Record
	// recursionLimit is threaded into the Evaluator ReparseTopLevel
	// builds internally to evaluate Simple-flavor assignments.
	recursionLimit int
}

// New builds an empty DB. recursionLimit bounds the Evaluator used
// internally for := assignments; 0 selects eval.DefaultRecursionLimit.
func New(recursionLimit int) *DB {
	return &DB{
		names:          map[string]vars.VariableName{},
		records:        map[vars.VariableName]*Record{},
		recursionLimit: recursionLimit,
	}
}

func (db *DB) InternVariableName(name string) vars.VariableName {
	if id, ok := db.names[name]; ok {
		return id
	}
	id := vars.VariableName(len(db.byID))
	db.names[name] = id
	db.byID = append(db.byID, name)
	return id
}

func (db *DB) VariableName(name string) (vars.VariableName, bool) {
	id, ok := db.names[name]
	return id, ok
}

// Name returns the text a previously interned VariableName was assigned
// for. Used by diagnostics (e.g. rendering a sensitivity set) that only
// have the interned id.
func (db *DB) Name(id vars.VariableName) string {
	return db.byID[id]
}

func (db *DB) GetVariable(name vars.VariableName) (eval.VariableRecord, bool) {
	rec, ok := db.records[name]
	if !ok {
		return nil, false
	}
	return rec, true
}

func (db *DB) SetVariable(name vars.VariableName, flavor vars.Flavor, body *ast.Node) {
	glog.V(2).Infof("vardb: set %q flavor=%v", db.byID[name], flavor)
	db.records[name] = &Record{flavor: flavor, body: body}
}

// ReparseTopLevel implements $(eval text)'s mutation: text is parsed as
// one or more assignments, and each is applied — a Simple-flavor
// assignment's value is evaluated immediately and frozen as a Constant,
// a Recursive-flavor assignment's body is stored unevaluated.
func (db *DB) ReparseTopLevel(text string) error {
	assignments, err := toplevel.Parse(text)
	if err != nil {
		return err
	}
	ev := eval.New(db, db.recursionLimit)
	for _, a := range assignments {
		id := db.InternVariableName(a.Name)
		switch a.Flavor {
		case vars.Simple:
			value, err := ev.Evaluate(a.Body)
			if err != nil {
				return err
			}
			frozen := ast.NewConstant(srcloc.Marker{Inner: srcloc.Synthetic}, value)
			db.SetVariable(id, vars.Simple, frozen)
		default:
			db.SetVariable(id, vars.Recursive, a.Body)
		}
	}
	return nil
}
