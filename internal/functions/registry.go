package functions

import (
	"sort"

	"github.com/golang/glog"
)

var registry = map[string]Function{}

// Register adds fn to the registry under fn.Name(). Called from each
// function family's init(), mirroring internal/rules/registry.go's
// RegisterFormatRule.
func Register(fn Function) {
	name := fn.Name()
	if _, exists := registry[name]; exists {
		panic("functions: duplicate registration for " + name)
	}
	registry[name] = fn
	glog.V(2).Infof("functions: registered %q", name)
}

// Lookup returns the function registered under name, if any. The AST
// parser's potential-function step calls this to decide
// whether an identifier immediately inside a variable reference, followed
// by whitespace, is a real function call.
func Lookup(name string) (Function, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// IsRegistered reports whether name is a registered function, without
// returning the Function itself. The tokenizer uses this (via
// token.FunctionNameLookup) to decide whether an identifier at a
// reference's start should become a BuiltinFunction token.
func IsRegistered(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// Names returns every registered function name, sorted, for diagnostics
// and tests.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
