package functions

import (
	"github.com/gnumake-go/mkexpr/internal/ast"
	"github.com/gnumake-go/mkexpr/internal/srcloc"
)

func init() {
	Register(valueFunc{})
	Register(originFunc{})
	Register(flavorFunc{})
}

// valueFunc implements `$(value name)`: the unexpanded body text of the
// named variable.
type valueFunc struct{}

func (valueFunc) Name() string { return "value" }
func (valueFunc) ParseArgs(marker srcloc.Marker, scanner ArgScanner) (*ast.Node, error) {
	args, err := parseFixed("value", scanner, 1, 1)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(marker, ast.Value, args), nil
}

// originFunc implements `$(origin name)`: where the named variable came
// from. This engine reports only "undefined" or "file".
type originFunc struct{}

func (originFunc) Name() string { return "origin" }
func (originFunc) ParseArgs(marker srcloc.Marker, scanner ArgScanner) (*ast.Node, error) {
	args, err := parseFixed("origin", scanner, 1, 1)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(marker, ast.Origin, args), nil
}

// flavorFunc implements `$(flavor name)`: "recursive", "simple", or
// "undefined".
type flavorFunc struct{}

func (flavorFunc) Name() string { return "flavor" }
func (flavorFunc) ParseArgs(marker srcloc.Marker, scanner ArgScanner) (*ast.Node, error) {
	args, err := parseFixed("flavor", scanner, 1, 1)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(marker, ast.Flavor, args), nil
}
