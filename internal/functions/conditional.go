package functions

import (
	"github.com/gnumake-go/mkexpr/internal/ast"
	"github.com/gnumake-go/mkexpr/internal/srcloc"
)

func init() {
	Register(ifFunc{})
	Register(orFunc{})
	Register(andFunc{})
}

// ifFunc implements `$(if cond,then[,else])`.
type ifFunc struct{}

func (ifFunc) Name() string { return "if" }
func (ifFunc) ParseArgs(marker srcloc.Marker, scanner ArgScanner) (*ast.Node, error) {
	args, err := parseFixed("if", scanner, 2, 3)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(marker, ast.If, args), nil
}

// orFunc implements `$(or cond1,cond2,...)`: the first non-empty
// condition's value, short-circuiting (GNU Make semantics).
type orFunc struct{}

func (orFunc) Name() string { return "or" }
func (orFunc) ParseArgs(marker srcloc.Marker, scanner ArgScanner) (*ast.Node, error) {
	args, err := parseFixed("or", scanner, 1, -1)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(marker, ast.Or, args), nil
}

// andFunc implements `$(and cond1,cond2,...)`: the last condition's value
// if all are non-empty, short-circuiting to empty otherwise.
type andFunc struct{}

func (andFunc) Name() string { return "and" }
func (andFunc) ParseArgs(marker srcloc.Marker, scanner ArgScanner) (*ast.Node, error) {
	args, err := parseFixed("and", scanner, 1, -1)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(marker, ast.And, args), nil
}
