package functions

import (
	"github.com/gnumake-go/mkexpr/internal/ast"
	"github.com/gnumake-go/mkexpr/internal/srcloc"
)

func init() {
	Register(callFunc{})
	Register(foreachFunc{})
}

// callFunc implements `$(call name,args...)`: name names a variable whose
// body is evaluated with $1, $2, ... bound to the remaining arguments.
type callFunc struct{}

func (callFunc) Name() string { return "call" }
func (callFunc) ParseArgs(marker srcloc.Marker, scanner ArgScanner) (*ast.Node, error) {
	args, err := parseFixed("call", scanner, 1, -1)
	if err != nil {
		return nil, err
	}
	return ast.NewCallFunction(marker, args[0], args[1:]), nil
}

// foreachFunc implements `$(foreach var,list,text)`: text is evaluated
// once per whitespace-separated word of list, with var bound to that word,
// and the results joined with single spaces.
type foreachFunc struct{}

func (foreachFunc) Name() string { return "foreach" }
func (foreachFunc) ParseArgs(marker srcloc.Marker, scanner ArgScanner) (*ast.Node, error) {
	args, err := parseFixed("foreach", scanner, 3, 3)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(marker, ast.Foreach, args), nil
}
