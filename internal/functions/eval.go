package functions

import (
	"github.com/gnumake-go/mkexpr/internal/ast"
	"github.com/gnumake-go/mkexpr/internal/srcloc"
)

func init() {
	Register(evalFunc{})
}

// evalFunc implements `$(eval text)`: text is evaluated, then reparsed as
// top-level assignments against the database. It always produces an
// empty Block. Unlike every other builtin here, eval's single argument
// runs to the enclosing reference's close delimiter without splitting on
// commas — GNU Make treats the whole body, commas included, as one
// argument (e.g. `$(eval x := a,b)` is not an arity error).
type evalFunc struct{}

func (evalFunc) Name() string { return "eval" }
func (evalFunc) ParseArgs(marker srcloc.Marker, scanner ArgScanner) (*ast.Node, error) {
	arg, _, err := scanner.NextArg(false)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(marker, ast.Eval, []*ast.Node{arg}), nil
}
