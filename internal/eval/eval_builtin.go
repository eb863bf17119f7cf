package eval

import (
	"github.com/gnumake-go/mkexpr/internal/ast"
	"github.com/gnumake-go/mkexpr/internal/content"
	"github.com/gnumake-go/mkexpr/internal/mkerror"
)

// evalEval implements `$(eval text)`, the engine's one non-idempotent
// construct: text is evaluated, then reparsed as
// top-level assignments and applied to the database. The result is
// always empty text, but the argument's sensitivity is preserved so a
// trace of an eval's result still shows which variables drove the
// mutation.
func (e *Evaluator) evalEval(node *ast.Node, depth int) (*content.Block, error) {
	arg, err := e.evalArg(node, 0, depth)
	if err != nil {
		return nil, err
	}
	if err := e.db.ReparseTopLevel(arg.Text()); err != nil {
		return nil, mkerror.At(node.Marker.Inner, err)
	}
	return constBlock("", arg.Sensitivity()), nil
}
