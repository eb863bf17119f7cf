package eval

import (
	"github.com/gnumake-go/mkexpr/internal/ast"
	"github.com/gnumake-go/mkexpr/internal/content"
)

// evalIf implements `$(if cond,then[,else])`: only the taken branch is
// evaluated, so only the condition's and the taken branch's sensitivities
// are counted — the untaken branch is never looked at and contributes
// nothing.
func (e *Evaluator) evalIf(node *ast.Node, depth int) (*content.Block, error) {
	cond, err := e.evalArg(node, 0, depth)
	if err != nil {
		return nil, err
	}
	if cond.Text() != "" {
		then, err := e.evalArg(node, 1, depth)
		if err != nil {
			return nil, err
		}
		return content.NewBlock(cond.Sensitivity().Union(then.Sensitivity()), then.Refs()), nil
	}
	if len(node.Children) < 3 {
		return constBlock("", cond.Sensitivity()), nil
	}
	els, err := e.evalArg(node, 2, depth)
	if err != nil {
		return nil, err
	}
	return content.NewBlock(cond.Sensitivity().Union(els.Sensitivity()), els.Refs()), nil
}

// evalOr implements `$(or cond1,cond2,...)`: conditions are evaluated in
// order and the walk stops at the first non-empty one. Only the
// conditions actually evaluated contribute to sensitivity.
func (e *Evaluator) evalOr(node *ast.Node, depth int) (*content.Block, error) {
	return e.evalShortCircuit(node, depth, true)
}

// evalAnd implements `$(and cond1,cond2,...)`: conditions are evaluated in
// order and the walk stops at the first empty one.
func (e *Evaluator) evalAnd(node *ast.Node, depth int) (*content.Block, error) {
	return e.evalShortCircuit(node, depth, false)
}

// evalShortCircuit drives both Or (stopOnNonEmpty=true) and And
// (stopOnNonEmpty=false): it evaluates children left to right, stopping
// as soon as one matches the stop condition, and returns that child's
// text (or the last child's, if none stopped it). Sensitivity only
// accumulates over the children actually evaluated.
func (e *Evaluator) evalShortCircuit(node *ast.Node, depth int, stopOnNonEmpty bool) (*content.Block, error) {
	var last *content.Block
	sens := content.Empty().Sensitivity()
	for _, child := range node.Children {
		b, err := e.eval(child, depth)
		if err != nil {
			return nil, err
		}
		sens = sens.Union(b.Sensitivity())
		last = b
		nonEmpty := b.Text() != ""
		if nonEmpty == stopOnNonEmpty {
			return content.NewBlock(sens, b.Refs()), nil
		}
	}
	if last == nil {
		return constBlock("", sens), nil
	}
	return content.NewBlock(sens, last.Refs()), nil
}
