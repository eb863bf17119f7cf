package eval

import (
	"strconv"

	"github.com/gnumake-go/mkexpr/internal/ast"
	"github.com/gnumake-go/mkexpr/internal/content"
	"github.com/gnumake-go/mkexpr/internal/vars"
)

// evalCall implements `$(call name,arg1,arg2,...)`: name is evaluated to
// find the target variable, each argument is evaluated, and then the
// target's body is evaluated with $(1), $(2), ... bound to the argument
// texts for the duration of that one evaluation. Bindings are pushed onto
// e.overlay rather than written into the database, so nested calls each
// get their own scope and nothing leaks once the call returns.
func (e *Evaluator) evalCall(node *ast.Node, depth int) (*content.Block, error) {
	nameBlock, err := e.evalArg(node, 0, depth)
	if err != nil {
		return nil, err
	}
	sens := nameBlock.Sensitivity()

	argBlocks := make([]*content.Block, 0, len(node.Children)-1)
	for _, a := range node.Children[1:] {
		ab, err := e.eval(a, depth)
		if err != nil {
			return nil, err
		}
		sens = sens.Union(ab.Sensitivity())
		argBlocks = append(argBlocks, ab)
	}

	bindings := make(map[vars.VariableName]*content.Block, len(argBlocks))
	for i, ab := range argBlocks {
		bindings[e.db.InternVariableName(strconv.Itoa(i+1))] = ab
	}

	e.pushOverlay(bindings)
	value, varSens, err := e.derefVariable(nameBlock.Text(), depth+1)
	e.popOverlay()
	if err != nil {
		return nil, err
	}

	sens = sens.Union(varSens)
	ref := content.NewVariableReference(nameBlock, value)
	return content.NewBlock(sens, []content.ContentReference{ref}), nil
}

// evalForeach implements `$(foreach var,list,text)`: text is evaluated
// once per word of list, with var bound to that word, and the results are
// joined with single spaces.
func (e *Evaluator) evalForeach(node *ast.Node, depth int) (*content.Block, error) {
	varBlock, err := e.evalArg(node, 0, depth)
	if err != nil {
		return nil, err
	}
	listBlock, err := e.evalArg(node, 1, depth)
	if err != nil {
		return nil, err
	}
	sens := varBlock.Sensitivity().Union(listBlock.Sensitivity())
	id := e.db.InternVariableName(varBlock.Text())

	words := splitWords(listBlock.Text())
	results := make([]string, 0, len(words))
	for _, w := range words {
		e.pushOverlay(map[vars.VariableName]*content.Block{id: constBlock(w, nil)})
		textBlock, err := e.evalArg(node, 2, depth)
		e.popOverlay()
		if err != nil {
			return nil, err
		}
		sens = sens.Union(textBlock.Sensitivity())
		results = append(results, textBlock.Text())
	}
	return constBlock(joinWords(results), sens), nil
}
