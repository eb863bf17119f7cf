package eval

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gnumake-go/mkexpr/internal/ast"
	"github.com/gnumake-go/mkexpr/internal/content"
)

// splitWords splits on runs of whitespace, matching GNU Make's definition
// of a "word". strings.Fields already treats any run of Unicode
// whitespace as a single separator, which is sufficient here — no
// library in the pack offers a dedicated word-splitter, so stdlib is the
// right tool for what is ordinary language-level string handling rather
// than a domain concern.
func splitWords(s string) []string {
	return strings.Fields(s)
}

func joinWords(words []string) string {
	return strings.Join(words, " ")
}

// evalArg evaluates node.Children[i] under depth.
func (e *Evaluator) evalArg(node *ast.Node, i, depth int) (*content.Block, error) {
	return e.eval(node.Children[i], depth)
}

func (e *Evaluator) evalStrip(node *ast.Node, depth int) (*content.Block, error) {
	arg, err := e.evalArg(node, 0, depth)
	if err != nil {
		return nil, err
	}
	return constBlock(joinWords(splitWords(arg.Text())), arg.Sensitivity()), nil
}

func (e *Evaluator) evalWords(node *ast.Node, depth int) (*content.Block, error) {
	arg, err := e.evalArg(node, 0, depth)
	if err != nil {
		return nil, err
	}
	count := len(splitWords(arg.Text()))
	return constBlock(strconv.Itoa(count), arg.Sensitivity()), nil
}

func (e *Evaluator) evalWord(node *ast.Node, depth int) (*content.Block, error) {
	idxBlock, err := e.evalArg(node, 0, depth)
	if err != nil {
		return nil, err
	}
	listBlock, err := e.evalArg(node, 1, depth)
	if err != nil {
		return nil, err
	}
	sens := idxBlock.Sensitivity().Union(listBlock.Sensitivity())
	n, err := strconv.Atoi(strings.TrimSpace(idxBlock.Text()))
	if err != nil || n < 1 {
		// Real GNU Make fatals on a non-positive index; this engine
		// reports an empty word instead, since mkerror has no dedicated
		// sentinel for it and $(word) is a supplemented builtin.
		return constBlock("", sens), nil
	}
	words := splitWords(listBlock.Text())
	if n > len(words) {
		return constBlock("", sens), nil
	}
	return constBlock(words[n-1], sens), nil
}

func (e *Evaluator) evalFirstword(node *ast.Node, depth int) (*content.Block, error) {
	arg, err := e.evalArg(node, 0, depth)
	if err != nil {
		return nil, err
	}
	words := splitWords(arg.Text())
	if len(words) == 0 {
		return constBlock("", arg.Sensitivity()), nil
	}
	return constBlock(words[0], arg.Sensitivity()), nil
}

func (e *Evaluator) evalWordlist(node *ast.Node, depth int) (*content.Block, error) {
	startBlock, err := e.evalArg(node, 0, depth)
	if err != nil {
		return nil, err
	}
	endBlock, err := e.evalArg(node, 1, depth)
	if err != nil {
		return nil, err
	}
	listBlock, err := e.evalArg(node, 2, depth)
	if err != nil {
		return nil, err
	}
	sens := startBlock.Sensitivity().Union(endBlock.Sensitivity()).Union(listBlock.Sensitivity())
	start, errS := strconv.Atoi(strings.TrimSpace(startBlock.Text()))
	end, errE := strconv.Atoi(strings.TrimSpace(endBlock.Text()))
	words := splitWords(listBlock.Text())
	if errS != nil || errE != nil || start < 1 || end < start {
		return constBlock("", sens), nil
	}
	if start > len(words) {
		return constBlock("", sens), nil
	}
	if end > len(words) {
		end = len(words)
	}
	return constBlock(joinWords(words[start-1:end]), sens), nil
}

func (e *Evaluator) evalSort(node *ast.Node, depth int) (*content.Block, error) {
	arg, err := e.evalArg(node, 0, depth)
	if err != nil {
		return nil, err
	}
	words := splitWords(arg.Text())
	sort.Strings(words)
	deduped := words[:0:0]
	for i, w := range words {
		if i == 0 || w != words[i-1] {
			deduped = append(deduped, w)
		}
	}
	return constBlock(joinWords(deduped), arg.Sensitivity()), nil
}
