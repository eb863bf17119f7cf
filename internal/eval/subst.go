package eval

import (
	"strings"

	"github.com/gnumake-go/mkexpr/internal/ast"
	"github.com/gnumake-go/mkexpr/internal/content"
)

// percentMatch checks word against a GNU Make `%`-pattern. A pattern with
// no `%` only matches itself exactly. A pattern with one `%` matches any
// word sharing its literal prefix and suffix, and stem is the text the
// `%` stood for.
func percentMatch(pattern, word string) (stem string, ok bool) {
	idx := strings.IndexByte(pattern, '%')
	if idx < 0 {
		if pattern == word {
			return "", true
		}
		return "", false
	}
	prefix, suffix := pattern[:idx], pattern[idx+1:]
	if len(word) < len(prefix)+len(suffix) {
		return "", false
	}
	if !strings.HasPrefix(word, prefix) || !strings.HasSuffix(word, suffix) {
		return "", false
	}
	return word[len(prefix) : len(word)-len(suffix)], true
}

// applyPercent substitutes stem for the `%` in replacement, or returns
// replacement unchanged if it has no `%`.
func applyPercent(replacement, stem string) string {
	idx := strings.IndexByte(replacement, '%')
	if idx < 0 {
		return replacement
	}
	return replacement[:idx] + stem + replacement[idx+1:]
}

// doSubref implements `$(var:key=replacement)` — fully, unlike the
// original's stubbed do_subref (see DESIGN.md). A key with no `%` is
// treated as a suffix match, equivalent to `%key=%replacement` (GNU
// Make's documented shorthand for this construct).
func doSubref(value, key, replacement string) string {
	if !strings.Contains(key, "%") {
		key = "%" + key
		replacement = "%" + replacement
	}
	words := splitWords(value)
	out := make([]string, len(words))
	for i, w := range words {
		if stem, ok := percentMatch(key, w); ok {
			out[i] = applyPercent(replacement, stem)
		} else {
			out[i] = w
		}
	}
	return joinWords(out)
}

func (e *Evaluator) evalSubst(node *ast.Node, depth int) (*content.Block, error) {
	from, err := e.evalArg(node, 0, depth)
	if err != nil {
		return nil, err
	}
	to, err := e.evalArg(node, 1, depth)
	if err != nil {
		return nil, err
	}
	text, err := e.evalArg(node, 2, depth)
	if err != nil {
		return nil, err
	}
	sens := from.Sensitivity().Union(to.Sensitivity()).Union(text.Sensitivity())
	result := strings.ReplaceAll(text.Text(), from.Text(), to.Text())
	return constBlock(result, sens), nil
}

func (e *Evaluator) evalPatsubst(node *ast.Node, depth int) (*content.Block, error) {
	pattern, err := e.evalArg(node, 0, depth)
	if err != nil {
		return nil, err
	}
	replacement, err := e.evalArg(node, 1, depth)
	if err != nil {
		return nil, err
	}
	text, err := e.evalArg(node, 2, depth)
	if err != nil {
		return nil, err
	}
	sens := pattern.Sensitivity().Union(replacement.Sensitivity()).Union(text.Sensitivity())
	words := splitWords(text.Text())
	out := make([]string, len(words))
	for i, w := range words {
		if stem, ok := percentMatch(pattern.Text(), w); ok {
			out[i] = applyPercent(replacement.Text(), stem)
		} else {
			out[i] = w
		}
	}
	return constBlock(joinWords(out), sens), nil
}

// evalFilter implements both `$(filter pattern,text)` and
// `$(filter-out pattern,text)`: pattern is itself a space-separated list
// of patterns, and a word is kept (filter) or dropped (filter-out) if it
// matches any one of them.
func (e *Evaluator) evalFilter(node *ast.Node, depth int, out bool) (*content.Block, error) {
	patternBlock, err := e.evalArg(node, 0, depth)
	if err != nil {
		return nil, err
	}
	textBlock, err := e.evalArg(node, 1, depth)
	if err != nil {
		return nil, err
	}
	sens := patternBlock.Sensitivity().Union(textBlock.Sensitivity())
	patterns := splitWords(patternBlock.Text())
	var kept []string
	for _, w := range splitWords(textBlock.Text()) {
		matched := false
		for _, p := range patterns {
			if _, ok := percentMatch(p, w); ok {
				matched = true
				break
			}
		}
		if matched != out {
			kept = append(kept, w)
		}
	}
	return constBlock(joinWords(kept), sens), nil
}

// evalSubstitutionReference implements `$(var:key=replacement)`. Per
// ast/mod.rs, variable is evaluated as a subexpression to obtain a name,
// and that name is dereferenced as a true variable reference
// (contributing name-interning sensitivity, like VariableReference);
// doSubref substitutes over the dereferenced value. Key and replacement
// are plain subexpressions.
func (e *Evaluator) evalSubstitutionReference(node *ast.Node, depth int) (*content.Block, error) {
	variableNameExpr, err := e.evalArg(node, 0, depth)
	if err != nil {
		return nil, err
	}
	keyBlock, err := e.evalArg(node, 1, depth)
	if err != nil {
		return nil, err
	}
	replacementBlock, err := e.evalArg(node, 2, depth)
	if err != nil {
		return nil, err
	}

	varValue, varSens, err := e.derefVariable(variableNameExpr.Text(), depth)
	if err != nil {
		return nil, err
	}

	sens := variableNameExpr.Sensitivity().Union(varSens).Union(keyBlock.Sensitivity()).Union(replacementBlock.Sensitivity())
	substituted := doSubref(varValue.Text(), keyBlock.Text(), replacementBlock.Text())
	resultValue := constBlock(substituted, sens)

	ref := content.NewSubstitutionReference(variableNameExpr, keyBlock, replacementBlock, resultValue)
	return content.NewBlock(sens, []content.ContentReference{ref}), nil
}

func (e *Evaluator) evalFindstring(node *ast.Node, depth int) (*content.Block, error) {
	find, err := e.evalArg(node, 0, depth)
	if err != nil {
		return nil, err
	}
	text, err := e.evalArg(node, 1, depth)
	if err != nil {
		return nil, err
	}
	sens := find.Sensitivity().Union(text.Sensitivity())
	if strings.Contains(text.Text(), find.Text()) {
		return constBlock(find.Text(), sens), nil
	}
	return constBlock("", sens), nil
}
