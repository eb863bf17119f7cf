package eval

import (
	"strings"

	"github.com/gnumake-go/mkexpr/internal/ast"
	"github.com/gnumake-go/mkexpr/internal/content"
	"github.com/gnumake-go/mkexpr/internal/vars"
)

func (e *Evaluator) evalValue(node *ast.Node, depth int) (*content.Block, error) {
	nameBlock, err := e.evalArg(node, 0, depth)
	if err != nil {
		return nil, err
	}
	id := e.db.InternVariableName(nameBlock.Text())
	sens := nameBlock.Sensitivity().Union(vars.NewSet(id))
	rec, ok := e.db.GetVariable(id)
	if !ok {
		return constBlock("", sens), nil
	}
	return constBlock(renderNode(rec.Ast()), sens), nil
}

func (e *Evaluator) evalOrigin(node *ast.Node, depth int) (*content.Block, error) {
	nameBlock, err := e.evalArg(node, 0, depth)
	if err != nil {
		return nil, err
	}
	id := e.db.InternVariableName(nameBlock.Text())
	sens := nameBlock.Sensitivity().Union(vars.NewSet(id))
	// This engine has no command-line/environment/override origin
	// tracking (only ever "file", from a top-level assignment or an
	// $(eval ...)), so origin only distinguishes defined from undefined.
	if _, ok := e.db.GetVariable(id); !ok {
		return constBlock("undefined", sens), nil
	}
	return constBlock("file", sens), nil
}

func (e *Evaluator) evalFlavor(node *ast.Node, depth int) (*content.Block, error) {
	nameBlock, err := e.evalArg(node, 0, depth)
	if err != nil {
		return nil, err
	}
	id := e.db.InternVariableName(nameBlock.Text())
	sens := nameBlock.Sensitivity().Union(vars.NewSet(id))
	rec, ok := e.db.GetVariable(id)
	if !ok {
		return constBlock("undefined", sens), nil
	}
	return constBlock(rec.Flavor().String(), sens), nil
}

// renderNode reconstructs an approximate Make-syntax rendering of an
// unevaluated AST node, for `$(value name)`. It is best-effort, not an
// exact inverse of the parser: every variable reference is rendered in
// `$(...)` form (so `$x` and `${x}` come back as `$(x)`), and a `$$`
// escape, stored as a literal `$`, comes back as a single `$`.
func renderNode(n *ast.Node) string {
	switch n.Type {
	case ast.Constant:
		return n.Fields.ConstantValue.Text()
	case ast.Concat:
		var sb strings.Builder
		for _, c := range n.Children {
			sb.WriteString(renderNode(c))
		}
		return sb.String()
	case ast.VariableReference:
		return "$(" + renderNode(n.Children[0]) + ")"
	case ast.SubstitutionReference:
		return "$(" + renderNode(n.Children[0]) + ":" + renderNode(n.Children[1]) + "=" + renderNode(n.Children[2]) + ")"
	case ast.Call:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = renderNode(c)
		}
		return "$(call " + strings.Join(parts, ",") + ")"
	case ast.Unimplemented:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = renderNode(c)
		}
		return "$(" + n.Fields.Name + " " + strings.Join(parts, ",") + ")"
	default:
		name, ok := builtinKeyword(n.Type)
		if !ok {
			return ""
		}
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = renderNode(c)
		}
		return "$(" + name + " " + strings.Join(parts, ",") + ")"
	}
}

func builtinKeyword(t ast.Type) (string, bool) {
	switch t {
	case ast.Strip:
		return "strip", true
	case ast.Words:
		return "words", true
	case ast.Word:
		return "word", true
	case ast.Eval:
		return "eval", true
	case ast.If:
		return "if", true
	case ast.Firstword:
		return "firstword", true
	case ast.Wordlist:
		return "wordlist", true
	case ast.Sort:
		return "sort", true
	case ast.Or:
		return "or", true
	case ast.And:
		return "and", true
	case ast.Subst:
		return "subst", true
	case ast.Patsubst:
		return "patsubst", true
	case ast.Filter:
		return "filter", true
	case ast.FilterOut:
		return "filter-out", true
	case ast.Findstring:
		return "findstring", true
	case ast.Value:
		return "value", true
	case ast.Origin:
		return "origin", true
	case ast.Flavor:
		return "flavor", true
	case ast.Foreach:
		return "foreach", true
	default:
		return "", false
	}
}
