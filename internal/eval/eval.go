// Package eval implements the evaluator: it walks an AST built by
// internal/astparse against a Database and produces a content.Block
// carrying both the resulting text and the sensitivity set of variables
// that influenced it.
package eval

import (
	"github.com/golang/glog"

	"github.com/gnumake-go/mkexpr/internal/ast"
	"github.com/gnumake-go/mkexpr/internal/content"
	"github.com/gnumake-go/mkexpr/internal/mkerror"
	"github.com/gnumake-go/mkexpr/internal/srcloc"
	"github.com/gnumake-go/mkexpr/internal/vars"
)

// DefaultRecursionLimit is the depth at which variable dereferencing
// gives up and reports mkerror.ErrRecursionLimit.
const DefaultRecursionLimit = 1000

// Evaluator walks an ast.Node against a Database. It is not safe for
// concurrent use: this is a single-threaded evaluation engine, and
// $(eval ...) mutating the Database mid-walk would make concurrent use
// unsound regardless.
type Evaluator struct {
	db      Database
	limit   int
	overlay []map[vars.VariableName]*content.Block
}

// New builds an Evaluator with the given recursion limit (0 selects
// DefaultRecursionLimit).
func New(db Database, recursionLimit int) *Evaluator {
	if recursionLimit <= 0 {
		recursionLimit = DefaultRecursionLimit
	}
	return &Evaluator{db: db, limit: recursionLimit}
}

// Evaluate evaluates node against e's Database.
func (e *Evaluator) Evaluate(node *ast.Node) (*content.Block, error) {
	return e.eval(node, 0)
}

// eval dispatches on node.Type, mirroring AstNode::eval_internal's match
// over AstChildren.
func (e *Evaluator) eval(node *ast.Node, depth int) (*content.Block, error) {
	glog.V(2).Infof("eval: node type=%v depth=%d", node.Type, depth)

	switch node.Type {
	case ast.Constant:
		return node.Fields.ConstantValue, nil

	case ast.Concat:
		return e.evalConcat(node, depth)

	case ast.VariableReference:
		return e.evalVariableReference(node, depth)

	case ast.SubstitutionReference:
		return e.evalSubstitutionReference(node, depth)

	case ast.Strip:
		return e.evalStrip(node, depth)
	case ast.Words:
		return e.evalWords(node, depth)
	case ast.Word:
		return e.evalWord(node, depth)
	case ast.Firstword:
		return e.evalFirstword(node, depth)
	case ast.Wordlist:
		return e.evalWordlist(node, depth)
	case ast.Sort:
		return e.evalSort(node, depth)

	case ast.Subst:
		return e.evalSubst(node, depth)
	case ast.Patsubst:
		return e.evalPatsubst(node, depth)
	case ast.Filter:
		return e.evalFilter(node, depth, false)
	case ast.FilterOut:
		return e.evalFilter(node, depth, true)
	case ast.Findstring:
		return e.evalFindstring(node, depth)

	case ast.If:
		return e.evalIf(node, depth)
	case ast.Or:
		return e.evalOr(node, depth)
	case ast.And:
		return e.evalAnd(node, depth)

	case ast.Eval:
		return e.evalEval(node, depth)

	case ast.Value:
		return e.evalValue(node, depth)
	case ast.Origin:
		return e.evalOrigin(node, depth)
	case ast.Flavor:
		return e.evalFlavor(node, depth)

	case ast.Call:
		return e.evalCall(node, depth)
	case ast.Foreach:
		return e.evalForeach(node, depth)

	case ast.Unimplemented:
		return nil, mkerror.Atf(node.Marker.Inner, mkerror.ErrUnimplementedFunction, "%s", node.Fields.Name)

	default:
		return nil, mkerror.Atf(node.Marker.Inner, mkerror.ErrUnknownFunction, "unrecognized node type %v", node.Type)
	}
}

func (e *Evaluator) evalConcat(node *ast.Node, depth int) (*content.Block, error) {
	var refs []content.ContentReference
	sens := vars.Set{}
	for _, child := range node.Children {
		b, err := e.eval(child, depth)
		if err != nil {
			return nil, err
		}
		refs = append(refs, b.Refs()...)
		sens = sens.Union(b.Sensitivity())
	}
	return content.NewBlock(sens, refs), nil
}

// evalVariableReference evaluates `$x`/`$(name)`/`${name}`: the name is
// evaluated, interned, and added to the sensitivity set unconditionally —
// even if no variable by that name is ever defined.
func (e *Evaluator) evalVariableReference(node *ast.Node, depth int) (*content.Block, error) {
	nameBlock, err := e.eval(node.Children[0], depth)
	if err != nil {
		return nil, err
	}
	value, varSens, err := e.derefVariable(nameBlock.Text(), depth)
	if err != nil {
		return nil, err
	}
	sens := nameBlock.Sensitivity().Union(varSens)
	ref := content.NewVariableReference(nameBlock, value)
	return content.NewBlock(sens, []content.ContentReference{ref}), nil
}

// derefVariable interns name, unconditionally marks it sensitive, and if
// a variable is defined under it, clones the variable's body out of the
// database and evaluates the clone. The Database must never be held
// borrowed across this recursive call, since evaluating the clone may
// itself run $(eval ...) and replace the very record we read Ast() from.
func (e *Evaluator) derefVariable(name string, depth int) (*content.Block, vars.Set, error) {
	if depth >= e.limit {
		return nil, nil, mkerror.At(srcloc.Synthetic, mkerror.ErrRecursionLimit)
	}
	id := e.db.InternVariableName(name)
	sens := vars.NewSet(id)

	if v, ok := e.lookupOverlay(id); ok {
		return v, sens.Union(v.Sensitivity()), nil
	}

	rec, ok := e.db.GetVariable(id)
	if !ok {
		return content.Empty(), sens, nil
	}
	body := rec.Ast().Clone()
	value, err := e.eval(body, depth+1)
	if err != nil {
		return nil, nil, err
	}
	return value, sens.Union(value.Sensitivity()), nil
}

func (e *Evaluator) lookupOverlay(id vars.VariableName) (*content.Block, bool) {
	for i := len(e.overlay) - 1; i >= 0; i-- {
		if v, ok := e.overlay[i][id]; ok {
			return v, true
		}
	}
	return nil, false
}

func (e *Evaluator) pushOverlay(bindings map[vars.VariableName]*content.Block) {
	e.overlay = append(e.overlay, bindings)
}

func (e *Evaluator) popOverlay() {
	e.overlay = e.overlay[:len(e.overlay)-1]
}

// constBlock wraps computed text (the result of a builtin function, not
// a literal slice of source) as a synthetic-location Block.
func constBlock(text string, sens vars.Set) *content.Block {
	ref := content.NewConstant(srcloc.NewLocatedString(text, srcloc.Synthetic))
	return content.NewBlock(sens, []content.ContentReference{ref})
}
