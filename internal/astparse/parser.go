// Package astparse implements the AST parser, grounded
// line-for-line on parse_ast/variable_reference_start/parse_var_ref/
// potential_function/non_function_internal/accumulate_reference_content
// in _examples/original_source/src/parsers/ast/mod.rs.
package astparse

import (
	"errors"
	"fmt"

	"github.com/golang/glog"

	"github.com/gnumake-go/mkexpr/internal/ast"
	"github.com/gnumake-go/mkexpr/internal/content"
	"github.com/gnumake-go/mkexpr/internal/functions"
	"github.com/gnumake-go/mkexpr/internal/mkerror"
	"github.com/gnumake-go/mkexpr/internal/srcloc"
	"github.com/gnumake-go/mkexpr/internal/token"
)

// Parser drives a single pass over a content.Span, producing one ast.Node.
// It owns the shared, destructively-consumed Tokenizer, mirroring the
// original's `&mut TokenStream` threaded through every state-machine
// function.
type Parser struct {
	span content.Span
	tok  *token.Tokenizer
}

// New builds a Parser over span.
func New(span content.Span) *Parser {
	return &Parser{span: span, tok: token.New(span, functions.IsRegistered)}
}

// ParseExpression parses span into a single ast.Node.
func ParseExpression(span content.Span) (*ast.Node, error) {
	return New(span).Parse()
}

// ParseRecipeLine is the hook a recipe-line reader (an external
// collaborator this package doesn't implement) calls to parse a single
// recipe expression: identical to ParseExpression, except an
// unterminated variable reference is reported as
// mkerror.ErrRecipeExpected, since in recipe-line context that marks a
// place a command was expected and none was found. Grounded on
// original_source/src/parsers/recipe_line.rs.
func ParseRecipeLine(span content.Span) (*ast.Node, error) {
	node, err := ParseExpression(span)
	if err == nil {
		return node, nil
	}
	var le *mkerror.LocatedError
	if errors.As(err, &le) && errors.Is(le.Err, mkerror.ErrUnterminatedVariable) {
		return nil, mkerror.At(le.Loc, mkerror.ErrRecipeExpected)
	}
	return nil, err
}

// Parse runs the top-level loop.
func (p *Parser) Parse() (*ast.Node, error) {
	startLoc, ok := p.span.Location()
	if !ok {
		return ast.NewConstant(srcloc.Marker{Inner: srcloc.Synthetic}, content.Empty()), nil
	}
	marker := srcloc.Marker{Inner: startLoc}

	var parts []*ast.Node
	startIndex := 0
	prevEnd := 0

	for {
		tok, ok := p.tok.Next()
		if !ok {
			break
		}
		glog.V(2).Infof("astparse: top level token %+v", tok)

		if tok.Type == token.VariableReference {
			parts = append(parts, p.constantsFromRange(startIndex, tok.Start)...)

			end, node, err := p.variableReferenceStart(tok.Start, tok.End, tok.Kind)
			if err != nil {
				return nil, err
			}
			parts = append(parts, node)
			startIndex = end
			prevEnd = end
			continue
		}

		if tok.Start != prevEnd {
			glog.V(2).Infof("astparse: token skip from %d to %d, pushing %d..%d", prevEnd, tok.Start, startIndex, prevEnd)
			parts = append(parts, p.constantsFromRange(startIndex, prevEnd)...)
			startIndex = tok.Start
		}
		prevEnd = tok.End
	}

	if startIndex != p.span.Len() {
		parts = append(parts, p.constantsFromRange(startIndex, p.span.Len())...)
	}

	return collapsingConcat(marker, parts), nil
}

// variableReferenceStart handles a freshly-seen VariableReference token
//.
func (p *Parser) variableReferenceStart(tokStart, tokEnd int, kind token.VariableKind) (int, *ast.Node, error) {
	switch kind {
	case token.SingleCharacter:
		ref := p.span.Slice(tokStart, tokEnd)
		dollar := ref.Slice(0, 1)
		name := ref.Slice(1, ref.Len())
		dollarLoc, _ := dollar.Location()
		node := ast.NewVariableReference(srcloc.Marker{Inner: dollarLoc}, collapsingConcat(p.spanMarker(name), p.segmentsToConstants(name)))
		return tokEnd, node, nil

	case token.OpenParen:
		dollarLoc, _ := p.span.Slice(tokStart, tokEnd).Location()
		return p.parseVarRef(tokEnd, srcloc.Marker{Inner: dollarLoc}, token.CloseParen)

	case token.OpenBrace:
		dollarLoc, _ := p.span.Slice(tokStart, tokEnd).Location()
		return p.parseVarRef(tokEnd, srcloc.Marker{Inner: dollarLoc}, token.CloseBrace)

	default: // token.Unterminated: a trailing bare `$` is a literal `$`.
		span := p.span.Slice(tokStart, tokEnd)
		node := collapsingConcat(p.spanMarker(span), p.segmentsToConstants(span))
		return tokEnd, node, nil
	}
}

// parseVarRef handles the content immediately following `$(` or `${`
//.
func (p *Parser) parseVarRef(startIndex int, dollarMarker srcloc.Marker, closeTok token.Type) (int, *ast.Node, error) {
	glog.V(2).Infof("astparse: parsing variable reference starting at %d", startIndex)

	tok, ok := p.tok.Next()
	if !ok {
		return 0, nil, p.errUnterminated(startIndex)
	}
	startMarker := p.locationAt(tok.Start)

	switch {
	case tok.Type == token.BuiltinFunction:
		return p.potentialFunction(startMarker, startIndex, dollarMarker, closeTok, tok.Name)

	case tok.Type == token.VariableReference:
		// This reference immediately dispatches into another reference.
		// Even if that inner reference evaluates to a function name, it is
		// never parsed as a function call.
		var parts []*ast.Node
		end, node, err := p.variableReferenceStart(tok.Start, tok.End, tok.Kind)
		if err != nil {
			return 0, nil, err
		}
		contentMarker := node.Marker
		parts = append(parts, node)

		end, _, err = p.accumulateReferenceContent(end, closeTok, &parts, false)
		if err != nil {
			return 0, nil, err
		}
		return end, ast.NewVariableReference(dollarMarker, collapsingConcat(contentMarker, parts)), nil

	case tok.Type == closeTok:
		glog.V(2).Infof("astparse: variable reference at %d terminated immediately", startIndex)
		return tok.End, ast.NewVariableReference(dollarMarker, ast.NewConstant(srcloc.Marker{Inner: srcloc.Synthetic}, content.Empty())), nil

	default:
		return p.nonFunctionInternal(startMarker, startIndex, dollarMarker, closeTok)
	}
}

// potentialFunction handles the token immediately after a recognized
// builtin-function name.
func (p *Parser) potentialFunction(startMarker srcloc.Marker, startIndex int, dollarMarker srcloc.Marker, closeTok token.Type, funcName string) (int, *ast.Node, error) {
	glog.V(2).Infof("astparse: variable reference at %d might be function %q", startIndex, funcName)

	tok, ok := p.tok.Next()
	if !ok {
		return 0, nil, p.errUnterminated(startIndex)
	}

	switch {
	case tok.Type == token.VariableReference:
		// Looked like a function, but the keyword is actually a prefix of a
		// concatenation involving a nested reference. Slurp it all up as a
		// plain (non-function) variable reference.
		var parts []*ast.Node
		parts = append(parts, p.constantsFromRange(startIndex, tok.Start)...)

		end, node, err := p.variableReferenceStart(tok.Start, tok.End, tok.Kind)
		if err != nil {
			return 0, nil, err
		}
		contentMarker := node.Marker
		parts = append(parts, node)

		end, _, err = p.accumulateReferenceContent(end, closeTok, &parts, false)
		if err != nil {
			return 0, nil, err
		}
		return end, ast.NewVariableReference(dollarMarker, collapsingConcat(contentMarker, parts)), nil

	case tok.Type == token.Whitespace:
		fn, found := functions.Lookup(funcName)
		if !found {
			return 0, nil, mkerror.At(startMarker.Inner, fmt.Errorf("%w: %s", mkerror.ErrUnknownFunction, funcName))
		}
		scanner := &argScanner{p: p, pos: tok.End, closeTok: closeTok}
		node, err := fn.ParseArgs(startMarker, scanner)
		if err != nil {
			return 0, nil, err
		}
		return scanner.end, node, nil

	case tok.Type == closeTok:
		glog.V(2).Infof("astparse: variable reference at %d is a variable named like a function", startIndex)
		span := p.span.Slice(startIndex, tok.Start)
		node := collapsingConcat(p.spanMarker(span), p.segmentsToConstants(span))
		return tok.End, ast.NewVariableReference(dollarMarker, node), nil

	default:
		glog.V(2).Infof("astparse: variable reference at %d was not a function", startIndex)
		return p.nonFunctionInternal(startMarker, startIndex, dollarMarker, closeTok)
	}
}

// nonFunctionInternal handles a plain variable reference whose content is
// not a function call. It also recognizes the $(var:key=replacement)
// substitution-reference form (spec §3/§4.E, §6).
func (p *Parser) nonFunctionInternal(startMarker srcloc.Marker, startIndex int, dollarMarker srcloc.Marker, closeTok token.Type) (int, *ast.Node, error) {
	glog.V(2).Infof("astparse: non-function variable reference at %d", startIndex)
	var parts []*ast.Node
	end, _, err := p.accumulateReferenceContent(startIndex, closeTok, &parts, false)
	if err != nil {
		return 0, nil, err
	}

	sub, ok, err := p.trySubstitutionReference(dollarMarker, startIndex, end)
	if err != nil {
		return 0, nil, err
	}
	if ok {
		return end, sub, nil
	}

	return end, ast.NewVariableReference(dollarMarker, collapsingConcat(startMarker, parts)), nil
}

// trySubstitutionReference recognizes $(var:key=replacement) over the
// reference interior already delimited by accumulateReferenceContent:
// [startIndex, end-1), end-1 excluding the single-character close
// delimiter. Per spec §6 the split is made only when a ':' and a later
// '=' sit at the reference's top level; nested $(...)/${...} references
// (and any bare balanced parens/braces) are opaque to the scan, so a
// colon or equals written inside a nested reference's name can never be
// mistaken for substitution syntax.
func (p *Parser) trySubstitutionReference(dollarMarker srcloc.Marker, startIndex, end int) (*ast.Node, bool, error) {
	inner := p.span.Slice(startIndex, end-1)
	colonIdx, eqIdx, ok := substitutionSplit(inner)
	if !ok {
		return nil, false, nil
	}

	variable, err := ParseExpression(inner.Slice(0, colonIdx))
	if err != nil {
		return nil, false, err
	}
	key, err := ParseExpression(inner.Slice(colonIdx+1, eqIdx))
	if err != nil {
		return nil, false, err
	}
	replacement, err := ParseExpression(inner.Slice(eqIdx+1, inner.Len()))
	if err != nil {
		return nil, false, err
	}

	glog.V(2).Infof("astparse: recognized substitution reference at %d", startIndex)
	return ast.NewSubstitutionReference(dollarMarker, variable, key, replacement), true, nil
}

// substitutionSplit scans span for the first depth-0 ':' and, if one is
// found, the first depth-0 '=' after it. '(' / '{' / ')' / '}' maintain an
// independent nesting depth, the same balance rule as the
// function-argument helper in spec §4.D.5; a ':' or '=' below the top
// level does not count.
func substitutionSplit(span content.Span) (colonIdx, eqIdx int, ok bool) {
	depth := 0
	colonIdx, eqIdx = -1, -1
	span.IterIndices(func(i int, ch rune) bool {
		switch ch {
		case '(', '{':
			depth++
		case ')', '}':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 && colonIdx < 0 {
				colonIdx = i
			}
		case '=':
			if depth == 0 && colonIdx >= 0 && eqIdx < 0 {
				eqIdx = i
			}
		}
		return true
	})
	return colonIdx, eqIdx, colonIdx >= 0 && eqIdx >= 0
}

// accumulateReferenceContent scans tokens until it sees closeTok, or (if
// stopOnComma) a top-level Comma, pushing constants/nested references into
// parts as it goes. It reports whether it stopped at a
// comma (sawComma) as opposed to the closing delimiter.
func (p *Parser) accumulateReferenceContent(startIndex int, closeTok token.Type, parts *[]*ast.Node, stopOnComma bool) (end int, sawComma bool, err error) {
	glog.V(2).Infof("astparse: accumulating reference content from %d", startIndex)
	prevEnd := startIndex

	for {
		tok, ok := p.tok.Next()
		if !ok {
			return 0, false, p.errUnterminated(startIndex)
		}

		if tok.Type == token.VariableReference {
			*parts = append(*parts, p.constantsFromRange(startIndex, tok.Start)...)
			end, node, err := p.variableReferenceStart(tok.Start, tok.End, tok.Kind)
			if err != nil {
				return 0, false, err
			}
			*parts = append(*parts, node)
			startIndex = end
			prevEnd = end
			continue
		}

		if stopOnComma && tok.Type == token.Comma {
			*parts = append(*parts, p.constantsFromRange(startIndex, tok.Start)...)
			return tok.End, true, nil
		}

		if tok.Type == closeTok {
			*parts = append(*parts, p.constantsFromRange(startIndex, tok.Start)...)
			return tok.End, false, nil
		}

		glog.V(2).Infof("astparse: accumulating token %+v", tok)
		if tok.Start != prevEnd {
			*parts = append(*parts, p.constantsFromRange(startIndex, prevEnd)...)
			startIndex = tok.Start
		}
		prevEnd = tok.End
	}
}

// argScanner adapts accumulateReferenceContent to functions.ArgScanner,
// letting a builtin function's ParseArgs pull its comma-separated
// arguments without astparse needing to import functions' call sites, or
// functions needing to import astparse (see DESIGN.md's ArgScanner note).
type argScanner struct {
	p        *Parser
	pos      int
	closeTok token.Type
	end      int
}

func (s *argScanner) NextArg(stopOnComma bool) (*ast.Node, bool, error) {
	var parts []*ast.Node
	end, sawComma, err := s.p.accumulateReferenceContent(s.pos, s.closeTok, &parts, stopOnComma)
	if err != nil {
		return nil, false, err
	}
	s.pos = end
	if !sawComma {
		s.end = end
	}
	marker := s.p.locationAt(s.pos)
	if len(parts) > 0 {
		marker = parts[0].Marker
	}
	return collapsingConcat(marker, parts), sawComma, nil
}

// collapsingConcat mirrors ast::collapsing_concat: zero parts becomes an
// empty Constant, one part is returned unwrapped, more than one becomes a
// Concat.
func collapsingConcat(marker srcloc.Marker, parts []*ast.Node) *ast.Node {
	switch len(parts) {
	case 0:
		return ast.NewConstant(marker, content.Empty())
	case 1:
		return parts[0]
	default:
		return ast.NewConcat(marker, parts)
	}
}

// constantsFromRange slices p.span[lo:hi] and emits one Constant node per
// physical segment, matching the "for segment in ...segments() { push
// constant }" pattern used throughout the Rust original.
func (p *Parser) constantsFromRange(lo, hi int) []*ast.Node {
	if lo >= hi {
		return nil
	}
	return p.segmentsToConstants(p.span.Slice(lo, hi))
}

func (p *Parser) segmentsToConstants(span content.Span) []*ast.Node {
	var nodes []*ast.Node
	span.Segments(func(ls srcloc.LocatedString) bool {
		nodes = append(nodes, ast.NewConstant(srcloc.Marker{Inner: ls.Location()}, content.BlockFromLocatedString(ls)))
		return true
	})
	return nodes
}

func (p *Parser) spanMarker(span content.Span) srcloc.Marker {
	loc, ok := span.Location()
	if !ok {
		return srcloc.Marker{Inner: srcloc.Synthetic}
	}
	return srcloc.Marker{Inner: loc}
}

func (p *Parser) locationAt(idx int) srcloc.Marker {
	if idx >= p.span.Len() {
		return srcloc.Marker{Inner: srcloc.Synthetic}
	}
	loc, ok := p.span.Slice(idx, p.span.Len()).Location()
	if !ok {
		return srcloc.Marker{Inner: srcloc.Synthetic}
	}
	return srcloc.Marker{Inner: loc}
}

func (p *Parser) errUnterminated(startIndex int) error {
	return mkerror.At(p.locationAt(startIndex).Inner, mkerror.ErrUnterminatedVariable)
}
