package functions

import (
	"github.com/gnumake-go/mkexpr/internal/ast"
	"github.com/gnumake-go/mkexpr/internal/srcloc"
)

func init() {
	Register(substFunc{})
	Register(patsubstFunc{})
	Register(filterFunc{})
	Register(filterOutFunc{})
	Register(findstringFunc{})
}

// substFunc implements `$(subst from,to,text)`: replaces every literal
// occurrence of from with to in text.
type substFunc struct{}

func (substFunc) Name() string { return "subst" }
func (substFunc) ParseArgs(marker srcloc.Marker, scanner ArgScanner) (*ast.Node, error) {
	args, err := parseFixed("subst", scanner, 3, 3)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(marker, ast.Subst, args), nil
}

// patsubstFunc implements `$(patsubst pattern,replacement,text)`, the
// whitespace-separated-word %-wildcard sibling of subst.
type patsubstFunc struct{}

func (patsubstFunc) Name() string { return "patsubst" }
func (patsubstFunc) ParseArgs(marker srcloc.Marker, scanner ArgScanner) (*ast.Node, error) {
	args, err := parseFixed("patsubst", scanner, 3, 3)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(marker, ast.Patsubst, args), nil
}

// filterFunc implements `$(filter pattern,text)`: keeps the words of text
// matching any space-separated %-pattern in pattern.
type filterFunc struct{}

func (filterFunc) Name() string { return "filter" }
func (filterFunc) ParseArgs(marker srcloc.Marker, scanner ArgScanner) (*ast.Node, error) {
	args, err := parseFixed("filter", scanner, 2, 2)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(marker, ast.Filter, args), nil
}

// filterOutFunc implements `$(filter-out pattern,text)`, the complement
// of filter.
type filterOutFunc struct{}

func (filterOutFunc) Name() string { return "filter-out" }
func (filterOutFunc) ParseArgs(marker srcloc.Marker, scanner ArgScanner) (*ast.Node, error) {
	args, err := parseFixed("filter-out", scanner, 2, 2)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(marker, ast.FilterOut, args), nil
}

// findstringFunc implements `$(findstring find,text)`: find if find
// appears literally in text, empty otherwise.
type findstringFunc struct{}

func (findstringFunc) Name() string { return "findstring" }
func (findstringFunc) ParseArgs(marker srcloc.Marker, scanner ArgScanner) (*ast.Node, error) {
	args, err := parseFixed("findstring", scanner, 2, 2)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(marker, ast.Findstring, args), nil
}
