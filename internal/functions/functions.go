// Package functions implements the builtin-function registry:
// strip, word, words, firstword, wordlist, sort, if, or, and, eval, value,
// origin, flavor, subst, patsubst, filter, filter-out, findstring, call,
// foreach, plus shell/error/warning/info as recognized-but-unimplemented
// placeholders. Function mirrors FormatRule, and registry.go plus the
// init() registrations in each family file mirror rules/registry.go and
// rules/register.go.
package functions

import (
	"github.com/gnumake-go/mkexpr/internal/ast"
	"github.com/gnumake-go/mkexpr/internal/mkerror"
	"github.com/gnumake-go/mkexpr/internal/srcloc"
)

// ArgScanner is implemented by internal/astparse's unexported argScanner
// adapter around its parser. It is declared here, not imported from
// astparse, so that astparse can depend on functions one-way: the adapter
// satisfies this interface structurally and is passed to
// Function.ParseArgs as an ArgScanner,
// standing in for a concrete *astparse.Parser type that would otherwise
// force an import cycle.
type ArgScanner interface {
	// NextArg scans one function argument. If stopOnComma is true,
	// scanning also stops at a top-level comma (one not nested inside a
	// further variable reference); sawComma reports whether that
	// happened, as opposed to reaching the enclosing reference's closing
	// delimiter. Every builtin-function call in this engine splits all of
	// its top-level commas — see DESIGN.md's Open Question decision on
	// argument arity.
	NextArg(stopOnComma bool) (arg *ast.Node, sawComma bool, err error)
}

// Function is one registered builtin.
type Function interface {
	// Name is the identifier recognized after `$(` / `${` plus whitespace
	//.
	Name() string
	// ParseArgs consumes the call's comma-separated arguments from
	// scanner (positioned just past the function name and the whitespace
	// that confirmed it as a call) and returns the AST node for the call.
	ParseArgs(marker srcloc.Marker, scanner ArgScanner) (*ast.Node, error)
}

// scanAll splits every top-level comma into its own argument.
func scanAll(scanner ArgScanner) ([]*ast.Node, error) {
	var args []*ast.Node
	for {
		arg, sawComma, err := scanner.NextArg(true)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !sawComma {
			return args, nil
		}
	}
}

// checkArity validates a scanned argument list against a function's
// declared bounds. max < 0 means unbounded.
func checkArity(name string, args []*ast.Node, min, max int) error {
	if len(args) < min {
		return mkerror.Atf(srcloc.Synthetic, mkerror.ErrInsufficientArguments, "%s requires at least %d argument(s), got %d", name, min, len(args))
	}
	if max >= 0 && len(args) > max {
		return mkerror.Atf(srcloc.Synthetic, mkerror.ErrExtraArguments, "%s accepts at most %d argument(s), got %d", name, max, len(args))
	}
	return nil
}

// parseFixed scans all arguments and checks them against (min, max),
// the shared shape nearly every builtin in this package uses.
func parseFixed(name string, scanner ArgScanner, min, max int) ([]*ast.Node, error) {
	args, err := scanAll(scanner)
	if err != nil {
		return nil, err
	}
	if err := checkArity(name, args, min, max); err != nil {
		return nil, err
	}
	return args, nil
}
