package functions

import (
	"github.com/gnumake-go/mkexpr/internal/ast"
	"github.com/gnumake-go/mkexpr/internal/srcloc"
)

func init() {
	Register(stripFunc{})
	Register(wordsFunc{})
	Register(wordFunc{})
	Register(firstwordFunc{})
	Register(wordlistFunc{})
	Register(sortFunc{})
}

// stripFunc implements `$(strip text)`: removes leading and trailing
// whitespace from text and collapses internal runs to single spaces.
type stripFunc struct{}

func (stripFunc) Name() string { return "strip" }
func (stripFunc) ParseArgs(marker srcloc.Marker, scanner ArgScanner) (*ast.Node, error) {
	args, err := parseFixed("strip", scanner, 1, 1)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(marker, ast.Strip, args), nil
}

// wordsFunc implements `$(words text)`: the count of whitespace-separated
// words in text, as a decimal string.
type wordsFunc struct{}

func (wordsFunc) Name() string { return "words" }
func (wordsFunc) ParseArgs(marker srcloc.Marker, scanner ArgScanner) (*ast.Node, error) {
	args, err := parseFixed("words", scanner, 1, 1)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(marker, ast.Words, args), nil
}

// wordFunc implements `$(word n,text)`: the 1-based nth whitespace-
// separated word of text.
type wordFunc struct{}

func (wordFunc) Name() string { return "word" }
func (wordFunc) ParseArgs(marker srcloc.Marker, scanner ArgScanner) (*ast.Node, error) {
	args, err := parseFixed("word", scanner, 2, 2)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(marker, ast.Word, args), nil
}

// firstwordFunc implements `$(firstword text)`.
type firstwordFunc struct{}

func (firstwordFunc) Name() string { return "firstword" }
func (firstwordFunc) ParseArgs(marker srcloc.Marker, scanner ArgScanner) (*ast.Node, error) {
	args, err := parseFixed("firstword", scanner, 1, 1)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(marker, ast.Firstword, args), nil
}

// wordlistFunc implements `$(wordlist s,e,text)`: the inclusive 1-based
// word range [s, e] of text.
type wordlistFunc struct{}

func (wordlistFunc) Name() string { return "wordlist" }
func (wordlistFunc) ParseArgs(marker srcloc.Marker, scanner ArgScanner) (*ast.Node, error) {
	args, err := parseFixed("wordlist", scanner, 3, 3)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(marker, ast.Wordlist, args), nil
}

// sortFunc implements `$(sort text)`: lexicographic sort of text's words
// with duplicates removed, matching GNU Make's own $(sort) semantics.
type sortFunc struct{}

func (sortFunc) Name() string { return "sort" }
func (sortFunc) ParseArgs(marker srcloc.Marker, scanner ArgScanner) (*ast.Node, error) {
	args, err := parseFixed("sort", scanner, 1, 1)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(marker, ast.Sort, args), nil
}
