// Package toplevel reads the minimal assignment syntax $(eval ...) can
// produce: one or more lines of the form `NAME = value`, `NAME := value`,
// or `NAME ::= value`. It is explicitly not a Makefile parser — no
// rules, recipes, conditionals, or directives — just enough to let
// $(eval ...) mutate the database the way GNU Make's own eval function
// does for simple variable assignments.
package toplevel

import (
	"strings"

	"github.com/gnumake-go/mkexpr/internal/ast"
	"github.com/gnumake-go/mkexpr/internal/astparse"
	"github.com/gnumake-go/mkexpr/internal/content"
	"github.com/gnumake-go/mkexpr/internal/mkerror"
	"github.com/gnumake-go/mkexpr/internal/srcloc"
	"github.com/gnumake-go/mkexpr/internal/vars"
)

// Assignment is one parsed `NAME op value` line.
type Assignment struct {
	Name   string
	Flavor vars.Flavor
	Body   *ast.Node
}

// Parse splits text into lines and parses each as an Assignment. Blank
// lines are skipped. The value half of each assignment, with surrounding
// whitespace trimmed, is parsed with
// the same expression grammar as any other expression text — a simple
// assignment's body is not evaluated here; callers decide when to
// evaluate it (vardb does so immediately, to implement := semantics).
func Parse(text string) ([]Assignment, error) {
	var out []Assignment
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, flavor, valueText, ok := splitAssignment(line)
		if !ok {
			return nil, mkerror.Atf(srcloc.Synthetic, mkerror.ErrMalformedAssignment, "%q", line)
		}
		block := content.FromSource("<eval>", strings.TrimSpace(valueText), content.ComplianceGNU)
		body, err := astparse.ParseExpression(block.Span())
		if err != nil {
			return nil, err
		}
		out = append(out, Assignment{Name: strings.TrimSpace(name), Flavor: flavor, Body: body})
	}
	return out, nil
}

// splitAssignment recognizes the three operators this reader supports,
// longest first so "::=" isn't mistaken for "=" plus stray colons.
func splitAssignment(line string) (name string, flavor vars.Flavor, value string, ok bool) {
	if idx := strings.Index(line, "::="); idx >= 0 {
		return line[:idx], vars.Simple, line[idx+3:], true
	}
	if idx := strings.Index(line, ":="); idx >= 0 {
		return line[:idx], vars.Simple, line[idx+2:], true
	}
	if idx := strings.Index(line, "="); idx >= 0 {
		return line[:idx], vars.Recursive, line[idx+1:], true
	}
	return "", 0, "", false
}
