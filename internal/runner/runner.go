// Package runner orchestrates the parse -> evaluate -> render pipeline:
// the CLI-facing equivalent of the teacher's parse -> format -> write
// pipeline, generalized from rewriting Makefile text to evaluating
// expression text against a variable database.
package runner

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/gnumake-go/mkexpr/internal/astparse"
	"github.com/gnumake-go/mkexpr/internal/config"
	"github.com/gnumake-go/mkexpr/internal/content"
	"github.com/gnumake-go/mkexpr/internal/eval"
	"github.com/gnumake-go/mkexpr/internal/vardb"
	"github.com/gnumake-go/mkexpr/internal/vars"
	"github.com/gnumake-go/mkexpr/pkg/diff"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitMismatch = 1
	ExitError    = 2
)

// Options configures the runner behavior.
type Options struct {
	// Files holds paths whose entire contents are evaluated as a single
	// expression each, mirroring the teacher's per-file handling.
	Files []string
	// Expressions holds expression text supplied directly (the -e flag
	// equivalent), evaluated in addition to any Files.
	Expressions []string
	// VarsFile, if set, is a path to a file of NAME=value/NAME:=value
	// assignments (internal/toplevel's grammar) loaded into the database
	// before any expression is evaluated.
	VarsFile string
	// ShowSensitivity prints the sorted sensitivity set alongside each
	// result.
	ShowSensitivity bool
	// Diff prints a unified diff between an expression's source text and
	// its evaluated result instead of the bare result.
	Diff bool
	// Check exits ExitMismatch if any expression's evaluated text
	// differs from its source text (i.e. the expression was not already
	// fully literal), without printing anything on success.
	Check bool
	// Trace evaluates the expression twice against the same database and
	// diffs the two results, surfacing the non-idempotence $(eval ...)
	// can introduce (spec §4.E/§5/§9).
	Trace bool

	ConfigPath string
	Quiet      bool
	Verbose    bool
	Stdout     io.Writer
	Stderr     io.Writer
}

// Run evaluates every requested expression and returns a process exit
// code.
func Run(opts *Options) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		writeErr(opts.Stderr, "mkexpr: %v\n", err)
		return ExitError
	}

	db := vardb.New(cfg.Engine.RecursionLimit)
	if opts.VarsFile != "" {
		src, err := os.ReadFile(opts.VarsFile)
		if err != nil {
			writeErr(opts.Stderr, "mkexpr: reading vars file %s: %v\n", opts.VarsFile, err)
			return ExitError
		}
		if err := db.ReparseTopLevel(string(src)); err != nil {
			writeErr(opts.Stderr, "mkexpr: loading vars file %s: %v\n", opts.VarsFile, err)
			return ExitError
		}
	}

	exitCode := ExitOK

	if len(opts.Files) == 0 && len(opts.Expressions) == 0 {
		code := runStdin(opts, cfg, db)
		if code > exitCode {
			exitCode = code
		}
		return exitCode
	}

	for _, expr := range opts.Expressions {
		code := runExpr(opts, cfg, db, "<expr>", expr)
		if code > exitCode {
			exitCode = code
		}
	}
	for _, path := range opts.Files {
		code := runFile(opts, cfg, db, path)
		if code > exitCode {
			exitCode = code
		}
	}
	return exitCode
}

func runStdin(opts *Options, cfg *config.Config, db *vardb.DB) int {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		writeErr(opts.Stderr, "mkexpr: reading stdin: %v\n", err)
		return ExitError
	}
	return runExpr(opts, cfg, db, "<stdin>", string(src))
}

func runFile(opts *Options, cfg *config.Config, db *vardb.DB, path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		writeErr(opts.Stderr, "mkexpr: %v\n", err)
		return ExitError
	}
	if opts.Verbose {
		writeErr(opts.Stderr, "%s\n", path)
	}
	return runExpr(opts, cfg, db, path, string(src))
}

// runExpr evaluates one expression's source text against db and renders
// the result per opts.
func runExpr(opts *Options, cfg *config.Config, db *vardb.DB, label, src string) int {
	compliance := content.ComplianceGNU
	if cfg.Engine.Compliance == "posix" {
		compliance = content.CompliancePOSIX
	}
	block := content.FromSource(label, src, compliance)

	node, err := astparse.ParseExpression(block.Span())
	if err != nil {
		writeErr(opts.Stderr, "mkexpr: %s: %v\n", label, err)
		return ExitError
	}

	ev := eval.New(db, cfg.Engine.RecursionLimit)
	result, err := ev.Evaluate(node)
	if err != nil {
		writeErr(opts.Stderr, "mkexpr: %s: %v\n", label, err)
		return ExitError
	}
	text := result.Text()

	if opts.Trace {
		second, err := ev.Evaluate(node)
		if err != nil {
			writeErr(opts.Stderr, "mkexpr: %s: %v\n", label, err)
			return ExitError
		}
		d := diff.Unified(label, text, second.Text())
		if d == "" {
			if !opts.Quiet {
				writeOut(opts.Stdout, "no change across re-evaluation\n")
			}
			return ExitOK
		}
		writeOut(opts.Stdout, d)
		return ExitMismatch
	}

	if opts.Check {
		if text != src {
			if !opts.Quiet {
				writeErr(opts.Stderr, "%s\n", label)
			}
			return ExitMismatch
		}
		return ExitOK
	}

	if opts.Diff {
		d := diff.Unified(label, src, text)
		if d != "" {
			writeOut(opts.Stdout, d)
			return ExitMismatch
		}
		return ExitOK
	}

	writeOut(opts.Stdout, text+"\n")
	if opts.ShowSensitivity {
		writeOut(opts.Stdout, "sensitivity: "+renderSensitivity(db, result.Sensitivity())+"\n")
	}
	return ExitOK
}

// renderSensitivity renders a sensitivity set as a sorted, comma
// separated list of variable names, using db to resolve each interned
// id back to its text.
func renderSensitivity(db *vardb.DB, set vars.Set) string {
	if len(set) == 0 {
		return "(none)"
	}
	names := make([]string, 0, len(set))
	for id := range set {
		names = append(names, db.Name(id))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// writeOut writes to stdout.
func writeOut(w io.Writer, s string) {
	fmt.Fprint(w, s)
}

// writeErr formats and writes to stderr.
func writeErr(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
