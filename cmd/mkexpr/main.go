// Package main is the entry point for mkexpr.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gnumake-go/mkexpr/internal/runner"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	check := flag.Bool("check", false, "exit 1 if any expression is not already fully literal")
	diffFlag := flag.Bool("diff", false, "print unified diff between source and evaluated text")
	trace := flag.Bool("trace", false, "diff an expression's evaluation against itself re-evaluated, to surface $(eval ...) non-idempotence")
	varsFile := flag.String("vars", "", "path to a file of NAME=value assignments to preload")
	sensitivity := flag.Bool("sensitivity", false, "print the sensitivity set alongside each result")
	exprFlag := flag.String("e", "", "evaluate a single expression instead of reading files/stdin")
	configPath := flag.String("config", "", "path to config file")
	quiet := flag.Bool("q", false, "suppress informational output")
	verbose := flag.Bool("v", false, "print files as they are processed")
	showVersion := flag.Bool("version", false, "print version and exit")

	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("mkexpr %s (%s) %s\n", version, commit, date)
		return
	}

	var expressions []string
	if *exprFlag != "" {
		expressions = append(expressions, *exprFlag)
	}

	opts := &runner.Options{
		Files:           flag.Args(),
		Expressions:     expressions,
		VarsFile:        *varsFile,
		ShowSensitivity: *sensitivity,
		Check:           *check,
		Diff:            *diffFlag,
		Trace:           *trace,
		ConfigPath:      *configPath,
		Quiet:           *quiet,
		Verbose:         *verbose,
	}

	os.Exit(runner.Run(opts))
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: mkexpr [flags] [files...]

Evaluate GNU Make-compatible variable-expansion expressions. With no
files and no -e, reads one expression from stdin.

Flags:
`)
	flag.PrintDefaults()
}
