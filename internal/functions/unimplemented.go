package functions

import (
	"github.com/gnumake-go/mkexpr/internal/ast"
	"github.com/gnumake-go/mkexpr/internal/srcloc"
)

func init() {
	for _, name := range []string{"shell", "error", "warning", "info"} {
		Register(unimplementedFunc{name: name})
	}
}

// unimplementedFunc registers a recognized builtin name this engine does
// not evaluate, so the tokenizer/parser still dispatch it as a function
// call rather than treating it as a literal variable name, and the
// evaluator can report a precise "unimplemented function" error instead
// of silently misbehaving. shell needs a process-execution collaborator;
// error/warning/info need the top-level reader's abort/continue policy —
// both are out of scope for this engine.
type unimplementedFunc struct{ name string }

func (u unimplementedFunc) Name() string { return u.name }
func (u unimplementedFunc) ParseArgs(marker srcloc.Marker, scanner ArgScanner) (*ast.Node, error) {
	args, err := scanAll(scanner)
	if err != nil {
		return nil, err
	}
	return ast.NewUnimplemented(marker, u.name, args), nil
}
