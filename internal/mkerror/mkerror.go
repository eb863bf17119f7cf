// Package mkerror defines the engine's error taxonomy and the
// location-carrying wrapper every parse/eval error is returned through.
// The pattern mirrors the teacher's own fmt.Errorf("...: %w", err) plus
// errors.Is sentinel style in internal/config/loader.go.
package mkerror

import (
	"errors"
	"fmt"

	"github.com/gnumake-go/mkexpr/internal/srcloc"
)

// Sentinel errors, one per taxonomy entry. Check against these
// with errors.Is; a LocatedError always wraps one of them.
var (
	// ErrUnterminatedVariable is returned for an unterminated `$(` or
	// `${` (but never for a bare trailing `$`, which is a literal `$`).
	ErrUnterminatedVariable = errors.New("unterminated variable reference")
	// ErrExtraArguments is returned when a builtin function receives more
	// arguments than it accepts.
	ErrExtraArguments = errors.New("extra arguments to function")
	// ErrInsufficientArguments is returned when a builtin function
	// receives fewer arguments than it requires.
	ErrInsufficientArguments = errors.New("insufficient arguments to function")
	// ErrUnknownFunction is returned for a recognized-call-shape name that
	// matches no registered builtin.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrRecipeExpected marks a construct only valid in recipe context,
	// reported by ParseRecipeLine for an unterminated reference.
	ErrRecipeExpected = errors.New("recipe expected")
	// ErrRecursionLimit is returned when variable dereferencing exceeds
	// the configured recursion limit.
	ErrRecursionLimit = errors.New("recursion limit exceeded")
	// ErrUnimplementedFunction is returned for a builtin the engine
	// recognizes but does not evaluate.
	ErrUnimplementedFunction = errors.New("unimplemented function")
	// ErrMalformedAssignment is returned when $(eval ...) text does not
	// parse as a top-level assignment.
	ErrMalformedAssignment = errors.New("malformed assignment")
)

// LocatedError pairs an error with the source location where it occurred.
type LocatedError struct {
	Loc srcloc.Location
	Err error
}

// Error renders "file:line:col: message", or just the message if Loc
// carries no real position.
func (e *LocatedError) Error() string {
	if e.Loc.IsSynthetic() {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Loc.String(), e.Err.Error())
}

// Unwrap exposes the wrapped sentinel for errors.Is/errors.As.
func (e *LocatedError) Unwrap() error {
	return e.Err
}

// At wraps err with the given location, unless err is already nil.
func At(loc srcloc.Location, err error) error {
	if err == nil {
		return nil
	}
	return &LocatedError{Loc: loc, Err: err}
}

// Atf is At with a formatted detail appended to the sentinel via %w.
func Atf(loc srcloc.Location, sentinel error, format string, args ...any) error {
	return At(loc, fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)))
}
