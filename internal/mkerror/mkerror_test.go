package mkerror

import (
	"errors"
	"testing"

	"github.com/gnumake-go/mkexpr/internal/srcloc"
)

func TestAtWithNilErrorReturnsNil(t *testing.T) {
	if err := At(srcloc.Synthetic, nil); err != nil {
		t.Errorf("At(loc, nil) = %v, want nil", err)
	}
}

func TestAtWrapsSentinelForErrorsIs(t *testing.T) {
	err := At(srcloc.Synthetic, ErrUnknownFunction)
	if !errors.Is(err, ErrUnknownFunction) {
		t.Error("At should preserve errors.Is against the wrapped sentinel")
	}
}

func TestErrorRendersSyntheticLocationAsJustMessage(t *testing.T) {
	err := At(srcloc.Synthetic, ErrMalformedAssignment)
	if err.Error() != ErrMalformedAssignment.Error() {
		t.Errorf("Error() = %q, want %q (no location prefix for synthetic)", err.Error(), ErrMalformedAssignment.Error())
	}
}

func TestErrorRendersRealLocationWithPrefix(t *testing.T) {
	loc := srcloc.Real(srcloc.Position{File: "a.mk", Line: 3, Column: 5})
	err := At(loc, ErrUnterminatedVariable)
	want := "a.mk:3:5: " + ErrUnterminatedVariable.Error()
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestAtfFormatsDetailAndPreservesSentinel(t *testing.T) {
	err := Atf(srcloc.Synthetic, ErrExtraArguments, "%s accepts at most %d", "strip", 1)
	if !errors.Is(err, ErrExtraArguments) {
		t.Error("Atf should preserve errors.Is against the sentinel")
	}
	want := ErrExtraArguments.Error() + ": strip accepts at most 1"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestUnwrapExposesSentinel(t *testing.T) {
	err := At(srcloc.Synthetic, ErrRecursionLimit)
	le, ok := err.(*LocatedError)
	if !ok {
		t.Fatalf("At should return a *LocatedError, got %T", err)
	}
	if le.Unwrap() != ErrRecursionLimit {
		t.Errorf("Unwrap() = %v, want ErrRecursionLimit", le.Unwrap())
	}
}
