package content

import (
	"testing"
	"unicode"

	"github.com/gnumake-go/mkexpr/internal/srcloc"
)

func block(s string) *Block {
	loc := srcloc.Real(srcloc.Position{File: "a.mk", Line: 1, Column: 1})
	return BlockFromLocatedString(srcloc.NewLocatedString(s, loc))
}

func TestSpanSliceComposition(t *testing.T) {
	b := block("hello world")
	s := b.Span()

	// S.slice(a..b).slice(c..d) == S.slice(a+c..a+d)
	a, bb, c, d := 2, 9, 1, 4
	lhs := s.Slice(a, bb).Slice(c, d)
	rhs := s.Slice(a+c, a+d)

	if lhs.String() != rhs.String() {
		t.Errorf("slice composition mismatch: %q != %q", lhs.String(), rhs.String())
	}
}

func TestSpanSliceFrom(t *testing.T) {
	b := block("hello world")
	s := b.Span()
	if got, want := s.SliceFrom(6).String(), "world"; got != want {
		t.Errorf("SliceFrom(6) = %q, want %q", got, want)
	}
}

func TestSpanLenAndEmpty(t *testing.T) {
	b := block("abc")
	s := b.Span()
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	empty := s.Slice(1, 1)
	if !empty.IsEmpty() {
		t.Error("IsEmpty() = false for a zero-length slice")
	}
}

func TestSpanCompare(t *testing.T) {
	s := block("foobar").Span()
	if got := s.Compare("foo"); got != CompareOK {
		t.Errorf("Compare(foo) = %v, want CompareOK", got)
	}
	if got := block("fo").Span().Compare("foo"); got != CompareIncomplete {
		t.Errorf("Compare(foo) on short span = %v, want CompareIncomplete", got)
	}
	if got := s.Compare("bar"); got != CompareError {
		t.Errorf("Compare(bar) = %v, want CompareError", got)
	}
}

func TestSpanCompareNoCase(t *testing.T) {
	s := block("FOO").Span()
	if got := s.CompareNoCase("foo"); got != CompareOK {
		t.Errorf("CompareNoCase(foo) = %v, want CompareOK", got)
	}
}

func TestSpanHasPrefix(t *testing.T) {
	s := block("foobar").Span()
	if !s.HasPrefix("foo") {
		t.Error("HasPrefix(foo) = false, want true")
	}
	if s.HasPrefix("bar") {
		t.Error("HasPrefix(bar) = true, want false")
	}
}

func TestSpanIndexRune(t *testing.T) {
	s := block("hello").Span()
	if got, want := s.IndexRune(0, 'l'), 2; got != want {
		t.Errorf("IndexRune(0, 'l') = %d, want %d", got, want)
	}
	if got := s.IndexRune(0, 'z'); got != -1 {
		t.Errorf("IndexRune(0, 'z') = %d, want -1", got)
	}
}

func TestSpanSplitAtPosition(t *testing.T) {
	s := block("foo bar").Span()
	tail, prefix := s.SplitAtPosition(func(r rune) bool { return r == ' ' })
	if prefix.String() != "foo" {
		t.Errorf("prefix = %q, want %q", prefix.String(), "foo")
	}
	if tail.String() != " bar" {
		t.Errorf("tail = %q, want %q", tail.String(), " bar")
	}
}

func TestSpanSplitAtPositionNoMatch(t *testing.T) {
	s := block("foo").Span()
	tail, prefix := s.SplitAtPosition(func(r rune) bool { return r == ' ' })
	if prefix.String() != "foo" || !tail.IsEmpty() {
		t.Errorf("no-match split = prefix %q, tail %q", prefix.String(), tail.String())
	}
}

func TestSpanSplitAtPosition1EmptyMatch(t *testing.T) {
	s := block(" foo").Span()
	_, _, err := s.SplitAtPosition1(func(r rune) bool { return r == ' ' }, SplitErrorEmptyMatch)
	if err == nil {
		t.Fatal("expected an error when the predicate matches at offset 0")
	}
}

func TestSpanSplitAtPosition1Success(t *testing.T) {
	s := block("foo bar").Span()
	tail, prefix, err := s.SplitAtPosition1(func(r rune) bool { return r == ' ' }, SplitErrorEmptyMatch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefix.String() != "foo" || tail.String() != " bar" {
		t.Errorf("prefix=%q tail=%q", prefix.String(), tail.String())
	}
}

func TestSpanTrimLeftRight(t *testing.T) {
	s := block("  foo  ").Span()
	trimmed := s.TrimLeft(unicode.IsSpace).TrimRight(unicode.IsSpace)
	if got, want := trimmed.String(), "foo"; got != want {
		t.Errorf("trimmed = %q, want %q", got, want)
	}
}

func TestSpanSegmentsSingleRef(t *testing.T) {
	s := block("hello").Span()
	segs := s.SegmentSlice()
	if len(segs) != 1 || segs[0].Text() != "hello" {
		t.Errorf("segments = %+v, want one segment \"hello\"", segs)
	}
}

func TestSpanSegmentsAcrossMultipleRefs(t *testing.T) {
	loc := srcloc.Real(srcloc.Position{File: "a.mk", Line: 1, Column: 1})
	b := NewBlock(nil, []ContentReference{
		NewConstant(srcloc.NewLocatedString("foo", loc)),
		NewConstant(srcloc.SyntheticChar(' ')),
		NewConstant(srcloc.NewLocatedString("bar", loc)),
	})
	segs := b.Span().SegmentSlice()
	if len(segs) != 3 {
		t.Fatalf("segments count = %d, want 3", len(segs))
	}
	if segs[0].Text() != "foo" || segs[1].Text() != " " || segs[2].Text() != "bar" {
		t.Errorf("segment texts = %q %q %q", segs[0].Text(), segs[1].Text(), segs[2].Text())
	}
}

func TestSpanSegmentsClippedToWindow(t *testing.T) {
	loc := srcloc.Real(srcloc.Position{File: "a.mk", Line: 1, Column: 1})
	b := NewBlock(nil, []ContentReference{
		NewConstant(srcloc.NewLocatedString("foo", loc)),
		NewConstant(srcloc.NewLocatedString("bar", loc)),
	})
	// Window covering just "ob" across the ref boundary.
	sub := b.Span().Slice(2, 4)
	segs := sub.SegmentSlice()
	var got string
	for _, seg := range segs {
		got += seg.Text()
	}
	if got != "ob" {
		t.Errorf("clipped segments joined = %q, want %q", got, "ob")
	}
}

func TestSpanLocationFirstRealPosition(t *testing.T) {
	real := srcloc.Real(srcloc.Position{File: "a.mk", Line: 5, Column: 2})
	b := NewBlock(nil, []ContentReference{
		NewConstant(srcloc.SyntheticChar(' ')),
		NewConstant(srcloc.NewLocatedString("x", real)),
	})
	loc, ok := b.Span().Location()
	if !ok {
		t.Fatal("Location() ok = false")
	}
	pos, _ := loc.Position()
	if pos.Line != 5 || pos.Column != 2 {
		t.Errorf("Location() = %+v, want line 5 col 2", pos)
	}
}

func TestSpanRevalidateAfterManualAdjust(t *testing.T) {
	b := block("hello world")
	s := b.Span()
	s.offset = 6
	s.RevalidateOffset()
	if got, want := s.String(), "world"; got != want {
		t.Errorf("after manual adjust = %q, want %q", got, want)
	}
}
