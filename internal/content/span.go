package content

import (
	"github.com/gnumake-go/mkexpr/internal/srcloc"
)

// CompareResult is the outcome of comparing a Span's content against a
// literal needle.
type CompareResult int

const (
	// CompareOK means the needle is a prefix of the span's content.
	CompareOK CompareResult = iota
	// CompareIncomplete means the span's content is a strict prefix of the
	// needle — there may be more to match if more input arrives.
	CompareIncomplete
	// CompareError means a mismatching character was found.
	CompareError
)

// SplitErrorKind classifies why split_at_position1 refused to split.
type SplitErrorKind int

const (
	// SplitErrorEmptyMatch means the predicate matched at offset 0, so the
	// required minimum-one-character prefix could not be produced.
	SplitErrorEmptyMatch SplitErrorKind = iota
)

// Span is a half-open logical window [offset, end) over a Block's rune
// stream. It is cheap to copy and carries a segment cursor that is
// re-derived whenever the window is adjusted, per spec's
// revalidate_offset operation; At and Segments locate references through
// the block's own offsets and do not read the cursor.
type Span struct {
	block  *Block
	offset int
	end    int

	// cursor: segIdx/within describe where `offset` falls in block.refs.
	segIdx int
	within int
}

// revalidate recomputes the segment cursor for the current offset by
// re-walking the reference list from the start, exactly as 's
// revalidate_offset operation is described.
func (s *Span) revalidate() {
	if s.offset >= s.block.RuneLen() {
		s.segIdx = len(s.block.refs)
		s.within = 0
		return
	}
	s.segIdx, s.within = s.block.refForOffset(s.offset)
}

// RevalidateOffset re-derives the segment cursor after external code has
// adjusted Offset/End directly.
func (s *Span) RevalidateOffset() {
	s.revalidate()
}

// Len returns the span's length in logical characters.
func (s Span) Len() int {
	return s.end - s.offset
}

// IsEmpty reports whether the span covers no characters.
func (s Span) IsEmpty() bool {
	return s.end <= s.offset
}

// Slice returns a new Span over [s.offset+lo, s.offset+hi), both relative
// to the span's own offset. Use SliceFrom to slice to the span's end.
func (s Span) Slice(lo, hi int) Span {
	out := Span{block: s.block, offset: s.offset + lo, end: s.offset + hi}
	out.revalidate()
	return out
}

// SliceFrom returns a new Span over [s.offset+lo, s.end).
func (s Span) SliceFrom(lo int) Span {
	return s.Slice(lo, s.Len())
}

// At returns the rune and its source location at logical index i within
// the span (0-based, relative to the span's own offset).
func (s Span) At(i int) (rune, srcloc.Location) {
	return s.block.runeAt(s.offset + i)
}

// IterElements returns a range-over-func iterator yielding runes in
// logical order.
func (s Span) IterElements(yield func(rune) bool) {
	for i := 0; i < s.Len(); i++ {
		r, _ := s.At(i)
		if !yield(r) {
			return
		}
	}
}

// IterIndices returns a range-over-func iterator yielding (logical_index,
// rune) pairs.
func (s Span) IterIndices(yield func(int, rune) bool) {
	for i := 0; i < s.Len(); i++ {
		r, _ := s.At(i)
		if !yield(i, r) {
			return
		}
	}
}

// Runes materializes the span's content as a rune slice.
func (s Span) Runes() []rune {
	out := make([]rune, s.Len())
	for i := range out {
		out[i], _ = s.At(i)
	}
	return out
}

// String materializes the span's content as a string.
func (s Span) String() string {
	return string(s.Runes())
}

// SplitAtPosition scans for the first rune satisfying pred and returns
// (matching_tail, prefix_before_match) — note the spec's unusual ordering.
// If no rune satisfies pred, matchingTail is the empty span at the end and
// prefixBeforeMatch is the whole span.
func (s Span) SplitAtPosition(pred func(rune) bool) (matchingTail, prefixBeforeMatch Span) {
	for i := 0; i < s.Len(); i++ {
		r, _ := s.At(i)
		if pred(r) {
			return s.Slice(i, s.Len()), s.Slice(0, i)
		}
	}
	return s.Slice(s.Len(), s.Len()), s.Slice(0, s.Len())
}

// SplitAtPosition1 behaves like SplitAtPosition but fails if the matched
// prefix would be empty (the predicate matched at offset 0).
func (s Span) SplitAtPosition1(pred func(rune) bool, kind SplitErrorKind) (matchingTail, prefixBeforeMatch Span, err error) {
	tail, prefix := s.SplitAtPosition(pred)
	if prefix.IsEmpty() {
		return Span{}, Span{}, splitErr(kind)
	}
	return tail, prefix, nil
}

func splitErr(kind SplitErrorKind) error {
	switch kind {
	case SplitErrorEmptyMatch:
		return errEmptyMatch
	default:
		return errEmptyMatch
	}
}

// Compare compares the span's content against needle rune-by-rune.
func (s Span) Compare(needle string) CompareResult {
	return compareWith(s, needle, false)
}

// CompareNoCase is Compare, case-insensitively.
func (s Span) CompareNoCase(needle string) CompareResult {
	return compareWith(s, needle, true)
}

func compareWith(s Span, needle string, foldCase bool) CompareResult {
	nr := []rune(needle)
	n := s.Len()
	for i, want := range nr {
		if i >= n {
			return CompareIncomplete
		}
		got, _ := s.At(i)
		if foldCase {
			got = foldRune(got)
			want = foldRune(want)
		}
		if got != want {
			return CompareError
		}
	}
	return CompareOK
}

func foldRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r - 'A' + 'a'
	}
	return r
}

// Location returns the location of the first non-synthetic character at
// or after the span's start, or false if the span is empty or entirely
// synthetic.
func (s Span) Location() (srcloc.Location, bool) {
	for i := 0; i < s.Len(); i++ {
		r, loc := s.At(i)
		_ = r
		if !loc.IsSynthetic() {
			return loc, true
		}
	}
	return srcloc.Location{}, false
}

// Segments yields the physical Located-String runs within the span: the
// contiguous maximal runs of the underlying block's references that don't
// cross a synthetic character, clipped to the span's bounds.
func (s Span) Segments(yield func(srcloc.LocatedString) bool) {
	if s.IsEmpty() {
		return
	}
	startIdx, startWithin := s.block.refForOffset(s.offset)
	remaining := s.Len()
	idx := startIdx
	within := startWithin
	for remaining > 0 && idx < len(s.block.refs) {
		ref := s.block.refs[idx]
		avail := ref.runeLen() - within
		take := avail
		if take > remaining {
			take = remaining
		}
		if take > 0 {
			var ls srcloc.LocatedString
			if ref.kind == evalConstant {
				ls = ref.constant.Slice(within, within+take)
			} else {
				ls = srcloc.NewLocatedString(string([]rune(ref.Text())[within:within+take]), ref.Location())
			}
			if !yield(ls) {
				return
			}
		}
		remaining -= take
		idx++
		within = 0
	}
}

// SegmentSlice materializes Segments into a slice, for callers that need
// random access rather than streaming iteration.
func (s Span) SegmentSlice() []srcloc.LocatedString {
	var out []srcloc.LocatedString
	s.Segments(func(ls srcloc.LocatedString) bool {
		out = append(out, ls)
		return true
	})
	return out
}

// TrimRight returns a Span with trailing runes satisfying pred removed.
func (s Span) TrimRight(pred func(rune) bool) Span {
	n := s.Len()
	for n > 0 {
		r, _ := s.At(n - 1)
		if !pred(r) {
			break
		}
		n--
	}
	return s.Slice(0, n)
}

// TrimLeft returns a Span with leading runes satisfying pred removed.
func (s Span) TrimLeft(pred func(rune) bool) Span {
	i := 0
	n := s.Len()
	for i < n {
		r, _ := s.At(i)
		if !pred(r) {
			break
		}
		i++
	}
	return s.Slice(i, n)
}

// HasPrefix reports whether the span's content starts with prefix.
func (s Span) HasPrefix(prefix string) bool {
	return s.Compare(prefix) != CompareError && s.Len() >= len([]rune(prefix))
}

// IndexRune returns the logical index of the first occurrence of r at or
// after start, or -1.
func (s Span) IndexRune(start int, r rune) int {
	for i := start; i < s.Len(); i++ {
		got, _ := s.At(i)
		if got == r {
			return i
		}
	}
	return -1
}

// errEmptyMatch is returned by SplitAtPosition1 when the match is empty.
var errEmptyMatch = &emptyMatchError{}

type emptyMatchError struct{}

func (*emptyMatchError) Error() string { return "split_at_position1: empty match" }
