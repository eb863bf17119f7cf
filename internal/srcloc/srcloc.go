// Package srcloc provides the provenance primitives every other package in
// this module builds on: a source position, a location that is either a
// real position or the synthetic sentinel, and a located string that pairs
// text with its location.
package srcloc

import "fmt"

// Position is a 1-based file/line/column triple.
type Position struct {
	File   string
	Line   int
	Column int
}

// String renders the position as "file:line:col".
func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Location is either a real Position or the Synthetic sentinel. Synthetic
// locations are produced for characters injected by line-continuation
// folding and must never be mistaken for real provenance.
type Location struct {
	pos       Position
	synthetic bool
}

// Real builds a Location at the given position.
func Real(pos Position) Location {
	return Location{pos: pos}
}

// Synthetic is the sentinel location for injected characters.
var Synthetic = Location{synthetic: true}

// IsSynthetic reports whether this location carries no real provenance.
func (l Location) IsSynthetic() bool {
	return l.synthetic
}

// Position returns the underlying position and whether it is real.
func (l Location) Position() (Position, bool) {
	if l.synthetic {
		return Position{}, false
	}
	return l.pos, true
}

// String renders the location, or "<synthetic>" if it carries no position.
func (l Location) String() string {
	if l.synthetic {
		return "<synthetic>"
	}
	return l.pos.String()
}

// Marker is a Location captured at the start of a parsed construct — every
// AstNode carries one.
type Marker struct {
	Inner Location
}

// LocatedString is a contiguous run of text together with its origin. It is
// immutable: once constructed, its text and location never change. Indexing
// and slicing operate on runes, not bytes, so that column numbers and
// offsets stay meaningful for any UTF-8-clean input.
type LocatedString struct {
	text  string
	runes []rune
	loc   Location
}

// NewLocatedString builds a LocatedString anchored at loc.
func NewLocatedString(text string, loc Location) LocatedString {
	return LocatedString{text: text, runes: []rune(text), loc: loc}
}

// SyntheticChar builds a single-character LocatedString with no file
// origin, used for the space injected by line-continuation folding.
func SyntheticChar(r rune) LocatedString {
	return LocatedString{text: string(r), runes: []rune{r}, loc: Synthetic}
}

// Text returns the underlying text.
func (l LocatedString) Text() string {
	return l.text
}

// Location returns the origin of this text.
func (l LocatedString) Location() Location {
	return l.loc
}

// RuneLen returns the length of Text in runes.
func (l LocatedString) RuneLen() int {
	return len(l.runes)
}

// IsEmpty reports whether Text is empty.
func (l LocatedString) IsEmpty() bool {
	return len(l.runes) == 0
}

// RuneAt returns the rune at the given rune offset.
func (l LocatedString) RuneAt(i int) rune {
	return l.runes[i]
}

// Slice returns the sub-LocatedString covering rune offsets [lo, hi). The
// column of the result, if real, is advanced by lo runes.
func (l LocatedString) Slice(lo, hi int) LocatedString {
	sub := l.runes[lo:hi]
	if l.loc.synthetic || lo == 0 {
		return LocatedString{text: string(sub), runes: sub, loc: l.loc}
	}
	pos, ok := l.loc.Position()
	if !ok {
		return LocatedString{text: string(sub), runes: sub, loc: l.loc}
	}
	pos.Column += lo
	return LocatedString{text: string(sub), runes: sub, loc: Real(pos)}
}
