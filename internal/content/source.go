package content

import (
	"github.com/gnumake-go/mkexpr/internal/srcloc"
)

// Compliance selects how many trailing backslashes before a newline
// trigger a line-continuation fold.
type Compliance int

const (
	// ComplianceGNU folds only on an odd-length run of backslashes
	// immediately preceding a newline; an even-length run is a sequence of
	// literal escaped backslashes and does not continue the line.
	ComplianceGNU Compliance = iota
	// CompliancePOSIX folds on any run of one or more trailing backslashes.
	CompliancePOSIX
)

// FromSource builds a Block representing the folded logical view of raw
// Makefile-style expression text. Every `\` immediately
// followed by `\n` (subject to the compliance mode's backslash-count rule)
// is suppressed along with any leading horizontal whitespace on the
// continuation line, and replaced by one synthetic space reference. Every
// surviving character keeps its original file/line/column.
func FromSource(file, src string, compliance Compliance) *Block {
	b := &Builder{}
	runes := []rune(src)
	n := len(runes)

	line, col := 1, 1
	var seg []rune
	segLine, segCol := line, col

	flush := func() {
		if len(seg) > 0 {
			b.Push(NewConstant(srcloc.NewLocatedString(string(seg),
				srcloc.Real(srcloc.Position{File: file, Line: segLine, Column: segCol}))))
			seg = nil
		}
	}
	appendRune := func(r rune) {
		if len(seg) == 0 {
			segLine, segCol = line, col
		}
		seg = append(seg, r)
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	i := 0
	for i < n {
		if runes[i] == '\\' {
			j := i
			for j < n && runes[j] == '\\' {
				j++
			}
			runLen := j - i
			if j < n && runes[j] == '\n' {
				fold, literal := foldDecision(runLen, compliance)
				if fold {
					for k := 0; k < literal; k++ {
						appendRune('\\')
					}
					flush()
					// consume the fold-triggering backslash and the newline.
					line++
					col = 1
					i = j + 1
					for i < n && (runes[i] == ' ' || runes[i] == '\t') {
						i++
						col++
					}
					b.Push(NewConstant(srcloc.SyntheticChar(' ')))
					segLine, segCol = line, col
					continue
				}
			}
			// Not a fold: the whole run is literal text. Consume it in one
			// step so a later backslash in the run isn't re-examined as the
			// start of its own (shorter, possibly odd) run.
			for k := 0; k < runLen; k++ {
				appendRune('\\')
			}
			i = j
			continue
		}
		appendRune(runes[i])
		i++
	}
	flush()
	return b.Build(nil)
}

// foldDecision reports whether a backslash run of the given length,
// immediately followed by a newline, triggers a fold, and how many of its
// backslashes are literal (kept) text preceding the fold point.
func foldDecision(runLen int, compliance Compliance) (fold bool, literal int) {
	if compliance == CompliancePOSIX {
		return true, runLen - 1
	}
	if runLen%2 == 1 {
		return true, (runLen - 1) / 2
	}
	return false, 0
}
