package token

import (
	"testing"

	"github.com/gnumake-go/mkexpr/internal/content"
)

func span(s string) content.Span {
	return content.FromSource("t.mk", s, content.ComplianceGNU).Span()
}

func collect(t *testing.T, src string, lookup FunctionNameLookup) []Token {
	t.Helper()
	tok := New(span(src), lookup)
	var out []Token
	for {
		tk, ok := tok.Next()
		if !ok {
			break
		}
		out = append(out, tk)
	}
	return out
}

func TestTokenizeText(t *testing.T) {
	toks := collect(t, "hello", nil)
	if len(toks) != 1 || toks[0].Type != Text {
		t.Fatalf("toks = %+v, want one Text token", toks)
	}
}

func TestTokenizeWhitespace(t *testing.T) {
	toks := collect(t, "a  b", nil)
	wantTypes := []Type{Text, Whitespace, Text}
	if len(toks) != len(wantTypes) {
		t.Fatalf("toks = %+v, want %d tokens", toks, len(wantTypes))
	}
	for i, want := range wantTypes {
		if toks[i].Type != want {
			t.Errorf("toks[%d].Type = %v, want %v", i, toks[i].Type, want)
		}
	}
}

func TestTokenizeDollarOpenParen(t *testing.T) {
	toks := collect(t, "$(foo)", nil)
	if len(toks) < 1 || toks[0].Type != VariableReference || toks[0].Kind != OpenParen {
		t.Fatalf("toks[0] = %+v, want VariableReference/OpenParen", toks[0])
	}
	last := toks[len(toks)-1]
	if last.Type != CloseParen {
		t.Errorf("last token = %+v, want CloseParen", last)
	}
}

func TestTokenizeDollarOpenBrace(t *testing.T) {
	toks := collect(t, "${foo}", nil)
	if toks[0].Kind != OpenBrace {
		t.Fatalf("toks[0].Kind = %v, want OpenBrace", toks[0].Kind)
	}
	if toks[len(toks)-1].Type != CloseBrace {
		t.Errorf("last token = %+v, want CloseBrace", toks[len(toks)-1])
	}
}

func TestTokenizeSingleCharacterVariable(t *testing.T) {
	toks := collect(t, "$x", nil)
	if toks[0].Type != VariableReference || toks[0].Kind != SingleCharacter {
		t.Fatalf("toks[0] = %+v, want VariableReference/SingleCharacter", toks[0])
	}
}

func TestTokenizeUnterminatedDollar(t *testing.T) {
	toks := collect(t, "$", nil)
	if len(toks) != 1 || toks[0].Kind != Unterminated {
		t.Fatalf("toks = %+v, want one Unterminated VariableReference", toks)
	}
}

func TestTokenizeDollarDollarIsLiteralSecondDollar(t *testing.T) {
	toks := collect(t, "$$x", nil)
	if len(toks) < 1 || toks[0].Type != Text {
		t.Fatalf("toks[0] = %+v, want Text", toks[0])
	}
	if toks[0].Start != 1 || toks[0].End != 2 {
		t.Errorf("toks[0] span = [%d,%d), want [1,2)", toks[0].Start, toks[0].End)
	}
}

func TestTokenizeBuiltinFunctionRequiresWhitespaceAfter(t *testing.T) {
	lookup := func(name string) bool { return name == "strip" }

	toks := collect(t, "$(strip  a b)", lookup)
	if toks[1].Type != BuiltinFunction || toks[1].Name != "strip" {
		t.Fatalf("toks[1] = %+v, want BuiltinFunction strip", toks[1])
	}
}

func TestTokenizeBuiltinFunctionWithoutTrailingWhitespaceIsText(t *testing.T) {
	lookup := func(name string) bool { return name == "strip" }

	// "strip)" — the identifier is immediately followed by ')', not
	// whitespace, so it must NOT be recognized as a function call.
	toks := collect(t, "$(strip)", lookup)
	if toks[1].Type != Text {
		t.Fatalf("toks[1] = %+v, want Text (no function dispatch)", toks[1])
	}
}

func TestTokenizeBuiltinFunctionOnlyRecognizedRightAfterOpen(t *testing.T) {
	lookup := func(name string) bool { return name == "strip" }

	// strip appears, but not immediately after $( — it follows a
	// variable reference, so funcContext is false and it's plain text.
	toks := collect(t, "$(x)strip ", lookup)
	for _, tk := range toks {
		if tk.Type == BuiltinFunction {
			t.Fatalf("unexpected BuiltinFunction token outside function context: %+v", tk)
		}
	}
}

func TestTokenizeNilLookupNeverProducesBuiltinFunction(t *testing.T) {
	toks := collect(t, "$(strip a)", nil)
	for _, tk := range toks {
		if tk.Type == BuiltinFunction {
			t.Fatalf("unexpected BuiltinFunction token with nil lookup: %+v", tk)
		}
	}
}

func TestTokenizeComma(t *testing.T) {
	toks := collect(t, "a,b", nil)
	if len(toks) != 3 || toks[1].Type != Comma {
		t.Fatalf("toks = %+v, want Text,Comma,Text", toks)
	}
}

func TestTokenizeEmptySpanYieldsNoTokens(t *testing.T) {
	toks := collect(t, "", nil)
	if len(toks) != 0 {
		t.Fatalf("toks = %+v, want none", toks)
	}
}

func TestTokenizeTokenOffsetsCoverWholeSpan(t *testing.T) {
	src := "$(foo) bar"
	toks := collect(t, src, nil)
	if toks[0].Start != 0 {
		t.Errorf("first token Start = %d, want 0", toks[0].Start)
	}
	last := toks[len(toks)-1]
	if last.End != len([]rune(src)) {
		t.Errorf("last token End = %d, want %d", last.End, len([]rune(src)))
	}
	// Tokens must be contiguous: each token's Start equals the previous
	// token's End.
	for i := 1; i < len(toks); i++ {
		if toks[i].Start != toks[i-1].End {
			t.Errorf("gap between token %d (End=%d) and token %d (Start=%d)",
				i-1, toks[i-1].End, i, toks[i].Start)
		}
	}
}

func FuzzTokenize(f *testing.F) {
	seeds := []string{
		"", "$", "$$", "$(foo)", "${foo}", "$x", "$(strip a b)",
		"a,b,c", "  leading space", "$(a:b=c)", "$(eval x := 1)",
		"text$(var)more,$$",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	lookup := func(name string) bool {
		switch name {
		case "strip", "words", "word", "if", "or", "and", "eval":
			return true
		default:
			return false
		}
	}
	f.Fuzz(func(t *testing.T, src string) {
		sp := content.FromSource("fuzz.mk", src, content.ComplianceGNU).Span()
		tok := New(sp, lookup)

		// Tokens never overlap or go backwards (a `$$` pair legitimately
		// introduces a gap: the first `$` of the pair contributes no
		// token), but the stream must still make forward progress and
		// fully consume the span.
		prevEnd := 0
		for i := 0; i < 100000; i++ {
			tk, ok := tok.Next()
			if !ok {
				break
			}
			if tk.Start < prevEnd {
				t.Fatalf("overlapping token: prevEnd=%d tok=%+v src=%q", prevEnd, tk, src)
			}
			if tk.End <= tk.Start {
				t.Fatalf("non-advancing token %+v on src=%q", tk, src)
			}
			if tk.End > sp.Len() {
				t.Fatalf("token %+v exceeds span length %d, src=%q", tk, sp.Len(), src)
			}
			prevEnd = tk.End
		}
		if prevEnd != sp.Len() {
			t.Fatalf("tokenizer did not consume the whole span: consumed %d of %d, src=%q", prevEnd, sp.Len(), src)
		}
	})
}
