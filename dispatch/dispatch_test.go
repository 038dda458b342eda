package dispatch

import "testing"

func normalizeNoop(s string) string { return s }

func TestTokenizeSimpleTag(t *testing.T) {
	toks := Tokenize(`<b class="x">hi</b>`, Options{NormalizeAttrs: normalizeNoop})
	want := []Token{
		{Kind: Tag, Name: "b", Attrs: ` class="x"`},
		{Kind: CharacterData, Data: "hi"},
		{Kind: EndTag, Name: "b"},
		{Kind: EOF},
	}
	assertTokensEqual(t, toks, want)
}

func TestTokenizeSelfClosing(t *testing.T) {
	toks := Tokenize(`<br/>after`, Options{NormalizeAttrs: normalizeNoop})
	want := []Token{
		{Kind: Tag, Name: "br", SelfClosing: true},
		{Kind: CharacterData, Data: "after"},
		{Kind: EOF},
	}
	assertTokensEqual(t, toks, want)
}

func TestTokenizeLowercasesName(t *testing.T) {
	toks := Tokenize(`<DIV>x</DIV>`, Options{NormalizeAttrs: normalizeNoop})
	if toks[0].Name != "div" || toks[2].Name != "div" {
		t.Fatalf("expected lowercased names, got %+v", toks)
	}
}

func TestTokenizeRejectsDisallowedTag(t *testing.T) {
	toks := Tokenize(`<script>x</script>`, Options{
		Allowed:        map[string]bool{"div": true},
		NormalizeAttrs: normalizeNoop,
	})
	if toks[0].Kind != CharacterData || toks[0].Data != "&lt;script&gt;x" {
		t.Fatalf("expected rejected tag to degrade to text, got %+v", toks[0])
	}
}

func TestTokenizeNonMatchingChunkBecomesText(t *testing.T) {
	toks := Tokenize(`<1 2 3>`, Options{NormalizeAttrs: normalizeNoop})
	if toks[0].Kind != CharacterData || toks[0].Data != "&lt;1 2 3&gt;" {
		t.Fatalf("expected literal text with escaped delimiters, got %+v", toks[0])
	}
}

func TestTokenizeProcessingCallbackMutatesAttrs(t *testing.T) {
	toks := Tokenize(`<b id="{{x}}">`, Options{
		NormalizeAttrs: normalizeNoop,
		ProcessingCallback: func(attrs *string) {
			*attrs = ` id="resolved"`
		},
	})
	if toks[0].Attrs != ` id="resolved"` {
		t.Fatalf("processing callback did not take effect: %+v", toks[0])
	}
}

func TestTokenizeEscapesUnbalancedGT(t *testing.T) {
	toks := Tokenize(`<b>a>b</b>`, Options{NormalizeAttrs: normalizeNoop})
	if toks[1].Data != "a&gt;b" {
		t.Fatalf("expected escaped trailing text, got %+v", toks[1])
	}
}

func assertTokensEqual(t *testing.T, got, want []Token) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%+v)", len(got), len(want), got)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("token[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
