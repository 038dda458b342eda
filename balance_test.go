package htmlbalance

import (
	"strings"
	"testing"

	"github.com/corvidwiki/htmlbalance/errors"
)

func TestBalanceScenarios(t *testing.T) {
	cases := []struct{ in, want string }{
		{"<b>1<i>2</b>3</i>", "<b>1<i>2</i></b><i>3</i>"},
		{"<p><div>x</div></p>", "<p></p><div>x</div><p></p>"},
		{"<table><b>x</b><tr><td>y</td></tr></table>", "<b>x</b><table><tbody><tr><td>y</td></tr></tbody></table>"},
	}
	for _, tc := range cases {
		got, err := Balance(tc.in, nil)
		if err != nil {
			t.Fatalf("Balance(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Balance(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBalanceAllowedElementsDegradesDisallowedTags(t *testing.T) {
	got, err := Balance(`<p>x<script>alert(1)</script>y</p>`, nil, WithAllowedElements("p"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "<script") {
		t.Fatalf("disallowed tag survived: %q", got)
	}
	want := "<p>x&lt;script&gt;alert(1)&lt;/script&gt;y</p>"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWithAllowedElementsRejectsUnsupportedOverlap(t *testing.T) {
	_, err := Balance("<p>x</p>", nil, WithAllowedElements("p", "script"))
	if err == nil {
		t.Fatalf("expected a config error for an allow-list containing an unsupported element")
	}
	cfgErr, ok := err.(*errors.ConfigError)
	if !ok {
		t.Fatalf("got error of type %T, want *errors.ConfigError", err)
	}
	if cfgErr.Code != errors.CodeDisallowedElement {
		t.Fatalf("got code %q, want %q", cfgErr.Code, errors.CodeDisallowedElement)
	}
}

func TestStrictModeRejectsStrayLessThan(t *testing.T) {
	_, err := Balance("1 < 2", nil, WithStrictMode())
	if err == nil {
		t.Fatalf("expected strict mode to reject an unescaped '<'")
	}
}

func TestStrictModeAcceptsWellFormedInput(t *testing.T) {
	got, err := Balance("<p>1 &lt; 2</p>", nil, WithStrictMode())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "<p>1 &lt; 2</p>" {
		t.Fatalf("got %q", got)
	}
}

func TestProcessingCallbackMutatesAttrs(t *testing.T) {
	cb := func(attrs *string, args any) {
		suffix := args.(string)
		*attrs = *attrs + ` data-tag="` + suffix + `"`
	}
	got, err := Balance(`<p class="a">x</p>`, "hi", WithProcessingCallback(cb))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<p class="a" data-tag="hi">x</p>`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
