package engine

import "testing"

func TestTemplateClosesThoroughly(t *testing.T) {
	got := balance(t, "<p><template><b>x</template>y</p>")
	want := "<p><template><b>x</b></template>y</p>"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStyleInsideTableIsHeadLegal(t *testing.T) {
	got := balance(t, "<table><style>.x{}</style><tr><td>y</td></tr></table>")
	want := "<table><style>.x{}</style><tbody><tr><td>y</td></tr></tbody></table>"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLinkIsVoidInHead(t *testing.T) {
	got := balance(t, `<p><link href="x.css">y</p>`)
	want := `<p><link href="x.css">y</p>`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
