package engine

import "testing"

func TestPClosesOnBlockStart(t *testing.T) {
	got := balance(t, "<p>x<div>y</div>")
	want := "<p>x</p><div>y</div>"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBlockEndTagClosesImpliedChildren(t *testing.T) {
	got := balance(t, "<div><p>x</div>")
	want := "<div><p>x</p></div>"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHeadingReplacesOpenHeading(t *testing.T) {
	got := balance(t, "<h1>a<h2>b</h2>")
	want := "<h1>a</h1><h2>b</h2>"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestVoidElementSelfCloses(t *testing.T) {
	got := balance(t, "<p>a<br>b</p>")
	want := "<p>a<br>b</p>"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHeadLegalTagInsideBody(t *testing.T) {
	got := balance(t, "<p>a<style>.x{}</style>b</p>")
	want := "<p>a<style>.x{}</style>b</p>"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
