package tree

import "testing"

func TestAppendAndSerialize(t *testing.T) {
	root := New(HTML, "p", "")
	root.AppendChild(Text("hello "))
	b := New(HTML, "b", ` class="x"`)
	b.AppendChild(Text("world"))
	root.AppendChild(b)

	got := root.Serialize()
	want := `<p>hello <b class="x">world</b></p>`
	if got != want {
		t.Fatalf("Serialize() = %q, want %q", got, want)
	}
}

func TestVoidElementRejectsChildren(t *testing.T) {
	br := New(HTML, "br", "")
	defer func() {
		if recover() == nil {
			t.Fatalf("AppendChild on a void element did not panic")
		}
	}()
	br.AppendChild(Text("x"))
}

func TestFlattenReplacesInParent(t *testing.T) {
	root := New(HTML, "div", "")
	child := New(HTML, "span", "")
	child.AppendChild(Text("hi"))
	root.AppendChild(child)

	s := child.Flatten()
	if s != "<span>hi</span>" {
		t.Fatalf("Flatten() = %q", s)
	}
	if !child.Flattened() {
		t.Fatalf("child not marked flattened")
	}
	if len(root.Children()) != 1 {
		t.Fatalf("expected 1 child after flatten, got %d", len(root.Children()))
	}
	text, ok := root.Children()[0].(Text)
	if !ok || string(text) != "<span>hi</span>" {
		t.Fatalf("parent child = %#v, want flattened text", root.Children()[0])
	}
}

func TestFlattenTwicePanics(t *testing.T) {
	e := New(HTML, "span", "")
	e.Flatten()
	defer func() {
		if recover() == nil {
			t.Fatalf("second Flatten() did not panic")
		}
	}()
	e.Flatten()
}

func TestAdoptChildrenMovesInOrder(t *testing.T) {
	from := New(HTML, "b", "")
	from.AppendChild(Text("1"))
	from.AppendChild(Text("2"))
	to := New(HTML, "i", "")

	to.AdoptChildren(from)
	if len(from.Children()) != 0 {
		t.Fatalf("from still has %d children", len(from.Children()))
	}
	if got := to.Serialize(); got != "<i>12</i>" {
		t.Fatalf("Serialize() = %q", got)
	}
}

func TestInsertChildBefore(t *testing.T) {
	root := New(HTML, "ul", "")
	li1 := New(HTML, "li", "")
	li2 := New(HTML, "li", "")
	root.AppendChild(li1)
	root.AppendChild(li2)

	mid := New(HTML, "li", ` class="mid"`)
	if !root.InsertChildBefore(mid, li2) {
		t.Fatalf("InsertChildBefore returned false")
	}
	got := root.Serialize()
	want := `<ul><li></li><li class="mid"></li><li></li></ul>`
	if got != want {
		t.Fatalf("Serialize() = %q, want %q", got, want)
	}
}

func TestRemoveChild(t *testing.T) {
	root := New(HTML, "div", "")
	child := New(HTML, "span", "")
	root.AppendChild(child)
	if !root.RemoveChild(child) {
		t.Fatalf("RemoveChild returned false")
	}
	if len(root.Children()) != 0 {
		t.Fatalf("expected empty children, got %d", len(root.Children()))
	}
	if child.Parent() != nil {
		t.Fatalf("removed child still has a parent")
	}
}

func TestAttrValue(t *testing.T) {
	attrs := ` encoding="text/html" id="x"`
	v, ok := AttrValue(attrs, "encoding")
	if !ok || v != "text/html" {
		t.Fatalf("AttrValue(encoding) = %q, %v", v, ok)
	}
	if _, ok := AttrValue(attrs, "missing"); ok {
		t.Fatalf("AttrValue(missing) unexpectedly found")
	}
}

func TestConcatFlattensRemaining(t *testing.T) {
	root := New(HTML, "html", "")
	root.AppendChild(Text("a"))
	p := New(HTML, "p", "")
	p.AppendChild(Text("b"))
	root.AppendChild(p)

	got := Concat(root.Children())
	if got != "a<p>b</p>" {
		t.Fatalf("Concat() = %q", got)
	}
	if !p.Flattened() {
		t.Fatalf("p was not flattened by Concat")
	}
}

func TestIsHTMLIntegrationPointAnnotationXML(t *testing.T) {
	e := New(MathML, "annotation-xml", ` encoding="TEXT/HTML"`)
	if !e.IsHTMLIntegrationPoint() {
		t.Fatalf("expected annotation-xml with text/html encoding to be an integration point")
	}
	e2 := New(MathML, "annotation-xml", ` encoding="application/xml"`)
	if e2.IsHTMLIntegrationPoint() {
		t.Fatalf("expected annotation-xml with unrelated encoding to not be an integration point")
	}
}

func TestIsMathMLTextIntegrationPoint(t *testing.T) {
	e := New(MathML, "mtext", "")
	if !e.IsMathMLTextIntegrationPoint() {
		t.Fatalf("expected mtext to be a MathML text integration point")
	}
	e2 := New(MathML, "math", "")
	if e2.IsMathMLTextIntegrationPoint() {
		t.Fatalf("expected math to not be a MathML text integration point")
	}
}

func TestMatcherForms(t *testing.T) {
	a := New(HTML, "a", "")
	b := New(HTML, "b", "")

	if !a.IsA(Identity(a)) || b.IsA(Identity(a)) {
		t.Fatalf("identity matcher misbehaved")
	}
	if !a.IsA(Name("a")) || b.IsA(Name("a")) {
		t.Fatalf("raw-name matcher misbehaved")
	}
	if !a.IsA(Names("a", "i")) {
		t.Fatalf("name-set matcher missed a member")
	}
	if b.IsA(Names("a", "i")) {
		t.Fatalf("name-set matcher matched a non-member")
	}
}

func TestFontHasBreakoutAttr(t *testing.T) {
	if !FontHasBreakoutAttr(` color="red"`) {
		t.Fatalf("expected color attribute to trigger breakout")
	}
	if FontHasBreakoutAttr(` id="x"`) {
		t.Fatalf("unexpected breakout trigger")
	}
}
