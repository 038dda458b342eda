package stack

import (
	"testing"

	"github.com/corvidwiki/htmlbalance/internal/constants"
	"github.com/corvidwiki/htmlbalance/tree"
)

func newTestStack() (*Stack, *tree.Element) {
	root := tree.New(tree.HTML, "html", "")
	return New(root), root
}

func TestInsertElementAndPop(t *testing.T) {
	s, root := newTestStack()
	p := tree.New(tree.HTML, "p", "")
	s.InsertElement(p)
	if s.Current() != p {
		t.Fatalf("Current() = %v, want p", s.Current())
	}
	s.InsertText("hi")

	got := s.Pop()
	if got != "<p>hi</p>" {
		t.Fatalf("Pop() = %q", got)
	}
	if s.Current() != root {
		t.Fatalf("expected root current after pop")
	}
	if tree.Concat(root.Children()) != "<p>hi</p>" {
		t.Fatalf("root children mismatch: %q", tree.Concat(root.Children()))
	}
}

func TestPopRootPanics(t *testing.T) {
	s, _ := newTestStack()
	defer func() {
		if recover() == nil {
			t.Fatalf("Pop() on root-only stack did not panic")
		}
	}()
	s.Pop()
}

func TestHasElementInScope(t *testing.T) {
	s, _ := newTestStack()
	table := tree.New(tree.HTML, "table", "")
	s.InsertElement(table)
	div := tree.New(tree.HTML, "div", "")
	s.InsertElement(div)

	if !s.HasElementInScope(tree.Name("table"), constants.DefaultScope) {
		t.Fatalf("expected table in scope")
	}
	if s.HasElementInScope(tree.Name("p"), constants.DefaultScope) {
		t.Fatalf("did not expect p in scope")
	}
}

func TestDefaultScopeFindsEnclosingCell(t *testing.T) {
	s, _ := newTestStack()
	table := tree.New(tree.HTML, "table", "")
	s.InsertElement(table)
	p := tree.New(tree.HTML, "p", "")
	s.InsertElement(p)
	s.Pop() // pop p, leaving table current

	td := tree.New(tree.HTML, "td", "")
	s.InsertElement(td)
	span := tree.New(tree.HTML, "span", "")
	s.InsertElement(span)

	if !s.HasElementInScope(tree.Name("td"), constants.DefaultScope) {
		t.Fatalf("expected td in scope from inside its own cell")
	}
}

func TestGenerateImpliedEndTags(t *testing.T) {
	s, _ := newTestStack()
	ul := tree.New(tree.HTML, "ul", "")
	s.InsertElement(ul)
	li := tree.New(tree.HTML, "li", "")
	s.InsertElement(li)

	s.GenerateImpliedEndTags("")
	if s.Current() != ul {
		t.Fatalf("expected li to be implicitly popped, current = %v", s.Current())
	}
}

func TestFosterParentingInsertsBeforeTable(t *testing.T) {
	s, root := newTestStack()
	table := tree.New(tree.HTML, "table", "")
	s.InsertElement(table)
	s.SetFosterParenting(true)

	s.InsertText("stray")

	if len(table.Children()) != 0 {
		t.Fatalf("table acquired a direct child: %v", table.Children())
	}
	children := root.Children()
	if len(children) != 2 {
		t.Fatalf("expected 2 root children (text, table), got %d", len(children))
	}
	txt, ok := children[0].(tree.Text)
	if !ok || string(txt) != "stray" {
		t.Fatalf("first root child = %#v, want foster-parented text", children[0])
	}
}

func TestFosterParentingAllowsTableStructureChildren(t *testing.T) {
	s, _ := newTestStack()
	table := tree.New(tree.HTML, "table", "")
	s.InsertElement(table)
	s.SetFosterParenting(true)

	tbody := tree.New(tree.HTML, "tbody", "")
	parent, before := s.InsertionLocation("tbody")
	if before != nil || parent != table {
		t.Fatalf("expected tbody to insert directly under table, got parent=%v before=%v", parent, before)
	}
	_ = tbody
}

func TestRemoveElementDetachesFromTreeAndStack(t *testing.T) {
	s, root := newTestStack()
	b := tree.New(tree.HTML, "b", "")
	s.InsertElement(b)

	if !s.RemoveElement(b) {
		t.Fatalf("RemoveElement returned false")
	}
	if s.Contains(b) {
		t.Fatalf("stack still contains removed element")
	}
	if len(root.Children()) != 0 {
		t.Fatalf("tree still has removed element as a child")
	}
}

func TestClearToContext(t *testing.T) {
	s, _ := newTestStack()
	table := tree.New(tree.HTML, "table", "")
	s.InsertElement(table)
	tbody := tree.New(tree.HTML, "tbody", "")
	s.InsertElement(tbody)
	tr := tree.New(tree.HTML, "tr", "")
	s.InsertElement(tr)
	td := tree.New(tree.HTML, "td", "")
	s.InsertElement(td)

	s.ClearToContext(map[string]bool{"table": true})
	if s.Current() != table {
		t.Fatalf("expected current = table, got %v", s.Current())
	}
}

func TestPopThroughSetMatchesAnyHeading(t *testing.T) {
	s, _ := newTestStack()
	h3 := tree.New(tree.HTML, "h3", "")
	s.InsertElement(h3)
	s.InsertText("x")

	s.PopThroughSet(constants.HeadingElements)
	if s.Len() != 1 {
		t.Fatalf("expected only root left open, stack len = %d", s.Len())
	}
}
