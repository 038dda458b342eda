// Package stack implements the open-elements stack: scope predicates,
// implied-end-tag generation, and the foster-parenting insertion-location
// rules (WHATWG HTML §13.2.4.1-3, adapted to spec.md §4.2). Every pop off
// the stack flattens the popped node (tree.Element.Flatten), which is this
// package's central departure from a conventional tree builder: the stack
// owns node lifetime, not a persistent document.
package stack

import (
	"github.com/corvidwiki/htmlbalance/internal/constants"
	"github.com/corvidwiki/htmlbalance/tree"
)

// Stack is the open-elements stack. Index 0 is always the sentinel root
// element and is never popped.
type Stack struct {
	root   *tree.Element
	nodes  []*tree.Element
	foster bool
}

// New creates a stack seeded with root already pushed (unpoppable).
func New(root *tree.Element) *Stack {
	return &Stack{nodes: []*tree.Element{root}, root: root}
}

// Root returns the sentinel root element.
func (s *Stack) Root() *tree.Element { return s.root }

// Len reports the number of open elements, including the root.
func (s *Stack) Len() int { return len(s.nodes) }

// Current returns the topmost open element.
func (s *Stack) Current() *tree.Element { return s.nodes[len(s.nodes)-1] }

// At returns the open element at index i (0 is the root).
func (s *Stack) At(i int) *tree.Element { return s.nodes[i] }

// IndexOf returns the stack index of el, or -1 if el is not open.
func (s *Stack) IndexOf(el *tree.Element) int {
	for i := len(s.nodes) - 1; i >= 0; i-- {
		if s.nodes[i] == el {
			return i
		}
	}
	return -1
}

// Contains reports whether el is on the stack.
func (s *Stack) Contains(el *tree.Element) bool { return s.IndexOf(el) >= 0 }

// Push opens el without inserting it anywhere; callers that need el linked
// into the tree first use InsertElement.
func (s *Stack) Push(el *tree.Element) { s.nodes = append(s.nodes, el) }

// InsertElement appends el as a child at the current insertion location
// (honoring foster parenting) and pushes it onto the stack.
func (s *Stack) InsertElement(el *tree.Element) {
	parent, before := s.InsertionLocation(el.LocalName)
	if before != nil {
		parent.InsertChildBefore(el, before)
	} else {
		parent.AppendChild(el)
	}
	s.nodes = append(s.nodes, el)
}

// InsertText appends data at the current insertion location.
func (s *Stack) InsertText(data string) {
	if data == "" {
		return
	}
	parent, before := s.InsertionLocation("")
	if before != nil {
		parent.InsertChildBefore(tree.Text(data), before)
		return
	}
	parent.AppendChild(tree.Text(data))
}

// SetFosterParenting toggles foster-parenting mode for the duration the
// caller holds it set (the engine's table-text flush and its table
// "anything else" fallback wrap their insert calls with this).
func (s *Stack) SetFosterParenting(on bool) { s.foster = on }

func shouldFoster(el *tree.Element) bool {
	return el != nil && el.Namespace == tree.HTML && constants.IsTableFosterTarget(el.LocalName)
}

// InsertionLocation resolves spec.md §4.2's "appropriate place for
// inserting a node": inside an open template's content if current, foster
// parented ahead of the nearest table if foster parenting is active and
// forTag is not one of the table's allowed direct children, else the
// current node.
func (s *Stack) InsertionLocation(forTag string) (parent *tree.Element, before *tree.Element) {
	current := s.Current()
	if current.Namespace == tree.HTML && current.LocalName == "template" {
		return current, nil
	}
	if !s.foster || !shouldFoster(current) {
		return current, nil
	}
	if forTag != "" && constants.TableAllowedChildren[forTag] {
		return current, nil
	}
	return s.fosterInsertionLocation()
}

func (s *Stack) fosterInsertionLocation() (*tree.Element, *tree.Element) {
	tableIdx := s.lastIndexNamed("table")
	templateIdx := s.lastIndexNamed("template")
	if templateIdx >= 0 && (tableIdx < 0 || templateIdx > tableIdx) {
		return s.nodes[templateIdx], nil
	}
	if tableIdx < 0 {
		return s.Current(), nil
	}
	table := s.nodes[tableIdx]
	if p := table.Parent(); p != nil {
		return p, table
	}
	if tableIdx > 0 {
		return s.nodes[tableIdx-1], nil
	}
	return s.root, nil
}

func (s *Stack) lastIndexNamed(name string) int {
	for i := len(s.nodes) - 1; i >= 0; i-- {
		if s.nodes[i].Namespace == tree.HTML && s.nodes[i].LocalName == name {
			return i
		}
	}
	return -1
}

// Pop pops and flattens the current node, returning its serialized text.
// Popping the root is a programmer error (the root is the sentinel that
// absorbs the rest of the document and is never flattened; its children
// are the output).
func (s *Stack) Pop() string {
	if len(s.nodes) <= 1 {
		panic("stack: cannot pop the root element")
	}
	el := s.nodes[len(s.nodes)-1]
	s.nodes = s.nodes[:len(s.nodes)-1]
	return el.Flatten()
}

// PopTo pops and flattens elements down to and including the first one
// matching m (WHATWG's "pop until an element with tag name X has been
// popped", generalized to a Matcher).
func (s *Stack) PopTo(m tree.Matcher) {
	for len(s.nodes) > 1 {
		el := s.nodes[len(s.nodes)-1]
		s.Pop()
		if el.IsA(m) {
			return
		}
	}
}

// PopThroughSet pops and flattens elements down to and including the first
// one whose local name is in set, regardless of exact name — spec.md §9's
// resolution for heading end tags: "</h3>" closes whichever of h1..h6 is
// topmost, not only an exact-matching heading.
func (s *Stack) PopThroughSet(set map[string]bool) {
	for len(s.nodes) > 1 {
		el := s.nodes[len(s.nodes)-1]
		s.Pop()
		if el.Namespace == tree.HTML && set[el.LocalName] {
			return
		}
	}
}

// ClearToContext pops and flattens until the current node's local name is
// a member of stop (WHATWG's "clear the stack back to a table context",
// generalized). It never pops the root.
func (s *Stack) ClearToContext(stop map[string]bool) {
	for len(s.nodes) > 1 {
		cur := s.Current()
		if cur.Namespace == tree.HTML && stop[cur.LocalName] {
			return
		}
		s.Pop()
	}
}

// RemoveElement excises el from the stack (and from its tree parent)
// without flattening it — used by the adoption agency, which relocates
// nodes rather than serializing them. It returns false if el is not open.
func (s *Stack) RemoveElement(el *tree.Element) bool {
	idx := s.IndexOf(el)
	if idx < 0 {
		return false
	}
	s.nodes = append(s.nodes[:idx], s.nodes[idx+1:]...)
	if p := el.Parent(); p != nil {
		p.RemoveChild(el)
	}
	return true
}

// RemoveFromOpenElements excises el from the stack only, leaving its tree
// position untouched. The adoption agency's inner loop uses this for
// interior nodes that carry no active formatting entry: they drop out of
// the bookkeeping but stay exactly where they are in the tree.
func (s *Stack) RemoveFromOpenElements(el *tree.Element) bool {
	idx := s.IndexOf(el)
	if idx < 0 {
		return false
	}
	s.nodes = append(s.nodes[:idx], s.nodes[idx+1:]...)
	return true
}

// InsertAfter inserts el onto the stack immediately after anchor (by
// identity), used when the adoption agency clones a formatting element and
// needs the clone to sit exactly where the original was.
func (s *Stack) InsertAfter(anchor, el *tree.Element) {
	idx := s.IndexOf(anchor)
	if idx < 0 {
		s.nodes = append(s.nodes, el)
		return
	}
	s.nodes = append(s.nodes, nil)
	copy(s.nodes[idx+2:], s.nodes[idx+1:])
	s.nodes[idx+1] = el
}

// ReplaceAt swaps the element at stack index idx for replacement, without
// touching the tree; callers handle tree relinking separately.
func (s *Stack) ReplaceAt(idx int, replacement *tree.Element) {
	s.nodes[idx] = replacement
}

// GenerateImpliedEndTags pops elements while the current node's local name
// is in the implied-end-tag set and not except.
func (s *Stack) GenerateImpliedEndTags(except string) {
	for len(s.nodes) > 1 {
		cur := s.Current()
		if cur.Namespace != tree.HTML || !constants.IsImpliedEndTag(cur.LocalName) || cur.LocalName == except {
			return
		}
		s.Pop()
	}
}

// GenerateImpliedEndTagsThoroughly is the "thoroughly" variant used before
// table-section/cell closures; it additionally pops table-structure tags.
func (s *Stack) GenerateImpliedEndTagsThoroughly() {
	for len(s.nodes) > 1 {
		cur := s.Current()
		if cur.Namespace != tree.HTML || !constants.IsThoroughlyImpliedEndTag(cur.LocalName) {
			return
		}
		s.Pop()
	}
}

// HasElementInScope reports whether an element matching m is on the stack
// without an intervening scope terminator from stop. HTML integration
// points and MathML text integration points always terminate the search,
// matching WHATWG §13.2.5.2.5.
func (s *Stack) HasElementInScope(m tree.Matcher, stop map[string]bool) bool {
	for i := len(s.nodes) - 1; i >= 0; i-- {
		node := s.nodes[i]
		if node.IsA(m) {
			return true
		}
		if node.Namespace == tree.HTML {
			if stop[node.LocalName] {
				return false
			}
			continue
		}
		if node.IsHTMLIntegrationPoint() || node.IsMathMLTextIntegrationPoint() {
			return false
		}
	}
	return false
}

// HasAnyElementInScope is HasElementInScope generalized to a name set
// (used for the heading end-tag check across h1..h6).
func (s *Stack) HasAnyElementInScope(names map[string]bool, stop map[string]bool) bool {
	for i := len(s.nodes) - 1; i >= 0; i-- {
		node := s.nodes[i]
		if node.Namespace == tree.HTML && names[node.LocalName] {
			return true
		}
		if node.Namespace == tree.HTML {
			if stop[node.LocalName] {
				return false
			}
			continue
		}
		if node.IsHTMLIntegrationPoint() || node.IsMathMLTextIntegrationPoint() {
			return false
		}
	}
	return false
}

// HasForeignElement reports whether any open element is outside the HTML
// namespace, used to short-circuit the foreign-content dispatch check.
func (s *Stack) HasForeignElement() bool {
	for _, n := range s.nodes {
		if n.Namespace != tree.HTML {
			return true
		}
	}
	return false
}

// FlattenAll flattens every open element above the root, in top-to-bottom
// (pop) order, at EOF. It leaves only the root open.
func (s *Stack) FlattenAll() {
	for len(s.nodes) > 1 {
		s.Pop()
	}
}
