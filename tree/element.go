// Package tree implements ElementNode: the lightweight, flatten-on-pop node
// type spec.md §3/§4.1 describes. A node lives only as long as it is on the
// open-elements stack; once popped it is serialized to a string and that
// string replaces it in its parent's children list ("flattening"). No
// full DOM is ever materialized (spec.md §1's Non-goals; §5's "Resource
// bounds").
package tree

import (
	"regexp"
	"strings"

	"github.com/corvidwiki/htmlbalance/internal/constants"
)

// Namespace identifies the markup vocabulary an element belongs to.
type Namespace int

const (
	HTML Namespace = iota
	SVG
	MathML
)

func (n Namespace) String() string {
	switch n {
	case SVG:
		return "svg"
	case MathML:
		return "mathml"
	default:
		return "html"
	}
}

// Child is either a Text fragment or a live *Element. Once an *Element is
// flattened it is replaced by a Text fragment wherever it appeared.
type Child interface {
	isChild()
}

// Text is a run of character data.
type Text string

func (Text) isChild() {}

type linkState int

const (
	unlinked linkState = iota
	linked
	flattenedState
)

// Element is spec.md §3's ElementNode.
type Element struct {
	Namespace  Namespace
	LocalName  string
	AttrString string

	children []Child
	parent   *Element
	link     linkState
}

func (*Element) isChild() {}

// New creates a detached element. AttrString must already be the canonical
// form spec.md §3 describes: empty, or a leading space followed by
// space-separated `name="value"` pairs.
func New(ns Namespace, localName, attrString string) *Element {
	return &Element{Namespace: ns, LocalName: localName, AttrString: attrString}
}

// Parent returns the element's current parent, or nil if unlinked, root,
// or flattened.
func (e *Element) Parent() *Element { return e.parent }

// Flattened reports whether e has already been serialized and detached.
func (e *Element) Flattened() bool { return e.link == flattenedState }

// Children returns the element's current child sequence. Callers must not
// retain the slice across a mutation.
func (e *Element) Children() []Child { return e.children }

func (e *Element) isVoid() bool {
	return e.Namespace == HTML && constants.IsVoid(e.LocalName)
}

// AppendChild appends a child, linking it to e if it is an *Element.
// Per spec.md §4.1, appending to a void element's children list is an
// internal invariant violation: void elements are inserted and immediately
// popped by the engine, so nothing should ever try to give them content.
func (e *Element) AppendChild(c Child) {
	if e.isVoid() {
		panic("tree: cannot append children to a void element")
	}
	if el, ok := c.(*Element); ok {
		el.parent = e
		el.link = linked
	}
	e.children = append(e.children, c)
}

// InsertChildBefore inserts c immediately before the child identified by
// before. It returns false if before is not a direct child of e.
func (e *Element) InsertChildBefore(c Child, before *Element) bool {
	for i, ch := range e.children {
		if el, ok := ch.(*Element); ok && el == before {
			if newEl, ok := c.(*Element); ok {
				newEl.parent = e
				newEl.link = linked
			}
			e.children = append(e.children, nil)
			copy(e.children[i+1:], e.children[i:])
			e.children[i] = c
			return true
		}
	}
	return false
}

// RemoveChild excises target from e's children by identity. It returns
// false if target is not a direct child of e.
func (e *Element) RemoveChild(target *Element) bool {
	for i, ch := range e.children {
		if el, ok := ch.(*Element); ok && el == target {
			e.children = append(e.children[:i], e.children[i+1:]...)
			target.parent = nil
			target.link = unlinked
			return true
		}
	}
	return false
}

// AdoptChildren transfers all of from's children, in order, onto e,
// leaving from empty. Used by the adoption agency (spec.md §4.4 step 13)
// to move a furthest block's content into its replacement wrapper.
func (e *Element) AdoptChildren(from *Element) {
	if from.isVoid() || len(from.children) == 0 {
		return
	}
	if e.isVoid() {
		panic("tree: cannot adopt children into a void element")
	}
	for _, c := range from.children {
		if el, ok := c.(*Element); ok {
			el.parent = e
		}
		e.children = append(e.children, c)
	}
	from.children = nil
}

// Flatten serializes e's subtree to a string, replaces e in its parent's
// children list with that string, and marks e flattened (spec.md §3
// "Lifecycle"). It panics on a double flatten, which can only happen from
// an internal bookkeeping bug (spec.md §7.2).
func (e *Element) Flatten() string {
	if e.link == flattenedState {
		panic("tree: element flattened twice")
	}
	s := e.Serialize()
	if p := e.parent; p != nil {
		for i, ch := range p.children {
			if el, ok := ch.(*Element); ok && el == e {
				p.children[i] = Text(s)
				break
			}
		}
	}
	e.link = flattenedState
	e.parent = nil
	e.children = nil
	return s
}

// Serialize renders e's subtree to its fragment-serialization form
// (spec.md §4.1) without mutating e or detaching it from its parent. Any
// child that is still a live *Element (rather than already-flattened Text)
// is serialized recursively in place; under normal pop-driven flattening
// this path is never taken for deeply nested content, since the open
// stack flattens bottom-up, but Serialize stays correct either way.
func (e *Element) Serialize() string {
	var sb strings.Builder
	e.writeTo(&sb)
	return sb.String()
}

func (e *Element) writeTo(sb *strings.Builder) {
	sb.WriteByte('<')
	sb.WriteString(e.LocalName)
	sb.WriteString(e.AttrString)
	sb.WriteByte('>')
	if e.isVoid() {
		return
	}
	for _, c := range e.children {
		switch v := c.(type) {
		case Text:
			sb.WriteString(string(v))
		case *Element:
			v.writeTo(sb)
		}
	}
	sb.WriteString("</")
	sb.WriteString(e.LocalName)
	sb.WriteByte('>')
}

// FlattenRemaining flattens every live *Element still present in children,
// in place, replacing each with its serialized text — used once, at EOF,
// to collapse whatever is still open on the stack (spec.md §9 "Streaming
// output").
func FlattenRemaining(children []Child) []Child {
	for i, c := range children {
		if el, ok := c.(*Element); ok && !el.Flattened() {
			children[i] = Text(el.Flatten())
		}
	}
	return children
}

// Concat joins a children slice into a single output string. Any
// still-live *Element is flattened first.
func Concat(children []Child) string {
	children = FlattenRemaining(children)
	var sb strings.Builder
	for _, c := range children {
		if t, ok := c.(Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}

var attrValueRe = regexp.MustCompile(`([^\s="]+)="([^"]*)"`)

// AttrValue extracts name's value out of a canonical attribute string
// (spec.md §3's AttrString format). It is a narrow scan over a format the
// upstream sanitizer guarantees (double-quoted, no embedded quotes —
// spec.md §6's input contract), not a general attribute parser.
func AttrValue(attrString, name string) (string, bool) {
	for _, m := range attrValueRe.FindAllStringSubmatch(attrString, -1) {
		if strings.EqualFold(m[1], name) {
			return m[2], true
		}
	}
	return "", false
}
