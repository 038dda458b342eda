// Package formatting implements the active formatting element list
// (WHATWG HTML §13.2.4.2): Noah's Ark de-duplication, markers, and the
// reconstruction algorithm, adapted to spec.md §4.3.
package formatting

import "github.com/corvidwiki/htmlbalance/tree"

type entry struct {
	marker     bool
	localName  string
	attrString string
	node       *tree.Element
}

// List is the active formatting element list.
type List struct {
	entries []entry
}

// PushMarker pushes a scope marker, used on applet/marquee/object/template/
// caption/td/th start tags.
func (l *List) PushMarker() {
	l.entries = append(l.entries, entry{marker: true})
}

// ClearToMarker pops entries down to and including the last marker (or
// empties the list if there is none), used when those same elements are
// closed.
func (l *List) ClearToMarker() {
	for len(l.entries) > 0 {
		last := l.entries[len(l.entries)-1]
		l.entries = l.entries[:len(l.entries)-1]
		if last.marker {
			return
		}
	}
}

// Push adds node to the list under (localName, attrString), first removing
// the earliest of 3-or-more pre-existing entries with the same name and
// attributes since the last marker (the "Noah's Ark clause").
func (l *List) Push(localName, attrString string, node *tree.Element) {
	var matches []int
	for i := len(l.entries) - 1; i >= 0; i-- {
		e := l.entries[i]
		if e.marker {
			break
		}
		if e.localName == localName && e.attrString == attrString {
			matches = append(matches, i)
			if len(matches) == 3 {
				l.remove(matches[2])
				break
			}
		}
	}
	l.entries = append(l.entries, entry{localName: localName, attrString: attrString, node: node})
}

func (l *List) remove(i int) {
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
}

// Remove removes node's entry from the list, if present.
func (l *List) Remove(node *tree.Element) {
	if i, ok := l.indexOf(node); ok {
		l.remove(i)
	}
}

// ReplaceNode swaps the node associated with an entry, used when the
// adoption agency clones a formatting element and the clone takes over the
// original's slot in the list.
func (l *List) ReplaceNode(old, replacement *tree.Element) {
	if i, ok := l.indexOf(old); ok {
		l.entries[i].node = replacement
	}
}

func (l *List) indexOf(node *tree.Element) (int, bool) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if !l.entries[i].marker && l.entries[i].node == node {
			return i, true
		}
	}
	return -1, false
}

// Contains reports whether node has a live entry in the list.
func (l *List) Contains(node *tree.Element) bool {
	_, ok := l.indexOf(node)
	return ok
}

// IndexOf exposes indexOf for the engine's adoption agency, which needs
// the entry's position to bound its search.
func (l *List) IndexOf(node *tree.Element) (int, bool) { return l.indexOf(node) }

// Last returns the most recent non-marker entry matching localName, back
// to the previous marker (or list start). ok is false if none is found.
func (l *List) Last(localName string) (node *tree.Element, ok bool) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		e := l.entries[i]
		if e.marker {
			return nil, false
		}
		if e.localName == localName {
			return e.node, true
		}
	}
	return nil, false
}

// EntryAt exposes the node at a given index (used by the adoption
// algorithm's bookmark bookkeeping).
func (l *List) EntryAt(i int) *tree.Element { return l.entries[i].node }

// AttrStringAt exposes the frozen attribute string recorded at index i.
func (l *List) AttrStringAt(i int) string { return l.entries[i].attrString }

// LocalNameAt exposes the local name recorded at index i.
func (l *List) LocalNameAt(i int) string { return l.entries[i].localName }

// FindSinceMarker returns the index of the most recent non-marker entry
// named localName, searching back only as far as the nearest marker
// (step 3 of the adoption agency algorithm).
func (l *List) FindSinceMarker(localName string) (int, bool) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		e := l.entries[i]
		if e.marker {
			return -1, false
		}
		if e.localName == localName {
			return i, true
		}
	}
	return -1, false
}

// RemoveAt removes the entry at index i.
func (l *List) RemoveAt(i int) { l.remove(i) }

// SetNodeAt overwrites the node reference at index i, used when the
// adoption agency clones an entry in place.
func (l *List) SetNodeAt(i int, node *tree.Element) { l.entries[i].node = node }

// InsertAt inserts node's entry at position i, shifting later entries
// right — used to place a newly created entry at the adoption algorithm's
// bookmark position.
func (l *List) InsertAt(i int, localName, attrString string, node *tree.Element) {
	e := entry{localName: localName, attrString: attrString, node: node}
	l.entries = append(l.entries, entry{})
	copy(l.entries[i+1:], l.entries[i:])
	l.entries[i] = e
}

// Len reports the number of entries, including markers.
func (l *List) Len() int { return len(l.entries) }

// Reconstructor abstracts the engine's element-insertion primitive so this
// package does not need to know about the stack or insertion modes.
type Reconstructor func(localName, attrString string) *tree.Element

// Reconstruct implements "reconstruct the active formatting elements"
// (WHATWG §13.2.5.2.1): if the last entry is already open, do nothing;
// otherwise walk back to the nearest marker or already-open entry, then
// walk forward re-inserting (cloning) each entry via insert, recording the
// newly created element back into the list.
func (l *List) Reconstruct(isOpen func(*tree.Element) bool, insert Reconstructor) {
	if len(l.entries) == 0 {
		return
	}
	last := l.entries[len(l.entries)-1]
	if last.marker || isOpen(last.node) {
		return
	}

	index := len(l.entries) - 1
	for {
		index--
		if index < 0 {
			index = 0
			break
		}
		e := l.entries[index]
		if e.marker || isOpen(e.node) {
			index++
			break
		}
	}

	for ; index < len(l.entries); index++ {
		e := l.entries[index]
		node := insert(e.localName, e.attrString)
		l.entries[index].node = node
	}
}
