package engine

import (
	"github.com/corvidwiki/htmlbalance/internal/constants"
	"github.com/corvidwiki/htmlbalance/tree"
)

// adoptionAgency implements spec.md §4.4's Adoption Agency Algorithm
// (WHATWG §13.2.5.2.5), ported from the teacher's approach of tracking
// formatting entries and open elements as two independently indexed slices
// and replacing nodes in both in lockstep.
func (e *Engine) adoptionAgency(subject string) {
	if cur := e.current(); cur.Namespace == tree.HTML && cur.LocalName == subject {
		if _, ok := e.formatting.IndexOf(cur); !ok {
			e.popThroughTag(subject)
			return
		}
	}

	for outer := 0; outer < 8; outer++ {
		formattingIndex, ok := e.formatting.FindSinceMarker(subject)
		if !ok {
			return
		}
		formattingElement := e.formatting.EntryAt(formattingIndex)
		if formattingElement == nil {
			e.formatting.RemoveAt(formattingIndex)
			return
		}

		formattingOpenIndex := e.stack.IndexOf(formattingElement)
		if formattingOpenIndex < 0 {
			e.formatting.RemoveAt(formattingIndex)
			return
		}

		if !e.stack.HasElementInScope(tree.Identity(formattingElement), constants.DefaultScope) {
			return
		}

		var furthestBlock *tree.Element
		for i := formattingOpenIndex + 1; i < e.stack.Len(); i++ {
			if node := e.stack.At(i); node.Namespace == tree.HTML && constants.IsSpecial(node.LocalName) {
				furthestBlock = node
				break
			}
		}

		if furthestBlock == nil {
			e.popThroughTag(formattingElement.LocalName)
			e.formatting.RemoveAt(formattingIndex)
			return
		}

		bookmark := formattingIndex + 1

		node := furthestBlock
		lastNode := furthestBlock

		innerCounter := 0
		for {
			innerCounter++

			nodeIndex := e.stack.IndexOf(node)
			if nodeIndex <= 0 {
				return
			}
			node = e.stack.At(nodeIndex - 1)

			if node == formattingElement {
				break
			}

			nodeFormattingIndex, hasNodeFormatting := e.formatting.IndexOf(node)
			if innerCounter > 3 && hasNodeFormatting {
				e.formatting.RemoveAt(nodeFormattingIndex)
				if nodeFormattingIndex < bookmark {
					bookmark--
				}
				hasNodeFormatting = false
			}

			if !hasNodeFormatting {
				e.stack.RemoveFromOpenElements(node)
				continue
			}

			newElement := tree.New(tree.HTML, e.formatting.LocalNameAt(nodeFormattingIndex), e.formatting.AttrStringAt(nodeFormattingIndex))
			e.formatting.SetNodeAt(nodeFormattingIndex, newElement)
			e.stack.ReplaceAt(e.stack.IndexOf(node), newElement)
			node = newElement

			if lastNode == furthestBlock {
				bookmark = nodeFormattingIndex + 1
			}

			if p := lastNode.Parent(); p != nil {
				p.RemoveChild(lastNode)
			}
			node.AppendChild(lastNode)

			lastNode = node
		}

		commonAncestor := e.stack.At(formattingOpenIndex - 1)
		if p := lastNode.Parent(); p != nil {
			p.RemoveChild(lastNode)
		}
		e.fosterOrAppend(commonAncestor, lastNode)

		newFormattingElement := tree.New(tree.HTML, e.formatting.LocalNameAt(formattingIndex), e.formatting.AttrStringAt(formattingIndex))
		e.formatting.SetNodeAt(formattingIndex, newFormattingElement)

		newFormattingElement.AdoptChildren(furthestBlock)
		furthestBlock.AppendChild(newFormattingElement)

		e.formatting.RemoveAt(formattingIndex)
		bookmark--
		if bookmark < 0 {
			bookmark = 0
		}
		if bookmark > e.formatting.Len() {
			bookmark = e.formatting.Len()
		}
		e.formatting.InsertAt(bookmark, newFormattingElement.LocalName, newFormattingElement.AttrString, newFormattingElement)

		e.stack.RemoveFromOpenElements(formattingElement)
		e.stack.InsertAfter(furthestBlock, newFormattingElement)
	}
}

// fosterOrAppend appends node to commonAncestor, foster-parenting it ahead
// of the nearest open table when commonAncestor is itself table structure
// (spec.md §4.4 step 11, spec.md §4.2's foster-parenting rules).
func (e *Engine) fosterOrAppend(commonAncestor, node *tree.Element) {
	if commonAncestor.Namespace == tree.HTML && constants.IsTableFosterTarget(commonAncestor.LocalName) {
		e.fosterInsertNode(node)
		return
	}
	commonAncestor.AppendChild(node)
}

func (e *Engine) fosterInsertNode(node *tree.Element) {
	var table *tree.Element
	for i := e.stack.Len() - 1; i >= 0; i-- {
		if el := e.stack.At(i); el.Namespace == tree.HTML && el.LocalName == "table" {
			table = el
			break
		}
	}
	if table == nil {
		e.current().AppendChild(node)
		return
	}
	if p := table.Parent(); p != nil {
		p.InsertChildBefore(node, table)
		return
	}
	e.stack.Root().AppendChild(node)
}
