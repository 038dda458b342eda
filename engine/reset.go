package engine

import (
	"github.com/corvidwiki/htmlbalance/internal/constants"
	"github.com/corvidwiki/htmlbalance/tree"
)

// resetInsertionModeAppropriately implements WHATWG §13.2.5.1 restricted to
// the mode set this engine supports: scan the stack from top to root,
// mapping the first recognized element to a mode; default InBody.
func (e *Engine) resetInsertionModeAppropriately() InsertionMode {
	for i := e.stack.Len() - 1; i >= 0; i-- {
		node := e.stack.At(i)
		if node.Namespace != tree.HTML {
			continue
		}
		switch node.LocalName {
		case "tr":
			return InRow
		case "tbody", "thead", "tfoot":
			return InTableBody
		case "caption":
			return InCaption
		case "colgroup":
			return InColumnGroup
		case "table":
			return InTable
		case "template":
			if len(e.templateModes) > 0 {
				return e.templateModes[len(e.templateModes)-1]
			}
			return InBody
		case "td", "th":
			return InCell
		}
	}
	return InBody
}

// anyOtherEndTag implements WHATWG's generic end-tag recovery (spec.md
// §4.7): walk the stack top-to-root; on a matching local name, generate
// implied end tags excluding it, then pop through the match; on hitting a
// special-set element first, ignore the token entirely.
func (e *Engine) anyOtherEndTag(name string) {
	for i := e.stack.Len() - 1; i >= 0; i-- {
		node := e.stack.At(i)
		if node.Namespace == tree.HTML && node.LocalName == name {
			e.stack.GenerateImpliedEndTags(name)
			e.popThroughTag(name)
			return
		}
		if isSpecial(node) {
			return
		}
	}
}

func isSpecial(el *tree.Element) bool {
	return el.Namespace == tree.HTML && constants.IsSpecial(el.LocalName)
}
