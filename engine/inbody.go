package engine

import (
	"github.com/corvidwiki/htmlbalance/dispatch"
	"github.com/corvidwiki/htmlbalance/internal/constants"
	"github.com/corvidwiki/htmlbalance/tree"
)

func (e *Engine) inBody(tok dispatch.Token) outcome {
	switch tok.Kind {
	case dispatch.CharacterData:
		e.reconstructActiveFormatting()
		e.insertText(tok.Data)
		return handledOutcome()

	case dispatch.Tag:
		return e.inBodyStartTag(tok)

	case dispatch.EndTag:
		return e.inBodyEndTag(tok)

	case dispatch.EOF:
		return handledOutcome()

	default:
		return handledOutcome()
	}
}

// closesPElement lists the block-level start tags that implicitly close an
// open p element in button scope (WHATWG §13.2.6.4.7's "anything else that
// closes a p element" set). li/dd/dt and headings have their own dedicated
// branches above and are handled there instead.
var closesPElement = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"center": true, "details": true, "dialog": true, "dir": true,
	"div": true, "dl": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "header": true, "hgroup": true,
	"main": true, "menu": true, "nav": true, "ol": true,
	"search": true, "section": true, "summary": true, "ul": true,
}

func (e *Engine) inBodyStartTag(tok dispatch.Token) outcome {
	name := tok.Name

	if isHeadLegalName(name) {
		e.headReturnMode = InBody
		return reprocessIn(InHead)
	}

	switch name {
	case "a":
		if _, ok := e.formatting.Last("a"); ok {
			e.adoptionAgency("a")
			if idx, ok2 := e.formatting.FindSinceMarker("a"); ok2 {
				e.formatting.RemoveAt(idx)
			}
			e.removeLastOpenByName("a")
		}
		e.reconstructActiveFormatting()
		node := e.insertHTMLElement("a", tok.Attrs)
		e.formatting.Push("a", tok.Attrs, node)
		return handledOutcome()

	case "table":
		e.insertHTMLElement("table", tok.Attrs)
		return switchTo(InTable)

	case "p":
		if e.stack.HasElementInScope(tree.Name("p"), constants.ButtonScope) {
			e.popThroughTag("p")
		}
		e.reconstructActiveFormatting()
		e.insertHTMLElement("p", tok.Attrs)
		return handledOutcome()

	case "br":
		e.insertHTMLElement("br", tok.Attrs)
		e.stack.Pop()
		return handledOutcome()

	case "li":
		e.closeImpliedListItem("li", map[string]bool{"li": true})
		if e.stack.HasElementInScope(tree.Name("p"), constants.ButtonScope) {
			e.popThroughTag("p")
		}
		e.insertHTMLElement("li", tok.Attrs)
		return handledOutcome()

	case "dd", "dt":
		e.closeImpliedListItem(name, map[string]bool{"dd": true, "dt": true})
		if e.stack.HasElementInScope(tree.Name("p"), constants.ButtonScope) {
			e.popThroughTag("p")
		}
		e.insertHTMLElement(name, tok.Attrs)
		return handledOutcome()

	case "svg":
		e.reconstructActiveFormatting()
		e.insertForeign(tree.SVG, "svg", tok.Attrs, tok.SelfClosing)
		return handledOutcome()

	case "math":
		e.reconstructActiveFormatting()
		e.insertForeign(tree.MathML, "math", tok.Attrs, tok.SelfClosing)
		return handledOutcome()
	}

	if constants.IsHeading(name) {
		if e.stack.HasElementInScope(tree.Name("p"), constants.ButtonScope) {
			e.popThroughTag("p")
		}
		if cur := e.current(); cur.Namespace == tree.HTML && constants.IsHeading(cur.LocalName) {
			e.stack.Pop()
		}
		e.insertHTMLElement(name, tok.Attrs)
		return handledOutcome()
	}

	if constants.IsFormatting(name) {
		if name == "nobr" && e.stack.HasElementInScope(tree.Name("nobr"), constants.DefaultScope) {
			e.adoptionAgency("nobr")
			if idx, ok := e.formatting.FindSinceMarker("nobr"); ok {
				e.formatting.RemoveAt(idx)
			}
			e.removeLastOpenByName("nobr")
		}
		e.reconstructActiveFormatting()
		node := e.insertHTMLElement(name, tok.Attrs)
		e.formatting.Push(name, tok.Attrs, node)
		return handledOutcome()
	}

	if closesPElement[name] {
		if e.stack.HasElementInScope(tree.Name("p"), constants.ButtonScope) {
			e.popThroughTag("p")
		}
	}

	e.reconstructActiveFormatting()
	e.insertHTMLElement(name, tok.Attrs)
	if tok.SelfClosing || constants.IsVoid(name) {
		e.stack.Pop()
	}
	return handledOutcome()
}

func (e *Engine) inBodyEndTag(tok dispatch.Token) outcome {
	name := tok.Name

	switch name {
	case "p":
		if !e.stack.HasElementInScope(tree.Name("p"), constants.ButtonScope) {
			e.insertHTMLElement("p", "")
		}
		e.popThroughTag("p")
		return handledOutcome()

	case "template":
		return e.endTemplateFromBody()
	}

	if closesPElement[name] || name == "li" || name == "dd" || name == "dt" || name == "button" || name == "listing" || name == "pre" {
		scope := constants.DefaultScope
		if name == "li" {
			scope = constants.ListItemScope
		}
		if e.stack.HasElementInScope(tree.Name(name), scope) {
			e.stack.GenerateImpliedEndTags(name)
			e.popThroughTag(name)
		}
		return handledOutcome()
	}

	if constants.IsHeading(name) {
		if e.stack.HasAnyElementInScope(constants.HeadingElements, constants.DefaultScope) {
			e.stack.GenerateImpliedEndTags("")
			e.stack.PopThroughSet(constants.HeadingElements)
		}
		return handledOutcome()
	}

	if constants.IsFormatting(name) {
		e.adoptionAgency(name)
		return handledOutcome()
	}

	e.anyOtherEndTag(name)
	return handledOutcome()
}

// closeImpliedListItem implements the li/dd/dt start-tag implicit-closure
// rule (WHATWG §13.2.6.4.7): walk down the stack; on finding a member of
// set, generate implied end tags excluding name and pop through it; stop
// at any special element other than address/div/p.
func (e *Engine) closeImpliedListItem(name string, set map[string]bool) {
	for i := e.stack.Len() - 1; i >= 1; i-- {
		node := e.stack.At(i)
		if node.Namespace != tree.HTML {
			return
		}
		if set[node.LocalName] {
			e.stack.GenerateImpliedEndTags(node.LocalName)
			e.popThroughTag(node.LocalName)
			return
		}
		if constants.IsSpecial(node.LocalName) && node.LocalName != "address" && node.LocalName != "div" && node.LocalName != "p" {
			return
		}
	}
}

func (e *Engine) insertForeign(ns tree.Namespace, name, attrs string, selfClosing bool) *tree.Element {
	el := tree.New(ns, name, attrs)
	e.current().AppendChild(el)
	if !selfClosing {
		e.stack.Push(el)
	}
	return el
}

func (e *Engine) removeLastOpenByName(name string) {
	for i := e.stack.Len() - 1; i >= 1; i-- {
		if e.stack.At(i).Namespace == tree.HTML && e.stack.At(i).LocalName == name {
			e.stack.RemoveElement(e.stack.At(i))
			return
		}
	}
}
