package engine

import (
	"strings"

	"github.com/corvidwiki/htmlbalance/dispatch"
)

func isAllWhitespace(s string) bool {
	return strings.TrimSpace(s) == ""
}

// inTable implements spec.md §4.5's table insertion mode (WHATWG
// §13.2.6.4.9), restricted to the element set spec.md's Non-goals leave in
// scope (no select/html/body/frameset branches).
func (e *Engine) inTable(tok dispatch.Token) outcome {
	switch tok.Kind {
	case dispatch.CharacterData:
		e.tableTextOriginalMode = e.mode
		e.pendingTableText = e.pendingTableText[:0]
		return reprocessIn(InTableText)

	case dispatch.Tag:
		switch tok.Name {
		case "caption":
			e.insertHTMLElement("caption", tok.Attrs)
			return switchTo(InCaption)
		case "colgroup":
			e.insertHTMLElement("colgroup", tok.Attrs)
			return switchTo(InColumnGroup)
		case "col":
			e.insertHTMLElement("colgroup", "")
			return reprocessIn(InColumnGroup)
		case "tbody", "thead", "tfoot":
			e.insertHTMLElement(tok.Name, tok.Attrs)
			return switchTo(InTableBody)
		case "tr", "td", "th":
			e.insertHTMLElement("tbody", "")
			return reprocessIn(InTableBody)
		case "table":
			e.popThroughTag("table")
			return reprocessIn(InBody)
		case "template":
			e.insertHTMLElement("template", tok.Attrs)
			e.templateModes = append(e.templateModes, InTable)
			return switchTo(InTemplate)
		}
		if isHeadLegalName(tok.Name) {
			e.headReturnMode = InTable
			return reprocessIn(InHead)
		}
		return e.fosterInBody(tok)

	case dispatch.EndTag:
		switch tok.Name {
		case "table":
			e.popThroughTag("table")
			return switchTo(InBody)
		case "template":
			return e.endTemplateFromBody()
		case "body", "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr", "td", "th":
			return handledOutcome()
		}
		return e.fosterInBody(tok)

	case dispatch.EOF:
		return handledOutcome()
	}
	return handledOutcome()
}

// fosterInBody processes a token under InBody's rules while foster
// parenting is active, used for the "anything else" table fallback
// (WHATWG's table foster-parenting algorithm, spec.md §4.2).
func (e *Engine) fosterInBody(tok dispatch.Token) outcome {
	e.stack.SetFosterParenting(true)
	out := e.inBody(tok)
	e.stack.SetFosterParenting(false)
	return out
}

// inTableText implements spec.md §4.5's "in table text" mode: accumulate
// character data, then on any other token flush it (foster-parenting
// non-whitespace runs) and reprocess under the mode table was entered from.
func (e *Engine) inTableText(tok dispatch.Token) outcome {
	if tok.Kind == dispatch.CharacterData {
		e.pendingTableText = append(e.pendingTableText, tok.Data)
		return handledOutcome()
	}

	for _, s := range e.pendingTableText {
		if isAllWhitespace(s) {
			e.insertText(s)
		} else {
			e.stack.SetFosterParenting(true)
			e.insertText(s)
			e.stack.SetFosterParenting(false)
		}
	}
	e.pendingTableText = e.pendingTableText[:0]
	return reprocessIn(e.tableTextOriginalMode)
}

// captionClosingTableTags is the set of table-structure tags that, while
// a caption is open, implicitly close it first (WHATWG §13.2.6.4.11).
var captionClosingTableTags = map[string]bool{
	"caption": true, "col": true, "colgroup": true, "tbody": true,
	"td": true, "tfoot": true, "th": true, "thead": true, "tr": true,
}

// captionIgnoredEndTags are end tags "in caption" ignores outright.
var captionIgnoredEndTags = map[string]bool{
	"body": true, "col": true, "colgroup": true, "html": true,
	"tbody": true, "td": true, "tfoot": true, "th": true, "thead": true, "tr": true,
}

// inCaption implements spec.md §4.5's caption mode.
func (e *Engine) inCaption(tok dispatch.Token) outcome {
	switch tok.Kind {
	case dispatch.EndTag:
		if tok.Name == "caption" {
			e.popThroughTag("caption")
			e.formatting.ClearToMarker()
			return switchTo(InTable)
		}
		if tok.Name == "table" {
			e.popThroughTag("caption")
			e.formatting.ClearToMarker()
			return reprocessIn(InTable)
		}
		if captionIgnoredEndTags[tok.Name] {
			return handledOutcome()
		}
	case dispatch.Tag:
		if captionClosingTableTags[tok.Name] {
			e.popThroughTag("caption")
			e.formatting.ClearToMarker()
			return reprocessIn(InTable)
		}
	}
	return e.inBody(tok)
}

// inColumnGroup implements spec.md §4.5's column-group mode.
func (e *Engine) inColumnGroup(tok dispatch.Token) outcome {
	switch tok.Kind {
	case dispatch.CharacterData:
		if isAllWhitespace(tok.Data) {
			e.insertText(tok.Data)
			return handledOutcome()
		}
	case dispatch.Tag:
		switch tok.Name {
		case "col":
			e.insertHTMLElement("col", tok.Attrs)
			e.stack.Pop()
			return handledOutcome()
		case "template":
			e.insertHTMLElement("template", tok.Attrs)
			e.templateModes = append(e.templateModes, InColumnGroup)
			return switchTo(InTemplate)
		}
		if isHeadLegalName(tok.Name) {
			e.headReturnMode = InColumnGroup
			return reprocessIn(InHead)
		}
	case dispatch.EndTag:
		if tok.Name == "colgroup" {
			e.popThroughTag("colgroup")
			return switchTo(InTable)
		}
	case dispatch.EOF:
		return handledOutcome()
	}

	e.popThroughTag("colgroup")
	return reprocessIn(InTable)
}

// inTableBody implements spec.md §4.5's table-body mode.
func (e *Engine) inTableBody(tok dispatch.Token) outcome {
	if tok.Kind == dispatch.Tag {
		switch tok.Name {
		case "tr":
			e.insertHTMLElement("tr", tok.Attrs)
			return switchTo(InRow)
		case "td", "th":
			e.insertHTMLElement("tr", "")
			return reprocessIn(InRow)
		}
	}
	if tok.Kind == dispatch.EndTag {
		switch tok.Name {
		case "tbody", "thead", "tfoot":
			e.popThroughTag(tok.Name)
			return switchTo(InTable)
		case "table":
			// "act as if an end tag with the tag name of the current node
			// had been seen" (WHATWG §13.2.6.4.13) — the open section may
			// be tbody, thead, or tfoot, not necessarily tbody.
			e.popThroughTag(e.current().LocalName)
			return reprocessIn(InTable)
		}
	}
	return e.inTable(tok)
}

// inRow implements spec.md §4.5's row mode.
func (e *Engine) inRow(tok dispatch.Token) outcome {
	if tok.Kind == dispatch.Tag {
		if tok.Name == "td" || tok.Name == "th" {
			e.insertHTMLElement(tok.Name, tok.Attrs)
			return switchTo(InCell)
		}
		if tok.Name == "tr" {
			e.popThroughTag("tr")
			return reprocessIn(InTableBody)
		}
	}
	if tok.Kind == dispatch.EndTag {
		switch tok.Name {
		case "tr":
			e.popThroughTag("tr")
			return switchTo(InTableBody)
		case "table":
			e.popThroughTag("tr")
			return reprocessIn(InTableBody)
		}
	}
	return e.inTable(tok)
}

// inCell implements spec.md §4.5's cell mode.
func (e *Engine) inCell(tok dispatch.Token) outcome {
	if tok.Kind == dispatch.EndTag {
		if tok.Name == "td" || tok.Name == "th" {
			e.popThroughTag(tok.Name)
			e.formatting.ClearToMarker()
			return switchTo(InRow)
		}
		if tok.Name == "tr" || tok.Name == "table" {
			e.popUntilAnyCell()
			e.formatting.ClearToMarker()
			return reprocessIn(InRow)
		}
	}
	if tok.Kind == dispatch.Tag {
		if tok.Name == "td" || tok.Name == "th" {
			e.popUntilAnyCell()
			e.formatting.ClearToMarker()
			return reprocessIn(InRow)
		}
	}
	return e.inBody(tok)
}

func (e *Engine) popUntilAnyCell() {
	for e.stack.Len() > 1 {
		name := e.current().LocalName
		e.stack.Pop()
		if name == "td" || name == "th" {
			return
		}
	}
}
