package engine

import (
	"github.com/corvidwiki/htmlbalance/dispatch"
	"github.com/corvidwiki/htmlbalance/tree"
)

// isHeadLegalName reports whether name is one of spec.md §4.5's elements
// "legal in head" (base, link, meta, style, noframes, template). Any
// insertion mode that encounters one of these while processing a start tag
// hands off to InHead rather than special-casing it locally.
func isHeadLegalName(name string) bool {
	switch name {
	case "base", "link", "meta", "style", "noframes", "template":
		return true
	default:
		return false
	}
}

// inHead implements spec.md §4.5's restricted InHead mode: it is only ever
// reached via a reprocessIn(InHead) from another mode recognizing one of
// isHeadLegalName's tags, processes exactly that one token, and returns to
// headReturnMode (except for style/noframes, which pass through InText
// until their end tag, and template, whose own mode persists until its
// matching end tag).
func (e *Engine) inHead(tok dispatch.Token) outcome {
	if tok.Kind != dispatch.Tag {
		return switchTo(e.headReturnMode)
	}

	switch tok.Name {
	case "base", "link", "meta":
		e.insertHTMLElement(tok.Name, tok.Attrs)
		e.stack.Pop()
	case "style", "noframes":
		e.insertHTMLElement(tok.Name, tok.Attrs)
		e.originalMode = e.headReturnMode
		return switchTo(InText)
	case "template":
		e.insertHTMLElement("template", tok.Attrs)
		e.templateModes = append(e.templateModes, e.headReturnMode)
		return switchTo(InTemplate)
	}
	return switchTo(e.headReturnMode)
}

// inText implements spec.md §4.5's InText mode: the raw-text substitute
// entered around style/noframes content. Character data is inserted
// verbatim and start tags are ignored; any end tag closes the current
// style/noframes element (WHATWG's "pop the current node") and returns to
// originalMode.
func (e *Engine) inText(tok dispatch.Token) outcome {
	switch tok.Kind {
	case dispatch.CharacterData:
		e.insertText(tok.Data)
		return handledOutcome()
	case dispatch.EndTag:
		e.stack.Pop()
		return switchTo(e.originalMode)
	case dispatch.EOF:
		if e.stack.Len() > 1 {
			e.stack.Pop()
		}
		return switchTo(e.originalMode)
	default:
		return handledOutcome()
	}
}

// inTemplate implements spec.md §4.5's InTemplate mode: non-closing tokens
// are dispatched under the current template insertion mode (the top of
// templateModes), matching WHATWG's "process using the rules for the
// current template insertion mode" (§13.2.6.4.18, trimmed to this engine's
// mode set).
func (e *Engine) inTemplate(tok dispatch.Token) outcome {
	switch tok.Kind {
	case dispatch.EndTag:
		if tok.Name == "template" {
			return e.endTemplateFromBody()
		}
	case dispatch.EOF:
		return e.endTemplateFromBody()
	}

	target := InBody
	if len(e.templateModes) > 0 {
		target = e.templateModes[len(e.templateModes)-1]
	}
	return e.dispatchAs(target, tok)
}

// endTemplateFromBody implements the "</template>" end-tag algorithm
// (WHATWG §13.2.6.4.9's final case, §13.2.6.4.18): ignored if no template
// element is open; otherwise closes it thoroughly, clears the active
// formatting list back to its marker, pops the template-mode stack, and
// resets the insertion mode from what remains open.
func (e *Engine) endTemplateFromBody() outcome {
	hasTemplate := false
	for i := e.stack.Len() - 1; i >= 0; i-- {
		if n := e.stack.At(i); n.Namespace == tree.HTML && n.LocalName == "template" {
			hasTemplate = true
			break
		}
	}
	if !hasTemplate {
		return handledOutcome()
	}

	e.stack.GenerateImpliedEndTagsThoroughly()
	e.popThroughTag("template")
	e.formatting.ClearToMarker()
	if len(e.templateModes) > 0 {
		e.templateModes = e.templateModes[:len(e.templateModes)-1]
	}
	return switchTo(e.resetInsertionModeAppropriately())
}
