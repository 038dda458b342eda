package engine

import (
	"regexp"
	"strings"

	"github.com/corvidwiki/htmlbalance/dispatch"
	"github.com/corvidwiki/htmlbalance/internal/constants"
	"github.com/corvidwiki/htmlbalance/tree"
)

// shouldUseForeignContent implements spec.md §4.5's foreign-vs-HTML
// decision: the adjusted current node (here just the current node, since
// this engine has no fragment-context override) must be non-HTML, the
// token must not be EOF, and none of the integration-point carve-outs
// apply.
func (e *Engine) shouldUseForeignContent(tok dispatch.Token) bool {
	current := e.current()
	if current.Namespace == tree.HTML {
		return false
	}
	if tok.Kind == dispatch.EOF {
		return false
	}

	if current.IsMathMLTextIntegrationPoint() {
		if tok.Kind == dispatch.CharacterData {
			return false
		}
		if tok.Kind == dispatch.Tag && tok.Name != "mglyph" && tok.Name != "malignmark" {
			return false
		}
	}

	if current.Namespace == tree.MathML && current.LocalName == "annotation-xml" {
		if tok.Kind == dispatch.Tag && tok.Name == "svg" {
			return false
		}
	}

	if current.IsHTMLIntegrationPoint() {
		if tok.Kind == dispatch.CharacterData || tok.Kind == dispatch.Tag {
			return false
		}
	}

	return true
}

// processForeignContent handles one token under the foreign-content rules
// (WHATWG §13.2.6.5, adapted). It returns true when the caller should
// reprocess the same token (a breakout occurred and forceHTMLMode is set).
func (e *Engine) processForeignContent(tok dispatch.Token) bool {
	current := e.current()

	switch tok.Kind {
	case dispatch.CharacterData:
		e.insertText(tok.Data)
		return false

	case dispatch.Tag:
		if constants.IsForeignBreakout(tok.Name) || (tok.Name == "font" && tree.FontHasBreakoutAttr(tok.Attrs)) {
			e.popUntilHTMLOrIntegrationPoint()
			e.mode = e.resetInsertionModeAppropriately()
			e.forceHTMLMode = true
			return true
		}

		ns := current.Namespace
		name := tok.Name
		attrs := tok.Attrs
		if ns == tree.SVG {
			if adj, ok := constants.SVGTagNameAdjustments[name]; ok {
				name = adj
			}
			attrs = adjustAttrNames(attrs, constants.SVGAttributeAdjustments)
		} else if ns == tree.MathML {
			attrs = adjustAttrNames(attrs, constants.MathMLAttributeAdjustments)
		}

		el := tree.New(ns, name, attrs)
		current.AppendChild(el)
		if !tok.SelfClosing {
			e.stack.Push(el)
		}
		return false

	case dispatch.EndTag:
		if tok.Name == "br" || tok.Name == "p" {
			e.popUntilHTMLOrIntegrationPoint()
			e.mode = e.resetInsertionModeAppropriately()
			e.forceHTMLMode = true
			return true
		}

		for i := e.stack.Len() - 1; i >= 0; i-- {
			node := e.stack.At(i)
			if strings.EqualFold(node.LocalName, tok.Name) {
				if node.Namespace == tree.HTML {
					e.forceHTMLMode = true
					return true
				}
				for e.stack.Len()-1 >= i {
					e.stack.Pop()
				}
				return false
			}
			if node.Namespace == tree.HTML {
				e.forceHTMLMode = true
				return true
			}
		}
		return false

	default:
		return false
	}
}

func (e *Engine) popUntilHTMLOrIntegrationPoint() {
	for e.stack.Len() > 1 {
		node := e.current()
		if node.Namespace == tree.HTML || node.IsHTMLIntegrationPoint() {
			return
		}
		e.stack.Pop()
	}
}

var attrTokenRe = regexp.MustCompile(`([^\s="]+)="([^"]*)"`)

// adjustAttrNames rewrites attribute names in a canonical attribute string
// according to a lowercase-name → adjusted-name table (SVG/MathML
// camelCase restoration, WHATWG §13.2.6.5). xlink:/xml:/xmlns attribute
// names are already in their canonical qualified form upstream, so no
// rewrite table is applied to them under this engine's flat-attribute-
// string model.
func adjustAttrNames(attrs string, table map[string]string) string {
	if attrs == "" {
		return attrs
	}
	return attrTokenRe.ReplaceAllStringFunc(attrs, func(m string) string {
		parts := attrTokenRe.FindStringSubmatch(m)
		name, value := parts[1], parts[2]
		if adj, ok := table[strings.ToLower(name)]; ok {
			name = adj
		}
		return name + `="` + value + `"`
	})
}
