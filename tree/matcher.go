package tree

import "github.com/corvidwiki/htmlbalance/internal/constants"

// Matcher is spec.md §4.1's "isA" predicate: it matches by (a) node
// identity, (b) a namespace-keyed set of local names, or (c) a raw string
// (HTML-namespace local name only).
type Matcher struct {
	identity *Element
	sets     map[Namespace]map[string]bool
	raw      string
	hasRaw   bool
}

// Identity returns a Matcher that matches only e itself.
func Identity(e *Element) Matcher { return Matcher{identity: e} }

// NameSet returns a Matcher over a namespace-keyed set of local names.
func NameSet(sets map[Namespace]map[string]bool) Matcher { return Matcher{sets: sets} }

// Name returns a Matcher for an HTML-namespace local name.
func Name(name string) Matcher { return Matcher{raw: name, hasRaw: true} }

// Names returns a Matcher for any of several HTML-namespace local names.
func Names(names ...string) Matcher {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return Matcher{sets: map[Namespace]map[string]bool{HTML: set}}
}

// Matches reports whether e satisfies m.
func (m Matcher) Matches(e *Element) bool {
	if m.identity != nil {
		return e == m.identity
	}
	if m.hasRaw {
		return e.Namespace == HTML && e.LocalName == m.raw
	}
	if m.sets != nil {
		if set, ok := m.sets[e.Namespace]; ok {
			return set[e.LocalName]
		}
		return false
	}
	return false
}

// IsA reports whether e satisfies m (method form, for call-site readability
// at the engine's mode-handler sites).
func (e *Element) IsA(m Matcher) bool { return m.Matches(e) }

// IsMathMLTextIntegrationPoint reports whether e is one of mi/mo/mn/ms/
// mtext in the MathML namespace (WHATWG §13.1.6).
func (e *Element) IsMathMLTextIntegrationPoint() bool {
	if e.Namespace != MathML {
		return false
	}
	return constants.MathMLTextIntegrationPoints[constants.IntegrationPoint{
		Namespace: constants.NamespaceMathML,
		LocalName: e.LocalName,
	}]
}

// IsHTMLIntegrationPoint reports whether e is an HTML integration point:
// svg foreignObject/desc/title unconditionally, or a MathML annotation-xml
// element whose encoding attribute is "text/html" or
// "application/xhtml+xml" (case-insensitively). The unconditional half of
// the check is a lookup against constants.HTMLIntegrationPoints; the
// annotation-xml case additionally gates that table's membership on the
// element's encoding attribute, since the table alone can't express that.
func (e *Element) IsHTMLIntegrationPoint() bool {
	switch e.Namespace {
	case SVG:
		point := constants.IntegrationPoint{Namespace: constants.NamespaceSVG, LocalName: e.LocalName}
		return constants.HTMLIntegrationPoints[point]
	case MathML:
		point := constants.IntegrationPoint{Namespace: constants.NamespaceMathML, LocalName: e.LocalName}
		if !constants.HTMLIntegrationPoints[point] {
			return false
		}
		enc, ok := AttrValue(e.AttrString, "encoding")
		if !ok {
			return false
		}
		return equalFoldAny(enc, "text/html", "application/xhtml+xml")
	default:
		return false
	}
}

func equalFoldAny(s string, candidates ...string) bool {
	for _, c := range candidates {
		if len(s) == len(c) && foldEqual(s, c) {
			return true
		}
	}
	return false
}

func foldEqual(a, b string) bool {
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// FontHasBreakoutAttr reports whether a foreign "font" start tag carries a
// color, face, or size attribute, which forces it into the breakout set
// alongside the always-breakout elements (WHATWG §13.2.6.5).
func FontHasBreakoutAttr(attrString string) bool {
	for _, name := range []string{"color", "face", "size"} {
		if _, ok := AttrValue(attrString, name); ok {
			return true
		}
	}
	return false
}
