// Package constants defines the static classification tables the tree
// balancer consults: void elements, special elements (which bound the
// adoption agency's furthest-block search), formatting elements (which
// enter the active formatting list), and the foreign-content tag/attribute
// adjustment tables from WHATWG HTML §13.2.6.5.
//
// Each hot set is backed by two tables: a map[atom.Atom]bool fast path for
// names golang.org/x/net/html/atom recognizes, and an authoritative
// map[string]bool fallback for everything else (foreign local names,
// obsolete-but-conforming tags the atom table omits). Classification
// functions always consult both, so correctness never depends on which
// names atom happens to carry.
package constants

import "golang.org/x/net/html/atom"

func atomSet(names ...string) map[atom.Atom]bool {
	m := make(map[atom.Atom]bool, len(names))
	for _, n := range names {
		if a := atom.Lookup([]byte(n)); a != 0 {
			m[a] = true
		}
	}
	return m
}

func lookup(hot map[atom.Atom]bool, cold map[string]bool, name string) bool {
	if a := atom.Lookup([]byte(name)); a != 0 && hot[a] {
		return true
	}
	return cold[name]
}

// VoidElements never take children and never emit a close tag.
var VoidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

var voidAtoms = atomSet(
	"area", "base", "br", "col", "embed", "hr", "img", "input", "link",
	"meta", "param", "source", "track", "wbr",
)

// IsVoid reports whether an HTML-namespace element is void.
func IsVoid(name string) bool { return lookup(voidAtoms, VoidElements, name) }

// SpecialElements force paragraph closure and terminate the adoption
// agency's furthest-block search. This is the subset of the spec's special
// set that is reachable under the supported element set (spec.md §1's
// Non-goals drop html/head/body/frameset/form/frame/plaintext/isindex/
// textarea/xmp/iframe/noembed/noscript/select/script/title entirely, so
// they are omitted here rather than carried as dead classification).
var SpecialElements = map[string]bool{
	"address": true, "applet": true, "area": true, "article": true,
	"aside": true, "base": true, "basefont": true, "bgsound": true,
	"blockquote": true, "br": true, "button": true, "caption": true,
	"center": true, "col": true, "colgroup": true, "dd": true,
	"details": true, "dialog": true, "dir": true, "div": true, "dl": true,
	"dt": true, "embed": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hgroup": true,
	"hr": true, "img": true, "input": true, "keygen": true, "li": true,
	"link": true, "listing": true, "main": true, "marquee": true,
	"menu": true, "menuitem": true, "meta": true, "nav": true,
	"object": true, "ol": true, "p": true, "param": true, "pre": true,
	"search": true, "section": true, "source": true, "style": true,
	"summary": true, "table": true, "tbody": true, "td": true,
	"template": true, "tfoot": true, "th": true, "thead": true, "tr": true,
	"track": true, "ul": true, "wbr": true,
}

var specialAtoms = atomSet(
	"address", "applet", "area", "article", "aside", "base", "basefont",
	"bgsound", "blockquote", "br", "button", "caption", "center", "col",
	"colgroup", "dd", "details", "dialog", "dir", "div", "dl", "dt",
	"embed", "fieldset", "figcaption", "figure", "footer", "h1", "h2",
	"h3", "h4", "h5", "h6", "header", "hgroup", "hr", "img", "input",
	"keygen", "li", "link", "listing", "main", "marquee", "menu",
	"menuitem", "meta", "nav", "object", "ol", "p", "param", "pre",
	"search", "section", "source", "style", "summary", "table", "tbody",
	"td", "template", "tfoot", "th", "thead", "tr", "track", "ul", "wbr",
)

// IsSpecial reports whether name is a member of the special set.
func IsSpecial(name string) bool { return lookup(specialAtoms, SpecialElements, name) }

// FormattingElements trigger the Adoption Agency Algorithm on a matching
// end tag and enter the active formatting list on a matching start tag.
var FormattingElements = map[string]bool{
	"a": true, "b": true, "big": true, "code": true, "em": true,
	"font": true, "i": true, "nobr": true, "s": true, "small": true,
	"strike": true, "strong": true, "tt": true, "u": true,
}

var formattingAtoms = atomSet(
	"a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small",
	"strike", "strong", "tt", "u",
)

// IsFormatting reports whether name is a formatting element.
func IsFormatting(name string) bool { return lookup(formattingAtoms, FormattingElements, name) }

// TableFosterTargets are current-node tags that trigger foster parenting
// when fosterParentMode is set.
var TableFosterTargets = map[string]bool{
	"table": true, "tbody": true, "tfoot": true, "thead": true, "tr": true,
}

var tableFosterAtoms = atomSet("table", "tbody", "tfoot", "thead", "tr")

// IsTableFosterTarget reports whether name is a foster-parenting target.
func IsTableFosterTarget(name string) bool {
	return lookup(tableFosterAtoms, TableFosterTargets, name)
}

// TableAllowedChildren are elements legal as direct children of a table
// element without triggering foster parenting for a start tag.
var TableAllowedChildren = map[string]bool{
	"caption": true, "colgroup": true, "tbody": true, "tfoot": true,
	"thead": true, "tr": true, "td": true, "th": true, "template": true,
}

// ImpliedEndTagElements may be popped implicitly ("generate implied end
// tags").
var ImpliedEndTagElements = map[string]bool{
	"dd": true, "dt": true, "li": true, "optgroup": true, "option": true,
	"p": true, "rb": true, "rp": true, "rt": true, "rtc": true,
}

var impliedEndAtoms = atomSet(
	"dd", "dt", "li", "optgroup", "option", "p", "rb", "rp", "rt", "rtc",
)

// IsImpliedEndTag reports whether name may be closed implicitly.
func IsImpliedEndTag(name string) bool { return lookup(impliedEndAtoms, ImpliedEndTagElements, name) }

// ThoroughlyImpliedEndTagElements is ImpliedEndTagElements plus the table
// structure elements, used by "generate implied end tags, thoroughly".
var ThoroughlyImpliedEndTagElements = map[string]bool{
	"caption": true, "colgroup": true, "dd": true, "dt": true, "li": true,
	"optgroup": true, "option": true, "p": true, "rb": true, "rp": true,
	"rt": true, "rtc": true, "tbody": true, "td": true, "tfoot": true,
	"th": true, "thead": true, "tr": true,
}

var thoroughlyImpliedEndAtoms = atomSet(
	"caption", "colgroup", "dd", "dt", "li", "optgroup", "option", "p",
	"rb", "rp", "rt", "rtc", "tbody", "td", "tfoot", "th", "thead", "tr",
)

// IsThoroughlyImpliedEndTag reports membership in ThoroughlyImpliedEndTagElements.
func IsThoroughlyImpliedEndTag(name string) bool {
	return lookup(thoroughlyImpliedEndAtoms, ThoroughlyImpliedEndTagElements, name)
}

// HeadingElements are h1..h6. Per spec.md §9's Open Question, an end tag
// for any heading pops through whichever heading is topmost on the stack.
var HeadingElements = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

var headingAtoms = atomSet("h1", "h2", "h3", "h4", "h5", "h6")

// IsHeading reports whether name is h1..h6.
func IsHeading(name string) bool { return lookup(headingAtoms, HeadingElements, name) }

// ForeignBreakoutElements are HTML-like start tags that force an exit from
// foreign content back to HTML insertion-mode rules (WHATWG §13.2.6.5).
var ForeignBreakoutElements = map[string]bool{
	"b": true, "big": true, "blockquote": true, "body": true, "br": true,
	"center": true, "code": true, "dd": true, "div": true, "dl": true,
	"dt": true, "em": true, "embed": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "head": true,
	"hr": true, "i": true, "img": true, "li": true, "listing": true,
	"menu": true, "meta": true, "nobr": true, "ol": true, "p": true,
	"pre": true, "ruby": true, "s": true, "small": true, "span": true,
	"strong": true, "strike": true, "sub": true, "sup": true,
	"table": true, "tt": true, "u": true, "ul": true, "var": true,
}

var breakoutAtoms = atomSet(
	"b", "big", "blockquote", "body", "br", "center", "code", "dd", "div",
	"dl", "dt", "em", "embed", "h1", "h2", "h3", "h4", "h5", "h6", "head",
	"hr", "i", "img", "li", "listing", "menu", "meta", "nobr", "ol", "p",
	"pre", "ruby", "s", "small", "span", "strong", "strike", "sub", "sup",
	"table", "tt", "u", "ul", "var",
)

// IsForeignBreakout reports whether a foreign-content start tag named name
// belongs to the breakout set ("font" additionally breaks out when it
// carries a color/face/size attribute; callers check that separately).
func IsForeignBreakout(name string) bool { return lookup(breakoutAtoms, ForeignBreakoutElements, name) }

// MarkerElements push a marker onto the active formatting list on their
// start tag (WHATWG §13.2.6.4's handling of applet/marquee/object, plus
// template and the table-cell/caption boundaries).
var MarkerElements = map[string]bool{
	"applet": true, "marquee": true, "object": true, "template": true,
	"caption": true, "td": true, "th": true,
}

var markerAtoms = atomSet("applet", "marquee", "object", "template", "caption", "td", "th")

// IsMarkerElement reports whether name pushes an active formatting marker.
func IsMarkerElement(name string) bool { return lookup(markerAtoms, MarkerElements, name) }

// Namespace URIs.
const (
	NamespaceHTML   = "http://www.w3.org/1999/xhtml"
	NamespaceSVG    = "http://www.w3.org/2000/svg"
	NamespaceMathML = "http://www.w3.org/1998/Math/MathML"
)

// IntegrationPoint identifies a foreign element by namespace and local name.
type IntegrationPoint struct {
	Namespace string
	LocalName string
}

// HTMLIntegrationPoints are SVG/MathML elements in which HTML content is
// legal (annotation-xml is additionally gated on its encoding attribute;
// see tree.Element.IsHTMLIntegrationPoint).
var HTMLIntegrationPoints = map[IntegrationPoint]bool{
	{Namespace: NamespaceMathML, LocalName: "annotation-xml"}: true,
	{Namespace: NamespaceSVG, LocalName: "foreignObject"}:     true,
	{Namespace: NamespaceSVG, LocalName: "desc"}:              true,
	{Namespace: NamespaceSVG, LocalName: "title"}:             true,
}

// MathMLTextIntegrationPoints accept text and most HTML start tags.
var MathMLTextIntegrationPoints = map[IntegrationPoint]bool{
	{Namespace: NamespaceMathML, LocalName: "mi"}:    true,
	{Namespace: NamespaceMathML, LocalName: "mo"}:    true,
	{Namespace: NamespaceMathML, LocalName: "mn"}:    true,
	{Namespace: NamespaceMathML, LocalName: "ms"}:    true,
	{Namespace: NamespaceMathML, LocalName: "mtext"}: true,
}

// SVGTagNameAdjustments maps lowercase SVG tag names to their camelCase form.
var SVGTagNameAdjustments = map[string]string{
	"altglyph": "altGlyph", "altglyphdef": "altGlyphDef",
	"altglyphitem": "altGlyphItem", "animatecolor": "animateColor",
	"animatemotion": "animateMotion", "animatetransform": "animateTransform",
	"clippath": "clipPath", "feblend": "feBlend",
	"fecolormatrix": "feColorMatrix", "fecomponenttransfer": "feComponentTransfer",
	"fecomposite": "feComposite", "feconvolvematrix": "feConvolveMatrix",
	"fediffuselighting": "feDiffuseLighting", "fedisplacementmap": "feDisplacementMap",
	"fedistantlight": "feDistantLight", "feflood": "feFlood",
	"fefunca": "feFuncA", "fefuncb": "feFuncB", "fefuncg": "feFuncG",
	"fefuncr": "feFuncR", "fegaussianblur": "feGaussianBlur",
	"feimage": "feImage", "femerge": "feMerge", "femergenode": "feMergeNode",
	"femorphology": "feMorphology", "feoffset": "feOffset",
	"fepointlight": "fePointLight", "fespecularlighting": "feSpecularLighting",
	"fespotlight": "feSpotLight", "fetile": "feTile",
	"feturbulence": "feTurbulence", "foreignobject": "foreignObject",
	"glyphref": "glyphRef", "lineargradient": "linearGradient",
	"radialgradient": "radialGradient", "textpath": "textPath",
}

// SVGAttributeAdjustments maps lowercase SVG attribute names to camelCase.
var SVGAttributeAdjustments = map[string]string{
	"attributename": "attributeName", "attributetype": "attributeType",
	"basefrequency": "baseFrequency", "baseprofile": "baseProfile",
	"calcmode": "calcMode", "clippathunits": "clipPathUnits",
	"diffuseconstant": "diffuseConstant", "edgemode": "edgeMode",
	"filterunits": "filterUnits", "glyphref": "glyphRef",
	"gradienttransform": "gradientTransform", "gradientunits": "gradientUnits",
	"kernelmatrix": "kernelMatrix", "kernelunitlength": "kernelUnitLength",
	"keypoints": "keyPoints", "keysplines": "keySplines", "keytimes": "keyTimes",
	"lengthadjust": "lengthAdjust", "limitingconeangle": "limitingConeAngle",
	"markerheight": "markerHeight", "markerunits": "markerUnits",
	"markerwidth": "markerWidth", "maskcontentunits": "maskContentUnits",
	"maskunits": "maskUnits", "numoctaves": "numOctaves",
	"pathlength": "pathLength", "patterncontentunits": "patternContentUnits",
	"patterntransform": "patternTransform", "patternunits": "patternUnits",
	"pointsatx": "pointsAtX", "pointsaty": "pointsAtY", "pointsatz": "pointsAtZ",
	"preservealpha": "preserveAlpha", "preserveaspectratio": "preserveAspectRatio",
	"primitiveunits": "primitiveUnits", "refx": "refX", "refy": "refY",
	"repeatcount": "repeatCount", "repeatdur": "repeatDur",
	"requiredextensions": "requiredExtensions", "requiredfeatures": "requiredFeatures",
	"specularconstant": "specularConstant", "specularexponent": "specularExponent",
	"spreadmethod": "spreadMethod", "startoffset": "startOffset",
	"stddeviation": "stdDeviation", "stitchtiles": "stitchTiles",
	"surfacescale": "surfaceScale", "systemlanguage": "systemLanguage",
	"tablevalues": "tableValues", "targetx": "targetX", "targety": "targetY",
	"textlength": "textLength", "viewbox": "viewBox", "viewtarget": "viewTarget",
	"xchannelselector": "xChannelSelector", "ychannelselector": "yChannelSelector",
	"zoomandpan": "zoomAndPan",
}

// MathMLAttributeAdjustments maps lowercase MathML attribute names to
// their camelCase form.
var MathMLAttributeAdjustments = map[string]string{
	"definitionurl": "definitionURL",
}

// UnsupportedElements lists the tag names spec.md §1's Non-goals exclude
// entirely (html/head/body/frameset/form/frame/plaintext/isindex/textarea/
// xmp/iframe/noembed/noscript/select/script/title). A builder's allow-list
// must not intersect this set (spec.md §6).
var UnsupportedElements = map[string]bool{
	"html": true, "head": true, "body": true, "frameset": true,
	"form": true, "frame": true, "plaintext": true, "isindex": true,
	"textarea": true, "xmp": true, "iframe": true, "noembed": true,
	"noscript": true, "select": true, "script": true, "title": true,
}

// IsUnsupported reports whether name is one of UnsupportedElements.
func IsUnsupported(name string) bool { return UnsupportedElements[name] }
