package constants

// Scope terminator tables for "has an element in scope" checks
// (WHATWG HTML §13.2.5.2.5). Integration points additionally terminate
// scope checks — see stack.Stack.HasElementInScope, which tests
// HTMLIntegrationPoints/MathMLTextIntegrationPoints alongside these sets.

// DefaultScope is the scope used by most "in scope" checks.
var DefaultScope = map[string]bool{
	"applet": true, "caption": true, "html": true, "table": true,
	"td": true, "th": true, "marquee": true, "object": true,
	"template": true,
}

// ListItemScope is DefaultScope plus ol/ul, used for li closure.
var ListItemScope = map[string]bool{
	"applet": true, "caption": true, "html": true, "table": true,
	"td": true, "th": true, "marquee": true, "object": true,
	"template": true, "ol": true, "ul": true,
}

// ButtonScope is DefaultScope plus button, used for p closure.
var ButtonScope = map[string]bool{
	"applet": true, "caption": true, "html": true, "table": true,
	"td": true, "th": true, "marquee": true, "object": true,
	"template": true, "button": true,
}

// TableScope is the narrower terminator set for "in table scope" checks.
// No handler in the engine consults it.
var TableScope = map[string]bool{
	"html": true, "table": true, "template": true,
}
