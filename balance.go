// Package htmlbalance implements spec.md's HTML5 fragment tree-balancing
// engine: it reads a fragment of sanitizer-produced markup and emits
// well-formed, spec-conformant HTML that survives round-tripping through
// any conforming HTML5 parser/serializer unchanged.
//
// # Basic usage
//
//	out, err := htmlbalance.Balance("<b>1<i>2</b>3</i>", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(out) // <b>1<i>2</i></b><i>3</i>
//
// Balance does not build an in-memory DOM of the completed document; it
// streams nodes through an open-elements stack and flattens each one to a
// string the moment it is popped (spec.md §9).
package htmlbalance

import (
	"regexp"
	"strings"

	"github.com/corvidwiki/htmlbalance/dispatch"
	"github.com/corvidwiki/htmlbalance/engine"
	htmlerrors "github.com/corvidwiki/htmlbalance/errors"
)

// Version is the current version of htmlbalance.
const Version = "0.1.0-dev"

// Balance balances text into well-formed HTML5 per spec.md, applying the
// options given. processingArgs is forwarded verbatim to a
// WithProcessingCallback hook, if one was installed; pass nil when unused.
//
// A disallowed configuration returns a *errors.ConfigError in either mode.
// Otherwise, in non-strict mode (the default) there is no user-visible error
// surface: malformed input degrades gracefully and Balance always returns a
// string. In strict mode, an input-contract violation returns a non-nil
// error instead of a result.
func Balance(text string, processingArgs any, opts ...Option) (string, error) {
	cfg := newConfig(opts...)
	if err := cfg.validate(); err != nil {
		return "", err
	}

	if cfg.strict {
		if errs := checkInputContract(text); len(errs) > 0 {
			if len(errs) == 1 {
				return "", errs[0]
			}
			return "", htmlerrors.Errors(errs)
		}
	}

	var cb func(attrs *string)
	if cfg.processingCallback != nil {
		cb = func(attrs *string) { cfg.processingCallback(attrs, processingArgs) }
	}

	tokens := dispatch.Tokenize(text, dispatch.Options{
		Allowed:            cfg.allowed,
		NormalizeAttrs:     cfg.normalizeAttrs,
		ProcessingCallback: cb,
	})

	e := engine.New(cfg.strict)
	e.Run(tokens)
	return e.Result(), nil
}

// commentPattern matches an HTML comment; the input contract (spec.md §6)
// forbids comments reaching Balance at all.
var commentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)

// tagChunkPattern mirrors dispatch's tagPattern: used here only to decide
// whether a '<'-delimited chunk opens a legitimate tag, for the stray-'<'
// contract check below.
var tagChunkPattern = regexp.MustCompile(`(?s)^/?[A-Za-z][A-Za-z0-9:-]*[^>]*?/?>`)

// attrStringPattern matches the canonical attribute-string grammar spec.md
// §6 requires in strict mode: zero or more `" " NAME "=" '"' VALUE '"'`
// groups followed by optional trailing spaces.
var attrStringPattern = regexp.MustCompile(`^( [A-Za-z][A-Za-z0-9:-]*="[^"]*")*\s*$`)

// checkInputContract asserts spec.md §6's strict-mode input contract:
// no comments, no null bytes, every '<' begins a tag, and every tag's raw
// attribute string is already in canonical form. It returns one
// AssertionError per violated clause rather than failing fast, so a caller
// using WithStrictMode sees everything wrong with a payload at once.
func checkInputContract(text string) []error {
	var errs []error

	if commentPattern.MatchString(text) {
		errs = append(errs, htmlerrors.NewAssertionError(htmlerrors.CodeUnbalancedLessThan, "input contains an HTML comment, which strict mode forbids"))
	}
	if strings.ContainsRune(text, 0) {
		errs = append(errs, htmlerrors.NewAssertionError(htmlerrors.CodeUnbalancedLessThan, "input contains a null byte"))
	}

	parts := strings.Split(text, "<")
	for _, chunk := range parts[1:] {
		m := tagChunkPattern.FindString(chunk)
		if m == "" {
			errs = append(errs, htmlerrors.NewAssertionError(htmlerrors.CodeUnbalancedLessThan, "unescaped '<' does not begin a tag: %q", truncate(chunk, 24)))
			continue
		}
		if attrs, ok := extractRawAttrs(m); ok && !attrStringPattern.MatchString(attrs) {
			errs = append(errs, htmlerrors.NewAssertionError(htmlerrors.CodeMalformedAttrs, "attribute string is not in canonical form: %q", truncate(attrs, 40)))
		}
	}

	return errs
}

// extractRawAttrs pulls the attribute text out of a chunk already known to
// match tagChunkPattern: everything between the tag name and the closing
// '/>' or '>'.
func extractRawAttrs(tag string) (string, bool) {
	m := rawAttrsPattern.FindStringSubmatch(tag)
	if m == nil {
		return "", false
	}
	return m[1], true
}

var rawAttrsPattern = regexp.MustCompile(`(?s)^/?[A-Za-z][A-Za-z0-9:-]*([^>]*?)/?>$`)

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
