// Package dispatch implements spec.md §4.6's tokenizer/dispatcher: chunk
// splitting on '<', a single tag-matching regular expression per chunk,
// tag-name allow-listing, and the two host hooks (a processing callback
// applied to the raw attribute string, and an attribute-normalization
// function run afterward). It is the engine's only source of tokens.
package dispatch

import (
	"regexp"
	"strings"
)

// Kind identifies a token's category.
type Kind int

const (
	Tag Kind = iota
	EndTag
	CharacterData
	EOF
)

// Token is one unit the engine consumes. Name and Attrs are only
// meaningful for Tag/EndTag; Data only for CharacterData.
type Token struct {
	Kind        Kind
	Name        string
	Attrs       string
	SelfClosing bool
	Data        string
}

// Options configures a tokenization pass.
type Options struct {
	// Allowed, if non-nil, restricts accepted tag names; a tag whose
	// lowercased name is absent degrades to literal text.
	Allowed map[string]bool
	// NormalizeAttrs canonicalizes, sorts, and re-quotes an attribute
	// string. Receives the (already processing-callback-mutated) raw
	// attribute text with leading/trailing whitespace trimmed and, when
	// non-empty, a single leading space added back.
	NormalizeAttrs func(string) string
	// ProcessingCallback, if set, is applied to the pre-normalization
	// attribute string of every tag chunk tagPattern matches, by reference,
	// before allow-listing and normalization run; tags the allow-list then
	// rejects have also been passed to it.
	ProcessingCallback func(attrs *string)
}

// tagPattern recognizes a tag chunk as (slash, name, attrs, selfSlash,
// rest): everything up to and including the first unescaped '>' is the
// tag; anything after is trailing character data for this chunk.
var tagPattern = regexp.MustCompile(`(?s)^(/?)([A-Za-z][A-Za-z0-9:-]*)([^>]*?)(/?)>(.*)$`)

// Tokenize splits text on '<' and applies tagPattern to each resulting
// chunk, in the order spec.md §4.6 describes. The returned slice always
// ends with exactly one EOF token.
func Tokenize(text string, opts Options) []Token {
	parts := strings.Split(text, "<")
	var out []Token
	if parts[0] != "" {
		out = append(out, Token{Kind: CharacterData, Data: escapeGT(parts[0])})
	}
	for _, chunk := range parts[1:] {
		out = append(out, tokenizeChunk(chunk, opts)...)
	}
	out = append(out, Token{Kind: EOF})
	return out
}

func tokenizeChunk(chunk string, opts Options) []Token {
	m := tagPattern.FindStringSubmatch(chunk)
	if m == nil {
		return []Token{{Kind: CharacterData, Data: escapeChunkAsText(chunk)}}
	}
	slash, rawName, rawAttrs, selfSlash, rest := m[1], m[2], m[3], m[4], m[5]
	name := strings.ToLower(rawName)

	attrs := rawAttrs
	if opts.ProcessingCallback != nil {
		opts.ProcessingCallback(&attrs)
	}
	if opts.Allowed != nil && !opts.Allowed[name] {
		return []Token{{Kind: CharacterData, Data: escapeChunkAsText(chunk)}}
	}

	attrs = canonicalizeSpacing(attrs)
	if opts.NormalizeAttrs != nil {
		attrs = opts.NormalizeAttrs(attrs)
	}

	kind := Tag
	if slash == "/" {
		kind = EndTag
	}
	tok := Token{Kind: kind, Name: name, Attrs: attrs, SelfClosing: selfSlash == "/"}
	if rest == "" {
		return []Token{tok}
	}
	return []Token{tok, {Kind: CharacterData, Data: escapeGT(rest)}}
}

func canonicalizeSpacing(attrs string) string {
	attrs = strings.TrimSpace(attrs)
	if attrs == "" {
		return ""
	}
	return " " + attrs
}

func escapeGT(s string) string { return strings.ReplaceAll(s, ">", "&gt;") }

// escapeChunkAsText renders a rejected or non-matching "<chunk" as safe
// text: the leading delimiter this chunk was split on, plus the chunk
// itself, both angle brackets escaped.
func escapeChunkAsText(chunk string) string {
	s := strings.ReplaceAll(chunk, ">", "&gt;")
	return "&lt;" + s
}
