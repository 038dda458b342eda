package engine

import (
	"github.com/corvidwiki/htmlbalance/dispatch"
	"github.com/corvidwiki/htmlbalance/formatting"
	"github.com/corvidwiki/htmlbalance/internal/constants"
	"github.com/corvidwiki/htmlbalance/stack"
	"github.com/corvidwiki/htmlbalance/tree"
)

// Engine drives tree construction for one balance call. It is not safe for
// concurrent use across goroutines; construct one per call (spec.md §5).
type Engine struct {
	stack      *stack.Stack
	formatting formatting.List

	mode         InsertionMode
	originalMode InsertionMode

	templateModes []InsertionMode
	headReturnMode InsertionMode

	pendingTableText      []string
	tableTextHasNonSpace  bool
	tableTextOriginalMode InsertionMode

	forceHTMLMode bool

	strict bool
}

// New creates an engine rooted at a fresh HTML-namespace root element. The
// root is spec.md §3's sentinel: it is pushed once and never popped or
// flattened; Result flattens everything above it and concatenates its
// children.
func New(strict bool) *Engine {
	root := tree.New(tree.HTML, "html", "")
	return &Engine{
		stack:  stack.New(root),
		mode:   InBody,
		strict: strict,
	}
}

// Run consumes tokens in order, driving the insertion-mode state machine.
func (e *Engine) Run(tokens []dispatch.Token) {
	for _, tok := range tokens {
		e.process(tok)
	}
}

// Result flattens whatever remains open and returns the serialized output
// with the root wrapper stripped, per spec.md §6's output contract.
func (e *Engine) Result() string {
	e.stack.FlattenAll()
	return tree.Concat(e.stack.Root().Children())
}

// process dispatches a single token, looping while a handler asks to
// reprocess the same token under a new mode (spec.md §9's driver-loop
// design note), and first deciding foreign-vs-HTML per spec.md §4.5.
func (e *Engine) process(tok dispatch.Token) {
	for {
		if !e.forceHTMLMode && e.shouldUseForeignContent(tok) {
			if e.processForeignContent(tok) {
				continue
			}
			return
		}
		e.forceHTMLMode = false

		out := e.dispatch(tok)
		if out.kind == handled {
			return
		}
		e.mode = out.nextMode
		if !out.reprocess {
			return
		}
	}
}

func (e *Engine) dispatch(tok dispatch.Token) outcome {
	return e.dispatchAs(e.mode, tok)
}

// dispatchAs invokes mode's handler directly, as a one-off delegation
// rather than a persistent mode switch (spec.md §4.5's "process using the
// rules for the X insertion mode" wording, as opposed to "switch the
// insertion mode to X"). Callers that need the delegate's own outcome
// (including any genuine switch it requests) return it unchanged.
func (e *Engine) dispatchAs(mode InsertionMode, tok dispatch.Token) outcome {
	switch mode {
	case InBody:
		return e.inBody(tok)
	case InTable:
		return e.inTable(tok)
	case InTableText:
		return e.inTableText(tok)
	case InCaption:
		return e.inCaption(tok)
	case InColumnGroup:
		return e.inColumnGroup(tok)
	case InTableBody:
		return e.inTableBody(tok)
	case InRow:
		return e.inRow(tok)
	case InCell:
		return e.inCell(tok)
	case InTemplate:
		return e.inTemplate(tok)
	case InHead:
		return e.inHead(tok)
	case InText:
		return e.inText(tok)
	default:
		return e.inBody(tok)
	}
}

func (e *Engine) current() *tree.Element { return e.stack.Current() }

func (e *Engine) insertHTMLElement(name, attrs string) *tree.Element {
	el := tree.New(tree.HTML, name, attrs)
	e.stack.InsertElement(el)
	if constants.IsMarkerElement(name) {
		e.formatting.PushMarker()
	}
	return el
}

func (e *Engine) insertText(data string) {
	if data == "" {
		return
	}
	e.stack.InsertText(data)
}

// reconstructActiveFormatting implements spec.md §4.3's reconstruction,
// wired to the stack's membership test and this engine's element insertion
// primitive.
func (e *Engine) reconstructActiveFormatting() {
	e.formatting.Reconstruct(
		func(n *tree.Element) bool { return e.stack.Contains(n) },
		func(name, attrs string) *tree.Element {
			el := tree.New(tree.HTML, name, attrs)
			e.stack.InsertElement(el)
			return el
		},
	)
}

// popThroughTag pops until and including the first stack element named
// name (WHATWG's "pop until an element with tag name X has been popped").
func (e *Engine) popThroughTag(name string) {
	e.stack.PopTo(tree.Name(name))
}
