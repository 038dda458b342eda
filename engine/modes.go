// Package engine implements spec.md §4.5's InsertionModeMachine: the
// eleven insertion-mode handlers, the foreign-content decision procedure,
// and the Adoption Agency Algorithm, driven by an explicit outer loop
// (spec.md §9's "model mode transitions as return values, not recursion").
package engine

// InsertionMode is the current tree-construction state.
type InsertionMode int

const (
	InBody InsertionMode = iota
	InTable
	InTableText
	InCaption
	InColumnGroup
	InTableBody
	InRow
	InCell
	InTemplate
	InHead
	InText
)

func (m InsertionMode) String() string {
	switch m {
	case InBody:
		return "in body"
	case InTable:
		return "in table"
	case InTableText:
		return "in table text"
	case InCaption:
		return "in caption"
	case InColumnGroup:
		return "in column group"
	case InTableBody:
		return "in table body"
	case InRow:
		return "in row"
	case InCell:
		return "in cell"
	case InTemplate:
		return "in template"
	case InHead:
		return "in head"
	case InText:
		return "in text"
	default:
		return "unknown"
	}
}

// outcome is what a mode handler returns: either it fully handled the
// token, asked for a mode switch with no reprocessing, or asked for a mode
// switch followed by reprocessing the same token. Modeling this as a
// return value rather than letting handlers call each other directly
// keeps the driver loop as the only place recursion could occur.
type outcome struct {
	kind      outcomeKind
	nextMode  InsertionMode
	reprocess bool
}

type outcomeKind int

const (
	handled outcomeKind = iota
	switchMode
)

func handledOutcome() outcome { return outcome{kind: handled} }

// reprocessIn switches to mode and reprocesses the current token.
func reprocessIn(mode InsertionMode) outcome {
	return outcome{kind: switchMode, nextMode: mode, reprocess: true}
}

// switchTo switches to mode without reprocessing.
func switchTo(mode InsertionMode) outcome {
	return outcome{kind: switchMode, nextMode: mode, reprocess: false}
}
