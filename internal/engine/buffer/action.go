package buffer

import (
	"fmt"

	"github.com/kestrel-editor/kestrel/internal/engine/cursor"
)

// Direction identifies a cursor motion.
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
	DirLineStart // Home
	DirLineEnd   // End
	DirDocStart
	DirDocEnd
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLineStart:
		return "line-start"
	case DirLineEnd:
		return "line-end"
	case DirDocStart:
		return "doc-start"
	case DirDocEnd:
		return "doc-end"
	default:
		return "unknown"
	}
}

// op identifies the kind of an Action.
type op uint8

const (
	opMoveCursor op = iota
	opInsertText
	opInsertNewline
	opBackspace
	opDelete
	opSelectAll
	opSetSelection
)

// Action is a single buffer operation. Actions are built through the
// constructor functions below and carry no externally supplied state
// beyond what the constructors accept, so Apply never validates an
// Action itself, only clamps positions against current content.
type Action struct {
	op     op
	dir    Direction
	extend bool
	text   string
	sel    cursor.Selection
}

// MoveCursor moves the cursor one step in the given direction.
// When extend is true the selection anchor stays put (or is planted at
// the current cursor) and only the head moves.
func MoveCursor(dir Direction, extend bool) Action {
	return Action{op: opMoveCursor, dir: dir, extend: extend}
}

// InsertRune inserts a single rune at the cursor.
func InsertRune(r rune) Action {
	return Action{op: opInsertText, text: string(r)}
}

// InsertText inserts text at the cursor. The text may span multiple
// lines; line endings are normalized on insertion.
func InsertText(s string) Action {
	return Action{op: opInsertText, text: s}
}

// InsertNewline splits the current line at the cursor.
func InsertNewline() Action {
	return Action{op: opInsertNewline}
}

// Backspace removes the grapheme cluster before the cursor, joining
// with the previous line at column zero. No-op at document start.
func Backspace() Action {
	return Action{op: opBackspace}
}

// Delete removes the grapheme cluster at the cursor, joining with the
// next line at end of line. No-op at document end.
func Delete() Action {
	return Action{op: opDelete}
}

// SelectAll selects the entire document and moves the cursor to its end.
func SelectAll() Action {
	return Action{op: opSelectAll}
}

// SetSelection replaces the selection with sel, clamped to valid
// positions. An empty selection collapses to a bare cursor at its head.
func SetSelection(sel cursor.Selection) Action {
	return Action{op: opSetSelection, sel: sel}
}

// String returns a human-readable representation of the action.
func (a Action) String() string {
	switch a.op {
	case opMoveCursor:
		if a.extend {
			return fmt.Sprintf("MoveCursor(%s, extend)", a.dir)
		}
		return fmt.Sprintf("MoveCursor(%s)", a.dir)
	case opInsertText:
		return fmt.Sprintf("InsertText(%q)", a.text)
	case opInsertNewline:
		return "InsertNewline"
	case opBackspace:
		return "Backspace"
	case opDelete:
		return "Delete"
	case opSelectAll:
		return "SelectAll"
	case opSetSelection:
		return fmt.Sprintf("SetSelection(%s)", a.sel)
	default:
		return "unknown"
	}
}

// Result reports the outcome of applying an Action.
type Result struct {
	// ContentChanged is true when the action modified document text.
	// It is the sole input to dirty tracking: cursor-only actions must
	// never mark the document dirty. An edit that could not change
	// anything (Backspace at document start, Delete at document end)
	// reports false.
	ContentChanged bool

	// Cursor is the cursor position after the action.
	Cursor cursor.Position

	// Revision is the buffer revision after the action.
	Revision Revision
}
