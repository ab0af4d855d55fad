package cursor

import "fmt"

// Position is a line/column location in a buffer.
// Line is 0-indexed. Col is a 0-indexed grapheme-cluster offset within
// the line, so a multi-codepoint glyph counts as one column.
// Position is an immutable value type.
type Position struct {
	Line int
	Col  int
}

// NewPosition creates a position, clamping negative components to zero.
func NewPosition(line, col int) Position {
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	return Position{Line: line, Col: col}
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other,
// in document order.
func (p Position) Compare(other Position) int {
	if p.Line != other.Line {
		if p.Line < other.Line {
			return -1
		}
		return 1
	}
	if p.Col != other.Col {
		if p.Col < other.Col {
			return -1
		}
		return 1
	}
	return 0
}

// Before returns true if p comes before other in document order.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other in document order.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// IsZero returns true if this is the document start (0:0).
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Col == 0
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Col)
}

// ToSelection converts this position to a selection with no extent.
func (p Position) ToSelection() Selection {
	return Selection{Anchor: p, Head: p}
}
