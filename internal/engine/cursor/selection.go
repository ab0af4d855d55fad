package cursor

import "fmt"

// Selection is a range of selected text.
// Anchor is where the selection started; Head is the moving end (the
// cursor). When Anchor == Head the selection has no extent and acts as
// a bare cursor. The ordered pair (Start, End) defines the selected
// range regardless of which end was set first.
// Selection is an immutable value type.
type Selection struct {
	Anchor Position
	Head   Position
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head Position) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// IsEmpty returns true if the selection has no extent (just a cursor).
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Start returns the lower bound of the selection in document order.
func (s Selection) Start() Position {
	if s.Anchor.Before(s.Head) {
		return s.Anchor
	}
	return s.Head
}

// End returns the upper bound of the selection in document order.
func (s Selection) End() Position {
	if s.Anchor.After(s.Head) {
		return s.Anchor
	}
	return s.Head
}

// IsForward returns true if the selection extends forward
// (head at or after anchor).
func (s Selection) IsForward() bool {
	return !s.Head.Before(s.Anchor)
}

// Extend returns a new selection with the head moved to pos.
// The anchor stays fixed.
func (s Selection) Extend(pos Position) Selection {
	return Selection{Anchor: s.Anchor, Head: pos}
}

// Collapse collapses the selection to a cursor at the head.
func (s Selection) Collapse() Selection {
	return Selection{Anchor: s.Head, Head: s.Head}
}

// Normalize returns a forward selection covering the same range.
func (s Selection) Normalize() Selection {
	if s.IsForward() {
		return s
	}
	return Selection{Anchor: s.Head, Head: s.Anchor}
}

// Contains returns true if pos lies within the selected range.
// Empty selections contain nothing.
func (s Selection) Contains(pos Position) bool {
	return !pos.Before(s.Start()) && pos.Before(s.End())
}

// SameRange returns true if both selections cover the same range,
// regardless of direction.
func (s Selection) SameRange(other Selection) bool {
	return s.Start() == other.Start() && s.End() == other.End()
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor%s", s.Head)
	}
	dir := "→"
	if !s.IsForward() {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%s%s%s)", s.Anchor, dir, s.Head)
}
