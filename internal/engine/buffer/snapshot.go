package buffer

import (
	"strings"

	"github.com/kestrel-editor/kestrel/internal/engine/cursor"
)

// Snapshot is a read-only view of a buffer at a specific point in
// time. It is safe for concurrent access and does not change when the
// original buffer is modified. Highlighting and saving read from
// snapshots so edits never race with them.
type Snapshot struct {
	lines      []string
	cur        cursor.Position
	sel        *cursor.Selection
	revision   Revision
	lineEnding LineEnding
}

// Snapshot returns a read-only snapshot of the current buffer state.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	lines := make([]string, len(b.lines))
	copy(lines, b.lines)

	var sel *cursor.Selection
	if b.sel != nil {
		s := *b.sel
		sel = &s
	}

	return &Snapshot{
		lines:      lines,
		cur:        b.cur,
		sel:        sel,
		revision:   b.revision,
		lineEnding: b.lineEnding,
	}
}

// Text returns the full snapshot content as a string, joined with LF
// regardless of the source file's line-ending style.
func (s *Snapshot) Text() string {
	return strings.Join(s.lines, "\n")
}

// EncodedText returns the content joined with the buffer's line-ending
// style: the form written back to disk.
func (s *Snapshot) EncodedText() string {
	return strings.Join(s.lines, s.lineEnding.Sequence())
}

// LineEnding returns the line-ending style captured at snapshot time.
func (s *Snapshot) LineEnding() LineEnding {
	return s.lineEnding
}

// LineCount returns the number of lines. Always at least 1.
func (s *Snapshot) LineCount() int {
	return len(s.lines)
}

// Line returns the text of line i (without newline), or "" if i is out
// of range.
func (s *Snapshot) Line(i int) string {
	if i < 0 || i >= len(s.lines) {
		return ""
	}
	return s.lines[i]
}

// Cursor returns the cursor position at snapshot time.
func (s *Snapshot) Cursor() cursor.Position {
	return s.cur
}

// Selection returns the selection at snapshot time and whether one was
// active.
func (s *Snapshot) Selection() (cursor.Selection, bool) {
	if s.sel == nil {
		return cursor.Selection{}, false
	}
	return *s.sel, true
}

// Revision returns the content revision this snapshot was taken at.
func (s *Snapshot) Revision() Revision {
	return s.revision
}

// IsEmpty returns true if the snapshot holds a single empty line.
func (s *Snapshot) IsEmpty() bool {
	return len(s.lines) == 1 && s.lines[0] == ""
}
