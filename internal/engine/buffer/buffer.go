package buffer

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/kestrel-editor/kestrel/internal/engine/cursor"
)

// Revision uniquely identifies a buffer content revision.
// Every content-changing action produces a new revision.
type Revision uint64

// revisionCounter generates unique revision IDs.
var revisionCounter uint64

// NewRevision generates a new unique revision ID.
// Thread-safe using atomic operations.
func NewRevision() Revision {
	return Revision(atomic.AddUint64(&revisionCounter, 1))
}

// Buffer is the line-oriented text buffer. It owns content, cursor and
// selection, and mutates all three atomically through Apply.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	lines      []string
	cur        cursor.Position
	sel        *cursor.Selection
	revision   Revision
	lineEnding LineEnding
}

// New creates a new empty buffer: one empty line, cursor at (0:0).
func New(opts ...Option) *Buffer {
	b := &Buffer{
		lines:      []string{""},
		revision:   NewRevision(),
		lineEnding: LineEndingLF,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromString creates a buffer with initial content. Options apply
// after the content, so WithLineEnding overrides the detected style.
func NewFromString(s string, opts ...Option) *Buffer {
	b := New()
	b.SetText(s)
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetText replaces the entire content, resets the cursor to the
// document start and drops any selection. The line-ending style is
// detected from s so a later save writes the file back the way it
// came in. Used when a load resolves.
func (b *Buffer) SetText(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lineEnding = DetectLineEnding(s)
	s = normalizeLineEndings(s)
	b.lines = strings.Split(s, "\n")
	b.cur = cursor.Position{}
	b.sel = nil
	b.revision = NewRevision()
}

// Text returns the full content as a single string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, "\n")
}

// LineCount returns the number of lines. Always at least 1.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// Line returns the text of line i (without newline), or "" if i is out
// of range.
func (b *Buffer) Line(i int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

// IsEmpty returns true if the buffer holds a single empty line.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines) == 1 && b.lines[0] == ""
}

// Cursor returns the current cursor position.
func (b *Buffer) Cursor() cursor.Position {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cur
}

// Selection returns the current selection and whether one is active.
func (b *Buffer) Selection() (cursor.Selection, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.sel == nil {
		return cursor.Selection{}, false
	}
	return *b.sel, true
}

// Revision returns the current content revision.
func (b *Buffer) Revision() Revision {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// Apply executes one action and returns its classification and the
// resulting cursor. Content, cursor and selection update together
// under the buffer lock.
func (b *Buffer) Apply(a Action) Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	changed := false
	switch a.op {
	case opMoveCursor:
		b.moveCursorLocked(a.dir, a.extend)
	case opInsertText:
		changed = b.insertTextLocked(a.text)
	case opInsertNewline:
		changed = b.insertTextLocked("\n")
	case opBackspace:
		changed = b.backspaceLocked()
	case opDelete:
		changed = b.deleteLocked()
	case opSelectAll:
		b.selectAllLocked()
	case opSetSelection:
		b.setSelectionLocked(a.sel)
	}

	if changed {
		b.revision = NewRevision()
	}

	return Result{
		ContentChanged: changed,
		Cursor:         b.cur,
		Revision:       b.revision,
	}
}

// moveCursorLocked computes the target of a motion and updates cursor
// and selection. Motion clamps at document boundaries.
func (b *Buffer) moveCursorLocked(dir Direction, extend bool) {
	// A plain horizontal motion with an active selection collapses to
	// the selection edge instead of moving past it.
	if !extend && b.sel != nil && !b.sel.IsEmpty() {
		if dir == DirLeft {
			b.cur = b.sel.Start()
			b.sel = nil
			return
		}
		if dir == DirRight {
			b.cur = b.sel.End()
			b.sel = nil
			return
		}
	}

	prev := b.cur
	target := prev
	last := len(b.lines) - 1

	switch dir {
	case DirLeft:
		if prev.Col > 0 {
			target.Col = prev.Col - 1
		} else if prev.Line > 0 {
			target.Line = prev.Line - 1
			target.Col = graphemeCount(b.lines[target.Line])
		}
	case DirRight:
		if prev.Col < graphemeCount(b.lines[prev.Line]) {
			target.Col = prev.Col + 1
		} else if prev.Line < last {
			target.Line = prev.Line + 1
			target.Col = 0
		}
	case DirUp:
		if prev.Line > 0 {
			target.Line = prev.Line - 1
			target.Col = clampCol(b.lines[target.Line], prev.Col)
		} else {
			target.Col = 0
		}
	case DirDown:
		if prev.Line < last {
			target.Line = prev.Line + 1
			target.Col = clampCol(b.lines[target.Line], prev.Col)
		} else {
			target.Col = graphemeCount(b.lines[last])
		}
	case DirLineStart:
		target.Col = 0
	case DirLineEnd:
		target.Col = graphemeCount(b.lines[prev.Line])
	case DirDocStart:
		target = cursor.Position{}
	case DirDocEnd:
		target = cursor.Position{Line: last, Col: graphemeCount(b.lines[last])}
	}

	if extend {
		anchor := prev
		if b.sel != nil {
			anchor = b.sel.Anchor
		}
		sel := cursor.NewSelection(anchor, target)
		b.sel = &sel
	} else {
		b.sel = nil
	}
	b.cur = target
}

// insertTextLocked inserts s at the cursor, replacing an active
// selection first. Returns true if content changed.
func (b *Buffer) insertTextLocked(s string) bool {
	replaced := b.deleteSelectionLocked()
	if s == "" {
		return replaced
	}

	s = normalizeLineEndings(s)
	parts := strings.Split(s, "\n")

	line := b.lines[b.cur.Line]
	at := byteIndexOfCol(line, b.cur.Col)
	head, tail := line[:at], line[at:]

	if len(parts) == 1 {
		b.lines[b.cur.Line] = head + parts[0] + tail
		b.cur.Col += graphemeCount(parts[0])
		return true
	}

	newLines := make([]string, 0, len(parts))
	newLines = append(newLines, head+parts[0])
	newLines = append(newLines, parts[1:len(parts)-1]...)
	lastPart := parts[len(parts)-1]
	newLines = append(newLines, lastPart+tail)

	b.lines = splice(b.lines, b.cur.Line, b.cur.Line+1, newLines)
	b.cur = cursor.Position{
		Line: b.cur.Line + len(parts) - 1,
		Col:  graphemeCount(lastPart),
	}
	return true
}

// backspaceLocked removes the grapheme cluster before the cursor.
// At column zero of a non-first line it joins with the previous line.
// At document start it is a no-op.
func (b *Buffer) backspaceLocked() bool {
	if b.deleteSelectionLocked() {
		return true
	}

	switch {
	case b.cur.Col > 0:
		line := b.lines[b.cur.Line]
		from := byteIndexOfCol(line, b.cur.Col-1)
		to := byteIndexOfCol(line, b.cur.Col)
		b.lines[b.cur.Line] = line[:from] + line[to:]
		b.cur.Col--
		return true
	case b.cur.Line > 0:
		prev := b.lines[b.cur.Line-1]
		joinCol := graphemeCount(prev)
		b.lines[b.cur.Line-1] = prev + b.lines[b.cur.Line]
		b.lines = splice(b.lines, b.cur.Line, b.cur.Line+1, nil)
		b.cur = cursor.Position{Line: b.cur.Line - 1, Col: joinCol}
		return true
	default:
		return false
	}
}

// deleteLocked removes the grapheme cluster at the cursor.
// At end of line it joins with the next line. At document end it is a
// no-op.
func (b *Buffer) deleteLocked() bool {
	if b.deleteSelectionLocked() {
		return true
	}

	line := b.lines[b.cur.Line]
	switch {
	case b.cur.Col < graphemeCount(line):
		from := byteIndexOfCol(line, b.cur.Col)
		to := byteIndexOfCol(line, b.cur.Col+1)
		b.lines[b.cur.Line] = line[:from] + line[to:]
		return true
	case b.cur.Line < len(b.lines)-1:
		b.lines[b.cur.Line] = line + b.lines[b.cur.Line+1]
		b.lines = splice(b.lines, b.cur.Line+1, b.cur.Line+2, nil)
		return true
	default:
		return false
	}
}

// selectAllLocked selects the whole document, cursor at the end.
func (b *Buffer) selectAllLocked() {
	last := len(b.lines) - 1
	end := cursor.Position{Line: last, Col: graphemeCount(b.lines[last])}
	sel := cursor.NewSelection(cursor.Position{}, end)
	b.sel = &sel
	b.cur = end
}

// setSelectionLocked installs a clamped selection. An empty selection
// becomes a bare cursor at its head.
func (b *Buffer) setSelectionLocked(sel cursor.Selection) {
	clamped := cursor.NewSelection(
		b.clampPositionLocked(sel.Anchor),
		b.clampPositionLocked(sel.Head),
	)
	b.cur = clamped.Head
	if clamped.IsEmpty() {
		b.sel = nil
		return
	}
	b.sel = &clamped
}

// deleteSelectionLocked removes the selected range, if any, leaving
// the cursor at its start. Returns true if content was removed.
func (b *Buffer) deleteSelectionLocked() bool {
	if b.sel == nil || b.sel.IsEmpty() {
		b.sel = nil
		return false
	}

	start, end := b.sel.Start(), b.sel.End()
	startLine := b.lines[start.Line]
	endLine := b.lines[end.Line]
	head := startLine[:byteIndexOfCol(startLine, start.Col)]
	tail := endLine[byteIndexOfCol(endLine, end.Col):]

	b.lines = splice(b.lines, start.Line, end.Line+1, []string{head + tail})
	b.cur = start
	b.sel = nil
	return true
}

// clampPositionLocked clamps p to a valid position in current content.
func (b *Buffer) clampPositionLocked(p cursor.Position) cursor.Position {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line > len(b.lines)-1 {
		p.Line = len(b.lines) - 1
	}
	p.Col = clampCol(b.lines[p.Line], p.Col)
	return p
}

// splice replaces lines[from:to] with repl and returns the new slice.
func splice(lines []string, from, to int, repl []string) []string {
	out := make([]string, 0, len(lines)-(to-from)+len(repl))
	out = append(out, lines[:from]...)
	out = append(out, repl...)
	out = append(out, lines[to:]...)
	return out
}
