// Package buffer implements the line-oriented text buffer at the core
// of the editor.
//
// A Buffer owns the document content as an ordered sequence of lines
// together with a cursor and an optional selection. At least one line
// always exists; an empty document is a single empty line.
//
// All mutation goes through Apply, which executes one Action from a
// closed set (cursor motion, insertion, deletion, selection changes)
// and reports whether the action changed content. Content and cursor
// update together under one lock, so no caller can observe an
// inconsistent intermediate state, and cursor motion clamps at the
// document boundaries instead of erroring.
//
// Columns are measured in grapheme clusters. Insertion and deletion
// operate on whole clusters, so a multi-codepoint glyph is never
// split by an edit or straddled by the cursor.
package buffer
