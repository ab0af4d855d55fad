// Package cursor provides the position and selection value types used
// by the text buffer.
//
// A Position addresses a line and a column, where the column is
// measured in grapheme clusters (user-perceived characters), not bytes
// or runes. A Selection is an anchor/head pair of positions; when
// anchor and head are equal it represents a bare cursor.
//
// Both types are immutable value types: every operation returns a new
// value. Validity against buffer content (line in range, column within
// the line) is the buffer's responsibility; this package only provides
// ordering and shape operations.
package cursor
