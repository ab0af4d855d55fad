package highlight

import "fmt"

// Style is a rendering-agnostic style token: what a span should look
// like, independent of any paint surface. Colors are "#rrggbb" hex
// strings; empty means the renderer's default.
type Style struct {
	Foreground string
	Background string
	Bold       bool
	Italic     bool
	Underline  bool
}

// Span is a contiguous slice of highlighted text. Start and End are
// byte bounds into the text passed to Highlight; Line is the
// 0-indexed source line the span starts on. A span never crosses a
// line break: a trailing newline byte belongs to the span that ends
// its line.
type Span struct {
	Start int
	End   int
	Line  int
	Style Style
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("Span[%d:%d)@%d", s.Start, s.End, s.Line)
}
