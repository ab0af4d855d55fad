package buffer

import "strings"

// LineEnding specifies the line ending style used when content is
// written back out. Content is normalized to LF internally.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
)

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	if le == LineEndingCRLF {
		return "\r\n"
	}
	return "\n"
}

// String returns the conventional short name of the style.
func (le LineEnding) String() string {
	if le == LineEndingCRLF {
		return "CRLF"
	}
	return "LF"
}

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithLineEnding sets the buffer's output line ending style.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// DetectLineEnding returns the line ending style of text based on the
// first line break found. Returns LineEndingLF when there is none.
func DetectLineEnding(text string) LineEnding {
	if i := strings.IndexByte(text, '\n'); i > 0 && text[i-1] == '\r' {
		return LineEndingCRLF
	}
	return LineEndingLF
}

// normalizeLineEndings converts CRLF and bare CR line breaks to LF.
func normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
