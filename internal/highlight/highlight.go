package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
)

// Highlight tokenizes text and returns styled spans covering it
// exactly. It is stateless and never fails: unknown languages, lexer
// errors and lexers that do not reproduce their input all fall back
// to default-styled spans.
func Highlight(text, language string, theme *Theme) []Span {
	if theme == nil {
		theme = fallbackTheme()
	}

	lexer := lexerFor(language)
	if lexer == nil {
		return plainSpans(text, theme)
	}
	lexer = chroma.Coalesce(lexer)

	// EnsureLF off: the output must reproduce the input byte for byte.
	it, err := lexer.Tokenise(&chroma.TokeniseOptions{State: "root", EnsureLF: false}, text)
	if err != nil {
		return plainSpans(text, theme)
	}

	spans, ok := spansFromTokens(it.Tokens(), text, theme)
	if !ok {
		return plainSpans(text, theme)
	}
	return spans
}

// spansFromTokens converts chroma tokens into line-split spans,
// verifying that the tokens reproduce text exactly. Reports ok=false
// when they do not.
func spansFromTokens(tokens []chroma.Token, text string, theme *Theme) ([]Span, bool) {
	spans := make([]Span, 0, len(tokens))
	off := 0
	line := 0

	for _, tok := range tokens {
		v := tok.Value
		if v == "" {
			continue
		}
		style := theme.styleFor(tok.Type)

		// Split multi-line tokens so each span stays on one line. The
		// newline byte stays with the span ending its line.
		for len(v) > 0 {
			seg := v
			nl := strings.IndexByte(v, '\n')
			if nl >= 0 {
				seg = v[:nl+1]
			}

			end := off + len(seg)
			if end > len(text) || text[off:end] != seg {
				return nil, false
			}
			spans = append(spans, Span{Start: off, End: end, Line: line, Style: style})

			off = end
			v = v[len(seg):]
			if nl >= 0 {
				line++
			}
		}
	}

	if off != len(text) {
		return nil, false
	}
	return spans, true
}

// plainSpans returns one default-styled span per line, covering text
// exactly. The degenerate case for plain text and for lexer fallback.
func plainSpans(text string, theme *Theme) []Span {
	def := theme.Default()
	spans := make([]Span, 0, strings.Count(text, "\n")+1)

	off := 0
	line := 0
	for off < len(text) {
		end := len(text)
		if nl := strings.IndexByte(text[off:], '\n'); nl >= 0 {
			end = off + nl + 1
		}
		spans = append(spans, Span{Start: off, End: end, Line: line, Style: def})
		off = end
		line++
	}
	return spans
}
