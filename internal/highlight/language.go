package highlight

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// LangPlainText is the language identifier for unstyled text.
// Plain-text documents highlight as one default-styled span per line.
const LangPlainText = "plaintext"

// extLanguages maps file extensions (lowercase, case-sensitive lookup)
// to language identifiers accepted by lexerFor.
var extLanguages = map[string]string{
	"go":   "go",
	"rs":   "rust",
	"py":   "python",
	"js":   "javascript",
	"ts":   "typescript",
	"c":    "c",
	"h":    "c",
	"cc":   "cpp",
	"cpp":  "cpp",
	"hpp":  "cpp",
	"java": "java",
	"rb":   "ruby",
	"sh":   "bash",
	"md":   "markdown",
	"json": "json",
	"yaml": "yaml",
	"yml":  "yaml",
	"toml": "toml",
	"html": "html",
	"css":  "css",
	"sql":  "sql",
	"lua":  "lua",
	"txt":  LangPlainText,
}

// LanguageForPath resolves the highlight language from a file path's
// extension. Lookup is case-sensitive and expects lowercase
// extensions; extensions outside the table are tried against chroma's
// filename matcher, and anything still unknown (or an absent
// extension, or an empty path) maps to plain text.
func LanguageForPath(path string) string {
	if path == "" {
		return LangPlainText
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return LangPlainText
	}
	if lang, ok := extLanguages[ext]; ok {
		return lang
	}
	if lexer := lexers.Match(filepath.Base(path)); lexer != nil {
		return lexer.Config().Name
	}
	return LangPlainText
}

// lexerFor returns the chroma lexer for a language identifier, or nil
// for plain text and unknown languages.
func lexerFor(language string) chroma.Lexer {
	if language == "" || language == LangPlainText {
		return nil
	}
	return lexers.Get(language)
}
