// Package highlight computes syntax-highlight spans for document text.
//
// Highlight is a pure function from (text, language, theme) to a
// sequence of styled spans. The spans are contiguous, non-overlapping
// and coverage-complete: concatenating their text slices reproduces
// the input exactly. Unrecognized syntax or lexer failures fall back
// to default-styled spans rather than erroring, so highlighting is a
// total function over all valid text.
//
// The whole document is retokenized on every call. That bounds
// worst-case latency by document size and keeps the engine stateless;
// no incremental re-highlighting is attempted.
//
// Tokenization is backed by chroma lexers. A Theme maps token
// categories to rendering-agnostic style tokens (colors as hex
// strings plus font flags); how those are painted is the caller's
// concern.
package highlight
