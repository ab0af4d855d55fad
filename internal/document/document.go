// Package document composes the text buffer, file path, theme,
// language and dirty state into the single aggregate the control
// loop mutates.
//
// A Document is exclusively owned by the control goroutine: edits and
// I/O outcomes are applied to it one at a time, in arrival order.
// Async workflows never touch it; they only produce Outcome values
// that are applied here.
package document

import (
	"errors"

	"github.com/kestrel-editor/kestrel/internal/engine/buffer"
	"github.com/kestrel-editor/kestrel/internal/fileio"
	"github.com/kestrel-editor/kestrel/internal/highlight"
)

// ErrStaleLoad indicates an Opened outcome was discarded because the
// document was edited after the operation was issued. Only returned
// when the WithRejectStaleLoads option is set.
var ErrStaleLoad = errors.New("stale load result discarded")

// Document is the single editing unit: one per running editor
// instance. Created empty-and-dirty at startup and immediately
// superseded by the initial load; it lives for the process lifetime.
type Document struct {
	buf      *buffer.Buffer
	path     string
	theme    *highlight.Theme
	language string
	dirty    bool
	lastErr  error

	// rejectStale guards against the last-writer-wins data-loss
	// hazard: when set, a resolving Open whose issue token predates
	// the current content revision is discarded instead of
	// overwriting the edits made while it was in flight.
	rejectStale bool
}

// Option is a functional option for configuring a Document.
type Option func(*Document)

// WithTheme sets the initial theme.
func WithTheme(t *highlight.Theme) Option {
	return func(d *Document) {
		d.theme = t
	}
}

// WithRejectStaleLoads makes the document discard Opened outcomes
// issued before the most recent content change. Off by default: the
// default behavior is last-writer-wins, matching the original editor.
func WithRejectStaleLoads() Option {
	return func(d *Document) {
		d.rejectStale = true
	}
}

// New creates an empty, path-less, dirty document.
func New(opts ...Option) *Document {
	d := &Document{
		buf:      buffer.New(),
		language: highlight.LangPlainText,
		dirty:    true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Buffer returns the document's text buffer.
func (d *Document) Buffer() *buffer.Buffer {
	return d.buf
}

// Snapshot returns a read-only snapshot of the buffer.
func (d *Document) Snapshot() *buffer.Snapshot {
	return d.buf.Snapshot()
}

// Path returns the document's file path, or "" when unsaved with no
// prior location.
func (d *Document) Path() string {
	return d.path
}

// Language returns the highlight language resolved from the path.
func (d *Document) Language() string {
	return d.language
}

// Theme returns the active theme.
func (d *Document) Theme() *highlight.Theme {
	return d.theme
}

// SetTheme changes the active theme. Presentation-only: dirty state
// and content are unaffected.
func (d *Document) SetTheme(t *highlight.Theme) {
	d.theme = t
}

// Dirty returns true iff content differs from the last durably
// loaded-or-saved snapshot.
func (d *Document) Dirty() bool {
	return d.dirty
}

// LastError returns the error surfaced to the user, if any. Cleared
// by the next content-changing edit.
func (d *Document) LastError() error {
	return d.lastErr
}

// CanSave reports whether a Save control should be enabled: there are
// unsaved changes or no path to have saved to yet.
func (d *Document) CanSave() bool {
	return d.dirty || d.path == ""
}

// Token returns the value to issue I/O operations with. Outcomes echo
// it, which lets ApplyOutcome detect results predating later edits.
func (d *Document) Token() uint64 {
	return uint64(d.buf.Revision())
}

// Apply executes one buffer action. Content-changing actions mark the
// document dirty and clear the surfaced error; cursor-only actions
// touch neither.
func (d *Document) Apply(a buffer.Action) buffer.Result {
	res := d.buf.Apply(a)
	if res.ContentChanged {
		d.dirty = true
		d.lastErr = nil
	}
	return res
}

// Reset is the New workflow: an empty, path-less, dirty document.
// Synchronous, no I/O. The surfaced error is left as-is, matching the
// original's behavior.
func (d *Document) Reset() {
	d.buf.SetText("")
	d.path = ""
	d.language = highlight.LangPlainText
	d.dirty = true
}

// ApplyOutcome applies a resolved I/O outcome.
//
// A successful outcome unconditionally overwrites content, path and
// dirty state, silently discarding edits made while the operation was
// in flight (last-writer-wins). With WithRejectStaleLoads, an Opened
// outcome issued before the last content change is discarded instead
// and ErrStaleLoad is returned.
func (d *Document) ApplyOutcome(out fileio.Outcome) error {
	switch out := out.(type) {
	case fileio.Opened:
		if d.rejectStale && out.Token != d.Token() {
			d.lastErr = ErrStaleLoad
			return ErrStaleLoad
		}
		d.buf.SetText(out.Text)
		d.path = out.Path
		d.language = highlight.LanguageForPath(out.Path)
		d.dirty = false
		d.lastErr = nil

	case fileio.Saved:
		d.path = out.Path
		d.language = highlight.LanguageForPath(out.Path)
		d.dirty = false
		d.lastErr = nil

	case fileio.Failed:
		// Prior state preserved untouched; only surface the error.
		d.lastErr = out.Err
	}
	return nil
}

// Highlight computes the styled spans for the current content.
func (d *Document) Highlight() []highlight.Span {
	return highlight.Highlight(d.buf.Text(), d.language, d.theme)
}
