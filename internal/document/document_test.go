package document

import (
	"errors"
	"testing"

	"github.com/kestrel-editor/kestrel/internal/engine/buffer"
	"github.com/kestrel-editor/kestrel/internal/fileio"
	"github.com/kestrel-editor/kestrel/internal/highlight"
)

func TestNewIsEmptyPathlessDirty(t *testing.T) {
	d := New()
	if got := d.Snapshot().Text(); got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
	if d.Path() != "" {
		t.Errorf("expected empty path, got %q", d.Path())
	}
	if !d.Dirty() {
		t.Error("new document should be dirty")
	}
	if d.Language() != highlight.LangPlainText {
		t.Errorf("expected plaintext language, got %q", d.Language())
	}
}

func TestApplyEditSetsDirtyAndClearsError(t *testing.T) {
	d := New()
	d.ApplyOutcome(fileio.Opened{Path: "main.go", Text: "package main\n", Token: d.Token()})
	if d.Dirty() {
		t.Fatal("document should be clean after open")
	}

	d.ApplyOutcome(fileio.Failed{Operation: fileio.OpSave, Err: fileio.ErrDialogClosed})
	if d.LastError() == nil {
		t.Fatal("expected surfaced error after failure")
	}

	res := d.Apply(buffer.InsertRune('x'))
	if !res.ContentChanged {
		t.Fatal("insert should change content")
	}
	if !d.Dirty() {
		t.Error("edit should set dirty")
	}
	if d.LastError() != nil {
		t.Error("edit should clear surfaced error")
	}
}

func TestCursorMotionDoesNotDirty(t *testing.T) {
	d := New()
	d.ApplyOutcome(fileio.Opened{Path: "notes.txt", Text: "hello", Token: d.Token()})

	d.Apply(buffer.MoveCursor(buffer.DirRight, false))
	d.Apply(buffer.MoveCursor(buffer.DirLineEnd, true))

	if d.Dirty() {
		t.Error("cursor motion should not set dirty")
	}
}

func TestOpenedSetsPathLanguageClean(t *testing.T) {
	d := New()
	d.ApplyOutcome(fileio.Opened{Path: "lib.rs", Text: "fn main() {}\n", Token: d.Token()})

	if d.Path() != "lib.rs" {
		t.Errorf("expected path lib.rs, got %q", d.Path())
	}
	if d.Language() != "rust" {
		t.Errorf("expected language rust, got %q", d.Language())
	}
	if d.Dirty() {
		t.Error("opened document should be clean")
	}
	if got := d.Snapshot().Text(); got != "fn main() {}\n" {
		t.Errorf("unexpected text %q", got)
	}
}

func TestSavedClearsDirtyKeepsContent(t *testing.T) {
	d := New()
	d.Apply(buffer.InsertText("hello"))
	if !d.Dirty() {
		t.Fatal("expected dirty after edit")
	}

	d.ApplyOutcome(fileio.Saved{Path: "out.py", Token: d.Token()})

	if d.Dirty() {
		t.Error("save should clear dirty")
	}
	if d.Path() != "out.py" {
		t.Errorf("expected path out.py, got %q", d.Path())
	}
	if d.Language() != "python" {
		t.Errorf("expected language python, got %q", d.Language())
	}
	if got := d.Snapshot().Text(); got != "hello" {
		t.Errorf("save should not touch content, got %q", got)
	}
}

func TestFailedPreservesState(t *testing.T) {
	d := New()
	d.ApplyOutcome(fileio.Opened{Path: "a.txt", Text: "abc", Token: d.Token()})
	d.Apply(buffer.InsertRune('!'))

	ioErr := &fileio.IOError{Kind: fileio.KindPermission, Err: errors.New("denied")}
	d.ApplyOutcome(fileio.Failed{Operation: fileio.OpSave, Err: ioErr})

	if d.Path() != "a.txt" {
		t.Errorf("failure must not change path, got %q", d.Path())
	}
	if !d.Dirty() {
		t.Error("failure must not clear dirty")
	}
	if got := d.Snapshot().Text(); got != "!abc" {
		t.Errorf("failure must not change content, got %q", got)
	}
	var ie *fileio.IOError
	if !errors.As(d.LastError(), &ie) || ie.Kind != fileio.KindPermission {
		t.Errorf("expected permission IOError, got %v", d.LastError())
	}
}

func TestResetForcesDirtyAndClearsPath(t *testing.T) {
	d := New()
	d.ApplyOutcome(fileio.Opened{Path: "main.go", Text: "package main\n", Token: d.Token()})

	d.Reset()

	if d.Path() != "" {
		t.Errorf("expected empty path, got %q", d.Path())
	}
	if !d.Dirty() {
		t.Error("reset document should be dirty")
	}
	if !d.Snapshot().IsEmpty() {
		t.Error("reset document should be empty")
	}
	if d.Language() != highlight.LangPlainText {
		t.Errorf("expected plaintext after reset, got %q", d.Language())
	}
}

func TestCanSave(t *testing.T) {
	d := New()
	if !d.CanSave() {
		t.Error("path-less document should be savable")
	}

	d.ApplyOutcome(fileio.Opened{Path: "a.txt", Text: "x", Token: d.Token()})
	if d.CanSave() {
		t.Error("clean document with a path should not need saving")
	}

	d.Apply(buffer.InsertRune('y'))
	if !d.CanSave() {
		t.Error("dirty document should be savable")
	}
}

func TestLastWriterWinsByDefault(t *testing.T) {
	d := New()

	// Issue token before the in-flight load resolves, then edit.
	tok := d.Token()
	d.Apply(buffer.InsertText("local edit"))

	if err := d.ApplyOutcome(fileio.Opened{Path: "a.txt", Text: "from disk", Token: tok}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := d.Snapshot().Text(); got != "from disk" {
		t.Errorf("default policy should overwrite edits, got %q", got)
	}
	if d.Dirty() {
		t.Error("applied load should leave document clean")
	}
}

func TestRejectStaleLoads(t *testing.T) {
	d := New(WithRejectStaleLoads())

	tok := d.Token()
	d.Apply(buffer.InsertText("local edit"))

	err := d.ApplyOutcome(fileio.Opened{Path: "a.txt", Text: "from disk", Token: tok})
	if !errors.Is(err, ErrStaleLoad) {
		t.Fatalf("expected ErrStaleLoad, got %v", err)
	}
	if got := d.Snapshot().Text(); got != "local edit" {
		t.Errorf("stale load must not overwrite edits, got %q", got)
	}
	if !d.Dirty() {
		t.Error("document should stay dirty after rejected load")
	}
	if !errors.Is(d.LastError(), ErrStaleLoad) {
		t.Errorf("expected surfaced ErrStaleLoad, got %v", d.LastError())
	}

	// A fresh load, issued after the edit, still applies.
	if err := d.ApplyOutcome(fileio.Opened{Path: "a.txt", Text: "fresh", Token: d.Token()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := d.Snapshot().Text(); got != "fresh" {
		t.Errorf("fresh load should apply, got %q", got)
	}
}

func TestThemeChangeDoesNotDirty(t *testing.T) {
	reg := highlight.NewRegistry()
	d := New(WithTheme(reg.Default()))
	d.ApplyOutcome(fileio.Opened{Path: "a.txt", Text: "x", Token: d.Token()})

	next := reg.Next(d.Theme().Name())
	d.SetTheme(next)

	if d.Dirty() {
		t.Error("theme change should not set dirty")
	}
	if d.Theme() != next {
		t.Error("theme should be updated")
	}
}
