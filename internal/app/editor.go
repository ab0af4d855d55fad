package app

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/kestrel-editor/kestrel/internal/document"
	"github.com/kestrel-editor/kestrel/internal/engine/buffer"
	"github.com/kestrel-editor/kestrel/internal/fileio"
	"github.com/kestrel-editor/kestrel/internal/highlight"
	"github.com/kestrel-editor/kestrel/internal/vfs"
)

// Msg is a control-loop message. The loop applies messages and I/O
// outcomes strictly in arrival order; nothing else mutates editor
// state.
type Msg interface {
	isMsg()
}

// EditMsg applies one buffer action (keystroke, motion, selection).
type EditMsg struct {
	Action buffer.Action
}

// NewFileMsg resets to an empty, path-less, dirty document.
type NewFileMsg struct{}

// OpenFileMsg starts the pick-and-load workflow.
type OpenFileMsg struct{}

// OpenPathMsg loads a known path without the picker. Used for the
// startup load of the default file.
type OpenPathMsg struct {
	Path string
}

// SaveFileMsg starts the save workflow, running the save picker first
// when the document has no path yet.
type SaveFileMsg struct{}

// ThemeMsg switches to the named theme.
type ThemeMsg struct {
	Name string
}

// CycleThemeMsg advances to the next registered theme.
type CycleThemeMsg struct{}

// QuitMsg ends the control loop.
type QuitMsg struct{}

func (EditMsg) isMsg()       {}
func (NewFileMsg) isMsg()    {}
func (OpenFileMsg) isMsg()   {}
func (OpenPathMsg) isMsg()   {}
func (SaveFileMsg) isMsg()   {}
func (ThemeMsg) isMsg()      {}
func (CycleThemeMsg) isMsg() {}
func (QuitMsg) isMsg()       {}

// Status is the state the presentation layer shows in its status bar.
type Status struct {
	// Title is the surfaced error if one is pending, otherwise the
	// file path, otherwise "New file".
	Title string
	// Position is the 1-based "line:column" of the cursor.
	Position string
	// Dirty reports unsaved changes.
	Dirty bool
	// Theme is the active theme name.
	Theme string
	// Language is the active highlight language.
	Language string
	// LineEnding is "LF" or "CRLF", per the loaded file.
	LineEnding string
}

// Editor owns the document and coordinates edits, theme changes and
// asynchronous file I/O. All state mutation happens on the control
// goroutine running Run, or on the caller's goroutine when driving
// HandleMessage and ApplyOutcome directly.
type Editor struct {
	doc    *document.Document
	orch   *fileio.Orchestrator
	themes *highlight.Registry
	logger *Logger

	msgs    chan Msg
	results chan fileio.Outcome

	// defaultPath, when set, is loaded at startup the same way an
	// explicit open is, including failure reporting.
	defaultPath string

	// redraw is invoked after every applied message or outcome.
	redraw func()

	running atomic.Bool
}

// Option configures an Editor.
type Option func(*editorConfig)

type editorConfig struct {
	fs          vfs.FS
	picker      fileio.Picker
	themes      *highlight.Registry
	themeName   string
	logger      *Logger
	defaultPath string
	rejectStale bool
	redraw      func()
}

// WithFS sets the filesystem used for loads and saves.
func WithFS(fs vfs.FS) Option {
	return func(c *editorConfig) {
		c.fs = fs
	}
}

// WithPicker sets the file picker collaborator.
func WithPicker(p fileio.Picker) Option {
	return func(c *editorConfig) {
		c.picker = p
	}
}

// WithThemes sets the theme registry.
func WithThemes(r *highlight.Registry) Option {
	return func(c *editorConfig) {
		c.themes = r
	}
}

// WithTheme sets the startup theme by name. Unknown names fall back
// to the registry default.
func WithTheme(name string) Option {
	return func(c *editorConfig) {
		c.themeName = name
	}
}

// WithLogger sets the logger.
func WithLogger(l *Logger) Option {
	return func(c *editorConfig) {
		c.logger = l
	}
}

// WithDefaultPath sets a file to load when the loop starts.
func WithDefaultPath(path string) Option {
	return func(c *editorConfig) {
		c.defaultPath = path
	}
}

// WithRejectStaleLoads discards load results that resolve after the
// document was edited, instead of the default last-writer-wins.
func WithRejectStaleLoads() Option {
	return func(c *editorConfig) {
		c.rejectStale = true
	}
}

// WithRedraw registers a callback invoked after each applied message
// or outcome.
func WithRedraw(fn func()) Option {
	return func(c *editorConfig) {
		c.redraw = fn
	}
}

// New creates an editor with an empty, dirty, path-less document.
func New(opts ...Option) *Editor {
	cfg := editorConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.fs == nil {
		cfg.fs = vfs.NewOSFS()
	}
	if cfg.picker == nil {
		cfg.picker = fileio.NewDialogPicker()
	}
	if cfg.themes == nil {
		cfg.themes = highlight.NewRegistry()
	}
	if cfg.logger == nil {
		cfg.logger = NullLogger
	}

	theme := cfg.themes.Default()
	if cfg.themeName != "" {
		if t, ok := cfg.themes.Get(cfg.themeName); ok {
			theme = t
		}
	}

	docOpts := []document.Option{document.WithTheme(theme)}
	if cfg.rejectStale {
		docOpts = append(docOpts, document.WithRejectStaleLoads())
	}

	results := make(chan fileio.Outcome, 4)
	return &Editor{
		doc:         document.New(docOpts...),
		orch:        fileio.New(cfg.fs, cfg.picker, results),
		themes:      cfg.themes,
		logger:      cfg.logger,
		msgs:        make(chan Msg, 16),
		results:     results,
		defaultPath: cfg.defaultPath,
		redraw:      cfg.redraw,
	}
}

// Document returns the editor's document.
func (e *Editor) Document() *document.Document {
	return e.doc
}

// Themes returns the theme registry.
func (e *Editor) Themes() *highlight.Registry {
	return e.themes
}

// Outcomes returns the channel the orchestrator posts results on.
// Run drains it; tests driving the editor synchronously receive from
// it and feed ApplyOutcome themselves.
func (e *Editor) Outcomes() <-chan fileio.Outcome {
	return e.results
}

// Send posts a message to the control loop.
func (e *Editor) Send(msg Msg) {
	e.msgs <- msg
}

// Status reports what the status bar shows.
func (e *Editor) Status() Status {
	title := "New file"
	if p := e.doc.Path(); p != "" {
		title = p
	}
	if err := e.doc.LastError(); err != nil {
		title = err.Error()
	}

	cur := e.doc.Buffer().Cursor()
	return Status{
		Title:      title,
		Position:   fmt.Sprintf("%d:%d", cur.Line+1, cur.Col+1),
		Dirty:      e.doc.Dirty(),
		Theme:      e.doc.Theme().Name(),
		Language:   e.doc.Language(),
		LineEnding: e.doc.Buffer().LineEnding().String(),
	}
}

// Run starts the control loop and blocks until QuitMsg or context
// cancellation. When a default path is configured its load is kicked
// off first, so the user sees the file without asking for it.
func (e *Editor) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer e.running.Store(false)

	if e.defaultPath != "" {
		if err := e.HandleMessage(ctx, OpenPathMsg{Path: e.defaultPath}); err != nil {
			e.logger.Warn("startup load: %v", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg := <-e.msgs:
			err := e.HandleMessage(ctx, msg)
			if errors.Is(err, ErrQuit) {
				e.logger.Info("quit")
				return nil
			}
			if err != nil {
				e.logger.Warn("message: %v", err)
			}
			e.notify()

		case out := <-e.results:
			e.ApplyOutcome(out)
			e.notify()
		}
	}
}

func (e *Editor) notify() {
	if e.redraw != nil {
		e.redraw()
	}
}

// HandleMessage applies one message. Returns ErrQuit for QuitMsg and
// an OperationError when an I/O workflow cannot start; edits never
// fail.
func (e *Editor) HandleMessage(ctx context.Context, msg Msg) error {
	switch msg := msg.(type) {
	case EditMsg:
		e.doc.Apply(msg.Action)
		return nil

	case NewFileMsg:
		e.doc.Reset()
		e.logger.Debug("new file")
		return nil

	case OpenFileMsg:
		if err := e.orch.Open(ctx, e.doc.Token()); err != nil {
			return NewOperationError("open", "", err)
		}
		return nil

	case OpenPathMsg:
		if err := e.orch.OpenPath(ctx, msg.Path, e.doc.Token()); err != nil {
			return NewOperationError("open", msg.Path, err)
		}
		return nil

	case SaveFileMsg:
		snap := e.doc.Snapshot()
		if err := e.orch.Save(ctx, e.doc.Path(), snap.EncodedText(), e.doc.Token()); err != nil {
			return NewOperationError("save", e.doc.Path(), err)
		}
		return nil

	case ThemeMsg:
		t, ok := e.themes.Get(msg.Name)
		if !ok {
			return NewOperationError("theme", msg.Name, errors.New("unknown theme"))
		}
		e.doc.SetTheme(t)
		return nil

	case CycleThemeMsg:
		e.doc.SetTheme(e.themes.Next(e.doc.Theme().Name()))
		return nil

	case QuitMsg:
		return ErrQuit

	default:
		return fmt.Errorf("unhandled message %T", msg)
	}
}

// ApplyOutcome applies a resolved I/O outcome to the document and
// settles the orchestrator's state for that operation kind.
func (e *Editor) ApplyOutcome(out fileio.Outcome) {
	if err := e.doc.ApplyOutcome(out); err != nil {
		e.logger.Info("%s: %v", out.Op(), err)
	}
	e.orch.Settle(out)

	switch out := out.(type) {
	case fileio.Opened:
		e.logger.Info("opened %s (%d bytes)", out.Path, len(out.Text))
	case fileio.Saved:
		e.logger.Info("saved %s", out.Path)
	case fileio.Failed:
		e.logger.Warn("%s failed: %v", out.Operation, out.Err)
	}
}
