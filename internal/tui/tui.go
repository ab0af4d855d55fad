// Package tui is the terminal front end: it owns the screen, turns
// key events into control-loop messages and paints the document with
// its highlight spans. It carries no editor state of its own beyond
// the scroll offset.
package tui

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/kestrel-editor/kestrel/internal/app"
)

// UI drives an Editor from a tcell screen.
type UI struct {
	screen tcell.Screen
	editor *app.Editor

	// top is the first visible document line.
	top int
}

// New initializes the terminal screen.
func New(editor *app.Editor) (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return &UI{screen: screen, editor: editor}, nil
}

// Close restores the terminal.
func (u *UI) Close() {
	u.screen.Fini()
}

// Run is the control loop: it applies key messages and I/O outcomes
// in arrival order on this single goroutine, repainting after each.
// Returns nil on quit. An optional initial path is loaded first.
func (u *UI) Run(ctx context.Context, initialPath string) error {
	if initialPath != "" {
		if err := u.editor.HandleMessage(ctx, app.OpenPathMsg{Path: initialPath}); err != nil {
			return err
		}
	}

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go u.screen.ChannelEvents(events, quit)
	defer close(quit)

	u.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				u.screen.Sync()
			case *tcell.EventKey:
				msg := translateKey(ev)
				if msg == nil {
					continue
				}
				err := u.editor.HandleMessage(ctx, msg)
				if errors.Is(err, app.ErrQuit) {
					return nil
				}
				// Workflow start failures (an operation already in
				// flight) are transient; the status bar keeps showing
				// document state.
			}

		case out := <-u.editor.Outcomes():
			u.editor.ApplyOutcome(out)
		}
		u.draw()
	}
}
