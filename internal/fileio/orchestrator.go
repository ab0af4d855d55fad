package fileio

import (
	"context"
	"sync"

	"github.com/kestrel-editor/kestrel/internal/vfs"
)

// Dialog titles shown by the pickers.
const (
	openDialogTitle = "Choose a text file"
	saveDialogTitle = "Choose a file name"
)

// Orchestrator runs open and save workflows. Each workflow executes
// in its own goroutine and posts exactly one Outcome onto the results
// channel; the orchestrator never mutates document state itself.
//
// At most one operation of each kind may be running at a time. An
// Open and a Save may be in flight concurrently and resolve in either
// order; the control loop applies outcomes in arrival order.
type Orchestrator struct {
	fs      vfs.FS
	picker  Picker
	results chan<- Outcome

	mu     sync.Mutex
	states map[Op]OpState
}

// New creates an orchestrator posting outcomes onto results.
func New(fs vfs.FS, picker Picker, results chan<- Outcome) *Orchestrator {
	return &Orchestrator{
		fs:      fs,
		picker:  picker,
		results: results,
		states: map[Op]OpState{
			OpOpen: StateIdle,
			OpSave: StateIdle,
		},
	}
}

// State returns the lifecycle state of the given operation kind.
func (o *Orchestrator) State(op Op) OpState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.states[op]
}

// Settle records that the control loop applied an outcome, moving the
// operation to Applied or Failed.
func (o *Orchestrator) Settle(out Outcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, failed := out.(Failed); failed {
		o.states[out.Op()] = StateFailed
		return
	}
	o.states[out.Op()] = StateApplied
}

// begin transitions op to Running, rejecting a second in-flight
// operation of the same kind.
func (o *Orchestrator) begin(op Op) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.states[op] == StateRunning {
		return ErrOpInFlight
	}
	o.states[op] = StateRunning
	return nil
}

// post delivers an outcome to the control loop. The context escape
// only matters at shutdown, when nothing drains the channel anymore.
func (o *Orchestrator) post(ctx context.Context, out Outcome) {
	select {
	case o.results <- out:
	case <-ctx.Done():
	}
}

// Open asks the picker for a path and reads it. The token is echoed
// in the outcome.
func (o *Orchestrator) Open(ctx context.Context, token uint64) error {
	if err := o.begin(OpOpen); err != nil {
		return err
	}
	go func() {
		path, err := o.picker.PickOpen(openDialogTitle)
		if err != nil {
			o.post(ctx, Failed{Operation: OpOpen, Err: err, Token: token})
			return
		}
		o.post(ctx, o.load(path, token))
	}()
	return nil
}

// OpenPath reads a known path without involving the picker. Used for
// the startup load of the default file.
func (o *Orchestrator) OpenPath(ctx context.Context, path string, token uint64) error {
	if err := o.begin(OpOpen); err != nil {
		return err
	}
	go func() {
		o.post(ctx, o.load(path, token))
	}()
	return nil
}

// load performs the whole-file read for an open workflow.
func (o *Orchestrator) load(path string, token uint64) Outcome {
	data, err := o.fs.ReadFile(path)
	if err != nil {
		return Failed{Operation: OpOpen, Err: newIOError(err), Token: token}
	}
	return Opened{Path: path, Text: string(data), Token: token}
}

// Save writes text to path, overwriting the whole file. When path is
// empty the save picker runs first to obtain one.
func (o *Orchestrator) Save(ctx context.Context, path, text string, token uint64) error {
	if err := o.begin(OpSave); err != nil {
		return err
	}
	go func() {
		p := path
		if p == "" {
			var err error
			p, err = o.picker.PickSave(saveDialogTitle)
			if err != nil {
				o.post(ctx, Failed{Operation: OpSave, Err: err, Token: token})
				return
			}
		}
		if err := o.fs.WriteFile(p, []byte(text)); err != nil {
			o.post(ctx, Failed{Operation: OpSave, Err: newIOError(err), Token: token})
			return
		}
		o.post(ctx, Saved{Path: p, Token: token})
	}()
	return nil
}
