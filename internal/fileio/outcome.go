package fileio

import "fmt"

// Op identifies a file I/O operation kind.
type Op uint8

const (
	OpOpen Op = iota
	OpSave
)

// String returns the operation name.
func (op Op) String() string {
	switch op {
	case OpOpen:
		return "open"
	case OpSave:
		return "save"
	default:
		return "unknown"
	}
}

// OpState is the lifecycle state of an operation.
type OpState uint8

const (
	StateIdle OpState = iota
	StateRunning
	StateApplied
	StateFailed
)

// String returns the state name.
func (s OpState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateApplied:
		return "applied"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result value a workflow posts for the control loop
// to apply. Exactly one Outcome is produced per issued operation.
type Outcome interface {
	// Op returns the operation this outcome resolves.
	Op() Op

	// Token echoes the token the operation was issued with. The
	// control loop uses it to detect results that predate later
	// edits.
	OutcomeToken() uint64
}

// Opened is a successfully resolved open: the file's content and path.
type Opened struct {
	Path  string
	Text  string
	Token uint64
}

// Op returns OpOpen.
func (Opened) Op() Op { return OpOpen }

// OutcomeToken returns the issue token.
func (o Opened) OutcomeToken() uint64 { return o.Token }

// String returns a human-readable representation.
func (o Opened) String() string {
	return fmt.Sprintf("Opened(%s, %d bytes)", o.Path, len(o.Text))
}

// Saved is a successfully resolved save: the path written to.
type Saved struct {
	Path  string
	Token uint64
}

// Op returns OpSave.
func (Saved) Op() Op { return OpSave }

// OutcomeToken returns the issue token.
func (s Saved) OutcomeToken() uint64 { return s.Token }

// String returns a human-readable representation.
func (s Saved) String() string {
	return fmt.Sprintf("Saved(%s)", s.Path)
}

// Failed is a workflow failure: either ErrDialogClosed or an *IOError.
type Failed struct {
	Operation Op
	Err       error
	Token     uint64
}

// Op returns the failed operation kind.
func (f Failed) Op() Op { return f.Operation }

// OutcomeToken returns the issue token.
func (f Failed) OutcomeToken() uint64 { return f.Token }

// String returns a human-readable representation.
func (f Failed) String() string {
	return fmt.Sprintf("Failed(%s: %v)", f.Operation, f.Err)
}
