package fileio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrDialogClosed indicates the user cancelled an interactive file
// picker. Non-fatal: the workflow ends and prior document state is
// preserved untouched.
var ErrDialogClosed = errors.New("dialog closed")

// ErrOpInFlight indicates an operation of the same kind is already
// running for this document.
var ErrOpInFlight = errors.New("operation already in flight")

// ErrorKind classifies a filesystem failure for display.
type ErrorKind uint8

const (
	KindOther ErrorKind = iota
	KindNotFound
	KindPermission
	KindExists
	KindTimeout
)

// String returns the display name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindPermission:
		return "permission denied"
	case KindExists:
		return "already exists"
	case KindTimeout:
		return "timed out"
	default:
		return "i/o error"
	}
}

// KindOf classifies an error into an ErrorKind.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermission
	case errors.Is(err, fs.ErrExist):
		return KindExists
	case os.IsTimeout(err):
		return KindTimeout
	default:
		return KindOther
	}
}

// IOError is a filesystem-level failure surfaced from an open or save
// workflow, carrying its OS-level classification.
type IOError struct {
	Kind ErrorKind
	Err  error
}

// newIOError wraps err with its classification. Returns nil for a nil
// err.
func newIOError(err error) *IOError {
	if err == nil {
		return nil
	}
	return &IOError{Kind: KindOf(err), Err: err}
}

func (e *IOError) Error() string {
	return fmt.Sprintf("i/o failed (%s): %v", e.Kind, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
