// Package fileio orchestrates the asynchronous open and save
// workflows against a filesystem and an interactive file picker.
//
// Workflows run in their own goroutines and never touch the document:
// each computes exactly one Outcome and posts it onto the results
// channel, where the control loop applies it to document state. Two
// error kinds surface from a workflow: ErrDialogClosed when the user
// cancels a picker (non-fatal, prior state preserved) and *IOError
// wrapping a filesystem failure with its OS-level classification.
//
// Each operation moves through Idle → Running → Applied or Failed.
// Once issued, a workflow runs to completion or failure; there is no
// user-facing cancellation.
package fileio
