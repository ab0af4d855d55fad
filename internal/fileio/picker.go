package fileio

import (
	"errors"

	"github.com/sqweek/dialog"
)

// Picker is the interactive file-picker collaborator. Both methods
// may block indefinitely on user input and return ErrDialogClosed
// when the user cancels.
type Picker interface {
	// PickOpen asks the user for an existing file to open.
	PickOpen(title string) (string, error)

	// PickSave asks the user for a destination path to save to.
	PickSave(title string) (string, error)
}

// DialogPicker implements Picker over the platform's native file
// dialogs.
type DialogPicker struct{}

// NewDialogPicker creates a native file picker.
func NewDialogPicker() *DialogPicker {
	return &DialogPicker{}
}

// Ensure DialogPicker implements Picker.
var _ Picker = (*DialogPicker)(nil)

// PickOpen asks the user for an existing file to open.
func (p *DialogPicker) PickOpen(title string) (string, error) {
	path, err := dialog.File().Title(title).Load()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			return "", ErrDialogClosed
		}
		return "", err
	}
	return path, nil
}

// PickSave asks the user for a destination path to save to.
func (p *DialogPicker) PickSave(title string) (string, error) {
	path, err := dialog.File().Title(title).Save()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			return "", ErrDialogClosed
		}
		return "", err
	}
	return path, nil
}
