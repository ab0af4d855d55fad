// Package vfs provides the filesystem collaborator used by file I/O
// workflows.
//
// The FS interface covers exactly the whole-file contract the editor
// needs: non-streaming reads and writes of complete files. Swapping
// the implementation enables testing load/save workflows against an
// in-memory file system with injectable failures.
package vfs

import (
	"io/fs"
	"time"
)

// FS is the filesystem abstraction. Reads and writes are whole-file
// and non-atomic: WriteFile overwrites in place with no
// temp-file-and-rename guarantee.
type FS interface {
	// ReadFile reads the entire file content.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to path, creating the file if necessary
	// and truncating it otherwise.
	WriteFile(path string, data []byte) error

	// Stat returns file information.
	Stat(path string) (FileInfo, error)

	// Exists returns true if the path exists.
	Exists(path string) bool
}

// FileInfo describes a file.
type FileInfo struct {
	path    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

// NewFileInfo creates a FileInfo from the given parameters.
func NewFileInfo(path string, size int64, mode fs.FileMode, modTime time.Time) FileInfo {
	return FileInfo{path: path, size: size, mode: mode, modTime: modTime}
}

// Path returns the full path.
func (fi FileInfo) Path() string { return fi.path }

// Size returns the file size in bytes.
func (fi FileInfo) Size() int64 { return fi.size }

// Mode returns the file mode.
func (fi FileInfo) Mode() fs.FileMode { return fi.mode }

// ModTime returns the modification time.
func (fi FileInfo) ModTime() time.Time { return fi.modTime }
