package vfs

import (
	"io/fs"
	"path"
	"sync"
	"time"
)

// MemFS implements FS in memory. It is primarily used for testing:
// per-path errors can be injected to simulate filesystem failures
// such as permission-denied writes.
//
// MemFS is safe for concurrent use.
type MemFS struct {
	mu        sync.RWMutex
	files     map[string]*memFile
	readErrs  map[string]error
	writeErrs map[string]error
}

type memFile struct {
	content []byte
	modTime time.Time
}

// NewMemFS creates a new in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{
		files:     make(map[string]*memFile),
		readErrs:  make(map[string]error),
		writeErrs: make(map[string]error),
	}
}

// Ensure MemFS implements FS.
var _ FS = (*MemFS)(nil)

// ReadFile reads the entire file content.
func (m *MemFS) ReadFile(filePath string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = path.Clean(filePath)
	if err, ok := m.readErrs[filePath]; ok {
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: err}
	}
	f, ok := m.files[filePath]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: fs.ErrNotExist}
	}

	content := make([]byte, len(f.content))
	copy(content, f.content)
	return content, nil
}

// WriteFile writes data to path, overwriting any existing content.
func (m *MemFS) WriteFile(filePath string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = path.Clean(filePath)
	if err, ok := m.writeErrs[filePath]; ok {
		return &fs.PathError{Op: "write", Path: filePath, Err: err}
	}

	content := make([]byte, len(data))
	copy(content, data)
	m.files[filePath] = &memFile{content: content, modTime: time.Now()}
	return nil
}

// Stat returns file information.
func (m *MemFS) Stat(filePath string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = path.Clean(filePath)
	f, ok := m.files[filePath]
	if !ok {
		return FileInfo{}, &fs.PathError{Op: "stat", Path: filePath, Err: fs.ErrNotExist}
	}
	return NewFileInfo(filePath, int64(len(f.content)), 0o644, f.modTime), nil
}

// Exists returns true if the path exists.
func (m *MemFS) Exists(filePath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[path.Clean(filePath)]
	return ok
}

// FailReads makes subsequent reads of filePath fail with err.
// Passing a nil err clears the injection.
func (m *MemFS) FailReads(filePath string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	filePath = path.Clean(filePath)
	if err == nil {
		delete(m.readErrs, filePath)
		return
	}
	m.readErrs[filePath] = err
}

// FailWrites makes subsequent writes of filePath fail with err.
// Passing a nil err clears the injection.
func (m *MemFS) FailWrites(filePath string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	filePath = path.Clean(filePath)
	if err == nil {
		delete(m.writeErrs, filePath)
		return
	}
	m.writeErrs[filePath] = err
}
