package vfs

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestMemFSReadWriteRoundTrip(t *testing.T) {
	m := NewMemFS()

	if err := m.WriteFile("/doc/notes.txt", []byte("hello")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := m.ReadFile("/doc/notes.txt")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("expected %q, got %q", "hello", data)
	}
}

func TestMemFSReadMissingFile(t *testing.T) {
	m := NewMemFS()

	_, err := m.ReadFile("/missing")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestMemFSOverwrite(t *testing.T) {
	m := NewMemFS()
	_ = m.WriteFile("/f", []byte("first version"))

	_ = m.WriteFile("/f", []byte("second"))

	data, _ := m.ReadFile("/f")
	if string(data) != "second" {
		t.Errorf("write should truncate, got %q", data)
	}
}

func TestMemFSReturnsCopies(t *testing.T) {
	m := NewMemFS()
	_ = m.WriteFile("/f", []byte("abc"))

	data, _ := m.ReadFile("/f")
	data[0] = 'x'

	again, _ := m.ReadFile("/f")
	if string(again) != "abc" {
		t.Error("mutating a read result should not affect stored content")
	}
}

func TestMemFSInjectedErrors(t *testing.T) {
	m := NewMemFS()
	_ = m.WriteFile("/f", []byte("content"))

	m.FailWrites("/f", fs.ErrPermission)
	if err := m.WriteFile("/f", []byte("nope")); !errors.Is(err, fs.ErrPermission) {
		t.Errorf("expected permission error, got %v", err)
	}

	m.FailReads("/f", fs.ErrPermission)
	if _, err := m.ReadFile("/f"); !errors.Is(err, fs.ErrPermission) {
		t.Errorf("expected permission error, got %v", err)
	}

	// Clearing the injection restores normal behavior.
	m.FailWrites("/f", nil)
	m.FailReads("/f", nil)
	if err := m.WriteFile("/f", []byte("ok")); err != nil {
		t.Errorf("write should succeed after clearing injection: %v", err)
	}
	if data, err := m.ReadFile("/f"); err != nil || string(data) != "ok" {
		t.Errorf("read should succeed after clearing injection: %v %q", err, data)
	}
}

func TestMemFSExistsAndStat(t *testing.T) {
	m := NewMemFS()
	_ = m.WriteFile("/f", []byte("1234"))

	if !m.Exists("/f") {
		t.Error("expected /f to exist")
	}
	if m.Exists("/other") {
		t.Error("expected /other to not exist")
	}

	info, err := m.Stat("/f")
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() != 4 {
		t.Errorf("expected size 4, got %d", info.Size())
	}
}

func TestOSFSRoundTrip(t *testing.T) {
	o := NewOSFS()
	path := filepath.Join(t.TempDir(), "file.txt")

	if err := o.WriteFile(path, []byte("on disk")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data, err := o.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "on disk" {
		t.Errorf("expected %q, got %q", "on disk", data)
	}
	if !o.Exists(path) {
		t.Error("expected file to exist")
	}
}

func TestOSFSReadMissing(t *testing.T) {
	o := NewOSFS()

	_, err := o.ReadFile(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}
