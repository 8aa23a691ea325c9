// Package atomicfile writes files by renaming a temporary file into place on
// Close, so readers never observe a partially written file.
package atomicfile

import (
	"os"
	"path/filepath"
)

// File is a temporary file, which will replace the named file on Close.
type File struct {
	*os.File
	name string
}

// New creates a temporary file next to name. The directory must exist.
func New(name string) (*File, error) {
	f, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".tmp-*")
	if err != nil {
		return nil, err
	}
	return &File{File: f, name: name}, nil
}

// Close flushes the file and moves it to its final location.
func (f *File) Close() error {
	if err := f.File.Sync(); err != nil {
		f.Abort()
		return err
	}
	if err := f.File.Close(); err != nil {
		os.Remove(f.File.Name())
		return err
	}
	if err := os.Chmod(f.File.Name(), 0644); err != nil {
		os.Remove(f.File.Name())
		return err
	}
	if err := os.Rename(f.File.Name(), f.name); err != nil {
		os.Remove(f.File.Name())
		return err
	}
	return nil
}

// Abort discards the temporary file, the target is left untouched.
func (f *File) Abort() error {
	f.File.Close()
	return os.Remove(f.File.Name())
}

// WriteFile is like os.WriteFile, but atomic.
func WriteFile(name string, data []byte) error {
	f, err := New(name)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Abort()
		return err
	}
	return f.Close()
}
