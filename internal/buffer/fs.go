package buffer

import (
	"io"
	"os"
	"path/filepath"
)

// FS is the filesystem seam used by Load and Save.
type FS interface {
	ReadFile(name string) ([]byte, error)
	// Create opens name for writing, truncating it. When atomic is set the
	// returned writer stages bytes in a sibling temp file that replaces name
	// on a successful Close.
	Create(name string, perm os.FileMode, atomic bool) (io.WriteCloser, error)
}

// OSFS is the FS backed by the os package.
type OSFS struct{}

func (OSFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (OSFS) Create(name string, perm os.FileMode, atomic bool) (io.WriteCloser, error) {
	if !atomic {
		return os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	}

	// Replace the file a symlink points at, not the link, and keep the
	// permissions of an existing target.
	target := name
	if resolved, err := filepath.EvalSymlinks(name); err == nil {
		target = resolved
	}
	if fi, err := os.Stat(target); err == nil {
		perm = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return nil, err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, err
	}
	return &atomicFile{File: tmp, target: target}, nil
}

// atomicFile renames itself over target when closed.
type atomicFile struct {
	*os.File
	target string
}

// Abort discards the staged temp file without touching the target.
func (f *atomicFile) Abort() {
	f.File.Close()
	os.Remove(f.File.Name())
}

func (f *atomicFile) Close() error {
	name := f.File.Name()
	if err := f.File.Sync(); err != nil {
		f.Abort()
		return err
	}
	if err := f.File.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, f.target); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}
