// Package buffer holds the in-memory text of an editing session and moves it
// to and from files.
package buffer

import (
	"fmt"
	"io"
	"os"
)

// DefaultFileMode is the permission used for files created by Save.
const DefaultFileMode os.FileMode = 0644

// Options configures a Buffer.
type Options struct {
	FS         FS
	FileMode   os.FileMode
	AtomicSave bool
	// MaxBytes caps the content size; 0 means no limit.
	MaxBytes int
}

// Buffer is an append-only byte buffer optionally tied to a file.
// The zero value is not usable; use New or NewWithOptions.
type Buffer struct {
	content []byte
	path    string
	dirty   bool

	fs       FS
	fileMode os.FileMode
	atomic   bool
	maxBytes int
}

// New returns an empty buffer backed by the real filesystem.
func New() *Buffer {
	return NewWithOptions(Options{})
}

// NewWithOptions returns an empty, clean, path-less buffer.
func NewWithOptions(opts Options) *Buffer {
	if opts.FS == nil {
		opts.FS = OSFS{}
	}
	if opts.FileMode == 0 {
		opts.FileMode = DefaultFileMode
	}
	if opts.MaxBytes < 0 {
		opts.MaxBytes = 0
	}
	return &Buffer{
		fs:       opts.FS,
		fileMode: opts.FileMode,
		atomic:   opts.AtomicSave,
		maxBytes: opts.MaxBytes,
	}
}

// Append adds text to the end of the buffer and marks it dirty.
func (b *Buffer) Append(text []byte) error {
	if b.maxBytes > 0 && len(b.content)+len(text) > b.maxBytes {
		return fmt.Errorf("%w: %d bytes would exceed limit of %d",
			ErrAllocation, len(b.content)+len(text), b.maxBytes)
	}
	b.content = append(b.content, text...)
	b.dirty = true
	return nil
}

// AppendString is Append for string input.
func (b *Buffer) AppendString(text string) error {
	return b.Append([]byte(text))
}

// Load replaces the content with the file at path. On error the buffer is
// left exactly as it was.
func (b *Buffer) Load(path string) error {
	data, err := b.fs.ReadFile(path)
	if err != nil {
		return newFileError("open", path, err)
	}
	if b.maxBytes > 0 && len(data) > b.maxBytes {
		return newFileError("read", path, fmt.Errorf("%w: file is %d bytes, limit is %d",
			ErrAllocation, len(data), b.maxBytes))
	}
	if data == nil {
		data = []byte{}
	}

	b.content = data
	b.path = path
	b.dirty = false
	return nil
}

// Save writes the whole buffer to path, or to the buffer's own path when
// path is empty. It returns the path written and the byte count. The buffer
// path and dirty flag change only when the write fully succeeds.
func (b *Buffer) Save(path string) (string, int, error) {
	target := path
	if target == "" {
		target = b.path
	}
	if target == "" {
		return "", 0, ErrNoFilename
	}

	w, err := b.fs.Create(target, b.fileMode, b.atomic)
	if err != nil {
		return "", 0, newFileError("open", target, err)
	}

	n, err := w.Write(b.content)
	if err == nil && n != len(b.content) {
		err = fmt.Errorf("%w: wrote %d of %d bytes", ErrPartialWrite, n, len(b.content))
	}
	if err != nil {
		abort(w)
		return "", 0, newFileError("write", target, err)
	}
	if err := w.Close(); err != nil {
		return "", 0, newFileError("close", target, err)
	}

	b.path = target
	b.dirty = false
	return target, n, nil
}

// abort releases w after a failed write without committing it.
func abort(w io.WriteCloser) {
	if a, ok := w.(interface{ Abort() }); ok {
		a.Abort()
		return
	}
	w.Close()
}

// IsDirty reports whether the content changed since the last load or save.
func (b *Buffer) IsDirty() bool {
	return b.dirty
}

// Path returns the associated file path, or "" if there is none.
func (b *Buffer) Path() string {
	return b.path
}

// HasPath reports whether the buffer is associated with a file.
func (b *Buffer) HasPath() bool {
	return b.path != ""
}

// Content returns the buffer bytes. The slice must not be modified.
func (b *Buffer) Content() []byte {
	return b.content
}

// Len returns the content length in bytes.
func (b *Buffer) Len() int {
	return len(b.content)
}
