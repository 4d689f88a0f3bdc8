package buffer

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrNoFilename is returned by Save when neither an explicit path nor a
	// buffer path is available.
	ErrNoFilename = errors.New("no filename specified")

	// ErrPartialWrite is returned when fewer bytes reached the file than the
	// buffer holds.
	ErrPartialWrite = errors.New("partial write")

	// ErrAllocation is returned by Append when the buffer cannot grow.
	// Callers treat it as fatal for the editing session.
	ErrAllocation = errors.New("buffer allocation failed")
)

// ErrorKind classifies a file operation failure.
type ErrorKind int

const (
	KindIO ErrorKind = iota
	KindNotFound
	KindPermission
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "file not found"
	case KindPermission:
		return "permission denied"
	default:
		return "i/o error"
	}
}

// FileError records a failed load or save and the path it was attempted on.
type FileError struct {
	Op   string // "open", "read", "write" or "close"
	Path string
	Kind ErrorKind
	Err  error
}

func (e *FileError) Error() string {
	if e.Kind == KindIO {
		return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// newFileError wraps err, deriving the kind from the fs sentinel errors.
func newFileError(op, path string, err error) *FileError {
	kind := KindIO
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = KindNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = KindPermission
	}
	return &FileError{Op: op, Path: path, Kind: kind, Err: err}
}

// KindOf reports the ErrorKind of err if it is (or wraps) a *FileError.
func KindOf(err error) (ErrorKind, bool) {
	var fe *FileError
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return KindIO, false
}
