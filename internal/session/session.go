// Package session owns the buffer for one run of the editor and drives the
// interpreter from a line source.
package session

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/willibrandon/notepad/internal/buffer"
	"github.com/willibrandon/notepad/internal/editor"
	"github.com/willibrandon/notepad/internal/logger"
	"github.com/willibrandon/notepad/internal/storage/sqlite"
)

// RecentLister lists recently used files.
type RecentLister interface {
	GetRecent(limit int) ([]sqlite.RecentFile, error)
}

// Options configures a Session.
type Options struct {
	Buffer buffer.Options
	Editor editor.Options
	// Recent enables the recent-files menu entry when set.
	Recent      RecentLister
	RecentLimit int
}

// Session holds exactly one buffer at a time.
type Session struct {
	ID   string
	buf  *buffer.Buffer
	opts Options
	log  *slog.Logger
}

// New starts a session with an empty buffer.
func New(opts Options) *Session {
	id := uuid.NewString()
	log := logger.With("session", id)
	if opts.Editor.Log == nil {
		opts.Editor.Log = log.With("component", "editor")
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = 20
	}

	s := &Session{
		ID:   id,
		opts: opts,
		log:  log,
	}
	s.buf = buffer.NewWithOptions(opts.Buffer)
	log.Debug("session started")
	return s
}

// Buffer returns the current buffer.
func (s *Session) Buffer() *buffer.Buffer {
	return s.buf
}

// Reset discards the current buffer and starts an empty one.
// Callers confirm discarding unsaved changes before calling it.
func (s *Session) Reset() {
	if s.buf.IsDirty() {
		s.log.Info("discarding unsaved buffer", "path", s.buf.Path(), "size", s.buf.Len())
	}
	s.buf = buffer.NewWithOptions(s.opts.Buffer)
}

// Open loads path into the session buffer. On failure the buffer is unchanged.
func (s *Session) Open(path string) error {
	if err := s.buf.Load(path); err != nil {
		s.log.Warn("load failed", "path", path, "error", err)
		return err
	}
	s.log.Info("buffer loaded", "path", path, "bytes", s.buf.Len())
	if rec := s.opts.Editor.Recorder; rec != nil {
		if err := rec.Record(path, sqlite.ActionOpen, s.buf.Len()); err != nil {
			s.log.Warn("failed to record recent file", "path", path, "error", err)
		}
	}
	return nil
}

// Editor returns an interpreter bound to the current buffer.
func (s *Session) Editor() *editor.Interpreter {
	return editor.New(s.buf, s.opts.Editor)
}

// Recent returns the recent-files listing, or nil when history is disabled.
func (s *Session) Recent() ([]sqlite.RecentFile, error) {
	if s.opts.Recent == nil {
		return nil, nil
	}
	return s.opts.Recent.GetRecent(s.opts.RecentLimit)
}

// HasRecent reports whether recent-file history is available.
func (s *Session) HasRecent() bool {
	return s.opts.Recent != nil
}
