package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/willibrandon/notepad/internal/console"
	"github.com/willibrandon/notepad/internal/editor"
	"github.com/willibrandon/notepad/internal/logger"
)

// LineSource supplies input one line at a time.
type LineSource interface {
	// ReadLine returns the next line including its terminator. At the end of
	// input it returns io.EOF, possibly together with a final unterminated line.
	ReadLine() (string, error)
	// Interactive reports whether more input may follow an end of input,
	// as on a terminal where Ctrl-D does not close the stream.
	Interactive() bool
}

// Sink displays output.
type Sink interface {
	Show(msg editor.Message)
	Prompt(text string)
	Newline()
}

// Handler consumes lines and end-of-input events.
type Handler interface {
	Prompt() string
	HandleLine(line string) (editor.Directive, []editor.Message)
	HandleEOF() (editor.Directive, []editor.Message)
}

// ReaderSource is a LineSource over an io.Reader.
type ReaderSource struct {
	r           *bufio.Reader
	interactive bool
}

// NewReaderSource wraps r. It is interactive when r is a terminal.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{
		r:           bufio.NewReader(r),
		interactive: console.IsTerminal(r),
	}
}

func (s *ReaderSource) ReadLine() (string, error) {
	return s.r.ReadString('\n')
}

func (s *ReaderSource) Interactive() bool {
	return s.interactive
}

type readResult struct {
	line string
	err  error
}

// Run feeds lines from src to h until h asks to exit, the context is
// cancelled, or a non-interactive source runs dry. It returns the final
// directive; the error is non-nil only for read failures and cancellation.
func Run(ctx context.Context, src LineSource, sink Sink, h Handler) (editor.Directive, error) {
	results := make(chan readResult, 1)

	for {
		sink.Prompt(h.Prompt())

		go func() {
			line, err := src.ReadLine()
			results <- readResult{line: line, err: err}
		}()

		var res readResult
		select {
		case <-ctx.Done():
			sink.Newline()
			return editor.ExitProgram, ctx.Err()
		case res = <-results:
		}

		if res.line != "" {
			d, msgs := h.HandleLine(res.line)
			show(sink, msgs)
			if d != editor.Continue {
				return d, nil
			}
		}

		if res.err == nil {
			continue
		}
		if !errors.Is(res.err, io.EOF) {
			return editor.ExitProgram, fmt.Errorf("read input: %w", res.err)
		}

		sink.Newline()
		before := h.Prompt()
		d, msgs := h.HandleEOF()
		show(sink, msgs)
		if d != editor.Continue {
			return d, nil
		}
		// A closed pipe keeps returning EOF; stop once EOF no longer
		// moves the handler along.
		if !src.Interactive() && h.Prompt() == before {
			logger.Warn("input exhausted before exit", "prompt", before)
			return editor.ExitProgram, nil
		}
	}
}

func show(sink Sink, msgs []editor.Message) {
	for _, m := range msgs {
		sink.Show(m)
	}
}

// editorHandler drives a bare interpreter without the menu.
type editorHandler struct {
	ed *editor.Interpreter
}

// EditorHandler adapts an interpreter to Handler, for editing a single file
// without the main menu.
func EditorHandler(ed *editor.Interpreter) Handler {
	return &editorHandler{ed: ed}
}

func (h *editorHandler) Prompt() string {
	return h.ed.Prompt()
}

func (h *editorHandler) HandleLine(line string) (editor.Directive, []editor.Message) {
	return wrap(h.ed.HandleLine(line))
}

func (h *editorHandler) HandleEOF() (editor.Directive, []editor.Message) {
	return wrap(h.ed.HandleEOF())
}

func wrap(d editor.Directive, msg *editor.Message) (editor.Directive, []editor.Message) {
	if msg == nil {
		return d, nil
	}
	return d, []editor.Message{*msg}
}
