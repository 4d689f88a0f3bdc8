// Package editor interprets editor input lines against a text buffer.
//
// The interpreter never reads input or writes to a terminal. A caller feeds
// it one line at a time with HandleLine (or HandleEOF when input runs out)
// and displays the returned Message, then acts on the returned Directive.
package editor

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/willibrandon/notepad/internal/buffer"
	"github.com/willibrandon/notepad/internal/logger"
)

// DefaultPrompt is shown before each editor line.
const DefaultPrompt = "> "

// State is the interpreter's input mode.
type State int

const (
	// StateEditing accepts text and commands.
	StateEditing State = iota
	// StateAwaitingConfirmation treats the next line as a yes/no answer.
	StateAwaitingConfirmation
)

func (s State) String() string {
	if s == StateAwaitingConfirmation {
		return "awaiting-confirmation"
	}
	return "editing"
}

// ActionKind identifies a destructive action waiting for confirmation.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionQuit
	ActionOpen
)

// PendingAction is a deferred action that discards unsaved changes.
type PendingAction struct {
	Kind ActionKind
	Path string // file to open for ActionOpen
}

// Recorder receives successful file transfers, e.g. for a recent-files list.
type Recorder interface {
	Record(path, action string, size int) error
}

// Options configures an Interpreter.
type Options struct {
	// Prompt is shown before each line while editing. Empty means DefaultPrompt.
	Prompt string
	// StayOnFailedSave keeps the editor open when the save half of :wq fails.
	// By default :wq exits whether or not the save succeeded.
	StayOnFailedSave bool
	// Recorder, if set, is told about every successful load and save.
	Recorder Recorder
	// Log receives operation logs. Nil uses the package logger.
	Log *slog.Logger
}

// Interpreter is the editor command engine for one buffer.
type Interpreter struct {
	buf     *buffer.Buffer
	state   State
	pending PendingAction
	opts    Options
	log     *slog.Logger
}

// New returns an interpreter in StateEditing operating on buf.
func New(buf *buffer.Buffer, opts Options) *Interpreter {
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	log := opts.Log
	if log == nil {
		log = logger.With("component", "editor")
	}
	return &Interpreter{
		buf:  buf,
		opts: opts,
		log:  log,
	}
}

// Buffer returns the buffer being edited.
func (in *Interpreter) Buffer() *buffer.Buffer {
	return in.buf
}

// State returns the current input mode.
func (in *Interpreter) State() State {
	return in.state
}

// Pending returns the action awaiting confirmation, if any.
func (in *Interpreter) Pending() PendingAction {
	return in.pending
}

// Prompt returns the text to show before reading the next line. It is empty
// while a confirmation question is outstanding, since the question itself
// is the prompt.
func (in *Interpreter) Prompt() string {
	if in.state == StateAwaitingConfirmation {
		return ""
	}
	return in.opts.Prompt
}

// HandleLine processes one input line. The line should include its line
// terminator; text lines are appended exactly as given.
func (in *Interpreter) HandleLine(line string) (Directive, *Message) {
	if in.state == StateAwaitingConfirmation {
		return in.answer(line)
	}
	if strings.HasPrefix(line, ":") {
		return in.command(line)
	}

	if err := in.buf.AppendString(line); err != nil {
		in.log.Error("append failed", "error", err, "size", in.buf.Len())
		return ExitEditor, errorf("Failed to append text: %v", err)
	}
	return Continue, nil
}

// HandleEOF processes the end of input. A dirty buffer is never abandoned
// silently: the caller gets a reminder and Continue.
func (in *Interpreter) HandleEOF() (Directive, *Message) {
	if in.state == StateAwaitingConfirmation {
		in.log.Debug("confirmation cancelled by end of input", "action", in.pending.Kind)
		in.reset()
	}
	if in.buf.IsDirty() {
		return Continue, info(eofReminder)
	}
	return ExitEditor, nil
}

func (in *Interpreter) answer(line string) (Directive, *Message) {
	action := in.pending
	in.reset()

	if !isYes(line) {
		in.log.Debug("pending action declined", "action", action.Kind)
		return Continue, nil
	}

	switch action.Kind {
	case ActionQuit:
		in.log.Info("quit discarding changes", "path", in.buf.Path(), "size", in.buf.Len())
		return ExitEditor, nil
	case ActionOpen:
		return Continue, in.load(action.Path)
	}
	return Continue, nil
}

func (in *Interpreter) reset() {
	in.state = StateEditing
	in.pending = PendingAction{}
}

func (in *Interpreter) await(action PendingAction, question string) (Directive, *Message) {
	in.state = StateAwaitingConfirmation
	in.pending = action
	return Continue, prompt(question)
}

func (in *Interpreter) command(line string) (Directive, *Message) {
	name, arg := parseCommand(line)

	switch name {
	case "":
		return Continue, nil
	case "w":
		msg, _ := in.save(arg)
		return Continue, msg
	case "wq":
		msg, ok := in.save(arg)
		if !ok && in.opts.StayOnFailedSave {
			return Continue, msg
		}
		if !ok {
			in.log.Warn("exiting after failed save", "path", in.buf.Path(), "size", in.buf.Len())
		}
		return ExitEditor, msg
	case "q":
		if in.buf.IsDirty() {
			return in.await(PendingAction{Kind: ActionQuit}, quitPrompt)
		}
		return ExitEditor, nil
	case "p":
		text := string(in.buf.Content())
		if text == "" {
			text = emptyMarker
		}
		return Continue, &Message{Kind: KindContent, Text: text}
	case "e":
		if arg == "" {
			return Continue, info(openUsage)
		}
		if in.buf.IsDirty() {
			return in.await(PendingAction{Kind: ActionOpen, Path: arg}, openPrompt)
		}
		return Continue, in.load(arg)
	case "h", "help":
		return Continue, info(HelpText)
	default:
		return Continue, info("Unknown command: %s", name)
	}
}

func (in *Interpreter) save(path string) (*Message, bool) {
	resolved, n, err := in.buf.Save(path)
	if err != nil {
		if errors.Is(err, buffer.ErrNoFilename) {
			return errorf(noFilenameMsg), false
		}
		in.log.Warn("save failed", "path", path, "error", err)
		return errorf("Error: %v", err), false
	}

	in.log.Info("buffer saved", "path", resolved, "bytes", n)
	in.record(resolved, "save", n)
	return info("Saved %d bytes to '%s'", n, resolved), true
}

func (in *Interpreter) load(path string) *Message {
	if err := in.buf.Load(path); err != nil {
		in.log.Warn("load failed", "path", path, "error", err)
		return errorf("Error: %v", err)
	}

	n := in.buf.Len()
	in.log.Info("buffer loaded", "path", path, "bytes", n)
	in.record(path, "open", n)
	return info("Opened '%s' (%d bytes)", path, n)
}

func (in *Interpreter) record(path, action string, size int) {
	if in.opts.Recorder == nil {
		return
	}
	if err := in.opts.Recorder.Record(path, action, size); err != nil {
		in.log.Warn("failed to record recent file", "path", path, "error", err)
	}
}

// parseCommand splits a ":name arg" line. Leading whitespace before the name
// and between name and argument is dropped; the argument otherwise keeps its
// spacing. The line terminator is not part of either.
func parseCommand(line string) (name, arg string) {
	body := strings.TrimRight(strings.TrimPrefix(line, ":"), "\r\n")
	body = strings.TrimLeft(body, " \t")

	i := strings.IndexAny(body, " \t")
	if i < 0 {
		return body, ""
	}
	return body[:i], strings.TrimLeft(body[i+1:], " \t")
}

// isYes reports whether an answer line starts with y or Y.
func isYes(line string) bool {
	return len(line) > 0 && (line[0] == 'y' || line[0] == 'Y')
}
