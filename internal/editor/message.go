package editor

import "fmt"

// Directive tells the caller of HandleLine what to do next.
type Directive int

const (
	// Continue keeps feeding lines to the interpreter.
	Continue Directive = iota
	// ExitEditor leaves the editor and returns control to the caller's loop.
	ExitEditor
	// ExitProgram ends the whole program.
	ExitProgram
)

func (d Directive) String() string {
	switch d {
	case Continue:
		return "continue"
	case ExitEditor:
		return "exit-editor"
	case ExitProgram:
		return "exit-program"
	default:
		return "unknown"
	}
}

// MessageKind tells a sink how to render a Message.
type MessageKind int

const (
	// KindInfo is a status line.
	KindInfo MessageKind = iota
	// KindError is a failure report.
	KindError
	// KindPrompt asks a question; it is shown without a trailing newline.
	KindPrompt
	// KindContent is buffer text shown verbatim.
	KindContent
)

// Message is user-facing output produced by the interpreter or menu.
type Message struct {
	Kind MessageKind
	Text string
}

func info(format string, args ...any) *Message {
	return &Message{Kind: KindInfo, Text: fmt.Sprintf(format, args...)}
}

func errorf(format string, args ...any) *Message {
	return &Message{Kind: KindError, Text: fmt.Sprintf(format, args...)}
}

func prompt(text string) *Message {
	return &Message{Kind: KindPrompt, Text: text}
}
