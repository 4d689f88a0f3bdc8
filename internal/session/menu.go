package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/willibrandon/notepad/internal/console"
	"github.com/willibrandon/notepad/internal/editor"
)

// MenuState is the main menu's input mode.
type MenuState int

const (
	MenuChoosing MenuState = iota
	MenuAwaitingFilename
	MenuConfirmingQuit
	MenuEditing
)

const (
	menuTitle      = "Simple Notepad"
	choosePrompt   = "Choose option: "
	filenamePrompt = "Enter filename to open: "
	quitAnyway     = "Buffer modified. Quit anyway? (y/N): "
)

// Menu is the top-level New/Open/Quit loop. Like the interpreter it is fed
// one line at a time; while a buffer is being edited it forwards lines to
// an editor.Interpreter.
type Menu struct {
	s     *Session
	state MenuState
	ed    *editor.Interpreter
	now   func() time.Time
}

// NewMenu returns a menu in MenuChoosing for s.
func NewMenu(s *Session) *Menu {
	return &Menu{s: s, now: time.Now}
}

// State returns the current menu mode.
func (m *Menu) State() MenuState {
	return m.state
}

// Editor returns the active interpreter, or nil outside MenuEditing.
func (m *Menu) Editor() *editor.Interpreter {
	return m.ed
}

// Prompt returns the text shown before the next line is read. While
// choosing, that is the whole menu.
func (m *Menu) Prompt() string {
	switch m.state {
	case MenuAwaitingFilename:
		return filenamePrompt
	case MenuConfirmingQuit:
		return ""
	case MenuEditing:
		return m.ed.Prompt()
	}

	var sb strings.Builder
	sb.WriteString("\n" + menuTitle + "\n")
	sb.WriteString("1) New file\n")
	sb.WriteString("2) Open file\n")
	sb.WriteString("3) Quit\n")
	if m.s.HasRecent() {
		sb.WriteString("4) Recent files\n")
	}
	sb.WriteString(choosePrompt)
	return sb.String()
}

// HandleLine processes one input line.
func (m *Menu) HandleLine(line string) (editor.Directive, []editor.Message) {
	switch m.state {
	case MenuEditing:
		d, msg := m.ed.HandleLine(line)
		return m.fromEditor(d, msg)
	case MenuAwaitingFilename:
		return m.open(strings.TrimRight(line, "\r\n"))
	case MenuConfirmingQuit:
		m.state = MenuChoosing
		if isYes(line) {
			m.s.log.Info("quit discarding changes", "path", m.s.Buffer().Path())
			return editor.ExitProgram, nil
		}
		return editor.Continue, nil
	}

	switch leadingInt(line) {
	case 1:
		m.s.Reset()
		return m.edit()
	case 2:
		m.state = MenuAwaitingFilename
		return editor.Continue, nil
	case 3:
		if m.s.Buffer().IsDirty() {
			m.state = MenuConfirmingQuit
			return editor.Continue, []editor.Message{{Kind: editor.KindPrompt, Text: quitAnyway}}
		}
		return editor.ExitProgram, nil
	case 4:
		if m.s.HasRecent() {
			return editor.Continue, []editor.Message{m.recent()}
		}
	}
	return editor.Continue, []editor.Message{{Kind: editor.KindInfo, Text: "Invalid choice."}}
}

// HandleEOF processes the end of input. Outside the editor it ends the program.
func (m *Menu) HandleEOF() (editor.Directive, []editor.Message) {
	switch m.state {
	case MenuEditing:
		d, msg := m.ed.HandleEOF()
		return m.fromEditor(d, msg)
	case MenuConfirmingQuit, MenuAwaitingFilename:
		m.state = MenuChoosing
		return editor.Continue, nil
	}
	return editor.ExitProgram, nil
}

func (m *Menu) open(path string) (editor.Directive, []editor.Message) {
	m.state = MenuChoosing
	if path == "" {
		return editor.Continue, []editor.Message{{Kind: editor.KindInfo, Text: "No filename provided."}}
	}
	if err := m.s.Open(path); err != nil {
		return editor.Continue, []editor.Message{{Kind: editor.KindError, Text: fmt.Sprintf("Error: %v", err)}}
	}

	opened := editor.Message{
		Kind: editor.KindInfo,
		Text: fmt.Sprintf("Opened '%s' (%d bytes)", path, m.s.Buffer().Len()),
	}
	d, msgs := m.edit()
	return d, append([]editor.Message{opened}, msgs...)
}

func (m *Menu) edit() (editor.Directive, []editor.Message) {
	m.ed = m.s.Editor()
	m.state = MenuEditing
	return editor.Continue, []editor.Message{{Kind: editor.KindInfo, Text: editor.Banner}}
}

// fromEditor maps an interpreter result onto the menu: leaving the editor
// returns to the menu instead of ending the program.
func (m *Menu) fromEditor(d editor.Directive, msg *editor.Message) (editor.Directive, []editor.Message) {
	var msgs []editor.Message
	if msg != nil {
		msgs = append(msgs, *msg)
	}
	switch d {
	case editor.ExitEditor:
		m.state = MenuChoosing
		m.ed = nil
		return editor.Continue, msgs
	case editor.ExitProgram:
		return editor.ExitProgram, msgs
	}
	return editor.Continue, msgs
}

func (m *Menu) recent() editor.Message {
	files, err := m.s.Recent()
	if err != nil {
		m.s.log.Warn("failed to list recent files", "error", err)
		return editor.Message{Kind: editor.KindError, Text: fmt.Sprintf("Error: %v", err)}
	}
	return editor.Message{Kind: editor.KindInfo, Text: console.FormatRecent(files, m.now())}
}

// leadingInt parses an optional sign and leading digits after leading
// whitespace, returning 0 when there are none.
func leadingInt(s string) int {
	s = strings.TrimLeft(s, " \t\r\n\v\f")
	sign := 1
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}
	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > 1<<20 {
			break
		}
	}
	return sign * n
}

func isYes(line string) bool {
	return len(line) > 0 && (line[0] == 'y' || line[0] == 'Y')
}
