// Package console renders editor messages on a terminal.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/term"

	"github.com/willibrandon/notepad/internal/editor"
)

// Color modes, matching config ui.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Options configures a Printer.
type Options struct {
	Color string
	// Wrap folds informational text at the terminal width.
	Wrap bool
}

// Printer writes messages to an output and an error stream.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	width  int

	errorFormat  *color.Color
	promptFormat *color.Color
	infoFormat   *color.Color
}

// New returns a Printer. Errors go to errOut; everything else goes to out.
func New(out, errOut io.Writer, opts Options) *Printer {
	p := &Printer{
		out:          out,
		errOut:       errOut,
		errorFormat:  color.New(color.FgHiRed),
		promptFormat: color.New(color.FgHiYellow),
		infoFormat:   color.New(color.FgCyan),
	}

	tty := IsTerminal(out)
	useColor := opts.Color == ColorAlways || (opts.Color != ColorNever && tty)
	for _, c := range []*color.Color{p.errorFormat, p.promptFormat, p.infoFormat} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	if opts.Wrap && tty {
		p.width = Width(out)
	}
	return p
}

// Show renders one message.
func (p *Printer) Show(msg editor.Message) {
	switch msg.Kind {
	case editor.KindError:
		p.errorFormat.Fprintln(p.errOut, msg.Text)
	case editor.KindPrompt:
		p.promptFormat.Fprint(p.out, msg.Text)
	case editor.KindContent:
		// Buffer bytes go out untouched.
		fmt.Fprintln(p.out, msg.Text)
	default:
		text := msg.Text
		if p.width > 0 {
			text = wordwrap.WrapString(text, uint(p.width))
		}
		p.infoFormat.Fprintln(p.out, text)
	}
}

// Prompt shows an input prompt without a trailing newline.
func (p *Printer) Prompt(text string) {
	if text == "" {
		return
	}
	fmt.Fprint(p.out, text)
}

// Newline ends a line left open by a prompt, e.g. when input ends.
func (p *Printer) Newline() {
	fmt.Fprintln(p.out)
}

// IsTerminal reports whether v is an *os.File attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of w, or 0 when unknown.
func Width(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
