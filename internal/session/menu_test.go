package session

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/notepad/internal/editor"
	"github.com/willibrandon/notepad/internal/storage/sqlite"
)

type fakeRecent struct {
	files []sqlite.RecentFile
	err   error
	limit int
}

func (f *fakeRecent) GetRecent(limit int) ([]sqlite.RecentFile, error) {
	f.limit = limit
	return f.files, f.err
}

func newTestMenu(t *testing.T, opts Options) *Menu {
	t.Helper()
	chdir(t, t.TempDir())
	return NewMenu(New(opts))
}

func texts(msgs []editor.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Text
	}
	return out
}

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1\n", 1},
		{"  2\n", 2},
		{"3abc\n", 3},
		{"+4\n", 4},
		{"-1\n", -1},
		{"abc\n", 0},
		{"\n", 0},
		{"12\n", 12},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, leadingInt(tt.in), "input %q", tt.in)
	}
}

func TestMenu_PromptListsOptions(t *testing.T) {
	m := newTestMenu(t, Options{})

	p := m.Prompt()
	assert.Contains(t, p, "Simple Notepad")
	assert.Contains(t, p, "1) New file")
	assert.Contains(t, p, "2) Open file")
	assert.Contains(t, p, "3) Quit")
	assert.NotContains(t, p, "4) Recent files")
	assert.True(t, strings.HasSuffix(p, "Choose option: "))

	withRecent := NewMenu(New(Options{Recent: &fakeRecent{}}))
	assert.Contains(t, withRecent.Prompt(), "4) Recent files")
}

func TestMenu_NewFileEntersEditor(t *testing.T) {
	m := newTestMenu(t, Options{})

	d, msgs := m.HandleLine("1\n")
	assert.Equal(t, editor.Continue, d)
	assert.Equal(t, []string{editor.Banner}, texts(msgs))
	assert.Equal(t, MenuEditing, m.State())
	assert.Equal(t, editor.DefaultPrompt, m.Prompt())

	m.HandleLine("text\n")
	assert.Equal(t, "text\n", string(m.s.Buffer().Content()))
}

func TestMenu_NewFileDiscardsPreviousBuffer(t *testing.T) {
	m := newTestMenu(t, Options{})

	m.HandleLine("1\n")
	m.HandleLine("old\n")
	m.HandleLine(":q\n")
	d, _ := m.HandleLine("y\n")
	require.Equal(t, editor.Continue, d)
	require.Equal(t, MenuChoosing, m.State())

	m.HandleLine("1\n")
	assert.Empty(t, m.s.Buffer().Content())
	assert.False(t, m.s.Buffer().IsDirty())
	assert.False(t, m.s.Buffer().HasPath())
}

func TestMenu_OpenFile(t *testing.T) {
	m := newTestMenu(t, Options{})
	require.NoError(t, os.WriteFile("doc.txt", []byte("abc\n"), 0644))

	d, msgs := m.HandleLine("2\n")
	assert.Equal(t, editor.Continue, d)
	assert.Empty(t, msgs)
	assert.Equal(t, "Enter filename to open: ", m.Prompt())

	d, msgs = m.HandleLine("doc.txt\n")
	assert.Equal(t, editor.Continue, d)
	assert.Equal(t, []string{"Opened 'doc.txt' (4 bytes)", editor.Banner}, texts(msgs))
	assert.Equal(t, MenuEditing, m.State())
	assert.Equal(t, "doc.txt", m.s.Buffer().Path())
}

func TestMenu_OpenFailures(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		m := newTestMenu(t, Options{})
		m.HandleLine("2\n")

		_, msgs := m.HandleLine("\n")
		assert.Equal(t, []string{"No filename provided."}, texts(msgs))
		assert.Equal(t, MenuChoosing, m.State())
	})

	t.Run("missing file", func(t *testing.T) {
		m := newTestMenu(t, Options{})
		m.HandleLine("2\n")

		d, msgs := m.HandleLine("absent.txt\n")
		assert.Equal(t, editor.Continue, d)
		require.Len(t, msgs, 1)
		assert.Equal(t, editor.KindError, msgs[0].Kind)
		assert.Contains(t, msgs[0].Text, "absent.txt")
		assert.Equal(t, MenuChoosing, m.State())
	})
}

func TestMenu_Quit(t *testing.T) {
	t.Run("clean buffer", func(t *testing.T) {
		m := newTestMenu(t, Options{})
		d, _ := m.HandleLine("3\n")
		assert.Equal(t, editor.ExitProgram, d)
	})

	t.Run("dirty buffer confirmed", func(t *testing.T) {
		m := newTestMenu(t, Options{})
		m.HandleLine("1\n")
		m.HandleLine("unsaved\n")
		m.HandleLine(":q\n")
		m.HandleLine("y\n")

		d, msgs := m.HandleLine("3\n")
		assert.Equal(t, editor.Continue, d)
		require.Len(t, msgs, 1)
		assert.Equal(t, editor.KindPrompt, msgs[0].Kind)
		assert.Equal(t, MenuConfirmingQuit, m.State())

		d, _ = m.HandleLine("Y\n")
		assert.Equal(t, editor.ExitProgram, d)
	})

	t.Run("dirty buffer declined", func(t *testing.T) {
		m := newTestMenu(t, Options{})
		m.HandleLine("1\n")
		m.HandleLine("unsaved\n")
		m.HandleLine(":q\n")
		m.HandleLine("y\n")
		m.HandleLine("3\n")

		d, msgs := m.HandleLine("n\n")
		assert.Equal(t, editor.Continue, d)
		assert.Empty(t, msgs)
		assert.Equal(t, MenuChoosing, m.State())
	})
}

func TestMenu_InvalidChoice(t *testing.T) {
	m := newTestMenu(t, Options{})

	for _, line := range []string{"9\n", "x\n", "\n", "4\n"} {
		d, msgs := m.HandleLine(line)
		assert.Equal(t, editor.Continue, d)
		assert.Equal(t, []string{"Invalid choice."}, texts(msgs), "input %q", line)
	}
}

func TestMenu_RecentFiles(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := &fakeRecent{files: []sqlite.RecentFile{
		{Path: "/tmp/a.txt", Action: sqlite.ActionSave, SizeBytes: 10, TouchedAt: now.Add(-time.Minute)},
	}}
	m := newTestMenu(t, Options{Recent: rec, RecentLimit: 7})
	m.now = func() time.Time { return now }

	d, msgs := m.HandleLine("4\n")
	assert.Equal(t, editor.Continue, d)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "/tmp/a.txt")
	assert.Equal(t, 7, rec.limit)

	rec.err = errors.New("database is locked")
	_, msgs = m.HandleLine("4\n")
	require.Len(t, msgs, 1)
	assert.Equal(t, editor.KindError, msgs[0].Kind)
}

func TestMenu_EditorExitReturnsToMenu(t *testing.T) {
	m := newTestMenu(t, Options{})
	m.HandleLine("1\n")

	d, msgs := m.HandleLine(":q\n")
	assert.Equal(t, editor.Continue, d)
	assert.Empty(t, msgs)
	assert.Equal(t, MenuChoosing, m.State())
	assert.Nil(t, m.Editor())
}

func TestMenu_SaveAndQuitFromEditor(t *testing.T) {
	m := newTestMenu(t, Options{})
	m.HandleLine("1\n")
	m.HandleLine("hello\n")

	d, msgs := m.HandleLine(":wq out.txt\n")
	assert.Equal(t, editor.Continue, d)
	assert.Equal(t, []string{"Saved 6 bytes to 'out.txt'"}, texts(msgs))
	assert.Equal(t, MenuChoosing, m.State())

	d, _ = m.HandleLine("3\n")
	assert.Equal(t, editor.ExitProgram, d)
}

func TestMenu_EOF(t *testing.T) {
	t.Run("at menu ends program", func(t *testing.T) {
		m := newTestMenu(t, Options{})
		d, _ := m.HandleEOF()
		assert.Equal(t, editor.ExitProgram, d)
	})

	t.Run("clean editor returns to menu", func(t *testing.T) {
		m := newTestMenu(t, Options{})
		m.HandleLine("1\n")
		d, _ := m.HandleEOF()
		assert.Equal(t, editor.Continue, d)
		assert.Equal(t, MenuChoosing, m.State())
	})

	t.Run("dirty editor reminds", func(t *testing.T) {
		m := newTestMenu(t, Options{})
		m.HandleLine("1\n")
		m.HandleLine("x\n")
		d, msgs := m.HandleEOF()
		assert.Equal(t, editor.Continue, d)
		require.Len(t, msgs, 1)
		assert.Equal(t, MenuEditing, m.State())
	})

	t.Run("while confirming quit", func(t *testing.T) {
		m := newTestMenu(t, Options{})
		m.HandleLine("1\n")
		m.HandleLine("x\n")
		m.HandleLine(":q\n")
		m.HandleLine("y\n")
		m.HandleLine("3\n")

		d, _ := m.HandleEOF()
		assert.Equal(t, editor.Continue, d)
		assert.Equal(t, MenuChoosing, m.State())
	})
}
