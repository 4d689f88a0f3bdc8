package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadFromPath_Defaults(t *testing.T) {
	path := writeConfig(t, "{}\n")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "> ", cfg.Editor.Prompt)
	assert.True(t, cfg.Editor.QuitOnFailedSave)
	assert.False(t, cfg.Editor.AtomicSave)
	assert.Equal(t, "0644", cfg.Editor.FileMode)
	assert.Equal(t, 0, cfg.Editor.MaxBufferBytes)
	assert.Equal(t, ColorAuto, cfg.UI.Color)
	assert.True(t, cfg.UI.Wrap)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 20, cfg.History.Limit)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Debug)
}

func TestLoadFromPath_FileOverrides(t *testing.T) {
	path := writeConfig(t, `
editor:
  prompt: "edit> "
  quit_on_failed_save: false
  atomic_save: true
  file_mode: "0600"
  max_buffer_bytes: 4096
ui:
  color: never
history:
  enabled: false
  limit: 5
debug: true
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "edit> ", cfg.Editor.Prompt)
	assert.False(t, cfg.Editor.QuitOnFailedSave)
	assert.True(t, cfg.Editor.AtomicSave)
	assert.Equal(t, 4096, cfg.Editor.MaxBufferBytes)
	assert.Equal(t, ColorNever, cfg.UI.Color)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, 5, cfg.History.Limit)
	assert.True(t, cfg.Debug)

	mode, err := cfg.Editor.Mode()
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), mode)
}

func TestLoadFromPath_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "{}\n")
	t.Setenv("NOTEPAD_UI_COLOR", "always")
	t.Setenv("NOTEPAD_EDITOR_ATOMIC_SAVE", "true")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, ColorAlways, cfg.UI.Color)
	assert.True(t, cfg.Editor.AtomicSave)
}

func TestLoadFromPath_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "bad color", body: "ui:\n  color: rainbow\n", want: "ui.color"},
		{name: "bad file mode", body: "editor:\n  file_mode: \"rw-r--r--\"\n", want: "editor.file_mode"},
		{name: "negative size", body: "editor:\n  max_buffer_bytes: -1\n", want: "editor.max_buffer_bytes"},
		{name: "zero limit", body: "history:\n  limit: 0\n", want: "history.limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromPath(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFromPath_MalformedFile(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, "editor: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestHistoryPath(t *testing.T) {
	assert.Equal(t, "/tmp/h.db", HistoryConfig{Path: "/tmp/h.db"}.HistoryPath())
	assert.Equal(t, filepath.Join(Dir(), "history.db"), HistoryConfig{}.HistoryPath())
}
