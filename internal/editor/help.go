package editor

// Banner is shown when the editor starts.
const Banner = "Entering editor mode. Type lines; commands start with ':' on their own line. Use :help for commands."

// HelpText lists the editor commands.
const HelpText = `Editor commands (type on a line by itself):
:w [filename]   - save (use current filename if omitted)
:wq [filename]  - save and quit editor
:q              - quit editor (asks if unsaved)
:p              - print buffer to screen
:e filename     - open another file (replaces buffer)
:h or :help     - show this help`

const (
	emptyMarker   = "(empty)"
	quitPrompt    = "Buffer modified. Quit without saving? (y/N): "
	openPrompt    = "Buffer modified. Opening another file will discard unsaved changes. Continue? (y/N): "
	eofReminder   = "Buffer modified. Use :w filename to save, or :q to quit without saving."
	openUsage     = "Usage: :e filename"
	noFilenameMsg = "No filename specified. Use :w filename"
)
