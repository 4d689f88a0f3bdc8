package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/willibrandon/notepad/internal/buffer"
	"github.com/willibrandon/notepad/internal/config"
	"github.com/willibrandon/notepad/internal/console"
	"github.com/willibrandon/notepad/internal/editor"
	"github.com/willibrandon/notepad/internal/logger"
	"github.com/willibrandon/notepad/internal/session"
	"github.com/willibrandon/notepad/internal/storage/sqlite"
)

// Exit codes
const (
	ExitSuccess     = 0
	ExitError       = 1
	ExitConfigError = 3
)

// errReported marks a failure already shown to the user.
var errReported = errors.New("error already reported")

var (
	// Version info (set by ldflags)
	version = "dev"

	// Flags
	configPath string
	debug      bool
	colorMode  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "notepad [file]",
		Short: "Simple line-oriented text editor",
		Long: `notepad is a line-oriented text editor. Lines you type are appended to
the buffer; lines starting with ':' are commands.

Editor commands:
  :w [file]    save (to the current file if omitted)
  :wq [file]   save and quit the editor
  :q           quit the editor (asks if unsaved)
  :p           print the buffer
  :e file      open another file (replaces the buffer)
  :h, :help    show help

Without a file argument notepad starts at the main menu.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd.Context(), args)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/notepad/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "", "color output: auto, always or never")

	rootCmd.AddCommand(
		newRecentCmd(),
		newConfigCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(ExitError)
	}
}

// loadConfig loads configuration and applies flag overrides. Config errors
// are fatal.
func loadConfig() *config.Config {
	cfg, err := config.LoadFromPath(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(ExitConfigError)
	}
	if debug {
		cfg.Debug = true
	}
	if colorMode != "" {
		cfg.UI.Color = colorMode
	}
	if err := config.ValidateConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitConfigError)
	}
	return cfg
}

// initLogging starts the rotating log file. Debug mode forces DEBUG level.
func initLogging(cfg *config.Config) {
	level := logger.ParseLevel(cfg.Log.Level)
	if cfg.Debug {
		level = logger.LevelDebug
	}
	logger.InitLogger(level, cfg.Log.Path)
	if cfg.Debug {
		fmt.Fprintf(os.Stderr, "Debug mode: Logs written to %s\n", logger.LogPath)
	}
}

// openHistory opens the recent-files store. A history failure never stops
// the editor; it only disables the feature.
func openHistory(cfg *config.Config) (*sqlite.DB, *sqlite.RecentStore) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	db, err := sqlite.Open(cfg.History.HistoryPath())
	if err != nil {
		logger.Warn("history disabled", "path", cfg.History.HistoryPath(), "error", err)
		return nil, nil
	}
	logger.Debug("history opened", "path", db.Path())
	return db, sqlite.NewRecentStore(db)
}

// sessionOptions maps configuration onto session and editor options.
func sessionOptions(cfg *config.Config, store *sqlite.RecentStore) session.Options {
	mode, _ := cfg.Editor.Mode()
	opts := session.Options{
		Buffer: buffer.Options{
			FileMode:   mode,
			AtomicSave: cfg.Editor.AtomicSave,
			MaxBytes:   cfg.Editor.MaxBufferBytes,
		},
		Editor: editor.Options{
			Prompt:           cfg.Editor.Prompt,
			StayOnFailedSave: !cfg.Editor.QuitOnFailedSave,
		},
		RecentLimit: cfg.History.Limit,
	}
	// Assigning a nil *RecentStore would make the interfaces non-nil.
	if store != nil {
		opts.Editor.Recorder = store
		opts.Recent = store
	}
	return opts
}

// runEditor runs the menu session, or edits a single file when one is given.
func runEditor(ctx context.Context, args []string) error {
	cfg := loadConfig()
	initLogging(cfg)
	defer logger.Close()

	db, store := openHistory(cfg)
	if db != nil {
		defer db.Close()
	}

	printer := console.New(os.Stdout, os.Stderr, console.Options{
		Color: cfg.UI.Color,
		Wrap:  cfg.UI.Wrap,
	})

	s := session.New(sessionOptions(cfg, store))
	logger.Info("notepad starting", "version", version, "session", s.ID, "args", args)

	var handler session.Handler
	if len(args) == 1 {
		if err := s.Open(args[0]); err != nil {
			printer.Show(editor.Message{Kind: editor.KindError, Text: fmt.Sprintf("Error: %v", err)})
			logger.Error("open failed", "path", args[0], "error", err)
			return errReported
		}
		printer.Show(editor.Message{
			Kind: editor.KindInfo,
			Text: fmt.Sprintf("Opened '%s' (%d bytes)", args[0], s.Buffer().Len()),
		})
		printer.Show(editor.Message{Kind: editor.KindInfo, Text: editor.Banner})
		handler = session.EditorHandler(s.Editor())
	} else {
		handler = session.NewMenu(s)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	directive, err := session.Run(ctx, session.NewReaderSource(os.Stdin), printer, handler)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("input failed", "error", err)
		return err
	}
	if s.Buffer().IsDirty() {
		logger.Warn("exiting with unsaved changes", "path", s.Buffer().Path(), "size", s.Buffer().Len())
	}
	logger.Info("notepad exiting", "directive", directive.String())

	fmt.Println("Goodbye.")
	return nil
}
