package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/willibrandon/notepad/internal/console"
	"github.com/willibrandon/notepad/internal/storage/sqlite"
)

// newRecentCmd creates the recent subcommand
func newRecentCmd() *cobra.Command {
	var (
		limit    int
		clearAll bool
	)

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently opened and saved files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if !cfg.History.Enabled {
				fmt.Println("History is disabled (history.enabled: false)")
				return nil
			}

			db, err := sqlite.Open(cfg.History.HistoryPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer db.Close()
			store := sqlite.NewRecentStore(db)

			if clearAll {
				if err := store.Clear(); err != nil {
					return fmt.Errorf("clear history: %w", err)
				}
				fmt.Println("History cleared")
				return nil
			}

			if limit <= 0 {
				limit = cfg.History.Limit
			}
			files, err := store.GetRecent(limit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			fmt.Fprintln(os.Stdout, console.FormatRecent(files, time.Now()))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of entries to show (default history.limit)")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "remove all history entries")
	return cmd
}
