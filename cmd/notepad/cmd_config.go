package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/willibrandon/notepad/internal/config"
	"github.com/willibrandon/notepad/internal/logger"
)

// newConfigCmd creates the config subcommand
func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration notepad would run with, after defaults,
the config file, NOTEPAD_* environment variables and flags are applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			return printConfig(cfg)
		},
	}
}

// printConfig writes cfg to stdout with resolved default paths filled in.
func printConfig(cfg *config.Config) error {
	resolved := *cfg
	resolved.History.Path = cfg.History.HistoryPath()
	if resolved.Log.Path == "" {
		resolved.Log.Path = logger.DefaultPath()
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	if err := enc.Encode(&resolved); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
