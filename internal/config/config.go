package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the root configuration structure
type Config struct {
	Editor  EditorConfig  `mapstructure:"editor" yaml:"editor"`
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
	History HistoryConfig `mapstructure:"history" yaml:"history"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Debug   bool          `mapstructure:"debug" yaml:"debug"`
}

// EditorConfig holds buffer and command behavior settings
type EditorConfig struct {
	Prompt           string `mapstructure:"prompt" yaml:"prompt"`
	QuitOnFailedSave bool   `mapstructure:"quit_on_failed_save" yaml:"quit_on_failed_save"`
	AtomicSave       bool   `mapstructure:"atomic_save" yaml:"atomic_save"`
	FileMode         string `mapstructure:"file_mode" yaml:"file_mode"`
	MaxBufferBytes   int    `mapstructure:"max_buffer_bytes" yaml:"max_buffer_bytes"`
}

// UIConfig holds terminal output preferences
type UIConfig struct {
	Color string `mapstructure:"color" yaml:"color"`
	Wrap  bool   `mapstructure:"wrap" yaml:"wrap"`
}

// HistoryConfig holds recent-files settings
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
	Limit   int    `mapstructure:"limit" yaml:"limit"`
}

// LogConfig holds log file settings
type LogConfig struct {
	Path  string `mapstructure:"path" yaml:"path"`
	Level string `mapstructure:"level" yaml:"level"`
}

// Color modes accepted by ui.color
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Dir returns the default configuration directory, ~/.config/notepad.
func Dir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "notepad")
	}
	return filepath.Join(os.TempDir(), "notepad")
}

// LoadFromPath loads configuration from a specific path.
// If configPath is empty, it searches default locations. A missing config
// file is not an error; defaults apply.
func LoadFromPath(configPath string) (*Config, error) {
	v := viper.New()

	// Environment variable support
	v.SetEnvPrefix("NOTEPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	applyDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		if configDir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(configDir, "notepad"))
		}
		v.AddConfigPath(Dir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidateConfig validates the configuration values
func ValidateConfig(cfg *Config) error {
	if _, err := cfg.Editor.Mode(); err != nil {
		return err
	}
	if cfg.Editor.MaxBufferBytes < 0 {
		return fmt.Errorf("editor.max_buffer_bytes must be >= 0, got %d", cfg.Editor.MaxBufferBytes)
	}

	validColors := []string{ColorAuto, ColorAlways, ColorNever}
	validColor := false
	for _, c := range validColors {
		if cfg.UI.Color == c {
			validColor = true
			break
		}
	}
	if !validColor {
		return fmt.Errorf("ui.color must be one of: %v, got %s", validColors, cfg.UI.Color)
	}

	if cfg.History.Limit < 1 {
		return fmt.Errorf("history.limit must be >= 1, got %d", cfg.History.Limit)
	}

	return nil
}

// Mode parses FileMode as an octal permission string such as "0644".
func (c EditorConfig) Mode() (os.FileMode, error) {
	perm, err := strconv.ParseUint(c.FileMode, 8, 32)
	if err != nil || perm == 0 || perm > 0777 {
		return 0, fmt.Errorf("editor.file_mode must be an octal permission like 0644, got %q", c.FileMode)
	}
	return os.FileMode(perm), nil
}

// HistoryPath returns the configured history database path or the default.
func (c HistoryConfig) HistoryPath() string {
	if c.Path != "" {
		return c.Path
	}
	return filepath.Join(Dir(), "history.db")
}

// applyDefaults sets default configuration values
func applyDefaults(v *viper.Viper) {
	// Editor defaults
	v.SetDefault("editor.prompt", "> ")
	v.SetDefault("editor.quit_on_failed_save", true)
	v.SetDefault("editor.atomic_save", false)
	v.SetDefault("editor.file_mode", "0644")
	v.SetDefault("editor.max_buffer_bytes", 0)

	// UI defaults
	v.SetDefault("ui.color", ColorAuto)
	v.SetDefault("ui.wrap", true)

	// History defaults
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "")
	v.SetDefault("history.limit", 20)

	// Log defaults
	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")

	v.SetDefault("debug", false)
}
