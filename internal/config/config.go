// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultDirectory    = "audio_clips"
	DefaultVolume       = 100
	DefaultSampleRate   = 44100
	DefaultPollInterval = 100 * time.Millisecond
	DefaultGap          = 500 * time.Millisecond
	DefaultSettle       = time.Second
	DefaultFormat       = "plain"
)

// Config represents the cliplay configuration.
type Config struct {
	Library  LibraryConfig  `toml:"library"`
	Playback PlaybackConfig `toml:"playback"`
	Watch    WatchConfig    `toml:"watch"`
	Output   OutputConfig   `toml:"output"`
}

// LibraryConfig controls where clips are discovered.
type LibraryConfig struct {
	Directory  string   `toml:"directory"`  // May be relative to the working directory
	Extensions []string `toml:"extensions"` // Without leading dot
}

// PlaybackConfig controls the speaker and the blocking wait.
type PlaybackConfig struct {
	Volume       int      `toml:"volume"`        // 0-100
	SampleRate   int      `toml:"sample_rate"`   // Speaker rate; clips are resampled to it
	PollInterval Duration `toml:"poll_interval"` // Busy-status polling interval
	Gap          Duration `toml:"gap"`           // Idle delay between clips in play-all
}

// WatchConfig holds settings for `cliplay watch`.
type WatchConfig struct {
	Settle Duration `toml:"settle"` // Quiet period before a new file is played
}

// OutputConfig holds listing output settings.
type OutputConfig struct {
	Format string `toml:"format"` // plain, dmenu, json, yaml
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Library: LibraryConfig{
			Directory:  DefaultDirectory,
			Extensions: []string{"wav", "mp3", "ogg"},
		},
		Playback: PlaybackConfig{
			Volume:       DefaultVolume,
			SampleRate:   DefaultSampleRate,
			PollInterval: Duration(DefaultPollInterval),
			Gap:          Duration(DefaultGap),
		},
		Watch: WatchConfig{
			Settle: Duration(DefaultSettle),
		},
		Output: OutputConfig{
			Format: DefaultFormat,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "cliplay", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Marshal encodes the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// ValidFormats returns all valid listing formats.
func ValidFormats() []string {
	return []string{"plain", "dmenu", "json", "yaml"}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Library.Directory) == "" {
		return errors.New("library directory must not be empty")
	}
	if len(c.Library.Extensions) == 0 {
		return errors.New("at least one extension must be configured")
	}

	if c.Playback.Volume < 0 || c.Playback.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Playback.Volume)
	}
	if c.Playback.SampleRate < 8000 || c.Playback.SampleRate > 192000 {
		return fmt.Errorf("sample_rate must be between 8000 and 192000, got %d", c.Playback.SampleRate)
	}
	if c.Playback.PollInterval.Duration() <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", c.Playback.PollInterval.Duration())
	}
	if c.Playback.Gap.Duration() < 0 {
		return fmt.Errorf("gap must not be negative, got %s", c.Playback.Gap.Duration())
	}
	if c.Watch.Settle.Duration() < 0 {
		return fmt.Errorf("settle must not be negative, got %s", c.Watch.Settle.Duration())
	}

	validFormat := false
	for _, f := range ValidFormats() {
		if c.Output.Format == f {
			validFormat = true
			break
		}
	}
	if !validFormat {
		return fmt.Errorf("invalid format %q, must be one of: %v", c.Output.Format, ValidFormats())
	}

	return nil
}

// ClipDirectory returns the library directory with ~ expanded.
func (c *Config) ClipDirectory() string {
	return expandPath(c.Library.Directory)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
