// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/ferrisbury/slate/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config `toml:"logger"`  // Logger config under the [logger] table
	Editor  EditorConfig  `toml:"editor"`  // Editor-specific settings
	Scratch ScratchConfig `toml:"scratch"` // Scratch history settings
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth        int `toml:"tab_width"`
	StatusBarHeight int `toml:"status_bar_height"`
}

// ScratchConfig holds the scratch snapshot history settings.
type ScratchConfig struct {
	// MaxSnapshots bounds the stored snapshot count. Takes effect on the
	// next save; an existing longer history is only trimmed, never padded.
	MaxSnapshots int `toml:"max_snapshots"`

	// HistoryFile is the path of the persisted snapshot list. Empty means
	// the default path under the user config dir.
	HistoryFile string `toml:"history_file"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "",
		},
		Editor: EditorConfig{
			TabWidth:        4,
			StatusBarHeight: StatusBarHeight,
		},
		Scratch: ScratchConfig{
			MaxSnapshots: DefaultMaxSnapshots,
			HistoryFile:  "",
		},
	}
}

// loadFromFile attempts to load configuration from a TOML file.
// A missing file is not an error; the caller keeps the defaults.
func loadFromFile(filePath string, verbose bool) (*Config, error) {
	cfg := &Config{}
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		if verbose {
			logger.Debugf("Config file not found: %s", filePath)
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 && verbose {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	return cfg, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Scratch.MaxSnapshots <= 0 {
		c.Scratch.MaxSnapshots = defaults.Scratch.MaxSnapshots
	}
}

// HistoryFilePath resolves the effective path of the persisted history blob.
func (c *Config) HistoryFilePath() string {
	if c.Scratch.HistoryFile != "" {
		return c.Scratch.HistoryFile
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fall back to the working directory when no config dir exists.
		return DefaultHistoryFileName
	}
	return filepath.Join(configDir, ConfigDirName, DefaultHistoryFileName)
}

// LoadConfig orchestrates loading defaults, file, applying flags, and validation.
// It should be called only once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		cfg := NewDefaultConfig()

		effectivePath := configFilePath
		if effectivePath == "" {
			configDir, err := os.UserConfigDir()
			if err == nil {
				effectivePath = filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
			}
		}

		if effectivePath != "" {
			fileCfg, err := loadFromFile(effectivePath, false)
			if err != nil {
				loadErr = err
			} else if fileCfg != nil {
				if fileCfg.Logger.LogLevel != "" {
					cfg.Logger = fileCfg.Logger
				}
				if fileCfg.Editor.TabWidth > 0 {
					cfg.Editor.TabWidth = fileCfg.Editor.TabWidth
				}
				if fileCfg.Editor.StatusBarHeight > 0 {
					cfg.Editor.StatusBarHeight = fileCfg.Editor.StatusBarHeight
				}
				if fileCfg.Scratch.MaxSnapshots > 0 {
					cfg.Scratch.MaxSnapshots = fileCfg.Scratch.MaxSnapshots
				}
				if fileCfg.Scratch.HistoryFile != "" {
					cfg.Scratch.HistoryFile = fileCfg.Scratch.HistoryFile
				}
			}
		}

		if flags != nil {
			flags.ApplyOverrides(cfg)
		}

		cfg.validate()
		loadedConfig = cfg
	})

	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
