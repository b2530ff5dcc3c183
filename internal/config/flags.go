// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
)

// Flags holds values parsed from command-line flags.
// Pointers distinguish unset flags from zero-value flags.
type Flags struct {
	ConfigFilePath *string
	LogLevel       *string
	LogFilePath    *string
	MaxSnapshots   *int
	HistoryFile    *string
}

// DefineFlags sets up the command-line flags and associates them with the Flags struct fields.
func (f *Flags) DefineFlags() {
	f.ConfigFilePath = flag.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.LogLevel = flag.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = flag.String("logfile", "", "Path to write log file - Overrides config file")
	f.MaxSnapshots = flag.Int("max-snapshots", 0, "Maximum number of stored scratch snapshots - Overrides config file")
	f.HistoryFile = flag.String("history-file", "", "Path of the persisted snapshot history - Overrides config file")
}

// ParseFlags parses the defined command-line flags into the Flags struct.
// It returns the remaining non-flag arguments.
func (f *Flags) ParseFlags() []string {
	f.DefineFlags()
	flag.Parse()
	return flag.Args()
}

// ApplyOverrides updates the Config struct with values from flags *if* they were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != nil && *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			if f.LogFilePath != nil {
				cfg.Logger.LogFilePath = *f.LogFilePath
			}
		case "max-snapshots":
			if f.MaxSnapshots != nil && *f.MaxSnapshots > 0 {
				cfg.Scratch.MaxSnapshots = *f.MaxSnapshots
			}
		case "history-file":
			if f.HistoryFile != nil && *f.HistoryFile != "" {
				cfg.Scratch.HistoryFile = *f.HistoryFile
			}
		}
	})
}
