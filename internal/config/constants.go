package config

import "time"

// Base application details
const AppName = "slate"
const ConfigDirName = "slate"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "slate.log"
const DefaultHistoryFileName = "scratch_history.json"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Scratch surface
const ScratchSurfaceName = "[scratch]"
const DefaultMaxSnapshots = 16
