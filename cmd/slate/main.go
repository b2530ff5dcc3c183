// cmd/slate/main.go
package main

import (
	"io"
	stlog "log" // Standard log for fatal errors before the logger is ready
	"os"

	"github.com/ferrisbury/slate/internal/app"
	"github.com/ferrisbury/slate/internal/config"
	"github.com/ferrisbury/slate/internal/logger"
)

func main() {
	// --- Flag & Config Loading ---
	flags := &config.Flags{}
	flags.ParseFlags()

	cfg, err := config.LoadConfig(*flags.ConfigFilePath, flags)
	if err != nil {
		stlog.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Logger Initialization ---
	var logOutput io.Writer = io.Discard
	var logFile *os.File
	if cfg.Logger.LogFilePath != "" {
		logFile, err = os.OpenFile(cfg.Logger.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			stlog.Fatalf("Failed to open log file '%s': %v", cfg.Logger.LogFilePath, err)
		}
		defer logFile.Close()
		logOutput = logFile
	}
	logger.Init(logger.ParseLevel(cfg.Logger.LogLevel), logOutput)

	logger.Infof("Starting Slate...")
	logger.Debugf("Snapshot capacity: %d", cfg.Scratch.MaxSnapshots)
	logger.Debugf("History file: %s", cfg.HistoryFilePath())

	// --- Create and Run App ---
	slateApp, err := app.NewApp(cfg)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		os.Exit(1)
	}

	if err := slateApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}

	logger.Infof("Slate finished.")
}
