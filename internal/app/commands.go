package app

import (
	"github.com/ferrisbury/slate/internal/logger"
)

// registerAppCommands registers built-in commands like :q and :close.
func registerAppCommands(app *App) {
	quitCmdFunc := func(args []string) error {
		close(app.quit)
		return nil
	}

	closeCmdFunc := func(args []string) error {
		// Closing the active surface fires its destroy hooks, which is
		// how the scratchpad learns its surface went away.
		return app.registry.Close(app.registry.Active())
	}

	for name, fn := range map[string]func([]string) error{
		"q":     quitCmdFunc,
		"quit":  quitCmdFunc,
		"close": closeCmdFunc,
	} {
		if err := app.modeHandler.RegisterCommand(name, fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", name, err)
		}
	}
}
