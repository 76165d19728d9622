package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Mshel/sshtris/internal/config"
	"github.com/Mshel/sshtris/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the game, so logs only go to a file when asked.
	var logOutput io.Writer = io.Discard
	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Printf("error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer logFile.Close()
		logOutput = logFile
	}
	logger := log.NewWithOptions(logOutput, log.Options{
		Level:           cfg.LogLevel,
		ReportTimestamp: true,
	})

	controller := ui.NewControllerModel(ui.Settings{
		Game:            cfg.Game,
		AutopilotScript: cfg.AutopilotScript,
		Logger:          logger,
	})

	p := tea.NewProgram(controller, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("Program exited with error", "error", err)
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}
}
