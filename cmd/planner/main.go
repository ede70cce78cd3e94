package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/JonMunkholm/CoursePlanner/internal/catalog"
	"github.com/JonMunkholm/CoursePlanner/internal/config"
	"github.com/JonMunkholm/CoursePlanner/internal/logging"
	"github.com/JonMunkholm/CoursePlanner/internal/planner"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; flags override it.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var file, logFile, logLevel string
	flagSet := pflag.NewFlagSet("planner", pflag.ContinueOnError)
	flagSet.StringVarP(&file, "file", "f", cfg.Catalog.Path, "catalog CSV to load instead of prompting")
	flagSet.StringVar(&logFile, "log-file", cfg.Logging.File, "write logs to this file (default: discard)")
	flagSet.StringVar(&logLevel, "log-level", cfg.Logging.Level, "log level: debug, info, warn, error")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	closer, err := logging.SetupFile(logFile, logLevel, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer closer.Close()

	slog.Info("planner starting", "file", file)

	svc := catalog.NewService(cfg.Catalog)
	if _, err := tea.NewProgram(planner.New(svc, file)).Run(); err != nil {
		slog.Error("planner failed", "error", err)
		return err
	}
	return nil
}
