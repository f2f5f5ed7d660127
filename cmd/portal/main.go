// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command portal is the entry point for the TinyTales admin portal.
//
// # Commands
//
//	portal serve     start the HTTP server (default)
//	portal migrate   apply the audit trail migrations and exit
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/tinytales/internal/platform/config"
	"github.com/taibuivan/tinytales/internal/platform/constants"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		slog.Default().Error("command_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// newRootCommand builds the command tree. Running the bare binary serves.
func newRootCommand() *cobra.Command {
	serve := newServeCommand()

	root := &cobra.Command{
		Use:           "portal",
		Short:         "TinyTales admin portal",
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	root.AddCommand(serve, newMigrateCommand())
	return root
}

// bootstrap installs the JSON logger and loads the configuration.
//
// Initialize the logger first so that configuration errors are structured JSON.
func bootstrap() (*config.Config, *slog.Logger, error) {
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		return nil, log, err
	}

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("version", constants.AppVersion),
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("audit_enabled", cfg.AuditEnabled()),
	)

	return cfg, log, nil
}

// newLogger returns the JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}
