package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/tenerify/tenerify/internal/di"
)

func main() {
	mode := flag.String("mode", "server", "run mode: server or worker")
	flag.Parse()

	// Bootstrap logger for the wiring phase, before the configured one exists.
	bootstrapLogger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	bootstrapLogger.Info("starting application", "mode", *mode)

	application, err := di.BuildApp()
	if err != nil {
		bootstrapLogger.Error("failed to build app", "error", err)
		os.Exit(1)
	}

	if err := application.Run(context.Background(), *mode); err != nil {
		bootstrapLogger.Error("application run failed", "error", err)
		os.Exit(1)
	}
}
