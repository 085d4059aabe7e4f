package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// WaitForShutdown blocks until SIGINT or SIGTERM arrives, or the server fails.
func WaitForShutdown(serverErrs <-chan error) {
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer signal.Stop(sc)

	select {
	case <-sc:
		slog.Info("Shutdown signal received")
	case err := <-serverErrs:
		slog.Error("HTTP server stopped", "error", err)
	}
}
