// Package main provides the entry point for the SignalDeck server application.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/signaldeck/signaldeck-server/internal/di"
	"github.com/signaldeck/signaldeck-server/internal/logger"
)

func main() {
	// Create DI container
	injector := di.NewContainer()

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	// Dependents stop first: the HTTP server, then the history flush,
	// then the archive index and finally the database.
	if err := injector.Shutdown(); err != nil {
		log.WithError(err).Error("Shutdown error")
	}

	log.Info("Signal lost. Goodbye.")
}
