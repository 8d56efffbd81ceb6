// Package di provides dependency injection configuration for the SignalDeck server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/signaldeck/signaldeck-server/internal/config"
	"github.com/signaldeck/signaldeck-server/internal/di/providers"
	"github.com/signaldeck/signaldeck-server/internal/discovery"
	"github.com/signaldeck/signaldeck-server/internal/logger"
	"github.com/signaldeck/signaldeck-server/internal/service"
	"github.com/signaldeck/signaldeck-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Archive layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideArchiveService)

	// Discovery provider
	do.Provide(injector, providers.ProvideDiscoveryClient)

	// Business services
	do.Provide(injector, providers.ProvidePreferencesService)
	do.Provide(injector, providers.ProvideSavedSearchService)
	do.Provide(injector, providers.ProvideHistoryService)
	do.Provide(injector, providers.ProvideDiscoveryService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)

	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SearchIndexHandle](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*service.ArchiveService](injector)
	_ = do.MustInvoke[*discovery.Client](injector)

	// Business services
	_ = do.MustInvoke[*service.PreferencesService](injector)
	_ = do.MustInvoke[*service.SavedSearchService](injector)
	_ = do.MustInvoke[*providers.HistoryServiceHandle](injector)
	_ = do.MustInvoke[*service.DiscoveryService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Rebuild the archive index if it drifted from the store
	providers.TriggerArchiveReindexIfNeeded(injector)

	return nil
}
