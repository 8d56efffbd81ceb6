package providers

import (
	"github.com/samber/do/v2"

	"github.com/signaldeck/signaldeck-server/internal/config"
	"github.com/signaldeck/signaldeck-server/internal/discovery"
	"github.com/signaldeck/signaldeck-server/internal/logger"
	"github.com/signaldeck/signaldeck-server/internal/service"
	"github.com/signaldeck/signaldeck-server/internal/validation"
)

// ProvideValidator provides the struct validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideDiscoveryClient provides the generative search client.
func ProvideDiscoveryClient(i do.Injector) (*discovery.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := discovery.New(discovery.Config{
		APIKey:  cfg.Discovery.APIKey,
		Model:   cfg.Discovery.Model,
		BaseURL: cfg.Discovery.BaseURL,
		Timeout: cfg.Discovery.Timeout,
	}, log.Logger)

	if client.Configured() {
		log.Info("Discovery client initialized", "model", cfg.Discovery.Model, "timeout", client.Timeout())
	} else {
		log.WithField("model", cfg.Discovery.Model).Warn("No discovery API key configured, discovery will return no results")
	}

	return client, nil
}

// ProvidePreferencesService provides the preferences service.
func ProvidePreferencesService(i do.Injector) (*service.PreferencesService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPreferencesService(storeHandle.Store, validator, log.Logger), nil
}

// ProvideSavedSearchService provides the saved search service.
func ProvideSavedSearchService(i do.Injector) (*service.SavedSearchService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSavedSearchService(storeHandle.Store, log.Logger), nil
}

// HistoryServiceHandle wraps the history service so a pending debounced log
// is written before the store closes.
type HistoryServiceHandle struct {
	*service.HistoryService
}

// Shutdown implements do.Shutdownable.
func (h *HistoryServiceHandle) Shutdown() error {
	h.Flush()
	return nil
}

// ProvideHistoryService provides the search history service.
func ProvideHistoryService(i do.Injector) (*HistoryServiceHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	prefs := do.MustInvoke[*service.PreferencesService](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewHistoryService(storeHandle.Store, prefs, cfg.History.DebounceInterval, log.Logger)
	return &HistoryServiceHandle{HistoryService: svc}, nil
}

// ProvideDiscoveryService provides the discovery feed service.
func ProvideDiscoveryService(i do.Injector) (*service.DiscoveryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	client := do.MustInvoke[*discovery.Client](i)
	prefs := do.MustInvoke[*service.PreferencesService](i)
	historyHandle := do.MustInvoke[*HistoryServiceHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDiscoveryService(storeHandle.Store, client, prefs, historyHandle.HistoryService, log.Logger), nil
}
