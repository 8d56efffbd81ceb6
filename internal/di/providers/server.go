package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/signaldeck/signaldeck-server/internal/api"
	"github.com/signaldeck/signaldeck-server/internal/config"
	"github.com/signaldeck/signaldeck-server/internal/logger"
	"github.com/signaldeck/signaldeck-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	historyHandle := do.MustInvoke[*HistoryServiceHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		SavedSearch: do.MustInvoke[*service.SavedSearchService](i),
		History:     historyHandle.HistoryService,
		Discovery:   do.MustInvoke[*service.DiscoveryService](i),
		Archive:     do.MustInvoke[*service.ArchiveService](i),
		Preferences: do.MustInvoke[*service.PreferencesService](i),
	}

	handler := api.NewServer(storeHandle.Store, services, api.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr, "allowed_origins", cfg.Server.AllowedOrigins)

	return &HTTPServerHandle{Server: srv}, nil
}
