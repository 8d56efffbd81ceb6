package api

import (
	"github.com/signaldeck/signaldeck-server/internal/service"
)

// Services groups all business logic services used by the API server.
type Services struct {
	SavedSearch *service.SavedSearchService
	History     *service.HistoryService
	Discovery   *service.DiscoveryService // Analyze, feed and bookmarks
	Archive     *service.ArchiveService
	Preferences *service.PreferencesService
}
