package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/signaldeck/signaldeck-server/internal/config"
	"github.com/signaldeck/signaldeck-server/internal/logger"
	"github.com/signaldeck/signaldeck-server/internal/search"
	"github.com/signaldeck/signaldeck-server/internal/service"
)

// SearchIndexHandle wraps the archive index with shutdown capability.
type SearchIndexHandle struct {
	*search.SearchIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve archive index and wires it to the store.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	index, err := search.NewSearchIndex(search.Options{
		DataPath: cfg.Data.BasePath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	// Archived posts are indexed as they are written.
	storeHandle.SetPostIndexer(index)

	docCount, _ := index.DocumentCount()
	log.Info("Archive index initialized", "documents", docCount)

	return &SearchIndexHandle{SearchIndex: index}, nil
}

// ProvideArchiveService provides the archive search service.
func ProvideArchiveService(i do.Injector) (*service.ArchiveService, error) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewArchiveService(indexHandle.SearchIndex, storeHandle.Store, log.Logger), nil
}

// TriggerArchiveReindexIfNeeded rebuilds the archive index in the background
// when it disagrees with the store. Should be called after all services are wired.
func TriggerArchiveReindexIfNeeded(i do.Injector) {
	archive := do.MustInvoke[*service.ArchiveService](i)
	log := do.MustInvoke[*logger.Logger](i)

	go func() {
		if err := archive.EnsureIndexed(context.Background()); err != nil {
			log.WithError(err).Error("Archive reindex failed")
			return
		}
		count, _ := archive.DocumentCount()
		log.Info("Archive index ready", "documents", count)
	}()
}
