package search

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/signaldeck/signaldeck-server/internal/domain"
	"github.com/signaldeck/signaldeck-server/internal/logger"
)

// SearchIndex wraps a Bleve index of archived posts.
//
// Thread safety: All public methods are safe for concurrent use.
// The mutex protects against index corruption during rebuild operations.
type SearchIndex struct {
	index  bleve.Index
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
}

// Options configures the search index.
type Options struct {
	DataPath string       // Directory for index storage
	Logger   *slog.Logger // Logger for operations (uses discard if nil)
}

// mappingVersion is incremented whenever the index mapping changes.
// A mismatch with the version file on disk rebuilds the index on startup.
const mappingVersion = "1"

const batchSize = 500

// NewSearchIndex creates or opens the archive index under opts.DataPath.
// An index that is corrupt or was built with another mapping version is removed and recreated empty;
// callers repopulate it with Reindex.
func NewSearchIndex(opts Options) (*SearchIndex, error) {
	log := logger.OrDiscard(opts.Logger)

	indexPath := filepath.Join(opts.DataPath, "archive.bleve")
	versionPath := filepath.Join(opts.DataPath, "archive.version")

	var index bleve.Index
	var err error
	needsRebuild := false

	indexExists := false
	if _, statErr := os.Stat(indexPath); statErr == nil {
		indexExists = true
	}

	if indexExists {
		existingVersion, readErr := os.ReadFile(versionPath)
		switch {
		case readErr != nil:
			log.Info("archive index has no version file, will rebuild", "new_version", mappingVersion)
			needsRebuild = true
		case string(existingVersion) != mappingVersion:
			log.Info("archive index mapping version changed, will rebuild",
				"old_version", string(existingVersion),
				"new_version", mappingVersion,
			)
			needsRebuild = true
		}
	}

	if !needsRebuild && indexExists {
		index, err = bleve.Open(indexPath)
		if err != nil {
			log.Warn("failed to open existing archive index, will recreate", "path", indexPath, "error", err)
			needsRebuild = true
		}
	}

	if needsRebuild {
		if removeErr := os.RemoveAll(indexPath); removeErr != nil {
			return nil, fmt.Errorf("remove old index: %w", removeErr)
		}
		index = nil
	}

	if index == nil {
		index, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
		if writeErr := os.WriteFile(versionPath, []byte(mappingVersion), 0o644); writeErr != nil {
			log.Warn("failed to write archive index version file", "error", writeErr)
		}
		log.Info("created new archive index", "path", indexPath, "mapping_version", mappingVersion)
	} else {
		log.Info("opened existing archive index", "path", indexPath)
	}

	return &SearchIndex{
		index:  index,
		path:   indexPath,
		logger: log,
	}, nil
}

// Close closes the index and releases resources.
func (s *SearchIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// IndexPosts indexes posts in batches. Re-indexing an id replaces the previous document.
func (s *SearchIndex) IndexPosts(ctx context.Context, posts []domain.Post) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.indexLocked(ctx, posts)
}

func (s *SearchIndex) indexLocked(ctx context.Context, posts []domain.Post) error {
	for i := 0; i < len(posts); i += batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := min(i+batchSize, len(posts))
		batch := s.index.NewBatch()
		for _, p := range posts[i:end] {
			if err := batch.Index(p.ID, NewPostDocument(p).ToMap()); err != nil {
				return fmt.Errorf("batch index %s: %w", p.ID, err)
			}
		}
		if err := s.index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}
	return nil
}

// DocumentCount returns the number of indexed posts.
func (s *SearchIndex) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Reindex drops the index and rebuilds it from posts.
//
// It holds an exclusive lock for the whole rebuild, blocking searches.
func (s *SearchIndex) Reindex(ctx context.Context, posts []domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}
	if err := os.RemoveAll(s.path); err != nil {
		return fmt.Errorf("remove index: %w", err)
	}

	index, err := bleve.New(s.path, buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	s.index = index

	if err := s.indexLocked(ctx, posts); err != nil {
		return err
	}

	s.logger.Info("rebuilt archive index", "path", s.path, "posts", len(posts))
	return nil
}
