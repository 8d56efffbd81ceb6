package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/signaldeck/signaldeck-server/internal/domain"
	"github.com/signaldeck/signaldeck-server/internal/logger"
	"github.com/signaldeck/signaldeck-server/internal/search"
	"github.com/signaldeck/signaldeck-server/internal/store"
)

// ArchiveService searches every post ever discovered.
// It bridges the archive index with the store, which holds the full posts.
type ArchiveService struct {
	index  *search.SearchIndex
	store  *store.Store
	logger *slog.Logger
}

// ArchiveResult is an index page with its hits resolved to posts.
type ArchiveResult struct {
	search.SearchResult
	Posts []domain.Post `json:"posts"`
}

// NewArchiveService creates a new archive service.
func NewArchiveService(index *search.SearchIndex, store *store.Store, log *slog.Logger) *ArchiveService {
	return &ArchiveService{
		index:  index,
		store:  store,
		logger: logger.OrDiscard(log),
	}
}

// Search queries the index and loads the matching posts in hit order with isSaved derived.
func (s *ArchiveService) Search(ctx context.Context, params search.SearchParams) (*ArchiveResult, error) {
	res, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search archive: %w", err)
	}

	ids := make([]string, len(res.Hits))
	for i, h := range res.Hits {
		ids[i] = h.ID
	}

	posts, err := s.store.GetPosts(ctx, ids)
	if err != nil {
		return nil, err
	}
	bookmarks, err := s.store.GetBookmarkedPostIDs(ctx)
	if err != nil {
		return nil, err
	}

	return &ArchiveResult{
		SearchResult: *res,
		Posts:        domain.WithSaved(posts, bookmarks),
	}, nil
}

// EnsureIndexed rebuilds the index from the store when their sizes disagree,
// e.g. after the index was recreated for a new mapping version.
func (s *ArchiveService) EnsureIndexed(ctx context.Context) error {
	posts, err := s.store.ListArchivedPosts(ctx)
	if err != nil {
		return err
	}

	count, err := s.index.DocumentCount()
	if err != nil {
		return fmt.Errorf("count archive index: %w", err)
	}
	if count == uint64(len(posts)) {
		return nil
	}

	s.logger.Info("archive index out of sync, reindexing", "indexed", count, "archived", len(posts))
	return s.index.Reindex(ctx, posts)
}

// DocumentCount returns the number of indexed posts.
func (s *ArchiveService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}
