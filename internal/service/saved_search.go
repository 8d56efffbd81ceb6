package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/signaldeck/signaldeck-server/internal/domain"
	domainerrors "github.com/signaldeck/signaldeck-server/internal/errors"
	"github.com/signaldeck/signaldeck-server/internal/logger"
	"github.com/signaldeck/signaldeck-server/internal/store"
)

// SavedSearchService manages the user's saved searches.
type SavedSearchService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewSavedSearchService creates a new saved search service.
func NewSavedSearchService(store *store.Store, log *slog.Logger) *SavedSearchService {
	return &SavedSearchService{
		store:  store,
		logger: logger.OrDiscard(log),
	}
}

// List returns the saved searches, newest first.
func (s *SavedSearchService) List(ctx context.Context) ([]domain.SavedSearch, error) {
	return s.store.GetSavedSearches(ctx)
}

// Save stores query as a new saved search. Unlike the store, a blank query is rejected.
func (s *SavedSearchService) Save(ctx context.Context, query string) (*domain.SavedSearch, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domainerrors.ValidationWithDetails("validation failed", map[string]string{
			"query": "must not be blank",
		})
	}
	return s.store.SaveSearch(ctx, query)
}

// Remove deletes a saved search. Removing an unknown id is not an error.
func (s *SavedSearchService) Remove(ctx context.Context, id string) ([]domain.SavedSearch, error) {
	return s.store.RemoveSavedSearch(ctx, id)
}

// ToggleAlert flips alerts for a saved search.
func (s *SavedSearchService) ToggleAlert(ctx context.Context, id string) ([]domain.SavedSearch, error) {
	searches, err := s.store.ToggleSearchAlert(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, ss := range searches {
		if ss.ID == id {
			return searches, nil
		}
	}
	return nil, domainerrors.NotFoundf("saved search %s not found", id)
}
