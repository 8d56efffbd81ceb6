package store

import (
	"context"
	"slices"
	"strings"

	"github.com/signaldeck/signaldeck-server/internal/domain"
	"github.com/signaldeck/signaldeck-server/internal/id"
)

// GetSavedSearches returns the persisted saved searches, newest first,
// or the seed list when nothing has been saved yet.
func (s *Store) GetSavedSearches(ctx context.Context) ([]domain.SavedSearch, error) {
	return read(ctx, s, savedSearchesKey, defaultSavedSearches)
}

// SaveSearch prepends a new saved search for query and persists the list.
// A blank query is a no-op and returns nil without touching storage.
func (s *Store) SaveSearch(ctx context.Context, query string) (*domain.SavedSearch, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	searchID, err := id.Timed("s", s.now())
	if err != nil {
		return nil, err
	}

	created := domain.SavedSearch{
		ID:            searchID,
		Query:         query,
		LastRun:       "Just now",
		AlertsEnabled: false,
	}

	_, err = update(ctx, s, &s.savedMu, savedSearchesKey, defaultSavedSearches,
		func(current []domain.SavedSearch) []domain.SavedSearch {
			return append([]domain.SavedSearch{created}, current...)
		})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("saved search created", "id", created.ID, "query", query)
	return &created, nil
}

// RemoveSavedSearch deletes the saved search with the given id and returns the remaining list.
// Removing an unknown id leaves the list unchanged.
func (s *Store) RemoveSavedSearch(ctx context.Context, searchID string) ([]domain.SavedSearch, error) {
	return update(ctx, s, &s.savedMu, savedSearchesKey, defaultSavedSearches,
		func(current []domain.SavedSearch) []domain.SavedSearch {
			return slices.DeleteFunc(current, func(ss domain.SavedSearch) bool {
				return ss.ID == searchID
			})
		})
}

// ToggleSearchAlert flips AlertsEnabled on the matching saved search only.
func (s *Store) ToggleSearchAlert(ctx context.Context, searchID string) ([]domain.SavedSearch, error) {
	return update(ctx, s, &s.savedMu, savedSearchesKey, defaultSavedSearches,
		func(current []domain.SavedSearch) []domain.SavedSearch {
			for i := range current {
				if current[i].ID == searchID {
					current[i].AlertsEnabled = !current[i].AlertsEnabled
				}
			}
			return current
		})
}
