package store

import (
	"context"
	"slices"

	"github.com/signaldeck/signaldeck-server/internal/domain"
	"github.com/signaldeck/signaldeck-server/internal/id"
)

// GetSearchHistory returns the persisted search log, newest first.
// Before the first LogSearch it returns synthetic demo entries spread over the
// trailing 30 days; the same entries are returned for the life of the Store.
func (s *Store) GetSearchHistory(ctx context.Context) ([]domain.SearchLog, error) {
	return read(ctx, s, historyKey, s.seedHistory)
}

// LogSearch prepends a history entry for query stamped with the current time.
// Consecutive identical queries are all recorded.
func (s *Store) LogSearch(ctx context.Context, query string) (*domain.SearchLog, error) {
	now := s.now()

	logID, err := id.Timed("log", now)
	if err != nil {
		return nil, err
	}

	entry := domain.SearchLog{
		ID:        logID,
		Query:     query,
		Timestamp: now.UnixMilli(),
	}

	_, err = update(ctx, s, &s.historyMu, historyKey, s.seedHistory,
		func(current []domain.SearchLog) []domain.SearchLog {
			return append([]domain.SearchLog{entry}, current...)
		})
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// seedHistory returns a copy of this store's synthetic history.
func (s *Store) seedHistory() []domain.SearchLog {
	s.historySeedOnce.Do(func() {
		s.historySeed = generateSeedHistory(s.now())
	})
	return slices.Clone(s.historySeed)
}
