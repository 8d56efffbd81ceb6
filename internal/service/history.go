package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/signaldeck/signaldeck-server/internal/debounce"
	"github.com/signaldeck/signaldeck-server/internal/domain"
	domainerrors "github.com/signaldeck/signaldeck-server/internal/errors"
	"github.com/signaldeck/signaldeck-server/internal/history"
	"github.com/signaldeck/signaldeck-server/internal/logger"
	"github.com/signaldeck/signaldeck-server/internal/store"
)

// debouncedLogTimeout bounds the store write made when a debounced query is committed.
const debouncedLogTimeout = 5 * time.Second

// HistoryService records executed searches and summarises them for the dashboard.
type HistoryService struct {
	store     *store.Store
	prefs     *PreferencesService
	debouncer *debounce.Debouncer
	logger    *slog.Logger
	now       func() time.Time
	loc       *time.Location
}

// DashboardStats is the dashboard overview for one window.
type DashboardStats struct {
	history.Stats
	SavedSearches int    `json:"savedSearches"`
	Welcome       string `json:"welcome"`
}

// NewHistoryService creates a history service that debounces query changes by interval.
func NewHistoryService(store *store.Store, prefs *PreferencesService, interval time.Duration, log *slog.Logger) *HistoryService {
	return &HistoryService{
		store:     store,
		prefs:     prefs,
		debouncer: debounce.New(interval),
		logger:    logger.OrDiscard(log),
		now:       time.Now,
		loc:       time.Local,
	}
}

// QueryChanged schedules query to be logged once it has been stable for the debounce interval.
// Every call supersedes the previous one; a blank query only cancels the pending log.
func (s *HistoryService) QueryChanged(query string) {
	if strings.TrimSpace(query) == "" {
		s.debouncer.Stop()
		return
	}

	s.debouncer.Trigger(func() {
		ctx, cancel := context.WithTimeout(context.Background(), debouncedLogTimeout)
		defer cancel()

		if _, err := s.store.LogSearch(ctx, query); err != nil {
			s.logger.Warn("failed to log search", "query", query, "error", err)
			return
		}
		s.logger.Debug("search logged", "query", query)
	})
}

// Flush commits the pending query immediately. Used on shutdown.
func (s *HistoryService) Flush() bool {
	return s.debouncer.Flush()
}

// Stop discards the pending query.
func (s *HistoryService) Stop() {
	s.debouncer.Stop()
}

// Log records query immediately.
func (s *HistoryService) Log(ctx context.Context, query string) (*domain.SearchLog, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domainerrors.ValidationWithDetails("validation failed", map[string]string{
			"query": "must not be blank",
		})
	}
	return s.store.LogSearch(ctx, query)
}

// List returns the search log, newest first.
func (s *HistoryService) List(ctx context.Context) ([]domain.SearchLog, error) {
	return s.store.GetSearchHistory(ctx)
}

// Stats summarises the log over window. r is used only for the custom window.
func (s *HistoryService) Stats(ctx context.Context, window history.Window, r history.Range) (*DashboardStats, error) {
	if window == history.WindowCustom && !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		return nil, domainerrors.Validation("custom range end is before start")
	}

	logs, err := s.store.GetSearchHistory(ctx)
	if err != nil {
		return nil, err
	}
	saved, err := s.store.GetSavedSearches(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Stats:         history.Compute(logs, window, r, s.now(), s.loc),
		SavedSearches: len(saved),
		Welcome:       Welcome(s.prefs.Intent(ctx)),
	}, nil
}
