package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/signaldeck/signaldeck-server/internal/domain"
	domainerrors "github.com/signaldeck/signaldeck-server/internal/errors"
	"github.com/signaldeck/signaldeck-server/internal/history"
	"github.com/signaldeck/signaldeck-server/internal/service"
)

func (s *Server) registerHistoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listSearchHistory",
		Method:      http.MethodGet,
		Path:        "/api/v1/history",
		Summary:     "List search history",
		Description: "Returns every logged search, newest first",
		Tags:        []string{"History"},
	}, s.handleListHistory)

	huma.Register(s.api, huma.Operation{
		OperationID:   "logSearch",
		Method:        http.MethodPost,
		Path:          "/api/v1/history",
		Summary:       "Log search",
		Description:   "Appends a query to the history immediately, bypassing the debounce",
		Tags:          []string{"History"},
		DefaultStatus: http.StatusCreated,
	}, s.handleLogSearch)

	huma.Register(s.api, huma.Operation{
		OperationID: "getHistoryStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/history/stats",
		Summary:     "Dashboard stats",
		Description: "Returns the searches in a time window with chart buckets",
		Tags:        []string{"History"},
	}, s.handleHistoryStats)
}

// === DTOs ===

// HistoryListOutput contains the search log.
type HistoryListOutput struct {
	Body []domain.SearchLog
}

// LogSearchRequest is the request body for logging a search.
type LogSearchRequest struct {
	Query string `json:"query" doc:"Executed query"`
}

// LogSearchInput wraps the log request for Huma.
type LogSearchInput struct {
	Body LogSearchRequest
}

// LogSearchOutput contains the new log entry.
type LogSearchOutput struct {
	Body domain.SearchLog
}

// HistoryStatsInput selects the stats window.
type HistoryStatsInput struct {
	Window string `query:"window" enum:"24h,48h,7d,30d,custom" doc:"Time window (default 7d)"`
	Start  string `query:"start" doc:"Custom window start, RFC 3339 or YYYY-MM-DD"`
	End    string `query:"end" doc:"Custom window end, RFC 3339 or YYYY-MM-DD (whole day included)"`
}

// HistoryStatsOutput contains the dashboard stats.
type HistoryStatsOutput struct {
	Body service.DashboardStats
}

// === Handlers ===

func (s *Server) handleListHistory(ctx context.Context, _ *struct{}) (*HistoryListOutput, error) {
	logs, err := s.services.History.List(ctx)
	if err != nil {
		return nil, err
	}
	return &HistoryListOutput{Body: logs}, nil
}

func (s *Server) handleLogSearch(ctx context.Context, input *LogSearchInput) (*LogSearchOutput, error) {
	entry, err := s.services.History.Log(ctx, input.Body.Query)
	if err != nil {
		return nil, err
	}
	return &LogSearchOutput{Body: *entry}, nil
}

func (s *Server) handleHistoryStats(ctx context.Context, input *HistoryStatsInput) (*HistoryStatsOutput, error) {
	window, err := history.ParseWindow(input.Window)
	if err != nil {
		return nil, err
	}

	var r history.Range
	if window == history.WindowCustom {
		if r.Start, err = parseRangeTime(input.Start, false); err != nil {
			return nil, err
		}
		if r.End, err = parseRangeTime(input.End, true); err != nil {
			return nil, err
		}
	}

	stats, err := s.services.History.Stats(ctx, window, r)
	if err != nil {
		return nil, err
	}
	return &HistoryStatsOutput{Body: *stats}, nil
}

// parseRangeTime accepts RFC 3339 or a local calendar date. A date used as
// the end of a range covers the whole day. Empty yields the zero time.
func parseRangeTime(value string, endOfDay bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, value, time.Local)
	if err != nil {
		return time.Time{}, domainerrors.Validationf("invalid date %q", value)
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Millisecond)
	}
	return t, nil
}
