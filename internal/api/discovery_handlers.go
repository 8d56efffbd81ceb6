package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/signaldeck/signaldeck-server/internal/domain"
	"github.com/signaldeck/signaldeck-server/internal/filter"
	"github.com/signaldeck/signaldeck-server/internal/service"
)

func (s *Server) registerDiscoveryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "discover",
		Method:      http.MethodPost,
		Path:        "/api/v1/discover",
		Summary:     "Discover signals",
		Description: "Runs a grounded web search for the query. Provider failures are reported in the " +
			"outcome field with an empty post list, and the feed is emptied to the no-results state.",
		Tags: []string{"Discovery"},
	}, s.handleDiscover)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFeed",
		Method:      http.MethodGet,
		Path:        "/api/v1/feed",
		Summary:     "Get feed",
		Description: "Returns the current feed filtered by text, category and engagement, with per-category counts. " +
			"The query is logged to history once it stops changing.",
		Tags: []string{"Discovery"},
	}, s.handleGetFeed)
}

// === DTOs ===

// DiscoverRequest is the request body for a discovery run.
type DiscoverRequest struct {
	Query  string `json:"query" doc:"Topic to search for"`
	Intent string `json:"intent,omitempty" doc:"Leads, Long-form or Both; defaults to the saved preference"`
}

// DiscoverInput wraps the discovery request for Huma.
type DiscoverInput struct {
	Body DiscoverRequest
}

// DiscoverOutput contains the discovery result.
type DiscoverOutput struct {
	Body service.AnalyzeResult
}

// FeedInput filters the feed.
type FeedInput struct {
	Query         string `query:"q" doc:"Case-insensitive text matched against content and author name"`
	Category      string `query:"category" doc:"All, Leads, Threads, Links or Video (default follows the saved intent)"`
	MinEngagement int    `query:"minEngagement" doc:"Minimum likes; negative values count as 0"`
}

// FeedOutput contains the filtered feed.
type FeedOutput struct {
	Body service.FeedView
}

// === Handlers ===

func (s *Server) handleDiscover(ctx context.Context, input *DiscoverInput) (*DiscoverOutput, error) {
	result, err := s.services.Discovery.Analyze(ctx, input.Body.Query, domain.Intent(input.Body.Intent))
	if err != nil {
		return nil, err
	}
	return &DiscoverOutput{Body: *result}, nil
}

func (s *Server) handleGetFeed(ctx context.Context, input *FeedInput) (*FeedOutput, error) {
	category, err := parseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Discovery.Feed(ctx, filter.Criteria{
		Query:         input.Query,
		Category:      category,
		MinEngagement: input.MinEngagement,
	})
	if err != nil {
		return nil, err
	}
	return &FeedOutput{Body: *view}, nil
}
