package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/signaldeck/signaldeck-server/internal/search"
	"github.com/signaldeck/signaldeck-server/internal/service"
)

func (s *Server) registerArchiveRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchArchive",
		Method:      http.MethodGet,
		Path:        "/api/v1/archive/search",
		Summary:     "Search archive",
		Description: "Full-text search over every post ever discovered",
		Tags:        []string{"Archive"},
	}, s.handleSearchArchive)
}

// === DTOs ===

// SearchArchiveInput contains archive search parameters.
type SearchArchiveInput struct {
	Query    string   `query:"q" doc:"Search query"`
	Types    []string `query:"types" doc:"Post types to include (Leads, Threads, Links, Video)"`
	MinLikes int      `query:"minLikes" minimum:"0" doc:"Minimum likes"`
	Sort     string   `query:"sort" enum:"relevance,likes,replies" default:"relevance" doc:"Sort order"`
	Limit    int      `query:"limit" minimum:"0" maximum:"100" doc:"Page size (default 20)"`
	Offset   int      `query:"offset" minimum:"0" doc:"Offset for pagination"`
}

// SearchArchiveOutput contains one page of archive results.
type SearchArchiveOutput struct {
	Body service.ArchiveResult
}

// === Handlers ===

func (s *Server) handleSearchArchive(ctx context.Context, input *SearchArchiveInput) (*SearchArchiveOutput, error) {
	types, err := parsePostTypes(input.Types)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Archive.Search(ctx, search.SearchParams{
		Query:    input.Query,
		Types:    types,
		MinLikes: input.MinLikes,
		Limit:    input.Limit,
		Offset:   input.Offset,
		SortBy:   input.Sort,
	})
	if err != nil {
		return nil, err
	}
	return &SearchArchiveOutput{Body: *result}, nil
}
