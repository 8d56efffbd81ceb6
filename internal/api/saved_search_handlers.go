package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/signaldeck/signaldeck-server/internal/domain"
)

func (s *Server) registerSavedSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listSavedSearches",
		Method:      http.MethodGet,
		Path:        "/api/v1/saved-searches",
		Summary:     "List saved searches",
		Description: "Returns saved searches, newest first",
		Tags:        []string{"Saved Searches"},
	}, s.handleListSavedSearches)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createSavedSearch",
		Method:        http.MethodPost,
		Path:          "/api/v1/saved-searches",
		Summary:       "Save search",
		Description:   "Saves a query for tracking. Alerts start disabled.",
		Tags:          []string{"Saved Searches"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateSavedSearch)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteSavedSearch",
		Method:      http.MethodDelete,
		Path:        "/api/v1/saved-searches/{id}",
		Summary:     "Remove saved search",
		Description: "Removes a saved search and returns the remaining list. Unknown IDs are ignored.",
		Tags:        []string{"Saved Searches"},
	}, s.handleDeleteSavedSearch)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleSavedSearchAlert",
		Method:      http.MethodPost,
		Path:        "/api/v1/saved-searches/{id}/alert",
		Summary:     "Toggle alerts",
		Description: "Flips alerts for a saved search and returns the updated list",
		Tags:        []string{"Saved Searches"},
	}, s.handleToggleSavedSearchAlert)
}

// === DTOs ===

// SavedSearchListOutput contains the saved search list.
type SavedSearchListOutput struct {
	Body []domain.SavedSearch
}

// CreateSavedSearchRequest is the request body for saving a search.
type CreateSavedSearchRequest struct {
	Query string `json:"query" doc:"Query to track"`
}

// CreateSavedSearchInput wraps the create request for Huma.
type CreateSavedSearchInput struct {
	Body CreateSavedSearchRequest
}

// SavedSearchOutput contains a single saved search.
type SavedSearchOutput struct {
	Body domain.SavedSearch
}

// SavedSearchIDInput identifies a saved search.
type SavedSearchIDInput struct {
	ID string `path:"id" doc:"Saved search ID"`
}

// === Handlers ===

func (s *Server) handleListSavedSearches(ctx context.Context, _ *struct{}) (*SavedSearchListOutput, error) {
	list, err := s.services.SavedSearch.List(ctx)
	if err != nil {
		return nil, err
	}
	return &SavedSearchListOutput{Body: list}, nil
}

func (s *Server) handleCreateSavedSearch(ctx context.Context, input *CreateSavedSearchInput) (*SavedSearchOutput, error) {
	saved, err := s.services.SavedSearch.Save(ctx, input.Body.Query)
	if err != nil {
		return nil, err
	}
	return &SavedSearchOutput{Body: *saved}, nil
}

func (s *Server) handleDeleteSavedSearch(ctx context.Context, input *SavedSearchIDInput) (*SavedSearchListOutput, error) {
	list, err := s.services.SavedSearch.Remove(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &SavedSearchListOutput{Body: list}, nil
}

func (s *Server) handleToggleSavedSearchAlert(ctx context.Context, input *SavedSearchIDInput) (*SavedSearchListOutput, error) {
	list, err := s.services.SavedSearch.ToggleAlert(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &SavedSearchListOutput{Body: list}, nil
}
