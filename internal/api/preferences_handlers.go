package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/signaldeck/signaldeck-server/internal/domain"
	"github.com/signaldeck/signaldeck-server/internal/service"
)

func (s *Server) registerPreferenceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getPreferences",
		Method:      http.MethodGet,
		Path:        "/api/v1/preferences",
		Summary:     "Get preferences",
		Description: "Returns onboarding answers and the copy derived from them",
		Tags:        []string{"Preferences"},
	}, s.handleGetPreferences)

	huma.Register(s.api, huma.Operation{
		OperationID: "updatePreferences",
		Method:      http.MethodPut,
		Path:        "/api/v1/preferences",
		Summary:     "Update preferences",
		Description: "Replaces the onboarding answers",
		Tags:        []string{"Preferences"},
	}, s.handleUpdatePreferences)
}

// === DTOs ===

// PreferencesResponse contains the preferences with derived presentation values.
type PreferencesResponse struct {
	domain.UserPreferences
	DefaultCategory domain.ContentType `json:"defaultCategory" doc:"Feed tab selected for the intent"`
	Insight         string             `json:"insight" doc:"Feed insight line for the intent"`
	Welcome         string             `json:"welcome" doc:"Dashboard welcome line for the intent"`
}

// PreferencesOutput wraps the preferences for Huma.
type PreferencesOutput struct {
	Body PreferencesResponse
}

// UpdatePreferencesRequest is the request body for updating preferences.
type UpdatePreferencesRequest struct {
	IsOnboarded  bool   `json:"isOnboarded" doc:"Whether onboarding is complete"`
	SearchIntent string `json:"searchIntent,omitempty" doc:"Leads, Long-form or Both"`
}

// UpdatePreferencesInput wraps the update request for Huma.
type UpdatePreferencesInput struct {
	Body UpdatePreferencesRequest
}

// === Handlers ===

func (s *Server) handleGetPreferences(ctx context.Context, _ *struct{}) (*PreferencesOutput, error) {
	prefs, err := s.services.Preferences.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &PreferencesOutput{Body: preferencesResponse(prefs)}, nil
}

func (s *Server) handleUpdatePreferences(ctx context.Context, input *UpdatePreferencesInput) (*PreferencesOutput, error) {
	prefs, err := s.services.Preferences.Save(ctx, domain.UserPreferences{
		IsOnboarded:  input.Body.IsOnboarded,
		SearchIntent: domain.Intent(input.Body.SearchIntent),
	})
	if err != nil {
		return nil, err
	}
	return &PreferencesOutput{Body: preferencesResponse(prefs)}, nil
}

func preferencesResponse(prefs domain.UserPreferences) PreferencesResponse {
	return PreferencesResponse{
		UserPreferences: prefs,
		DefaultCategory: prefs.SearchIntent.DefaultCategory(),
		Insight:         service.Insight(prefs.SearchIntent),
		Welcome:         service.Welcome(prefs.SearchIntent),
	}
}
