package service

import (
	"context"
	"log/slog"

	"github.com/signaldeck/signaldeck-server/internal/domain"
	"github.com/signaldeck/signaldeck-server/internal/logger"
	"github.com/signaldeck/signaldeck-server/internal/store"
	"github.com/signaldeck/signaldeck-server/internal/validation"
)

// PreferencesService manages onboarding preferences.
type PreferencesService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewPreferencesService creates a new preferences service.
func NewPreferencesService(store *store.Store, validator *validation.Validator, log *slog.Logger) *PreferencesService {
	return &PreferencesService{
		store:     store,
		validator: validator,
		logger:    logger.OrDiscard(log),
	}
}

// Get returns the stored preferences.
func (s *PreferencesService) Get(ctx context.Context) (domain.UserPreferences, error) {
	return s.store.GetPreferences(ctx)
}

// Save validates and replaces the stored preferences.
func (s *PreferencesService) Save(ctx context.Context, prefs domain.UserPreferences) (domain.UserPreferences, error) {
	if err := s.validator.Validate(prefs); err != nil {
		return domain.UserPreferences{}, err
	}

	saved, err := s.store.SavePreferences(ctx, prefs)
	if err != nil {
		return domain.UserPreferences{}, err
	}

	s.logger.Info("preferences saved", "onboarded", saved.IsOnboarded, "intent", saved.SearchIntent)
	return saved, nil
}

// Intent returns the stored search intent. A read failure is logged and treated as no intent.
func (s *PreferencesService) Intent(ctx context.Context) domain.Intent {
	prefs, err := s.store.GetPreferences(ctx)
	if err != nil {
		s.logger.Warn("failed to read preferences, using no intent", "error", err)
		return domain.IntentNone
	}
	return prefs.SearchIntent
}

// DefaultCategory returns the feed tab matching the stored intent.
func (s *PreferencesService) DefaultCategory(ctx context.Context) domain.ContentType {
	return s.Intent(ctx).DefaultCategory()
}

// Insight returns the dashboard hint shown above the discovery feed.
func Insight(intent domain.Intent) string {
	switch intent {
	case domain.IntentLeads:
		return "Leads matching 'SaaS outreach' are trending right now. We found 3 high-probability signals for you."
	case domain.IntentLongForm:
		return "Thread activity is up 12% in the tech sector. Focus on expert breakdowns for best reach."
	default:
		return "Based on your filters, we see high intent in the B2B SaaS space today across multiple channels."
	}
}

// Welcome returns the dashboard greeting for intent.
func Welcome(intent domain.Intent) string {
	switch intent {
	case domain.IntentLeads:
		return "Welcome back. We're prioritizing high-intent leads for you today."
	case domain.IntentLongForm:
		return "Welcome back. Expert content and industry threads are ready for discovery."
	default:
		return "Welcome back. Here's what happened with your signals across the platform."
	}
}
