package store

import (
	"context"

	"github.com/signaldeck/signaldeck-server/internal/domain"
)

// GetPreferences returns the onboarding preferences, zero-valued before onboarding.
func (s *Store) GetPreferences(ctx context.Context) (domain.UserPreferences, error) {
	return read(ctx, s, preferencesKey, func() domain.UserPreferences {
		return domain.UserPreferences{}
	})
}

// SavePreferences replaces the stored preferences.
func (s *Store) SavePreferences(ctx context.Context, prefs domain.UserPreferences) (domain.UserPreferences, error) {
	return update(ctx, s, &s.prefsMu, preferencesKey,
		func() domain.UserPreferences { return domain.UserPreferences{} },
		func(domain.UserPreferences) domain.UserPreferences { return prefs })
}
