package api

import (
	"github.com/signaldeck/signaldeck-server/internal/domain"
	domainerrors "github.com/signaldeck/signaldeck-server/internal/errors"
)

// parseCategory validates a category filter. Empty is returned unchanged so
// callers can apply their own default.
func parseCategory(value string) (domain.ContentType, error) {
	if value == "" {
		return "", nil
	}
	category, ok := domain.ParseFilterCategory(value)
	if !ok {
		return "", domainerrors.ValidationWithDetails("validation failed", map[string]string{
			"category": "must be one of All, Leads, Threads, Links, Video",
		})
	}
	return category, nil
}

// parsePostTypes validates archive type filters. Unlike parseCategory, All is not a post type.
func parsePostTypes(values []string) ([]domain.ContentType, error) {
	types := make([]domain.ContentType, 0, len(values))
	for _, v := range values {
		t := domain.ContentType(v)
		if !t.IsPostCategory() {
			return nil, domainerrors.ValidationWithDetails("validation failed", map[string]string{
				"types": "must be Leads, Threads, Links or Video",
			})
		}
		types = append(types, t)
	}
	return types, nil
}
