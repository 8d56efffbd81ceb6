package store

import (
	"context"

	"github.com/signaldeck/signaldeck-server/internal/domain"
)

// GetBookmarkedPostIDs returns the bookmark set, empty when nothing is bookmarked.
func (s *Store) GetBookmarkedPostIDs(ctx context.Context) (domain.BookmarkSet, error) {
	ids, err := read(ctx, s, bookmarksKey, emptyIDs)
	if err != nil {
		return nil, err
	}
	return domain.NewBookmarkSet(ids...), nil
}

// TogglePostBookmark removes postID from the bookmark set if present, otherwise adds it.
// Returns the updated set.
func (s *Store) TogglePostBookmark(ctx context.Context, postID string) (domain.BookmarkSet, error) {
	ids, err := update(ctx, s, &s.bookmarksMu, bookmarksKey, emptyIDs,
		func(current []string) []string {
			set := domain.NewBookmarkSet(current...)
			set.Toggle(postID)
			return set.IDs()
		})
	if err != nil {
		return nil, err
	}
	return domain.NewBookmarkSet(ids...), nil
}

func emptyIDs() []string {
	return []string{}
}
