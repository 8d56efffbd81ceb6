package domain

import "slices"

// BookmarkSet is the set of saved post ids.
// It is the single source of truth for whether a post is saved.
type BookmarkSet map[string]struct{}

// NewBookmarkSet builds a set from ids.
func NewBookmarkSet(ids ...string) BookmarkSet {
	set := make(BookmarkSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether id is bookmarked.
func (b BookmarkSet) Has(id string) bool {
	_, ok := b[id]
	return ok
}

// Toggle adds id if absent, otherwise removes it. Reports whether id is now present.
func (b BookmarkSet) Toggle(id string) bool {
	if b.Has(id) {
		delete(b, id)
		return false
	}
	b[id] = struct{}{}
	return true
}

// IDs returns the members in sorted order.
func (b BookmarkSet) IDs() []string {
	ids := make([]string, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
