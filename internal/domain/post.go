package domain

// ContentType is the category of a signal.
// CategoryAll is a filter-only pseudo-category and is never stored on a post.
type ContentType string

// Content categories.
const (
	CategoryAll     ContentType = "All"
	CategoryLeads   ContentType = "Leads"
	CategoryThreads ContentType = "Threads"
	CategoryLinks   ContentType = "Links"
	CategoryVideo   ContentType = "Video"
)

// PostCategories lists the categories a post can carry, in display order.
var PostCategories = []ContentType{CategoryLeads, CategoryThreads, CategoryLinks, CategoryVideo}

// FilterCategories lists every filter tab, All first.
var FilterCategories = []ContentType{CategoryAll, CategoryLeads, CategoryThreads, CategoryLinks, CategoryVideo}

// IsPostCategory reports whether c may be stored on a post.
func (c ContentType) IsPostCategory() bool {
	switch c {
	case CategoryLeads, CategoryThreads, CategoryLinks, CategoryVideo:
		return true
	default:
		return false
	}
}

// ParseFilterCategory maps a filter value to a category. Empty means All.
func ParseFilterCategory(s string) (ContentType, bool) {
	if s == "" {
		return CategoryAll, true
	}
	c := ContentType(s)
	if c == CategoryAll || c.IsPostCategory() {
		return c, true
	}
	return "", false
}

// Post is a discovered or bookmarked signal.
//
// IsSaved is derived from the bookmark set at read time. It is cleared before a
// post is archived and must be recomputed with WithSaved after every load.
type Post struct {
	ID           string      `json:"id"`
	AuthorName   string      `json:"authorName"`
	AuthorHandle string      `json:"authorHandle"`
	AvatarURL    string      `json:"avatarUrl"`
	Content      string      `json:"content"`
	Likes        int         `json:"likes"`
	Replies      int         `json:"replies"`
	Timestamp    string      `json:"timestamp"` // display only, e.g. "2h ago"
	Type         ContentType `json:"type"`
	IsSaved      bool        `json:"isSaved"`
	SourceURL    string      `json:"sourceUrl,omitempty"`
}

// WithSaved returns copies of posts with IsSaved recomputed from the bookmark set.
func WithSaved(posts []Post, bookmarks BookmarkSet) []Post {
	out := make([]Post, len(posts))
	for i, p := range posts {
		p.IsSaved = bookmarks.Has(p.ID)
		out[i] = p
	}
	return out
}
