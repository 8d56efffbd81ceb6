// Package filter derives the visible feed and per-category counts from a list of posts.
package filter

import (
	"strings"

	"github.com/signaldeck/signaldeck-server/internal/domain"
)

// Criteria selects posts. The zero value matches everything.
type Criteria struct {
	Query         string
	Category      domain.ContentType
	MinEngagement int
}

// Counts holds the number of posts per filter tab.
type Counts map[domain.ContentType]int

// View is the result of applying Criteria to a post list.
type View struct {
	Posts  []domain.Post `json:"posts"`
	Counts Counts        `json:"counts"`
}

// Apply returns the posts matching all three predicates, in input order.
// Counts ignore the category predicate so every tab shows how many posts it would hold.
func Apply(posts []domain.Post, c Criteria) View {
	query := strings.ToLower(c.Query)
	minLikes := max(c.MinEngagement, 0)

	view := View{
		Posts:  make([]domain.Post, 0, len(posts)),
		Counts: NewCounts(),
	}

	for _, p := range posts {
		if !matchesText(p, query) || p.Likes < minLikes {
			continue
		}

		view.Counts[domain.CategoryAll]++
		if p.Type.IsPostCategory() {
			view.Counts[p.Type]++
		}

		if matchesCategory(p, c.Category) {
			view.Posts = append(view.Posts, p)
		}
	}

	return view
}

// CountByEngagement counts posts per category using only the engagement threshold.
func CountByEngagement(posts []domain.Post, minEngagement int) Counts {
	return Apply(posts, Criteria{MinEngagement: minEngagement}).Counts
}

// NewCounts returns a Counts with every filter tab set to zero.
func NewCounts() Counts {
	counts := make(Counts, len(domain.FilterCategories))
	for _, cat := range domain.FilterCategories {
		counts[cat] = 0
	}
	return counts
}

func matchesText(p domain.Post, lowerQuery string) bool {
	if lowerQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Content), lowerQuery) ||
		strings.Contains(strings.ToLower(p.AuthorName), lowerQuery)
}

func matchesCategory(p domain.Post, category domain.ContentType) bool {
	return category == "" || category == domain.CategoryAll || p.Type == category
}
