package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/signaldeck/signaldeck-server/internal/domain"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// SearchParams configures an archive search.
type SearchParams struct {
	Query    string               // Free text matched against content and author
	Types    []domain.ContentType // Categories to include (empty = all)
	MinLikes int                  // Engagement threshold, 0 = none

	Limit  int
	Offset int

	// SortBy is "relevance" (default), "likes" or "replies". Both numeric sorts are descending.
	SortBy string
}

// SearchResult is one page of archive hits.
type SearchResult struct {
	Query  string       `json:"query"`
	Total  uint64       `json:"total"`
	TookMs int64        `json:"tookMs"`
	Hits   []SearchHit  `json:"hits"`
	Types  []FacetCount `json:"types,omitempty"`
}

// SearchHit is a matched post id with its stored display fields.
type SearchHit struct {
	ID           string             `json:"id"`
	Score        float64            `json:"score"`
	Type         domain.ContentType `json:"type"`
	AuthorName   string             `json:"authorName"`
	AuthorHandle string             `json:"authorHandle"`
	Likes        int                `json:"likes"`
	Highlights   map[string]string  `json:"highlights,omitempty"`
}

// FacetCount is a facet value and its count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Search executes a query against the archive.
func (s *SearchIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	limit = min(limit, maxLimit)

	req := bleve.NewSearchRequestOptions(buildSearchQuery(params), limit, max(params.Offset, 0), false)
	addSorting(req, params.SortBy)
	req.AddFacet("type", bleve.NewFacetRequest("type", len(domain.PostCategories)))

	if params.Query != "" {
		req.Highlight = bleve.NewHighlight()
		req.Highlight.AddField("content")
		req.Highlight.AddField("author_name")
	}
	req.Fields = []string{"type", "author_name", "author_handle", "likes"}

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &SearchResult{
		Query:  params.Query,
		Total:  res.Total,
		TookMs: res.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(res.Hits)),
	}

	for _, hit := range res.Hits {
		h := SearchHit{ID: hit.ID, Score: hit.Score}
		if t, ok := hit.Fields["type"].(string); ok {
			h.Type = domain.ContentType(t)
		}
		if n, ok := hit.Fields["author_name"].(string); ok {
			h.AuthorName = n
		}
		if n, ok := hit.Fields["author_handle"].(string); ok {
			h.AuthorHandle = n
		}
		if l, ok := hit.Fields["likes"].(float64); ok {
			h.Likes = int(l)
		}
		if len(hit.Fragments) > 0 {
			h.Highlights = make(map[string]string, len(hit.Fragments))
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					h.Highlights[field] = fragments[0]
				}
			}
		}
		result.Hits = append(result.Hits, h)
	}

	if facet, ok := res.Facets["type"]; ok && facet.Terms != nil {
		for _, term := range facet.Terms.Terms() {
			result.Types = append(result.Types, FacetCount{Value: term.Term, Count: term.Count})
		}
	}

	return result, nil
}

// buildSearchQuery combines the text, type and engagement predicates with AND.
func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	if q := strings.TrimSpace(params.Query); q != "" {
		contentMatch := bleve.NewMatchQuery(q)
		contentMatch.SetField("content")
		contentMatch.SetBoost(2.0)

		authorMatch := bleve.NewMatchQuery(q)
		authorMatch.SetField("author_name")
		authorMatch.SetBoost(1.5)

		textQueries := []query.Query{contentMatch, authorMatch}

		// Typo tolerance on single words only; fuzzy on phrases matches too broadly.
		if !strings.ContainsAny(q, " \t") {
			fuzzy := bleve.NewFuzzyQuery(strings.ToLower(q))
			fuzzy.SetFuzziness(1)
			fuzzy.SetField("content")
			fuzzy.SetBoost(0.5)
			textQueries = append(textQueries, fuzzy)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	if len(params.Types) > 0 {
		typeQueries := make([]query.Query, len(params.Types))
		for i, t := range params.Types {
			tq := bleve.NewTermQuery(string(t))
			tq.SetField("type")
			typeQueries[i] = tq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(typeQueries...))
	}

	if params.MinLikes > 0 {
		minLikes := float64(params.MinLikes)
		rangeQuery := bleve.NewNumericRangeQuery(&minLikes, nil)
		rangeQuery.SetField("likes")
		queries = append(queries, rangeQuery)
	}

	switch len(queries) {
	case 0:
		return bleve.NewMatchAllQuery()
	case 1:
		return queries[0]
	default:
		return bleve.NewConjunctionQuery(queries...)
	}
}

func addSorting(req *bleve.SearchRequest, sortBy string) {
	switch sortBy {
	case "likes":
		req.SortBy([]string{"-likes", "-_score"})
	case "replies":
		req.SortBy([]string{"-replies", "-_score"})
	default:
		req.SortBy([]string{"-_score"})
	}
}
