package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/signaldeck/signaldeck-server/internal/filter"
	"github.com/signaldeck/signaldeck-server/internal/service"
)

func (s *Server) registerBookmarkRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBookmarks",
		Method:      http.MethodGet,
		Path:        "/api/v1/bookmarks",
		Summary:     "List bookmarked IDs",
		Description: "Returns the IDs of every bookmarked post",
		Tags:        []string{"Bookmarks"},
	}, s.handleListBookmarks)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleBookmark",
		Method:      http.MethodPost,
		Path:        "/api/v1/bookmarks/{id}",
		Summary:     "Toggle bookmark",
		Description: "Bookmarks the post if it is not bookmarked, otherwise removes the bookmark",
		Tags:        []string{"Bookmarks"},
	}, s.handleToggleBookmark)

	huma.Register(s.api, huma.Operation{
		OperationID: "listBookmarkedPosts",
		Method:      http.MethodGet,
		Path:        "/api/v1/bookmarks/posts",
		Summary:     "Bookmarked posts",
		Description: "Returns bookmarked posts filtered by category and engagement, with per-category counts",
		Tags:        []string{"Bookmarks"},
	}, s.handleBookmarkedPosts)
}

// === DTOs ===

// BookmarkIDsResponse lists bookmarked post IDs.
type BookmarkIDsResponse struct {
	IDs []string `json:"ids" doc:"Bookmarked post IDs, sorted"`
}

// BookmarkIDsOutput wraps the bookmark IDs for Huma.
type BookmarkIDsOutput struct {
	Body BookmarkIDsResponse
}

// ToggleBookmarkInput identifies the post to toggle.
type ToggleBookmarkInput struct {
	ID string `path:"id" doc:"Post ID"`
}

// ToggleBookmarkOutput contains the toggle result.
type ToggleBookmarkOutput struct {
	Body service.BookmarkToggle
}

// BookmarkedPostsInput filters the bookmarks view.
type BookmarkedPostsInput struct {
	Category      string `query:"category" doc:"All, Leads, Threads, Links or Video (default All)"`
	MinEngagement int    `query:"minEngagement" doc:"Minimum likes; negative values count as 0"`
}

// BookmarkedPostsOutput contains the filtered bookmarks.
type BookmarkedPostsOutput struct {
	Body filter.View
}

// === Handlers ===

func (s *Server) handleListBookmarks(ctx context.Context, _ *struct{}) (*BookmarkIDsOutput, error) {
	set, err := s.store.GetBookmarkedPostIDs(ctx)
	if err != nil {
		return nil, err
	}
	return &BookmarkIDsOutput{Body: BookmarkIDsResponse{IDs: set.IDs()}}, nil
}

func (s *Server) handleToggleBookmark(ctx context.Context, input *ToggleBookmarkInput) (*ToggleBookmarkOutput, error) {
	result, err := s.services.Discovery.ToggleBookmark(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ToggleBookmarkOutput{Body: *result}, nil
}

func (s *Server) handleBookmarkedPosts(ctx context.Context, input *BookmarkedPostsInput) (*BookmarkedPostsOutput, error) {
	category, err := parseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Discovery.Bookmarks(ctx, filter.Criteria{
		Category:      category,
		MinEngagement: input.MinEngagement,
	})
	if err != nil {
		return nil, err
	}
	return &BookmarkedPostsOutput{Body: *view}, nil
}
