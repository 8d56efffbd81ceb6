package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/signaldeck/signaldeck-server/internal/discovery"
	"github.com/signaldeck/signaldeck-server/internal/domain"
	domainerrors "github.com/signaldeck/signaldeck-server/internal/errors"
	"github.com/signaldeck/signaldeck-server/internal/filter"
	"github.com/signaldeck/signaldeck-server/internal/logger"
	"github.com/signaldeck/signaldeck-server/internal/store"
)

// Discoverer finds posts for a query.
type Discoverer interface {
	Discover(ctx context.Context, query string, intent domain.Intent) discovery.Result
}

// DiscoveryService owns the current discovery feed.
//
// Analyze calls are stamped with a generation; only the newest generation may
// replace the feed, so a slow response never overwrites a newer one.
type DiscoveryService struct {
	store      *store.Store
	discoverer Discoverer
	prefs      *PreferencesService
	history    *HistoryService
	logger     *slog.Logger

	generation atomic.Uint64

	mu   sync.RWMutex
	feed []domain.Post
}

// AnalyzeResult reports one Analyze call.
type AnalyzeResult struct {
	Generation uint64            `json:"generation"`
	Query      string            `json:"query"`
	Intent     domain.Intent     `json:"intent,omitempty"`
	Outcome    discovery.Outcome `json:"outcome"`
	Posts      []domain.Post     `json:"posts"`
	SourceURL  string            `json:"sourceUrl,omitempty"`
	Sources    []string          `json:"sources,omitempty"`
	Dropped    int               `json:"dropped,omitempty"`
	// Stale is set when a newer Analyze started before this one finished.
	// A stale result is reported but not applied to the feed.
	Stale bool   `json:"stale"`
	Error string `json:"error,omitempty"`
}

// FeedView is the filtered discovery feed.
type FeedView struct {
	filter.View
	Category domain.ContentType `json:"category"`
	Insight  string             `json:"insight"`
}

// BookmarkToggle reports the result of toggling a bookmark.
type BookmarkToggle struct {
	PostID string `json:"postId"`
	Saved  bool   `json:"saved"`
	// Post is the reconciled post when it is known to the feed, samples or archive.
	Post *domain.Post `json:"post,omitempty"`
}

// NewDiscoveryService creates a discovery service whose feed starts with the sample posts.
func NewDiscoveryService(
	store *store.Store,
	discoverer Discoverer,
	prefs *PreferencesService,
	history *HistoryService,
	log *slog.Logger,
) *DiscoveryService {
	return &DiscoveryService{
		store:      store,
		discoverer: discoverer,
		prefs:      prefs,
		history:    history,
		logger:     logger.OrDiscard(log),
		feed:       domain.SamplePosts(),
	}
}

// Analyze runs discovery for query. An empty intent falls back to the stored preference.
// Provider failures are reported in the result, never returned as errors.
func (s *DiscoveryService) Analyze(ctx context.Context, query string, intent domain.Intent) (*AnalyzeResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domainerrors.ValidationWithDetails("validation failed", map[string]string{
			"query": "must not be blank",
		})
	}
	if !intent.Valid() {
		return nil, domainerrors.Validationf("unknown intent %q", intent)
	}
	if intent == domain.IntentNone {
		intent = s.prefs.Intent(ctx)
	}

	gen := s.generation.Add(1)
	res := s.discoverer.Discover(ctx, query, intent)

	out := &AnalyzeResult{
		Generation: gen,
		Query:      query,
		Intent:     intent,
		Outcome:    res.Outcome,
		Posts:      res.Posts,
		SourceURL:  res.SourceURL,
		Sources:    res.Sources,
		Dropped:    res.Dropped,
	}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}

	if res.Outcome == discovery.OutcomeOK {
		if err := s.store.ArchivePosts(ctx, res.Posts); err != nil {
			s.logger.Warn("failed to archive discovered posts", "count", len(res.Posts), "error", err)
		}
	}

	out.Stale = !s.apply(gen, res)

	bookmarks, err := s.store.GetBookmarkedPostIDs(ctx)
	if err != nil {
		return nil, err
	}
	out.Posts = domain.WithSaved(out.Posts, bookmarks)

	if out.Stale {
		s.logger.Info("discarding stale discovery result", "generation", gen, "query", query)
	}
	return out, nil
}

// apply replaces the feed with the result if gen is still the newest.
// Reports whether gen was current.
func (s *DiscoveryService) apply(gen uint64, res discovery.Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation.Load() {
		return false
	}
	// Empty and failed outcomes leave an empty feed, the same "no results"
	// state either way.
	if res.Outcome == discovery.OutcomeOK {
		s.feed = slices.Clone(res.Posts)
	} else {
		s.feed = []domain.Post{}
	}
	return true
}

// Feed filters the current feed. An empty category uses the preference default.
// The query is also handed to the debounced history log.
func (s *DiscoveryService) Feed(ctx context.Context, c filter.Criteria) (*FeedView, error) {
	intent := s.prefs.Intent(ctx)
	if c.Category == "" {
		c.Category = intent.DefaultCategory()
	}

	bookmarks, err := s.store.GetBookmarkedPostIDs(ctx)
	if err != nil {
		return nil, err
	}

	s.history.QueryChanged(c.Query)

	return &FeedView{
		View:     filter.Apply(domain.WithSaved(s.currentFeed(), bookmarks), c),
		Category: c.Category,
		Insight:  Insight(intent),
	}, nil
}

// ToggleBookmark flips the bookmark for postID and returns the reconciled post when known.
func (s *DiscoveryService) ToggleBookmark(ctx context.Context, postID string) (*BookmarkToggle, error) {
	if strings.TrimSpace(postID) == "" {
		return nil, domainerrors.Validation("post id is required")
	}

	set, err := s.store.TogglePostBookmark(ctx, postID)
	if err != nil {
		return nil, err
	}

	out := &BookmarkToggle{PostID: postID, Saved: set.Has(postID)}

	known, err := s.knownPosts(ctx, []string{postID})
	if err != nil {
		return nil, err
	}
	if len(known) > 0 {
		p := known[0]
		p.IsSaved = out.Saved
		out.Post = &p
	}

	s.logger.Debug("bookmark toggled", "post_id", postID, "saved", out.Saved)
	return out, nil
}

// Bookmarks returns the bookmarked posts that can be resolved, filtered by category and engagement.
// The text query is ignored so counts depend on engagement only.
func (s *DiscoveryService) Bookmarks(ctx context.Context, c filter.Criteria) (*filter.View, error) {
	bookmarks, err := s.store.GetBookmarkedPostIDs(ctx)
	if err != nil {
		return nil, err
	}

	posts, err := s.knownPosts(ctx, bookmarks.IDs())
	if err != nil {
		return nil, err
	}

	c.Query = ""
	view := filter.Apply(domain.WithSaved(posts, bookmarks), c)
	return &view, nil
}

// ProviderConfigured reports whether the discoverer can reach a provider.
// Discoverers that cannot tell are assumed configured.
func (s *DiscoveryService) ProviderConfigured() bool {
	if c, ok := s.discoverer.(interface{ Configured() bool }); ok {
		return c.Configured()
	}
	return true
}

func (s *DiscoveryService) currentFeed() []domain.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.feed)
}

// knownPosts resolves ids against the current feed, the sample posts and the archive.
// Resolved posts come back in feed, sample, archive order; unknown ids are skipped.
func (s *DiscoveryService) knownPosts(ctx context.Context, ids []string) ([]domain.Post, error) {
	wanted := domain.NewBookmarkSet(ids...)
	seen := make(map[string]struct{}, len(ids))
	var posts []domain.Post

	for _, p := range slices.Concat(s.currentFeed(), domain.SamplePosts()) {
		if !wanted.Has(p.ID) {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		posts = append(posts, p)
	}

	var missing []string
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return posts, nil
	}

	archived, err := s.store.GetPosts(ctx, missing)
	if err != nil {
		return nil, err
	}
	return append(posts, archived...), nil
}
