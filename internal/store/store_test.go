package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signaldeck/signaldeck-server/internal/domain"
	domainerrors "github.com/signaldeck/signaldeck-server/internal/errors"
)

func setupTestStore(t *testing.T, opts ...Option) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "signaldeck-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := New(dbPath, nil, opts...)
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

func TestGetSavedSearches_Seed(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	searches, err := s.GetSavedSearches(context.Background())
	require.NoError(t, err)
	require.Len(t, searches, 2)

	assert.Equal(t, "s1", searches[0].ID)
	assert.Equal(t, "CRM recommendations", searches[0].Query)
	assert.True(t, searches[0].AlertsEnabled)
	assert.Equal(t, "s2", searches[1].ID)
	assert.False(t, searches[1].AlertsEnabled)
}

func TestSaveSearch_PrependsAndPersists(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	created, err := s.SaveSearch(ctx, "AI tools")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Regexp(t, `^s-\d+-[A-Za-z0-9_-]{6}$`, created.ID)
	assert.Equal(t, "Just now", created.LastRun)
	assert.False(t, created.AlertsEnabled)

	searches, err := s.GetSavedSearches(ctx)
	require.NoError(t, err)
	require.Len(t, searches, 3)
	assert.Equal(t, "AI tools", searches[0].Query)
	assert.Equal(t, "s1", searches[1].ID)
}

func TestSaveSearch_BlankIsNoop(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	for _, q := range []string{"", "   ", "\t\n"} {
		created, err := s.SaveSearch(ctx, q)
		require.NoError(t, err)
		assert.Nil(t, created)
	}

	searches, err := s.GetSavedSearches(ctx)
	require.NoError(t, err)
	assert.Len(t, searches, 2)
}

func TestRemoveSavedSearch_Idempotent(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	first, err := s.RemoveSavedSearch(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "s2", first[0].ID)

	second, err := s.RemoveSavedSearch(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	unknown, err := s.RemoveSavedSearch(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.Equal(t, first, unknown)
}

func TestRemoveSavedSearch_All(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := s.RemoveSavedSearch(ctx, "s1")
	require.NoError(t, err)
	remaining, err := s.RemoveSavedSearch(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	// An emptied list stays empty rather than falling back to the seed.
	searches, err := s.GetSavedSearches(ctx)
	require.NoError(t, err)
	assert.NotNil(t, searches)
	assert.Empty(t, searches)
}

func TestToggleSearchAlert(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	searches, err := s.ToggleSearchAlert(ctx, "s2")
	require.NoError(t, err)
	assert.True(t, searches[0].AlertsEnabled, "s1 unchanged")
	assert.True(t, searches[1].AlertsEnabled)

	searches, err = s.ToggleSearchAlert(ctx, "s2")
	require.NoError(t, err)
	assert.True(t, searches[0].AlertsEnabled)
	assert.False(t, searches[1].AlertsEnabled)
}

func TestGetSearchHistory_SeedIsStable(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s, cleanup := setupTestStore(t, WithClock(func() time.Time { return now }))
	defer cleanup()
	ctx := context.Background()

	first, err := s.GetSearchHistory(ctx)
	require.NoError(t, err)
	require.Len(t, first, 42)

	second, err := s.GetSearchHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	earliest := now.Add(-30 * 24 * time.Hour).UnixMilli()
	for i, entry := range first {
		assert.Equal(t, seedHistoryQueries[i%4], entry.Query)
		assert.GreaterOrEqual(t, entry.Timestamp, earliest)
		assert.LessOrEqual(t, entry.Timestamp, now.UnixMilli())
	}
}

func TestLogSearch_PrependsWithoutDedupe(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s, cleanup := setupTestStore(t, WithClock(func() time.Time { return now }))
	defer cleanup()
	ctx := context.Background()

	seed, err := s.GetSearchHistory(ctx)
	require.NoError(t, err)

	entry, err := s.LogSearch(ctx, "fintech")
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), entry.Timestamp)
	assert.Regexp(t, `^log-\d+-`, entry.ID)

	_, err = s.LogSearch(ctx, "fintech")
	require.NoError(t, err)

	history, err := s.GetSearchHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, len(seed)+2)
	assert.Equal(t, "fintech", history[0].Query)
	assert.Equal(t, "fintech", history[1].Query)
	assert.NotEqual(t, history[0].ID, history[1].ID)
	assert.Equal(t, seed, history[2:])
}

func TestTogglePostBookmark_Involution(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	initial, err := s.GetBookmarkedPostIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, initial)

	set, err := s.TogglePostBookmark(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, set.Has("p1"))

	set, err = s.TogglePostBookmark(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, set.Has("p1"))

	persisted, err := s.GetBookmarkedPostIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, initial, persisted)
}

func TestTogglePostBookmark_Concurrent(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	var wg sync.WaitGroup
	for _, postID := range ids {
		wg.Go(func() {
			_, err := s.TogglePostBookmark(ctx, postID)
			assert.NoError(t, err)
		})
	}
	wg.Wait()

	set, err := s.GetBookmarkedPostIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids, set.IDs())
}

func TestPreferences_RoundTrip(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	prefs, err := s.GetPreferences(ctx)
	require.NoError(t, err)
	assert.False(t, prefs.IsOnboarded)

	want := domain.UserPreferences{IsOnboarded: true, SearchIntent: domain.IntentLeads}
	_, err = s.SavePreferences(ctx, want)
	require.NoError(t, err)

	got, err := s.GetPreferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

type recordingIndexer struct {
	mu    sync.Mutex
	posts []domain.Post
}

func (r *recordingIndexer) IndexPosts(_ context.Context, posts []domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts = append(r.posts, posts...)
	return nil
}

func TestArchivePosts(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	indexer := &recordingIndexer{}
	s.SetPostIndexer(indexer)

	posts := domain.SamplePosts()
	posts[0].IsSaved = true
	require.NoError(t, s.ArchivePosts(ctx, posts))
	assert.Len(t, indexer.posts, len(posts))

	got, err := s.GetPosts(ctx, []string{"3", "missing", "1"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "3", got[0].ID)
	assert.Equal(t, "1", got[1].ID)
	assert.False(t, got[1].IsSaved, "isSaved is never persisted")

	all, err := s.ListArchivedPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(posts))
}

func TestCorruptCollection_IsStorageError(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(savedSearchesKey), []byte("{not json"))
	})
	require.NoError(t, err)

	_, err = s.GetSavedSearches(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrStorage)

	_, err = s.SaveSearch(context.Background(), "anything")
	assert.ErrorIs(t, err, domainerrors.ErrStorage)
}

func TestArchivePosts_EncodeFailureIsStorageError(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	marshal = func(any) ([]byte, error) { return nil, errors.New("unsupported value") }
	t.Cleanup(func() { marshal = json.Marshal })

	err := s.ArchivePosts(context.Background(), domain.SamplePosts()[:1])
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrStorage)
	assert.Contains(t, err.Error(), "unsupported value")
}

func TestCancelledContext(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.GetSavedSearches(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
