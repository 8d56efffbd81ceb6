package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookmarkSet_ToggleIsInvolution(t *testing.T) {
	set := NewBookmarkSet("a", "b")

	assert.True(t, set.Toggle("p1"))
	assert.True(t, set.Has("p1"))
	assert.False(t, set.Toggle("p1"))

	assert.Equal(t, NewBookmarkSet("a", "b"), set)
}

func TestBookmarkSet_IDsSorted(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, NewBookmarkSet("c", "a", "b").IDs())
	assert.Empty(t, BookmarkSet{}.IDs())
}

func TestWithSaved_RecomputesFromSet(t *testing.T) {
	posts := []Post{{ID: "1", IsSaved: true}, {ID: "2"}}

	got := WithSaved(posts, NewBookmarkSet("2"))

	assert.False(t, got[0].IsSaved, "stale flag must not survive")
	assert.True(t, got[1].IsSaved)
	assert.True(t, posts[0].IsSaved, "input is not mutated")
}

func TestParseFilterCategory(t *testing.T) {
	c, ok := ParseFilterCategory("")
	assert.True(t, ok)
	assert.Equal(t, CategoryAll, c)

	c, ok = ParseFilterCategory("Video")
	assert.True(t, ok)
	assert.Equal(t, CategoryVideo, c)

	_, ok = ParseFilterCategory("video")
	assert.False(t, ok)
}

func TestIntent_DefaultCategory(t *testing.T) {
	assert.Equal(t, CategoryLeads, IntentLeads.DefaultCategory())
	assert.Equal(t, CategoryThreads, IntentLongForm.DefaultCategory())
	assert.Equal(t, CategoryAll, IntentBoth.DefaultCategory())
	assert.Equal(t, CategoryAll, IntentNone.DefaultCategory())
}

func TestIntent_Valid(t *testing.T) {
	assert.True(t, IntentNone.Valid())
	assert.True(t, IntentLongForm.Valid())
	assert.False(t, Intent("Everything").Valid())
}

func TestSamplePosts_AreFreshCopies(t *testing.T) {
	a := SamplePosts()
	a[0].Likes = 0
	assert.Equal(t, 42, SamplePosts()[0].Likes)
	for _, p := range a {
		assert.True(t, p.Type.IsPostCategory())
	}
}
