package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signaldeck/signaldeck-server/internal/domain"
	domainerrors "github.com/signaldeck/signaldeck-server/internal/errors"
)

var testNow = time.Date(2026, 3, 11, 15, 30, 0, 0, time.UTC) // a Wednesday

func logAt(id string, ago time.Duration) domain.SearchLog {
	return domain.SearchLog{ID: id, Query: id, Timestamp: testNow.Add(-ago).UnixMilli()}
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("")
	require.NoError(t, err)
	assert.Equal(t, Window7d, w)

	for _, name := range []string{"24h", "48h", "7d", "30d", "custom"} {
		w, err := ParseWindow(name)
		require.NoError(t, err)
		assert.Equal(t, Window(name), w)
	}

	_, err = ParseWindow("1y")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestFilter_Windows(t *testing.T) {
	logs := []domain.SearchLog{
		logAt("1h", time.Hour),
		logAt("30h", 30*time.Hour),
		logAt("3d", 3*day),
		logAt("10d", 10*day),
		logAt("40d", 40*day),
	}

	tests := []struct {
		window Window
		want   []string
	}{
		{Window24h, []string{"1h"}},
		{Window48h, []string{"1h", "30h"}},
		{Window7d, []string{"1h", "30h", "3d"}},
		{Window30d, []string{"1h", "30h", "3d", "10d"}},
		{WindowCustom, []string{"1h", "30h", "3d", "10d", "40d"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.window), func(t *testing.T) {
			got := Filter(logs, tt.window, Range{}, testNow)
			ids := make([]string, len(got))
			for i, l := range got {
				ids[i] = l.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilter_PresetWindowsKeepFutureEntries(t *testing.T) {
	logs := []domain.SearchLog{
		{ID: "ahead", Timestamp: testNow.Add(time.Hour).UnixMilli()},
		{ID: "now", Timestamp: testNow.UnixMilli()},
	}

	for _, w := range []Window{Window24h, Window48h, Window7d, Window30d} {
		t.Run(string(w), func(t *testing.T) {
			assert.Len(t, Filter(logs, w, Range{}, testNow), 2)
		})
	}

	custom := Filter(logs, WindowCustom, Range{}, testNow)
	require.Len(t, custom, 1)
	assert.Equal(t, "now", custom[0].ID)
}

func TestFilter_CustomBoundsInclusive(t *testing.T) {
	start := testNow.Add(-5 * day)
	end := testNow.Add(-2 * day)
	logs := []domain.SearchLog{
		{ID: "start", Timestamp: start.UnixMilli()},
		{ID: "end", Timestamp: end.UnixMilli()},
		{ID: "after", Timestamp: end.UnixMilli() + 1},
		{ID: "before", Timestamp: start.UnixMilli() - 1},
	}

	got := Filter(logs, WindowCustom, Range{Start: start, End: end}, testNow)

	require.Len(t, got, 2)
	assert.Equal(t, "start", got[0].ID)
	assert.Equal(t, "end", got[1].ID)
}

func TestBuckets_24h(t *testing.T) {
	logs := []domain.SearchLog{
		logAt("a", 30*time.Minute),
		logAt("b", 5*time.Hour),
		logAt("c", 26*time.Hour),
	}

	buckets := Buckets(logs, Window24h, 0, testNow, time.UTC)

	require.Len(t, buckets, 6)
	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
	}
	assert.Equal(t, []string{"0h", "4h", "8h", "12h", "16h", "20h"}, labels)
	assert.Equal(t, 1, buckets[5].Value, "5h ago falls in [now-7h, now-3h]")
	assert.Equal(t, 0, buckets[4].Value)
	// The first bucket reaches back 27 hours; the last ends three hours before now.
	assert.Equal(t, 1, buckets[0].Value)
	total := 0
	for _, b := range buckets {
		total += b.Value
	}
	assert.Equal(t, 2, total)
}

func TestBuckets_7dUsesLocalDays(t *testing.T) {
	logs := []domain.SearchLog{
		logAt("today", time.Hour),
		logAt("yesterday", day),
		logAt("old", 8*day),
	}

	buckets := Buckets(logs, Window7d, 0, testNow, time.UTC)

	require.Len(t, buckets, 7)
	assert.Equal(t, "Thu", buckets[0].Label)
	assert.Equal(t, "Wed", buckets[6].Label)
	assert.Equal(t, 1, buckets[6].Value)
	assert.Equal(t, 1, buckets[5].Value)
	total := 0
	for _, b := range buckets {
		total += b.Value
	}
	assert.Equal(t, 2, total)
}

func TestBuckets_30dWeeks(t *testing.T) {
	logs := []domain.SearchLog{
		logAt("a", day),
		logAt("b", 9*day),
		logAt("c", 33*day),
	}

	buckets := Buckets(logs, Window30d, 0, testNow, time.UTC)

	require.Len(t, buckets, 5)
	assert.Equal(t, "W1", buckets[0].Label)
	assert.Equal(t, "W5", buckets[4].Label)
	assert.Equal(t, 1, buckets[4].Value)
	assert.Equal(t, 1, buckets[3].Value)
	assert.Equal(t, 1, buckets[0].Value)
}

func TestBuckets_SegmentsCarryRemainder(t *testing.T) {
	for _, w := range []Window{Window48h, WindowCustom} {
		buckets := Buckets(nil, w, 17, testNow, time.UTC)

		require.Len(t, buckets, 7)
		assert.Equal(t, "P1", buckets[0].Label)
		assert.Equal(t, 2, buckets[0].Value)
		assert.Equal(t, "P7", buckets[6].Label)
		assert.Equal(t, 5, buckets[6].Value)
	}
}

func TestCompute(t *testing.T) {
	logs := []domain.SearchLog{logAt("a", time.Hour), logAt("b", 3*day)}

	stats := Compute(logs, Window24h, Range{}, testNow, time.UTC)

	assert.Equal(t, Window24h, stats.Window)
	assert.Equal(t, 1, stats.Total)
	require.Len(t, stats.Entries, 1)
	assert.Equal(t, "a", stats.Entries[0].ID)
	assert.Len(t, stats.Buckets, 6)
}
