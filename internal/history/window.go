// Package history summarises the search log over dashboard time windows.
package history

import (
	"fmt"
	"math"
	"time"

	"github.com/signaldeck/signaldeck-server/internal/domain"
	domainerrors "github.com/signaldeck/signaldeck-server/internal/errors"
)

// Window selects how far back the dashboard looks.
type Window string

// Supported windows.
const (
	Window24h    Window = "24h"
	Window48h    Window = "48h"
	Window7d     Window = "7d"
	Window30d    Window = "30d"
	WindowCustom Window = "custom"
)

// DefaultWindow is used when no window is requested.
const DefaultWindow = Window7d

const (
	day  = 24 * time.Hour
	week = 7 * day

	// segments is the bucket count for windows without a natural calendar split.
	segments = 7
)

// ParseWindow validates a window name. Empty selects DefaultWindow.
func ParseWindow(s string) (Window, error) {
	switch w := Window(s); w {
	case "":
		return DefaultWindow, nil
	case Window24h, Window48h, Window7d, Window30d, WindowCustom:
		return w, nil
	default:
		return "", domainerrors.Validationf("unknown window %q", s)
	}
}

// Range bounds a custom window. A zero Start means the beginning of time,
// a zero End means now.
type Range struct {
	Start time.Time
	End   time.Time
}

// Bucket is one bar in the activity chart.
type Bucket struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Stats is the dashboard summary for one window.
type Stats struct {
	Window  Window             `json:"window"`
	Total   int                `json:"total"`
	Entries []domain.SearchLog `json:"entries"`
	Buckets []Bucket           `json:"buckets"`
}

// Compute filters logs to the window and builds its chart.
// Day boundaries for the 7d chart are taken in loc.
func Compute(logs []domain.SearchLog, w Window, r Range, now time.Time, loc *time.Location) Stats {
	entries := Filter(logs, w, r, now)
	return Stats{
		Window:  w,
		Total:   len(entries),
		Entries: entries,
		Buckets: Buckets(logs, w, len(entries), now, loc),
	}
}

// Filter returns the entries inside the window, preserving order. Bounds are inclusive.
func Filter(logs []domain.SearchLog, w Window, r Range, now time.Time) []domain.SearchLog {
	start, end := bounds(w, r, now)

	out := make([]domain.SearchLog, 0, len(logs))
	for _, l := range logs {
		if l.Timestamp >= start && l.Timestamp <= end {
			out = append(out, l)
		}
	}
	return out
}

// Buckets builds the chart for the window. Calendar windows count logs per
// bucket; 48h and custom spread total evenly over seven segments with the
// remainder in the last.
func Buckets(logs []domain.SearchLog, w Window, total int, now time.Time, loc *time.Location) []Bucket {
	if loc == nil {
		loc = time.Local
	}

	var spans []span
	switch w {
	case Window24h:
		for i := 23; i >= 0; i -= 4 {
			spans = append(spans, span{
				label: fmt.Sprintf("%dh", 23-i),
				start: now.Add(-time.Duration(i+4) * time.Hour).UnixMilli(),
				end:   now.Add(-time.Duration(i) * time.Hour).UnixMilli(),
			})
		}
	case Window7d:
		for i := 6; i >= 0; i-- {
			d := now.Add(-time.Duration(i) * day).In(loc)
			midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
			spans = append(spans, span{
				label: d.Weekday().String()[:3],
				start: midnight.UnixMilli(),
				end:   midnight.AddDate(0, 0, 1).UnixMilli() - 1,
			})
		}
	case Window30d:
		for i := 4; i >= 0; i-- {
			spans = append(spans, span{
				label: fmt.Sprintf("W%d", 5-i),
				start: now.Add(-time.Duration(i+1) * week).UnixMilli(),
				end:   now.Add(-time.Duration(i) * week).UnixMilli(),
			})
		}
	default:
		return segmentBuckets(total)
	}

	buckets := make([]Bucket, len(spans))
	for i, sp := range spans {
		buckets[i] = Bucket{Label: sp.label, Value: sp.count(logs)}
	}
	return buckets
}

type span struct {
	label      string
	start, end int64
}

func (s span) count(logs []domain.SearchLog) int {
	n := 0
	for _, l := range logs {
		if l.Timestamp >= s.start && l.Timestamp <= s.end {
			n++
		}
	}
	return n
}

func segmentBuckets(total int) []Bucket {
	buckets := make([]Bucket, segments)
	for i := range buckets {
		value := total / segments
		if i == segments-1 {
			value += total % segments
		}
		buckets[i] = Bucket{Label: fmt.Sprintf("P%d", i+1), Value: value}
	}
	return buckets
}

// bounds returns the inclusive millisecond range for w. Preset windows have
// only a lower bound, so entries stamped after now still count.
func bounds(w Window, r Range, now time.Time) (start, end int64) {
	end = math.MaxInt64
	switch w {
	case Window24h:
		start = now.Add(-day).UnixMilli()
	case Window48h:
		start = now.Add(-2 * day).UnixMilli()
	case Window7d:
		start = now.Add(-week).UnixMilli()
	case Window30d:
		start = now.Add(-30 * day).UnixMilli()
	case WindowCustom:
		end = now.UnixMilli()
		if !r.Start.IsZero() {
			start = r.Start.UnixMilli()
		}
		if !r.End.IsZero() {
			end = r.End.UnixMilli()
		}
	}
	return start, end
}
