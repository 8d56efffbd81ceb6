package domain

import "time"

// SavedSearch is a persisted query the user wants to track.
type SavedSearch struct {
	ID            string `json:"id"`
	Query         string `json:"query"`
	LastRun       string `json:"lastRun"` // display string, "Just now" on creation
	AlertsEnabled bool   `json:"alertsEnabled"`
}

// SearchLog is an append-only history entry for an executed query.
type SearchLog struct {
	ID        string `json:"id"`
	Query     string `json:"query"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}

// Time returns the entry's timestamp as a time.Time.
func (l SearchLog) Time() time.Time {
	return time.UnixMilli(l.Timestamp)
}
