package store

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/signaldeck/signaldeck-server/internal/domain"
)

const (
	seedHistoryEntries = 42
	seedHistorySpan    = 30 * 24 * time.Hour
)

var seedHistoryQueries = []string{"SaaS leads", "CRM tools", "X discovery", "intent signal"}

// defaultSavedSearches is the list shown before the user saves anything.
func defaultSavedSearches() []domain.SavedSearch {
	return []domain.SavedSearch{
		{ID: "s1", Query: "CRM recommendations", LastRun: "10m ago", AlertsEnabled: true},
		{ID: "s2", Query: "buying intent tool", LastRun: "1h ago", AlertsEnabled: false},
	}
}

// generateSeedHistory builds demo history entries at random points in the 30 days before now.
func generateSeedHistory(now time.Time) []domain.SearchLog {
	logs := make([]domain.SearchLog, seedHistoryEntries)
	for i := range logs {
		offset := time.Duration(rand.Float64() * float64(seedHistorySpan))
		logs[i] = domain.SearchLog{
			ID:        "init-" + strconv.Itoa(i),
			Query:     seedHistoryQueries[i%len(seedHistoryQueries)],
			Timestamp: now.Add(-offset).UnixMilli(),
		}
	}
	return logs
}
