// Package domain contains the core SignalDeck records: posts, saved searches, search logs, bookmarks and preferences.
package domain
