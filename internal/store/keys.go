package store

// Storage keys. Each collection is one JSON document under its own key;
// archived posts use one key per post under postPrefix.
const (
	savedSearchesKey = "signal_saved_searches"
	historyKey       = "signal_search_history"
	bookmarksKey     = "signal_post_bookmarks"
	preferencesKey   = "signal_prefs"

	postPrefix = "post:"
)
