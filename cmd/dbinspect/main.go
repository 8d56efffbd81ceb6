// Command dbinspect prints a read-only summary of a SignalDeck database.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/signaldeck/signaldeck-server/internal/domain"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/SignalDeck/db")
	}

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	err = db.View(func(txn *badger.Txn) error {
		var saved []domain.SavedSearch
		found, err := readJSON(txn, "signal_saved_searches", &saved)
		if err != nil {
			return err
		}
		fmt.Printf("Saved searches: %d%s\n", len(saved), seededNote(found))
		for _, s := range saved {
			alerts := "off"
			if s.AlertsEnabled {
				alerts = "on"
			}
			fmt.Printf("  [%s] %q (alerts %s, last run %s)\n", s.ID, s.Query, alerts, s.LastRun)
		}
		fmt.Println()

		var logs []domain.SearchLog
		found, err = readJSON(txn, "signal_search_history", &logs)
		if err != nil {
			return err
		}
		fmt.Printf("Search history: %d entries%s\n", len(logs), seededNote(found))
		for i, l := range logs {
			if i >= 10 { // Show the 10 newest
				fmt.Printf("  ... and %d more\n", len(logs)-10)
				break
			}
			fmt.Printf("  %s  %q\n", l.Time().Format(time.DateTime), l.Query)
		}
		fmt.Println()

		var bookmarks []string
		if _, err := readJSON(txn, "signal_post_bookmarks", &bookmarks); err != nil {
			return err
		}
		fmt.Printf("Bookmarks: %d %v\n", len(bookmarks), bookmarks)

		var prefs domain.UserPreferences
		found, err = readJSON(txn, "signal_prefs", &prefs)
		if err != nil {
			return err
		}
		if found {
			fmt.Printf("Preferences: onboarded=%t intent=%q\n", prefs.IsOnboarded, prefs.SearchIntent)
		} else {
			fmt.Println("Preferences: not set")
		}

		archived, byType, err := countArchive(txn)
		if err != nil {
			return err
		}
		fmt.Printf("Archived posts: %d\n", archived)
		for _, t := range domain.PostCategories {
			fmt.Printf("  %-8s %d\n", t, byType[t])
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to inspect database: %v", err)
	}
}

// readJSON decodes the value at key into dest. Reports whether the key exists.
func readJSON(txn *badger.Txn, key string, dest any) (bool, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, dest); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		return nil
	})
}

func seededNote(found bool) string {
	if found {
		return ""
	}
	return " (never written, server will show seed data)"
}

func countArchive(txn *badger.Txn) (int, map[domain.ContentType]int, error) {
	prefix := []byte("post:")
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	total := 0
	byType := make(map[domain.ContentType]int)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		err := it.Item().Value(func(val []byte) error {
			var post domain.Post
			if err := json.Unmarshal(val, &post); err != nil {
				return err
			}
			total++
			byType[post.Type]++
			return nil
		})
		if err != nil {
			return 0, nil, err
		}
	}
	return total, byType, nil
}
