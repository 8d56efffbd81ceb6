// Package store persists SignalDeck state in a local Badger database.
//
// Three independent collections (saved searches, search history, bookmarks) each
// live as one JSON blob under their own key. Every mutation is a single
// read-modify-write of that key, serialised by a per-collection mutex.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/signaldeck/signaldeck-server/internal/domain"
	domainerrors "github.com/signaldeck/signaldeck-server/internal/errors"
	"github.com/signaldeck/signaldeck-server/internal/logger"
)

// PostIndexer receives archived posts so they can be searched later.
// Store uses this to keep the archive index in sync without depending on its implementation.
type PostIndexer interface {
	IndexPosts(ctx context.Context, posts []domain.Post) error
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for ids, log timestamps and seed data.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
	now    func() time.Time

	// One lock per collection; collections never share a transaction.
	savedMu     sync.Mutex
	historyMu   sync.Mutex
	bookmarksMu sync.Mutex
	prefsMu     sync.Mutex

	historySeedOnce sync.Once
	historySeed     []domain.SearchLog

	indexer PostIndexer
}

// New opens (or creates) the database at path.
func New(path string, log *slog.Logger, opts ...Option) (*Store, error) {
	badgerOpts := badger.DefaultOptions(path)
	badgerOpts.Logger = nil            // Disable Badger's internal logging
	badgerOpts.SyncWrites = true       // A collection write is durable before we return
	badgerOpts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	s := &Store{
		db:     db,
		logger: logger.OrDiscard(log),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger.Info("Badger database opened successfully", "path", path)

	return s, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	s.logger.Info("Closing database connection")
	return s.db.Close()
}

// SetPostIndexer sets the archive indexer.
// It is set after store creation because the index is opened separately.
func (s *Store) SetPostIndexer(indexer PostIndexer) {
	s.indexer = indexer
}

// Ping verifies the database answers a read.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(savedSearchesKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// read loads the JSON value at key, or returns seed() when the key is absent.
func read[T any](ctx context.Context, s *Store, key string, seed func() T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	var value T
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		value, err = readTxn(txn, key, seed)
		return err
	})
	if err != nil {
		return zero, storageError("read", key, err)
	}
	return value, nil
}

// update runs one read-modify-write cycle on key while holding mu.
// The whole collection is replaced in a single Badger transaction.
func update[T any](ctx context.Context, s *Store, mu *sync.Mutex, key string, seed func() T, mutate func(T) T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	mu.Lock()
	defer mu.Unlock()

	var next T
	err := s.db.Update(func(txn *badger.Txn) error {
		current, err := readTxn(txn, key, seed)
		if err != nil {
			return err
		}

		next = mutate(current)

		data, err := marshal(next)
		if err != nil {
			return fmt.Errorf("marshal value: %w", err)
		}
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return zero, storageError("write", key, err)
	}
	return next, nil
}

func readTxn[T any](txn *badger.Txn, key string, seed func() T) (T, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return seed(), nil
	}
	var value T
	if err != nil {
		return value, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &value)
	})
	return value, err
}

// marshal encodes stored values. Tests replace it to simulate encoding failures.
var marshal = json.Marshal

// storageError wraps a persistence failure so callers can surface it as STORAGE.
func storageError(op, key string, err error) error {
	return domainerrors.Wrapf(err, domainerrors.CodeStorage, "%s %s", op, key)
}
