package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/signaldeck/signaldeck-server/internal/domain"
)

// ArchivePosts stores discovered posts so bookmarks can be resolved after the feed moves on.
// IsSaved is cleared before writing; it is always derived from the bookmark set on read.
func (s *Store) ArchivePosts(ctx context.Context, posts []domain.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(posts) == 0 {
		return nil
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, p := range posts {
		p.IsSaved = false
		data, err := marshal(p)
		if err != nil {
			return storageError("encode", postPrefix+p.ID, err)
		}
		if err := wb.Set([]byte(postPrefix+p.ID), data); err != nil {
			return storageError("write", postPrefix+p.ID, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return storageError("write", postPrefix+"*", err)
	}

	if s.indexer != nil {
		if err := s.indexer.IndexPosts(ctx, posts); err != nil {
			// The archive is the source of truth; the index can be rebuilt from it.
			s.logger.Warn("failed to index archived posts", "count", len(posts), "error", err)
		}
	}

	return nil
}

// GetPosts returns the archived posts for ids, in the order given. Unknown ids are skipped.
func (s *Store) GetPosts(ctx context.Context, ids []string) ([]domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	posts := make([]domain.Post, 0, len(ids))
	err := s.db.View(func(txn *badger.Txn) error {
		for _, postID := range ids {
			item, err := txn.Get([]byte(postPrefix + postID))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			var p domain.Post
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &p)
			}); err != nil {
				return err
			}
			posts = append(posts, p)
		}
		return nil
	})
	if err != nil {
		return nil, storageError("read", postPrefix+"*", err)
	}
	return posts, nil
}

// ListArchivedPosts returns every archived post in key order.
func (s *Store) ListArchivedPosts(ctx context.Context) ([]domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	posts := []domain.Post{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(postPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var p domain.Post
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &p)
			}); err != nil {
				return err
			}
			posts = append(posts, p)
		}
		return nil
	})
	if err != nil {
		return nil, storageError("read", postPrefix+"*", err)
	}
	return posts, nil
}
