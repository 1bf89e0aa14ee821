// SPDX-License-Identifier: MIT
// Package: store
//
// store.go — record CRUD and hash index.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/katalvlaran/xorslp/bitmatrix"
	"github.com/katalvlaran/xorslp/heuristics"
)

const (
	recordPrefix = "rec/"
	hashPrefix   = "hash/"
)

func recordKey(id string) []byte  { return []byte(recordPrefix + id) }
func hashKey(hash string) []byte { return []byte(hashPrefix + hash) }

// Store is a BadgerDB-backed record store. Safe for concurrent use.
type Store struct {
	db     *badger.DB
	gc     *gcRunner
	logger *slog.Logger
	now    func() time.Time
}

// Open opens (or creates) a store.
func Open(cfg Config) (*Store, error) {
	db, err := openBadger(cfg)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{db: db, logger: logger.With("component", "store"), now: time.Now}
	if cfg.GCInterval > 0 && !cfg.InMemory {
		s.gc = startGC(db, cfg.GCInterval, cfg.GCDiscardRatio, s.logger)
	}

	return s, nil
}

// Close stops GC and closes the database.
func (s *Store) Close() error {
	if s.gc != nil {
		s.gc.stop()
	}

	return s.db.Close()
}

// SaveMatrix stores m under title/group unless a record with the same content
// hash exists, in which case that record is returned with created = false.
func (s *Store) SaveMatrix(ctx context.Context, title, group string, m *bitmatrix.Matrix) (rec *Record, created bool, err error) {
	if m == nil {
		return nil, false, ErrNilMatrix
	}
	if err = ctx.Err(); err != nil {
		return nil, false, err
	}
	hash := m.Hash()
	err = s.db.Update(func(txn *badger.Txn) error {
		existing, gerr := getByHash(txn, hash)
		if gerr == nil {
			rec = existing
			return nil
		}
		if !errors.Is(gerr, ErrNotFound) {
			return gerr
		}

		now := s.now().UTC()
		naive := heuristics.HammingXorCount(m)
		rec = &Record{
			ID:            uuid.NewString(),
			Title:         title,
			Group:         group,
			Rows:          m.Rows(),
			Cols:          m.Cols(),
			MatrixBinary:  m.Binary(),
			MatrixHex:     m.Hex(),
			MatrixHash:    hash,
			NaiveXorCount: &naive,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		created = true
		if perr := putRecord(txn, rec); perr != nil {
			return perr
		}

		return txn.Set(hashKey(hash), []byte(rec.ID))
	})
	if err != nil {
		return nil, false, fmt.Errorf("store: save matrix: %w", err)
	}
	if created {
		s.logger.Debug("matrix saved", "id", rec.ID, "title", title, "hash", hash)
	}

	return rec, created, nil
}

// Get returns the record with id.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rec *Record
	err := s.db.View(func(txn *badger.Txn) error {
		var gerr error
		rec, gerr = getRecord(txn, id)
		return gerr
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// GetByHash returns the record owning a content hash.
func (s *Store) GetByHash(ctx context.Context, hash string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rec *Record
	err := s.db.View(func(txn *badger.Txn) error {
		var gerr error
		rec, gerr = getByHash(txn, hash)
		return gerr
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// Update applies fn to the record inside a read-write transaction and stores
// the result with a fresh UpdatedAt. Identity fields (ID, matrix, hash,
// CreatedAt) are restored after fn runs.
func (s *Store) Update(ctx context.Context, id string, fn func(*Record) error) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *Record
	err := s.db.Update(func(txn *badger.Txn) error {
		rec, err := getRecord(txn, id)
		if err != nil {
			return err
		}
		frozen := *rec
		if err = fn(rec); err != nil {
			return err
		}
		rec.ID, rec.MatrixBinary, rec.MatrixHex, rec.MatrixHash = frozen.ID, frozen.MatrixBinary, frozen.MatrixHex, frozen.MatrixHash
		rec.Rows, rec.Cols, rec.CreatedAt = frozen.Rows, frozen.Cols, frozen.CreatedAt
		rec.UpdatedAt = s.now().UTC()
		out = rec

		return putRecord(txn, rec)
	})
	if err != nil {
		return nil, fmt.Errorf("store: update %s: %w", id, err)
	}

	return out, nil
}

// LinkInverse records that inverseID holds the inverse of id.
func (s *Store) LinkInverse(ctx context.Context, id, inverseID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		inv, err := getRecord(txn, inverseID)
		if err != nil {
			return err
		}
		rec, err := getRecord(txn, id)
		if err != nil {
			return err
		}
		rec.InverseMatrixID = inv.ID
		rec.InverseMatrixHash = inv.MatrixHash
		rec.UpdatedAt = s.now().UTC()

		return putRecord(txn, rec)
	})
	if err != nil {
		return fmt.Errorf("store: link inverse %s -> %s: %w", id, inverseID, err)
	}

	return nil
}

// Delete removes a record and its hash index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		rec, err := getRecord(txn, id)
		if err != nil {
			return err
		}
		if err = txn.Delete(hashKey(rec.MatrixHash)); err != nil {
			return err
		}

		return txn.Delete(recordKey(id))
	})
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", id, err)
	}

	return nil
}

// Count returns the number of records.
func (s *Store) Count(ctx context.Context) (int, error) {
	n := 0
	err := s.scan(ctx, func(*Record) bool { n++; return true })

	return n, err
}

// scan visits every record in key order until fn returns false.
func (s *Store) scan(ctx context.Context, fn func(*Record) bool) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(recordPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec Record
			if err := it.Item().Value(func(v []byte) error { return json.Unmarshal(v, &rec) }); err != nil {
				return fmt.Errorf("store: decode %s: %w", it.Item().Key(), err)
			}
			if !fn(&rec) {
				return nil
			}
		}

		return nil
	})
}

func getRecord(txn *badger.Txn, id string) (*Record, error) {
	item, err := txn.Get(recordKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("id %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var rec Record
	if err = item.Value(func(v []byte) error { return json.Unmarshal(v, &rec) }); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", id, err)
	}

	return &rec, nil
}

func getByHash(txn *badger.Txn, hash string) (*Record, error) {
	item, err := txn.Get(hashKey(hash))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("hash %s: %w", hash, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	id, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}

	return getRecord(txn, string(id))
}

func putRecord(txn *badger.Txn, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", rec.ID, err)
	}

	return txn.Set(recordKey(rec.ID), data)
}
