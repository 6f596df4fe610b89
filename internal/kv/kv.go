// ABOUTME: store.Store implementation on an embedded Badger database.
// ABOUTME: Uses type-prefixed keys (note:<id>, like:<note>:<user>) with JSON values.

package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/harper/notely/internal/store"
)

// Store runs store transactions against Badger's optimistic transactions.
// A transaction whose reads were invalidated by a concurrent commit fails
// with store.ErrConflict.
type Store struct {
	db *badger.DB
}

type options struct {
	inMemory bool
	logger   badger.Logger
}

// Option configures Open.
type Option func(*options)

// WithInMemory keeps all data in memory; dir is ignored.
func WithInMemory() Option {
	return func(o *options) { o.inMemory = true }
}

// WithLogger routes badger's internal logging. Any logrus logger satisfies badger.Logger.
func WithLogger(l badger.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Open opens (creating if needed) the Badger database in dir.
func Open(dir string, opts ...Option) (*Store, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	bopts := badger.DefaultOptions(dir).WithLogger(o.logger)
	if o.inMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true).WithLogger(o.logger)
	} else if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Update(ctx context.Context, fn func(tx store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return fn(&kvTxn{txn: txn})
	})
	if errors.Is(err, badger.ErrConflict) {
		return fmt.Errorf("%w: %v", store.ErrConflict, err)
	}
	return err
}

func (s *Store) View(ctx context.Context, fn func(tx store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(txn *badger.Txn) error {
		return fn(&kvTxn{txn: txn})
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}

type kvTxn struct {
	txn *badger.Txn
}

var _ store.Tx = (*kvTxn)(nil)

func key(parts ...string) []byte {
	n := 0
	for _, p := range parts {
		n += len(p) + 1
	}
	b := make([]byte, 0, n)
	for i, p := range parts {
		if i > 0 {
			b = append(b, ':')
		}
		b = append(b, p...)
	}
	return b
}

// prefix returns key(parts...) with a trailing separator, for scans.
func prefix(parts ...string) []byte {
	return append(key(parts...), ':')
}

func (t *kvTxn) get(k []byte, v any) error {
	item, err := t.txn.Get(k)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func (t *kvTxn) exists(k []byte) (bool, error) {
	_, err := t.txn.Get(k)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (t *kvTxn) set(k []byte, v any) error {
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", k, err)
	}
	return t.txn.Set(k, encoded)
}

// insert writes v under k, failing with store.ErrDuplicate if k exists.
func (t *kvTxn) insert(k []byte, v any) error {
	ok, err := t.exists(k)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("%w: %s", store.ErrDuplicate, k)
	}
	return t.set(k, v)
}

func (t *kvTxn) del(k []byte) error {
	ok, err := t.exists(k)
	if err != nil {
		return err
	}
	if !ok {
		return store.ErrNotFound
	}
	return t.txn.Delete(k)
}

// scan calls fn for every key/value under p, in key order.
func (t *kvTxn) scan(p []byte, fn func(k, val []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = p
	it := t.txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		item := it.Item()
		k := item.KeyCopy(nil)
		if err := item.Value(func(val []byte) error {
			return fn(k, val)
		}); err != nil {
			return err
		}
	}
	return nil
}

func (t *kvTxn) keys(p []byte) [][]byte {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = p
	opts.PrefetchValues = false
	it := t.txn.NewIterator(opts)
	defer it.Close()

	var out [][]byte
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		out = append(out, it.Item().KeyCopy(nil))
	}
	return out
}

func (t *kvTxn) count(p []byte) int {
	return len(t.keys(p))
}

// deletePrefix removes every key under p and returns how many were removed.
func (t *kvTxn) deletePrefix(p []byte) (int, error) {
	ks := t.keys(p)
	for _, k := range ks {
		if err := t.txn.Delete(k); err != nil {
			return 0, err
		}
	}
	return len(ks), nil
}

func fromNanos(ns int64) time.Time {
	return time.Unix(0, ns)
}
