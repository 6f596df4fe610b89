// ABOUTME: store.Store implementation on PostgreSQL through GORM.
// ABOUTME: Row locks serialize read-modify-write paths; unique indexes back the invariants.

// Package orm persists the social graph in PostgreSQL using GORM.
//
// Every Update runs in a database transaction. Rows that are read and then
// rewritten (users during a follow toggle, notes while counters move) are
// fetched with SELECT ... FOR UPDATE, and uniqueness is enforced by primary
// keys and unique indexes whose violations surface as store.ErrDuplicate.
package orm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harper/notely/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Store runs store transactions against PostgreSQL.
type Store struct {
	db *gorm.DB
}

type options struct {
	writer logger.Writer
	level  logger.LogLevel
}

// Option configures Open.
type Option func(*options)

// WithLogger sends GORM's slow query and error log through w.
// A *logrus.Logger satisfies logger.Writer.
func WithLogger(w logger.Writer, level logger.LogLevel) Option {
	return func(o *options) {
		o.writer = w
		o.level = level
	}
}

// Open connects to dsn and migrates the schema.
func Open(dsn string, opts ...Option) (*Store, error) {
	o := options{level: logger.Silent}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := &gorm.Config{TranslateError: true}
	if o.writer != nil {
		cfg.Logger = logger.New(o.writer, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  o.level,
			IgnoreRecordNotFoundError: true,
		})
	} else {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	s := &Store{db: db}
	if err := s.Migrate(context.Background()); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates any missing tables and indexes.
func (s *Store) Migrate(ctx context.Context) error {
	err := s.db.WithContext(ctx).AutoMigrate(
		&userRow{},
		&noteRow{},
		&likeRow{},
		&bookmarkRow{},
		&viewRow{},
		&commentRow{},
		&notificationRow{},
	)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, fn func(tx store.Tx) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txn{db: tx, write: true})
	})
	return mapErr(err)
}

func (s *Store) View(ctx context.Context, fn func(tx store.Tx) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txn{db: tx})
	}, &sql.TxOptions{ReadOnly: true})
	return mapErr(err)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Reset empties every table. Used by tests sharing one database.
func (s *Store) Reset(ctx context.Context) error {
	return s.db.WithContext(ctx).Exec(
		`TRUNCATE users, notes, likes, bookmarks, views, comments, notifications`,
	).Error
}

type txn struct {
	db    *gorm.DB
	write bool
}

var _ store.Tx = (*txn)(nil)

// forUpdate locks the selected rows when running inside Update.
func (t *txn) forUpdate() *gorm.DB {
	if t.write {
		return t.db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return t.db
}

// updateOne applies values to the row of model identified by id.
func (t *txn) updateOne(model any, id string, values map[string]any) error {
	res := t.db.Model(model).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrDuplicate), errors.Is(err, store.ErrConflict):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case "40001", "40P01":
			return fmt.Errorf("%w: %v", store.ErrConflict, err)
		}
	}
	return err
}

func fromNanos(ns int64) time.Time {
	return time.Unix(0, ns)
}
