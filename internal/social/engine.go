// ABOUTME: Engine runs every social operation as a retried store transaction.
// ABOUTME: Holds the store, logger and validator; no other shared state.

// Package social implements the note-sharing interaction engine: follows,
// likes and bookmarks, views, threaded comments, notification fanout,
// statistics and cascade deletion, all on top of a store.Store.
//
// Every write runs inside one store transaction. When the store reports a
// lost race (store.ErrConflict or store.ErrDuplicate) the whole transaction
// is re-run against fresh state, so toggles resolve to "already exists"
// instead of producing a second record.
package social

import (
	"context"
	"io"
	"math/rand/v2"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/harper/notely/internal/store"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultMaxRetries bounds how often a conflicting transaction is re-run.
	DefaultMaxRetries = 16
	retryBackoff      = 2 * time.Millisecond
)

// Engine runs social operations against a store. It is safe for concurrent use.
type Engine struct {
	store      store.Store
	log        logrus.FieldLogger
	validate   *validator.Validate
	maxRetries int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for fanout failures, retries and cascades.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithMaxRetries sets how many times a conflicting write is retried.
func WithMaxRetries(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.maxRetries = n
		}
	}
}

// New returns an Engine over s that logs nothing unless WithLogger is given.
func New(s store.Store, opts ...Option) *Engine {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	validate := validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("notblank", validators.NotBlank)

	e := &Engine{
		store:      s,
		log:        quiet,
		validate:   validate,
		maxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store returns the underlying store.
func (e *Engine) Store() store.Store {
	return e.store
}

// update runs fn in a write transaction, re-running it after lost races.
// fn must reset anything it captures, since it may run more than once.
func (e *Engine) update(ctx context.Context, op string, fn func(tx store.Tx) error) error {
	for attempt := 0; ; attempt++ {
		err := e.store.Update(ctx, fn)
		if err == nil || !store.Retryable(err) || attempt >= e.maxRetries {
			return translate(op, err)
		}

		e.log.WithFields(logrus.Fields{"op": op, "attempt": attempt + 1}).WithError(err).Debug("retrying transaction")

		wait := time.Duration(attempt+1)*retryBackoff + rand.N(retryBackoff)
		select {
		case <-ctx.Done():
			return translate(op, ctx.Err())
		case <-time.After(wait):
		}
	}
}

func (e *Engine) view(ctx context.Context, op string, fn func(tx store.Tx) error) error {
	return translate(op, e.store.View(ctx, fn))
}

func (e *Engine) check(in any) error {
	if err := e.validate.Struct(in); err != nil {
		return invalid("%v", err)
	}
	return nil
}
