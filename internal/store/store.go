// ABOUTME: Repository abstraction shared by every storage backend.
// ABOUTME: Defines the transactional Store, the Tx record operations, and store errors.

// Package store defines the persistence contract the social engine runs on.
//
// A backend implements [Store]. All reads and writes happen inside
// [Store.Update] or [Store.View]; the closure passed to Update either commits
// as a whole or leaves no trace. Backends enforce the record uniqueness
// invariants natively (UNIQUE constraints, conflict-checked keys) and report
// violations as [ErrDuplicate], so callers never rely on check-then-act alone.
package store

import (
	"context"
	"errors"

	"github.com/harper/notely/internal/models"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a create would violate a uniqueness invariant.
	ErrDuplicate = errors.New("duplicate record")
	// ErrConflict is returned when a transaction lost a race with a concurrent
	// writer. The whole transaction may be retried.
	ErrConflict = errors.New("transaction conflict")
)

// Retryable reports whether err came from a lost race that a fresh attempt can resolve.
func Retryable(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrDuplicate)
}

type Store interface {
	// Update runs fn in a read-write transaction. If fn returns an error the
	// transaction is rolled back.
	Update(ctx context.Context, fn func(tx Tx) error) error
	// View runs fn in a read-only transaction.
	View(ctx context.Context, fn func(tx Tx) error) error
	Close() error
}

// Tx is the record-level API available inside a transaction.
type Tx interface {
	UserTx
	NoteTx
	ReactionTx
	ViewTx
	CommentTx
	NotificationTx
}

type UserTx interface {
	CreateUser(u *models.User) error
	GetUser(id string) (*models.User, error)
	// UpdateFollowSets replaces both follow sets of a user.
	UpdateFollowSets(id string, followers, following []string) error
}

type NoteTx interface {
	CreateNote(n *models.Note) error
	GetNote(id string) (*models.Note, error)
	UpdateNote(n *models.Note) error
	AdjustNoteCounters(id string, d models.CounterDelta) error
	SetNoteCounters(id string, c models.Counters) error
	DeleteNote(id string) error
	ListNotesByAuthor(authorID string) ([]*models.Note, error)
}

type ReactionTx interface {
	GetReaction(kind models.ReactionKind, noteID, userID string) (*models.Reaction, error)
	CreateReaction(r *models.Reaction) error
	DeleteReaction(kind models.ReactionKind, noteID, userID string) error
	CountReactions(kind models.ReactionKind, noteID string) (int, error)
	ListReactionsByUser(kind models.ReactionKind, userID string) ([]*models.Reaction, error)
	DeleteReactionsByNote(kind models.ReactionKind, noteID string) (int, error)
}

type ViewTx interface {
	HasView(noteID, userID string) (bool, error)
	CreateView(v *models.View) error
	CountViews(noteID string) (int, error)
	DeleteViewsByNote(noteID string) (int, error)
}

type CommentTx interface {
	CreateComment(c *models.Comment) error
	GetComment(id string) (*models.Comment, error)
	// ListComments returns a note's comments ordered by creation time, then id.
	ListComments(noteID string) ([]*models.Comment, error)
	CountComments(noteID string) (int, error)
	DeleteCommentsByNote(noteID string) (int, error)
}

type NotificationTx interface {
	CreateNotification(n *models.Notification) error
	GetNotification(id string) (*models.Notification, error)
	MarkNotificationRead(id string) error
	// ListNotifications returns a user's notifications, most recent first.
	ListNotifications(userID string) ([]*models.Notification, error)
}
