// ABOUTME: Tests for partial write failures inside social transactions.
// ABOUTME: Notification writes are best effort; follow edges are all or nothing.

package social

import (
	"context"
	"errors"
	"testing"

	"github.com/harper/notely/internal/models"
	"github.com/harper/notely/internal/store"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errWriteFailed = errors.New("write failed")

// faultyStore injects write failures into every transaction it opens.
type faultyStore struct {
	store.Store
	failNotify bool
	// failFollowAt fails the nth UpdateFollowSets call of a transaction.
	failFollowAt int
}

type faultyTx struct {
	store.Tx
	s            faultyStore
	followWrites *int
}

func (tx faultyTx) CreateNotification(n *models.Notification) error {
	if tx.s.failNotify {
		return errWriteFailed
	}
	return tx.Tx.CreateNotification(n)
}

func (tx faultyTx) UpdateFollowSets(id string, followers, following []string) error {
	*tx.followWrites++
	if *tx.followWrites == tx.s.failFollowAt {
		return errWriteFailed
	}
	return tx.Tx.UpdateFollowSets(id, followers, following)
}

func (s faultyStore) Update(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.Store.Update(ctx, func(tx store.Tx) error {
		writes := 0
		return fn(faultyTx{Tx: tx, s: s, followWrites: &writes})
	})
}

func newFaultyEngine(s faultyStore) (*Engine, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return New(s, WithLogger(logger)), hook
}

func TestNotificationFailureKeepsInteraction(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t)
			seed := newFixture(t, s)
			alice := seed.user("alice")
			bob := seed.user("bob")
			note := seed.note(alice.ID, true)

			broken, logs := newFaultyEngine(faultyStore{Store: s, failNotify: true})

			liked, err := broken.ToggleLike(seed.ctx, note.ID, bob.ID)
			require.NoError(t, err)
			assert.True(t, liked)

			c, err := broken.AddComment(seed.ctx, CommentInput{NoteID: note.ID, AuthorID: bob.ID, Content: "hi"})
			require.NoError(t, err)
			assert.NotEmpty(t, c.ID)

			following, err := broken.ToggleFollow(seed.ctx, alice.ID, bob.ID)
			require.NoError(t, err)
			assert.True(t, following)

			st, err := seed.e.NoteStats(seed.ctx, note.ID)
			require.NoError(t, err)
			assert.Equal(t, 1, st.Likes)
			assert.Equal(t, 1, st.Comments)

			ok, err := seed.e.IsFollowing(seed.ctx, alice.ID, bob.ID)
			require.NoError(t, err)
			assert.True(t, ok)

			assert.Empty(t, seed.notifications(alice.ID))

			warned := 0
			for _, entry := range logs.AllEntries() {
				if entry.Message == "notification fanout failed" {
					assert.Equal(t, logrus.WarnLevel, entry.Level)
					warned++
				}
			}
			assert.Equal(t, 3, warned)
		})
	}
}

func TestToggleFollowIsAtomic(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t)
			seed := newFixture(t, s)
			alice := seed.user("alice")
			bob := seed.user("bob")

			broken, _ := newFaultyEngine(faultyStore{Store: s, failFollowAt: 2})
			_, err := broken.ToggleFollow(seed.ctx, alice.ID, bob.ID)
			assert.ErrorIs(t, err, ErrDependencyFailure)
			assert.ErrorIs(t, err, errWriteFailed)

			for _, id := range []string{alice.ID, bob.ID} {
				u, err := seed.e.GetUser(seed.ctx, id)
				require.NoError(t, err)
				assert.Empty(t, u.Followers, u.Name)
				assert.Empty(t, u.Following, u.Name)
			}

			ok, err := seed.e.IsFollowing(seed.ctx, alice.ID, bob.ID)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}
