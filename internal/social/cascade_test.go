// ABOUTME: Tests for cascade deletion and counter reconciliation.
// ABOUTME: Includes a store that fails mid-cascade to check nothing is removed.

package social

import (
	"context"
	"errors"
	"testing"

	"github.com/harper/notely/internal/models"
	"github.com/harper/notely/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCascadeDeleteNote(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *fixture) {
		alice := f.user("alice")
		bob := f.user("bob")
		note := f.note(alice.ID, true)
		keep := f.note(alice.ID, true)

		for _, n := range []*models.Note{note, keep} {
			_, err := f.e.ToggleLike(f.ctx, n.ID, bob.ID)
			require.NoError(t, err)
			_, err = f.e.ToggleBookmark(f.ctx, n.ID, bob.ID)
			require.NoError(t, err)
			_, err = f.e.RecordView(f.ctx, n.ID, bob.ID)
			require.NoError(t, err)
			_, err = f.e.RecordView(f.ctx, n.ID, "")
			require.NoError(t, err)
			root, err := f.e.AddComment(f.ctx, CommentInput{NoteID: n.ID, AuthorID: bob.ID, Content: "hi"})
			require.NoError(t, err)
			_, err = f.e.AddComment(f.ctx, CommentInput{NoteID: n.ID, AuthorID: alice.ID, Content: "thanks", ParentCommentID: root.ID})
			require.NoError(t, err)
		}
		before := len(f.notifications(alice.ID))

		res, err := f.e.CascadeDeleteNote(f.ctx, note.ID)
		require.NoError(t, err)
		assert.Equal(t, CascadeResult{Comments: 2, Likes: 1, Bookmarks: 1, Views: 2}, *res)

		_, err = f.e.GetNote(f.ctx, note.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, f.e.Store().View(f.ctx, func(tx store.Tx) error {
			comments, err := tx.ListComments(note.ID)
			require.NoError(t, err)
			assert.Empty(t, comments)
			for _, kind := range []models.ReactionKind{models.ReactionLike, models.ReactionBookmark} {
				n, err := tx.CountReactions(kind, note.ID)
				require.NoError(t, err)
				assert.Zero(t, n, kind)
			}
			views, err := tx.CountViews(note.ID)
			require.NoError(t, err)
			assert.Zero(t, views)
			return nil
		}))

		st, err := f.e.NoteStats(f.ctx, keep.ID)
		require.NoError(t, err)
		assert.Equal(t, models.NoteStats{Views: 2, Likes: 1, Bookmarks: 1, Comments: 2}, *st)

		assert.Len(t, f.notifications(alice.ID), before, "notifications are not purged")

		_, err = f.e.CascadeDeleteNote(f.ctx, note.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		var logged bool
		for _, entry := range f.logs.AllEntries() {
			if entry.Message == "note deleted" && entry.Data["note"] == note.ID {
				logged = true
			}
		}
		assert.True(t, logged)
	})
}

// failingDeleteStore fails the final note delete to prove the cascade is all or nothing.
type failingDeleteStore struct {
	store.Store
}

type failingDeleteTx struct {
	store.Tx
}

var errDiskFull = errors.New("disk full")

func (failingDeleteTx) DeleteNote(string) error { return errDiskFull }

func (s failingDeleteStore) Update(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.Store.Update(ctx, func(tx store.Tx) error {
		return fn(failingDeleteTx{Tx: tx})
	})
}

func TestCascadeDeleteNoteIsAtomic(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t)
			seed := newFixture(t, s)
			alice := seed.user("alice")
			bob := seed.user("bob")
			note := seed.note(alice.ID, true)
			_, err := seed.e.ToggleLike(seed.ctx, note.ID, bob.ID)
			require.NoError(t, err)
			_, err = seed.e.AddComment(seed.ctx, CommentInput{NoteID: note.ID, AuthorID: bob.ID, Content: "hi"})
			require.NoError(t, err)

			broken := New(failingDeleteStore{Store: s})
			_, err = broken.CascadeDeleteNote(seed.ctx, note.ID)
			assert.ErrorIs(t, err, ErrDependencyFailure)
			assert.ErrorIs(t, err, errDiskFull)

			st, err := seed.e.NoteStats(seed.ctx, note.ID)
			require.NoError(t, err)
			assert.Equal(t, 1, st.Likes)
			assert.Equal(t, 1, st.Comments)
		})
	}
}

func TestReconcileCounters(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *fixture) {
		alice := f.user("alice")
		bob := f.user("bob")
		note := f.note(alice.ID, true)
		_, err := f.e.ToggleLike(f.ctx, note.ID, bob.ID)
		require.NoError(t, err)

		fixed, err := f.e.ReconcileCounters(f.ctx, note.ID)
		require.NoError(t, err)
		assert.False(t, fixed)

		require.NoError(t, f.e.Store().Update(f.ctx, func(tx store.Tx) error {
			return tx.SetNoteCounters(note.ID, models.Counters{Views: 9, Likes: 4})
		}))

		fixed, err = f.e.ReconcileCounters(f.ctx, note.ID)
		require.NoError(t, err)
		assert.True(t, fixed)

		got, err := f.e.GetNote(f.ctx, note.ID)
		require.NoError(t, err)
		assert.Equal(t, models.Counters{Likes: 1}, got.Counters)

		_, err = f.e.ReconcileCounters(f.ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
