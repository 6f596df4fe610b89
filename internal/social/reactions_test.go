// ABOUTME: Tests for like and bookmark toggles.
// ABOUTME: Covers counters, notifications and required inputs.

package social

import (
	"testing"

	"github.com/harper/notely/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLike(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *fixture) {
		alice := f.user("alice")
		bob := f.user("bob")
		note := f.note(alice.ID, true)

		liked, err := f.e.ToggleLike(f.ctx, note.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, liked)

		count, err := f.e.CountLikes(f.ctx, note.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		has, err := f.e.HasLiked(f.ctx, note.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, has)

		got, err := f.e.GetNote(f.ctx, note.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Counters.Likes)

		list := f.notifications(alice.ID)
		require.Len(t, list, 1)
		assert.Equal(t, models.KindLike, list[0].Kind)
		assert.Equal(t, "bob liked your note", list[0].Message)
		assert.Equal(t, note.ID, list[0].NoteID)

		liked, err = f.e.ToggleLike(f.ctx, note.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, liked)

		count, err = f.e.CountLikes(f.ctx, note.ID)
		require.NoError(t, err)
		assert.Zero(t, count)

		got, err = f.e.GetNote(f.ctx, note.ID)
		require.NoError(t, err)
		assert.Zero(t, got.Counters.Likes)
		assert.Len(t, f.notifications(alice.ID), 1, "unliking does not notify")
	})
}

func TestToggleLikeOwnNoteDoesNotNotify(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *fixture) {
		alice := f.user("alice")
		note := f.note(alice.ID, true)

		liked, err := f.e.ToggleLike(f.ctx, note.ID, alice.ID)
		require.NoError(t, err)
		assert.True(t, liked)
		assert.Empty(t, f.notifications(alice.ID))
	})
}

func TestToggleLikeRequiresUserAndNote(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *fixture) {
		alice := f.user("alice")
		note := f.note(alice.ID, true)

		_, err := f.e.ToggleLike(f.ctx, note.ID, "")
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = f.e.ToggleLike(f.ctx, "missing", alice.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = f.e.ToggleBookmark(f.ctx, note.ID, "")
		assert.ErrorIs(t, err, ErrInvalidInput)

		count, err := f.e.CountLikes(f.ctx, note.ID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestToggleBookmark(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *fixture) {
		alice := f.user("alice")
		bob := f.user("bob")
		first := f.note(alice.ID, true)
		second := f.note(alice.ID, true)

		for _, n := range []*models.Note{first, second} {
			marked, err := f.e.ToggleBookmark(f.ctx, n.ID, bob.ID)
			require.NoError(t, err)
			assert.True(t, marked)
		}
		assert.Empty(t, f.notifications(alice.ID), "bookmarks never notify")

		has, err := f.e.HasBookmarked(f.ctx, first.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, has)

		count, err := f.e.CountBookmarks(f.ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		notes, err := f.e.ListBookmarkedNotes(f.ctx, bob.ID)
		require.NoError(t, err)
		assert.Len(t, notes, 2)

		_, err = f.e.CascadeDeleteNote(f.ctx, second.ID)
		require.NoError(t, err)

		notes, err = f.e.ListBookmarkedNotes(f.ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, first.ID, notes[0].ID)

		marked, err := f.e.ToggleBookmark(f.ctx, first.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, marked)

		has, err = f.e.HasBookmarked(f.ctx, first.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, has)
	})
}
