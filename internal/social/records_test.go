// ABOUTME: Tests for note editing and the public note feed.
// ABOUTME: Runs against every backend through the shared fixture.

package social

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestUpdateNote(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *fixture) {
		alice := f.user("alice")
		bob := f.user("bob")
		n, err := f.e.CreateNote(f.ctx, NoteInput{AuthorID: alice.ID, Title: "draft", Content: "v1", Image: "/uploads/a.png"})
		require.NoError(t, err)
		_, err = f.e.ToggleLike(f.ctx, n.ID, bob.ID)
		require.NoError(t, err)
		time.Sleep(time.Millisecond)

		updated, err := f.e.UpdateNote(f.ctx, n.ID, NoteUpdate{
			Title:    ptr("final"),
			IsPublic: ptr(true),
			Image:    ptr(""),
		})
		require.NoError(t, err)
		assert.True(t, updated.UpdatedAt.After(n.UpdatedAt))

		got, err := f.e.GetNote(f.ctx, n.ID)
		require.NoError(t, err)
		assert.Equal(t, "final", got.Title)
		assert.Equal(t, "v1", got.Content, "unset fields keep their value")
		assert.True(t, got.IsPublic)
		assert.Empty(t, got.Image)
		assert.Equal(t, 1, got.Counters.Likes)
		assert.True(t, got.CreatedAt.Equal(n.CreatedAt))
	})
}

func TestUpdateNoteValidation(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *fixture) {
		alice := f.user("alice")
		n := f.note(alice.ID, false)

		_, err := f.e.UpdateNote(f.ctx, "missing", NoteUpdate{Content: ptr("x")})
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = f.e.UpdateNote(f.ctx, n.ID, NoteUpdate{Title: ptr("  ")})
		assert.ErrorIs(t, err, ErrInvalidInput)

		got, err := f.e.GetNote(f.ctx, n.ID)
		require.NoError(t, err)
		assert.Equal(t, "note", got.Title)
	})
}

func TestListPublicNotes(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *fixture) {
		alice := f.user("alice")
		bob := f.user("bob")
		older := f.note(alice.ID, true)
		f.note(alice.ID, false)
		newer := f.note(bob.ID, true)

		_, err := f.e.ToggleLike(f.ctx, older.ID, bob.ID)
		require.NoError(t, err)
		_, err = f.e.RecordView(f.ctx, older.ID, "")
		require.NoError(t, err)
		_, err = f.e.AddComment(f.ctx, CommentInput{NoteID: older.ID, AuthorID: bob.ID, Content: "hi"})
		require.NoError(t, err)

		feed, err := f.e.ListPublicNotes(f.ctx)
		require.NoError(t, err)
		require.Len(t, feed, 2)
		assert.Equal(t, newer.ID, feed[0].ID)
		assert.Equal(t, older.ID, feed[1].ID)
		assert.Equal(t, 1, feed[1].Stats.Likes)
		assert.Equal(t, 1, feed[1].Stats.Views)
		assert.Equal(t, 1, feed[1].Stats.Comments)
		assert.Zero(t, feed[0].Stats.Likes)
	})
}
