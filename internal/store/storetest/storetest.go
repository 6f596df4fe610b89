// ABOUTME: Conformance suite every store backend must pass.
// ABOUTME: Exercises uniqueness, ordering, cascade helpers, and rollback semantics.

// Package storetest holds backend-agnostic tests for store.Store implementations.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harper/notely/internal/models"
	"github.com/harper/notely/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, empty store. The suite closes it.
type Factory func(t *testing.T) store.Store

// Run executes the full conformance suite against stores built by open.
func Run(t *testing.T, open Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, open(t)) })
	t.Run("Notes", func(t *testing.T) { testNotes(t, open(t)) })
	t.Run("Reactions", func(t *testing.T) { testReactions(t, open(t)) })
	t.Run("Views", func(t *testing.T) { testViews(t, open(t)) })
	t.Run("Comments", func(t *testing.T) { testComments(t, open(t)) })
	t.Run("Notifications", func(t *testing.T) { testNotifications(t, open(t)) })
	t.Run("Rollback", func(t *testing.T) { testRollback(t, open(t)) })
}

var errAbort = errors.New("abort")

func update(t *testing.T, s store.Store, fn func(tx store.Tx) error) {
	t.Helper()
	require.NoError(t, s.Update(context.Background(), fn))
}

func view(t *testing.T, s store.Store, fn func(tx store.Tx) error) {
	t.Helper()
	require.NoError(t, s.View(context.Background(), fn))
}

func seedNote(t *testing.T, s store.Store, authorID string) *models.Note {
	t.Helper()
	n := models.NewNote(authorID, "title", "content", true)
	update(t, s, func(tx store.Tx) error { return tx.CreateNote(n) })
	return n
}

func testUsers(t *testing.T, s store.Store) {
	defer func() { _ = s.Close() }()

	u := models.NewUser("alice")
	update(t, s, func(tx store.Tx) error { return tx.CreateUser(u) })

	view(t, s, func(tx store.Tx) error {
		got, err := tx.GetUser(u.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Name)
		assert.Empty(t, got.Followers)
		assert.Empty(t, got.Following)

		_, err = tx.GetUser("missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
		return nil
	})

	update(t, s, func(tx store.Tx) error {
		return tx.UpdateFollowSets(u.ID, []string{"f1", "f2"}, []string{"g1"})
	})
	view(t, s, func(tx store.Tx) error {
		got, err := tx.GetUser(u.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"f1", "f2"}, got.Followers)
		assert.Equal(t, []string{"g1"}, got.Following)
		return nil
	})

	err := s.Update(context.Background(), func(tx store.Tx) error {
		return tx.UpdateFollowSets("missing", nil, nil)
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testNotes(t *testing.T, s store.Store) {
	defer func() { _ = s.Close() }()

	n1 := seedNote(t, s, "author")
	n2 := models.NewNote("author", "second", "body", false)
	n2.Image = "/assets/pic.png"
	update(t, s, func(tx store.Tx) error { return tx.CreateNote(n2) })
	seedNote(t, s, "someone-else")

	view(t, s, func(tx store.Tx) error {
		got, err := tx.GetNote(n2.ID)
		require.NoError(t, err)
		assert.Equal(t, "second", got.Title)
		assert.Equal(t, "/assets/pic.png", got.Image)
		assert.False(t, got.IsPublic)

		notes, err := tx.ListNotesByAuthor("author")
		require.NoError(t, err)
		assert.Len(t, notes, 2)

		all, err := tx.ListNotesByAuthor("")
		require.NoError(t, err)
		assert.Len(t, all, 3)

		none, err := tx.ListNotesByAuthor("nobody")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
		return nil
	})

	update(t, s, func(tx store.Tx) error {
		if err := tx.AdjustNoteCounters(n1.ID, models.CounterDelta{Views: 2, Likes: 1, Comments: 1}); err != nil {
			return err
		}
		return tx.AdjustNoteCounters(n1.ID, models.CounterDelta{Likes: -1})
	})
	view(t, s, func(tx store.Tx) error {
		got, err := tx.GetNote(n1.ID)
		require.NoError(t, err)
		assert.Equal(t, models.Counters{Views: 2, Likes: 0, Comments: 1}, got.Counters)
		return nil
	})

	update(t, s, func(tx store.Tx) error {
		return tx.SetNoteCounters(n1.ID, models.Counters{Views: 7})
	})
	update(t, s, func(tx store.Tx) error {
		n1.Title = "renamed"
		n1.Touch()
		return tx.UpdateNote(n1)
	})
	view(t, s, func(tx store.Tx) error {
		got, err := tx.GetNote(n1.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Title)
		assert.Equal(t, 7, got.Counters.Views)
		return nil
	})

	update(t, s, func(tx store.Tx) error { return tx.DeleteNote(n1.ID) })
	err := s.Update(context.Background(), func(tx store.Tx) error { return tx.DeleteNote(n1.ID) })
	assert.ErrorIs(t, err, store.ErrNotFound)
	err = s.Update(context.Background(), func(tx store.Tx) error {
		return tx.AdjustNoteCounters(n1.ID, models.CounterDelta{Views: 1})
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testReactions(t *testing.T, s store.Store) {
	defer func() { _ = s.Close() }()

	n := seedNote(t, s, "author")
	other := seedNote(t, s, "author")

	update(t, s, func(tx store.Tx) error {
		for _, r := range []*models.Reaction{
			models.NewReaction(models.ReactionLike, n.ID, "u1"),
			models.NewReaction(models.ReactionLike, n.ID, "u2"),
			models.NewReaction(models.ReactionBookmark, n.ID, "u1"),
			models.NewReaction(models.ReactionLike, other.ID, "u1"),
		} {
			if err := tx.CreateReaction(r); err != nil {
				return err
			}
		}
		return nil
	})

	err := s.Update(context.Background(), func(tx store.Tx) error {
		return tx.CreateReaction(models.NewReaction(models.ReactionLike, n.ID, "u1"))
	})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	view(t, s, func(tx store.Tx) error {
		likes, err := tx.CountReactions(models.ReactionLike, n.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, likes)

		bookmarks, err := tx.CountReactions(models.ReactionBookmark, n.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, bookmarks)

		r, err := tx.GetReaction(models.ReactionBookmark, n.ID, "u1")
		require.NoError(t, err)
		assert.Equal(t, models.ReactionBookmark, r.Kind)
		assert.Equal(t, "u1", r.UserID)

		_, err = tx.GetReaction(models.ReactionBookmark, n.ID, "u2")
		assert.ErrorIs(t, err, store.ErrNotFound)

		mine, err := tx.ListReactionsByUser(models.ReactionLike, "u1")
		require.NoError(t, err)
		assert.Len(t, mine, 2)
		return nil
	})

	update(t, s, func(tx store.Tx) error {
		return tx.DeleteReaction(models.ReactionLike, n.ID, "u2")
	})
	err = s.Update(context.Background(), func(tx store.Tx) error {
		return tx.DeleteReaction(models.ReactionLike, n.ID, "u2")
	})
	assert.ErrorIs(t, err, store.ErrNotFound)

	var removed int
	update(t, s, func(tx store.Tx) error {
		var err error
		removed, err = tx.DeleteReactionsByNote(models.ReactionLike, n.ID)
		return err
	})
	assert.Equal(t, 1, removed)

	view(t, s, func(tx store.Tx) error {
		likes, err := tx.CountReactions(models.ReactionLike, n.ID)
		require.NoError(t, err)
		assert.Zero(t, likes)

		bookmarks, err := tx.CountReactions(models.ReactionBookmark, n.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, bookmarks, "deleting likes must not touch bookmarks")

		otherLikes, err := tx.CountReactions(models.ReactionLike, other.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, otherLikes)
		return nil
	})
}

func testViews(t *testing.T, s store.Store) {
	defer func() { _ = s.Close() }()

	n := seedNote(t, s, "author")

	update(t, s, func(tx store.Tx) error { return tx.CreateView(models.NewView(n.ID, "u1")) })
	err := s.Update(context.Background(), func(tx store.Tx) error {
		return tx.CreateView(models.NewView(n.ID, "u1"))
	})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	update(t, s, func(tx store.Tx) error {
		if err := tx.CreateView(models.NewView(n.ID, "")); err != nil {
			return err
		}
		return tx.CreateView(models.NewView(n.ID, ""))
	})

	view(t, s, func(tx store.Tx) error {
		ok, err := tx.HasView(n.ID, "u1")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = tx.HasView(n.ID, "u2")
		require.NoError(t, err)
		assert.False(t, ok)

		count, err := tx.CountViews(n.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
		return nil
	})

	var removed int
	update(t, s, func(tx store.Tx) error {
		var err error
		removed, err = tx.DeleteViewsByNote(n.ID)
		return err
	})
	assert.Equal(t, 3, removed)
}

func testComments(t *testing.T, s store.Store) {
	defer func() { _ = s.Close() }()

	n := seedNote(t, s, "author")
	base := time.Now().Add(-time.Hour).Truncate(time.Second)

	late := models.NewComment(n.ID, "u1", "late")
	late.CreatedAt = base.Add(2 * time.Second)
	tieB := models.NewComment(n.ID, "u2", "tie b")
	tieB.ID = "0000-b"
	tieB.CreatedAt = base
	tieA := models.NewComment(n.ID, "u2", "tie a")
	tieA.ID = "0000-a"
	tieA.CreatedAt = base
	tieA.ParentCommentID = "0000-b"
	tieA.Attachment = "/assets/file.pdf"
	foreign := models.NewComment("other-note", "u1", "elsewhere")

	update(t, s, func(tx store.Tx) error {
		for _, c := range []*models.Comment{late, tieB, tieA, foreign} {
			if err := tx.CreateComment(c); err != nil {
				return err
			}
		}
		return nil
	})

	view(t, s, func(tx store.Tx) error {
		list, err := tx.ListComments(n.ID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []string{"0000-a", "0000-b", late.ID}, []string{list[0].ID, list[1].ID, list[2].ID})
		assert.Equal(t, "0000-b", list[0].ParentCommentID)
		assert.Equal(t, "/assets/file.pdf", list[0].Attachment)
		assert.Empty(t, list[1].ParentCommentID)

		got, err := tx.GetComment(late.ID)
		require.NoError(t, err)
		assert.Equal(t, "late", got.Content)

		_, err = tx.GetComment("missing")
		assert.ErrorIs(t, err, store.ErrNotFound)

		count, err := tx.CountComments(n.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		empty, err := tx.ListComments("no-such-note")
		require.NoError(t, err)
		assert.NotNil(t, empty)
		return nil
	})

	var removed int
	update(t, s, func(tx store.Tx) error {
		var err error
		removed, err = tx.DeleteCommentsByNote(n.ID)
		return err
	})
	assert.Equal(t, 3, removed)

	view(t, s, func(tx store.Tx) error {
		_, err := tx.GetComment(late.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
		_, err = tx.GetComment(foreign.ID)
		assert.NoError(t, err)
		return nil
	})
}

func testNotifications(t *testing.T, s store.Store) {
	defer func() { _ = s.Close() }()

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	older := models.NewNotification("u1", models.KindLike, "older")
	older.CreatedAt = base
	older.NoteID = "n1"
	older.RelatedUserID = "u2"
	newer := models.NewNotification("u1", models.KindReply, "newer")
	newer.CreatedAt = base.Add(time.Minute)
	newer.CommentID = "c1"
	elsewhere := models.NewNotification("u9", models.KindFollow, "x")

	update(t, s, func(tx store.Tx) error {
		for _, n := range []*models.Notification{older, newer, elsewhere} {
			if err := tx.CreateNotification(n); err != nil {
				return err
			}
		}
		return nil
	})

	view(t, s, func(tx store.Tx) error {
		list, err := tx.ListNotifications("u1")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, newer.ID, list[0].ID)
		assert.Equal(t, older.ID, list[1].ID)
		assert.Equal(t, "n1", list[1].NoteID)
		assert.Equal(t, "u2", list[1].RelatedUserID)
		assert.Equal(t, "c1", list[0].CommentID)
		assert.Equal(t, models.KindReply, list[0].Kind)
		return nil
	})

	update(t, s, func(tx store.Tx) error { return tx.MarkNotificationRead(older.ID) })
	update(t, s, func(tx store.Tx) error { return tx.MarkNotificationRead(older.ID) })

	view(t, s, func(tx store.Tx) error {
		got, err := tx.GetNotification(older.ID)
		require.NoError(t, err)
		assert.True(t, got.IsRead)

		_, err = tx.GetNotification("missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
		return nil
	})

	err := s.Update(context.Background(), func(tx store.Tx) error {
		return tx.MarkNotificationRead("missing")
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testRollback(t *testing.T, s store.Store) {
	defer func() { _ = s.Close() }()

	n := seedNote(t, s, "author")

	err := s.Update(context.Background(), func(tx store.Tx) error {
		if err := tx.CreateReaction(models.NewReaction(models.ReactionLike, n.ID, "u1")); err != nil {
			return err
		}
		if err := tx.CreateComment(models.NewComment(n.ID, "u1", "hi")); err != nil {
			return err
		}
		if err := tx.DeleteNote(n.ID); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	view(t, s, func(tx store.Tx) error {
		_, err := tx.GetNote(n.ID)
		assert.NoError(t, err, "note must survive a rolled back delete")

		likes, err := tx.CountReactions(models.ReactionLike, n.ID)
		require.NoError(t, err)
		assert.Zero(t, likes)

		comments, err := tx.CountComments(n.ID)
		require.NoError(t, err)
		assert.Zero(t, comments)
		return nil
	})
}
