// ABOUTME: Like and bookmark toggles with their read-side counts.
// ABOUTME: The store's per-(note, user) uniqueness backs the at-most-one rule.

package social

import (
	"context"
	"errors"

	"github.com/harper/notely/internal/models"
	"github.com/harper/notely/internal/store"
)

// ToggleLike likes the note for userID, or removes the like. It returns
// whether the note is now liked. Liking someone else's note notifies its author.
func (e *Engine) ToggleLike(ctx context.Context, noteID, userID string) (bool, error) {
	return e.toggleReaction(ctx, models.ReactionLike, noteID, userID)
}

// ToggleBookmark bookmarks the note for userID, or removes the bookmark.
func (e *Engine) ToggleBookmark(ctx context.Context, noteID, userID string) (bool, error) {
	return e.toggleReaction(ctx, models.ReactionBookmark, noteID, userID)
}

func (e *Engine) toggleReaction(ctx context.Context, kind models.ReactionKind, noteID, userID string) (bool, error) {
	if userID == "" {
		return false, invalid("user id is required to %s a note", kind)
	}
	if noteID == "" {
		return false, invalid("note id is required")
	}

	var (
		active   bool
		authorID string
	)
	err := e.update(ctx, "toggle "+string(kind), func(tx store.Tx) error {
		note, err := getNote(tx, noteID)
		if err != nil {
			return err
		}
		authorID = note.AuthorID

		delta := 1
		_, err = tx.GetReaction(kind, noteID, userID)
		switch {
		case err == nil:
			active = false
			delta = -1
			err = tx.DeleteReaction(kind, noteID, userID)
		case errors.Is(err, store.ErrNotFound):
			active = true
			err = tx.CreateReaction(models.NewReaction(kind, noteID, userID))
		}
		if err != nil {
			return err
		}

		if kind == models.ReactionLike {
			return tx.AdjustNoteCounters(noteID, models.CounterDelta{Likes: delta})
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	if kind == models.ReactionLike && active {
		e.fanout(ctx, Event{Kind: models.KindLike, RecipientID: authorID, ActorID: userID, NoteID: noteID})
	}
	return active, nil
}

// HasLiked reports whether userID currently likes noteID.
func (e *Engine) HasLiked(ctx context.Context, noteID, userID string) (bool, error) {
	return e.hasReaction(ctx, models.ReactionLike, noteID, userID)
}

// HasBookmarked reports whether userID currently bookmarks noteID.
func (e *Engine) HasBookmarked(ctx context.Context, noteID, userID string) (bool, error) {
	return e.hasReaction(ctx, models.ReactionBookmark, noteID, userID)
}

func (e *Engine) hasReaction(ctx context.Context, kind models.ReactionKind, noteID, userID string) (bool, error) {
	var ok bool
	err := e.view(ctx, "check "+string(kind), func(tx store.Tx) error {
		_, err := tx.GetReaction(kind, noteID, userID)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		ok = err == nil
		return err
	})
	return ok, err
}

// CountLikes counts the like records for a note.
func (e *Engine) CountLikes(ctx context.Context, noteID string) (int, error) {
	return e.countReactions(ctx, models.ReactionLike, noteID)
}

// CountBookmarks counts the bookmark records for a note.
func (e *Engine) CountBookmarks(ctx context.Context, noteID string) (int, error) {
	return e.countReactions(ctx, models.ReactionBookmark, noteID)
}

func (e *Engine) countReactions(ctx context.Context, kind models.ReactionKind, noteID string) (int, error) {
	var n int
	err := e.view(ctx, "count "+string(kind)+"s", func(tx store.Tx) error {
		var err error
		n, err = tx.CountReactions(kind, noteID)
		return err
	})
	return n, err
}

// ListBookmarkedNotes returns the notes userID bookmarked, most recent
// bookmark first. Bookmarks of notes that no longer exist are skipped.
func (e *Engine) ListBookmarkedNotes(ctx context.Context, userID string) ([]*models.Note, error) {
	notes := []*models.Note{}
	err := e.view(ctx, "list bookmarks", func(tx store.Tx) error {
		marks, err := tx.ListReactionsByUser(models.ReactionBookmark, userID)
		if err != nil {
			return err
		}
		for _, m := range marks {
			n, err := tx.GetNote(m.NoteID)
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			notes = append(notes, n)
		}
		return nil
	})
	return notes, err
}
