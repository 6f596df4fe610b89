// ABOUTME: Derived statistics for users and notes.
// ABOUTME: Always counted from child records, never from the denormalized note counters.

package social

import (
	"context"

	"github.com/harper/notely/internal/models"
	"github.com/harper/notely/internal/store"
)

// UserStats projects a user's notes, bookmarks, audience and follow counts.
// Views and likes are summed over the notes the user wrote.
func (e *Engine) UserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	var st models.UserStats
	err := e.view(ctx, "user stats", func(tx store.Tx) error {
		st = models.UserStats{}
		u, err := getUser(tx, userID)
		if err != nil {
			return err
		}
		st.Followers = len(u.Followers)
		st.Following = len(u.Following)

		notes, err := tx.ListNotesByAuthor(userID)
		if err != nil {
			return err
		}
		st.TotalNotes = len(notes)
		for _, n := range notes {
			if n.IsPublic {
				st.TotalPublicNotes++
			}
			ns, err := noteStats(tx, n.ID)
			if err != nil {
				return err
			}
			st.TotalViews += ns.Views
			st.TotalLikes += ns.Likes
		}

		marks, err := tx.ListReactionsByUser(models.ReactionBookmark, userID)
		if err != nil {
			return err
		}
		st.TotalBookmarks = len(marks)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// NoteStats counts a single note's views, likes, bookmarks and comments.
func (e *Engine) NoteStats(ctx context.Context, noteID string) (*models.NoteStats, error) {
	var st *models.NoteStats
	err := e.view(ctx, "note stats", func(tx store.Tx) error {
		if _, err := getNote(tx, noteID); err != nil {
			return err
		}
		var err error
		st, err = noteStats(tx, noteID)
		return err
	})
	return st, err
}

func noteStats(tx store.Tx, noteID string) (*models.NoteStats, error) {
	var (
		st  models.NoteStats
		err error
	)
	if st.Views, err = tx.CountViews(noteID); err != nil {
		return nil, err
	}
	if st.Likes, err = tx.CountReactions(models.ReactionLike, noteID); err != nil {
		return nil, err
	}
	if st.Bookmarks, err = tx.CountReactions(models.ReactionBookmark, noteID); err != nil {
		return nil, err
	}
	if st.Comments, err = tx.CountComments(noteID); err != nil {
		return nil, err
	}
	return &st, nil
}
