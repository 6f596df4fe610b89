// ABOUTME: Cascade deletion of a note with its dependents, and counter reconciliation.
// ABOUTME: Both run as a single transaction so they never leave partial state.

package social

import (
	"context"

	"github.com/harper/notely/internal/models"
	"github.com/harper/notely/internal/store"
	"github.com/sirupsen/logrus"
)

// CascadeResult counts what a cascade deletion removed.
type CascadeResult struct {
	Comments  int `json:"comments"`
	Likes     int `json:"likes"`
	Bookmarks int `json:"bookmarks"`
	Views     int `json:"views"`
}

// CascadeDeleteNote deletes a note together with its comments, likes,
// bookmarks and views. Notifications that mention the note are left alone.
func (e *Engine) CascadeDeleteNote(ctx context.Context, noteID string) (*CascadeResult, error) {
	var res CascadeResult
	err := e.update(ctx, "delete note", func(tx store.Tx) error {
		res = CascadeResult{}
		if _, err := getNote(tx, noteID); err != nil {
			return err
		}

		var err error
		if res.Comments, err = tx.DeleteCommentsByNote(noteID); err != nil {
			return err
		}
		if res.Likes, err = tx.DeleteReactionsByNote(models.ReactionLike, noteID); err != nil {
			return err
		}
		if res.Bookmarks, err = tx.DeleteReactionsByNote(models.ReactionBookmark, noteID); err != nil {
			return err
		}
		if res.Views, err = tx.DeleteViewsByNote(noteID); err != nil {
			return err
		}
		return tx.DeleteNote(noteID)
	})
	if err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"note":      noteID,
		"comments":  res.Comments,
		"likes":     res.Likes,
		"bookmarks": res.Bookmarks,
		"views":     res.Views,
	}).Info("note deleted")
	return &res, nil
}

// ReconcileCounters rewrites a note's denormalized counters from its child
// records. It reports whether the stored counters had drifted.
func (e *Engine) ReconcileCounters(ctx context.Context, noteID string) (bool, error) {
	var fixed bool
	err := e.update(ctx, "reconcile counters", func(tx store.Tx) error {
		fixed = false
		note, err := getNote(tx, noteID)
		if err != nil {
			return err
		}
		st, err := noteStats(tx, noteID)
		if err != nil {
			return err
		}

		want := models.Counters{Views: st.Views, Likes: st.Likes, Comments: st.Comments}
		if note.Counters == want {
			return nil
		}
		fixed = true
		return tx.SetNoteCounters(noteID, want)
	})
	if err != nil {
		return false, err
	}
	if fixed {
		e.log.WithField("note", noteID).Warn("note counters drifted; reconciled")
	}
	return fixed, nil
}
