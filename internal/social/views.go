// ABOUTME: View tracking: one view per signed-in visitor, every anonymous visit counted.

package social

import (
	"context"

	"github.com/harper/notely/internal/models"
	"github.com/harper/notely/internal/store"
)

// RecordView records that userID viewed the note and reports whether a new
// view was stored. An empty userID (or "anonymous") always records a view.
func (e *Engine) RecordView(ctx context.Context, noteID, userID string) (bool, error) {
	if noteID == "" {
		return false, invalid("note id is required")
	}
	if userID == models.AnonymousUser {
		userID = ""
	}

	var recorded bool
	err := e.update(ctx, "record view", func(tx store.Tx) error {
		recorded = false
		if _, err := getNote(tx, noteID); err != nil {
			return err
		}
		if userID != "" {
			seen, err := tx.HasView(noteID, userID)
			if err != nil || seen {
				return err
			}
		}
		if err := tx.CreateView(models.NewView(noteID, userID)); err != nil {
			return err
		}
		recorded = true
		return tx.AdjustNoteCounters(noteID, models.CounterDelta{Views: 1})
	})
	if err != nil {
		return false, err
	}
	return recorded, nil
}

// CountViews counts the view records for a note.
func (e *Engine) CountViews(ctx context.Context, noteID string) (int, error) {
	var n int
	err := e.view(ctx, "count views", func(tx store.Tx) error {
		var err error
		n, err = tx.CountViews(noteID)
		return err
	})
	return n, err
}
