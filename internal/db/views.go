// ABOUTME: Database operations for note views.
// ABOUTME: A partial unique index allows repeated anonymous rows only.

package db

import (
	"fmt"

	"github.com/harper/notely/internal/models"
)

func (t *txn) HasView(noteID, userID string) (bool, error) {
	n, err := t.count(`SELECT COUNT(*) FROM views WHERE note_id = ? AND user_id = ?`, noteID, userID)
	return n > 0, err
}

func (t *txn) CreateView(v *models.View) error {
	_, err := t.exec(
		`INSERT INTO views (id, note_id, user_id, created_at) VALUES (?, ?, ?, ?)`,
		v.ID, v.NoteID, v.UserID, toNanos(v.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}
	return nil
}

func (t *txn) CountViews(noteID string) (int, error) {
	return t.count(`SELECT COUNT(*) FROM views WHERE note_id = ?`, noteID)
}

func (t *txn) DeleteViewsByNote(noteID string) (int, error) {
	return t.execCount(`DELETE FROM views WHERE note_id = ?`, noteID)
}
