// ABOUTME: View operations using Badger KV storage.
// ABOUTME: Named views key on the visitor; anonymous views key on their own id.

package kv

import (
	"fmt"

	"github.com/harper/notely/internal/models"
)

const viewPrefix = "view"

// ViewData represents a view stored in KV.
type ViewData struct {
	ID        string `json:"id"`
	NoteID    string `json:"note_id"`
	UserID    string `json:"user_id"`
	CreatedAt int64  `json:"created_at"`
}

func viewKey(v *models.View) []byte {
	if v.IsAnonymous() {
		return key(viewPrefix, v.NoteID, models.AnonymousUser+"/"+v.ID)
	}
	return key(viewPrefix, v.NoteID, v.UserID)
}

func (t *kvTxn) HasView(noteID, userID string) (bool, error) {
	return t.exists(key(viewPrefix, noteID, userID))
}

func (t *kvTxn) CreateView(v *models.View) error {
	data := &ViewData{ID: v.ID, NoteID: v.NoteID, UserID: v.UserID, CreatedAt: v.CreatedAt.UnixNano()}
	if err := t.insert(viewKey(v), data); err != nil {
		return fmt.Errorf("create view: %w", err)
	}
	return nil
}

func (t *kvTxn) CountViews(noteID string) (int, error) {
	return t.count(prefix(viewPrefix, noteID)), nil
}

func (t *kvTxn) DeleteViewsByNote(noteID string) (int, error) {
	return t.deletePrefix(prefix(viewPrefix, noteID))
}
