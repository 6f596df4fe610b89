// ABOUTME: View model recording a single visit to a note.
// ABOUTME: Anonymous visits share the AnonymousUser id and are never deduplicated.

package models

import "time"

// AnonymousUser is stored as the user id of views without a known visitor.
const AnonymousUser = "anonymous"

type View struct {
	ID        string    `json:"id"`
	NoteID    string    `json:"noteId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewView(noteID, userID string) *View {
	if userID == "" {
		userID = AnonymousUser
	}
	return &View{
		ID:        NewID(),
		NoteID:    noteID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
}

// IsAnonymous reports whether the view has no known visitor.
func (v *View) IsAnonymous() bool {
	return v.UserID == AnonymousUser
}
