// ABOUTME: Reaction model covering likes and bookmarks.
// ABOUTME: A reaction is unique per (kind, note, user).

package models

import "time"

type ReactionKind string

const (
	ReactionLike     ReactionKind = "like"
	ReactionBookmark ReactionKind = "bookmark"
)

// Valid reports whether k is a known reaction kind.
func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionBookmark
}

type Reaction struct {
	Kind      ReactionKind `json:"-"`
	NoteID    string       `json:"noteId"`
	UserID    string       `json:"userId"`
	CreatedAt time.Time    `json:"createdAt"`
}

func NewReaction(kind ReactionKind, noteID, userID string) *Reaction {
	return &Reaction{
		Kind:      kind,
		NoteID:    noteID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
}
