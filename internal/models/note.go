// ABOUTME: Note model representing a user-authored note with visibility and counters.
// ABOUTME: Provides constructor and methods for note lifecycle.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Counters are the denormalized interaction totals carried on a note.
// The authoritative values are always the child records; see social.ReconcileCounters.
type Counters struct {
	Views    int `json:"views"`
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
}

// CounterDelta is a signed adjustment applied to Counters.
type CounterDelta struct {
	Views    int
	Likes    int
	Comments int
}

// IsZero reports whether the delta changes nothing.
func (d CounterDelta) IsZero() bool {
	return d.Views == 0 && d.Likes == 0 && d.Comments == 0
}

// Apply returns c adjusted by d, never going below zero.
func (c Counters) Apply(d CounterDelta) Counters {
	return Counters{
		Views:    max(c.Views+d.Views, 0),
		Likes:    max(c.Likes+d.Likes, 0),
		Comments: max(c.Comments+d.Comments, 0),
	}
}

type Note struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsPublic  bool      `json:"isPublic"`
	Image     string    `json:"image,omitempty"`
	Counters  Counters  `json:"counters"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewNote(authorID, title, content string, isPublic bool) *Note {
	now := time.Now()
	return &Note{
		ID:        NewID(),
		AuthorID:  authorID,
		Title:     title,
		Content:   content,
		IsPublic:  isPublic,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (n *Note) Touch() {
	n.UpdatedAt = time.Now()
}

// NewID returns a time-ordered identifier. Records created later sort after
// earlier ones, which breaks createdAt ties in insertion order.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
