// ABOUTME: Comment operations using Badger KV storage.
// ABOUTME: Comments live under comment:<note>:<id> with a comment-id:<id> back-reference.

package kv

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/harper/notely/internal/models"
)

const (
	commentPrefix   = "comment"
	commentIDPrefix = "comment-id"
)

// CommentData represents a comment stored in KV.
type CommentData struct {
	ID              string `json:"id"`
	NoteID          string `json:"note_id"`
	AuthorID        string `json:"author_id"`
	Content         string `json:"content"`
	ParentCommentID string `json:"parent_comment_id,omitempty"`
	Attachment      string `json:"attachment,omitempty"`
	CreatedAt       int64  `json:"created_at"`
}

// ToModel converts CommentData to a models.Comment.
func (c *CommentData) ToModel() *models.Comment {
	return &models.Comment{
		ID:              c.ID,
		NoteID:          c.NoteID,
		AuthorID:        c.AuthorID,
		Content:         c.Content,
		ParentCommentID: c.ParentCommentID,
		Attachment:      c.Attachment,
		CreatedAt:       fromNanos(c.CreatedAt),
	}
}

// FromCommentModel creates CommentData from a models.Comment.
func FromCommentModel(c *models.Comment) *CommentData {
	return &CommentData{
		ID:              c.ID,
		NoteID:          c.NoteID,
		AuthorID:        c.AuthorID,
		Content:         c.Content,
		ParentCommentID: c.ParentCommentID,
		Attachment:      c.Attachment,
		CreatedAt:       c.CreatedAt.UnixNano(),
	}
}

// noteRef is the value stored under comment-id:<id>.
type noteRef struct {
	NoteID string `json:"note_id"`
}

func (t *kvTxn) CreateComment(c *models.Comment) error {
	if err := t.insert(key(commentIDPrefix, c.ID), noteRef{NoteID: c.NoteID}); err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return t.set(key(commentPrefix, c.NoteID, c.ID), FromCommentModel(c))
}

func (t *kvTxn) GetComment(id string) (*models.Comment, error) {
	var ref noteRef
	if err := t.get(key(commentIDPrefix, id), &ref); err != nil {
		return nil, fmt.Errorf("get comment %s: %w", id, err)
	}
	var data CommentData
	if err := t.get(key(commentPrefix, ref.NoteID, id), &data); err != nil {
		return nil, fmt.Errorf("get comment %s: %w", id, err)
	}
	return data.ToModel(), nil
}

func (t *kvTxn) ListComments(noteID string) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	err := t.scan(prefix(commentPrefix, noteID), func(_, val []byte) error {
		var data CommentData
		if err := json.Unmarshal(val, &data); err != nil {
			return fmt.Errorf("unmarshal comment: %w", err)
		}
		comments = append(comments, data.ToModel())
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

func (t *kvTxn) CountComments(noteID string) (int, error) {
	return t.count(prefix(commentPrefix, noteID)), nil
}

func (t *kvTxn) DeleteCommentsByNote(noteID string) (int, error) {
	p := prefix(commentPrefix, noteID)
	ks := t.keys(p)
	for _, k := range ks {
		id := string(k[len(p):])
		if err := t.txn.Delete(key(commentIDPrefix, id)); err != nil {
			return 0, err
		}
		if err := t.txn.Delete(k); err != nil {
			return 0, err
		}
	}
	return len(ks), nil
}
