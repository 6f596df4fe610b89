// ABOUTME: Comment model and the tree node used for threaded replies.
// ABOUTME: Comments are flat rows; CommentNode carries the assembled replies.

package models

import "time"

type Comment struct {
	ID              string    `json:"id"`
	NoteID          string    `json:"noteId"`
	AuthorID        string    `json:"authorId"`
	Content         string    `json:"content"`
	ParentCommentID string    `json:"parentCommentId,omitempty"`
	Attachment      string    `json:"attachment,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

func NewComment(noteID, authorID, content string) *Comment {
	return &Comment{
		ID:        NewID(),
		NoteID:    noteID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// IsReply reports whether the comment points at a parent.
func (c *Comment) IsReply() bool {
	return c.ParentCommentID != ""
}

// CommentNode is a comment with its nested replies.
type CommentNode struct {
	*Comment
	Replies []*CommentNode `json:"replies"`
}

// Walk visits n and its replies depth-first, passing the nesting depth.
func (n *CommentNode) Walk(fn func(node *CommentNode, depth int)) {
	n.walk(fn, 0)
}

func (n *CommentNode) walk(fn func(*CommentNode, int), depth int) {
	fn(n, depth)
	for _, r := range n.Replies {
		r.walk(fn, depth+1)
	}
}
