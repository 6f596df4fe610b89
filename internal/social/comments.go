// ABOUTME: Threaded comments: flat storage, tree assembly on read.
// ABOUTME: Replies notify the parent's author, root comments notify the note's author.

package social

import (
	"context"
	"errors"
	"slices"

	"github.com/harper/notely/internal/models"
	"github.com/harper/notely/internal/store"
)

// CommentInput is a new comment; blank content is rejected.
type CommentInput struct {
	NoteID          string `validate:"required"`
	AuthorID        string `validate:"required"`
	Content         string `validate:"required,notblank"`
	ParentCommentID string
	// Attachment is an opaque reference supplied by the upload layer.
	Attachment string `validate:"omitempty,max=1024"`
}

// AddComment stores a comment (or a reply when ParentCommentID is set) and
// returns it as a node with no replies.
func (e *Engine) AddComment(ctx context.Context, in CommentInput) (*models.CommentNode, error) {
	if err := e.check(in); err != nil {
		return nil, err
	}

	var (
		c  *models.Comment
		ev Event
	)
	err := e.update(ctx, "add comment", func(tx store.Tx) error {
		if _, err := tx.GetUser(in.AuthorID); errors.Is(err, store.ErrNotFound) {
			return invalid("author %s does not exist", in.AuthorID)
		} else if err != nil {
			return err
		}
		note, err := tx.GetNote(in.NoteID)
		if errors.Is(err, store.ErrNotFound) {
			return invalid("note %s does not exist", in.NoteID)
		} else if err != nil {
			return err
		}

		ev = Event{Kind: models.KindComment, RecipientID: note.AuthorID, ActorID: in.AuthorID, NoteID: note.ID}
		if in.ParentCommentID != "" {
			parent, err := tx.GetComment(in.ParentCommentID)
			if errors.Is(err, store.ErrNotFound) || (err == nil && parent.NoteID != note.ID) {
				return invalid("parent comment %s is not on note %s", in.ParentCommentID, note.ID)
			} else if err != nil {
				return err
			}
			ev.Kind = models.KindReply
			ev.RecipientID = parent.AuthorID
		}

		c = models.NewComment(note.ID, in.AuthorID, in.Content)
		c.ParentCommentID = in.ParentCommentID
		c.Attachment = in.Attachment
		ev.CommentID = c.ID
		if err := tx.CreateComment(c); err != nil {
			return err
		}
		return tx.AdjustNoteCounters(note.ID, models.CounterDelta{Comments: 1})
	})
	if err != nil {
		return nil, err
	}

	e.fanout(ctx, ev)
	return &models.CommentNode{Comment: c, Replies: []*models.CommentNode{}}, nil
}

// GetCommentTree returns the note's root comments with replies nested under
// them, each level in creation order.
func (e *Engine) GetCommentTree(ctx context.Context, noteID string) ([]*models.CommentNode, error) {
	var comments []*models.Comment
	err := e.view(ctx, "get comments", func(tx store.Tx) error {
		var err error
		comments, err = tx.ListComments(noteID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return BuildCommentTree(comments), nil
}

// CountComments counts the comment records for a note, replies included.
func (e *Engine) CountComments(ctx context.Context, noteID string) (int, error) {
	var n int
	err := e.view(ctx, "count comments", func(tx store.Tx) error {
		var err error
		n, err = tx.CountComments(noteID)
		return err
	})
	return n, err
}

// BuildCommentTree assembles ordered comments into a forest. A comment whose
// parent is missing from the list becomes a root, and so does the first
// comment of any parent cycle, so every comment appears exactly once.
func BuildCommentTree(comments []*models.Comment) []*models.CommentNode {
	nodes := make(map[string]*models.CommentNode, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &models.CommentNode{Comment: c, Replies: []*models.CommentNode{}}
	}

	parents := make(map[*models.CommentNode]*models.CommentNode, len(comments))
	for _, c := range comments {
		n := nodes[c.ID]
		if p, ok := nodes[c.ParentCommentID]; ok && c.ParentCommentID != "" && p != n {
			p.Replies = append(p.Replies, n)
			parents[n] = p
		}
	}

	reached := make(map[*models.CommentNode]bool, len(comments))
	mark := func(root *models.CommentNode) {
		stack := []*models.CommentNode{root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if reached[n] {
				continue
			}
			reached[n] = true
			stack = append(stack, n.Replies...)
		}
	}
	for _, c := range comments {
		if n := nodes[c.ID]; parents[n] == nil {
			mark(n)
		}
	}
	// Anything unreached hangs off a parent cycle; cut the cycle at its first member.
	for _, c := range comments {
		n := nodes[c.ID]
		if reached[n] {
			continue
		}
		p := parents[n]
		p.Replies = slices.DeleteFunc(p.Replies, func(r *models.CommentNode) bool { return r == n })
		delete(parents, n)
		mark(n)
	}

	roots := []*models.CommentNode{}
	for _, c := range comments {
		if n := nodes[c.ID]; parents[n] == nil {
			roots = append(roots, n)
		}
	}
	return roots
}
