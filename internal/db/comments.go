// ABOUTME: Database operations for comments.
// ABOUTME: Comments are flat rows ordered by (created_at, id).

package db

import (
	"fmt"

	"github.com/harper/notely/internal/models"
)

const commentColumns = `id, note_id, author_id, content, parent_comment_id, attachment, created_at`

func (t *txn) CreateComment(c *models.Comment) error {
	_, err := t.exec(
		`INSERT INTO comments (`+commentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.NoteID, c.AuthorID, c.Content, c.ParentCommentID, c.Attachment, toNanos(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (t *txn) GetComment(id string) (*models.Comment, error) {
	row := t.tx.QueryRowContext(t.ctx, `SELECT `+commentColumns+` FROM comments WHERE id = ?`, id)
	c, err := scanComment(row)
	if err != nil {
		return nil, fmt.Errorf("get comment %s: %w", id, mapErr(err))
	}
	return c, nil
}

func (t *txn) ListComments(noteID string) ([]*models.Comment, error) {
	rows, err := t.tx.QueryContext(t.ctx,
		`SELECT `+commentColumns+` FROM comments WHERE note_id = ? ORDER BY created_at ASC, id ASC`,
		noteID,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	defer func() { _ = rows.Close() }()

	comments := []*models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (t *txn) CountComments(noteID string) (int, error) {
	return t.count(`SELECT COUNT(*) FROM comments WHERE note_id = ?`, noteID)
}

func (t *txn) DeleteCommentsByNote(noteID string) (int, error) {
	return t.execCount(`DELETE FROM comments WHERE note_id = ?`, noteID)
}

func scanComment(s scanner) (*models.Comment, error) {
	c := &models.Comment{}
	var created int64
	if err := s.Scan(&c.ID, &c.NoteID, &c.AuthorID, &c.Content, &c.ParentCommentID, &c.Attachment, &created); err != nil {
		return nil, err
	}
	c.CreatedAt = fromNanos(created)
	return c, nil
}
