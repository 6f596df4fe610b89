// ABOUTME: Database operations for notes and their denormalized counters.
// ABOUTME: Provides create, read, update, counter adjustment, and delete.

package db

import (
	"database/sql"
	"fmt"

	"github.com/harper/notely/internal/models"
)

const noteColumns = `id, author_id, title, content, is_public, image,
    views_count, likes_count, comments_count, created_at, updated_at`

func (t *txn) CreateNote(n *models.Note) error {
	_, err := t.exec(
		`INSERT INTO notes (`+noteColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.AuthorID, n.Title, n.Content, boolInt(n.IsPublic), n.Image,
		n.Counters.Views, n.Counters.Likes, n.Counters.Comments,
		toNanos(n.CreatedAt), toNanos(n.UpdatedAt),
	)
	return err
}

func (t *txn) GetNote(id string) (*models.Note, error) {
	row := t.tx.QueryRowContext(t.ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if err != nil {
		return nil, fmt.Errorf("get note %s: %w", id, mapErr(err))
	}
	return n, nil
}

func (t *txn) UpdateNote(n *models.Note) error {
	err := t.execOne(
		`UPDATE notes SET title = ?, content = ?, is_public = ?, image = ?, updated_at = ? WHERE id = ?`,
		n.Title, n.Content, boolInt(n.IsPublic), n.Image, toNanos(n.UpdatedAt), n.ID,
	)
	if err != nil {
		return fmt.Errorf("update note %s: %w", n.ID, err)
	}
	return nil
}

func (t *txn) AdjustNoteCounters(id string, d models.CounterDelta) error {
	err := t.execOne(
		`UPDATE notes SET
		    views_count = MAX(views_count + ?, 0),
		    likes_count = MAX(likes_count + ?, 0),
		    comments_count = MAX(comments_count + ?, 0)
		 WHERE id = ?`,
		d.Views, d.Likes, d.Comments, id,
	)
	if err != nil {
		return fmt.Errorf("adjust counters for %s: %w", id, err)
	}
	return nil
}

func (t *txn) SetNoteCounters(id string, c models.Counters) error {
	err := t.execOne(
		`UPDATE notes SET views_count = ?, likes_count = ?, comments_count = ? WHERE id = ?`,
		c.Views, c.Likes, c.Comments, id,
	)
	if err != nil {
		return fmt.Errorf("set counters for %s: %w", id, err)
	}
	return nil
}

func (t *txn) DeleteNote(id string) error {
	if err := t.execOne(`DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	return nil
}

// ListNotesByAuthor lists an author's notes, or every note when authorID is empty.
func (t *txn) ListNotesByAuthor(authorID string) ([]*models.Note, error) {
	rows, err := t.tx.QueryContext(t.ctx,
		`SELECT `+noteColumns+` FROM notes WHERE (? = '' OR author_id = ?) ORDER BY created_at DESC, id DESC`,
		authorID, authorID,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	defer func() { _ = rows.Close() }()

	notes := []*models.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

type scanner interface {
	Scan(dest ...any) error
}

var _ scanner = (*sql.Row)(nil)

func scanNote(s scanner) (*models.Note, error) {
	n := &models.Note{}
	var public int
	var created, updated int64
	err := s.Scan(
		&n.ID, &n.AuthorID, &n.Title, &n.Content, &public, &n.Image,
		&n.Counters.Views, &n.Counters.Likes, &n.Counters.Comments,
		&created, &updated,
	)
	if err != nil {
		return nil, err
	}
	n.IsPublic = public != 0
	n.CreatedAt = fromNanos(created)
	n.UpdatedAt = fromNanos(updated)
	return n, nil
}
