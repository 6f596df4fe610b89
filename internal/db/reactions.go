// ABOUTME: Database operations for likes and bookmarks.
// ABOUTME: The (note_id, user_id) primary key enforces one reaction per pair.

package db

import (
	"fmt"

	"github.com/harper/notely/internal/models"
)

func reactionTable(kind models.ReactionKind) (string, error) {
	switch kind {
	case models.ReactionLike:
		return "likes", nil
	case models.ReactionBookmark:
		return "bookmarks", nil
	}
	return "", fmt.Errorf("unknown reaction kind %q", kind)
}

func (t *txn) GetReaction(kind models.ReactionKind, noteID, userID string) (*models.Reaction, error) {
	table, err := reactionTable(kind)
	if err != nil {
		return nil, err
	}
	var created int64
	err = t.tx.QueryRowContext(t.ctx,
		`SELECT created_at FROM `+table+` WHERE note_id = ? AND user_id = ?`, noteID, userID,
	).Scan(&created)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", kind, mapErr(err))
	}
	return &models.Reaction{Kind: kind, NoteID: noteID, UserID: userID, CreatedAt: fromNanos(created)}, nil
}

func (t *txn) CreateReaction(r *models.Reaction) error {
	table, err := reactionTable(r.Kind)
	if err != nil {
		return err
	}
	_, err = t.exec(
		`INSERT INTO `+table+` (note_id, user_id, created_at) VALUES (?, ?, ?)`,
		r.NoteID, r.UserID, toNanos(r.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create %s: %w", r.Kind, err)
	}
	return nil
}

func (t *txn) DeleteReaction(kind models.ReactionKind, noteID, userID string) error {
	table, err := reactionTable(kind)
	if err != nil {
		return err
	}
	if err := t.execOne(`DELETE FROM `+table+` WHERE note_id = ? AND user_id = ?`, noteID, userID); err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	return nil
}

func (t *txn) CountReactions(kind models.ReactionKind, noteID string) (int, error) {
	table, err := reactionTable(kind)
	if err != nil {
		return 0, err
	}
	return t.count(`SELECT COUNT(*) FROM `+table+` WHERE note_id = ?`, noteID)
}

func (t *txn) ListReactionsByUser(kind models.ReactionKind, userID string) ([]*models.Reaction, error) {
	table, err := reactionTable(kind)
	if err != nil {
		return nil, err
	}
	rows, err := t.tx.QueryContext(t.ctx,
		`SELECT note_id, created_at FROM `+table+` WHERE user_id = ? ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	defer func() { _ = rows.Close() }()

	out := []*models.Reaction{}
	for rows.Next() {
		r := &models.Reaction{Kind: kind, UserID: userID}
		var created int64
		if err := rows.Scan(&r.NoteID, &created); err != nil {
			return nil, err
		}
		r.CreatedAt = fromNanos(created)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (t *txn) DeleteReactionsByNote(kind models.ReactionKind, noteID string) (int, error) {
	table, err := reactionTable(kind)
	if err != nil {
		return 0, err
	}
	return t.execCount(`DELETE FROM `+table+` WHERE note_id = ?`, noteID)
}
