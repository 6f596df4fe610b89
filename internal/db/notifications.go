// ABOUTME: Database operations for notifications.
// ABOUTME: Lists are returned newest first; marking read is idempotent.

package db

import (
	"fmt"

	"github.com/harper/notely/internal/models"
)

const notificationColumns = `id, user_id, kind, message, note_id, comment_id, related_user_id, is_read, created_at`

func (t *txn) CreateNotification(n *models.Notification) error {
	_, err := t.exec(
		`INSERT INTO notifications (`+notificationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, string(n.Kind), n.Message, n.NoteID, n.CommentID, n.RelatedUserID,
		boolInt(n.IsRead), toNanos(n.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (t *txn) GetNotification(id string) (*models.Notification, error) {
	row := t.tx.QueryRowContext(t.ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = ?`, id)
	n, err := scanNotification(row)
	if err != nil {
		return nil, fmt.Errorf("get notification %s: %w", id, mapErr(err))
	}
	return n, nil
}

func (t *txn) MarkNotificationRead(id string) error {
	// Matching on id alone keeps an already-read row in the affected count.
	if err := t.execOne(`UPDATE notifications SET is_read = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark notification %s read: %w", id, err)
	}
	return nil
}

func (t *txn) ListNotifications(userID string) ([]*models.Notification, error) {
	rows, err := t.tx.QueryContext(t.ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	defer func() { _ = rows.Close() }()

	out := []*models.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func scanNotification(s scanner) (*models.Notification, error) {
	n := &models.Notification{}
	var kind string
	var read int
	var created int64
	err := s.Scan(&n.ID, &n.UserID, &kind, &n.Message, &n.NoteID, &n.CommentID, &n.RelatedUserID, &read, &created)
	if err != nil {
		return nil, err
	}
	n.Kind = models.NotificationKind(kind)
	n.IsRead = read != 0
	n.CreatedAt = fromNanos(created)
	return n, nil
}
