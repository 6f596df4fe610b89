// ABOUTME: Notification operations using Badger KV storage.
// ABOUTME: A notification-user:<user>:<id> index backs per-recipient listing.

package kv

import (
	"fmt"
	"sort"

	"github.com/harper/notely/internal/models"
)

const (
	notificationPrefix     = "notification"
	notificationUserPrefix = "notification-user"
)

// NotificationData represents a notification stored in KV.
type NotificationData struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	Kind          string `json:"kind"`
	Message       string `json:"message"`
	NoteID        string `json:"note_id,omitempty"`
	CommentID     string `json:"comment_id,omitempty"`
	RelatedUserID string `json:"related_user_id,omitempty"`
	IsRead        bool   `json:"is_read"`
	CreatedAt     int64  `json:"created_at"`
}

// ToModel converts NotificationData to a models.Notification.
func (n *NotificationData) ToModel() *models.Notification {
	return &models.Notification{
		ID:            n.ID,
		UserID:        n.UserID,
		Kind:          models.NotificationKind(n.Kind),
		Message:       n.Message,
		NoteID:        n.NoteID,
		CommentID:     n.CommentID,
		RelatedUserID: n.RelatedUserID,
		IsRead:        n.IsRead,
		CreatedAt:     fromNanos(n.CreatedAt),
	}
}

// FromNotificationModel creates NotificationData from a models.Notification.
func FromNotificationModel(n *models.Notification) *NotificationData {
	return &NotificationData{
		ID:            n.ID,
		UserID:        n.UserID,
		Kind:          string(n.Kind),
		Message:       n.Message,
		NoteID:        n.NoteID,
		CommentID:     n.CommentID,
		RelatedUserID: n.RelatedUserID,
		IsRead:        n.IsRead,
		CreatedAt:     n.CreatedAt.UnixNano(),
	}
}

func (t *kvTxn) CreateNotification(n *models.Notification) error {
	if err := t.insert(key(notificationPrefix, n.ID), FromNotificationModel(n)); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return t.txn.Set(key(notificationUserPrefix, n.UserID, n.ID), nil)
}

func (t *kvTxn) GetNotification(id string) (*models.Notification, error) {
	var data NotificationData
	if err := t.get(key(notificationPrefix, id), &data); err != nil {
		return nil, fmt.Errorf("get notification %s: %w", id, err)
	}
	return data.ToModel(), nil
}

func (t *kvTxn) MarkNotificationRead(id string) error {
	var data NotificationData
	k := key(notificationPrefix, id)
	if err := t.get(k, &data); err != nil {
		return fmt.Errorf("mark notification %s read: %w", id, err)
	}
	if data.IsRead {
		return nil
	}
	data.IsRead = true
	return t.set(k, &data)
}

func (t *kvTxn) ListNotifications(userID string) ([]*models.Notification, error) {
	p := prefix(notificationUserPrefix, userID)
	out := []*models.Notification{}
	for _, k := range t.keys(p) {
		n, err := t.GetNotification(string(k[len(p):]))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
