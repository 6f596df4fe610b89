// ABOUTME: Notification model produced by the fanout for social events.
// ABOUTME: Defines the notification kinds and the read flag.

package models

import "time"

type NotificationKind string

const (
	KindLike    NotificationKind = "like"
	KindComment NotificationKind = "comment"
	KindReply   NotificationKind = "reply"
	KindFollow  NotificationKind = "follow"
	KindShare   NotificationKind = "share"
)

type Notification struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	Kind          NotificationKind `json:"kind"`
	Message       string           `json:"message"`
	NoteID        string           `json:"noteId,omitempty"`
	CommentID     string           `json:"commentId,omitempty"`
	RelatedUserID string           `json:"relatedUserId,omitempty"`
	IsRead        bool             `json:"isRead"`
	CreatedAt     time.Time        `json:"createdAt"`
}

func NewNotification(recipientID string, kind NotificationKind, message string) *Notification {
	return &Notification{
		ID:        NewID(),
		UserID:    recipientID,
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
	}
}
