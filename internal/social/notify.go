// ABOUTME: Notification fanout, read acknowledgement and listing.
// ABOUTME: Fanout is best effort: it runs after the triggering write and only logs failures.

package social

import (
	"context"
	"errors"
	"fmt"

	"github.com/harper/notely/internal/models"
	"github.com/harper/notely/internal/store"
	"github.com/sirupsen/logrus"
)

var messageTemplates = map[models.NotificationKind]string{
	models.KindLike:    "%s liked your note",
	models.KindComment: "%s commented on your note",
	models.KindReply:   "%s replied to your comment",
	models.KindFollow:  "%s started following you",
	models.KindShare:   "%s shared a note with you",
}

// Message renders the notification text for kind. Unknown kinds yield "".
func Message(kind models.NotificationKind, actorName string) string {
	tmpl, ok := messageTemplates[kind]
	if !ok {
		return ""
	}
	return fmt.Sprintf(tmpl, actorName)
}

// Event describes an interaction that may notify someone.
type Event struct {
	Kind        models.NotificationKind
	RecipientID string
	ActorID     string
	NoteID      string
	CommentID   string
}

func (ev Event) fields() logrus.Fields {
	return logrus.Fields{"kind": ev.Kind, "recipient": ev.RecipientID, "actor": ev.ActorID, "note": ev.NoteID}
}

// Notify stores a notification for ev.RecipientID. It returns nil without
// error when the actor is the recipient or either user cannot be resolved.
func (e *Engine) Notify(ctx context.Context, ev Event) (*models.Notification, error) {
	if ev.RecipientID == "" || ev.ActorID == "" || ev.RecipientID == ev.ActorID {
		return nil, nil
	}

	var n *models.Notification
	err := e.update(ctx, "notify", func(tx store.Tx) error {
		n = nil
		if _, err := tx.GetUser(ev.RecipientID); err != nil {
			return err
		}
		actor, err := tx.GetUser(ev.ActorID)
		if err != nil {
			return err
		}

		n = models.NewNotification(ev.RecipientID, ev.Kind, Message(ev.Kind, actor.Name))
		n.NoteID = ev.NoteID
		n.CommentID = ev.CommentID
		n.RelatedUserID = ev.ActorID
		return tx.CreateNotification(n)
	})
	if errors.Is(err, ErrNotFound) {
		e.log.WithFields(ev.fields()).Warn("skipping notification for unknown user")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (e *Engine) fanout(ctx context.Context, ev Event) {
	if _, err := e.Notify(ctx, ev); err != nil {
		e.log.WithFields(ev.fields()).WithError(err).Warn("notification fanout failed")
	}
}

// MarkRead flags a notification as read. Marking it twice is fine.
func (e *Engine) MarkRead(ctx context.Context, notificationID string) error {
	return e.update(ctx, "mark read", func(tx store.Tx) error {
		err := tx.MarkNotificationRead(notificationID)
		if errors.Is(err, store.ErrNotFound) {
			return notFound("notification", notificationID)
		}
		return err
	})
}

// ListNotifications returns userID's notifications, newest first.
func (e *Engine) ListNotifications(ctx context.Context, userID string) ([]*models.Notification, error) {
	var out []*models.Notification
	err := e.view(ctx, "list notifications", func(tx store.Tx) error {
		var err error
		out, err = tx.ListNotifications(userID)
		return err
	})
	return out, err
}

// UnreadCount counts userID's unread notifications.
func (e *Engine) UnreadCount(ctx context.Context, userID string) (int, error) {
	list, err := e.ListNotifications(ctx, userID)
	if err != nil {
		return 0, err
	}
	unread := 0
	for _, n := range list {
		if !n.IsRead {
			unread++
		}
	}
	return unread, nil
}

// ShareNote tells recipientID that actorID shared a note with them.
func (e *Engine) ShareNote(ctx context.Context, noteID, actorID, recipientID string) (*models.Notification, error) {
	if noteID == "" || actorID == "" || recipientID == "" {
		return nil, invalid("note, actor and recipient ids are required")
	}
	if actorID == recipientID {
		return nil, fmt.Errorf("share note: %w: cannot share with yourself", ErrInvalidOperation)
	}

	err := e.view(ctx, "share note", func(tx store.Tx) error {
		if _, err := getNote(tx, noteID); err != nil {
			return err
		}
		if _, err := getUser(tx, actorID); err != nil {
			return err
		}
		_, err := getUser(tx, recipientID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return e.Notify(ctx, Event{Kind: models.KindShare, RecipientID: recipientID, ActorID: actorID, NoteID: noteID})
}
