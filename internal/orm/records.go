// ABOUTME: Tx record operations for the PostgreSQL backend.
// ABOUTME: Mirrors the SQLite queries using GORM's query builder.

package orm

import (
	"fmt"

	"github.com/harper/notely/internal/models"
	"github.com/harper/notely/internal/store"
	"gorm.io/gorm"
)

func (t *txn) CreateUser(u *models.User) error {
	row := &userRow{ID: u.ID, Name: u.Name, Followers: u.Followers, Following: u.Following, CreatedNanos: u.CreatedAt.UnixNano()}
	if err := t.db.Create(row).Error; err != nil {
		return fmt.Errorf("create user: %w", mapErr(err))
	}
	return nil
}

func (t *txn) GetUser(id string) (*models.User, error) {
	var row userRow
	if err := t.forUpdate().First(&row, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, mapErr(err))
	}
	return row.toModel(), nil
}

func (t *txn) UpdateFollowSets(id string, followers, following []string) error {
	row := &userRow{Followers: followers, Following: following}
	res := t.db.Model(&userRow{}).Where("id = ?", id).Select("followers", "following").Updates(row)
	if res.Error != nil {
		return fmt.Errorf("update follow sets: %w", mapErr(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update follow sets: %w", store.ErrNotFound)
	}
	return nil
}

func (t *txn) CreateNote(n *models.Note) error {
	if err := t.db.Create(noteRowFrom(n)).Error; err != nil {
		return fmt.Errorf("create note: %w", mapErr(err))
	}
	return nil
}

func (t *txn) GetNote(id string) (*models.Note, error) {
	var row noteRow
	if err := t.forUpdate().First(&row, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get note %s: %w", id, mapErr(err))
	}
	return row.toModel(), nil
}

func (t *txn) UpdateNote(n *models.Note) error {
	err := t.updateOne(&noteRow{}, n.ID, map[string]any{
		"title":      n.Title,
		"content":    n.Content,
		"is_public":  n.IsPublic,
		"image":      n.Image,
		"updated_at": n.UpdatedAt.UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	return nil
}

func (t *txn) AdjustNoteCounters(id string, d models.CounterDelta) error {
	err := t.updateOne(&noteRow{}, id, map[string]any{
		"views_count":    gorm.Expr("GREATEST(views_count + ?, 0)", d.Views),
		"likes_count":    gorm.Expr("GREATEST(likes_count + ?, 0)", d.Likes),
		"comments_count": gorm.Expr("GREATEST(comments_count + ?, 0)", d.Comments),
	})
	if err != nil {
		return fmt.Errorf("adjust counters: %w", err)
	}
	return nil
}

func (t *txn) SetNoteCounters(id string, c models.Counters) error {
	err := t.updateOne(&noteRow{}, id, map[string]any{
		"views_count":    c.Views,
		"likes_count":    c.Likes,
		"comments_count": c.Comments,
	})
	if err != nil {
		return fmt.Errorf("set counters: %w", err)
	}
	return nil
}

func (t *txn) DeleteNote(id string) error {
	res := t.db.Where("id = ?", id).Delete(&noteRow{})
	if res.Error != nil {
		return fmt.Errorf("delete note: %w", mapErr(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete note: %w", store.ErrNotFound)
	}
	return nil
}

// ListNotesByAuthor lists an author's notes, or every note when authorID is empty.
func (t *txn) ListNotesByAuthor(authorID string) ([]*models.Note, error) {
	var rows []noteRow
	q := t.db.Order("created_at DESC, id DESC")
	if authorID != "" {
		q = q.Where("author_id = ?", authorID)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, mapErr(err)
	}
	out := make([]*models.Note, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out, nil
}

func reactionTable(kind models.ReactionKind) (string, error) {
	switch kind {
	case models.ReactionLike:
		return likeRow{}.TableName(), nil
	case models.ReactionBookmark:
		return bookmarkRow{}.TableName(), nil
	}
	return "", fmt.Errorf("unknown reaction kind %q", kind)
}

func (t *txn) GetReaction(kind models.ReactionKind, noteID, userID string) (*models.Reaction, error) {
	table, err := reactionTable(kind)
	if err != nil {
		return nil, err
	}
	var row reactionRow
	if err := t.db.Table(table).Where("note_id = ? AND user_id = ?", noteID, userID).Take(&row).Error; err != nil {
		return nil, fmt.Errorf("get %s: %w", kind, mapErr(err))
	}
	return &models.Reaction{Kind: kind, NoteID: row.NoteID, UserID: row.UserID, CreatedAt: fromNanos(row.CreatedNanos)}, nil
}

func (t *txn) CreateReaction(r *models.Reaction) error {
	table, err := reactionTable(r.Kind)
	if err != nil {
		return err
	}
	row := &reactionRow{NoteID: r.NoteID, UserID: r.UserID, CreatedNanos: r.CreatedAt.UnixNano()}
	if err := t.db.Table(table).Create(row).Error; err != nil {
		return fmt.Errorf("create %s: %w", r.Kind, mapErr(err))
	}
	return nil
}

func (t *txn) DeleteReaction(kind models.ReactionKind, noteID, userID string) error {
	table, err := reactionTable(kind)
	if err != nil {
		return err
	}
	res := t.db.Table(table).Where("note_id = ? AND user_id = ?", noteID, userID).Delete(&reactionRow{})
	if res.Error != nil {
		return fmt.Errorf("delete %s: %w", kind, mapErr(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete %s: %w", kind, store.ErrNotFound)
	}
	return nil
}

func (t *txn) CountReactions(kind models.ReactionKind, noteID string) (int, error) {
	table, err := reactionTable(kind)
	if err != nil {
		return 0, err
	}
	var n int64
	err = t.db.Table(table).Where("note_id = ?", noteID).Count(&n).Error
	return int(n), mapErr(err)
}

func (t *txn) ListReactionsByUser(kind models.ReactionKind, userID string) ([]*models.Reaction, error) {
	table, err := reactionTable(kind)
	if err != nil {
		return nil, err
	}
	var rows []reactionRow
	if err := t.db.Table(table).Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, mapErr(err)
	}
	out := make([]*models.Reaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, &models.Reaction{Kind: kind, NoteID: row.NoteID, UserID: row.UserID, CreatedAt: fromNanos(row.CreatedNanos)})
	}
	return out, nil
}

func (t *txn) DeleteReactionsByNote(kind models.ReactionKind, noteID string) (int, error) {
	table, err := reactionTable(kind)
	if err != nil {
		return 0, err
	}
	res := t.db.Table(table).Where("note_id = ?", noteID).Delete(&reactionRow{})
	return int(res.RowsAffected), mapErr(res.Error)
}

func (t *txn) HasView(noteID, userID string) (bool, error) {
	var n int64
	err := t.db.Model(&viewRow{}).Where("note_id = ? AND user_id = ?", noteID, userID).Limit(1).Count(&n).Error
	return n > 0, mapErr(err)
}

func (t *txn) CreateView(v *models.View) error {
	row := &viewRow{ID: v.ID, NoteID: v.NoteID, UserID: v.UserID, CreatedNanos: v.CreatedAt.UnixNano()}
	if err := t.db.Create(row).Error; err != nil {
		return fmt.Errorf("create view: %w", mapErr(err))
	}
	return nil
}

func (t *txn) CountViews(noteID string) (int, error) {
	var n int64
	err := t.db.Model(&viewRow{}).Where("note_id = ?", noteID).Count(&n).Error
	return int(n), mapErr(err)
}

func (t *txn) DeleteViewsByNote(noteID string) (int, error) {
	res := t.db.Where("note_id = ?", noteID).Delete(&viewRow{})
	return int(res.RowsAffected), mapErr(res.Error)
}

func (t *txn) CreateComment(c *models.Comment) error {
	if err := t.db.Create(commentRowFrom(c)).Error; err != nil {
		return fmt.Errorf("create comment: %w", mapErr(err))
	}
	return nil
}

func (t *txn) GetComment(id string) (*models.Comment, error) {
	var row commentRow
	if err := t.db.First(&row, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get comment %s: %w", id, mapErr(err))
	}
	return row.toModel(), nil
}

func (t *txn) ListComments(noteID string) ([]*models.Comment, error) {
	var rows []commentRow
	if err := t.db.Where("note_id = ?", noteID).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, mapErr(err)
	}
	out := make([]*models.Comment, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out, nil
}

func (t *txn) CountComments(noteID string) (int, error) {
	var n int64
	err := t.db.Model(&commentRow{}).Where("note_id = ?", noteID).Count(&n).Error
	return int(n), mapErr(err)
}

func (t *txn) DeleteCommentsByNote(noteID string) (int, error) {
	res := t.db.Where("note_id = ?", noteID).Delete(&commentRow{})
	return int(res.RowsAffected), mapErr(res.Error)
}

func (t *txn) CreateNotification(n *models.Notification) error {
	if err := t.db.Create(notificationRowFrom(n)).Error; err != nil {
		return fmt.Errorf("create notification: %w", mapErr(err))
	}
	return nil
}

func (t *txn) GetNotification(id string) (*models.Notification, error) {
	var row notificationRow
	if err := t.db.First(&row, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get notification %s: %w", id, mapErr(err))
	}
	return row.toModel(), nil
}

func (t *txn) MarkNotificationRead(id string) error {
	if err := t.updateOne(&notificationRow{}, id, map[string]any{"is_read": true}); err != nil {
		return fmt.Errorf("mark notification %s read: %w", id, err)
	}
	return nil
}

func (t *txn) ListNotifications(userID string) ([]*models.Notification, error) {
	var rows []notificationRow
	if err := t.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, mapErr(err)
	}
	out := make([]*models.Notification, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out, nil
}
