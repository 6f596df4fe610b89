// ABOUTME: GORM row types for the PostgreSQL schema.
// ABOUTME: Timestamps are stored as unix nanoseconds to keep ordering identical across backends.

package orm

import "github.com/harper/notely/internal/models"

type userRow struct {
	ID           string   `gorm:"primaryKey"`
	Name         string   `gorm:"not null"`
	Followers    []string `gorm:"serializer:json"`
	Following    []string `gorm:"serializer:json"`
	CreatedNanos int64    `gorm:"column:created_at"`
}

func (userRow) TableName() string { return "users" }

func (r *userRow) toModel() *models.User {
	u := &models.User{ID: r.ID, Name: r.Name, Followers: r.Followers, Following: r.Following, CreatedAt: fromNanos(r.CreatedNanos)}
	if u.Followers == nil {
		u.Followers = []string{}
	}
	if u.Following == nil {
		u.Following = []string{}
	}
	return u
}

type noteRow struct {
	ID           string `gorm:"primaryKey"`
	AuthorID     string `gorm:"index;not null"`
	Title        string
	Content      string
	IsPublic     bool
	Image        string
	Views        int   `gorm:"column:views_count;not null;default:0"`
	Likes        int   `gorm:"column:likes_count;not null;default:0"`
	Comments     int   `gorm:"column:comments_count;not null;default:0"`
	CreatedNanos int64 `gorm:"column:created_at;index"`
	UpdatedNanos int64 `gorm:"column:updated_at"`
}

func (noteRow) TableName() string { return "notes" }

func noteRowFrom(n *models.Note) *noteRow {
	return &noteRow{
		ID:           n.ID,
		AuthorID:     n.AuthorID,
		Title:        n.Title,
		Content:      n.Content,
		IsPublic:     n.IsPublic,
		Image:        n.Image,
		Views:        n.Counters.Views,
		Likes:        n.Counters.Likes,
		Comments:     n.Counters.Comments,
		CreatedNanos: n.CreatedAt.UnixNano(),
		UpdatedNanos: n.UpdatedAt.UnixNano(),
	}
}

func (r *noteRow) toModel() *models.Note {
	return &models.Note{
		ID:        r.ID,
		AuthorID:  r.AuthorID,
		Title:     r.Title,
		Content:   r.Content,
		IsPublic:  r.IsPublic,
		Image:     r.Image,
		Counters:  models.Counters{Views: r.Views, Likes: r.Likes, Comments: r.Comments},
		CreatedAt: fromNanos(r.CreatedNanos),
		UpdatedAt: fromNanos(r.UpdatedNanos),
	}
}

// reactionRow is the shape shared by the likes and bookmarks tables.
type reactionRow struct {
	NoteID       string `gorm:"primaryKey"`
	UserID       string `gorm:"primaryKey"`
	CreatedNanos int64  `gorm:"column:created_at"`
}

// likeRow and bookmarkRow exist so each table gets its own index names.
type likeRow struct {
	NoteID       string `gorm:"primaryKey"`
	UserID       string `gorm:"primaryKey;index:idx_likes_user"`
	CreatedNanos int64  `gorm:"column:created_at"`
}

func (likeRow) TableName() string { return "likes" }

type bookmarkRow struct {
	NoteID       string `gorm:"primaryKey"`
	UserID       string `gorm:"primaryKey;index:idx_bookmarks_user"`
	CreatedNanos int64  `gorm:"column:created_at"`
}

func (bookmarkRow) TableName() string { return "bookmarks" }

type viewRow struct {
	ID           string `gorm:"primaryKey"`
	NoteID       string `gorm:"not null;uniqueIndex:idx_views_note_user,where:user_id <> 'anonymous'"`
	UserID       string `gorm:"not null;uniqueIndex:idx_views_note_user,where:user_id <> 'anonymous'"`
	CreatedNanos int64  `gorm:"column:created_at"`
}

func (viewRow) TableName() string { return "views" }

type commentRow struct {
	ID              string `gorm:"primaryKey"`
	NoteID          string `gorm:"index;not null"`
	AuthorID        string `gorm:"not null"`
	Content         string
	ParentCommentID string
	Attachment      string
	CreatedNanos    int64 `gorm:"column:created_at"`
}

func (commentRow) TableName() string { return "comments" }

func commentRowFrom(c *models.Comment) *commentRow {
	return &commentRow{
		ID:              c.ID,
		NoteID:          c.NoteID,
		AuthorID:        c.AuthorID,
		Content:         c.Content,
		ParentCommentID: c.ParentCommentID,
		Attachment:      c.Attachment,
		CreatedNanos:    c.CreatedAt.UnixNano(),
	}
}

func (r *commentRow) toModel() *models.Comment {
	return &models.Comment{
		ID:              r.ID,
		NoteID:          r.NoteID,
		AuthorID:        r.AuthorID,
		Content:         r.Content,
		ParentCommentID: r.ParentCommentID,
		Attachment:      r.Attachment,
		CreatedAt:       fromNanos(r.CreatedNanos),
	}
}

type notificationRow struct {
	ID            string `gorm:"primaryKey"`
	UserID        string `gorm:"index:idx_notifications_user_created,priority:1;not null"`
	Kind          string `gorm:"not null"`
	Message       string
	NoteID        string
	CommentID     string
	RelatedUserID string
	IsRead        bool
	CreatedNanos  int64 `gorm:"column:created_at;index:idx_notifications_user_created,priority:2"`
}

func (notificationRow) TableName() string { return "notifications" }

func notificationRowFrom(n *models.Notification) *notificationRow {
	return &notificationRow{
		ID:            n.ID,
		UserID:        n.UserID,
		Kind:          string(n.Kind),
		Message:       n.Message,
		NoteID:        n.NoteID,
		CommentID:     n.CommentID,
		RelatedUserID: n.RelatedUserID,
		IsRead:        n.IsRead,
		CreatedNanos:  n.CreatedAt.UnixNano(),
	}
}

func (r *notificationRow) toModel() *models.Notification {
	return &models.Notification{
		ID:            r.ID,
		UserID:        r.UserID,
		Kind:          models.NotificationKind(r.Kind),
		Message:       r.Message,
		NoteID:        r.NoteID,
		CommentID:     r.CommentID,
		RelatedUserID: r.RelatedUserID,
		IsRead:        r.IsRead,
		CreatedAt:     fromNanos(r.CreatedNanos),
	}
}
