// ABOUTME: User and note seeding plus plain lookups used by the CLI and MCP tools.
// ABOUTME: Inputs are validated with struct tags before anything is written.

package social

import (
	"context"
	"errors"

	"github.com/harper/notely/internal/models"
	"github.com/harper/notely/internal/store"
)

// UserInput is a new user.
type UserInput struct {
	Name string `validate:"required,notblank,max=100"`
}

// NoteInput is a new note written by AuthorID.
type NoteInput struct {
	AuthorID string `validate:"required"`
	Title    string `validate:"required,notblank,max=200"`
	Content  string
	IsPublic bool
	// Image is an opaque reference supplied by the upload layer.
	Image string `validate:"omitempty,max=1024"`
}

// CreateUser stores a user with empty follow sets.
func (e *Engine) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	if err := e.check(in); err != nil {
		return nil, err
	}
	var u *models.User
	err := e.update(ctx, "create user", func(tx store.Tx) error {
		u = models.NewUser(in.Name)
		return tx.CreateUser(u)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUser returns the user with id or ErrNotFound.
func (e *Engine) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u *models.User
	err := e.view(ctx, "get user", func(tx store.Tx) error {
		var err error
		u, err = tx.GetUser(id)
		if errors.Is(err, store.ErrNotFound) {
			return notFound("user", id)
		}
		return err
	})
	return u, err
}

// CreateNote stores a new note for an existing author.
func (e *Engine) CreateNote(ctx context.Context, in NoteInput) (*models.Note, error) {
	if err := e.check(in); err != nil {
		return nil, err
	}
	var n *models.Note
	err := e.update(ctx, "create note", func(tx store.Tx) error {
		if _, err := tx.GetUser(in.AuthorID); errors.Is(err, store.ErrNotFound) {
			return invalid("author %s does not exist", in.AuthorID)
		} else if err != nil {
			return err
		}
		n = models.NewNote(in.AuthorID, in.Title, in.Content, in.IsPublic)
		n.Image = in.Image
		return tx.CreateNote(n)
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

// GetNote returns the note with id, counters included, or ErrNotFound.
func (e *Engine) GetNote(ctx context.Context, id string) (*models.Note, error) {
	var n *models.Note
	err := e.view(ctx, "get note", func(tx store.Tx) error {
		var err error
		n, err = getNote(tx, id)
		return err
	})
	return n, err
}

// ListNotes returns an author's notes, newest first. An empty authorID lists every note.
func (e *Engine) ListNotes(ctx context.Context, authorID string) ([]*models.Note, error) {
	var notes []*models.Note
	err := e.view(ctx, "list notes", func(tx store.Tx) error {
		var err error
		notes, err = tx.ListNotesByAuthor(authorID)
		return err
	})
	return notes, err
}

// NoteUpdate lists the fields to change; nil fields keep their value. An
// empty Image removes the note's image.
type NoteUpdate struct {
	Title    *string `validate:"omitnil,notblank,max=200"`
	Content  *string
	IsPublic *bool
	Image    *string `validate:"omitnil,max=1024"`
}

// UpdateNote applies upd to the note and bumps its UpdatedAt. Counters are untouched.
func (e *Engine) UpdateNote(ctx context.Context, id string, upd NoteUpdate) (*models.Note, error) {
	if err := e.check(upd); err != nil {
		return nil, err
	}
	var n *models.Note
	err := e.update(ctx, "update note", func(tx store.Tx) error {
		var err error
		if n, err = getNote(tx, id); err != nil {
			return err
		}
		if upd.Title != nil {
			n.Title = *upd.Title
		}
		if upd.Content != nil {
			n.Content = *upd.Content
		}
		if upd.IsPublic != nil {
			n.IsPublic = *upd.IsPublic
		}
		if upd.Image != nil {
			n.Image = *upd.Image
		}
		n.Touch()
		return tx.UpdateNote(n)
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

// FeedItem is a public note with statistics counted from its records.
type FeedItem struct {
	*models.Note
	Stats models.NoteStats `json:"stats"`
}

// ListPublicNotes returns every public note, newest first, with its stats.
func (e *Engine) ListPublicNotes(ctx context.Context) ([]*FeedItem, error) {
	feed := []*FeedItem{}
	err := e.view(ctx, "list public notes", func(tx store.Tx) error {
		feed = feed[:0]
		notes, err := tx.ListNotesByAuthor("")
		if err != nil {
			return err
		}
		for _, n := range notes {
			if !n.IsPublic {
				continue
			}
			st, err := noteStats(tx, n.ID)
			if err != nil {
				return err
			}
			feed = append(feed, &FeedItem{Note: n, Stats: *st})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return feed, nil
}

func getNote(tx store.Tx, id string) (*models.Note, error) {
	n, err := tx.GetNote(id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("note", id)
	}
	return n, err
}

func getUser(tx store.Tx, id string) (*models.User, error) {
	u, err := tx.GetUser(id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("user", id)
	}
	return u, err
}
