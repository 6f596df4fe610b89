// ABOUTME: Note operations using Badger KV storage.
// ABOUTME: Keeps a note-author:<author>:<id> index for per-author listing.

package kv

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/harper/notely/internal/models"
)

const (
	notePrefix       = "note"
	noteAuthorPrefix = "note-author"
)

// NoteData represents a note stored in KV.
type NoteData struct {
	ID        string `json:"id"`
	AuthorID  string `json:"author_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	IsPublic  bool   `json:"is_public"`
	Image     string `json:"image,omitempty"`
	Views     int    `json:"views"`
	Likes     int    `json:"likes"`
	Comments  int    `json:"comments"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// ToModel converts NoteData to a models.Note.
func (n *NoteData) ToModel() *models.Note {
	return &models.Note{
		ID:        n.ID,
		AuthorID:  n.AuthorID,
		Title:     n.Title,
		Content:   n.Content,
		IsPublic:  n.IsPublic,
		Image:     n.Image,
		Counters:  models.Counters{Views: n.Views, Likes: n.Likes, Comments: n.Comments},
		CreatedAt: fromNanos(n.CreatedAt),
		UpdatedAt: fromNanos(n.UpdatedAt),
	}
}

// FromNoteModel creates NoteData from a models.Note.
func FromNoteModel(n *models.Note) *NoteData {
	return &NoteData{
		ID:        n.ID,
		AuthorID:  n.AuthorID,
		Title:     n.Title,
		Content:   n.Content,
		IsPublic:  n.IsPublic,
		Image:     n.Image,
		Views:     n.Counters.Views,
		Likes:     n.Counters.Likes,
		Comments:  n.Counters.Comments,
		CreatedAt: n.CreatedAt.UnixNano(),
		UpdatedAt: n.UpdatedAt.UnixNano(),
	}
}

func (t *kvTxn) CreateNote(n *models.Note) error {
	if err := t.insert(key(notePrefix, n.ID), FromNoteModel(n)); err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return t.txn.Set(key(noteAuthorPrefix, n.AuthorID, n.ID), nil)
}

func (t *kvTxn) getNoteData(id string) (*NoteData, error) {
	var data NoteData
	if err := t.get(key(notePrefix, id), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (t *kvTxn) GetNote(id string) (*models.Note, error) {
	data, err := t.getNoteData(id)
	if err != nil {
		return nil, fmt.Errorf("get note %s: %w", id, err)
	}
	return data.ToModel(), nil
}

func (t *kvTxn) UpdateNote(n *models.Note) error {
	data, err := t.getNoteData(n.ID)
	if err != nil {
		return fmt.Errorf("update note %s: %w", n.ID, err)
	}
	data.Title = n.Title
	data.Content = n.Content
	data.IsPublic = n.IsPublic
	data.Image = n.Image
	data.UpdatedAt = n.UpdatedAt.UnixNano()
	return t.set(key(notePrefix, n.ID), data)
}

func (t *kvTxn) AdjustNoteCounters(id string, d models.CounterDelta) error {
	data, err := t.getNoteData(id)
	if err != nil {
		return fmt.Errorf("adjust counters for %s: %w", id, err)
	}
	c := models.Counters{Views: data.Views, Likes: data.Likes, Comments: data.Comments}.Apply(d)
	data.Views, data.Likes, data.Comments = c.Views, c.Likes, c.Comments
	return t.set(key(notePrefix, id), data)
}

func (t *kvTxn) SetNoteCounters(id string, c models.Counters) error {
	data, err := t.getNoteData(id)
	if err != nil {
		return fmt.Errorf("set counters for %s: %w", id, err)
	}
	data.Views, data.Likes, data.Comments = c.Views, c.Likes, c.Comments
	return t.set(key(notePrefix, id), data)
}

func (t *kvTxn) DeleteNote(id string) error {
	data, err := t.getNoteData(id)
	if err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	if err := t.txn.Delete(key(noteAuthorPrefix, data.AuthorID, id)); err != nil {
		return err
	}
	return t.txn.Delete(key(notePrefix, id))
}

// ListNotesByAuthor lists an author's notes, or every note when authorID is empty.
func (t *kvTxn) ListNotesByAuthor(authorID string) ([]*models.Note, error) {
	notes := []*models.Note{}
	if authorID == "" {
		err := t.scan(prefix(notePrefix), func(_, val []byte) error {
			var data NoteData
			if err := json.Unmarshal(val, &data); err != nil {
				return err
			}
			notes = append(notes, data.ToModel())
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("list notes: %w", err)
		}
		sortNotes(notes)
		return notes, nil
	}

	p := prefix(noteAuthorPrefix, authorID)
	for _, k := range t.keys(p) {
		id := string(k[len(p):])
		data, err := t.getNoteData(id)
		if err != nil {
			return nil, fmt.Errorf("list notes for %s: %w", authorID, err)
		}
		notes = append(notes, data.ToModel())
	}

	sortNotes(notes)
	return notes, nil
}

// sortNotes orders newest first.
func sortNotes(notes []*models.Note) {
	sort.Slice(notes, func(i, j int) bool {
		if !notes[i].CreatedAt.Equal(notes[j].CreatedAt) {
			return notes[i].CreatedAt.After(notes[j].CreatedAt)
		}
		return notes[i].ID > notes[j].ID
	})
}
