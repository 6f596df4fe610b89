// ABOUTME: Like and bookmark operations using Badger KV storage.
// ABOUTME: The <kind>:<note>:<user> key itself is the uniqueness constraint.

package kv

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/harper/notely/internal/models"
)

// ReactionData represents a like or bookmark stored in KV.
type ReactionData struct {
	NoteID    string `json:"note_id"`
	UserID    string `json:"user_id"`
	CreatedAt int64  `json:"created_at"`
}

func (r *ReactionData) toModel(kind models.ReactionKind) *models.Reaction {
	return &models.Reaction{Kind: kind, NoteID: r.NoteID, UserID: r.UserID, CreatedAt: fromNanos(r.CreatedAt)}
}

func reactionKey(kind models.ReactionKind, noteID, userID string) []byte {
	return key(string(kind), noteID, userID)
}

func reactionUserKey(kind models.ReactionKind, userID, noteID string) []byte {
	return key(string(kind)+"-user", userID, noteID)
}

func checkKind(kind models.ReactionKind) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown reaction kind %q", kind)
	}
	return nil
}

func (t *kvTxn) GetReaction(kind models.ReactionKind, noteID, userID string) (*models.Reaction, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	var data ReactionData
	if err := t.get(reactionKey(kind, noteID, userID), &data); err != nil {
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}
	return data.toModel(kind), nil
}

func (t *kvTxn) CreateReaction(r *models.Reaction) error {
	if err := checkKind(r.Kind); err != nil {
		return err
	}
	data := &ReactionData{NoteID: r.NoteID, UserID: r.UserID, CreatedAt: r.CreatedAt.UnixNano()}
	if err := t.insert(reactionKey(r.Kind, r.NoteID, r.UserID), data); err != nil {
		return fmt.Errorf("create %s: %w", r.Kind, err)
	}
	return t.txn.Set(reactionUserKey(r.Kind, r.UserID, r.NoteID), nil)
}

func (t *kvTxn) DeleteReaction(kind models.ReactionKind, noteID, userID string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	if err := t.del(reactionKey(kind, noteID, userID)); err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	return t.txn.Delete(reactionUserKey(kind, userID, noteID))
}

func (t *kvTxn) CountReactions(kind models.ReactionKind, noteID string) (int, error) {
	if err := checkKind(kind); err != nil {
		return 0, err
	}
	return t.count(prefix(string(kind), noteID)), nil
}

func (t *kvTxn) ListReactionsByUser(kind models.ReactionKind, userID string) ([]*models.Reaction, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	p := prefix(string(kind)+"-user", userID)
	out := []*models.Reaction{}
	for _, k := range t.keys(p) {
		noteID := string(k[len(p):])
		var data ReactionData
		if err := t.get(reactionKey(kind, noteID, userID), &data); err != nil {
			return nil, fmt.Errorf("list %s for %s: %w", kind, userID, err)
		}
		out = append(out, data.toModel(kind))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (t *kvTxn) DeleteReactionsByNote(kind models.ReactionKind, noteID string) (int, error) {
	if err := checkKind(kind); err != nil {
		return 0, err
	}
	var users []string
	err := t.scan(prefix(string(kind), noteID), func(_, val []byte) error {
		var data ReactionData
		if err := json.Unmarshal(val, &data); err != nil {
			return err
		}
		users = append(users, data.UserID)
		return nil
	})
	if err != nil {
		return 0, err
	}
	for _, userID := range users {
		if err := t.txn.Delete(reactionKey(kind, noteID, userID)); err != nil {
			return 0, err
		}
		if err := t.txn.Delete(reactionUserKey(kind, userID, noteID)); err != nil {
			return 0, err
		}
	}
	return len(users), nil
}
