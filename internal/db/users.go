// ABOUTME: Database operations for users and their follow sets.
// ABOUTME: Follow sets are stored as JSON arrays on the user row.

package db

import (
	"encoding/json"
	"fmt"

	"github.com/harper/notely/internal/models"
)

func (t *txn) CreateUser(u *models.User) error {
	followers, following, err := encodeSets(u.Followers, u.Following)
	if err != nil {
		return err
	}
	_, err = t.exec(
		`INSERT INTO users (id, name, followers, following, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Name, followers, following, toNanos(u.CreatedAt),
	)
	return err
}

func (t *txn) GetUser(id string) (*models.User, error) {
	u := &models.User{ID: id}
	var followers, following string
	var created int64
	err := t.tx.QueryRowContext(t.ctx,
		`SELECT name, followers, following, created_at FROM users WHERE id = ?`, id,
	).Scan(&u.Name, &followers, &following, &created)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, mapErr(err))
	}
	if err := json.Unmarshal([]byte(followers), &u.Followers); err != nil {
		return nil, fmt.Errorf("decode followers: %w", err)
	}
	if err := json.Unmarshal([]byte(following), &u.Following); err != nil {
		return nil, fmt.Errorf("decode following: %w", err)
	}
	u.CreatedAt = fromNanos(created)
	return u, nil
}

func (t *txn) UpdateFollowSets(id string, followers, following []string) error {
	fs, gs, err := encodeSets(followers, following)
	if err != nil {
		return err
	}
	if err := t.execOne(`UPDATE users SET followers = ?, following = ? WHERE id = ?`, fs, gs, id); err != nil {
		return fmt.Errorf("update follow sets for %s: %w", id, err)
	}
	return nil
}

func encodeSets(followers, following []string) (string, string, error) {
	if followers == nil {
		followers = []string{}
	}
	if following == nil {
		following = []string{}
	}
	fs, err := json.Marshal(followers)
	if err != nil {
		return "", "", fmt.Errorf("encode followers: %w", err)
	}
	gs, err := json.Marshal(following)
	if err != nil {
		return "", "", fmt.Errorf("encode following: %w", err)
	}
	return string(fs), string(gs), nil
}
