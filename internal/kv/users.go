// ABOUTME: User operations using Badger KV storage.
// ABOUTME: Uses type-prefixed keys (user:<id>) with embedded follow sets.

package kv

import (
	"fmt"

	"github.com/harper/notely/internal/models"
)

const userPrefix = "user"

// UserData represents a user stored in KV.
type UserData struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Followers []string `json:"followers"`
	Following []string `json:"following"`
	CreatedAt int64    `json:"created_at"`
}

// ToModel converts UserData to a models.User.
func (u *UserData) ToModel() *models.User {
	followers, following := u.Followers, u.Following
	if followers == nil {
		followers = []string{}
	}
	if following == nil {
		following = []string{}
	}
	return &models.User{
		ID:        u.ID,
		Name:      u.Name,
		Followers: followers,
		Following: following,
		CreatedAt: fromNanos(u.CreatedAt),
	}
}

// FromUserModel creates UserData from a models.User.
func FromUserModel(u *models.User) *UserData {
	return &UserData{
		ID:        u.ID,
		Name:      u.Name,
		Followers: u.Followers,
		Following: u.Following,
		CreatedAt: u.CreatedAt.UnixNano(),
	}
}

func (t *kvTxn) CreateUser(u *models.User) error {
	return t.insert(key(userPrefix, u.ID), FromUserModel(u))
}

func (t *kvTxn) GetUser(id string) (*models.User, error) {
	var data UserData
	if err := t.get(key(userPrefix, id), &data); err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return data.ToModel(), nil
}

func (t *kvTxn) UpdateFollowSets(id string, followers, following []string) error {
	var data UserData
	k := key(userPrefix, id)
	if err := t.get(k, &data); err != nil {
		return fmt.Errorf("update follow sets for %s: %w", id, err)
	}
	data.Followers = followers
	data.Following = following
	return t.set(k, &data)
}
