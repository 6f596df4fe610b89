// ABOUTME: User model holding the mirrored follower/following sets.
// ABOUTME: Membership helpers keep the sets free of duplicates.

package models

import (
	"slices"
	"time"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Followers []string  `json:"followers"`
	Following []string  `json:"following"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUser(name string) *User {
	return &User{
		ID:        NewID(),
		Name:      name,
		Followers: []string{},
		Following: []string{},
		CreatedAt: time.Now(),
	}
}

// HasFollower reports whether id is in the user's followers set.
func (u *User) HasFollower(id string) bool {
	return slices.Contains(u.Followers, id)
}

// AddID returns set with id appended unless already present.
func AddID(set []string, id string) []string {
	if slices.Contains(set, id) {
		return set
	}
	return append(slices.Clone(set), id)
}

// RemoveID returns set without any occurrence of id.
func RemoveID(set []string, id string) []string {
	out := make([]string, 0, len(set))
	for _, v := range set {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
