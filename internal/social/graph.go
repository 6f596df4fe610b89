// ABOUTME: Follow graph operations over the mirrored followers/following sets.
// ABOUTME: Both sides of an edge are written in the same transaction.

package social

import (
	"context"
	"errors"
	"fmt"

	"github.com/harper/notely/internal/models"
	"github.com/harper/notely/internal/store"
)

// ToggleFollow makes followerID follow followedID, or unfollow if it already
// does. It returns the new state.
func (e *Engine) ToggleFollow(ctx context.Context, followedID, followerID string) (bool, error) {
	if followedID == "" || followerID == "" {
		return false, invalid("followed and follower ids are required")
	}
	if followedID == followerID {
		return false, fmt.Errorf("toggle follow: %w: users cannot follow themselves", ErrInvalidOperation)
	}

	var following bool
	err := e.update(ctx, "toggle follow", func(tx store.Tx) error {
		followed, err := getUser(tx, followedID)
		if err != nil {
			return err
		}
		follower, err := getUser(tx, followerID)
		if err != nil {
			return err
		}

		following = !followed.HasFollower(followerID)
		if following {
			followed.Followers = models.AddID(followed.Followers, followerID)
			follower.Following = models.AddID(follower.Following, followedID)
		} else {
			followed.Followers = models.RemoveID(followed.Followers, followerID)
			follower.Following = models.RemoveID(follower.Following, followedID)
		}

		if err := tx.UpdateFollowSets(followed.ID, followed.Followers, followed.Following); err != nil {
			return err
		}
		return tx.UpdateFollowSets(follower.ID, follower.Followers, follower.Following)
	})
	if err != nil {
		return false, err
	}

	if following {
		e.fanout(ctx, Event{Kind: models.KindFollow, RecipientID: followedID, ActorID: followerID})
	}
	return following, nil
}

// IsFollowing reports whether followerID is in followedID's followers set.
// An unknown followed user has no followers.
func (e *Engine) IsFollowing(ctx context.Context, followedID, followerID string) (bool, error) {
	var ok bool
	err := e.view(ctx, "is following", func(tx store.Tx) error {
		u, err := tx.GetUser(followedID)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		ok = u.HasFollower(followerID)
		return nil
	})
	return ok, err
}
