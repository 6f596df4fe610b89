// ABOUTME: Tests for the follow graph.
// ABOUTME: Covers toggling, self-follow and unknown users.

package social

import (
	"testing"

	"github.com/harper/notely/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFollow(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *fixture) {
		alice := f.user("alice")
		bob := f.user("bob")

		following, err := f.e.ToggleFollow(f.ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, following)

		ok, err := f.e.IsFollowing(f.ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		a, err := f.e.GetUser(f.ctx, alice.ID)
		require.NoError(t, err)
		b, err := f.e.GetUser(f.ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{bob.ID}, a.Followers)
		assert.Empty(t, a.Following)
		assert.Equal(t, []string{alice.ID}, b.Following)

		list := f.notifications(alice.ID)
		require.Len(t, list, 1)
		assert.Equal(t, models.KindFollow, list[0].Kind)
		assert.Equal(t, "bob started following you", list[0].Message)
		assert.Equal(t, bob.ID, list[0].RelatedUserID)

		following, err = f.e.ToggleFollow(f.ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, following)

		ok, err = f.e.IsFollowing(f.ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		b, err = f.e.GetUser(f.ctx, bob.ID)
		require.NoError(t, err)
		assert.Empty(t, b.Following)
		assert.Len(t, f.notifications(alice.ID), 1, "unfollowing does not notify")
	})
}

func TestToggleFollowSelf(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *fixture) {
		alice := f.user("alice")

		_, err := f.e.ToggleFollow(f.ctx, alice.ID, alice.ID)
		assert.ErrorIs(t, err, ErrInvalidOperation)

		got, err := f.e.GetUser(f.ctx, alice.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Followers)
		assert.Empty(t, got.Following)
		assert.Empty(t, f.notifications(alice.ID))
	})
}

func TestToggleFollowUnknownUser(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *fixture) {
		alice := f.user("alice")

		_, err := f.e.ToggleFollow(f.ctx, alice.ID, "ghost")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = f.e.ToggleFollow(f.ctx, "ghost", alice.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = f.e.ToggleFollow(f.ctx, "", alice.ID)
		assert.ErrorIs(t, err, ErrInvalidInput)

		got, err := f.e.GetUser(f.ctx, alice.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Followers)
		assert.Empty(t, got.Following)

		ok, err := f.e.IsFollowing(f.ctx, "ghost", alice.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
