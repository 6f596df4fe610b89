// ABOUTME: Follow commands for the user graph.
// ABOUTME: follow toggles; is-following reports without changing anything.

package main

import (
	"fmt"

	"github.com/harper/notely/internal/ui"
	"github.com/spf13/cobra"
)

var followCmd = &cobra.Command{
	Use:   "follow <user-id>",
	Short: "Follow a user, or unfollow if already following",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		me, err := actor(cmd)
		if err != nil {
			return err
		}

		following, err := engine.ToggleFollow(cmd.Context(), args[0], me)
		if err != nil {
			return fmt.Errorf("failed to toggle follow: %w", err)
		}

		if following {
			fmt.Fprintln(out(cmd), ui.Success("Now following "+args[0]))
		} else {
			fmt.Fprintln(out(cmd), ui.Success("Unfollowed "+args[0]))
		}
		return nil
	},
}

var isFollowingCmd = &cobra.Command{
	Use:   "is-following <user-id>",
	Short: "Check whether the acting user follows someone",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		me, err := actor(cmd)
		if err != nil {
			return err
		}

		following, err := engine.IsFollowing(cmd.Context(), args[0], me)
		if err != nil {
			return fmt.Errorf("failed to check follow: %w", err)
		}
		fmt.Fprintln(out(cmd), following)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(followCmd, isFollowingCmd)
}
