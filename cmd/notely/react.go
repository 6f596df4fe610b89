// ABOUTME: Like and bookmark commands.
// ABOUTME: Both toggle; bookmarks lists what the acting user saved.

package main

import (
	"context"
	"fmt"

	"github.com/harper/notely/internal/ui"
	"github.com/spf13/cobra"
)

type toggleFunc func(ctx context.Context, noteID, userID string) (bool, error)

func toggleRunE(verb, done, undone string, toggle func() toggleFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		me, err := actor(cmd)
		if err != nil {
			return err
		}
		id, err := resolveNote(cmd, args[0])
		if err != nil {
			return err
		}

		on, err := toggle()(cmd.Context(), id, me)
		if err != nil {
			return fmt.Errorf("failed to %s note: %w", verb, err)
		}
		msg := undone
		if on {
			msg = done
		}
		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("%s %s", msg, ui.ShortID(id))))
		return nil
	}
}

var likeCmd = &cobra.Command{
	Use:   "like <note-id>",
	Short: "Like a note, or remove your like",
	Args:  cobra.ExactArgs(1),
	RunE:  toggleRunE("like", "Liked", "Unliked", func() toggleFunc { return engine.ToggleLike }),
}

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark <note-id>",
	Short: "Bookmark a note, or remove the bookmark",
	Args:  cobra.ExactArgs(1),
	RunE:  toggleRunE("bookmark", "Bookmarked", "Removed bookmark on", func() toggleFunc { return engine.ToggleBookmark }),
}

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "List your bookmarked notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		me, err := actor(cmd)
		if err != nil {
			return err
		}

		notes, err := engine.ListBookmarkedNotes(cmd.Context(), me)
		if err != nil {
			return fmt.Errorf("failed to list bookmarks: %w", err)
		}

		w := out(cmd)
		if len(notes) == 0 {
			fmt.Fprintln(w, "No bookmarks.")
			return nil
		}
		for _, n := range notes {
			fmt.Fprint(w, ui.FormatNoteListItem(n))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(likeCmd, bookmarkCmd, bookmarksCmd)
}
