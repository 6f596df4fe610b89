// ABOUTME: Stats command for user or note activity totals.
// ABOUTME: Defaults to the acting user; --note switches to a note.

package main

import (
	"fmt"

	"github.com/harper/notely/internal/ui"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [user-id]",
	Short: "Show activity statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		w := out(cmd)

		if noteFlag, _ := cmd.Flags().GetString("note"); noteFlag != "" {
			id, err := resolveNote(cmd, noteFlag)
			if err != nil {
				return err
			}
			st, err := engine.NoteStats(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get note stats: %w", err)
			}
			fmt.Fprint(w, ui.FormatNoteStats(st))
			return nil
		}

		var userID string
		if len(args) == 1 {
			userID = args[0]
		} else {
			var err error
			if userID, err = actor(cmd); err != nil {
				return err
			}
		}

		u, err := engine.GetUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		st, err := engine.UserStats(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get user stats: %w", err)
		}
		fmt.Fprint(w, ui.FormatUserStats(u, st))
		return nil
	},
}

func init() {
	statsCmd.Flags().String("note", "", "show statistics for this note instead")
	rootCmd.AddCommand(statsCmd)
}
