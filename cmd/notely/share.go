// ABOUTME: Share command notifying another user about a note.
// ABOUTME: Sharing records nothing beyond the recipient's notification.

package main

import (
	"fmt"

	"github.com/harper/notely/internal/ui"
	"github.com/spf13/cobra"
)

var shareCmd = &cobra.Command{
	Use:   "share <note-id> <user-id>",
	Short: "Share a note with another user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		me, err := actor(cmd)
		if err != nil {
			return err
		}
		noteID, err := resolveNote(cmd, args[0])
		if err != nil {
			return err
		}

		if _, err := engine.ShareNote(cmd.Context(), noteID, me, args[1]); err != nil {
			return fmt.Errorf("failed to share note: %w", err)
		}
		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Shared %s with %s", ui.ShortID(noteID), args[1])))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shareCmd)
}
