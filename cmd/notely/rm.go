// ABOUTME: Remove command for deleting notes with all their activity.
// ABOUTME: Includes confirmation prompt before deletion.

package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/harper/notely/internal/ui"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <note-id>",
	Short: "Remove a note",
	Long:  `Delete a note together with its comments, likes, bookmarks and views.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		force, _ := cmd.Flags().GetBool("force")

		id, err := resolveNote(cmd, args[0])
		if err != nil {
			return err
		}
		note, err := engine.GetNote(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		w := out(cmd)
		if !force {
			fmt.Fprintf(w, "Delete note %q (%s) and all its activity? [y/N] ", note.Title, ui.ShortID(note.ID))
			reader := bufio.NewReader(cmd.InOrStdin())
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Fprintln(w, "Cancelled.")
				return nil
			}
		}

		res, err := engine.CascadeDeleteNote(ctx, note.ID)
		if err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}

		fmt.Fprintln(w, ui.Success(fmt.Sprintf("Deleted note %s (%d comments, %d likes, %d bookmarks, %d views)",
			ui.ShortID(note.ID), res.Comments, res.Likes, res.Bookmarks, res.Views)))
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	rootCmd.AddCommand(rmCmd)
}
