// ABOUTME: User commands for creating and inspecting users.
// ABOUTME: Shows follow counts and the notes a user has written.

package main

import (
	"fmt"

	"github.com/harper/notely/internal/social"
	"github.com/harper/notely/internal/ui"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := engine.CreateUser(cmd.Context(), social.UserInput{Name: args[0]})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Created user %s (%s)", u.Name, u.ID)))
		return nil
	},
}

var userShowCmd = &cobra.Command{
	Use:   "show <user-id>",
	Short: "Show a user and their notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := engine.GetUser(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		notes, err := engine.ListNotes(cmd.Context(), u.ID)
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}

		w := out(cmd)
		fmt.Fprintf(w, "%s (%s)\n", u.Name, u.ID)
		fmt.Fprintf(w, "%d followers, %d following\n", len(u.Followers), len(u.Following))
		if len(notes) == 0 {
			fmt.Fprintln(w, "No notes yet.")
			return nil
		}
		fmt.Fprintln(w, ui.Separator())
		for _, n := range notes {
			fmt.Fprint(w, ui.FormatNoteListItem(n))
		}
		return nil
	},
}

func init() {
	userCmd.AddCommand(userAddCmd, userShowCmd)
	rootCmd.AddCommand(userCmd)
}
