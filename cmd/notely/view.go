// ABOUTME: View command recording that a note was seen.
// ABOUTME: Without an acting user the view is anonymous and always counts.

package main

import (
	"fmt"

	"github.com/harper/notely/internal/ui"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view <note-id>",
	Short: "Record a view of a note",
	Long: `Record a view by the acting user. Each user counts once per note.
Without --as or $NOTELY_USER the view is anonymous.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		me := actingUser(cmd)
		id, err := resolveNote(cmd, args[0])
		if err != nil {
			return err
		}

		recorded, err := engine.RecordView(cmd.Context(), id, me)
		if err != nil {
			return fmt.Errorf("failed to record view: %w", err)
		}
		views, err := engine.CountViews(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to count views: %w", err)
		}

		if recorded {
			fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Viewed %s (%d views)", ui.ShortID(id), views)))
		} else {
			fmt.Fprintf(out(cmd), "Already viewed %s (%d views)\n", ui.ShortID(id), views)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
