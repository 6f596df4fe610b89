// ABOUTME: Reconcile command repairing drifted note counters.
// ABOUTME: Recounts views, likes and comments from the stored records.

package main

import (
	"fmt"

	"github.com/harper/notely/internal/ui"
	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile [note-id]",
	Short: "Recompute note counters from stored activity",
	Long:  `Recompute the cached counters of one note, or of every note when no ID is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var ids []string
		if len(args) == 1 {
			id, err := resolveNote(cmd, args[0])
			if err != nil {
				return err
			}
			ids = []string{id}
		} else {
			notes, err := engine.ListNotes(ctx, "")
			if err != nil {
				return fmt.Errorf("failed to list notes: %w", err)
			}
			for _, n := range notes {
				ids = append(ids, n.ID)
			}
		}

		fixed := 0
		for _, id := range ids {
			changed, err := engine.ReconcileCounters(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to reconcile %s: %w", ui.ShortID(id), err)
			}
			if changed {
				fixed++
			}
		}

		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Checked %d notes, fixed %d", len(ids), fixed)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}
