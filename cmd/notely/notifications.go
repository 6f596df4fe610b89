// ABOUTME: Notification commands for listing and acknowledging notifications.
// ABOUTME: Unread notifications are marked with a bullet.

package main

import (
	"fmt"

	"github.com/harper/notely/internal/ui"
	"github.com/spf13/cobra"
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List your notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		me, err := actor(cmd)
		if err != nil {
			return err
		}

		list, err := engine.ListNotifications(cmd.Context(), me)
		if err != nil {
			return fmt.Errorf("failed to list notifications: %w", err)
		}
		unread, err := engine.UnreadCount(cmd.Context(), me)
		if err != nil {
			return fmt.Errorf("failed to count unread: %w", err)
		}

		w := out(cmd)
		fmt.Fprintf(w, "%d unread\n", unread)
		fmt.Fprint(w, ui.FormatNotifications(list))
		return nil
	},
}

var readCmd = &cobra.Command{
	Use:   "read <notification-id>",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		me, err := actor(cmd)
		if err != nil {
			return err
		}
		id, err := resolveNotification(cmd.Context(), me, args[0])
		if err != nil {
			return err
		}

		if err := engine.MarkRead(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to mark read: %w", err)
		}
		fmt.Fprintln(out(cmd), ui.Success("Marked "+ui.ShortID(id)+" as read"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(notificationsCmd, readCmd)
}
