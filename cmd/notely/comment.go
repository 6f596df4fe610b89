// ABOUTME: Comment commands for adding comments and reading threads.
// ABOUTME: --parent turns a comment into a reply.

package main

import (
	"fmt"

	"github.com/harper/notely/internal/social"
	"github.com/harper/notely/internal/ui"
	"github.com/spf13/cobra"
)

var commentCmd = &cobra.Command{
	Use:   "comment <note-id> <text>",
	Short: "Comment on a note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		me, err := actor(cmd)
		if err != nil {
			return err
		}
		parent, _ := cmd.Flags().GetString("parent")
		attachment, _ := cmd.Flags().GetString("attachment")

		noteID, err := resolveNote(cmd, args[0])
		if err != nil {
			return err
		}
		if parent != "" {
			if parent, err = resolveComment(ctx, noteID, parent); err != nil {
				return err
			}
		}

		c, err := engine.AddComment(ctx, social.CommentInput{
			NoteID:          noteID,
			AuthorID:        me,
			Content:         args[1],
			ParentCommentID: parent,
			Attachment:      attachment,
		})
		if err != nil {
			return fmt.Errorf("failed to add comment: %w", err)
		}

		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Added comment %s", ui.ShortID(c.ID))))
		return nil
	},
}

var commentsCmd = &cobra.Command{
	Use:   "comments <note-id>",
	Short: "Show a note's comment threads",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		noteID, err := resolveNote(cmd, args[0])
		if err != nil {
			return err
		}

		roots, err := engine.GetCommentTree(ctx, noteID)
		if err != nil {
			return fmt.Errorf("failed to get comments: %w", err)
		}
		fmt.Fprint(out(cmd), ui.FormatCommentTree(roots, commenterNames(ctx, roots)))
		return nil
	},
}

func init() {
	commentCmd.Flags().String("parent", "", "comment ID to reply to")
	commentCmd.Flags().String("attachment", "", "attachment reference")
	rootCmd.AddCommand(commentCmd, commentsCmd)
}
