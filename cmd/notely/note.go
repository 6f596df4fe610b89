// ABOUTME: Note commands for creating, listing and showing notes.
// ABOUTME: Content comes from --content or --file; show renders markdown with glamour.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/harper/notely/internal/social"
	"github.com/harper/notely/internal/ui"
	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new note",
	Long:  `Create a note written by the acting user. Content can be provided via --content or --file.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		author, err := actor(cmd)
		if err != nil {
			return err
		}
		contentFlag, _ := cmd.Flags().GetString("content")
		fileFlag, _ := cmd.Flags().GetString("file")
		public, _ := cmd.Flags().GetBool("public")
		image, _ := cmd.Flags().GetString("image")

		content := contentFlag
		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag) //nolint:gosec // User-specified file path is expected CLI behavior
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			content = string(data)
		}

		note, err := engine.CreateNote(cmd.Context(), social.NoteInput{
			AuthorID: author,
			Title:    args[0],
			Content:  strings.TrimSpace(content),
			IsPublic: public,
			Image:    image,
		})
		if err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}

		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Created note %s", note.ID)))
		return nil
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long: `List the public feed newest first with each note's stats.
With --author, list that user's notes instead; private notes only appear
when the author is the acting user.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		author, _ := cmd.Flags().GetString("author")
		w := out(cmd)

		if author == "" {
			feed, err := engine.ListPublicNotes(ctx)
			if err != nil {
				return fmt.Errorf("failed to list notes: %w", err)
			}
			if len(feed) == 0 {
				fmt.Fprintln(w, "No notes found.")
				return nil
			}
			for _, item := range feed {
				fmt.Fprint(w, ui.FormatFeedItem(item.Note, item.Stats))
			}
			return nil
		}

		notes, err := engine.ListNotes(ctx, author)
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}
		self := author == actingUser(cmd)
		shown := 0
		for _, n := range notes {
			if !n.IsPublic && !self {
				continue
			}
			fmt.Fprint(w, ui.FormatNoteListItem(n))
			shown++
		}
		if shown == 0 {
			fmt.Fprintln(w, "No notes found.")
		}
		return nil
	},
}

var noteShowCmd = &cobra.Command{
	Use:   "show <note-id>",
	Short: "Show a note",
	Long:  `Display a note's full content with rendered markdown and its comment threads.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := resolveNote(cmd, args[0])
		if err != nil {
			return err
		}
		note, err := engine.GetNote(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}
		author, _ := engine.GetUser(ctx, note.AuthorID)

		w := out(cmd)
		fmt.Fprint(w, ui.FormatNoteHeader(note, author))
		content, _ := ui.FormatNoteContent(note.Content)
		fmt.Fprint(w, content)

		st, err := engine.NoteStats(ctx, note.ID)
		if err != nil {
			return fmt.Errorf("failed to get note stats: %w", err)
		}
		fmt.Fprint(w, ui.FormatNoteStats(st))

		roots, err := engine.GetCommentTree(ctx, note.ID)
		if err != nil {
			return fmt.Errorf("failed to get comments: %w", err)
		}
		if len(roots) > 0 {
			fmt.Fprint(w, ui.FormatCommentTree(roots, commenterNames(ctx, roots)))
		}
		return nil
	},
}

func init() {
	noteAddCmd.Flags().StringP("content", "c", "", "note content")
	noteAddCmd.Flags().StringP("file", "f", "", "read content from file")
	noteAddCmd.Flags().Bool("public", false, "make the note visible to everyone")
	noteAddCmd.Flags().String("image", "", "image reference to attach")
	noteListCmd.Flags().String("author", "", "list this user's notes instead of the public feed")

	noteCmd.AddCommand(noteAddCmd, noteListCmd, noteShowCmd, noteEditCmd)
	rootCmd.AddCommand(noteCmd)
}
