// ABOUTME: Edit command for modifying existing notes.
// ABOUTME: Flags change single fields; with none, content opens in $EDITOR.

package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/harper/notely/internal/social"
	"github.com/harper/notely/internal/ui"
	"github.com/spf13/cobra"
)

var noteEditCmd = &cobra.Command{
	Use:   "edit <note-id>",
	Short: "Edit a note",
	Long: `Change a note's title, content, visibility or image.
Without any flags the content is opened in $EDITOR.`,
	Args: cobra.ExactArgs(1),
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

		flags := cmd.Flags()
		var upd social.NoteUpdate
		changed := false

		if flags.Changed("title") {
			title, _ := flags.GetString("title")
			upd.Title = &title
			changed = true
		}
		if flags.Changed("content") {
			content, _ := flags.GetString("content")
			content = strings.TrimSpace(content)
			upd.Content = &content
			changed = true
		}
		if file, _ := flags.GetString("file"); file != "" {
			data, err := os.ReadFile(file) //nolint:gosec // User-specified file path is expected CLI behavior
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			content := strings.TrimSpace(string(data))
			upd.Content = &content
			changed = true
		}
		if flags.Changed("public") {
			public, _ := flags.GetBool("public")
			upd.IsPublic = &public
			changed = true
		}
		if flags.Changed("image") {
			image, _ := flags.GetString("image")
			upd.Image = &image
			changed = true
		}
		if remove, _ := flags.GetBool("remove-image"); remove {
			none := ""
			upd.Image = &none
			changed = true
		}

		if !changed {
			content, err := openEditor(note.Content)
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
			content = strings.TrimSpace(content)
			if content == note.Content {
				fmt.Fprintln(out(cmd), "No changes made.")
				return nil
			}
			upd.Content = &content
		}

		updated, err := engine.UpdateNote(ctx, note.ID, upd)
		if err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}

		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Updated note %s", ui.ShortID(updated.ID))))
		return nil
	},
}

func openEditor(initial string) (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}

	tmpFile, err := os.CreateTemp("", "notely-*.md")
	if err != nil {
		return "", err
	}
	defer func() {
		_ = os.Remove(tmpFile.Name())
	}()

	if _, err := tmpFile.WriteString(initial); err != nil {
		_ = tmpFile.Close()
		return "", fmt.Errorf("failed to write initial content: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	cmd := exec.Command(editor, tmpFile.Name()) //nolint:gosec // Launching $EDITOR is expected CLI behavior
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func init() {
	noteEditCmd.Flags().String("title", "", "new title")
	noteEditCmd.Flags().StringP("content", "c", "", "new content")
	noteEditCmd.Flags().StringP("file", "f", "", "read new content from file")
	noteEditCmd.Flags().Bool("public", false, "set visibility; --public=false makes the note private")
	noteEditCmd.Flags().String("image", "", "new image reference")
	noteEditCmd.Flags().Bool("remove-image", false, "remove the note's image")
}
