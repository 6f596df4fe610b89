// ABOUTME: Resolves the short IDs shown in listings to full IDs.
// ABOUTME: Ambiguous or unmatched short IDs are reported as errors.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/notely/internal/models"
	"github.com/spf13/cobra"
)

// matchID finds the id equal to short or ending in it.
func matchID(kind, short string, ids []string) (string, error) {
	var found []string
	for _, id := range ids {
		if id == short {
			return id, nil
		}
		if strings.HasSuffix(id, short) {
			found = append(found, id)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("no %s matches %q", kind, short)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%s id %q is ambiguous (%d matches)", kind, short, len(found))
	}
}

// resolveNote accepts a full note ID, or a short ID matched against the
// public notes and the acting user's own notes.
func resolveNote(cmd *cobra.Command, short string) (string, error) {
	ctx := cmd.Context()
	if _, err := engine.GetNote(ctx, short); err == nil {
		return short, nil
	}
	notes, err := visibleNotes(ctx, actingUser(cmd))
	if err != nil {
		return "", err
	}
	ids := make([]string, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}
	return matchID("note", short, ids)
}

// visibleNotes lists the public notes plus the private notes written by userID.
func visibleNotes(ctx context.Context, userID string) ([]*models.Note, error) {
	feed, err := engine.ListPublicNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	notes := make([]*models.Note, 0, len(feed))
	for _, item := range feed {
		notes = append(notes, item.Note)
	}
	if userID == "" {
		return notes, nil
	}
	own, err := engine.ListNotes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	for _, n := range own {
		if !n.IsPublic {
			notes = append(notes, n)
		}
	}
	return notes, nil
}

func resolveComment(ctx context.Context, noteID, short string) (string, error) {
	roots, err := engine.GetCommentTree(ctx, noteID)
	if err != nil {
		return "", fmt.Errorf("failed to get comments: %w", err)
	}
	var ids []string
	for _, r := range roots {
		r.Walk(func(n *models.CommentNode, _ int) {
			ids = append(ids, n.ID)
		})
	}
	return matchID("comment", short, ids)
}

func resolveNotification(ctx context.Context, userID, short string) (string, error) {
	list, err := engine.ListNotifications(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to list notifications: %w", err)
	}
	ids := make([]string, len(list))
	for i, n := range list {
		ids[i] = n.ID
	}
	return matchID("notification", short, ids)
}

// commenterNames maps the authors in roots to display names.
func commenterNames(ctx context.Context, roots []*models.CommentNode) map[string]string {
	names := map[string]string{}
	for _, r := range roots {
		r.Walk(func(n *models.CommentNode, _ int) {
			if _, ok := names[n.AuthorID]; ok {
				return
			}
			if u, err := engine.GetUser(ctx, n.AuthorID); err == nil {
				names[n.AuthorID] = u.Name
			} else {
				names[n.AuthorID] = ""
			}
		})
	}
	return names
}
