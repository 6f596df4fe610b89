// ABOUTME: MCP resources for exposing notes and users as readable resources.
// ABOUTME: Notes render as markdown with their discussion; users as JSON stats.

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harper/notely/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	notePrefix = "notely://note/"
	userPrefix = "notely://user/"
)

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: notePrefix + "{id}",
			Name:        "Note",
			Description: "A note with its counters and comment threads",
			MIMEType:    "text/markdown",
		},
		s.handleReadNote,
	)

	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: userPrefix + "{id}",
			Name:        "User",
			Description: "A user's profile and activity statistics",
			MIMEType:    "application/json",
		},
		s.handleReadUser,
	)
}

func resourceID(uri, prefix string) (string, error) {
	id, ok := strings.CutPrefix(uri, prefix)
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", fmt.Errorf("invalid resource URI: %s", uri)
	}
	return id, nil
}

func (s *Server) handleReadNote(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	id, err := resourceID(req.Params.URI, notePrefix)
	if err != nil {
		return nil, err
	}

	note, err := s.engine.GetNote(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	roots, err := s.engine.GetCommentTree(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", note.Title)
	fmt.Fprintf(&b, "**Views:** %d  **Likes:** %d  **Comments:** %d\n\n",
		note.Counters.Views, note.Counters.Likes, note.Counters.Comments)
	b.WriteString(note.Content)
	b.WriteString("\n")
	if len(roots) > 0 {
		b.WriteString("\n## Discussion\n\n")
		writeThread(&b, roots, 0)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     b.String(),
			},
		},
	}, nil
}

func writeThread(b *strings.Builder, nodes []*models.CommentNode, depth int) {
	for _, n := range nodes {
		fmt.Fprintf(b, "%s- %s (%s)\n", strings.Repeat("  ", depth), n.Content, n.AuthorID)
		writeThread(b, n.Replies, depth+1)
	}
}

func (s *Server) handleReadUser(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	id, err := resourceID(req.Params.URI, userPrefix)
	if err != nil {
		return nil, err
	}

	user, err := s.engine.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	st, err := s.engine.UserStats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}

	data, err := json.MarshalIndent(struct {
		User  *models.User      `json:"user"`
		Stats *models.UserStats `json:"stats"`
	}{user, st}, "", "  ")
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}
