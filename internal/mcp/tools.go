// ABOUTME: MCP tools for social interactions on notes.
// ABOUTME: Maps CLI functionality to the MCP tool interface.

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harper/notely/internal/social"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	noteUser := json.RawMessage(`{
		"type": "object",
		"properties": {
			"note_id": {"type": "string", "description": "Note ID"},
			"user_id": {"type": "string", "description": "Acting user ID"}
		},
		"required": ["note_id", "user_id"]
	}`)
	noteOnly := json.RawMessage(`{
		"type": "object",
		"properties": {
			"note_id": {"type": "string", "description": "Note ID"}
		},
		"required": ["note_id"]
	}`)
	userOnly := json.RawMessage(`{
		"type": "object",
		"properties": {
			"user_id": {"type": "string", "description": "User ID"}
		},
		"required": ["user_id"]
	}`)
	followPair := json.RawMessage(`{
		"type": "object",
		"properties": {
			"followed_id": {"type": "string", "description": "User being followed"},
			"follower_id": {"type": "string", "description": "User doing the following"}
		},
		"required": ["followed_id", "follower_id"]
	}`)

	s.server.AddTool(&mcp.Tool{
		Name:        "create_note",
		Description: "Create a note for an existing user",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"author_id": {"type": "string", "description": "Author user ID"},
				"title": {"type": "string", "description": "Note title"},
				"content": {"type": "string", "description": "Note content (markdown)"},
				"is_public": {"type": "boolean", "description": "Visible to other users", "default": false},
				"image": {"type": "string", "description": "Optional image reference"}
			},
			"required": ["author_id", "title"]
		}`),
	}, s.handleCreateNote)

	s.server.AddTool(&mcp.Tool{
		Name:        "update_note",
		Description: "Change a note's title, content, visibility or image; omitted fields are kept",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"note_id": {"type": "string", "description": "Note ID"},
				"title": {"type": "string", "description": "New title"},
				"content": {"type": "string", "description": "New content (markdown)"},
				"is_public": {"type": "boolean", "description": "New visibility"},
				"image": {"type": "string", "description": "New image reference"},
				"remove_image": {"type": "boolean", "description": "Remove the note's image", "default": false}
			},
			"required": ["note_id"]
		}`),
	}, s.handleUpdateNote)

	s.server.AddTool(&mcp.Tool{Name: "get_note", Description: "Get a note with its counters", InputSchema: noteOnly}, s.handleGetNote)
	s.server.AddTool(&mcp.Tool{
		Name:        "list_public_notes",
		Description: "List public notes newest first with their views, likes, bookmarks and comments",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListPublicNotes)
	s.server.AddTool(&mcp.Tool{Name: "toggle_follow", Description: "Follow a user, or unfollow if already following", InputSchema: followPair}, s.handleToggleFollow)
	s.server.AddTool(&mcp.Tool{Name: "is_following", Description: "Check whether one user follows another", InputSchema: followPair}, s.handleIsFollowing)
	s.server.AddTool(&mcp.Tool{Name: "toggle_like", Description: "Like a note, or remove the like", InputSchema: noteUser}, s.handleToggleLike)
	s.server.AddTool(&mcp.Tool{Name: "toggle_bookmark", Description: "Bookmark a note, or remove the bookmark", InputSchema: noteUser}, s.handleToggleBookmark)
	s.server.AddTool(&mcp.Tool{Name: "list_bookmarks", Description: "List the notes a user bookmarked", InputSchema: userOnly}, s.handleListBookmarks)

	s.server.AddTool(&mcp.Tool{
		Name:        "record_view",
		Description: "Record a view of a note; omit user_id for an anonymous visit",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"note_id": {"type": "string", "description": "Note ID"},
				"user_id": {"type": "string", "description": "Viewer user ID (optional)"}
			},
			"required": ["note_id"]
		}`),
	}, s.handleRecordView)

	s.server.AddTool(&mcp.Tool{
		Name:        "add_comment",
		Description: "Comment on a note, or reply to a comment",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"note_id": {"type": "string", "description": "Note ID"},
				"author_id": {"type": "string", "description": "Commenting user ID"},
				"content": {"type": "string", "description": "Comment text"},
				"parent_comment_id": {"type": "string", "description": "Comment being replied to"},
				"attachment": {"type": "string", "description": "Optional attachment reference"}
			},
			"required": ["note_id", "author_id", "content"]
		}`),
	}, s.handleAddComment)

	s.server.AddTool(&mcp.Tool{Name: "get_comments", Description: "Get a note's comment threads", InputSchema: noteOnly}, s.handleGetComments)
	s.server.AddTool(&mcp.Tool{Name: "list_notifications", Description: "List a user's notifications, newest first", InputSchema: userOnly}, s.handleListNotifications)

	s.server.AddTool(&mcp.Tool{
		Name:        "mark_read",
		Description: "Mark a notification as read",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"notification_id": {"type": "string", "description": "Notification ID"}
			},
			"required": ["notification_id"]
		}`),
	}, s.handleMarkRead)

	s.server.AddTool(&mcp.Tool{Name: "user_stats", Description: "Get a user's note, audience and follow statistics", InputSchema: userOnly}, s.handleUserStats)
	s.server.AddTool(&mcp.Tool{Name: "note_stats", Description: "Get a note's views, likes, bookmarks and comments", InputSchema: noteOnly}, s.handleNoteStats)

	s.server.AddTool(&mcp.Tool{
		Name:        "share_note",
		Description: "Share a note with another user",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"note_id": {"type": "string", "description": "Note ID"},
				"actor_id": {"type": "string", "description": "Sharing user ID"},
				"recipient_id": {"type": "string", "description": "Receiving user ID"}
			},
			"required": ["note_id", "actor_id", "recipient_id"]
		}`),
	}, s.handleShareNote)

	s.server.AddTool(&mcp.Tool{Name: "delete_note", Description: "Delete a note with its comments, likes, bookmarks and views", InputSchema: noteOnly}, s.handleDeleteNote)
}

type noteUserParams struct {
	NoteID string `json:"note_id"`
	UserID string `json:"user_id"`
}

type followParams struct {
	FollowedID string `json:"followed_id"`
	FollowerID string `json:"follower_id"`
}

func decode(req *mcp.CallToolRequest, v any) error {
	if len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, v)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	res := textResult(fmt.Sprintf(format, args...))
	res.IsError = true
	return res
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("failed to encode result: %v", err)
	}
	return textResult(string(data))
}

// Tool handlers.
func (s *Server) handleCreateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		AuthorID string `json:"author_id"`
		Title    string `json:"title"`
		Content  string `json:"content"`
		IsPublic bool   `json:"is_public"`
		Image    string `json:"image"`
	}
	if err := decode(req, &params); err != nil {
		return nil, err
	}

	note, err := s.engine.CreateNote(ctx, social.NoteInput{
		AuthorID: params.AuthorID,
		Title:    params.Title,
		Content:  params.Content,
		IsPublic: params.IsPublic,
		Image:    params.Image,
	})
	if err != nil {
		return errorResult("failed to create note: %v", err), nil
	}
	return textResult(fmt.Sprintf("Created note %s", note.ID)), nil
}

func (s *Server) handleGetNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params noteUserParams
	if err := decode(req, &params); err != nil {
		return nil, err
	}

	note, err := s.engine.GetNote(ctx, params.NoteID)
	if err != nil {
		return errorResult("failed to get note: %v", err), nil
	}
	return jsonResult(note), nil
}

func (s *Server) handleUpdateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		NoteID      string  `json:"note_id"`
		Title       *string `json:"title"`
		Content     *string `json:"content"`
		IsPublic    *bool   `json:"is_public"`
		Image       *string `json:"image"`
		RemoveImage bool    `json:"remove_image"`
	}
	if err := decode(req, &params); err != nil {
		return nil, err
	}

	upd := social.NoteUpdate{
		Title:    params.Title,
		Content:  params.Content,
		IsPublic: params.IsPublic,
		Image:    params.Image,
	}
	if params.RemoveImage {
		none := ""
		upd.Image = &none
	}
	note, err := s.engine.UpdateNote(ctx, params.NoteID, upd)
	if err != nil {
		return errorResult("failed to update note: %v", err), nil
	}
	return jsonResult(note), nil
}

func (s *Server) handleListPublicNotes(ctx context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	feed, err := s.engine.ListPublicNotes(ctx)
	if err != nil {
		return errorResult("failed to list public notes: %v", err), nil
	}
	return jsonResult(feed), nil
}

func (s *Server) handleToggleFollow(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params followParams
	if err := decode(req, &params); err != nil {
		return nil, err
	}

	following, err := s.engine.ToggleFollow(ctx, params.FollowedID, params.FollowerID)
	if err != nil {
		return errorResult("failed to toggle follow: %v", err), nil
	}
	return jsonResult(map[string]bool{"following": following}), nil
}

func (s *Server) handleIsFollowing(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params followParams
	if err := decode(req, &params); err != nil {
		return nil, err
	}

	following, err := s.engine.IsFollowing(ctx, params.FollowedID, params.FollowerID)
	if err != nil {
		return errorResult("failed to check follow: %v", err), nil
	}
	return jsonResult(map[string]bool{"following": following}), nil
}

func (s *Server) handleToggleLike(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params noteUserParams
	if err := decode(req, &params); err != nil {
		return nil, err
	}

	liked, err := s.engine.ToggleLike(ctx, params.NoteID, params.UserID)
	if err != nil {
		return errorResult("failed to toggle like: %v", err), nil
	}
	likes, err := s.engine.CountLikes(ctx, params.NoteID)
	if err != nil {
		return errorResult("failed to count likes: %v", err), nil
	}
	return jsonResult(map[string]any{"liked": liked, "likes": likes}), nil
}

func (s *Server) handleToggleBookmark(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params noteUserParams
	if err := decode(req, &params); err != nil {
		return nil, err
	}

	bookmarked, err := s.engine.ToggleBookmark(ctx, params.NoteID, params.UserID)
	if err != nil {
		return errorResult("failed to toggle bookmark: %v", err), nil
	}
	return jsonResult(map[string]bool{"bookmarked": bookmarked}), nil
}

func (s *Server) handleListBookmarks(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params noteUserParams
	if err := decode(req, &params); err != nil {
		return nil, err
	}

	notes, err := s.engine.ListBookmarkedNotes(ctx, params.UserID)
	if err != nil {
		return errorResult("failed to list bookmarks: %v", err), nil
	}
	return jsonResult(notes), nil
}

func (s *Server) handleRecordView(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params noteUserParams
	if err := decode(req, &params); err != nil {
		return nil, err
	}

	recorded, err := s.engine.RecordView(ctx, params.NoteID, params.UserID)
	if err != nil {
		return errorResult("failed to record view: %v", err), nil
	}
	views, err := s.engine.CountViews(ctx, params.NoteID)
	if err != nil {
		return errorResult("failed to count views: %v", err), nil
	}
	return jsonResult(map[string]any{"recorded": recorded, "views": views}), nil
}

func (s *Server) handleAddComment(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		NoteID          string `json:"note_id"`
		AuthorID        string `json:"author_id"`
		Content         string `json:"content"`
		ParentCommentID string `json:"parent_comment_id"`
		Attachment      string `json:"attachment"`
	}
	if err := decode(req, &params); err != nil {
		return nil, err
	}

	c, err := s.engine.AddComment(ctx, social.CommentInput{
		NoteID:          params.NoteID,
		AuthorID:        params.AuthorID,
		Content:         params.Content,
		ParentCommentID: params.ParentCommentID,
		Attachment:      params.Attachment,
	})
	if err != nil {
		return errorResult("failed to add comment: %v", err), nil
	}
	return jsonResult(c), nil
}

func (s *Server) handleGetComments(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params noteUserParams
	if err := decode(req, &params); err != nil {
		return nil, err
	}

	roots, err := s.engine.GetCommentTree(ctx, params.NoteID)
	if err != nil {
		return errorResult("failed to get comments: %v", err), nil
	}
	return jsonResult(roots), nil
}

func (s *Server) handleListNotifications(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params noteUserParams
	if err := decode(req, &params); err != nil {
		return nil, err
	}

	list, err := s.engine.ListNotifications(ctx, params.UserID)
	if err != nil {
		return errorResult("failed to list notifications: %v", err), nil
	}
	return jsonResult(list), nil
}

func (s *Server) handleMarkRead(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		NotificationID string `json:"notification_id"`
	}
	if err := decode(req, &params); err != nil {
		return nil, err
	}

	if err := s.engine.MarkRead(ctx, params.NotificationID); err != nil {
		return errorResult("failed to mark read: %v", err), nil
	}
	return textResult(fmt.Sprintf("Marked %s as read", params.NotificationID)), nil
}

func (s *Server) handleUserStats(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params noteUserParams
	if err := decode(req, &params); err != nil {
		return nil, err
	}

	st, err := s.engine.UserStats(ctx, params.UserID)
	if err != nil {
		return errorResult("failed to get user stats: %v", err), nil
	}
	return jsonResult(st), nil
}

func (s *Server) handleNoteStats(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params noteUserParams
	if err := decode(req, &params); err != nil {
		return nil, err
	}

	st, err := s.engine.NoteStats(ctx, params.NoteID)
	if err != nil {
		return errorResult("failed to get note stats: %v", err), nil
	}
	return jsonResult(st), nil
}

func (s *Server) handleShareNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		NoteID      string `json:"note_id"`
		ActorID     string `json:"actor_id"`
		RecipientID string `json:"recipient_id"`
	}
	if err := decode(req, &params); err != nil {
		return nil, err
	}

	if _, err := s.engine.ShareNote(ctx, params.NoteID, params.ActorID, params.RecipientID); err != nil {
		return errorResult("failed to share note: %v", err), nil
	}
	return textResult(fmt.Sprintf("Shared note %s", params.NoteID)), nil
}

func (s *Server) handleDeleteNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params noteUserParams
	if err := decode(req, &params); err != nil {
		return nil, err
	}

	res, err := s.engine.CascadeDeleteNote(ctx, params.NoteID)
	if err != nil {
		return errorResult("failed to delete note: %v", err), nil
	}
	return jsonResult(map[string]any{"deleted": params.NoteID, "removed": res}), nil
}
