// ABOUTME: MCP prompts for common social workflows.
// ABOUTME: Guides agents through discussions, notification triage and outreach.

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "summarize-discussion",
		Description: "Summarize the comment threads on a note",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "note_id",
				Description: "ID of the note whose discussion to summarize",
				Required:    true,
			},
		},
	}, s.getSummarizeDiscussionPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "triage-notifications",
		Description: "Walk through a user's unread notifications and mark them read",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "user_id",
				Description: "ID of the user whose notifications to triage",
				Required:    true,
			},
		},
	}, s.getTriageNotificationsPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "engagement-report",
		Description: "Report on how a user's notes are performing",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "user_id",
				Description: "ID of the user to report on",
				Required:    true,
			},
		},
	}, s.getEngagementReportPrompt)
}

func userPrompt(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: text,
				},
			},
		},
	}
}

func (s *Server) getSummarizeDiscussionPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	noteID, ok := req.Params.Arguments["note_id"]
	if !ok || noteID == "" {
		return nil, fmt.Errorf("note_id argument is required")
	}

	return userPrompt(fmt.Sprintf(`Please summarize the discussion on note %s

1. Use the get_note tool to read the note itself
2. Use the get_comments tool to fetch the comment threads
3. Summarize:
   - The main points raised in top-level comments
   - Where replies agreed, disagreed or asked questions
   - Any open questions nobody has answered yet
4. Keep the summary short and attribute points to commenter IDs`, noteID)), nil
}

func (s *Server) getTriageNotificationsPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	userID, ok := req.Params.Arguments["user_id"]
	if !ok || userID == "" {
		return nil, fmt.Errorf("user_id argument is required")
	}

	return userPrompt(fmt.Sprintf(`Help user %s catch up on notifications

1. Use the list_notifications tool to fetch their notifications
2. Group the unread ones by kind (follow, like, comment, reply, share)
3. For comments and replies, use get_comments on the note to show context
4. Suggest which ones deserve a reply
5. Use the mark_read tool on each notification once it has been covered`, userID)), nil
}

func (s *Server) getEngagementReportPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	userID, ok := req.Params.Arguments["user_id"]
	if !ok || userID == "" {
		return nil, fmt.Errorf("user_id argument is required")
	}

	return userPrompt(fmt.Sprintf(`Write an engagement report for user %s

1. Use the user_stats tool for their totals and follow counts
2. Read the notely://user/%s resource for their profile
3. For notes worth highlighting, use note_stats to compare views, likes, bookmarks and comments
4. Point out which notes draw discussion and which are only viewed
5. Suggest one or two concrete ways to grow their audience`, userID, userID)), nil
}
