// ABOUTME: Terminal UI formatting for notely output.
// ABOUTME: Uses glamour for markdown and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/harper/notely/internal/models"
)

var (
	faint  = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

const dateFormat = "2006-01-02 15:04"

// ShortID returns the trailing characters of id used in listings. IDs are
// time-ordered, so their leading characters repeat between nearby records.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}

func visibility(n *models.Note) string {
	if n.IsPublic {
		return "public"
	}
	return "private"
}

func FormatNoteListItem(note *models.Note) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("  %s  %s %s\n", faint(ShortID(note.ID)), bold(note.Title), faint("("+visibility(note)+")")))
	sb.WriteString(fmt.Sprintf("            %s\n", faint(fmt.Sprintf("%d views · %d likes · %d comments",
		note.Counters.Views, note.Counters.Likes, note.Counters.Comments))))
	sb.WriteString(fmt.Sprintf("            %s %s\n", faint("Updated:"), faint(note.UpdatedAt.Format(dateFormat))))

	return sb.String()
}

// FormatFeedItem renders a public feed entry with its live stats.
func FormatFeedItem(note *models.Note, st models.NoteStats) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("  %s  %s\n", faint(ShortID(note.ID)), bold(note.Title)))
	sb.WriteString(fmt.Sprintf("            %s\n", faint(fmt.Sprintf("%d views · %d likes · %d bookmarks · %d comments",
		st.Views, st.Likes, st.Bookmarks, st.Comments))))
	sb.WriteString(fmt.Sprintf("            %s %s\n", faint("Created:"), faint(note.CreatedAt.Format(dateFormat))))

	return sb.String()
}

func FormatNoteContent(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

// FormatNoteHeader prints the note's metadata. author may be nil.
func FormatNoteHeader(note *models.Note, author *models.User) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(note.Title)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(note.ID)))
	if author != nil {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Author:"), cyan(author.Name)))
	}
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Visibility:"), visibility(note)))
	if note.Image != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Image:"), note.Image))
	}
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Created:"), faint(note.CreatedAt.Format(dateFormat))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Updated:"), faint(note.UpdatedAt.Format(dateFormat))))

	sb.WriteString(Separator())
	return sb.String()
}

// FormatCommentTree renders threads with replies indented under their parent.
// names maps author ids to display names; unknown ids print as short ids.
func FormatCommentTree(roots []*models.CommentNode, names map[string]string) string {
	if len(roots) == 0 {
		return faint("  No comments yet.") + "\n"
	}

	var sb strings.Builder
	for _, root := range roots {
		root.Walk(func(n *models.CommentNode, depth int) {
			indent := strings.Repeat("    ", depth)
			author := names[n.AuthorID]
			if author == "" {
				author = ShortID(n.AuthorID)
			}
			sb.WriteString(fmt.Sprintf("%s  %s %s %s\n", indent, cyan(author), faint(ShortID(n.ID)), faint(n.CreatedAt.Format(dateFormat))))
			for _, line := range strings.Split(n.Content, "\n") {
				sb.WriteString(fmt.Sprintf("%s  %s\n", indent, line))
			}
			if n.Attachment != "" {
				sb.WriteString(fmt.Sprintf("%s  %s %s\n", indent, faint("Attachment:"), n.Attachment))
			}
		})
	}
	return sb.String()
}

func FormatNotifications(list []*models.Notification) string {
	if len(list) == 0 {
		return faint("  No notifications.") + "\n"
	}

	var sb strings.Builder
	for _, n := range list {
		marker := " "
		if !n.IsRead {
			marker = yellow("•")
		}
		msg := n.Message
		if msg == "" {
			msg = faint(string(n.Kind))
		}
		sb.WriteString(fmt.Sprintf("%s %s  %s %s\n", marker, faint(ShortID(n.ID)), msg, faint(n.CreatedAt.Format(dateFormat))))
	}
	return sb.String()
}

func FormatUserStats(u *models.User, st *models.UserStats) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s %s\n", bold(u.Name), faint(u.ID)))
	sb.WriteString(Separator())
	rows := []struct {
		label string
		value int
	}{
		{"Notes", st.TotalNotes},
		{"Public notes", st.TotalPublicNotes},
		{"Bookmarks", st.TotalBookmarks},
		{"Views", st.TotalViews},
		{"Likes", st.TotalLikes},
		{"Followers", st.Followers},
		{"Following", st.Following},
	}
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("  %-14s %d\n", faint(r.label+":"), r.value))
	}
	return sb.String()
}

func FormatNoteStats(st *models.NoteStats) string {
	return fmt.Sprintf("  %s %d  %s %d  %s %d  %s %d\n",
		faint("Views:"), st.Views,
		faint("Likes:"), st.Likes,
		faint("Bookmarks:"), st.Bookmarks,
		faint("Comments:"), st.Comments)
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}
