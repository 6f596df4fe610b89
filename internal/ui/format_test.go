// ABOUTME: Tests for terminal UI formatting functions.
// ABOUTME: Validates note, comment thread, and notification display.

package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/harper/notely/internal/models"
)

func TestShortID(t *testing.T) {
	if got := ShortID("0192f0c4-aaaa-bbbb-cccc-1234deadbeef"); got != "deadbeef" {
		t.Errorf("expected trailing 8 chars, got %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("expected short ids unchanged, got %q", got)
	}
}

func TestFormatNoteListItem(t *testing.T) {
	note := models.NewNote("author", "Test Note", "body", false)
	note.Counters = models.Counters{Views: 3, Likes: 2, Comments: 1}

	output := FormatNoteListItem(note)

	if !strings.Contains(output, ShortID(note.ID)) {
		t.Error("expected output to contain short ID")
	}
	if !strings.Contains(output, "Test Note") {
		t.Error("expected output to contain title")
	}
	if !strings.Contains(output, "private") {
		t.Error("expected output to mention visibility")
	}
	if !strings.Contains(output, "3 views") {
		t.Error("expected output to contain view count")
	}
}

func TestFormatFeedItem(t *testing.T) {
	note := models.NewNote("author", "Feed Note", "body", true)

	output := FormatFeedItem(note, models.NoteStats{Views: 4, Likes: 2, Bookmarks: 1, Comments: 3})
	for _, want := range []string{ShortID(note.ID), "Feed Note", "4 views", "2 likes", "1 bookmarks", "3 comments"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestFormatNoteContent(t *testing.T) {
	output, err := FormatNoteContent("# Hello\n\nThis is **bold** text.")
	if err != nil {
		t.Fatalf("failed to format content: %v", err)
	}
	if output == "" {
		t.Error("expected non-empty output")
	}
}

func TestFormatNoteHeader(t *testing.T) {
	note := models.NewNote("u1", "Header", "", true)
	note.Image = "/uploads/cover.png"
	author := &models.User{ID: "u1", Name: "alice"}

	output := FormatNoteHeader(note, author)
	for _, want := range []string{"Header", note.ID, "alice", "public", "/uploads/cover.png"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected header to contain %q", want)
		}
	}

	if strings.Contains(FormatNoteHeader(note, nil), "Author:") {
		t.Error("expected no author line without an author")
	}
}

func TestFormatCommentTree(t *testing.T) {
	now := time.Now()
	root := &models.CommentNode{Comment: &models.Comment{ID: "c1", AuthorID: "u1", Content: "top", CreatedAt: now}}
	reply := &models.CommentNode{Comment: &models.Comment{ID: "c2", AuthorID: "u2-long-identifier", Content: "reply", Attachment: "/f.pdf", CreatedAt: now}}
	root.Replies = []*models.CommentNode{reply}

	output := FormatCommentTree([]*models.CommentNode{root}, map[string]string{"u1": "alice"})

	if !strings.Contains(output, "alice") {
		t.Error("expected author name")
	}
	if !strings.Contains(output, "u2-long-") {
		t.Error("expected short id for unknown author")
	}
	if !strings.Contains(output, "      reply") {
		t.Error("expected reply to be indented")
	}
	if !strings.Contains(output, "/f.pdf") {
		t.Error("expected attachment reference")
	}

	if !strings.Contains(FormatCommentTree(nil, nil), "No comments") {
		t.Error("expected empty state")
	}
}

func TestFormatNotifications(t *testing.T) {
	unread := models.NewNotification("u1", models.KindLike, "bob liked your note")
	read := models.NewNotification("u1", "poke", "")
	read.IsRead = true

	output := FormatNotifications([]*models.Notification{unread, read})
	if !strings.Contains(output, "bob liked your note") {
		t.Error("expected message")
	}
	if !strings.Contains(output, "poke") {
		t.Error("expected kind for notifications without a message")
	}
	if !strings.Contains(FormatNotifications(nil), "No notifications") {
		t.Error("expected empty state")
	}
}

func TestFormatStats(t *testing.T) {
	u := &models.User{ID: "u1", Name: "alice"}
	output := FormatUserStats(u, &models.UserStats{TotalNotes: 3, TotalPublicNotes: 2, Followers: 7})
	if !strings.Contains(output, "alice") || !strings.Contains(output, "Followers:") {
		t.Error("expected user stats block")
	}

	output = FormatNoteStats(&models.NoteStats{Views: 5, Likes: 2})
	if !strings.Contains(output, "5") || !strings.Contains(output, "Likes:") {
		t.Error("expected note stats line")
	}
}

func TestStatusMessages(t *testing.T) {
	if !strings.Contains(Success("done"), "done") {
		t.Error("expected success message")
	}
	if !strings.Contains(Error("failed"), "failed") {
		t.Error("expected error message")
	}
}
