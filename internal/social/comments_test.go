// ABOUTME: Tests for comments and comment tree assembly.
// ABOUTME: Covers replies, broken parents, cycles and notifications.

package social

import (
	"context"
	"testing"
	"time"

	"github.com/harper/notely/internal/models"
	"github.com/harper/notely/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(nodes []*models.CommentNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func TestGetCommentTree(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *fixture) {
		alice := f.user("alice")
		bob := f.user("bob")
		note := f.note(alice.ID, true)

		add := func(author, content, parent string) *models.CommentNode {
			c, err := f.e.AddComment(f.ctx, CommentInput{NoteID: note.ID, AuthorID: author, Content: content, ParentCommentID: parent})
			require.NoError(t, err)
			assert.NotNil(t, c.Replies)
			assert.Empty(t, c.Replies)
			return c
		}
		a := add(bob.ID, "A", "")
		b := add(alice.ID, "B", "")
		c := add(alice.ID, "C", a.ID)
		d := add(bob.ID, "D", c.ID)

		roots, err := f.e.GetCommentTree(f.ctx, note.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{a.ID, b.ID}, ids(roots))
		assert.Equal(t, []string{c.ID}, ids(roots[0].Replies))
		assert.Equal(t, []string{d.ID}, ids(roots[0].Replies[0].Replies))
		assert.Empty(t, roots[1].Replies)

		count, err := f.e.CountComments(f.ctx, note.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, count)

		got, err := f.e.GetNote(f.ctx, note.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, got.Counters.Comments)
	})
}

func TestAddCommentNotifications(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *fixture) {
		alice := f.user("alice")
		bob := f.user("bob")
		carol := f.user("carol")
		note := f.note(alice.ID, true)

		root, err := f.e.AddComment(f.ctx, CommentInput{NoteID: note.ID, AuthorID: bob.ID, Content: "nice"})
		require.NoError(t, err)

		list := f.notifications(alice.ID)
		require.Len(t, list, 1)
		assert.Equal(t, models.KindComment, list[0].Kind)
		assert.Equal(t, "bob commented on your note", list[0].Message)
		assert.Equal(t, root.ID, list[0].CommentID)

		reply, err := f.e.AddComment(f.ctx, CommentInput{NoteID: note.ID, AuthorID: carol.ID, Content: "agreed", ParentCommentID: root.ID})
		require.NoError(t, err)

		list = f.notifications(bob.ID)
		require.Len(t, list, 1)
		assert.Equal(t, models.KindReply, list[0].Kind)
		assert.Equal(t, "carol replied to your comment", list[0].Message)
		assert.Equal(t, reply.ID, list[0].CommentID)
		assert.Len(t, f.notifications(alice.ID), 1, "replies notify the parent's author only")

		_, err = f.e.AddComment(f.ctx, CommentInput{NoteID: note.ID, AuthorID: bob.ID, Content: "self reply", ParentCommentID: root.ID})
		require.NoError(t, err)
		_, err = f.e.AddComment(f.ctx, CommentInput{NoteID: note.ID, AuthorID: alice.ID, Content: "own note"})
		require.NoError(t, err)
		assert.Len(t, f.notifications(bob.ID), 1)
		assert.Len(t, f.notifications(alice.ID), 1)
	})
}

func TestAddCommentValidation(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *fixture) {
		alice := f.user("alice")
		note := f.note(alice.ID, true)
		other := f.note(alice.ID, true)
		elsewhere, err := f.e.AddComment(f.ctx, CommentInput{NoteID: other.ID, AuthorID: alice.ID, Content: "x"})
		require.NoError(t, err)

		cases := map[string]CommentInput{
			"empty content":        {NoteID: note.ID, AuthorID: alice.ID},
			"blank content":        {NoteID: note.ID, AuthorID: alice.ID, Content: " \n\t "},
			"unknown author":       {NoteID: note.ID, AuthorID: "ghost", Content: "x"},
			"unknown note":         {NoteID: "missing", AuthorID: alice.ID, Content: "x"},
			"unknown parent":       {NoteID: note.ID, AuthorID: alice.ID, Content: "x", ParentCommentID: "missing"},
			"parent on other note": {NoteID: note.ID, AuthorID: alice.ID, Content: "x", ParentCommentID: elsewhere.ID},
		}
		for name, in := range cases {
			_, err := f.e.AddComment(f.ctx, in)
			assert.ErrorIs(t, err, ErrInvalidInput, name)
		}

		count, err := f.e.CountComments(f.ctx, note.ID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestGetCommentTreeBrokenParentIsRoot(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *fixture) {
		alice := f.user("alice")
		note := f.note(alice.ID, true)
		first, err := f.e.AddComment(f.ctx, CommentInput{NoteID: note.ID, AuthorID: alice.ID, Content: "first"})
		require.NoError(t, err)

		orphan := models.NewComment(note.ID, alice.ID, "orphan")
		orphan.ParentCommentID = "deleted-long-ago"
		orphan.CreatedAt = time.Now().Add(time.Second)
		require.NoError(t, f.e.Store().Update(context.Background(), func(tx store.Tx) error {
			return tx.CreateComment(orphan)
		}))

		roots, err := f.e.GetCommentTree(f.ctx, note.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{first.ID, orphan.ID}, ids(roots))
	})
}

func comment(id, parent string, at time.Time) *models.Comment {
	return &models.Comment{ID: id, NoteID: "n", AuthorID: "u", Content: id, ParentCommentID: parent, CreatedAt: at}
}

func TestBuildCommentTree(t *testing.T) {
	base := time.Now()

	roots := BuildCommentTree(nil)
	assert.NotNil(t, roots)
	assert.Empty(t, roots)

	roots = BuildCommentTree([]*models.Comment{
		comment("a", "", base),
		comment("b", "", base.Add(1)),
		comment("c", "a", base.Add(2)),
		comment("d", "c", base.Add(3)),
		comment("e", "a", base.Add(4)),
	})
	assert.Equal(t, []string{"a", "b"}, ids(roots))
	assert.Equal(t, []string{"c", "e"}, ids(roots[0].Replies))
	assert.Equal(t, []string{"d"}, ids(roots[0].Replies[0].Replies))

	var depths []int
	roots[0].Walk(func(_ *models.CommentNode, depth int) { depths = append(depths, depth) })
	assert.Equal(t, []int{0, 1, 2, 1}, depths)
}

func TestBuildCommentTreeSelfParent(t *testing.T) {
	roots := BuildCommentTree([]*models.Comment{comment("a", "a", time.Now())})
	assert.Equal(t, []string{"a"}, ids(roots))
	assert.Empty(t, roots[0].Replies)
}

func TestBuildCommentTreeCycle(t *testing.T) {
	base := time.Now()
	roots := BuildCommentTree([]*models.Comment{
		comment("root", "", base),
		comment("x", "y", base.Add(1)),
		comment("y", "x", base.Add(2)),
		comment("z", "y", base.Add(3)),
	})

	assert.Equal(t, []string{"root", "x"}, ids(roots))
	assert.Equal(t, []string{"y"}, ids(roots[1].Replies))
	assert.Equal(t, []string{"z"}, ids(roots[1].Replies[0].Replies))

	seen := 0
	for _, r := range roots {
		r.Walk(func(*models.CommentNode, int) { seen++ })
	}
	assert.Equal(t, 4, seen, "every comment appears exactly once")
}
