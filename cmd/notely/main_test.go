// ABOUTME: End-to-end tests driving the CLI against a temporary SQLite database.
// ABOUTME: Each test isolates config and data directories from the real home.

package main

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/harper/notely/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	uuidRe  = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)
	shortRe = regexp.MustCompile(`comment ([0-9a-f]{8})`)
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("NOTELY_BACKEND", "sqlite")
	t.Setenv("NOTELY_SQLITE_PATH", filepath.Join(dir, "notely.db"))
	t.Setenv("NOTELY_USER", "")
	t.Setenv("NOTELY_LOG_LEVEL", "error")
	t.Setenv("NOTELY_LOG_FILE", "")
	t.Chdir(dir)
	color.NoColor = true
	return dir
}

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, out)
	return out
}

func createdID(t *testing.T, out string) string {
	t.Helper()
	id := uuidRe.FindString(out)
	require.NotEmpty(t, id, out)
	return id
}

func TestSocialWorkflow(t *testing.T) {
	isolate(t)

	alice := createdID(t, mustRun(t, "user", "add", "alice"))
	bob := createdID(t, mustRun(t, "user", "add", "bob"))
	note := createdID(t, mustRun(t, "note", "add", "Hello", "--as", alice, "--content", "# hi", "--public"))
	short := note[len(note)-8:]

	assert.Contains(t, mustRun(t, "follow", alice, "--as", bob), "Now following")
	assert.Equal(t, "true\n", mustRun(t, "is-following", alice, "--as", bob))

	assert.Contains(t, mustRun(t, "like", short, "--as", bob), "Liked")
	assert.Contains(t, mustRun(t, "bookmark", note, "--as", bob), "Bookmarked")
	assert.Contains(t, mustRun(t, "bookmarks", "--as", bob), "Hello")

	assert.Contains(t, mustRun(t, "view", short, "--as", bob), "(1 views)")
	assert.Contains(t, mustRun(t, "view", short, "--as", bob), "Already viewed")
	assert.Contains(t, mustRun(t, "view", short), "(2 views)")

	m := shortRe.FindStringSubmatch(mustRun(t, "comment", short, "nice post", "--as", bob))
	require.Len(t, m, 2)
	mustRun(t, "comment", short, "thanks", "--as", alice, "--parent", m[1])

	thread := mustRun(t, "comments", short)
	assert.Contains(t, thread, "nice post")
	assert.Contains(t, thread, "    ")
	assert.Contains(t, thread, "thanks")
	assert.Less(t, strings.Index(thread, "nice post"), strings.Index(thread, "thanks"))

	// follow, like and comment by bob
	assert.Contains(t, mustRun(t, "notifications", "--as", alice), "3 unread")
	assert.Contains(t, mustRun(t, "notifications", "--as", bob), "1 unread")

	stats := mustRun(t, "stats", "--as", alice)
	assert.Contains(t, stats, "alice")
	assert.Contains(t, stats, "Followers")

	noteStats := mustRun(t, "stats", "--note", short)
	assert.Contains(t, noteStats, "Comments:")

	assert.Contains(t, mustRun(t, "reconcile"), "Checked 1 notes, fixed 0")

	assert.Contains(t, mustRun(t, "rm", short, "--force"), "2 comments, 1 likes, 1 bookmarks, 2 views")
	_, err := run(t, "note", "show", note)
	assert.Error(t, err)
}

func TestReadNotification(t *testing.T) {
	isolate(t)

	alice := createdID(t, mustRun(t, "user", "add", "alice"))
	bob := createdID(t, mustRun(t, "user", "add", "bob"))
	note := createdID(t, mustRun(t, "note", "add", "Shared", "--as", alice))
	mustRun(t, "share", note, bob, "--as", alice)

	out := mustRun(t, "notifications", "--as", bob)
	assert.Contains(t, out, "1 unread")
	id := regexp.MustCompile(`([0-9a-f]{8})  `).FindStringSubmatch(out)
	require.Len(t, id, 2, out)

	mustRun(t, "read", id[1], "--as", bob)
	assert.Contains(t, mustRun(t, "notifications", "--as", bob), "0 unread")
}

func TestNoteEdit(t *testing.T) {
	isolate(t)

	alice := createdID(t, mustRun(t, "user", "add", "alice"))
	note := createdID(t, mustRun(t, "note", "add", "Draft", "--as", alice, "--content", "first", "--image", "/uploads/a.png"))

	assert.Contains(t, mustRun(t, "note", "edit", note, "--title", "Final", "--content", "second", "--public", "--remove-image"), "Updated note "+ui.ShortID(note))

	show := mustRun(t, "note", "show", note)
	assert.Contains(t, show, "Final")
	assert.Contains(t, show, "second")
	assert.Contains(t, show, "public")
	assert.NotContains(t, show, "/uploads/a.png")

	_, err := run(t, "note", "edit", note, "--title", "   ")
	assert.Error(t, err)
}

func TestNoteListPublicFeed(t *testing.T) {
	isolate(t)

	alice := createdID(t, mustRun(t, "user", "add", "alice"))
	bob := createdID(t, mustRun(t, "user", "add", "bob"))
	pub := createdID(t, mustRun(t, "note", "add", "Open", "--as", alice, "--public"))
	mustRun(t, "note", "add", "Secret", "--as", alice)
	mustRun(t, "like", pub, "--as", bob)

	feed := mustRun(t, "note", "list")
	assert.Contains(t, feed, "Open")
	assert.Contains(t, feed, "1 likes")
	assert.NotContains(t, feed, "Secret")

	assert.NotContains(t, mustRun(t, "note", "list", "--author", alice, "--as", bob), "Secret")
	assert.Contains(t, mustRun(t, "note", "list", "--author", alice, "--as", alice), "Secret")
}

func TestShortIDHidesPrivateNotes(t *testing.T) {
	isolate(t)

	alice := createdID(t, mustRun(t, "user", "add", "alice"))
	bob := createdID(t, mustRun(t, "user", "add", "bob"))
	secret := ui.ShortID(createdID(t, mustRun(t, "note", "add", "Secret", "--as", alice)))

	_, err := run(t, "note", "show", secret, "--as", bob)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no note matches")

	assert.Contains(t, mustRun(t, "note", "show", secret, "--as", alice), "Secret")
}

func TestRequiresActingUser(t *testing.T) {
	isolate(t)

	_, err := run(t, "bookmarks")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no acting user")
}

func TestRmCancelled(t *testing.T) {
	isolate(t)

	alice := createdID(t, mustRun(t, "user", "add", "alice"))
	note := createdID(t, mustRun(t, "note", "add", "Keep me", "--as", alice))

	out := mustRun(t, "rm", note)
	assert.Contains(t, out, "Cancelled.")
	assert.Contains(t, mustRun(t, "note", "show", note), "Keep me")
}

func TestSelfFollowFails(t *testing.T) {
	isolate(t)

	alice := createdID(t, mustRun(t, "user", "add", "alice"))
	_, err := run(t, "follow", alice, "--as", alice)
	assert.Error(t, err)
}

func TestVersionSkipsStore(t *testing.T) {
	isolate(t)
	t.Setenv("NOTELY_BACKEND", "nonsense")

	assert.Contains(t, mustRun(t, "version"), "notely dev")
}

func TestConfigInit(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "notely.yaml")

	mustRun(t, "config", "init", "--config", path)
	out := mustRun(t, "config", "show", "--config", path)
	assert.Contains(t, out, "backend: sqlite")
}
