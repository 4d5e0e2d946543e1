package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorewood/wpexport/internal/post"
	"github.com/gorewood/wpexport/internal/wordpress/wptest"
)

// testSite is a seeded SQLite WordPress database plus a config file
// pointing at it.
type testSite struct {
	db      *wptest.DB
	config  string
	content string
	archive string
}

func newTestSite(t *testing.T) *testSite {
	t.Helper()

	db := wptest.New(t)
	db.AddPost(post.Post{
		ID:         1,
		Published:  time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
		Title:      "Release: v1",
		Name:       "hello-world",
		Content:    "See http://example.com for “foo”.\r\n",
		AuthorName: "Ada",
		Tags:       []string{"go"},
		Categories: []string{"Notes"},
	})
	db.AddPost(post.Post{
		ID:        2,
		Published: time.Date(2023, 11, 20, 8, 30, 0, 0, time.UTC),
		Title:     "Second post",
		Name:      "second-post",
		Content:   "Older body.",
	})
	db.AddPost(post.Post{
		ID:        3,
		Published: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Status:    "draft",
		Title:     "Unfinished",
		Name:      "draft-post",
		Content:   "Not yet.",
	})

	dir := t.TempDir()
	site := &testSite{
		db:      db,
		config:  filepath.Join(dir, "wpexport.yaml"),
		content: filepath.Join(dir, "content"),
		archive: filepath.Join(dir, "archive.json"),
	}
	site.writeConfig(t, fmt.Sprintf(`driver: sqlite
database: %q
content_output_directory: %q
archive_output_file_path: %q
patterns:
  Content:
    - needle: foo
      substitute: bar
  Tag:
    - needle: go
      substitute: golang
`, db.Path, site.content, site.archive))
	return site
}

func (s *testSite) writeConfig(t *testing.T, data string) {
	t.Helper()
	if err := os.WriteFile(s.config, []byte(data), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
}

// runCLI executes the root command with args and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	// Keep a developer's own config dir and env file out of the run.
	t.Setenv("WPEXPORT_CONFIG_HOME", t.TempDir())

	cmd := newRootCmd()
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
