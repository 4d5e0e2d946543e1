package transform

import (
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/gorewood/wpexport/internal/frontmatter"
	"github.com/gorewood/wpexport/internal/post"
)

func TestDefaultOutputPath(t *testing.T) {
	p := post.Post{Name: "hello", Published: time.Date(2021, 7, 9, 0, 0, 0, 0, time.UTC)}

	got, err := NewDefault().OutputPath("content", p)
	if err != nil {
		t.Fatalf("OutputPath() error = %v", err)
	}
	if want := filepath.Join("content", "2021-07-09-hello"); got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}
}

func TestDefaultProcessPost(t *testing.T) {
	got := NewDefault().ProcessPost(post.Post{Content: "\n a\r\nb\rc \n\n"})
	if got.Content != "a\nb\nc" {
		t.Errorf("Content = %q", got.Content)
	}
}

func TestDefaultPopulateFrontMatter(t *testing.T) {
	published := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		post     post.Post
		wantKeys []string
	}{
		{
			name:     "published minimal",
			post:     post.Post{Status: post.StatusPublish, Published: published},
			wantKeys: []string{KeyDate},
		},
		{
			name: "everything",
			post: post.Post{
				Title: "T", Name: "t", Status: "draft", Excerpt: "e", Tags: []string{"x"},
				Published: published, Modified: published.Add(time.Hour),
			},
			wantKeys: []string{KeyTitle, KeyDate, KeyLastmod, KeySlug, KeyDraft, KeySummary, KeyTags},
		},
		{
			name:     "modified before publish ignored",
			post:     post.Post{Status: post.StatusPublish, Published: published, Modified: published.Add(-time.Hour)},
			wantKeys: []string{KeyDate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm := frontmatter.NewBlock()
			NewDefault().PopulateFrontMatter(tt.post, fm)
			if got := fm.Keys(); !slices.Equal(got, tt.wantKeys) {
				t.Errorf("Keys() = %v, want %v", got, tt.wantKeys)
			}
		})
	}
}

func TestDefaultPopulateFrontMatterKeepsExisting(t *testing.T) {
	fm := frontmatter.NewBlock()
	fm.Set(KeyTitle, frontmatter.String("custom"))

	NewDefault().PopulateFrontMatter(post.Post{Title: "raw", Status: post.StatusPublish, Published: time.Now()}, fm)

	node, _ := fm.Get(KeyTitle)
	if node.Value != "custom" {
		t.Errorf("Title = %q, want custom", node.Value)
	}
}

func TestDefaultSlugDecoded(t *testing.T) {
	fm := frontmatter.NewBlock()
	NewDefault().PopulateFrontMatter(post.Post{Name: "caf%C3%A9", Status: post.StatusPublish, Published: time.Now()}, fm)

	node, ok := fm.Get(KeySlug)
	if !ok || node.Value != "café" {
		t.Errorf("Slug = %v", node)
	}
}
