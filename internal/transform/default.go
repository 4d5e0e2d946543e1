package transform

import (
	"path/filepath"
	"strings"

	"github.com/gorewood/wpexport/internal/frontmatter"
	"github.com/gorewood/wpexport/internal/post"
)

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Default is the uncustomized export behaviour.
type Default struct{}

// NewDefault returns the plain export Delegate.
func NewDefault() Default {
	return Default{}
}

// OutputPath places every post directly under contentRoot as
// yyyy-MM-dd-name.
func (Default) OutputPath(contentRoot string, p post.Post) (string, error) {
	return filepath.Join(contentRoot, p.Published.Format("2006-01-02")+"-"+p.Name), nil
}

// ProcessPost normalizes line endings and trims surrounding whitespace.
func (Default) ProcessPost(p post.Post) post.Post {
	p.Content = strings.TrimSpace(lineEndings.Replace(p.Content))
	return p
}

// PopulateFrontMatter fills the standard keys. Keys already present in fm
// are left alone so a wrapping Delegate can set them first.
func (Default) PopulateFrontMatter(p post.Post, fm *frontmatter.Block) {
	if p.Title != "" {
		fm.SetDefault(KeyTitle, frontmatter.String(p.Title))
	}
	fm.SetDefault(KeyDate, frontmatter.Time(p.Published))
	if !p.Modified.IsZero() && p.Modified.After(p.Published) {
		fm.SetDefault(KeyLastmod, frontmatter.Time(p.Modified))
	}
	if slug := decodeName(p.Name); slug != "" {
		fm.SetDefault(KeySlug, frontmatter.String(slug))
	}
	if p.IsDraft() {
		fm.SetDefault(KeyDraft, frontmatter.Bool(true))
	}
	if summary := strings.TrimSpace(p.Excerpt); summary != "" {
		fm.SetDefault(KeySummary, frontmatter.String(summary))
	}
	if len(p.Tags) > 0 {
		fm.SetDefault(KeyTags, frontmatter.Strings(p.Tags))
	}
}
