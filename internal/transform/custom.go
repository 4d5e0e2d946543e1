package transform

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/gorewood/wpexport/internal/frontmatter"
	"github.com/gorewood/wpexport/internal/normalize"
	"github.com/gorewood/wpexport/internal/post"
)

const (
	untagged  = "untagged"
	quoteTrim = `"' `
)

// Tag and category names WordPress uses as placeholders.
var ignoredTerms = []string{"null", "uncategorized"}

// Custom layers the site's normalization rules on top of a base Delegate.
// It only reads its PatternTable, so one Custom can serve every export worker.
type Custom struct {
	base Delegate
	norm *normalize.Normalizer
	logf normalize.Logf
}

// NewCustom wraps base. Diagnostics go to logf; nil discards them.
func NewCustom(base Delegate, patterns normalize.PatternTable, logf normalize.Logf) *Custom {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Custom{
		base: base,
		norm: normalize.New(patterns, logf),
		logf: logf,
	}
}

// OutputPath returns contentRoot/yyyy/MM-dd-slug, creating the year
// directory. The slug is the decoded post name after Tag substitution,
// reduced to ASCII letters, digits and hyphens.
func (c *Custom) OutputPath(contentRoot string, p post.Post) (string, error) {
	name := decodeName(p.Name)
	c.logf("name: %s", name)

	slug := Slugify(c.norm.Apply(normalize.Punctuation(name), normalize.CategoryTag))
	if slug == "" {
		slug = "post-" + strconv.FormatInt(p.ID, 10)
	}

	dir := filepath.Join(contentRoot, p.Published.Format("2006"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return filepath.Join(dir, p.Published.Format("01-02")+"-"+slug), nil
}

// ProcessPost runs the base processing, then straightens quotes, upgrades
// http:// links to https:// and applies the Content patterns.
func (c *Custom) ProcessPost(p post.Post) post.Post {
	p = c.base.ProcessPost(p)
	content := normalize.Punctuation(p.Content)
	content = strings.ReplaceAll(content, "http://", "https://")
	p.Content = c.norm.Apply(content, normalize.CategoryContent)
	return p
}

// PopulateFrontMatter sets Title and Tags, then lets the base Delegate fill
// the remaining keys.
func (c *Custom) PopulateFrontMatter(p post.Post, fm *frontmatter.Block) {
	if p.Title != "" {
		fm.Set(KeyTitle, frontmatter.String(CleanTitle(p.Title)))
	}

	tags := candidateTags(p)
	for i, tag := range tags {
		tag = c.norm.Apply(normalize.Punctuation(tag), normalize.CategoryTag)
		tags[i] = strings.Trim(tag, quoteTrim)
	}
	fm.Set(KeyTags, frontmatter.Strings(tags))

	c.base.PopulateFrontMatter(p, fm)
}

// CleanTitle straightens quotes, trims surrounding quotes and spaces, and
// replaces colons with " -".
func CleanTitle(title string) string {
	title = strings.Trim(normalize.Punctuation(title), quoteTrim)
	return strings.ReplaceAll(title, ":", " -")
}

// Slugify drops every rune that is not an ASCII letter, digit or hyphen.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// candidateTags merges tags and categories in order, drops placeholder
// terms, appends the author and falls back to "untagged".
func candidateTags(p post.Post) []string {
	tags := make([]string, 0, len(p.Tags)+len(p.Categories)+1)
	add := func(term string) {
		if slices.Contains(ignoredTerms, term) || slices.Contains(tags, term) {
			return
		}
		tags = append(tags, term)
	}
	for _, t := range p.Tags {
		add(t)
	}
	for _, t := range p.Categories {
		add(t)
	}
	if p.AuthorName != "" && !slices.Contains(tags, p.AuthorName) {
		tags = append(tags, p.AuthorName)
	}
	if len(tags) == 0 {
		tags = append(tags, untagged)
	}
	return tags
}
