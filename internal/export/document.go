package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gorewood/wpexport/internal/frontmatter"
	"github.com/gorewood/wpexport/internal/post"
	"github.com/gorewood/wpexport/internal/transform"
)

// DefaultExtension is appended to delegate output paths.
const DefaultExtension = ".md"

// Document is a fully transformed post, ready to be written.
type Document struct {
	Post        post.Post
	Path        string
	FrontMatter *frontmatter.Block
	Content     string
	Bytes       []byte
}

// Build runs the delegate over p. OutputPath may create directories under
// contentRoot; nothing else touches the filesystem.
func Build(d transform.Delegate, contentRoot, extension string, p post.Post) (*Document, error) {
	path, err := d.OutputPath(contentRoot, p)
	if err != nil {
		return nil, fmt.Errorf("post %d: %w", p.ID, err)
	}

	processed := d.ProcessPost(p)

	fm := frontmatter.NewBlock()
	d.PopulateFrontMatter(processed, fm)

	data, err := frontmatter.Render(fm, processed.Content)
	if err != nil {
		return nil, fmt.Errorf("post %d: %w", p.ID, err)
	}

	return &Document{
		Post:        p,
		Path:        path + extension,
		FrontMatter: fm,
		Content:     processed.Content,
		Bytes:       data,
	}, nil
}

// Title returns the Title front matter value, or "" when unset.
func (d *Document) Title() string {
	if node, ok := d.FrontMatter.Get(transform.KeyTitle); ok {
		return node.Value
	}
	return ""
}

// Tags returns the Tags front matter value.
func (d *Document) Tags() []string {
	node, ok := d.FrontMatter.Get(transform.KeyTags)
	if !ok {
		return nil
	}
	var tags []string
	if err := node.Decode(&tags); err != nil {
		return nil
	}
	return tags
}

// write stores the document. Without force an existing file is kept and
// written reports false.
func (d *Document) write(force bool) (written bool, err error) {
	if force {
		if err := os.WriteFile(d.Path, d.Bytes, 0o644); err != nil {
			return false, fmt.Errorf("writing %s: %w", d.Path, err)
		}
		return true, nil
	}

	f, err := os.OpenFile(d.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", d.Path, err)
	}
	if _, err := f.Write(d.Bytes); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("writing %s: %w", d.Path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("closing %s: %w", d.Path, err)
	}
	return true, nil
}
