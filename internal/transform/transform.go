// Package transform turns a WordPress post into the pieces of an exported
// document: where it is written, what its body says and which front matter
// keys it carries.
//
// A Delegate is the customization point of the export pipeline. Default
// reproduces a plain export; Custom wraps another Delegate and layers the
// site's normalization rules on top of it.
package transform

import (
	"net/url"
	"strings"

	"github.com/gorewood/wpexport/internal/frontmatter"
	"github.com/gorewood/wpexport/internal/post"
)

// Front matter keys.
const (
	KeyTitle   = "Title"
	KeyTags    = "Tags"
	KeyDate    = "Date"
	KeyLastmod = "Lastmod"
	KeySlug    = "Slug"
	KeyDraft   = "Draft"
	KeySummary = "Summary"
)

// Delegate derives the output of a single post.
// Implementations must be safe for concurrent use.
type Delegate interface {
	// OutputPath returns the file path for p under contentRoot, without an
	// extension. It may create directories.
	OutputPath(contentRoot string, p post.Post) (string, error)
	// ProcessPost returns p with its body rewritten.
	ProcessPost(p post.Post) post.Post
	// PopulateFrontMatter adds p's metadata to fm.
	PopulateFrontMatter(p post.Post, fm *frontmatter.Block)
}

// decodeName URL-decodes a stored post name: '+' becomes a space and %XX
// escapes are decoded. A malformed escape stays as literal text while the
// valid escapes around it are still decoded. Invalid UTF-8 becomes U+FFFD.
func decodeName(name string) string {
	if decoded, err := url.QueryUnescape(name); err == nil {
		return strings.ToValidUTF8(decoded, "\uFFFD")
	}

	buf := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		switch c := name[i]; {
		case c == '+':
			buf = append(buf, ' ')
		case c == '%' && i+2 < len(name) && isHex(name[i+1]) && isHex(name[i+2]):
			buf = append(buf, unhex(name[i+1])<<4|unhex(name[i+2]))
			i += 2
		default:
			buf = append(buf, c)
		}
	}
	return strings.ToValidUTF8(string(buf), "\uFFFD")
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	default:
		return c - '0'
	}
}
