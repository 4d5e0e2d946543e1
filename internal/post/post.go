// Package post defines the blog post record read from WordPress and the
// filters applied before export.
package post

import "time"

// StatusPublish is the WordPress status of a live post.
const StatusPublish = "publish"

// Post is a single blog entry as stored in WordPress.
// Name is the URL slug exactly as stored, which may be percent-encoded.
type Post struct {
	ID         int64     `json:"id"`
	Published  time.Time `json:"published"`
	Modified   time.Time `json:"modified,omitzero"`
	Status     string    `json:"status"`
	Title      string    `json:"title"`
	Name       string    `json:"name"`
	Content    string    `json:"content"`
	Excerpt    string    `json:"excerpt,omitempty"`
	AuthorName string    `json:"author_name,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	Categories []string  `json:"categories,omitempty"`
}

// IsDraft reports whether the post is not publicly published.
func (p Post) IsDraft() bool {
	return p.Status != StatusPublish
}
