package post

import (
	"slices"
	"sort"
	"time"
)

// Filter narrows the set of posts to export. Zero values disable a criterion.
type Filter struct {
	Since    time.Time
	Until    time.Time
	Tags     []string
	Statuses []string
}

// Apply returns the posts matching every enabled criterion, in input order.
func (f Filter) Apply(posts []Post) []Post {
	var result []Post
	for _, p := range posts {
		if f.Match(p) {
			result = append(result, p)
		}
	}
	return result
}

// Match reports whether a single post passes the filter.
// Since and Until are inclusive. Tags use OR logic across tags and categories.
func (f Filter) Match(p Post) bool {
	if !f.Since.IsZero() && p.Published.Before(f.Since) {
		return false
	}
	if !f.Until.IsZero() && p.Published.After(f.Until) {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, p.Status) {
		return false
	}
	if len(f.Tags) > 0 && !HasAnyTag(p, f.Tags) {
		return false
	}
	return true
}

// HasAnyTag checks if the post carries any of the given tags or categories.
func HasAnyTag(p Post, tags []string) bool {
	for _, tag := range tags {
		if slices.Contains(p.Tags, tag) || slices.Contains(p.Categories, tag) {
			return true
		}
	}
	return false
}

// SortByPublished sorts posts by publish time ascending, then by ID.
func SortByPublished(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Published.Equal(posts[j].Published) {
			return posts[i].ID < posts[j].ID
		}
		return posts[i].Published.Before(posts[j].Published)
	})
}
