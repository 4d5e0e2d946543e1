package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/wpexport/internal/post"
)

// PostSummary is a post without its body.
type PostSummary struct {
	ID         int64    `json:"id"                   jsonschema:"WordPress post ID"`
	Title      string   `json:"title"                jsonschema:"raw post title"`
	Name       string   `json:"name"                 jsonschema:"stored post slug, possibly URL-encoded"`
	Status     string   `json:"status"               jsonschema:"WordPress post status"`
	Published  string   `json:"published"            jsonschema:"publish timestamp (RFC 3339)"`
	Author     string   `json:"author,omitempty"     jsonschema:"author display name"`
	Tags       []string `json:"tags,omitempty"       jsonschema:"post tags"`
	Categories []string `json:"categories,omitempty" jsonschema:"post categories"`
}

// ListPostsInput is the input for the list_posts tool.
type ListPostsInput struct {
	Last   int      `json:"last,omitempty"   jsonschema:"return only the N most recent matching posts"`
	Since  string   `json:"since,omitempty"  jsonschema:"posts published since duration (24h, 7d) or ISO date"`
	Until  string   `json:"until,omitempty"  jsonschema:"posts published until duration (24h, 7d) or ISO date"`
	Tags   []string `json:"tags,omitempty"   jsonschema:"filter by tags or categories (OR logic)"`
	Drafts bool     `json:"drafts,omitempty" jsonschema:"include posts of any status, not just the configured ones"`
}

// ListPostsOutput is the output for the list_posts tool.
type ListPostsOutput struct {
	Count int           `json:"count" jsonschema:"number of posts returned"`
	Posts []PostSummary `json:"posts" jsonschema:"matching posts, oldest first"`
}

func handleListPosts(store Store, statuses []string) mcp.ToolHandlerFor[ListPostsInput, ListPostsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListPostsInput) (*mcp.CallToolResult, ListPostsOutput, error) {
		filter, err := buildFilter(input, statuses)
		if err != nil {
			return nil, ListPostsOutput{}, err
		}

		posts, err := store.Posts(ctx, filter.Statuses)
		if err != nil {
			return nil, ListPostsOutput{}, fmt.Errorf("listing posts: %w", err)
		}
		posts = filter.Apply(posts)
		post.SortByPublished(posts)

		if input.Last > 0 && len(posts) > input.Last {
			posts = posts[len(posts)-input.Last:]
		}

		return nil, ListPostsOutput{Count: len(posts), Posts: toSummaries(posts)}, nil
	}
}

// buildFilter turns tool input into a post filter. statuses apply unless
// the input asks for drafts.
func buildFilter(input ListPostsInput, statuses []string) (post.Filter, error) {
	filter := post.Filter{Tags: input.Tags}
	if !input.Drafts {
		filter.Statuses = statuses
		if len(filter.Statuses) == 0 {
			filter.Statuses = []string{post.StatusPublish}
		}
	}

	var err error
	if input.Since != "" {
		if filter.Since, err = parseDurationOrDate(input.Since); err != nil {
			return post.Filter{}, fmt.Errorf("invalid since value: %w", err)
		}
	}
	if input.Until != "" {
		if filter.Until, err = parseDurationOrDate(input.Until); err != nil {
			return post.Filter{}, fmt.Errorf("invalid until value: %w", err)
		}
		// A bare date means the whole day.
		if len(input.Until) == len("2006-01-02") {
			filter.Until = filter.Until.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return filter, nil
}
