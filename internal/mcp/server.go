// Package mcp provides a Model Context Protocol server for wpexport.
// It lets an MCP-capable agent browse WordPress posts and preview how they
// will be exported, without writing anything.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/wpexport/internal/export"
	"github.com/gorewood/wpexport/internal/normalize"
	"github.com/gorewood/wpexport/internal/post"
)

// Store is the read side of the WordPress database.
type Store interface {
	Posts(ctx context.Context, statuses []string) ([]post.Post, error)
	Post(ctx context.Context, id int64) (post.Post, error)
	Count(ctx context.Context, statuses []string) (int, error)
}

// Deps are the collaborators the tools call into.
type Deps struct {
	Store    Store
	Exporter *export.Exporter
	Driver   string
	Patterns normalize.PatternTable
	// Statuses are the post statuses listed unless drafts are requested.
	// Empty means published posts only.
	Statuses []string
}

// NewServer creates an MCP server with all wpexport tools registered.
func NewServer(version string, deps Deps) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "wpexport",
		Version: version,
	}, nil)
	registerTools(server, deps)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

func registerTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_posts",
		Description: "List WordPress posts with filters. Supports last N, since/until time ranges, tag filtering (OR over tags and categories) and drafts. Without drafts only the configured statuses are listed.",
		Annotations: readOnlyAnnotations(),
	}, handleListPosts(deps.Store, deps.Statuses))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "preview_post",
		Description: "Show the exported document for one post: output path, YAML front matter and rewritten body. Nothing is written.",
		Annotations: readOnlyAnnotations(),
	}, handlePreviewPost(deps.Store, deps.Exporter))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "Show the database driver, post counts by status, content root and configured pattern categories.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus(deps))
}
