package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/wpexport/internal/export"
	"github.com/gorewood/wpexport/internal/post"
)

// --- Preview tool ---

// PreviewPostInput is the input for the preview_post tool.
type PreviewPostInput struct {
	ID int64 `json:"id" jsonschema:"WordPress post ID"`
}

// PreviewPostOutput is the output for the preview_post tool.
type PreviewPostOutput struct {
	Path        string   `json:"path"         jsonschema:"file the post would be written to"`
	Title       string   `json:"title"        jsonschema:"normalized title"`
	Tags        []string `json:"tags"         jsonschema:"normalized tags"`
	FrontMatter string   `json:"front_matter" jsonschema:"YAML front matter block"`
	Content     string   `json:"content"      jsonschema:"rewritten post body"`
	Document    string   `json:"document"     jsonschema:"complete file contents"`
}

func handlePreviewPost(store Store, exporter *export.Exporter) mcp.ToolHandlerFor[PreviewPostInput, PreviewPostOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PreviewPostInput) (*mcp.CallToolResult, PreviewPostOutput, error) {
		if input.ID <= 0 {
			return nil, PreviewPostOutput{}, errors.New("id must be a positive post ID")
		}

		p, err := store.Post(ctx, input.ID)
		if err != nil {
			return nil, PreviewPostOutput{}, fmt.Errorf("getting post: %w", err)
		}

		doc, err := exporter.Preview(p)
		if err != nil {
			return nil, PreviewPostOutput{}, err
		}

		meta, err := doc.FrontMatter.Marshal()
		if err != nil {
			return nil, PreviewPostOutput{}, fmt.Errorf("encoding front matter: %w", err)
		}

		return nil, PreviewPostOutput{
			Path:        doc.Path,
			Title:       doc.Title(),
			Tags:        doc.Tags(),
			FrontMatter: string(meta),
			Content:     doc.Content,
			Document:    string(doc.Bytes),
		}, nil
	}
}

// --- Status tool ---

// StatusInput is the input for the status tool (no parameters needed).
type StatusInput struct{}

// PatternCount is the number of rules configured for a category.
type PatternCount struct {
	Category string `json:"category" jsonschema:"pattern category"`
	Count    int    `json:"count"    jsonschema:"number of rules"`
}

// StatusOutput is the output for the status tool.
type StatusOutput struct {
	Driver      string         `json:"driver"       jsonschema:"database driver"`
	Published   int            `json:"published"    jsonschema:"number of published posts"`
	Total       int            `json:"total"        jsonschema:"number of posts of any status"`
	ContentRoot string         `json:"content_root" jsonschema:"directory posts are exported to"`
	Patterns    []PatternCount `json:"patterns"     jsonschema:"configured pattern categories"`
}

func handleStatus(deps Deps) mcp.ToolHandlerFor[StatusInput, StatusOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		published, err := deps.Store.Count(ctx, []string{post.StatusPublish})
		if err != nil {
			return nil, StatusOutput{}, err
		}
		total, err := deps.Store.Count(ctx, nil)
		if err != nil {
			return nil, StatusOutput{}, err
		}

		out := StatusOutput{
			Driver:    deps.Driver,
			Published: published,
			Total:     total,
			Patterns:  patternCounts(deps.Patterns),
		}
		if deps.Exporter != nil {
			out.ContentRoot = deps.Exporter.ContentRoot
		}
		return nil, out, nil
	}
}
