package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	wpmcp "github.com/gorewood/wpexport/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run wpexport as a Model Context Protocol (MCP) server over stdio.

This lets an MCP-capable agent browse posts and preview exports without
writing files. Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "wpexport": {
        "command": "wpexport",
        "args": ["serve", "--config", "/path/to/wpexport.yaml"]
      }
    }
  }

Available tools: list_posts, preview_post, status`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Stdout carries the protocol; diagnostics go to stderr.
			printer := newPrinter(cmd)

			cfg, err := loadConfig(printer, cmd)
			if err != nil {
				return err
			}
			reader, err := openReader(cmd.Context(), printer, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = reader.Close() }()

			server := wpmcp.NewServer(buildVersion(), wpmcp.Deps{
				Store:    reader,
				Exporter: newExporter(printer, cfg),
				Driver:   cfg.Driver,
				Patterns: cfg.Patterns,
				Statuses: cfg.Statuses,
			})
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
