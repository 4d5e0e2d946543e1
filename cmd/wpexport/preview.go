package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/wpexport/internal/export"
	"github.com/gorewood/wpexport/internal/output"
	"github.com/gorewood/wpexport/internal/wordpress"
)

// previewFlags holds the command-line flags for the preview command.
type previewFlags struct {
	out   string
	write bool
	force bool
}

// newPreviewCmd creates the preview command.
func newPreviewCmd() *cobra.Command {
	flags := &previewFlags{}

	cmd := &cobra.Command{
		Use:   "preview <post-id>",
		Short: "Show the exported document for one post",
		Long: `Show exactly what export would write for a single post: the output path,
the YAML front matter and the rewritten body.

With --write the document is also written to its path. An existing file is
a conflict (exit code 3) unless --force is given.

Examples:
  wpexport preview 42              # Print the document
  wpexport preview 42 --json       # Path, front matter and body as JSON
  wpexport preview 42 --write      # Export just this post`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, flags, args[0])
		},
	}

	cmd.Flags().StringVar(&flags.out, "out", "", "Content directory (default: content_output_directory from config)")
	cmd.Flags().BoolVar(&flags.write, "write", false, "Write the document to its output path")
	cmd.Flags().BoolVar(&flags.force, "force", false, "With --write, overwrite an existing file")

	return cmd
}

// runPreview executes the preview command.
func runPreview(cmd *cobra.Command, flags *previewFlags, arg string) error {
	printer := newPrinter(cmd)

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		userErr := output.NewUserError(fmt.Sprintf("invalid post ID %q", arg))
		printer.Error(userErr)
		return userErr
	}

	cfg, err := loadConfig(printer, cmd)
	if err != nil {
		return err
	}

	reader, err := openReader(cmd.Context(), printer, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	p, err := reader.Post(cmd.Context(), id)
	if err != nil {
		var exitErr *output.ExitError
		if errors.Is(err, wordpress.ErrNotFound) {
			exitErr = output.NewUserErrorWithCause(fmt.Sprintf("post %d not found", id), err)
		} else {
			exitErr = output.NewSystemErrorWithCause(err.Error(), err)
		}
		printer.Error(exitErr)
		return exitErr
	}

	exporter := newExporter(printer, cfg)
	exporter.Force = flags.force
	if flags.out != "" {
		exporter.ContentRoot = flags.out
	}

	var (
		doc     *export.Document
		written bool
	)
	if flags.write {
		d, ok, writeErr := exporter.ExportPost(p)
		if writeErr != nil {
			sysErr := output.NewSystemErrorWithCause(writeErr.Error(), writeErr)
			printer.Error(sysErr)
			return sysErr
		}
		if !ok {
			conflict := output.NewConflictError(d.Path + " already exists; use --force to overwrite")
			printer.Error(conflict)
			return conflict
		}
		doc, written = d, true
	} else {
		d, buildErr := exporter.Preview(p)
		if buildErr != nil {
			sysErr := output.NewSystemErrorWithCause(buildErr.Error(), buildErr)
			printer.Error(sysErr)
			return sysErr
		}
		doc = d
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"id":      p.ID,
			"path":    doc.Path,
			"title":   doc.Title(),
			"tags":    doc.Tags(),
			"content": doc.Content,
			"written": written,
		})
	}

	if written {
		printer.Stderr("Wrote %s\n", doc.Path)
	} else {
		printer.Stderr("# %s\n", doc.Path)
	}
	printer.Print("%s", doc.Bytes)
	return nil
}
