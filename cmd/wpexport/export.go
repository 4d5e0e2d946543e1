package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/wpexport/internal/export"
	"github.com/gorewood/wpexport/internal/output"
)

// exportFlags holds the command-line flags for the export command.
type exportFlags struct {
	out     string
	archive string
	jobs    int
	force   bool
	dryRun  bool
	filter  filterFlags
}

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export posts to Markdown files",
		Long: `Export WordPress posts to Markdown files with YAML front matter.

Each post is written to <out>/<year>/<MM>-<dd>-<slug>.md. Existing files are
left untouched unless --force is given. When an archive path is configured
(or --archive is set) a JSON index of every exported post is written too.

Examples:
  wpexport export                          # Export published posts
  wpexport export --out ./site/content     # Override the content directory
  wpexport export --since 2024-01-01       # Only posts from 2024 on
  wpexport export --tags travel,food       # Posts tagged travel OR food
  wpexport export --dry-run --json         # Show what would be written`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.out, "out", "", "Content directory (default: content_output_directory from config)")
	cmd.Flags().StringVar(&flags.archive, "archive", "", "Write the JSON archive index to this file")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "Posts processed in parallel (default: jobs from config)")
	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Transform posts without writing anything")
	flags.filter.register(cmd)

	return cmd
}

// runExport executes the export command.
func runExport(cmd *cobra.Command, flags *exportFlags) error {
	printer := newPrinter(cmd)

	if flags.jobs < 0 {
		err := output.NewUserError("--jobs must not be negative")
		printer.Error(err)
		return err
	}

	cfg, err := loadConfig(printer, cmd)
	if err != nil {
		return err
	}

	filter, err := flags.filter.build(printer, cfg)
	if err != nil {
		return err
	}

	reader, err := openReader(cmd.Context(), printer, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	exporter := newExporter(printer, cfg)
	exporter.Source = reader
	exporter.Filter = filter
	exporter.Force = flags.force
	exporter.DryRun = flags.dryRun
	if flags.out != "" {
		exporter.ContentRoot = flags.out
	}
	if flags.archive != "" {
		exporter.ArchivePath = flags.archive
	}
	if flags.jobs > 0 {
		exporter.Jobs = flags.jobs
	}

	result, err := exporter.Run(cmd.Context())
	if err != nil {
		sysErr := output.NewSystemErrorWithCause(fmt.Sprintf("export failed: %v", err), err)
		printer.Error(sysErr)
		return sysErr
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"content_root": exporter.ContentRoot,
			"dry_run":      flags.dryRun,
			"written":      result.Written,
			"skipped":      result.Skipped,
			"archive":      result.Archive,
			"posts":        result.Entries,
		})
	}

	outputExportHuman(printer, exporter.ContentRoot, result, flags.dryRun)
	return nil
}

// outputExportHuman prints the export summary.
func outputExportHuman(printer *output.Printer, root string, result *export.Result, dryRun bool) {
	if dryRun {
		rows := make([][]string, 0, len(result.Entries))
		for _, entry := range result.Entries {
			rows = append(rows, []string{entry.Path, entry.Title})
		}
		printer.Table([]string{"PATH", "TITLE"}, rows)
		printer.Println()
		printer.Print("Would write %d posts to %s (%d skipped)\n", result.Written, root, result.Skipped)
		return
	}

	msg := fmt.Sprintf("Exported %d posts to %s", result.Written, root)
	if result.Skipped > 0 {
		msg += fmt.Sprintf(" (%d skipped, use --force to overwrite)", result.Skipped)
	}
	_ = printer.Success(map[string]any{"message": msg})
	if result.Archive != "" {
		printer.KeyValue("Archive", result.Archive)
	}
}
