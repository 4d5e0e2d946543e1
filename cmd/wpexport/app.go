package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/wpexport/internal/config"
	"github.com/gorewood/wpexport/internal/export"
	"github.com/gorewood/wpexport/internal/output"
	"github.com/gorewood/wpexport/internal/post"
	"github.com/gorewood/wpexport/internal/transform"
	"github.com/gorewood/wpexport/internal/wordpress"
)

// newPrinter builds the printer for cmd from the --json and --color flags.
func newPrinter(cmd *cobra.Command) *output.Printer {
	isTTY := output.ResolveColorMode(colorFlag(cmd), cmd.OutOrStdout())
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), isTTY).WithStderr(cmd.ErrOrStderr())
}

// loadConfig loads the configuration named by --config, or the default one.
func loadConfig(printer *output.Printer, cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFlag(cmd))
	if err != nil {
		msg := err.Error()
		if errors.Is(err, config.ErrNotFound) {
			msg = "no configuration found; create wpexport.yaml or pass --config"
		}
		userErr := output.NewUserErrorWithCause(msg, err)
		printer.Error(userErr)
		return nil, userErr
	}
	return cfg, nil
}

// readerOptions maps configuration onto database connection options.
func readerOptions(cfg *config.Config) wordpress.Options {
	return wordpress.Options{
		Driver:      cfg.Driver,
		Host:        cfg.Host,
		Database:    cfg.Database,
		Username:    cfg.Username,
		Password:    cfg.Password,
		TLS:         cfg.TLS,
		TablePrefix: cfg.TablePrefix,
	}
}

// openReader connects to the configured WordPress database.
func openReader(ctx context.Context, printer *output.Printer, cfg *config.Config) (*wordpress.Reader, error) {
	reader, err := wordpress.Open(ctx, readerOptions(cfg))
	if err != nil {
		sysErr := output.NewSystemErrorWithCause(err.Error(), err)
		printer.Error(sysErr)
		return nil, sysErr
	}
	return reader, nil
}

// newExporter wires the configured delegate and diagnostics into an
// Exporter. Callers set the source and run options.
func newExporter(printer *output.Printer, cfg *config.Config) *export.Exporter {
	return &export.Exporter{
		Delegate:    transform.NewCustom(transform.NewDefault(), cfg.Patterns, printer.Diag),
		ContentRoot: cfg.ContentOutputDirectory,
		ArchivePath: cfg.ArchiveOutputFilePath,
		Jobs:        cfg.Jobs,
		Logf:        printer.Diag,
	}
}

// filterFlags are the post selection flags shared by export and list.
type filterFlags struct {
	since  string
	until  string
	tags   []string
	drafts bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.since, "since", "", "Only posts published since duration (24h, 7d, 2w) or date (2024-01-17)")
	cmd.Flags().StringVar(&f.until, "until", "", "Only posts published until duration (24h, 7d, 2w) or date (2024-01-17)")
	cmd.Flags().StringSliceVar(&f.tags, "tags", nil, "Only posts with any of these tags or categories (comma-separated)")
	cmd.Flags().BoolVar(&f.drafts, "drafts", false, "Include posts of any status, not only the configured statuses")
}

// build turns the flags into a post filter. Statuses come from the config
// unless --drafts lifts them.
func (f *filterFlags) build(printer *output.Printer, cfg *config.Config) (post.Filter, error) {
	filter := post.Filter{Tags: f.tags}
	if !f.drafts {
		filter.Statuses = cfg.Statuses
	}

	var err error
	if f.since != "" {
		if filter.Since, err = parseSinceValue(f.since); err != nil {
			return post.Filter{}, reportUserError(printer, err)
		}
	}
	if f.until != "" {
		if filter.Until, err = parseUntilValue(f.until); err != nil {
			return post.Filter{}, reportUserError(printer, err)
		}
	}
	if !filter.Since.IsZero() && !filter.Until.IsZero() && filter.Until.Before(filter.Since) {
		return post.Filter{}, reportUserError(printer, fmt.Errorf("--until (%s) is before --since (%s)",
			f.until, f.since))
	}
	return filter, nil
}

func reportUserError(printer *output.Printer, err error) error {
	userErr := output.NewUserErrorWithCause(err.Error(), err)
	printer.Error(userErr)
	return userErr
}
