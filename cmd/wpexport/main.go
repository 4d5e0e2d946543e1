// Package main provides the entry point for the wpexport CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/wpexport/internal/config"
	"github.com/gorewood/wpexport/internal/envfile"
	"github.com/gorewood/wpexport/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	return persistentFlag(cmd, "json") == "true"
}

// configFlag returns the --config value, empty when unset.
func configFlag(cmd *cobra.Command) string {
	return persistentFlag(cmd, "config")
}

// colorFlag returns the --color value: auto, always or never.
func colorFlag(cmd *cobra.Command) string {
	return persistentFlag(cmd, "color")
}

func persistentFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the wpexport CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wpexport",
		Short: "Export WordPress posts to a Markdown archive",
		Long: `wpexport - Export WordPress posts to Markdown files with YAML front matter.

wpexport reads posts straight from a WordPress database (MySQL, or a SQLite
copy) and writes one file per post under <content>/<year>/<MM>-<dd>-<slug>.md:
  - Curly quotes are straightened and http:// links upgraded to https://
  - Configured find/replace patterns clean up bodies, slugs and tags
  - Title and Tags front matter is normalized; Date, Slug and Draft follow
  - A JSON index of every exported post can be written alongside

Connection details and patterns come from wpexport.yaml (see --config).
Credentials may also be supplied through WPEXPORT_* variables or a .env file.

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'wpexport --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Credentials usually live in .env.local or .env rather than the config
	// file. Variables already in the environment take precedence.
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if _, err := output.ParseColorMode(colorFlag(cmd)); err != nil {
			userErr := output.NewUserErrorWithCause(err.Error(), err)
			output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), false).
				WithStderr(cmd.ErrOrStderr()).Error(userErr)
			return userErr
		}
		loadEnvFiles()
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("config", "", "Path to the configuration file (default: wpexport.yaml, then the user config dir)")
	cmd.PersistentFlags().String("color", "auto", "Colorize output: auto, always or never")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins.
//
// Resolution order:
//  1. $CWD/.env.local
//  2. $CWD/.env
//  3. <config dir>/env
func loadEnvFiles() {
	_ = envfile.LoadAll(envfile.DefaultFiles...)

	if dir := config.Dir(); dir != "" {
		_ = envfile.Load(filepath.Join(dir, "env"))
	}
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Export Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "inspect", Title: "Inspect Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newExportCmd(), "core")

	addGroupedCommand(cmd, newListCmd(), "inspect")
	addGroupedCommand(cmd, newPreviewCmd(), "inspect")

	addGroupedCommand(cmd, newDoctorCmd(), "admin")
	addGroupedCommand(cmd, newServeCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
