package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/wpexport/internal/output"
	"github.com/gorewood/wpexport/internal/post"
)

// listFlags holds the command-line flags for the list command.
type listFlags struct {
	last   int
	filter filterFlags
}

// postRow is the JSON shape of a listed post; bodies are left out.
type postRow struct {
	ID         int64    `json:"id"`
	Published  string   `json:"published"`
	Status     string   `json:"status"`
	Title      string   `json:"title"`
	Name       string   `json:"name"`
	Author     string   `json:"author,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// newListCmd creates the list command.
func newListCmd() *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts in the WordPress database",
		Long: `List posts that an export would consider, oldest first.

Examples:
  wpexport list                       # Published posts
  wpexport list --drafts --last 10    # Ten most recent posts of any status
  wpexport list --tags go --json      # Posts tagged go, as JSON`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, flags)
		},
	}

	cmd.Flags().IntVar(&flags.last, "last", 0, "Show only the N most recent matching posts")
	flags.filter.register(cmd)

	return cmd
}

// runList executes the list command.
func runList(cmd *cobra.Command, flags *listFlags) error {
	printer := newPrinter(cmd)

	if flags.last < 0 {
		err := output.NewUserError("--last must be a positive integer")
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

	posts, err := reader.Posts(cmd.Context(), filter.Statuses)
	if err != nil {
		sysErr := output.NewSystemErrorWithCause(err.Error(), err)
		printer.Error(sysErr)
		return sysErr
	}
	posts = filter.Apply(posts)
	post.SortByPublished(posts)
	if flags.last > 0 && len(posts) > flags.last {
		posts = posts[len(posts)-flags.last:]
	}

	if printer.IsJSON() {
		return printer.WriteJSON(toPostRows(posts))
	}

	if len(posts) == 0 {
		printer.Println("No posts match.")
		return nil
	}
	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Published.Format("2006-01-02"),
			p.Status,
			p.Title,
			strings.Join(append(append([]string{}, p.Tags...), p.Categories...), ", "),
		})
	}
	printer.Table([]string{"ID", "DATE", "STATUS", "TITLE", "TERMS"}, rows)
	return nil
}

func toPostRows(posts []post.Post) []postRow {
	rows := make([]postRow, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, postRow{
			ID:         p.ID,
			Published:  p.Published.Format("2006-01-02T15:04:05Z07:00"),
			Status:     p.Status,
			Title:      p.Title,
			Name:       p.Name,
			Author:     p.AuthorName,
			Tags:       p.Tags,
			Categories: p.Categories,
		})
	}
	return rows
}
