package export

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/gorewood/wpexport/internal/normalize"
	"github.com/gorewood/wpexport/internal/post"
	"github.com/gorewood/wpexport/internal/transform"
)

// Source supplies posts with the given statuses. An empty list means any
// status.
type Source interface {
	Posts(ctx context.Context, statuses []string) ([]post.Post, error)
}

// Exporter writes every post from Source below ContentRoot.
type Exporter struct {
	Source      Source
	Delegate    transform.Delegate
	ContentRoot string
	// ArchivePath is where the JSON index goes. Empty disables it.
	ArchivePath string
	Filter      post.Filter
	// Jobs bounds the number of posts processed at once. Zero means
	// GOMAXPROCS.
	Jobs int
	// Extension is appended to delegate paths. Empty means DefaultExtension.
	Extension string
	Logf      normalize.Logf
	// Force overwrites existing files.
	Force bool
	// DryRun builds every document without writing files or the index.
	DryRun bool
}

// Result summarizes a run.
type Result struct {
	// Entries lists every post that owns its output path, oldest first.
	Entries []ArchiveEntry
	Written int
	Skipped int
	// Archive is the index path, empty when none was written.
	Archive string
}

// Run exports the posts matching Filter. Documents are built in parallel,
// output paths are then claimed in publish order so the earliest post wins a
// shared path, and the owners are written in parallel.
func (e *Exporter) Run(ctx context.Context) (*Result, error) {
	if e.Source == nil || e.Delegate == nil {
		return nil, errors.New("exporter needs a source and a delegate")
	}

	posts, err := e.Source.Posts(ctx, e.Filter.Statuses)
	if err != nil {
		return nil, err
	}
	posts = e.Filter.Apply(posts)
	post.SortByPublished(posts)

	docs := make([]*Document, len(posts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.jobs())
	for i, p := range posts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := Build(e.Delegate, e.ContentRoot, e.extension(), p)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	owners := e.claimPaths(docs)

	written := make([]bool, len(owners))
	if !e.DryRun {
		g, gctx = errgroup.WithContext(ctx)
		g.SetLimit(e.jobs())
		for i, doc := range owners {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				ok, err := doc.write(e.Force)
				if err != nil {
					return err
				}
				if !ok {
					e.logf("post %d: %s exists, skipping", doc.Post.ID, doc.Path)
				}
				written[i] = ok
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	result := &Result{
		Entries: make([]ArchiveEntry, 0, len(owners)),
		Skipped: len(docs) - len(owners),
	}
	for i, doc := range owners {
		result.Entries = append(result.Entries, newArchiveEntry(doc, e.ContentRoot))
		if e.DryRun || written[i] {
			result.Written++
		} else {
			result.Skipped++
		}
	}

	if e.ArchivePath != "" && !e.DryRun {
		if err := WriteArchive(e.ArchivePath, result.Entries); err != nil {
			return nil, err
		}
		result.Archive = e.ArchivePath
	}
	return result, nil
}

// claimPaths returns the documents that own their output path. docs are in
// publish order; a later document with a taken path is dropped.
func (e *Exporter) claimPaths(docs []*Document) []*Document {
	owner := make(map[string]int64, len(docs))
	owners := make([]*Document, 0, len(docs))
	for _, doc := range docs {
		if id, taken := owner[doc.Path]; taken {
			e.logf("post %d: %s already produced by post %d, skipping", doc.Post.ID, doc.Path, id)
			continue
		}
		owner[doc.Path] = doc.Post.ID
		owners = append(owners, doc)
	}
	return owners
}

// Preview transforms a single post without writing it. The delegate may
// still create the post's output directory.
func (e *Exporter) Preview(p post.Post) (*Document, error) {
	if e.Delegate == nil {
		return nil, errors.New("exporter needs a delegate")
	}
	return Build(e.Delegate, e.ContentRoot, e.extension(), p)
}

func (e *Exporter) jobs() int {
	if e.Jobs > 0 {
		return e.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

func (e *Exporter) extension() string {
	if e.Extension != "" {
		return e.Extension
	}
	return DefaultExtension
}

func (e *Exporter) logf(format string, args ...any) {
	if e.Logf != nil {
		e.Logf(format, args...)
	}
}

// ExportPost transforms and writes a single post. written is false when the
// file already existed and Force is unset.
func (e *Exporter) ExportPost(p post.Post) (doc *Document, written bool, err error) {
	doc, err = e.Preview(p)
	if err != nil {
		return nil, false, err
	}
	written, err = doc.write(e.Force)
	if err != nil {
		return nil, false, err
	}
	return doc, written, nil
}
