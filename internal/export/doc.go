// Package export writes WordPress posts to a static archive.
//
// An Exporter reads posts from a Source, hands each one to a
// transform.Delegate and writes the result as a Markdown file with YAML
// front matter:
//
//	---
//	Title: My Title - A Subtitle
//	Tags:
//	  - Travel
//	Date: 2024-03-05T09:00:00Z
//	Slug: my-title
//	---
//
//	Post body.
//
// # Pipeline
//
// For every post the Exporter calls, in order:
//
//   - Delegate.OutputPath to pick the file path (the extension is added here)
//   - Delegate.ProcessPost to rewrite the body
//   - Delegate.PopulateFrontMatter on a fresh frontmatter.Block
//
// then renders the document and writes it. Posts are processed by up to
// Jobs workers; the first failure cancels the remaining work.
//
// # Existing Files
//
// A file that already exists is left alone and counted as skipped unless
// Force is set. Two posts that resolve to the same path are never both
// written; the later one is skipped with a diagnostic.
//
// # Archive Index
//
// When ArchivePath is set, a JSON array describing every exported post is
// written there after all files, ordered by publish date:
//
//	[
//	  {
//	    "id": 12,
//	    "title": "My Title - A Subtitle",
//	    "path": "2024/03-05-my-title.md",
//	    "published": "2024-03-05T09:00:00Z",
//	    "tags": ["Travel"]
//	  }
//	]
//
// Paths in the index are relative to the content root and use forward
// slashes.
package export
