package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ArchiveEntry describes one exported post in the archive index.
type ArchiveEntry struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Path      string    `json:"path"`
	Published time.Time `json:"published"`
	Tags      []string  `json:"tags"`
	Status    string    `json:"status"`
}

func newArchiveEntry(doc *Document, contentRoot string) ArchiveEntry {
	rel, err := filepath.Rel(contentRoot, doc.Path)
	if err != nil {
		rel = doc.Path
	}
	tags := doc.Tags()
	if tags == nil {
		tags = []string{}
	}
	return ArchiveEntry{
		ID:        doc.Post.ID,
		Title:     doc.Title(),
		Path:      filepath.ToSlash(rel),
		Published: doc.Post.Published,
		Tags:      tags,
		Status:    doc.Post.Status,
	}
}

// WriteArchive writes the entries as an indented JSON array to path,
// creating parent directories.
func WriteArchive(path string, entries []ArchiveEntry) error {
	if entries == nil {
		entries = []ArchiveEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding archive index: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating archive directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing archive index %s: %w", path, err)
	}
	return nil
}
