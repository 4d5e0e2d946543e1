// Package wptest builds throwaway SQLite databases with the WordPress
// tables the exporter reads.
package wptest

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gorewood/wpexport/internal/post"
)

// Prefix is the table prefix used by fixtures.
const Prefix = "wp_"

const schema = `
CREATE TABLE wp_users (
    ID INTEGER PRIMARY KEY,
    user_login TEXT NOT NULL DEFAULT '',
    display_name TEXT NOT NULL DEFAULT ''
);
CREATE TABLE wp_posts (
    ID INTEGER PRIMARY KEY,
    post_author INTEGER NOT NULL DEFAULT 0,
    post_date TEXT NOT NULL DEFAULT '0000-00-00 00:00:00',
    post_modified TEXT NOT NULL DEFAULT '0000-00-00 00:00:00',
    post_status TEXT NOT NULL DEFAULT 'publish',
    post_title TEXT NOT NULL DEFAULT '',
    post_name TEXT NOT NULL DEFAULT '',
    post_content TEXT NOT NULL DEFAULT '',
    post_excerpt TEXT NOT NULL DEFAULT '',
    post_type TEXT NOT NULL DEFAULT 'post'
);
CREATE TABLE wp_terms (
    term_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    slug TEXT NOT NULL DEFAULT ''
);
CREATE TABLE wp_term_taxonomy (
    term_taxonomy_id INTEGER PRIMARY KEY,
    term_id INTEGER NOT NULL,
    taxonomy TEXT NOT NULL
);
CREATE TABLE wp_term_relationships (
    object_id INTEGER NOT NULL,
    term_taxonomy_id INTEGER NOT NULL,
    term_order INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (object_id, term_taxonomy_id)
);
`

// DB is a WordPress-shaped SQLite database on disk.
type DB struct {
	Path string

	t       testing.TB
	db      *sql.DB
	authors map[string]int64
	terms   map[[2]string]int64
}

// New creates an empty database in a temporary directory. It is closed when
// the test ends.
func New(t testing.TB) *DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "wordpress.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening fixture database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("creating fixture schema: %v", err)
	}
	return &DB{
		Path:    path,
		t:       t,
		db:      db,
		authors: make(map[string]int64),
		terms:   make(map[[2]string]int64),
	}
}

// Exec runs a raw statement against the fixture.
func (d *DB) Exec(query string, args ...any) {
	d.t.Helper()
	if _, err := d.db.Exec(query, args...); err != nil {
		d.t.Fatalf("fixture exec %q: %v", query, err)
	}
}

// AddPost inserts p as a row of type "post" along with its author, tags and
// categories. A zero Modified is stored as the MySQL zero date.
func (d *DB) AddPost(p post.Post) {
	d.t.Helper()

	modified := "0000-00-00 00:00:00"
	if !p.Modified.IsZero() {
		modified = Format(p.Modified)
	}
	status := p.Status
	if status == "" {
		status = post.StatusPublish
	}

	d.Exec(`INSERT INTO wp_posts (ID, post_author, post_date, post_modified, post_status,
        post_title, post_name, post_content, post_excerpt, post_type)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 'post')`,
		p.ID, d.author(p.AuthorName), Format(p.Published), modified, status,
		p.Title, p.Name, p.Content, p.Excerpt)

	for i, tag := range p.Tags {
		d.relate(p.ID, "post_tag", tag, i)
	}
	for i, cat := range p.Categories {
		d.relate(p.ID, "category", cat, i)
	}
}

// Format renders t the way WordPress stores DATETIME values.
func Format(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

func (d *DB) author(name string) int64 {
	if name == "" {
		return 0
	}
	if id, ok := d.authors[name]; ok {
		return id
	}
	id := int64(len(d.authors) + 1)
	d.Exec(`INSERT INTO wp_users (ID, user_login, display_name) VALUES (?, ?, ?)`, id, name, name)
	d.authors[name] = id
	return id
}

func (d *DB) relate(postID int64, taxonomy, name string, order int) {
	key := [2]string{taxonomy, name}
	id, ok := d.terms[key]
	if !ok {
		id = int64(len(d.terms) + 1)
		d.Exec(`INSERT INTO wp_terms (term_id, name, slug) VALUES (?, ?, ?)`, id, name, name)
		d.Exec(`INSERT INTO wp_term_taxonomy (term_taxonomy_id, term_id, taxonomy) VALUES (?, ?, ?)`, id, id, taxonomy)
		d.terms[key] = id
	}
	d.Exec(`INSERT INTO wp_term_relationships (object_id, term_taxonomy_id, term_order) VALUES (?, ?, ?)`,
		postID, id, order)
}
