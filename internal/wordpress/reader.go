// Package wordpress reads posts out of a WordPress database.
//
// Two drivers are supported: "mysql" for a live site and "sqlite" for a
// local copy of the schema (used by tests and offline exports).
package wordpress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/gorewood/wpexport/internal/post"
)

// Driver names accepted by Open.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

const (
	defaultPrefix    = "wp_"
	defaultMySQLPort = "3306"
	dateLayout       = "2006-01-02 15:04:05"
	zeroDate         = "0000-00-00 00:00:00"
)

// ErrNotFound is returned by Post when no post has the requested ID.
var ErrNotFound = errors.New("post not found")

var prefixPattern = regexp.MustCompile(`^[A-Za-z0-9_]*$`)

// Options describe how to reach the database.
type Options struct {
	Driver      string
	Host        string
	Database    string
	Username    string
	Password    string
	TLS         string
	TablePrefix string
	// DSN, when set, is passed to the driver unchanged and the connection
	// fields above are ignored.
	DSN string
	// Location is the time zone of post_date columns. Defaults to UTC.
	Location *time.Location
}

// Reader queries posts. It is safe for concurrent use.
type Reader struct {
	db     *sql.DB
	driver string
	prefix string
	loc    *time.Location
}

// Open connects to the database described by opts and verifies the
// connection.
func Open(ctx context.Context, opts Options) (*Reader, error) {
	prefix := opts.TablePrefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	if !prefixPattern.MatchString(prefix) {
		return nil, fmt.Errorf("invalid table prefix %q", prefix)
	}

	dsn, err := opts.dataSourceName()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(opts.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", opts.Driver, err)
	}
	if opts.Driver == DriverSQLite {
		db.SetMaxOpenConns(4)
	}

	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	r := &Reader{db: db, driver: opts.Driver, prefix: prefix, loc: loc}
	if err := r.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func (o Options) dataSourceName() (string, error) {
	if o.DSN != "" {
		if o.Driver != DriverMySQL && o.Driver != DriverSQLite {
			return "", fmt.Errorf("unsupported driver %q", o.Driver)
		}
		return o.DSN, nil
	}

	switch o.Driver {
	case DriverMySQL:
		if o.Host == "" {
			return "", errors.New("mysql: host is required")
		}
		cfg := mysql.NewConfig()
		cfg.User = o.Username
		cfg.Passwd = o.Password
		cfg.Net = "tcp"
		cfg.Addr = withDefaultPort(o.Host, defaultMySQLPort)
		cfg.DBName = o.Database
		cfg.TLSConfig = o.TLS
		cfg.Params = map[string]string{"charset": "utf8mb4"}
		return cfg.FormatDSN(), nil
	case DriverSQLite:
		if o.Database == "" {
			return "", errors.New("sqlite: database path is required")
		}
		// The driver silently creates missing files; a reader never wants that.
		if _, err := os.Stat(o.Database); err != nil {
			return "", fmt.Errorf("sqlite database: %w", err)
		}
		return o.Database, nil
	default:
		return "", fmt.Errorf("unsupported driver %q", o.Driver)
	}
}

func withDefaultPort(host, port string) string {
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}
	return net.JoinHostPort(host, port)
}

// Ping checks that the database is reachable.
func (r *Reader) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("connecting to %s database: %w", r.driver, err)
	}
	return nil
}

// Close releases the connection pool.
func (r *Reader) Close() error {
	return r.db.Close()
}

// Driver returns the driver name the reader was opened with.
func (r *Reader) Driver() string {
	return r.driver
}

func (r *Reader) table(name string) string {
	return r.prefix + name
}

// statusClause returns " AND p.post_status IN (?, ...)" and its arguments.
// No statuses means any status.
func statusClause(statuses []string) (string, []any) {
	if len(statuses) == 0 {
		return "", nil
	}
	args := make([]any, len(statuses))
	for i, s := range statuses {
		args[i] = s
	}
	return " AND p.post_status IN (" + strings.TrimSuffix(strings.Repeat("?, ", len(statuses)), ", ") + ")", args
}

func (r *Reader) postQuery(where string) string {
	return fmt.Sprintf(`SELECT p.ID, p.post_date, p.post_modified, p.post_status, p.post_title,
       p.post_name, p.post_content, p.post_excerpt, COALESCE(u.display_name, '')
FROM %s p
LEFT JOIN %s u ON u.ID = p.post_author
WHERE p.post_type = 'post'%s
ORDER BY p.post_date, p.ID`, r.table("posts"), r.table("users"), where)
}

// Posts returns every post whose status is in statuses, oldest first, with
// tags, categories and author filled in.
func (r *Reader) Posts(ctx context.Context, statuses []string) ([]post.Post, error) {
	where, args := statusClause(statuses)
	posts, err := r.queryPosts(ctx, r.postQuery(where), args...)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return posts, nil
	}

	terms, err := r.queryTerms(ctx, "", nil)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		t := terms[posts[i].ID]
		posts[i].Tags = t.tags
		posts[i].Categories = t.categories
	}
	return posts, nil
}

// Post returns the post with the given ID regardless of status.
func (r *Reader) Post(ctx context.Context, id int64) (post.Post, error) {
	posts, err := r.queryPosts(ctx, r.postQuery(" AND p.ID = ?"), id)
	if err != nil {
		return post.Post{}, err
	}
	if len(posts) == 0 {
		return post.Post{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	terms, err := r.queryTerms(ctx, " AND tr.object_id = ?", []any{id})
	if err != nil {
		return post.Post{}, err
	}
	p := posts[0]
	p.Tags = terms[id].tags
	p.Categories = terms[id].categories
	return p, nil
}

// Count returns the number of posts whose status is in statuses.
func (r *Reader) Count(ctx context.Context, statuses []string) (int, error) {
	where, args := statusClause(statuses)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s p WHERE p.post_type = 'post'%s`, r.table("posts"), where)

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting posts: %w", err)
	}
	return n, nil
}

func (r *Reader) queryPosts(ctx context.Context, query string, args ...any) ([]post.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	posts := []post.Post{}
	for rows.Next() {
		var (
			p                 post.Post
			published, edited string
		)
		if err := rows.Scan(&p.ID, &published, &edited, &p.Status, &p.Title,
			&p.Name, &p.Content, &p.Excerpt, &p.AuthorName); err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}

		if p.Published, err = r.parseDate(published); err != nil {
			return nil, fmt.Errorf("post %d: publish date: %w", p.ID, err)
		}
		if p.Published.IsZero() {
			return nil, fmt.Errorf("post %d: publish date is not set", p.ID)
		}
		if p.Modified, err = r.parseDate(edited); err != nil {
			return nil, fmt.Errorf("post %d: modified date: %w", p.ID, err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading posts: %w", err)
	}
	return posts, nil
}

// parseDate reads a DATETIME column. MySQL returns "2006-01-02 15:04:05";
// the SQLite driver may hand back RFC 3339 when the column is typed.
// The MySQL zero date becomes the zero time.
func (r *Reader) parseDate(s string) (time.Time, error) {
	if s == "" || s == zeroDate {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(dateLayout, s, r.loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

type postTerms struct {
	tags       []string
	categories []string
}

func (r *Reader) queryTerms(ctx context.Context, where string, args []any) (map[int64]postTerms, error) {
	query := fmt.Sprintf(`SELECT tr.object_id, tt.taxonomy, t.name
FROM %s tr
JOIN %s tt ON tt.term_taxonomy_id = tr.term_taxonomy_id
JOIN %s t ON t.term_id = tt.term_id
WHERE tt.taxonomy IN ('post_tag', 'category')%s
ORDER BY tr.object_id, tr.term_order, t.name`,
		r.table("term_relationships"), r.table("term_taxonomy"), r.table("terms"), where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying terms: %w", err)
	}
	defer func() { _ = rows.Close() }()

	terms := make(map[int64]postTerms)
	for rows.Next() {
		var (
			id             int64
			taxonomy, name string
		)
		if err := rows.Scan(&id, &taxonomy, &name); err != nil {
			return nil, fmt.Errorf("scanning term: %w", err)
		}
		t := terms[id]
		if taxonomy == "post_tag" {
			t.tags = append(t.tags, name)
		} else {
			t.categories = append(t.categories, name)
		}
		terms[id] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading terms: %w", err)
	}
	return terms, nil
}
