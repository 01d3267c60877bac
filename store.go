package localhake

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/localhake/localhake/content"
)

// ErrNotFound is returned when a requested page does not exist or is a draft.
var ErrNotFound = errors.New("localhake: page not found")

// Store wraps a SQLite database holding the site's pages.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	inMemory := path == ":memory:"
	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	// Every in-memory connection is its own empty database, so the pool
	// must hold exactly one.
	maxConns := 4
	if inMemory {
		maxConns = 1
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	// WAL lets the preview server read while an import writes; writers wait
	// on the busy timeout instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure store: %w", err)
	}
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS pages (
    kind TEXT NOT NULL,
    slug TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    date TEXT NOT NULL DEFAULT '',
    date_modified TEXT NOT NULL DEFAULT '',
    author TEXT NOT NULL DEFAULT '',
    image TEXT NOT NULL DEFAULT '',
    keywords TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT '',
    published INTEGER NOT NULL DEFAULT 1,
    PRIMARY KEY (kind, slug)
);
CREATE INDEX IF NOT EXISTS pages_kind_date ON pages (kind, date DESC);
`)
	return err
}

const pageColumns = `kind, slug, title, description, date, date_modified, author, image, keywords, tags, content, published`

type scanner interface {
	Scan(dest ...any) error
}

func scanPage(row scanner) (Page, error) {
	var p Page
	var kind, keywords, tags string
	var published int
	if err := row.Scan(&kind, &p.Slug, &p.Title, &p.Description, &p.Date, &p.DateModified,
		&p.Author, &p.Image, &keywords, &tags, &p.Content, &published); err != nil {
		return Page{}, err
	}
	p.Kind = content.Kind(kind)
	p.Keywords = splitList(keywords)
	p.Tags = splitList(tags)
	p.Published = published == 1
	return p, nil
}

func (s *Store) queryPages(query string, args ...any) ([]Page, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// ListPages returns published pages of the given kind, newest first, then by
// title. If tag is non-empty, only pages carrying that tag are returned.
func (s *Store) ListPages(kind content.Kind, tag string) ([]Page, error) {
	if tag == "" {
		return s.queryPages(`SELECT `+pageColumns+` FROM pages WHERE kind = ? AND published = 1 ORDER BY date DESC, title`, string(kind))
	}
	return s.queryPages(`SELECT `+pageColumns+` FROM pages WHERE kind = ? AND published = 1 AND instr(tags, ',' || ? || ',') > 0 ORDER BY date DESC, title`,
		string(kind), normalizeTag(tag))
}

// ListAllPages returns every page, drafts included.
func (s *Store) ListAllPages() ([]Page, error) {
	return s.queryPages(`SELECT ` + pageColumns + ` FROM pages ORDER BY kind, date DESC, title`)
}

// ListTags returns the sorted, deduplicated tags of published pages of kind.
func (s *Store) ListTags(kind content.Kind) ([]string, error) {
	rows, err := s.db.Query(`SELECT tags FROM pages WHERE kind = ? AND published = 1`, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, err
		}
		for _, t := range splitList(tags) {
			set[t] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	result := make([]string, 0, len(set))
	for t := range set {
		result = append(result, t)
	}
	sort.Strings(result)
	return result, nil
}

// GetPage returns a single published page.
func (s *Store) GetPage(kind content.Kind, slug string) (Page, error) {
	p, err := scanPage(s.db.QueryRow(`SELECT `+pageColumns+` FROM pages WHERE kind = ? AND slug = ? AND published = 1`, string(kind), slug))
	if errors.Is(err, sql.ErrNoRows) {
		return Page{}, ErrNotFound
	}
	return p, err
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func savePage(ctx context.Context, db execer, p Page) error {
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		if t = normalizeTag(t); t != "" {
			tags = append(tags, t)
		}
	}
	published := 0
	if p.Published {
		published = 1
	}
	_, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO pages (`+pageColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(p.Kind), p.Slug, p.Title, p.Description, p.Date, p.DateModified, p.Author, p.Image,
		joinList(FilterEmpty(p.Keywords)), joinList(tags), p.Content, published)
	return err
}

// SavePage upserts a page. Tags are normalized to lowercase; keywords keep
// their case and order.
func (s *Store) SavePage(p Page) error {
	if p.Slug == "" {
		return errors.New("localhake: page slug is required")
	}
	return savePage(context.Background(), s.db, p)
}

// ReplaceAll swaps the whole page set for pages in one transaction.
func (s *Store) ReplaceAll(ctx context.Context, pages []Page) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pages`); err != nil {
		return err
	}
	for _, p := range pages {
		if p.Slug == "" {
			return fmt.Errorf("localhake: %s page %q has no slug", p.Kind, p.Title)
		}
		if err := savePage(ctx, tx, p); err != nil {
			return fmt.Errorf("save %s: %w", p.Path(), err)
		}
	}
	return tx.Commit()
}

// DeletePage removes a page.
func (s *Store) DeletePage(kind content.Kind, slug string) error {
	_, err := s.db.Exec(`DELETE FROM pages WHERE kind = ? AND slug = ?`, string(kind), slug)
	return err
}

// hasTag reports whether p carries tag, compared case-insensitively.
func hasTag(p Page, tag string) bool {
	want := normalizeTag(tag)
	for _, t := range p.Tags {
		if normalizeTag(t) == want {
			return true
		}
	}
	return false
}
