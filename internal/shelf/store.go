package shelf

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	_ "modernc.org/sqlite"

	"storyreel/internal/book"
	"storyreel/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema changes.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("shelf schema version mismatch")

// Store manages shelf persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
}

// Open initializes or connects to the shelf database. It acquires an
// exclusive lock file next to the database and fails with ErrLocked when
// another process already holds it.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.ShelfDir, "shelf.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire shelf lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	dbPath := filepath.Join(cfg.Paths.ShelfDir, "shelf.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close closes the database and releases the shelf lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = multierr.Append(err, s.db.Close())
	}
	if s.lock != nil {
		err = multierr.Append(err, s.lock.Unlock())
	}
	return err
}

func (s *Store) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create shelf schema: %w", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM schema_version").Scan(&count); err != nil {
		return fmt.Errorf("check schema version: %w", err)
	}
	if count == 0 {
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("write schema version: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: have %d, want %d", ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

// Add shelves a validated book and returns the new entry.
func (s *Store) Add(ctx context.Context, b *book.Book, sourcePath string) (*Entry, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := &Entry{
		ID:         uuid.NewString(),
		Title:      b.Title,
		AuthorName: b.AuthorName,
		SourcePath: sourcePath,
		PageCount:  len(b.Pages),
		AddedAt:    now,
		UpdatedAt:  now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO shelf_books (id, title, author_name, source_path, page_count, last_spread, added_at, updated_at)
         VALUES (?, ?, ?, ?, ?, 0, ?, ?)`,
		entry.ID, entry.Title, entry.AuthorName, entry.SourcePath, entry.PageCount,
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert shelf entry: %w", err)
	}
	return entry, nil
}

// Get returns the entry with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, author_name, source_path, page_count, last_spread, added_at, updated_at
         FROM shelf_books WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return entry, err
}

// List returns all shelved books ordered by title using locale-aware
// collation, then by added time for identical titles.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, author_name, source_path, page_count, last_spread, added_at, updated_at
         FROM shelf_books`)
	if err != nil {
		return nil, fmt.Errorf("list shelf entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shelf entries: %w", err)
	}

	collator := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(entries, func(i, j int) bool {
		if cmp := collator.CompareString(entries[i].Title, entries[j].Title); cmp != 0 {
			return cmp < 0
		}
		return entries[i].AddedAt.Before(entries[j].AddedAt)
	})
	return entries, nil
}

// Remove deletes the entry with the given id, or returns ErrNotFound.
func (s *Store) Remove(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM shelf_books WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete shelf entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete shelf entry: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// SavePosition records the last viewed spread start index for a book.
func (s *Store) SavePosition(ctx context.Context, id string, spreadStart int) error {
	if spreadStart < 0 {
		spreadStart = 0
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE shelf_books SET last_spread = ?, updated_at = ? WHERE id = ?",
		spreadStart, time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("save reading position: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save reading position: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var entry Entry
	var addedAt, updatedAt string
	err := row.Scan(&entry.ID, &entry.Title, &entry.AuthorName, &entry.SourcePath,
		&entry.PageCount, &entry.LastSpread, &addedAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if entry.AddedAt, err = time.Parse(time.RFC3339Nano, addedAt); err != nil {
		return nil, fmt.Errorf("parse added_at: %w", err)
	}
	if entry.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &entry, nil
}
