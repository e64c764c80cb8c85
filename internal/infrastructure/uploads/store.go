package uploads

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const defaultBusyTimeout = 5000

// FileMeta is a row in the files table.
type FileMeta struct {
	ID           string
	OriginalName string
	Mime         string
	SizeBytes    int64
	StoragePath  string
	UploadedBy   string
	UploadedAt   time.Time
}

// Store keeps upload metadata in SQLite so stale files can be swept
// even across restarts.
type Store struct {
	db *sql.DB
}

// NewStore initializes the SQLite database at the provided path. Call Close when done.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "uploads.db"
	}
	db, err := sql.Open("sqlite", buildDSN(path))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func buildDSN(path string) string {
	switch {
	case strings.HasPrefix(path, "file:"), strings.HasPrefix(path, ":memory:"):
		// already in a form sqlite understands
	default:
		path = "file:" + path
	}
	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}
	return fmt.Sprintf("%s%s_pragma=busy_timeout=%d", path, separator, defaultBusyTimeout)
}

// Migrate runs the schema creation statements.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS files (
		id TEXT PRIMARY KEY,
		original_name TEXT NOT NULL,
		mime TEXT NOT NULL,
		size_bytes INTEGER NOT NULL,
		storage_path TEXT NOT NULL,
		uploaded_by TEXT NOT NULL,
		uploaded_at DATETIME NOT NULL
	);`)
	return err
}

func (s *Store) Insert(ctx context.Context, meta FileMeta) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO files (id, original_name, mime, size_bytes, storage_path, uploaded_by, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.OriginalName, meta.Mime, meta.SizeBytes, meta.StoragePath, meta.UploadedBy, meta.UploadedAt.UTC())
	return err
}

func (s *Store) GetByID(ctx context.Context, id string) (*FileMeta, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, original_name, mime, size_bytes, storage_path, uploaded_by, uploaded_at
		 FROM files WHERE id = ?`, id)

	var meta FileMeta
	if err := row.Scan(&meta.ID, &meta.OriginalName, &meta.Mime, &meta.SizeBytes,
		&meta.StoragePath, &meta.UploadedBy, &meta.UploadedAt); err != nil {
		return nil, err
	}
	return &meta, nil
}

// ExpiredBefore returns the files uploaded before cutoff.
func (s *Store) ExpiredBefore(ctx context.Context, cutoff time.Time) ([]FileMeta, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, original_name, mime, size_bytes, storage_path, uploaded_by, uploaded_at
		 FROM files WHERE uploaded_at < ?`, cutoff.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FileMeta
	for rows.Next() {
		var meta FileMeta
		if err := rows.Scan(&meta.ID, &meta.OriginalName, &meta.Mime, &meta.SizeBytes,
			&meta.StoragePath, &meta.UploadedBy, &meta.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, meta)
	}
	return out, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM files WHERE id = ?`, id)
	return err
}
