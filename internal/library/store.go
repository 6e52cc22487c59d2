// Package library keeps named plate layouts in a SQLite database.
package library

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PixPMusic/platemapper/internal/logging"
	"github.com/PixPMusic/platemapper/internal/plate"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

var (
	// ErrNotFound is returned when no layout has the requested name.
	ErrNotFound = errors.New("layout not found")
	// ErrExists is returned when renaming onto a name already in use.
	ErrExists = errors.New("layout name already in use")
	// ErrEmptyName rejects blank layout names.
	ErrEmptyName = errors.New("layout name is empty")
)

const schema = `CREATE TABLE IF NOT EXISTS layouts (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	format TEXT NOT NULL,
	payload BLOB NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Entry describes a stored layout without its wells.
type Entry struct {
	ID        string
	Name      string
	Format    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is a SQLite-backed layout library.
type Store struct {
	db   *sql.DB
	path string
	log  logging.Logger
	now  func() time.Time
}

// Open opens (creating if needed) the library at path.
func Open(path string, log logging.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("library path is empty")
	}
	if log == nil {
		log = logging.Nop()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps ":memory:" databases coherent and serialises writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create layouts table: %w", err)
	}
	log.Debug("layout library opened", logging.String("path", path))
	return &Store{db: db, path: path, log: log, now: time.Now}, nil
}

// Path returns the database path.
func (s *Store) Path() string { return s.path }

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

// Save stores p under name, replacing any layout already saved there.
func (s *Store) Save(ctx context.Context, name string, p *plate.Plate) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(p.Snapshot()); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	now := s.now().UnixNano()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO layouts(id,name,format,payload,created_at,updated_at) VALUES(?,?,?,?,?,?)
		ON CONFLICT(name) DO UPDATE SET format=excluded.format, payload=excluded.payload, updated_at=excluded.updated_at`,
		uuid.New().String(), name, p.Format().Name, buf.Bytes(), now, now)
	if err != nil {
		return fmt.Errorf("save layout %q: %w", name, err)
	}
	s.log.Info("layout saved", logging.String("name", name), logging.String("format", p.Format().Name))
	return nil
}

// Load restores the layout saved under name.
func (s *Store) Load(ctx context.Context, name string) (*plate.Plate, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	var payload []byte
	err = s.db.QueryRowContext(ctx, `SELECT payload FROM layouts WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load layout %q: %w", name, err)
	}
	var snap plate.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("decode layout %q: %w", name, err)
	}
	p, err := plate.Restore(snap)
	if err != nil {
		return nil, fmt.Errorf("restore layout %q: %w", name, err)
	}
	return p, nil
}

// List returns every stored layout ordered by name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, format, created_at, updated_at FROM layouts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []Entry{}
	for rows.Next() {
		var (
			e                Entry
			created, updated int64
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Format, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		e.CreatedAt = time.Unix(0, created)
		e.UpdatedAt = time.Unix(0, updated)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	return entries, nil
}

// Rename moves a layout to a new name. Renaming onto an existing layout is
// refused with ErrExists.
func (s *Store) Rename(ctx context.Context, oldName, newName string) (retErr error) {
	oldName, err := cleanName(oldName)
	if err != nil {
		return err
	}
	newName, err = cleanName(newName)
	if err != nil {
		return err
	}
	if oldName == newName {
		return s.exists(ctx, oldName)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM layouts WHERE name = ?`, newName).Scan(&n); err != nil {
		return fmt.Errorf("rename layout: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%q: %w", newName, ErrExists)
	}
	res, err := tx.ExecContext(ctx, `UPDATE layouts SET name = ?, updated_at = ? WHERE name = ?`,
		newName, s.now().UnixNano(), oldName)
	if err != nil {
		return fmt.Errorf("rename layout %q: %w", oldName, err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return err
	} else if affected == 0 {
		return fmt.Errorf("%q: %w", oldName, ErrNotFound)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.log.Info("layout renamed", logging.String("from", oldName), logging.String("to", newName))
	return nil
}

// Delete removes the layout saved under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM layouts WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete layout %q: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	s.log.Info("layout deleted", logging.String("name", name))
	return nil
}

func (s *Store) exists(ctx context.Context, name string) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM layouts WHERE name = ?`, name).Scan(&n); err != nil {
		return fmt.Errorf("lookup layout %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return nil
}
