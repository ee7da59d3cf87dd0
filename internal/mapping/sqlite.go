package mapping

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/spendmap/spendmap/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore keeps mappings in a SQLite database.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and applies
// migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if err := runMigrations(path); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{path: path, db: db}, nil
}

func runMigrations(path string) error {
	// A separate connection, since closing the migrate instance closes its driver.
	mdb, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening migration database: %w", err)
	}
	defer mdb.Close()

	driver, err := sqlite.WithInstance(mdb, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating sqlite driver: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("creating iofs source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Location implements Store.
func (s *SQLiteStore) Location() string { return s.path }

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context) ([]model.Mapping, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, category FROM mappings ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying mappings: %w", err)
	}
	defer rows.Close()

	var entries []model.Mapping
	for rows.Next() {
		var m model.Mapping
		if err := rows.Scan(&m.Name, &m.Category); err != nil {
			return nil, fmt.Errorf("scanning mapping: %w", err)
		}
		entries = append(entries, m)
	}
	return entries, rows.Err()
}

// Save replaces every stored mapping in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, entries []model.Mapping) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM mappings`); err != nil {
		return fmt.Errorf("clearing mappings: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO mappings (position, name, category) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range Dedupe(entries) {
		if _, err := stmt.ExecContext(ctx, i+1, m.Name, m.Category); err != nil {
			return fmt.Errorf("inserting mapping %q: %w", m.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing mappings: %w", err)
	}
	return nil
}
