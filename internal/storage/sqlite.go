// Package storage provides SQLite-based persistence for accepted cube
// placements. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/cubecast/internal/core"
	"github.com/vovakirdan/cubecast/internal/engine"
)

// Store manages the SQLite database connection for the cube archive.
// The archive is append-only from the event loop's point of view; Clear
// exists only for the CLI.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS cubes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			z INTEGER NOT NULL,
			r INTEGER NOT NULL,
			g INTEGER NOT NULL,
			b INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_cubes_coord ON cubes(x, y, z);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Append records one accepted placement.
func (s *Store) Append(cmd core.Command) error {
	_, err := s.db.Exec(
		"INSERT INTO cubes (x, y, z, r, g, b) VALUES (?, ?, ?, ?, ?, ?)",
		cmd.X, cmd.Y, cmd.Z, cmd.R, cmd.G, cmd.B,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot append cube: %w", err)
	}
	return nil
}

// ListAll retrieves every archived placement in insertion order.
// The event loop's replay tolerates any order, but insertion order keeps
// last-writer-wins identical to the live run.
func (s *Store) ListAll() ([]core.Command, error) {
	rows, err := s.db.Query(
		"SELECT x, y, z, r, g, b FROM cubes ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query cubes: %w", err)
	}
	defer rows.Close()

	var cmds []core.Command
	for rows.Next() {
		var cmd core.Command
		if err := rows.Scan(&cmd.X, &cmd.Y, &cmd.Z, &cmd.R, &cmd.G, &cmd.B); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		cmds = append(cmds, cmd)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return cmds, nil
}

// Count returns the number of archived placements.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM cubes").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count cubes: %w", err)
	}
	return n, nil
}

// Clear deletes every archived placement. Not used by the event loop.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM cubes"); err != nil {
		return fmt.Errorf("storage: cannot clear cubes: %w", err)
	}
	return nil
}

// Ensure Store implements the event loop's archive port.
var _ engine.Archive = (*Store)(nil)
