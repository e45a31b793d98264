// Package registry keeps a local history of generated plans in SQLite, so
// `plans list` can show what was generated where without scanning vaults.
package registry

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/errors"
	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/plan"
	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/sqlite"
)

// Entry is one recorded plan.
type Entry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Scope     string `json:"scope"`
	StartDate string `json:"start_date"`
	Days      int    `json:"days"`
	Notes     int    `json:"notes"`
	SHA256    string `json:"sha256"`
	CreatedAt string `json:"created_at"`
}

// Registry is a handle to the plan history database.
type Registry struct {
	db   *sql.DB
	path string
}

// Open opens the registry database at path, creating it and its parent
// directory if needed.
func Open(path string) (*Registry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.NewIO("create directory", filepath.Dir(path), err)
	}

	db, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening registry database: %w", err)
	}

	r := &Registry{db: db, path: path}
	if err := r.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// Close closes the database connection.
func (r *Registry) Close() error {
	if r.db != nil {
		err := r.db.Close()
		r.db = nil
		return err
	}
	return nil
}

// Path returns the database file path.
func (r *Registry) Path() string {
	return r.path
}

func (r *Registry) initSchema() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS plans (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		scope TEXT NOT NULL,
		start_date TEXT NOT NULL,
		days INTEGER NOT NULL,
		notes INTEGER NOT NULL,
		sha256 TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create plans table: %w", err)
	}
	return nil
}

// Record inserts a generated plan's manifest into the history.
func (r *Registry) Record(m *plan.Manifest) error {
	_, err := r.db.Exec(
		`INSERT INTO plans (id, name, scope, start_date, days, notes, sha256, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Parameters.Scope, m.Parameters.StartDate,
		m.Totals.Days, len(m.Notes), m.Digests.SHA256, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record plan %s: %w", m.ID, err)
	}
	return nil
}

// List returns all recorded plans, newest first.
func (r *Registry) List() ([]*Entry, error) {
	rows, err := r.db.Query(
		`SELECT id, name, scope, start_date, days, notes, sha256, created_at
		 FROM plans ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.Scope, &e.StartDate,
			&e.Days, &e.Notes, &e.SHA256, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plan row: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// Get returns one recorded plan by ID.
func (r *Registry) Get(id string) (*Entry, error) {
	var e Entry
	err := r.db.QueryRow(
		`SELECT id, name, scope, start_date, days, notes, sha256, created_at
		 FROM plans WHERE id = ?`, id).
		Scan(&e.ID, &e.Name, &e.Scope, &e.StartDate,
			&e.Days, &e.Notes, &e.SHA256, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("plan", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load plan %s: %w", id, err)
	}
	return &e, nil
}
