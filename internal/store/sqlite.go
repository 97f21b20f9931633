package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLite is the Store implementation backed by a local SQLite database.
type SQLite struct {
	conn *sql.DB
}

var _ Store = (*SQLite)(nil)

// Open opens (or creates) the register database at path and initializes the
// schema. Pass ":memory:" for a throwaway in-memory database.
func Open(path string) (*SQLite, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection: the coordinator serializes all access anyway, and a
	// second pooled connection to a ":memory:" database would silently get
	// its own empty database.
	conn.SetMaxOpenConns(1)

	// WAL keeps concurrent CLI reads cheap while the daemon holds the write side.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS registers (
		name     TEXT PRIMARY KEY,
		content  TEXT NOT NULL DEFAULT '',
		shortcut TEXT NOT NULL DEFAULT ''
	);
	`
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLite{conn: conn}, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.conn.Close()
}

// Create adds an empty register with the given shortcut descriptor.
func (s *SQLite) Create(name, shortcut string) error {
	res, err := s.conn.Exec(
		"INSERT INTO registers (name, content, shortcut) VALUES (?, '', ?) ON CONFLICT(name) DO NOTHING",
		name, shortcut,
	)
	if err != nil {
		return fmt.Errorf("create register: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("create register: %w", err)
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// Read returns the content of the named register.
func (s *SQLite) Read(name string) (string, error) {
	var content string
	err := s.conn.QueryRow("SELECT content FROM registers WHERE name = ?", name).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read register: %w", err)
	}
	return content, nil
}

// UpdateContent replaces the content of the named register.
func (s *SQLite) UpdateContent(name, content string) error {
	return s.updateColumn("content", name, content)
}

// UpdateShortcut replaces the shortcut descriptor of the named register.
func (s *SQLite) UpdateShortcut(name, shortcut string) error {
	return s.updateColumn("shortcut", name, shortcut)
}

func (s *SQLite) updateColumn(column, name, value string) error {
	res, err := s.conn.Exec(
		fmt.Sprintf("UPDATE registers SET %s = ? WHERE name = ?", column),
		value, name,
	)
	if err != nil {
		return fmt.Errorf("update register %s: %w", column, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update register %s: %w", column, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the named register.
func (s *SQLite) Delete(name string) error {
	res, err := s.conn.Exec("DELETE FROM registers WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("delete register: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete register: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns every register ordered by name.
func (s *SQLite) List() ([]Register, error) {
	rows, err := s.conn.Query("SELECT name, content, shortcut FROM registers ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list registers: %w", err)
	}
	defer rows.Close()

	var out []Register
	for rows.Next() {
		var r Register
		if err := rows.Scan(&r.Name, &r.Content, &r.Shortcut); err != nil {
			return nil, fmt.Errorf("scan register: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list registers: %w", err)
	}
	return out, nil
}
