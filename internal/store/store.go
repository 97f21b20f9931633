// Package store persists clipboard registers.
//
// The coordinator only depends on the Store interface; the SQLite
// implementation lives in sqlite.go. Callers distinguish the two expected
// failure modes with errors.Is; any other error is an opaque persistence
// failure.
package store

import "errors"

var (
	// ErrNotFound is returned when an operation references an unknown register.
	ErrNotFound = errors.New("register not found")

	// ErrConflict is returned when creating a register whose name is taken.
	ErrConflict = errors.New("register already exists")
)

// Register is a named slot of reusable text with an optional shortcut
// descriptor. The descriptor is kept in its raw string form for display;
// parsing happens at the hotkey layer.
type Register struct {
	Name     string
	Content  string
	Shortcut string
}

// Store is the persistence interface the coordinator talks to.
type Store interface {
	// Create adds an empty register. Returns ErrConflict if name is taken.
	Create(name, shortcut string) error

	// Read returns the content of a register. Returns ErrNotFound if absent.
	Read(name string) (string, error)

	// UpdateContent replaces a register's content. Returns ErrNotFound if absent.
	UpdateContent(name, content string) error

	// UpdateShortcut replaces a register's shortcut descriptor.
	// Returns ErrNotFound if absent.
	UpdateShortcut(name, shortcut string) error

	// Delete removes a register. Returns ErrNotFound if absent.
	Delete(name string) error

	// List returns every register, ordered by name.
	List() ([]Register, error)

	// Close releases the underlying resources.
	Close() error
}
