// Package vectorstore is a client for the persistent vector store used
// by the course notebooks. A store is a directory holding a single
// SQLite database (store.db) with named collections of chunk records.
// This package only reads and writes through the store's schema; it is
// not a storage engine.
package vectorstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"genaikit/internal/logging"

	_ "modernc.org/sqlite"
)

// Sentinel errors for the store client.
var (
	// ErrPathNotFound indicates the store directory does not exist.
	ErrPathNotFound = errors.New("vector store path not found")

	// ErrCollectionNotFound indicates the named collection is absent.
	ErrCollectionNotFound = errors.New("collection not found")
)

// Client is a handle to a persistent vector store. Each analysis call
// opens a fresh client; there is no connection pooling or caching.
type Client struct {
	db   *sql.DB
	path string
}

// Open connects to the store at the given directory path.
// Returns ErrPathNotFound when the directory is absent. An existing
// directory without a database yields an empty store, matching the
// behavior of the backing client libraries.
func Open(path string) (*Client, error) {
	timer := logging.StartTimer(logging.CategoryStore, "Open")
	defer timer.Stop()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat store path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrPathNotFound, path)
	}

	dbPath := filepath.Join(path, "store.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite journal_mode=WAL: %v", err)
	}

	c := &Client{db: db, path: path}
	if err := c.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize store schema: %w", err)
	}

	logging.Store("Opened vector store at %s", path)
	return c, nil
}

// initialize creates the store schema if it is missing.
func (c *Client) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS collections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS records (
		collection_id INTEGER NOT NULL REFERENCES collections(id),
		id TEXT NOT NULL,
		document TEXT,
		metadata TEXT,
		embedding TEXT,
		position INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (collection_id, id)
	);
	CREATE INDEX IF NOT EXISTS idx_records_collection ON records(collection_id, position);
	`
	_, err := c.db.Exec(schema)
	return err
}

// Path returns the store directory this client is connected to.
func (c *Client) Path() string {
	return c.path
}

// ListCollections returns the names of all collections in the store.
func (c *Client) ListCollections() ([]string, error) {
	rows, err := c.db.Query("SELECT name FROM collections ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Collection returns a handle to the named collection.
// Returns ErrCollectionNotFound when it does not exist.
func (c *Client) Collection(name string) (*Collection, error) {
	var id int64
	err := c.db.QueryRow("SELECT id FROM collections WHERE name = ?", name).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up collection %q: %w", name, err)
	}
	return &Collection{db: c.db, id: id, name: name}, nil
}

// CreateCollection creates a collection if it does not already exist
// and returns a handle to it. Used by seeding and by tests.
func (c *Client) CreateCollection(name string) (*Collection, error) {
	if _, err := c.db.Exec(
		"INSERT OR IGNORE INTO collections (name) VALUES (?)", name,
	); err != nil {
		return nil, fmt.Errorf("failed to create collection %q: %w", name, err)
	}
	return c.Collection(name)
}

// Close releases the database handle.
func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
