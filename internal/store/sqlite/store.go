// ABOUTME: SQLite-backed Store implementation
// ABOUTME: One pk/sk/item table per TableSpec, JSON expression indexes
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harper/chatstore/internal/store"
	_ "modernc.org/sqlite"
)

// Store implements store.Store on an embedded SQLite database. Items are
// stored in their tagged wire encoding; secondary indexes are expression
// indexes over json_extract.
type Store struct {
	conn  *sql.DB
	specs map[string]store.TableSpec
}

// DefaultDataDir returns the default data directory following the XDG spec.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".local/share/chatstore"
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "chatstore")
}

// DefaultDBPath returns the default database file path
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), "chatstore.db")
}

// Open opens or creates a SQLite-backed store at the given path.
func Open(path string, specs ...store.TableSpec) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// WAL mode for better concurrency
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return initStore(conn, specs)
}

// OpenInMemory opens an in-memory store, used by tests.
func OpenInMemory(specs ...store.TableSpec) (*Store, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	// A single connection keeps the shared in-memory schema alive.
	conn.SetMaxOpenConns(1)
	return initStore(conn, specs)
}

func initStore(conn *sql.DB, specs []store.TableSpec) (*Store, error) {
	s := &Store{conn: conn, specs: make(map[string]store.TableSpec, len(specs))}
	for _, spec := range specs {
		s.specs[spec.Name] = spec
		if err := s.createTable(spec); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) createTable(spec store.TableSpec) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %q (
		pk TEXT NOT NULL,
		sk TEXT NOT NULL DEFAULT '',
		item TEXT NOT NULL,
		PRIMARY KEY (pk, sk)
	)`, spec.Name)
	if _, err := s.conn.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create table %s: %w", spec.Name, err)
	}
	for index, attr := range spec.Indexes {
		ddl := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %q ON %q (json_extract(item, '$.%s.S'))`,
			spec.Name+"_"+index, spec.Name, attr)
		if _, err := s.conn.Exec(ddl); err != nil {
			return fmt.Errorf("failed to create index %s: %w", index, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) spec(table string) (store.TableSpec, error) {
	spec, ok := s.specs[table]
	if !ok {
		return store.TableSpec{}, fmt.Errorf("%w: %s", store.ErrUnknownTable, table)
	}
	return spec, nil
}

// Put stores the item, overwriting any existing item with the same key.
func (s *Store) Put(ctx context.Context, table string, item store.Item) error {
	spec, err := s.spec(table)
	if err != nil {
		return err
	}
	key, err := store.KeyOf(spec, item)
	if err != nil {
		return err
	}
	data, err := store.MarshalItem(item)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`INSERT INTO %q (pk, sk, item) VALUES (?, ?, ?)
		ON CONFLICT (pk, sk) DO UPDATE SET item = excluded.item`, table)
	if _, err := s.conn.ExecContext(ctx, query, key.Partition, key.Sort, string(data)); err != nil {
		return fmt.Errorf("put %s: %w", table, err)
	}
	return nil
}

// Get retrieves one item by key.
func (s *Store) Get(ctx context.Context, table string, key store.Key) (store.Item, error) {
	if _, err := s.spec(table); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT item FROM %q WHERE pk = ? AND sk = ?`, table)
	var data string
	err := s.conn.QueryRowContext(ctx, query, key.Partition, key.Sort).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", store.ErrKeyNotFound, key.Partition, key.Sort)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", table, err)
	}
	return store.UnmarshalItem([]byte(data))
}

// Query returns all items matching the index attribute, or the whole
// partition when index is empty.
func (s *Store) Query(ctx context.Context, table, index, value string) ([]store.Item, error) {
	spec, err := s.spec(table)
	if err != nil {
		return nil, err
	}

	var query string
	if index == "" {
		query = fmt.Sprintf(`SELECT item FROM %q WHERE pk = ?`, table)
	} else {
		attr, ok := spec.Indexes[index]
		if !ok {
			return nil, fmt.Errorf("%w: %s on table %s", store.ErrUnknownIndex, index, table)
		}
		query = fmt.Sprintf(`SELECT item FROM %q WHERE json_extract(item, '$.%s.S') = ?`, table, attr)
	}

	rows, err := s.conn.QueryContext(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var items []store.Item
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		item, err := store.UnmarshalItem([]byte(data))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Update patches only the supplied attributes of an existing item.
func (s *Store) Update(ctx context.Context, table string, key store.Key, updates store.Item) error {
	item, err := s.Get(ctx, table, key)
	if err != nil {
		return err
	}
	for attr, value := range updates {
		item[attr] = value
	}
	return s.Put(ctx, table, item)
}

// Delete removes one item by key.
func (s *Store) Delete(ctx context.Context, table string, key store.Key) error {
	if _, err := s.spec(table); err != nil {
		return err
	}
	query := fmt.Sprintf(`DELETE FROM %q WHERE pk = ? AND sk = ?`, table)
	res, err := s.conn.ExecContext(ctx, query, key.Partition, key.Sort)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s/%s", store.ErrKeyNotFound, key.Partition, key.Sort)
	}
	return nil
}
