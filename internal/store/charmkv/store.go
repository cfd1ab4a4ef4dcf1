// ABOUTME: Charm Cloud KV-backed Store implementation
// ABOUTME: Keys compose as table/pk/sk, partition queries are prefix scans
package charmkv

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/charm/kv"
	"github.com/harper/chatstore/internal/store"
)

// Config holds charm client configuration
type Config struct {
	Host     string
	DBName   string
	AutoSync bool
}

// DefaultConfig returns default configuration for the charm backend
func DefaultConfig() *Config {
	host := os.Getenv("CHARM_HOST")
	if host == "" {
		host = "cloud.charm.sh"
	}
	return &Config{
		Host:     host,
		DBName:   "chatstore",
		AutoSync: true,
	}
}

// Store implements store.Store on charm kv. Each item lives under the key
// table/pk/sk; partition queries list keys by prefix, index queries scan the
// table keyspace and filter on the attribute.
type Store struct {
	kv     *kv.KV
	config *Config
	specs  map[string]store.TableSpec
	mu     sync.Mutex
}

// Open opens the charm KV database and registers the table schemas.
func Open(cfg *Config, specs ...store.TableSpec) (*Store, error) {
	// Set CHARM_HOST before opening KV
	os.Setenv("CHARM_HOST", cfg.Host)

	db, err := kv.OpenWithDefaults(cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}

	s := &Store{
		kv:     db,
		config: cfg,
		specs:  make(map[string]store.TableSpec, len(specs)),
	}
	for _, spec := range specs {
		s.specs[spec.Name] = spec
	}

	// Pull remote data on startup
	if cfg.AutoSync {
		_ = db.Sync()
	}
	return s, nil
}

// Close closes the KV database
func (s *Store) Close() error {
	if s.kv != nil {
		err := s.kv.Close()
		s.kv = nil
		return err
	}
	return nil
}

// syncIfEnabled syncs to cloud after writes
func (s *Store) syncIfEnabled() {
	if s.config.AutoSync {
		_ = s.kv.Sync()
	}
}

func (s *Store) spec(table string) (store.TableSpec, error) {
	spec, ok := s.specs[table]
	if !ok {
		return store.TableSpec{}, fmt.Errorf("%w: %s", store.ErrUnknownTable, table)
	}
	return spec, nil
}

func physicalKey(table string, key store.Key) string {
	return table + "/" + key.Partition + "/" + key.Sort
}

// Put stores the item, overwriting any existing item with the same key.
func (s *Store) Put(_ context.Context, table string, item store.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

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
	if err := s.kv.Set([]byte(physicalKey(table, key)), data); err != nil {
		return fmt.Errorf("set %s: %w: %v", table, store.ErrUnavailable, err)
	}
	s.syncIfEnabled()
	return nil
}

// Get retrieves one item by key.
func (s *Store) Get(_ context.Context, table string, key store.Key) (store.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.spec(table); err != nil {
		return nil, err
	}
	return s.get(table, key)
}

func (s *Store) get(table string, key store.Key) (store.Item, error) {
	data, err := s.kv.Get([]byte(physicalKey(table, key)))
	if err != nil || len(data) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", store.ErrKeyNotFound, key.Partition, key.Sort)
	}
	return store.UnmarshalItem(data)
}

// Query returns all items matching the index attribute, or the whole
// partition when index is empty.
func (s *Store) Query(_ context.Context, table, index, value string) ([]store.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	spec, err := s.spec(table)
	if err != nil {
		return nil, err
	}

	prefix := table + "/"
	attr := spec.PartitionKey
	if index == "" {
		prefix = table + "/" + value + "/"
	} else {
		attr, err = indexAttribute(spec, index)
		if err != nil {
			return nil, err
		}
	}

	keys, err := s.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("list keys: %w: %v", store.ErrUnavailable, err)
	}

	var items []store.Item
	for _, key := range keys {
		keyStr := string(key)
		if !strings.HasPrefix(keyStr, prefix) {
			continue
		}
		data, err := s.kv.Get(key)
		if err != nil || len(data) == 0 {
			continue
		}
		item, err := store.UnmarshalItem(data)
		if err != nil {
			return nil, err
		}
		if v, ok := item[attr].(string); ok && v == value {
			items = append(items, item)
		}
	}
	return items, nil
}

// Update patches only the supplied attributes via read-modify-write. The
// backend has no conditional writes; last writer wins, as everywhere else
// in this store.
func (s *Store) Update(_ context.Context, table string, key store.Key, updates store.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.spec(table); err != nil {
		return err
	}
	item, err := s.get(table, key)
	if err != nil {
		return err
	}
	for attr, value := range updates {
		item[attr] = value
	}
	data, err := store.MarshalItem(item)
	if err != nil {
		return err
	}
	if err := s.kv.Set([]byte(physicalKey(table, key)), data); err != nil {
		return fmt.Errorf("set %s: %w: %v", table, store.ErrUnavailable, err)
	}
	s.syncIfEnabled()
	return nil
}

// Delete removes one item by key.
func (s *Store) Delete(_ context.Context, table string, key store.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.spec(table); err != nil {
		return err
	}
	// charm kv deletes are idempotent; check existence first so absent keys
	// report ErrKeyNotFound like every other backend.
	if _, err := s.get(table, key); err != nil {
		return err
	}
	if err := s.kv.Delete([]byte(physicalKey(table, key))); err != nil {
		return fmt.Errorf("delete %s: %w: %v", table, store.ErrUnavailable, err)
	}
	s.syncIfEnabled()
	return nil
}

func indexAttribute(spec store.TableSpec, index string) (string, error) {
	attr, ok := spec.Indexes[index]
	if !ok {
		return "", fmt.Errorf("%w: %s on table %s", store.ErrUnknownIndex, index, spec.Name)
	}
	return attr, nil
}
