// ABOUTME: In-process Store implementation for tests and local use
// ABOUTME: Mutex-guarded maps, same visible semantics as the real backends
package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps all items in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	specs  map[string]TableSpec
	tables map[string]map[Key]Item
}

// NewMemoryStore creates a store with the given table schemas.
func NewMemoryStore(specs ...TableSpec) *MemoryStore {
	s := &MemoryStore{
		specs:  make(map[string]TableSpec, len(specs)),
		tables: make(map[string]map[Key]Item, len(specs)),
	}
	for _, spec := range specs {
		s.specs[spec.Name] = spec
		s.tables[spec.Name] = map[Key]Item{}
	}
	return s
}

func (s *MemoryStore) spec(table string) (TableSpec, error) {
	spec, ok := s.specs[table]
	if !ok {
		return TableSpec{}, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	return spec, nil
}

// Put stores the item, overwriting any existing item with the same key.
func (s *MemoryStore) Put(_ context.Context, table string, item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	spec, err := s.spec(table)
	if err != nil {
		return err
	}
	key, err := KeyOf(spec, item)
	if err != nil {
		return err
	}
	s.tables[table][key] = cloneItem(item)
	return nil
}

// Get retrieves one item by key.
func (s *MemoryStore) Get(_ context.Context, table string, key Key) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.spec(table); err != nil {
		return nil, err
	}
	item, ok := s.tables[table][key]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrKeyNotFound, key.Partition, key.Sort)
	}
	return cloneItem(item), nil
}

// Query returns all items matching the index attribute, or the whole
// partition when index is empty. Result order is unspecified.
func (s *MemoryStore) Query(_ context.Context, table, index, value string) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	spec, err := s.spec(table)
	if err != nil {
		return nil, err
	}

	attr := spec.PartitionKey
	if index != "" {
		attr, err = indexAttribute(spec, index)
		if err != nil {
			return nil, err
		}
	}

	var out []Item
	for _, item := range s.tables[table] {
		if v, ok := item[attr].(string); ok && v == value {
			out = append(out, cloneItem(item))
		}
	}
	return out, nil
}

// Update patches only the supplied attributes of an existing item.
func (s *MemoryStore) Update(_ context.Context, table string, key Key, updates Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.spec(table); err != nil {
		return err
	}
	item, ok := s.tables[table][key]
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrKeyNotFound, key.Partition, key.Sort)
	}
	for k, v := range updates {
		item[k] = v
	}
	return nil
}

// Delete removes one item by key.
func (s *MemoryStore) Delete(_ context.Context, table string, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.spec(table); err != nil {
		return err
	}
	if _, ok := s.tables[table][key]; !ok {
		return fmt.Errorf("%w: %s/%s", ErrKeyNotFound, key.Partition, key.Sort)
	}
	delete(s.tables[table], key)
	return nil
}

func indexAttribute(spec TableSpec, index string) (string, error) {
	attr, ok := spec.Indexes[index]
	if !ok {
		return "", fmt.Errorf("%w: %s on table %s", ErrUnknownIndex, index, spec.Name)
	}
	return attr, nil
}

func cloneItem(item Item) Item {
	out := make(Item, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}
