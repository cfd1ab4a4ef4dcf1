// ABOUTME: Key-value store abstraction consumed by the repositories
// ABOUTME: Items are flat attribute maps addressed by partition/sort keys
package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// Item is a flat attribute map. Values are strings or Numbers; anything else
// is rejected by the backends at write time.
type Item map[string]any

// Number is a decimal-string numeric attribute. Timestamps are stored this
// way so they round-trip without binary floating drift.
type Number string

// NumberFromFloat encodes f as its shortest exact decimal representation.
func NumberFromFloat(f float64) Number {
	return Number(strconv.FormatFloat(f, 'f', -1, 64))
}

// Float converts the decimal string back to a float64.
func (n Number) Float() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// Key addresses one item in a table. Sort is empty for tables without a
// sort key.
type Key struct {
	Partition string
	Sort      string
}

// TableSpec describes the key schema of one logical table.
type TableSpec struct {
	Name         string
	PartitionKey string
	SortKey      string
	// Indexes maps a secondary index name to the single attribute it is
	// keyed on. Index queries are exact-match on that attribute.
	Indexes map[string]string
}

var (
	// ErrKeyNotFound is returned by Get, Update and Delete for absent keys.
	ErrKeyNotFound = errors.New("key not found")
	// ErrUnavailable marks a transient infrastructure failure. It is the
	// only error class the retry decorator acts on.
	ErrUnavailable = errors.New("store unavailable")
	// ErrUnknownTable is returned for tables not declared at construction.
	ErrUnknownTable = errors.New("unknown table")
	// ErrUnknownIndex is returned for index names not in the table spec.
	ErrUnknownIndex = errors.New("unknown index")
)

// Store is the abstract multi-table key-value store. Every implementation
// treats a Put as an unconditional whole-item overwrite; Update patches only
// the supplied attributes and fails with ErrKeyNotFound for absent keys.
type Store interface {
	Put(ctx context.Context, table string, item Item) error
	Get(ctx context.Context, table string, key Key) (Item, error)
	// Query returns all items whose index attribute equals value. With
	// index == "", it returns the whole partition identified by value.
	Query(ctx context.Context, table, index, value string) ([]Item, error)
	Update(ctx context.Context, table string, key Key, updates Item) error
	Delete(ctx context.Context, table string, key Key) error
}

// KeyOf extracts the item's key according to the table spec.
func KeyOf(spec TableSpec, item Item) (Key, error) {
	pk, ok := item[spec.PartitionKey].(string)
	if !ok || pk == "" {
		return Key{}, fmt.Errorf("item missing partition key %s", spec.PartitionKey)
	}
	key := Key{Partition: pk}
	if spec.SortKey != "" {
		sk, ok := item[spec.SortKey].(string)
		if !ok || sk == "" {
			return Key{}, fmt.Errorf("item missing sort key %s", spec.SortKey)
		}
		key.Sort = sk
	}
	return key, nil
}
