// ABOUTME: Store construction from configuration
// ABOUTME: Picks the backend and wraps it with the bounded-retry decorator
package config

import (
	"fmt"

	"github.com/harper/chatstore/internal/repository"
	"github.com/harper/chatstore/internal/store"
	"github.com/harper/chatstore/internal/store/charmkv"
	"github.com/harper/chatstore/internal/store/sqlite"
)

// OpenStore opens the configured backend with both table schemas and wraps
// it in the retry decorator. The returned closer is a no-op for the memory
// backend.
func (c *Config) OpenStore() (store.Store, func() error, error) {
	specs := []store.TableSpec{
		repository.ConversationTableSpec(c.ConversationTable),
		repository.PromptTableSpec(c.PromptTable),
	}

	var inner store.Store
	closer := func() error { return nil }

	switch c.Backend {
	case BackendMemory:
		inner = store.NewMemoryStore(specs...)
	case BackendSQLite:
		path := c.SQLitePath
		if path == "" {
			path = sqlite.DefaultDBPath()
		}
		db, err := sqlite.Open(path, specs...)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		inner = db
		closer = db.Close
	case BackendCharm:
		db, err := charmkv.Open(&charmkv.Config{
			Host:     c.CharmHost,
			DBName:   c.CharmDBName,
			AutoSync: c.AutoSync,
		}, specs...)
		if err != nil {
			return nil, nil, fmt.Errorf("opening charm store: %w", err)
		}
		inner = db
		closer = db.Close
	default:
		return nil, nil, fmt.Errorf("invalid backend %q", c.Backend)
	}

	return store.NewRetryStore(inner, c.StoreMaxRetries, c.StoreRetryDelay), closer, nil
}
