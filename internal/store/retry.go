// ABOUTME: Bounded-retry decorator for Store implementations
// ABOUTME: Retries only ErrUnavailable; repositories above never retry
package store

import (
	"context"
	"errors"
	"time"

	"github.com/harper/chatstore/internal/util"
)

// RetryStore wraps a Store and retries transient failures a bounded number
// of times with exponential backoff. NotFound and every other terminal error
// pass through untouched, so the repositories see each call as already
// resolved to success or a final error.
type RetryStore struct {
	inner      Store
	maxRetries int
	retryDelay time.Duration
}

// NewRetryStore wraps inner with up to maxRetries retries per operation.
func NewRetryStore(inner Store, maxRetries int, retryDelay time.Duration) *RetryStore {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &RetryStore{inner: inner, maxRetries: maxRetries, retryDelay: retryDelay}
}

func (s *RetryStore) do(ctx context.Context, op func() error) error {
	var err error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(util.CalculateBackoff(s.retryDelay, attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		err = op()
		if err == nil || !errors.Is(err, ErrUnavailable) {
			return err
		}
	}
	return err
}

func (s *RetryStore) Put(ctx context.Context, table string, item Item) error {
	return s.do(ctx, func() error { return s.inner.Put(ctx, table, item) })
}

func (s *RetryStore) Get(ctx context.Context, table string, key Key) (Item, error) {
	var item Item
	err := s.do(ctx, func() error {
		var opErr error
		item, opErr = s.inner.Get(ctx, table, key)
		return opErr
	})
	return item, err
}

func (s *RetryStore) Query(ctx context.Context, table, index, value string) ([]Item, error) {
	var items []Item
	err := s.do(ctx, func() error {
		var opErr error
		items, opErr = s.inner.Query(ctx, table, index, value)
		return opErr
	})
	return items, err
}

func (s *RetryStore) Update(ctx context.Context, table string, key Key, updates Item) error {
	return s.do(ctx, func() error { return s.inner.Update(ctx, table, key, updates) })
}

func (s *RetryStore) Delete(ctx context.Context, table string, key Key) error {
	return s.do(ctx, func() error { return s.inner.Delete(ctx, table, key) })
}
