// ABOUTME: Tests for the bounded-retry store decorator
// ABOUTME: Transient failures retry; terminal errors pass straight through
package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

// flakyStore fails the first failures calls to every operation with failErr.
type flakyStore struct {
	inner    Store
	failErr  error
	failures int
	calls    int
}

func (s *flakyStore) attempt() error {
	s.calls++
	if s.calls <= s.failures {
		return s.failErr
	}
	return nil
}

func (s *flakyStore) Put(ctx context.Context, table string, item Item) error {
	if err := s.attempt(); err != nil {
		return err
	}
	return s.inner.Put(ctx, table, item)
}

func (s *flakyStore) Get(ctx context.Context, table string, key Key) (Item, error) {
	if err := s.attempt(); err != nil {
		return nil, err
	}
	return s.inner.Get(ctx, table, key)
}

func (s *flakyStore) Query(ctx context.Context, table, index, value string) ([]Item, error) {
	if err := s.attempt(); err != nil {
		return nil, err
	}
	return s.inner.Query(ctx, table, index, value)
}

func (s *flakyStore) Update(ctx context.Context, table string, key Key, updates Item) error {
	if err := s.attempt(); err != nil {
		return err
	}
	return s.inner.Update(ctx, table, key, updates)
}

func (s *flakyStore) Delete(ctx context.Context, table string, key Key) error {
	if err := s.attempt(); err != nil {
		return err
	}
	return s.inner.Delete(ctx, table, key)
}

func TestRetryStore_RecoversFromTransientFailure(t *testing.T) {
	flaky := &flakyStore{
		inner:    NewMemoryStore(testSpec()),
		failErr:  ErrUnavailable,
		failures: 2,
	}
	s := NewRetryStore(flaky, 3, time.Millisecond)

	err := s.Put(context.Background(), "Things", Item{"Owner": "u1", "Id": "u1_a"})
	if err != nil {
		t.Fatalf("Put() error = %v, want success after retries", err)
	}
	if flaky.calls != 3 {
		t.Errorf("calls = %d, want 3 (two failures plus the success)", flaky.calls)
	}

	got, err := s.Get(context.Background(), "Things", Key{Partition: "u1", Sort: "u1_a"})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got["Owner"] != "u1" {
		t.Errorf("Owner = %v, want u1", got["Owner"])
	}
}

func TestRetryStore_ExhaustsRetries(t *testing.T) {
	flaky := &flakyStore{
		inner:    NewMemoryStore(testSpec()),
		failErr:  ErrUnavailable,
		failures: 10,
	}
	s := NewRetryStore(flaky, 2, time.Millisecond)

	err := s.Put(context.Background(), "Things", Item{"Owner": "u1", "Id": "u1_a"})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Put() error = %v, want ErrUnavailable", err)
	}
	if flaky.calls != 3 {
		t.Errorf("calls = %d, want 3 (initial attempt plus two retries)", flaky.calls)
	}
}

func TestRetryStore_DoesNotRetryTerminalErrors(t *testing.T) {
	flaky := &flakyStore{
		inner:    NewMemoryStore(testSpec()),
		failErr:  ErrKeyNotFound,
		failures: 10,
	}
	s := NewRetryStore(flaky, 3, time.Millisecond)

	_, err := s.Get(context.Background(), "Things", Key{Partition: "u1", Sort: "u1_a"})
	if !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("Get() error = %v, want ErrKeyNotFound", err)
	}
	if flaky.calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on terminal errors)", flaky.calls)
	}
}

func TestRetryStore_HonorsContextCancellation(t *testing.T) {
	flaky := &flakyStore{
		inner:    NewMemoryStore(testSpec()),
		failErr:  ErrUnavailable,
		failures: 100,
	}
	s := NewRetryStore(flaky, 50, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := s.Put(ctx, "Things", Item{"Owner": "u1", "Id": "u1_a"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Put() error = %v, want context.DeadlineExceeded", err)
	}
}
