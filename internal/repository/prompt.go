// ABOUTME: Prompt repository over the abstract store
// ABOUTME: Lookup by prompt id goes through the secondary index with a tenant re-check
package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/harper/chatstore/internal/models"
	"github.com/harper/chatstore/internal/store"
)

// PromptStore persists per-user prompt snippets.
type PromptStore struct {
	store store.Store
	table string
}

// NewPromptStore creates a repository over the given table.
func NewPromptStore(st store.Store, table string) *PromptStore {
	return &PromptStore{store: st, table: table}
}

func (s *PromptStore) key(userID, promptID string) store.Key {
	return store.Key{Partition: userID, Sort: ComposeID(userID, promptID)}
}

// Store upserts a prompt, overwriting any existing one with the same id.
func (s *PromptStore) Store(ctx context.Context, userID string, prompt *models.Prompt) error {
	if !validLogicalID(prompt.PromptID) {
		return fmt.Errorf("%w: %q", ErrInvalidID, prompt.PromptID)
	}
	return s.store.Put(ctx, s.table, promptToItem(userID, prompt))
}

// ListByUser returns the user's prompts, most recently used first.
func (s *PromptStore) ListByUser(ctx context.Context, userID string) ([]*models.Prompt, error) {
	items, err := s.store.Query(ctx, s.table, "", userID)
	if err != nil {
		return nil, err
	}
	prompts := make([]*models.Prompt, 0, len(items))
	for _, item := range items {
		prompt, err := itemToPrompt(item)
		if err != nil {
			return nil, err
		}
		prompts = append(prompts, prompt)
	}
	sort.Slice(prompts, func(i, j int) bool {
		return prompts[i].LastUsedAt > prompts[j].LastUsedAt
	})
	return prompts, nil
}

// FindByID resolves a prompt through the composed-id index. Hits are
// re-checked against the caller's stored UserId, so an id collision across
// tenants can never surface another tenant's prompt.
func (s *PromptStore) FindByID(ctx context.Context, userID, promptID string) (*models.Prompt, error) {
	if !validLogicalID(promptID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, promptID)
	}
	item, err := s.findItem(ctx, userID, promptID)
	if err != nil {
		return nil, err
	}
	return itemToPrompt(item)
}

// Touch updates only last_used_at. Fails with ErrNotFound if the prompt was
// never stored.
func (s *PromptStore) Touch(ctx context.Context, userID, promptID string, lastUsedAt float64) error {
	if !validLogicalID(promptID) {
		return fmt.Errorf("%w: %q", ErrInvalidID, promptID)
	}
	err := s.store.Update(ctx, s.table, s.key(userID, promptID),
		store.Item{attrLastUsedAt: store.NumberFromFloat(lastUsedAt)})
	if errors.Is(err, store.ErrKeyNotFound) {
		return fmt.Errorf("prompt %s: %w", promptID, ErrNotFound)
	}
	return err
}

// Delete removes a prompt. Lookup and delete are two store calls; a record
// that disappears in between still reports ErrNotFound rather than an
// unrelated failure.
func (s *PromptStore) Delete(ctx context.Context, userID, promptID string) error {
	if !validLogicalID(promptID) {
		return fmt.Errorf("%w: %q", ErrInvalidID, promptID)
	}
	if _, err := s.findItem(ctx, userID, promptID); err != nil {
		return err
	}
	err := s.store.Delete(ctx, s.table, s.key(userID, promptID))
	if errors.Is(err, store.ErrKeyNotFound) {
		return fmt.Errorf("prompt %s: %w", promptID, ErrNotFound)
	}
	return err
}

func (s *PromptStore) findItem(ctx context.Context, userID, promptID string) (store.Item, error) {
	items, err := s.store.Query(ctx, s.table, promptIDIndex, ComposeID(userID, promptID))
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		// The stored record carries the exact owner; a prefix test on the
		// composed id would accept prefix-colliding tenant pairs.
		owner, ok := item[attrUserID].(string)
		if ok && owner == userID {
			return item, nil
		}
	}
	return nil, fmt.Errorf("prompt %s: %w", promptID, ErrNotFound)
}
