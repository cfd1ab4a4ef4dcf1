// ABOUTME: Conversation tree repository over the abstract store
// ABOUTME: Maintains tree invariants and resolves the active thread
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/harper/chatstore/internal/models"
	"github.com/harper/chatstore/internal/store"
)

// ConversationStore persists conversation trees. Every mutation of the tree
// writes the whole conversation record back in one Put, so no reader can
// observe a children list and last-message pointer from different states.
//
// There is no optimistic locking: concurrent writers to the same
// conversation race at the store and the last whole-object write wins. The
// system assumes a single writer per conversation.
type ConversationStore struct {
	store store.Store
	table string
}

// NewConversationStore creates a repository over the given table.
func NewConversationStore(st store.Store, table string) *ConversationStore {
	return &ConversationStore{store: st, table: table}
}

func (s *ConversationStore) key(userID, conversationID string) store.Key {
	return store.Key{Partition: userID, Sort: ComposeID(userID, conversationID)}
}

// Get loads one conversation owned by the user.
func (s *ConversationStore) Get(ctx context.Context, userID, conversationID string) (*models.Conversation, error) {
	item, err := s.store.Get(ctx, s.table, s.key(userID, conversationID))
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, fmt.Errorf("conversation %s: %w", conversationID, ErrNotFound)
		}
		return nil, err
	}
	return itemToConversation(item)
}

// ListMeta enumerates the user's conversations. Ordering is unspecified;
// callers sort if they need to.
func (s *ConversationStore) ListMeta(ctx context.Context, userID string) ([]models.ConversationMeta, error) {
	items, err := s.store.Query(ctx, s.table, "", userID)
	if err != nil {
		return nil, err
	}
	metas := make([]models.ConversationMeta, 0, len(items))
	for _, item := range items {
		meta, err := itemToConversationMeta(item)
		if err != nil {
			return nil, err
		}
		metas = append(metas, meta)
	}
	return metas, nil
}

// AppendMessage adds a message under parentID and makes it the active leaf.
// An empty parentID posts the root message; if no conversation exists yet it
// is created in the same write, so a conversation is never observable
// without its root. Returns the new message id.
func (s *ConversationStore) AppendMessage(ctx context.Context, userID, conversationID string, msg models.Message, parentID string) (string, error) {
	if !validLogicalID(conversationID) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, conversationID)
	}

	conv, err := s.Get(ctx, userID, conversationID)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		if parentID != "" {
			return "", err
		}
		conv = models.NewConversation(conversationID)
	default:
		return "", err
	}

	var parent *models.Message
	if parentID != "" {
		var ok bool
		parent, ok = conv.MessageMap[parentID]
		if !ok {
			return "", fmt.Errorf("parent message %s: %w", parentID, ErrNotFound)
		}
	} else if len(conv.MessageMap) > 0 {
		return "", fmt.Errorf("conversation %s already has a root message", conversationID)
	}

	messageID := models.NewMessageID()
	msg.Parent = parentID
	msg.Children = []string{}
	conv.MessageMap[messageID] = &msg
	if parent != nil {
		parent.Children = append(parent.Children, messageID)
	}
	conv.LastMessageID = messageID

	if err := s.put(ctx, userID, conv); err != nil {
		return "", err
	}
	return messageID, nil
}

// SetActiveLeaf repoints the active thread at messageID. Sibling branches
// stay in the tree; this is how a caller returns to an earlier point and
// continues from there.
func (s *ConversationStore) SetActiveLeaf(ctx context.Context, userID, conversationID, messageID string) error {
	conv, err := s.Get(ctx, userID, conversationID)
	if err != nil {
		return err
	}
	if _, ok := conv.MessageMap[messageID]; !ok {
		return fmt.Errorf("message %s: %w", messageID, ErrNotFound)
	}
	conv.LastMessageID = messageID
	return s.put(ctx, userID, conv)
}

// RenameTitle updates only the title attribute.
func (s *ConversationStore) RenameTitle(ctx context.Context, userID, conversationID, newTitle string) error {
	err := s.store.Update(ctx, s.table, s.key(userID, conversationID),
		store.Item{attrTitle: newTitle})
	if errors.Is(err, store.ErrKeyNotFound) {
		return fmt.Errorf("conversation %s: %w", conversationID, ErrNotFound)
	}
	return err
}

// Delete removes one conversation.
func (s *ConversationStore) Delete(ctx context.Context, userID, conversationID string) error {
	err := s.store.Delete(ctx, s.table, s.key(userID, conversationID))
	if errors.Is(err, store.ErrKeyNotFound) {
		return fmt.Errorf("conversation %s: %w", conversationID, ErrNotFound)
	}
	return err
}

// DeleteAll removes every conversation the user owns. It keeps going past
// individual failures and reports them together in a BulkDeleteError; a
// conversation that vanished between listing and deleting counts as done.
func (s *ConversationStore) DeleteAll(ctx context.Context, userID string) error {
	metas, err := s.ListMeta(ctx, userID)
	if err != nil {
		return err
	}

	var failed []string
	var errs []error
	for _, meta := range metas {
		err := s.Delete(ctx, userID, meta.ID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			failed = append(failed, meta.ID)
			errs = append(errs, fmt.Errorf("conversation %s: %w", meta.ID, err))
		}
	}
	if len(failed) > 0 {
		return &BulkDeleteError{FailedIDs: failed, Errs: errs}
	}
	return nil
}

func (s *ConversationStore) put(ctx context.Context, userID string, conv *models.Conversation) error {
	item, err := conversationToItem(userID, conv)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, s.table, item)
}

// ResolveActiveThread walks parent pointers from the active leaf back to
// the root and returns the messages in root-to-leaf order. The walk is
// bounded by the size of the message map, so a cycle or dangling parent
// reference surfaces as ErrCorruptTree instead of looping.
func ResolveActiveThread(conv *models.Conversation) ([]models.Message, error) {
	if len(conv.MessageMap) == 0 {
		return nil, nil
	}
	current, ok := conv.MessageMap[conv.LastMessageID]
	if !ok {
		return nil, fmt.Errorf("last message %s not in message map: %w",
			conv.LastMessageID, ErrCorruptTree)
	}

	thread := []models.Message{}
	for steps := 0; ; steps++ {
		if steps >= len(conv.MessageMap) {
			return nil, fmt.Errorf("cycle detected walking parents of %s: %w",
				conv.LastMessageID, ErrCorruptTree)
		}
		thread = append(thread, *current)
		if current.Parent == "" {
			break
		}
		next, ok := conv.MessageMap[current.Parent]
		if !ok {
			return nil, fmt.Errorf("parent %s does not resolve: %w",
				current.Parent, ErrCorruptTree)
		}
		current = next
	}

	for i, j := 0, len(thread)-1; i < j; i, j = i+1, j-1 {
		thread[i], thread[j] = thread[j], thread[i]
	}
	return thread, nil
}
