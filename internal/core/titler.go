// ABOUTME: Title proposal orchestration over the conversation repository
// ABOUTME: Loads the active thread and delegates to a TitleGenerator
package core

import (
	"context"

	"github.com/harper/chatstore/internal/models"
	"github.com/harper/chatstore/internal/repository"
)

// TitleGenerator produces a title for an ordered root-to-leaf thread. The
// concrete implementation lives behind this boundary; its output and its
// failures pass through the Titler unmodified.
type TitleGenerator interface {
	GenerateTitle(ctx context.Context, thread []models.Message) (string, error)
}

// Titler proposes conversation titles.
type Titler struct {
	conversations *repository.ConversationStore
	generator     TitleGenerator
}

// NewTitler wires the orchestrator.
func NewTitler(conversations *repository.ConversationStore, generator TitleGenerator) *Titler {
	return &Titler{conversations: conversations, generator: generator}
}

// ProposeTitle loads the conversation, resolves its active thread and asks
// the generator for a title. Fails with repository.ErrNotFound if the
// conversation does not exist.
func (t *Titler) ProposeTitle(ctx context.Context, userID, conversationID string) (string, error) {
	conv, err := t.conversations.Get(ctx, userID, conversationID)
	if err != nil {
		return "", err
	}
	thread, err := repository.ResolveActiveThread(conv)
	if err != nil {
		return "", err
	}
	return t.generator.GenerateTitle(ctx, thread)
}
