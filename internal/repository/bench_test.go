// ABOUTME: Benchmarks for the hot repository paths
// ABOUTME: Append and thread resolution against the in-memory store
package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/harper/chatstore/internal/models"
)

func buildChain(b *testing.B, conversations *ConversationStore, depth int) *models.Conversation {
	b.Helper()
	ctx := context.Background()
	parentID := ""
	for i := 0; i < depth; i++ {
		msg, err := models.NewMessage(models.RoleUser, fmt.Sprintf("message %d", i), "m")
		if err != nil {
			b.Fatalf("NewMessage() error = %v", err)
		}
		parentID, err = conversations.AppendMessage(ctx, "u1", "bench", *msg, parentID)
		if err != nil {
			b.Fatalf("AppendMessage() error = %v", err)
		}
	}
	conv, err := conversations.Get(ctx, "u1", "bench")
	if err != nil {
		b.Fatalf("Get() error = %v", err)
	}
	return conv
}

func BenchmarkAppendMessage(b *testing.B) {
	conversations := NewConversationStore(newTestStore(), convTable)
	ctx := context.Background()

	msg, err := models.NewMessage(models.RoleUser, "root", "m")
	if err != nil {
		b.Fatalf("NewMessage() error = %v", err)
	}
	parentID, err := conversations.AppendMessage(ctx, "u1", "bench", *msg, "")
	if err != nil {
		b.Fatalf("AppendMessage() error = %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reply, err := models.NewMessage(models.RoleAssistant, "reply", "m")
		if err != nil {
			b.Fatalf("NewMessage() error = %v", err)
		}
		parentID, err = conversations.AppendMessage(ctx, "u1", "bench", *reply, parentID)
		if err != nil {
			b.Fatalf("AppendMessage() error = %v", err)
		}
	}
}

func BenchmarkResolveActiveThread(b *testing.B) {
	for _, depth := range []int{10, 100} {
		b.Run(fmt.Sprintf("depth%d", depth), func(b *testing.B) {
			conversations := NewConversationStore(newTestStore(), convTable)
			conv := buildChain(b, conversations, depth)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := ResolveActiveThread(conv); err != nil {
					b.Fatalf("ResolveActiveThread() error = %v", err)
				}
			}
		})
	}
}
