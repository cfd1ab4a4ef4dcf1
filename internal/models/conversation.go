// ABOUTME: Conversation aggregate holding the flat message map and thread tip
// ABOUTME: The whole aggregate is always persisted as one record
package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a tree of messages stored flat: MessageMap is keyed by
// message id and edges are id references. LastMessageID points at the tip of
// the currently active thread; children ordering only records branch history.
type Conversation struct {
	ID            string              `json:"id"`
	CreateTime    float64             `json:"create_time"`
	Title         string              `json:"title"`
	MessageMap    map[string]*Message `json:"message_map"`
	LastMessageID string              `json:"last_message_id"`
}

// ConversationMeta is the listing projection of a conversation.
type ConversationMeta struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	CreateTime float64 `json:"create_time"`
}

// DefaultTitle is assigned when a conversation is created on first post.
const DefaultTitle = "New conversation"

// NewConversation creates an empty conversation. The caller may pass id == ""
// to have one generated.
func NewConversation(id string) *Conversation {
	if id == "" {
		id = uuid.New().String()
	}
	return &Conversation{
		ID:         id,
		CreateTime: Timestamp(time.Now()),
		Title:      DefaultTitle,
		MessageMap: map[string]*Message{},
	}
}

// Meta returns the listing projection.
func (c *Conversation) Meta() ConversationMeta {
	return ConversationMeta{ID: c.ID, Title: c.Title, CreateTime: c.CreateTime}
}
