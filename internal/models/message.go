// ABOUTME: Message and Content types for the conversation tree
// ABOUTME: Messages reference each other by id only, never by embedding
package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Roles understood by the chat transcript renderer.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Content is the typed body of a message.
type Content struct {
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

// Message is one node of a conversation tree. Children and Parent hold
// message ids; Parent == "" marks a root message. Ids are generated UUIDs,
// so the empty string never collides with a real id.
type Message struct {
	Role       string   `json:"role"`
	Content    Content  `json:"content"`
	Model      string   `json:"model"`
	Children   []string `json:"children"`
	Parent     string   `json:"parent,omitempty"`
	CreateTime float64  `json:"create_time"`
}

// NewMessage creates a message with validation. Parent and children are
// assigned by the conversation store, not here.
func NewMessage(role, body, model string) (*Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, errors.New("message body cannot be empty")
	}
	switch role {
	case RoleSystem, RoleUser, RoleAssistant:
	default:
		return nil, errors.New("unsupported role: " + role)
	}
	return &Message{
		Role:       role,
		Content:    Content{ContentType: "text", Body: body},
		Model:      model,
		Children:   []string{},
		CreateTime: Timestamp(time.Now()),
	}, nil
}

// NewMessageID generates a unique message identifier.
func NewMessageID() string {
	return uuid.New().String()
}

// Timestamp converts a time to the float seconds representation used
// throughout the stored records.
func Timestamp(t time.Time) float64 {
	return float64(t.UnixMilli()) / 1000.0
}
