// ABOUTME: Tests for the entity-to-item codec
// ABOUTME: Round trips and the malformed-record decode errors
package repository

import (
	"errors"
	"testing"

	"github.com/harper/chatstore/internal/models"
	"github.com/harper/chatstore/internal/store"
)

func TestConversationItemRoundTrip(t *testing.T) {
	conv := models.NewConversation("c1")
	conv.Title = "Round trip"
	conv.CreateTime = 1627984879.9
	conv.MessageMap["m1"] = &models.Message{
		Role:       models.RoleUser,
		Content:    models.Content{ContentType: "text", Body: "hello"},
		Model:      "claude-instant-v1",
		Children:   []string{},
		CreateTime: 1627984879.9,
	}
	conv.LastMessageID = "m1"

	item, err := conversationToItem("u1", conv)
	if err != nil {
		t.Fatalf("conversationToItem() error = %v", err)
	}
	if item[attrConversationID] != "u1_c1" {
		t.Errorf("composed id = %v, want u1_c1", item[attrConversationID])
	}

	got, err := itemToConversation(item)
	if err != nil {
		t.Fatalf("itemToConversation() error = %v", err)
	}
	if got.ID != "c1" {
		t.Errorf("ID = %q, want c1", got.ID)
	}
	if got.Title != conv.Title {
		t.Errorf("Title = %q, want %q", got.Title, conv.Title)
	}
	if got.CreateTime != 1627984879.9 {
		t.Errorf("CreateTime = %v, want exact 1627984879.9", got.CreateTime)
	}
	if got.LastMessageID != "m1" {
		t.Errorf("LastMessageID = %q, want m1", got.LastMessageID)
	}
	msg, ok := got.MessageMap["m1"]
	if !ok {
		t.Fatal("m1 missing from decoded message map")
	}
	if msg.Content.Body != "hello" || msg.Role != models.RoleUser {
		t.Errorf("decoded message = %+v", msg)
	}
}

func TestItemToConversation_DecodeErrors(t *testing.T) {
	valid := func() store.Item {
		return store.Item{
			attrUserID:         "u1",
			attrConversationID: "u1_c1",
			attrTitle:          "t",
			attrCreateTime:     store.NumberFromFloat(1.0),
			attrLastMessageID:  "m1",
			attrMessageMap:     `{}`,
		}
	}

	tests := []struct {
		name   string
		mutate func(store.Item)
		attr   string
	}{
		{"missing title", func(i store.Item) { delete(i, attrTitle) }, attrTitle},
		{"empty conversation id", func(i store.Item) { i[attrConversationID] = "" }, attrConversationID},
		{"create time wrong type", func(i store.Item) { i[attrCreateTime] = "soon" }, attrCreateTime},
		{"message map not json", func(i store.Item) { i[attrMessageMap] = "{" }, attrMessageMap},
		{"message map wrong type", func(i store.Item) { i[attrMessageMap] = store.NumberFromFloat(1) }, attrMessageMap},
		{"last message id wrong type", func(i store.Item) { i[attrLastMessageID] = store.NumberFromFloat(1) }, attrLastMessageID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := valid()
			tt.mutate(item)
			_, err := itemToConversation(item)
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("itemToConversation() error = %v, want *DecodeError", err)
			}
			if decodeErr.Attr != tt.attr {
				t.Errorf("DecodeError.Attr = %q, want %q", decodeErr.Attr, tt.attr)
			}
		})
	}
}

func TestItemToConversation_EmptyStringsDecode(t *testing.T) {
	// Empty title and last message id are present and correctly shaped; only
	// absent or wrong-type attributes are decode errors.
	item := store.Item{
		attrUserID:         "u1",
		attrConversationID: "u1_c1",
		attrTitle:          "",
		attrCreateTime:     store.NumberFromFloat(1.0),
		attrLastMessageID:  "",
		attrMessageMap:     `{}`,
	}
	conv, err := itemToConversation(item)
	if err != nil {
		t.Fatalf("itemToConversation() error = %v", err)
	}
	if conv.Title != "" || conv.LastMessageID != "" {
		t.Errorf("decoded = %+v, want empty title and last message id", conv)
	}

	meta, err := itemToConversationMeta(item)
	if err != nil {
		t.Fatalf("itemToConversationMeta() error = %v", err)
	}
	if meta.Title != "" {
		t.Errorf("meta Title = %q, want empty", meta.Title)
	}
}

func TestPromptItemRoundTrip(t *testing.T) {
	prompt := &models.Prompt{
		UserID:     "u1",
		PromptID:   "p1",
		LastUsedAt: 123456789.5,
		Body:       "snippet",
	}
	item := promptToItem("u1", prompt)
	if item[attrPromptID] != "u1_p1" {
		t.Errorf("composed id = %v, want u1_p1", item[attrPromptID])
	}

	got, err := itemToPrompt(item)
	if err != nil {
		t.Fatalf("itemToPrompt() error = %v", err)
	}
	if *got != *prompt {
		t.Errorf("itemToPrompt() = %+v, want %+v", *got, *prompt)
	}
}

func TestItemToPrompt_MissingAttr(t *testing.T) {
	_, err := itemToPrompt(store.Item{attrUserID: "u1"})
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("itemToPrompt() error = %v, want *DecodeError", err)
	}
}
