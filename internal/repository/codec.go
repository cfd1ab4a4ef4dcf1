// ABOUTME: Codec between domain entities and flat store items
// ABOUTME: MessageMap travels as one JSON attribute so writes stay atomic
package repository

import (
	"encoding/json"

	"github.com/harper/chatstore/internal/models"
	"github.com/harper/chatstore/internal/store"
)

// Attribute names shared by both tables.
const (
	attrUserID         = "UserId"
	attrConversationID = "ConversationId"
	attrTitle          = "Title"
	attrCreateTime     = "CreateTime"
	attrLastMessageID  = "LastMessageId"
	attrMessageMap     = "MessageMap"
	attrPromptID       = "PromptId"
	attrBody           = "Body"
	attrLastUsedAt     = "LastUsedAt"
)

// ConversationTableSpec describes the conversations table: one row per
// conversation, sort key carrying the tenant-composed id, plus a secondary
// index for lookups by composed id alone.
func ConversationTableSpec(name string) store.TableSpec {
	return store.TableSpec{
		Name:         name,
		PartitionKey: attrUserID,
		SortKey:      attrConversationID,
		Indexes:      map[string]string{conversationIDIndex: attrConversationID},
	}
}

// PromptTableSpec describes the prompts table.
func PromptTableSpec(name string) store.TableSpec {
	return store.TableSpec{
		Name:         name,
		PartitionKey: attrUserID,
		SortKey:      attrPromptID,
		Indexes:      map[string]string{promptIDIndex: attrPromptID},
	}
}

const (
	conversationIDIndex = "ConversationIdIndex"
	promptIDIndex       = "PromptIdIndex"
)

func conversationToItem(userID string, conv *models.Conversation) (store.Item, error) {
	raw, err := json.Marshal(conv.MessageMap)
	if err != nil {
		return nil, err
	}
	return store.Item{
		attrUserID:         userID,
		attrConversationID: ComposeID(userID, conv.ID),
		attrTitle:          conv.Title,
		attrCreateTime:     store.NumberFromFloat(conv.CreateTime),
		attrLastMessageID:  conv.LastMessageID,
		attrMessageMap:     string(raw),
	}, nil
}

func itemToConversation(item store.Item) (*models.Conversation, error) {
	composedID, err := idAttr(item, attrConversationID)
	if err != nil {
		return nil, err
	}
	title, err := stringAttr(item, attrTitle)
	if err != nil {
		return nil, err
	}
	createTime, err := numberAttr(item, attrCreateTime)
	if err != nil {
		return nil, err
	}
	lastMessageID, ok := item[attrLastMessageID].(string)
	if !ok {
		return nil, &DecodeError{Attr: attrLastMessageID, Reason: "missing or not a string"}
	}
	rawMap, err := stringAttr(item, attrMessageMap)
	if err != nil {
		return nil, err
	}

	messageMap := map[string]*models.Message{}
	if err := json.Unmarshal([]byte(rawMap), &messageMap); err != nil {
		return nil, &DecodeError{Attr: attrMessageMap, Reason: err.Error()}
	}

	return &models.Conversation{
		ID:            DecomposeID(composedID),
		CreateTime:    createTime,
		Title:         title,
		MessageMap:    messageMap,
		LastMessageID: lastMessageID,
	}, nil
}

func itemToConversationMeta(item store.Item) (models.ConversationMeta, error) {
	composedID, err := idAttr(item, attrConversationID)
	if err != nil {
		return models.ConversationMeta{}, err
	}
	title, err := stringAttr(item, attrTitle)
	if err != nil {
		return models.ConversationMeta{}, err
	}
	createTime, err := numberAttr(item, attrCreateTime)
	if err != nil {
		return models.ConversationMeta{}, err
	}
	return models.ConversationMeta{
		ID:         DecomposeID(composedID),
		Title:      title,
		CreateTime: createTime,
	}, nil
}

func promptToItem(userID string, prompt *models.Prompt) store.Item {
	return store.Item{
		attrUserID:     userID,
		attrPromptID:   ComposeID(userID, prompt.PromptID),
		attrBody:       prompt.Body,
		attrLastUsedAt: store.NumberFromFloat(prompt.LastUsedAt),
	}
}

func itemToPrompt(item store.Item) (*models.Prompt, error) {
	userID, err := idAttr(item, attrUserID)
	if err != nil {
		return nil, err
	}
	composedID, err := idAttr(item, attrPromptID)
	if err != nil {
		return nil, err
	}
	body, err := stringAttr(item, attrBody)
	if err != nil {
		return nil, err
	}
	lastUsedAt, err := numberAttr(item, attrLastUsedAt)
	if err != nil {
		return nil, err
	}
	return &models.Prompt{
		UserID:     userID,
		PromptID:   DecomposeID(composedID),
		LastUsedAt: lastUsedAt,
		Body:       body,
	}, nil
}

func stringAttr(item store.Item, attr string) (string, error) {
	v, ok := item[attr].(string)
	if !ok {
		return "", &DecodeError{Attr: attr, Reason: "missing or not a string"}
	}
	return v, nil
}

// idAttr is stringAttr for key attributes, which the write path never leaves
// empty. Other string attributes legitimately round-trip as "".
func idAttr(item store.Item, attr string) (string, error) {
	v, err := stringAttr(item, attr)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", &DecodeError{Attr: attr, Reason: "empty id"}
	}
	return v, nil
}

func numberAttr(item store.Item, attr string) (float64, error) {
	n, ok := item[attr].(store.Number)
	if !ok {
		return 0, &DecodeError{Attr: attr, Reason: "missing or not a number"}
	}
	f, err := n.Float()
	if err != nil {
		return 0, &DecodeError{Attr: attr, Reason: err.Error()}
	}
	return f, nil
}
