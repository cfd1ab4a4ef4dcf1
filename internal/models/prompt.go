// ABOUTME: Prompt snippet owned by a single user
// ABOUTME: PromptID is caller-chosen; tenant namespacing happens at the key layer
package models

import (
	"errors"
	"strings"
	"time"
)

// Prompt is a reusable prompt snippet. PromptID is the caller-facing logical
// id; it is only unique within one user and must not contain the tenant key
// separator (see repository.ComposeID).
type Prompt struct {
	UserID     string  `json:"user_id"`
	PromptID   string  `json:"prompt_id"`
	LastUsedAt float64 `json:"last_used_at"`
	Body       string  `json:"body"`
}

// NewPrompt creates a prompt with validation, stamped as used now.
func NewPrompt(userID, promptID, body string) (*Prompt, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("user id cannot be empty")
	}
	if strings.TrimSpace(promptID) == "" {
		return nil, errors.New("prompt id cannot be empty")
	}
	return &Prompt{
		UserID:     userID,
		PromptID:   promptID,
		LastUsedAt: Timestamp(time.Now()),
		Body:       body,
	}, nil
}
