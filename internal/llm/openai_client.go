// ABOUTME: OpenAI client used to propose conversation titles
// ABOUTME: Renders the active thread as a buffer string and asks the chat model
package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/harper/chatstore/internal/models"
	"github.com/harper/chatstore/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultChatModel is the default model for title proposals
const DefaultChatModel = "gpt-4o-mini"

// titleRules mirrors the rules prompt the title endpoint has always used.
const titleRules = `Reading the conversation above, what is the appropriate title for the conversation? When answering the title, please follow the rules below:
<rules>
- Title must be in the same language as the conversation.
- Title length must be from 15 to 20 characters.
- Prefer more specific title than general. Your title should always be distinct from others.
- Return the conversation title only. DO NOT include any strings other than the title.
</rules>
`

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey     string
	ChatModel  string
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	chatModel := os.Getenv("CHATSTORE_OPENAI_MODEL")
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	return &ClientConfig{
		APIKey:     apiKey,
		ChatModel:  chatModel,
		MaxRetries: 3,
		RetryDelay: time.Second * 2,
	}
}

// OpenAIClient wraps the OpenAI API client with retry logic
type OpenAIClient struct {
	client     *openai.Client
	chatModel  string
	maxRetries int
	retryDelay time.Duration
}

// NewOpenAIClient creates a client with the given API key and defaults
func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	return NewOpenAIClientWithConfig(DefaultConfig(apiKey))
}

// NewOpenAIClientWithConfig creates a client with custom configuration
func NewOpenAIClientWithConfig(config *ClientConfig) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	return &OpenAIClient{
		client:     openai.NewClient(config.APIKey),
		chatModel:  config.ChatModel,
		maxRetries: config.MaxRetries,
		retryDelay: config.RetryDelay,
	}, nil
}

// GenerateTitle proposes a title for the given root-to-leaf thread.
func (c *OpenAIClient) GenerateTitle(ctx context.Context, thread []models.Message) (string, error) {
	prompt := BufferString(thread) + "\nHuman: " + titleRules + "\nAssistant: "

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(util.CalculateBackoff(c.retryDelay, attempt)):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		reqCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		resp, err := c.client.CreateChatCompletion(reqCtx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			Temperature: 0.3,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		title := resp.Choices[0].Message.Content
		return strings.TrimSpace(strings.ReplaceAll(title, "\n", "")), nil
	}

	return "", fmt.Errorf("failed to generate title after %d attempts: %w", c.maxRetries+1, lastErr)
}

// BufferString renders a thread in the Human/Assistant transcript format the
// model is prompted with. System messages carry no prefix and are skipped.
func BufferString(thread []models.Message) string {
	var lines []string
	for _, msg := range thread {
		switch msg.Role {
		case models.RoleUser:
			lines = append(lines, "Human: "+msg.Content.Body)
		case models.RoleAssistant:
			lines = append(lines, "Assistant: "+msg.Content.Body)
		}
	}
	return strings.Join(lines, "\n")
}
