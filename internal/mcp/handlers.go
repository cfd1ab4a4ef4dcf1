// ABOUTME: MCP tool handler implementations for the chatstore server
// ABOUTME: Repository errors surface as tool errors, never as protocol failures
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harper/chatstore/internal/core"
	"github.com/harper/chatstore/internal/models"
	"github.com/harper/chatstore/internal/repository"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all chatstore tools
type Handlers struct {
	conversations *repository.ConversationStore
	prompts       *repository.PromptStore
	titler        *core.Titler
	userID        string
}

// ListConversations handles the list_conversations tool
func (h *Handlers) ListConversations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	metas, err := h.conversations.ListMeta(ctx, h.userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing conversations: %v", err)), nil
	}
	return jsonResult(metas)
}

// GetConversation handles the get_conversation tool
func (h *Handlers) GetConversation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conversationID, err := request.RequireString("conversation_id")
	if err != nil {
		return mcp.NewToolResultError("conversation_id argument is required and must be a string"), nil
	}

	conv, err := h.conversations.Get(ctx, h.userID, conversationID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("getting conversation: %v", err)), nil
	}
	thread, err := repository.ResolveActiveThread(conv)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("resolving thread: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"id":          conv.ID,
		"title":       conv.Title,
		"create_time": conv.CreateTime,
		"thread":      thread,
	})
}

// AppendMessage handles the append_message tool
func (h *Handlers) AppendMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conversationID, err := request.RequireString("conversation_id")
	if err != nil {
		return mcp.NewToolResultError("conversation_id argument is required and must be a string"), nil
	}
	role, err := request.RequireString("role")
	if err != nil {
		return mcp.NewToolResultError("role argument is required and must be a string"), nil
	}
	body, err := request.RequireString("body")
	if err != nil {
		return mcp.NewToolResultError("body argument is required and must be a string"), nil
	}
	model := request.GetString("model", "")
	parentID := request.GetString("parent_id", "")

	msg, err := models.NewMessage(role, body, model)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	messageID, err := h.conversations.AppendMessage(ctx, h.userID, conversationID, *msg, parentID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("appending message: %v", err)), nil
	}
	return jsonResult(map[string]string{"message_id": messageID})
}

// SetActiveLeaf handles the set_active_leaf tool
func (h *Handlers) SetActiveLeaf(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conversationID, err := request.RequireString("conversation_id")
	if err != nil {
		return mcp.NewToolResultError("conversation_id argument is required and must be a string"), nil
	}
	messageID, err := request.RequireString("message_id")
	if err != nil {
		return mcp.NewToolResultError("message_id argument is required and must be a string"), nil
	}

	if err := h.conversations.SetActiveLeaf(ctx, h.userID, conversationID, messageID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("switching branch: %v", err)), nil
	}
	return mcp.NewToolResultText("active leaf updated"), nil
}

// RenameConversation handles the rename_conversation tool
func (h *Handlers) RenameConversation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conversationID, err := request.RequireString("conversation_id")
	if err != nil {
		return mcp.NewToolResultError("conversation_id argument is required and must be a string"), nil
	}
	newTitle, err := request.RequireString("new_title")
	if err != nil {
		return mcp.NewToolResultError("new_title argument is required and must be a string"), nil
	}

	if err := h.conversations.RenameTitle(ctx, h.userID, conversationID, newTitle); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("renaming conversation: %v", err)), nil
	}
	return mcp.NewToolResultText("title updated"), nil
}

// DeleteConversation handles the delete_conversation tool
func (h *Handlers) DeleteConversation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conversationID, err := request.RequireString("conversation_id")
	if err != nil {
		return mcp.NewToolResultError("conversation_id argument is required and must be a string"), nil
	}

	if err := h.conversations.Delete(ctx, h.userID, conversationID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("deleting conversation: %v", err)), nil
	}
	return mcp.NewToolResultText("conversation deleted"), nil
}

// DeleteAllConversations handles the delete_all_conversations tool
func (h *Handlers) DeleteAllConversations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.conversations.DeleteAll(ctx, h.userID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("deleting conversations: %v", err)), nil
	}
	return mcp.NewToolResultText("all conversations deleted"), nil
}

// ProposeTitle handles the propose_title tool
func (h *Handlers) ProposeTitle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.titler == nil {
		return mcp.NewToolResultError("title proposals are disabled: OPENAI_API_KEY not configured"), nil
	}
	conversationID, err := request.RequireString("conversation_id")
	if err != nil {
		return mcp.NewToolResultError("conversation_id argument is required and must be a string"), nil
	}

	title, err := h.titler.ProposeTitle(ctx, h.userID, conversationID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("proposing title: %v", err)), nil
	}
	return jsonResult(map[string]string{"title": title})
}

// StorePrompt handles the store_prompt tool
func (h *Handlers) StorePrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	promptID, err := request.RequireString("prompt_id")
	if err != nil {
		return mcp.NewToolResultError("prompt_id argument is required and must be a string"), nil
	}
	body, err := request.RequireString("body")
	if err != nil {
		return mcp.NewToolResultError("body argument is required and must be a string"), nil
	}

	prompt, err := models.NewPrompt(h.userID, promptID, body)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := h.prompts.Store(ctx, h.userID, prompt); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("storing prompt: %v", err)), nil
	}
	return mcp.NewToolResultText("prompt stored"), nil
}

// ListPrompts handles the list_prompts tool
func (h *Handlers) ListPrompts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompts, err := h.prompts.ListByUser(ctx, h.userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing prompts: %v", err)), nil
	}
	return jsonResult(prompts)
}

// GetPrompt handles the get_prompt tool
func (h *Handlers) GetPrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	promptID, err := request.RequireString("prompt_id")
	if err != nil {
		return mcp.NewToolResultError("prompt_id argument is required and must be a string"), nil
	}

	prompt, err := h.prompts.FindByID(ctx, h.userID, promptID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("getting prompt: %v", err)), nil
	}
	// Reading a prompt counts as using it.
	if err := h.prompts.Touch(ctx, h.userID, promptID, models.Timestamp(time.Now())); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("touching prompt: %v", err)), nil
	}
	return jsonResult(prompt)
}

// DeletePrompt handles the delete_prompt tool
func (h *Handlers) DeletePrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	promptID, err := request.RequireString("prompt_id")
	if err != nil {
		return mcp.NewToolResultError("prompt_id argument is required and must be a string"), nil
	}

	if err := h.prompts.Delete(ctx, h.userID, promptID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("deleting prompt: %v", err)), nil
	}
	return mcp.NewToolResultText("prompt deleted"), nil
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshaling result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
