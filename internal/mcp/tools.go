// ABOUTME: MCP tool definitions and registration for the chatstore server
// ABOUTME: Exposes conversation and prompt repository operations as tools
package mcp

import (
	"github.com/harper/chatstore/internal/core"
	"github.com/harper/chatstore/internal/repository"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all chatstore tools with the server. The userID is
// the identity resolved at startup; tool arguments never carry one.
func RegisterTools(server *mcpserver.MCPServer, conversations *repository.ConversationStore, prompts *repository.PromptStore, titler *core.Titler, userID string) *Handlers {
	handlers := &Handlers{
		conversations: conversations,
		prompts:       prompts,
		titler:        titler,
		userID:        userID,
	}

	server.AddTool(mcp.Tool{
		Name:        "list_conversations",
		Description: "List the user's conversations with id, title and creation time.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListConversations)

	server.AddTool(mcp.Tool{
		Name:        "get_conversation",
		Description: "Get a conversation's active thread in root-to-leaf order.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"conversation_id": map[string]interface{}{
					"type":        "string",
					"description": "Conversation identifier",
				},
			},
			Required: []string{"conversation_id"},
		},
	}, handlers.GetConversation)

	server.AddTool(mcp.Tool{
		Name:        "append_message",
		Description: "Append a message to a conversation and make it the active leaf. Omit parent_id to post the root message of a new conversation; pass an earlier message id to start a new branch.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"conversation_id": map[string]interface{}{
					"type":        "string",
					"description": "Conversation identifier",
				},
				"role": map[string]interface{}{
					"type":        "string",
					"description": "Message role: user, assistant or system",
				},
				"body": map[string]interface{}{
					"type":        "string",
					"description": "Message text",
				},
				"model": map[string]interface{}{
					"type":        "string",
					"description": "Model name recorded on the message",
				},
				"parent_id": map[string]interface{}{
					"type":        "string",
					"description": "Parent message id (omit for the root message)",
				},
			},
			Required: []string{"conversation_id", "role", "body"},
		},
	}, handlers.AppendMessage)

	server.AddTool(mcp.Tool{
		Name:        "set_active_leaf",
		Description: "Switch the active thread to end at the given message. Sibling branches are kept.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"conversation_id": map[string]interface{}{
					"type":        "string",
					"description": "Conversation identifier",
				},
				"message_id": map[string]interface{}{
					"type":        "string",
					"description": "Message id to make the active leaf",
				},
			},
			Required: []string{"conversation_id", "message_id"},
		},
	}, handlers.SetActiveLeaf)

	server.AddTool(mcp.Tool{
		Name:        "rename_conversation",
		Description: "Update a conversation's title.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"conversation_id": map[string]interface{}{
					"type":        "string",
					"description": "Conversation identifier",
				},
				"new_title": map[string]interface{}{
					"type":        "string",
					"description": "New title",
				},
			},
			Required: []string{"conversation_id", "new_title"},
		},
	}, handlers.RenameConversation)

	server.AddTool(mcp.Tool{
		Name:        "delete_conversation",
		Description: "Delete one conversation.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"conversation_id": map[string]interface{}{
					"type":        "string",
					"description": "Conversation identifier",
				},
			},
			Required: []string{"conversation_id"},
		},
	}, handlers.DeleteConversation)

	server.AddTool(mcp.Tool{
		Name:        "delete_all_conversations",
		Description: "Delete every conversation the user owns.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.DeleteAllConversations)

	server.AddTool(mcp.Tool{
		Name:        "propose_title",
		Description: "Propose a title for a conversation based on its active thread.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"conversation_id": map[string]interface{}{
					"type":        "string",
					"description": "Conversation identifier",
				},
			},
			Required: []string{"conversation_id"},
		},
	}, handlers.ProposeTitle)

	server.AddTool(mcp.Tool{
		Name:        "store_prompt",
		Description: "Store or overwrite a prompt snippet.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"prompt_id": map[string]interface{}{
					"type":        "string",
					"description": "Caller-chosen prompt identifier (must not contain '_')",
				},
				"body": map[string]interface{}{
					"type":        "string",
					"description": "Prompt text",
				},
			},
			Required: []string{"prompt_id", "body"},
		},
	}, handlers.StorePrompt)

	server.AddTool(mcp.Tool{
		Name:        "list_prompts",
		Description: "List the user's prompt snippets, most recently used first.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListPrompts)

	server.AddTool(mcp.Tool{
		Name:        "get_prompt",
		Description: "Get one prompt snippet by id and mark it used.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"prompt_id": map[string]interface{}{
					"type":        "string",
					"description": "Prompt identifier",
				},
			},
			Required: []string{"prompt_id"},
		},
	}, handlers.GetPrompt)

	server.AddTool(mcp.Tool{
		Name:        "delete_prompt",
		Description: "Delete one prompt snippet.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"prompt_id": map[string]interface{}{
					"type":        "string",
					"description": "Prompt identifier",
				},
			},
			Required: []string{"prompt_id"},
		},
	}, handlers.DeletePrompt)

	return handlers
}
