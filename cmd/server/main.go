// ABOUTME: Main entry point for the chatstore MCP server with stdio transport
// ABOUTME: Initializes the store, repositories and tools from environment config
package main

import (
	"log"

	"github.com/harper/chatstore/internal/config"
	"github.com/harper/chatstore/internal/core"
	"github.com/harper/chatstore/internal/llm"
	"github.com/harper/chatstore/internal/mcp"
	"github.com/harper/chatstore/internal/repository"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	st, closeStore, err := cfg.OpenStore()
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer func() { _ = closeStore() }()

	conversations := repository.NewConversationStore(st, cfg.ConversationTable)
	prompts := repository.NewPromptStore(st, cfg.PromptTable)

	// Title proposals need an API key; everything else works without one.
	var titler *core.Titler
	if cfg.OpenAIKey != "" {
		client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
			APIKey:     cfg.OpenAIKey,
			ChatModel:  cfg.ChatModel,
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
		})
		if err != nil {
			log.Fatalf("Failed to create OpenAI client: %v", err)
		}
		titler = core.NewTitler(conversations, client)
	} else {
		log.Println("Warning: OPENAI_API_KEY not set - propose_title will be disabled")
	}

	server := mcpserver.NewMCPServer(
		"Chatstore",
		"0.1.0",
	)
	mcp.RegisterTools(server, conversations, prompts, titler, cfg.UserID)

	log.Printf("chatstore MCP server starting on stdio (user %s, backend %s)...", cfg.UserID, cfg.Backend)
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
