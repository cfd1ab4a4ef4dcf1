// ABOUTME: Shared helpers for CLI commands
// ABOUTME: Store wiring, time formatting and string truncation
package commands

import (
	"fmt"
	"time"

	"github.com/harper/chatstore/internal/config"
	"github.com/harper/chatstore/internal/repository"
	"github.com/joho/godotenv"
)

// stores bundles everything a command needs to talk to the repositories.
type stores struct {
	cfg           *config.Config
	conversations *repository.ConversationStore
	prompts       *repository.PromptStore
	close         func() error
}

// openStores loads configuration and opens the configured backend.
func openStores() (*stores, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	st, closeStore, err := cfg.OpenStore()
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return &stores{
		cfg:           cfg,
		conversations: repository.NewConversationStore(st, cfg.ConversationTable),
		prompts:       repository.NewPromptStore(st, cfg.PromptTable),
		close:         closeStore,
	}, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTimestamp formats a float seconds timestamp for display
func formatTimestamp(ts float64) string {
	t := time.UnixMilli(int64(ts * 1000))
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}
