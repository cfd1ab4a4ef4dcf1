// ABOUTME: CLI command to propose a conversation title
// ABOUTME: Delegates to the OpenAI-backed title generator
package commands

import (
	"context"
	"fmt"

	"github.com/harper/chatstore/internal/core"
	"github.com/harper/chatstore/internal/llm"
	"github.com/spf13/cobra"
)

var titleApply bool

// NewTitleCmd creates the title command
func NewTitleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "title <conversation-id>",
		Short: "Propose a title for a conversation",
		Long: `Propose a title based on the conversation's active thread.

Requires OPENAI_API_KEY. With --apply, the proposed title is written
back to the conversation.

Examples:
  chat title 3ad2929f
  chat title 3ad2929f --apply`,
		Args: cobra.ExactArgs(1),
		RunE: runTitle,
	}
	cmd.Flags().BoolVar(&titleApply, "apply", false, "Rename the conversation to the proposed title")
	return cmd
}

func runTitle(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}
	defer func() { _ = s.close() }()

	if s.cfg.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required for title proposals")
	}
	client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
		APIKey:     s.cfg.OpenAIKey,
		ChatModel:  s.cfg.ChatModel,
		MaxRetries: s.cfg.MaxRetries,
		RetryDelay: s.cfg.RetryDelay,
	})
	if err != nil {
		return fmt.Errorf("creating OpenAI client: %w", err)
	}

	titler := core.NewTitler(s.conversations, client)
	title, err := titler.ProposeTitle(context.Background(), s.cfg.UserID, args[0])
	if err != nil {
		return fmt.Errorf("proposing title: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", title)

	if titleApply {
		if err := s.conversations.RenameTitle(context.Background(), s.cfg.UserID, args[0], title); err != nil {
			return fmt.Errorf("applying title: %w", err)
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Title applied\n")
		}
	}
	return nil
}
