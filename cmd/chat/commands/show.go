// ABOUTME: CLI command to show a conversation's active thread
// ABOUTME: Prints messages root-to-leaf with role prefixes
package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harper/chatstore/internal/repository"
	"github.com/spf13/cobra"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <conversation-id>",
		Short: "Show a conversation's active thread",
		Long: `Show the active thread of a conversation in root-to-leaf order.

Branches off the active thread are kept in the store but not printed;
use set_active_leaf (MCP) to switch threads.

Examples:
  chat show 3ad2929f
  chat show 3ad2929f --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}
	defer func() { _ = s.close() }()

	conv, err := s.conversations.Get(context.Background(), s.cfg.UserID, args[0])
	if err != nil {
		return fmt.Errorf("getting conversation: %w", err)
	}
	thread, err := repository.ResolveActiveThread(conv)
	if err != nil {
		return fmt.Errorf("resolving thread: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(thread, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n\n", conv.Title, conv.ID)
	for _, msg := range thread {
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", msg.Role, msg.Content.Body)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d message(s) on the active thread\n", len(thread))
	}
	return nil
}
