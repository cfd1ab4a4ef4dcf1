// ABOUTME: CLI command to delete conversations
// ABOUTME: Deletes one conversation or, with --all, every one the user owns
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteAll bool

// NewDeleteCmd creates the delete command
func NewDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [conversation-id]",
		Short: "Delete conversations",
		Long: `Delete one conversation by id, or all of them with --all.

Examples:
  chat delete 3ad2929f
  chat delete --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDelete,
	}
	cmd.Flags().BoolVar(&deleteAll, "all", false, "Delete every conversation")
	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}
	defer func() { _ = s.close() }()

	ctx := context.Background()

	if deleteAll {
		if len(args) > 0 {
			return fmt.Errorf("--all takes no conversation id")
		}
		if err := s.conversations.DeleteAll(ctx, s.cfg.UserID); err != nil {
			return fmt.Errorf("deleting conversations: %w", err)
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "All conversations deleted\n")
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("conversation id required (or pass --all)")
	}
	if err := s.conversations.Delete(ctx, s.cfg.UserID, args[0]); err != nil {
		return fmt.Errorf("deleting conversation: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	}
	return nil
}
