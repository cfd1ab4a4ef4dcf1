// ABOUTME: CLI command to rename a conversation
// ABOUTME: Updates only the title attribute
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewRenameCmd creates the rename command
func NewRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <conversation-id> <new-title>",
		Short: "Rename a conversation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStores()
			if err != nil {
				return err
			}
			defer func() { _ = s.close() }()

			if err := s.conversations.RenameTitle(context.Background(), s.cfg.UserID, args[0], args[1]); err != nil {
				return fmt.Errorf("renaming conversation: %w", err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s\n", args[0])
			}
			return nil
		},
	}
}
