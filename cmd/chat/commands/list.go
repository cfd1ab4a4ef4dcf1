// ABOUTME: CLI command to list conversations
// ABOUTME: Shows id, title and creation time, newest first
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List conversations",
		Long: `List the user's conversations, newest first.

Examples:
  chat list
  chat list --format json`,
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}
	defer func() { _ = s.close() }()

	metas, err := s.conversations.ListMeta(context.Background(), s.cfg.UserID)
	if err != nil {
		return fmt.Errorf("listing conversations: %w", err)
	}
	sort.Slice(metas, func(i, j int) bool {
		return metas[i].CreateTime > metas[j].CreateTime
	})

	if len(metas) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No conversations found\n")
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(metas, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tTITLE\tCREATED\n")
	fmt.Fprintf(w, "--\t-----\t-------\n")
	for _, meta := range metas {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			truncate(meta.ID, 36),
			truncate(meta.Title, 40),
			formatTimestamp(meta.CreateTime))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d conversation(s)\n", len(metas))
	}
	return nil
}
