// ABOUTME: CLI commands for prompt snippets
// ABOUTME: list/add/rm subcommands over the prompt repository
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/harper/chatstore/internal/models"
	"github.com/spf13/cobra"
)

// NewPromptCmd creates the prompt command group
func NewPromptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Manage prompt snippets",
		Long: `Manage reusable prompt snippets.

Prompt ids are caller-chosen and must not contain '_'.

Examples:
  chat prompt list
  chat prompt add greeting "You are a friendly assistant."
  chat prompt rm greeting`,
	}
	cmd.AddCommand(newPromptListCmd())
	cmd.AddCommand(newPromptAddCmd())
	cmd.AddCommand(newPromptRmCmd())
	return cmd
}

func newPromptListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List prompts, most recently used first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStores()
			if err != nil {
				return err
			}
			defer func() { _ = s.close() }()

			prompts, err := s.prompts.ListByUser(context.Background(), s.cfg.UserID)
			if err != nil {
				return fmt.Errorf("listing prompts: %w", err)
			}

			if len(prompts) == 0 {
				if !quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "No prompts found\n")
				}
				return nil
			}

			if outputFormat == "json" {
				jsonData, err := json.MarshalIndent(prompts, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling JSON: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID\tLAST USED\tBODY\n")
			fmt.Fprintf(w, "--\t---------\t----\n")
			for _, prompt := range prompts {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					truncate(prompt.PromptID, 25),
					formatTimestamp(prompt.LastUsedAt),
					truncate(prompt.Body, 50))
			}
			w.Flush()
			return nil
		},
	}
}

func newPromptAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <prompt-id> <body>",
		Short: "Store or overwrite a prompt",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStores()
			if err != nil {
				return err
			}
			defer func() { _ = s.close() }()

			prompt, err := models.NewPrompt(s.cfg.UserID, args[0], args[1])
			if err != nil {
				return err
			}
			if err := s.prompts.Store(context.Background(), s.cfg.UserID, prompt); err != nil {
				return fmt.Errorf("storing prompt: %w", err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Stored prompt %s\n", args[0])
			}
			return nil
		},
	}
}

func newPromptRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <prompt-id>",
		Short: "Delete a prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStores()
			if err != nil {
				return err
			}
			defer func() { _ = s.close() }()

			if err := s.prompts.Delete(context.Background(), s.cfg.UserID, args[0]); err != nil {
				return fmt.Errorf("deleting prompt: %w", err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted prompt %s\n", args[0])
			}
			return nil
		},
	}
}
