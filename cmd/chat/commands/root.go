// ABOUTME: Root CLI command with global flags
// ABOUTME: Wires all subcommands and shared output settings
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Browse and manage stored chat conversations and prompts",
		Long: `chat - conversation and prompt store CLI

Conversations are stored as branching message trees; every command
operates on the user configured via CHATSTORE_USER.

Examples:
  chat list
  chat show 3ad2929f
  chat title 3ad2929f
  chat prompt list`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table or json")

	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewTitleCmd())
	cmd.AddCommand(NewRenameCmd())
	cmd.AddCommand(NewDeleteCmd())
	cmd.AddCommand(NewPromptCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
