// Package sources implements the command-line interface for inspecting the
// configured scrape sources.
package sources

import (
	"github.com/spf13/cobra"
)

// Command returns the sources command with its subcommands.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage scrape sources",
		Long:  `View the accounts/sessions configured for scraping.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewListCommand())

	return cmd
}
