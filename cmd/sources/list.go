// Package sources implements the command-line interface for inspecting the
// configured scrape sources. This file contains the list command that
// displays all configured sources in a formatted table.
package sources

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	cmdcommon "github.com/ordersift/ordersift/cmd/common"
	"github.com/ordersift/ordersift/internal/config"
	"github.com/ordersift/ordersift/internal/logger"
)

// TableRenderer handles the display of source data in a table format
type TableRenderer struct {
	logger logger.Interface
}

// NewTableRenderer creates a new TableRenderer instance
func NewTableRenderer(log logger.Interface) *TableRenderer {
	return &TableRenderer{
		logger: log,
	}
}

// RenderTable formats and displays the sources in a table format
func (r *TableRenderer) RenderTable(sources []config.Source) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Name", "Driver", "URL", "Profile Dir", "Headless"})

	for _, src := range sources {
		t.AppendRow(table.Row{
			src.Name,
			src.Driver,
			src.URL,
			src.ProfileDir,
			src.Headless,
		})
	}

	t.Render()
}

// NewListCommand creates a new list command
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configured sources",
		Long:  `List all scrape sources configured in the system.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cmdcommon.NewCommandDeps()
			if err != nil {
				return err
			}

			if len(deps.Config.Sources) == 0 {
				deps.Logger.Info("No sources configured")
				return nil
			}

			NewTableRenderer(deps.Logger).RenderTable(deps.Config.Sources)
			return nil
		},
	}
}
