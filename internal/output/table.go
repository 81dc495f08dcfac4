// Package output renders merged record datasets to the console and to a
// delimited file. It is a sink only: nothing here feeds back into the
// extraction pipeline.
package output

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ordersift/ordersift/internal/aggregate"
	"github.com/ordersift/ordersift/internal/extract"
	"github.com/ordersift/ordersift/internal/logger"
)

// TableRenderer handles the display of record data in a table format.
type TableRenderer struct {
	logger logger.Interface
	out    io.Writer

	// titleWidth truncates the title column for display; 0 disables.
	titleWidth int
}

// NewTableRenderer creates a new TableRenderer writing to stdout.
func NewTableRenderer(log logger.Interface, titleWidth int) *TableRenderer {
	return NewTableRendererTo(log, os.Stdout, titleWidth)
}

// NewTableRendererTo creates a TableRenderer writing to out.
func NewTableRendererTo(log logger.Interface, out io.Writer, titleWidth int) *TableRenderer {
	return &TableRenderer{
		logger:     log,
		out:        out,
		titleWidth: titleWidth,
	}
}

// RenderTable formats and displays the dataset in a table format.
func (r *TableRenderer) RenderTable(ds *aggregate.Dataset) {
	if len(ds.Records) == 0 {
		r.logger.Info("No records to display")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(ds.Columns))
	titleCol := -1
	for i, col := range ds.Columns {
		header[i] = col
		if col == extract.ColTitle {
			titleCol = i
		}
	}
	t.AppendHeader(header)

	for _, values := range ds.Rows() {
		row := make(table.Row, len(values))
		for i, v := range values {
			if i == titleCol {
				v = truncate(v, r.titleWidth)
			}
			row[i] = v
		}
		t.AppendRow(row)
	}

	t.Render()
}

// truncate shortens s to width runes with an ellipsis. Display only; the CSV
// always carries the full value.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
