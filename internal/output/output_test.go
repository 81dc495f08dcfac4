package output_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordersift/ordersift/internal/aggregate"
	"github.com/ordersift/ordersift/internal/extract"
	"github.com/ordersift/ordersift/internal/logger"
	"github.com/ordersift/ordersift/internal/output"
)

func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }

func sampleDataset() *aggregate.Dataset {
	return &aggregate.Dataset{
		Columns: []string{
			extract.ColOrderNumber, extract.ColItemID, extract.ColTitle,
			extract.ColQuantitySold, extract.ColPrice, extract.ColSource,
		},
		Records: []extract.Record{
			{
				OrderNumber:  "13984-70927",
				OrderFull:    "27-13984-70927",
				ItemID:       "100",
				Title:        "Widget Manual",
				ItemURL:      "/itm/100",
				QuantitySold: intPtr(1),
				Price:        floatPtr(19.99),
				Source:       "alpha",
			},
			{
				ItemID:  "200",
				Title:   "Bare Gadget",
				ItemURL: "/itm/200",
				Source:  "beta",
			},
		},
	}
}

func TestCSVWriter_Write(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "orders.csv")
	w := output.NewCSVWriter(logger.NewNoOp())
	require.NoError(t, w.Write(path, sampleDataset()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		extract.ColOrderNumber, extract.ColItemID, extract.ColTitle,
		extract.ColQuantitySold, extract.ColPrice, extract.ColSource,
	}, rows[0])
	assert.Equal(t, []string{"13984-70927", "100", "Widget Manual", "1", "19.99", "alpha"}, rows[1])
	// Absent fields render as empty cells, never shift columns.
	assert.Equal(t, []string{"", "200", "Bare Gadget", "", "", "beta"}, rows[2])
}

func TestCSVWriter_BadPath(t *testing.T) {
	t.Parallel()

	w := output.NewCSVWriter(logger.NewNoOp())
	err := w.Write(filepath.Join(t.TempDir(), "missing", "orders.csv"), sampleDataset())
	assert.Error(t, err)
}

func TestTableRenderer_RendersAllRows(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := output.NewTableRendererTo(logger.NewNoOp(), &buf, 0)
	r.RenderTable(sampleDataset())

	out := buf.String()
	assert.Contains(t, out, extract.ColOrderNumber)
	assert.Contains(t, out, "Widget Manual")
	assert.Contains(t, out, "Bare Gadget")
	assert.Contains(t, out, "19.99")
}

func TestTableRenderer_TruncatesTitleColumn(t *testing.T) {
	t.Parallel()

	ds := sampleDataset()
	ds.Records[0].Title = strings.Repeat("very long title ", 20)

	var buf bytes.Buffer
	r := output.NewTableRendererTo(logger.NewNoOp(), &buf, 20)
	r.RenderTable(ds)

	out := buf.String()
	assert.Contains(t, out, "…")
	assert.NotContains(t, out, ds.Records[0].Title)
}

func TestTableRenderer_EmptyDataset(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := output.NewTableRendererTo(logger.NewNoOp(), &buf, 0)
	r.RenderTable(&aggregate.Dataset{})

	assert.Empty(t, buf.String())
}

func TestSortForDisplay(t *testing.T) {
	t.Parallel()

	ds := &aggregate.Dataset{
		Columns: []string{extract.ColOrderNumber, extract.ColItemID},
		Records: []extract.Record{
			{ItemID: "300", Title: "No Order"},
			{OrderNumber: "20000-00001", ItemID: "200"},
			{OrderNumber: "10000-00001", ItemID: "102"},
			{OrderNumber: "10000-00001", ItemID: "101"},
		},
	}

	sorted := output.SortForDisplay(ds)

	wantIDs := []string{"101", "102", "200", "300"}
	for i, want := range wantIDs {
		assert.Equal(t, want, sorted.Records[i].ItemID, "position %d", i)
	}
	// Records without an order number sink to the bottom.
	assert.Equal(t, "", sorted.Records[3].OrderNumber)
	// The input dataset is left untouched.
	assert.Equal(t, "300", ds.Records[0].ItemID)
}
